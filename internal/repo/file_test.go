package repo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
	"github.com/pkordes/sf-experiences/backend/internal/repo"
)

func TestFileStateRepo_MissingFileIsEmpty(t *testing.T) {
	r := repo.NewFileStateRepo(filepath.Join(t.TempDir(), "absent.json"))

	got, err := r.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.EmptyState(), got)
}

func TestFileStateRepo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	r := repo.NewFileStateRepo(path)
	ctx := context.Background()
	want := stateFixture()

	require.NoError(t, r.Save(ctx, want))
	got, err := r.Load(ctx)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileStateRepo_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	r := repo.NewFileStateRepo(filepath.Join(dir, "state.json"))
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, stateFixture()))
	require.NoError(t, r.Save(ctx, domain.EmptyState()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.json", entries[0].Name())

	got, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Itineraries)
}

func TestFileStateRepo_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0o644))

	_, err := repo.NewFileStateRepo(path).Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrMalformedState)
}

func TestFileStateRepo_EmptyFileIsEmptyState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	got, err := repo.NewFileStateRepo(path).Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.EmptyState(), got)
}
