package repo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
)

// FileStateRepo stores the payload in a single JSON file. Saves write a
// temporary file in the same directory and rename it over the target, so a
// crash mid-write never leaves a truncated payload behind.
type FileStateRepo struct {
	mu   sync.Mutex
	path string
}

var _ StateRepo = (*FileStateRepo)(nil)

// NewFileStateRepo returns a repo backed by the file at path. The file need
// not exist yet.
func NewFileStateRepo(path string) *FileStateRepo {
	return &FileStateRepo{path: path}
}

func (r *FileStateRepo) Load(_ context.Context) (domain.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.EmptyState(), nil
	}
	if err != nil {
		return domain.State{}, fmt.Errorf("repo.FileStateRepo.Load: %w", err)
	}

	s, err := decodeState(data)
	if err != nil {
		return domain.State{}, fmt.Errorf("repo.FileStateRepo.Load: %w", err)
	}
	return s, nil
}

func (r *FileStateRepo) Save(_ context.Context, state domain.State) error {
	data, err := encodeState(state)
	if err != nil {
		return fmt.Errorf("repo.FileStateRepo.Save: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := writeFileAtomic(r.path, data); err != nil {
		return fmt.Errorf("repo.FileStateRepo.Save: %w", err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	// Removing after a successful rename is a harmless no-op.
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
