package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/sf-experiences/backend/migrations"
	"github.com/pkordes/sf-experiences/backend/testutil"
)

// plannerColumns is the planner_state schema the state repo relies on.
var plannerColumns = map[string]string{
	"namespace":  "text",
	"payload":    "jsonb",
	"updated_at": "timestamp with time zone",
}

// TestMigrations applies every migration to an empty database, checks the
// planner_state schema, then rolls everything back. It skips without
// TEST_DATABASE_URL.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)
	ctx := context.Background()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	require.NoError(t, err, "create goose provider")

	// Other packages' TestMain may have migrated this database already.
	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "initial reset")

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.NotEmpty(t, results)

	assert.Equal(t, plannerColumns, columnTypes(t, db, "planner_state"))
	assert.Equal(t, []string{"namespace"}, primaryKey(t, db, "planner_state"))
	assertDefaultPayloadIsEmptyState(t, db)
	assertUpsertKeepsOneRowPerNamespace(t, db)

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")
	assert.Empty(t, columnTypes(t, db, "planner_state"), "planner_state should be dropped")
}

func columnTypes(t *testing.T, db *sql.DB, table string) map[string]string {
	t.Helper()

	const q = `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1`
	rows, err := db.QueryContext(context.Background(), q, table)
	require.NoError(t, err)
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var name, typ string
		require.NoError(t, rows.Scan(&name, &typ))
		out[name] = typ
	}
	require.NoError(t, rows.Err())
	return out
}

func primaryKey(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()

	const q = `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON kcu.constraint_name = tc.constraint_name
		 AND kcu.table_schema = tc.table_schema
		WHERE tc.constraint_type = 'PRIMARY KEY'
		  AND tc.table_schema = 'public'
		  AND tc.table_name = $1
		ORDER BY kcu.ordinal_position`
	rows, err := db.QueryContext(context.Background(), q, table)
	require.NoError(t, err)
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var c string
		require.NoError(t, rows.Scan(&c))
		cols = append(cols, c)
	}
	require.NoError(t, rows.Err())
	return cols
}

// A row inserted with only a namespace must hold the empty planner payload.
func assertDefaultPayloadIsEmptyState(t *testing.T, db *sql.DB) {
	t.Helper()
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO planner_state (namespace) VALUES ('defaults')`)
	require.NoError(t, err)

	var favorites, itineraries int
	err = tx.QueryRowContext(ctx, `
		SELECT jsonb_array_length(payload->'favorites'), jsonb_array_length(payload->'itineraries')
		FROM planner_state WHERE namespace = 'defaults'`).Scan(&favorites, &itineraries)
	require.NoError(t, err)
	assert.Zero(t, favorites)
	assert.Zero(t, itineraries)
}

// The state repo saves with ON CONFLICT (namespace), which needs the key.
func assertUpsertKeepsOneRowPerNamespace(t *testing.T, db *sql.DB) {
	t.Helper()
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	const upsert = `
		INSERT INTO planner_state (namespace, payload) VALUES ('ns', $1::jsonb)
		ON CONFLICT (namespace) DO UPDATE SET payload = EXCLUDED.payload`
	_, err = tx.ExecContext(ctx, upsert, `{"favorites":["a"],"itineraries":[]}`)
	require.NoError(t, err)
	_, err = tx.ExecContext(ctx, upsert, `{"favorites":["b"],"itineraries":[]}`)
	require.NoError(t, err)

	var n int
	var first string
	err = tx.QueryRowContext(ctx,
		`SELECT count(*), min(payload->'favorites'->>0) FROM planner_state WHERE namespace = 'ns'`).
		Scan(&n, &first)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "b", first)
}
