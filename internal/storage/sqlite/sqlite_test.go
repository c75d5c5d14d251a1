package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/school-records/internal/config"
	"github.com/aanand-mishra/school-records/internal/storage"
	"github.com/aanand-mishra/school-records/internal/storage/sqlite"
	"github.com/aanand-mishra/school-records/internal/storage/sqlstore"
	"github.com/aanand-mishra/school-records/internal/storage/storagetest"
	"github.com/aanand-mishra/school-records/internal/types"
)

func newTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()

	st, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "school.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestStorageContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage {
		return newTestStore(t)
	})
}

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	require.NoError(t, st.Students().Create(ctx, types.NewStudent("John", "john@cc.com")))
	require.NoError(t, sqlite.Migrate(ctx, st.DB()))

	students, err := st.Students().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 1)
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "school.db")

	st, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, st.Students().Create(ctx, types.NewStudent("John", "john@cc.com")))
	require.NoError(t, st.Close())

	st, err = sqlite.Open(ctx, path)
	require.NoError(t, err)
	defer st.Close()

	students, err := st.Students().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "john@cc.com", students[0].Email)
}

func TestNew_UsesConfiguredPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configured.db")
	cfg := &config.Config{Storage: config.Storage{Driver: config.DriverSQLite, Path: path}}

	st, err := sqlite.New(context.Background(), cfg)
	require.NoError(t, err)
	defer st.Close()

	assert.Equal(t, sqlstore.SQLite, st.Dialect())
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestOpen_ForeignKeysEnforced(t *testing.T) {
	st := newTestStore(t)

	var enabled int
	require.NoError(t, st.DB().QueryRow(`PRAGMA foreign_keys`).Scan(&enabled))
	assert.Equal(t, 1, enabled)
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "school.db")

	st, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	defer st.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
