package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/school-records/internal/config"
	"github.com/aanand-mishra/school-records/internal/storage"
	"github.com/aanand-mishra/school-records/internal/storage/sqlite"
)

// writeConfig writes a config file pointing at a SQLite database in a
// temporary directory and returns both paths.
func writeConfig(t *testing.T) (cfgPath, dbPath string) {
	t.Helper()

	dir := t.TempDir()
	dbPath = filepath.Join(dir, "school.db")
	cfgPath = filepath.Join(dir, "config.yaml")

	content := fmt.Sprintf(`env: prod
profile: test
storage:
  driver: sqlite
  path: %s
http_server:
  address: localhost:0
`, dbPath)
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))
	return cfgPath, dbPath
}

func run(t *testing.T, args ...string) error {
	t.Helper()

	t.Cleanup(func() {
		configPath = ""
		profile = ""
		rootCmd.SetArgs(nil)
	})
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

func TestMigrateAndSeed(t *testing.T) {
	cfgPath, dbPath := writeConfig(t)

	require.NoError(t, run(t, "migrate", "--config", cfgPath))
	_, err := os.Stat(dbPath)
	require.NoError(t, err)

	require.NoError(t, run(t, "seed", "--config", cfgPath))
	err = run(t, "seed", "--config", cfgPath)
	assert.ErrorIs(t, err, storage.ErrConstraint)

	st, err := sqlite.Open(context.Background(), dbPath)
	require.NoError(t, err)
	defer st.Close()

	schools, err := st.Schools().GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, schools, 1)
	assert.Equal(t, "Codecool BP", schools[0].Name)
	assert.Len(t, schools[0].Students, 2)
}

func TestLoadConfig_ProfileOverride(t *testing.T) {
	cfgPath, _ := writeConfig(t)
	t.Cleanup(func() {
		configPath = ""
		profile = ""
	})

	configPath = cfgPath
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.ProfileTest, cfg.Profile)
	assert.False(t, cfg.Seeds())

	profile = config.ProfileProduction
	cfg, err = loadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Seeds())
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Storage: config.Storage{Driver: "mysql"}}

	_, err := openStorage(context.Background(), cfg, zerolog.Nop())
	assert.ErrorContains(t, err, `unknown storage driver "mysql"`)
}

func TestOpenStorage_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "school.db")
	cfg := &config.Config{Storage: config.Storage{Driver: config.DriverSQLite, Path: path}}

	st, err := openStorage(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer st.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestNewServer(t *testing.T) {
	newStore := func(t *testing.T) storage.Storage {
		st, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "school.db"))
		require.NoError(t, err)
		t.Cleanup(func() { st.Close() })
		return st
	}
	newConfig := func(profile string) *config.Config {
		return &config.Config{
			Profile:    profile,
			HTTPServer: config.HTTPServer{Addr: "localhost:0"},
		}
	}
	ctx := context.Background()

	t.Run("test profile does not seed", func(t *testing.T) {
		st := newStore(t)

		server, err := newServer(ctx, newConfig(config.ProfileTest), st, zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, "localhost:0", server.Addr)
		assert.NotNil(t, server.Handler)

		schools, err := st.Schools().GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, schools)
	})

	t.Run("production profile seeds", func(t *testing.T) {
		st := newStore(t)

		_, err := newServer(ctx, newConfig(config.ProfileProduction), st, zerolog.Nop())
		require.NoError(t, err)

		schools, err := st.Schools().GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, schools, 1)
		assert.Len(t, schools[0].Students, 2)
	})

	t.Run("seeding failure aborts startup", func(t *testing.T) {
		st := newStore(t)
		_, err := newServer(ctx, newConfig(config.ProfileProduction), st, zerolog.Nop())
		require.NoError(t, err)

		server, err := newServer(ctx, newConfig(config.ProfileProduction), st, zerolog.Nop())
		assert.ErrorIs(t, err, storage.ErrConstraint)
		assert.Nil(t, server)
	})
}

func TestMissingConfig(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	err := run(t, "migrate")
	assert.ErrorContains(t, err, "config path is not set")
}
