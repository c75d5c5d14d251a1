package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aanand-mishra/school-records/internal/config"
	"github.com/aanand-mishra/school-records/internal/logger"
	"github.com/aanand-mishra/school-records/internal/storage/postgres"
	"github.com/aanand-mishra/school-records/internal/storage/sqlite"
	"github.com/aanand-mishra/school-records/internal/storage/sqlstore"
)

var (
	// Global flags
	configPath string
	profile    string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "school-records",
	Short: "School records API: students, schools and their addresses",
	Long: `school-records stores students, the schools they attend and their
addresses in SQLite or PostgreSQL and serves them over a JSON API.

The configuration file is read from --config or CONFIG_PATH; every value
can be overridden by environment variables (see .env).`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the YAML config file (default $CONFIG_PATH)")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "Override the configured profile (production seeds on serve)")
}

// loadConfig reads the configuration and applies the --profile override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if profile != "" {
		cfg.Profile = profile
	}
	return cfg, nil
}

// openStorage opens the configured backend, creating the schema if
// needed. Statements are logged at debug level.
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*sqlstore.Store, error) {
	queryLog := sqlstore.WithQueryLogger(log.With().Str("component", "storage").Logger())

	var (
		st  *sqlstore.Store
		err error
	)
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		st, err = postgres.New(ctx, cfg, queryLog)
	case config.DriverSQLite:
		st, err = sqlite.New(ctx, cfg, queryLog)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("driver", cfg.Storage.Driver).
		Msg("storage initialised")
	return st, nil
}

// setup loads the config, builds the logger and opens the storage shared
// by every subcommand.
func setup(ctx context.Context) (*config.Config, zerolog.Logger, *sqlstore.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}

	log := logger.New(cfg.Env)
	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialise storage")
		return nil, log, nil, err
	}
	return cfg, log, st, nil
}
