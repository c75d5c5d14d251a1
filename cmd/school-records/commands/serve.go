package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aanand-mishra/school-records/internal/config"
	"github.com/aanand-mishra/school-records/internal/http/router"
	"github.com/aanand-mishra/school-records/internal/seed"
	"github.com/aanand-mishra/school-records/internal/storage"
)

// shutdownTimeout bounds how long in-flight requests may run after a
// shutdown signal.
const shutdownTimeout = 5 * time.Second

// serveCmd starts the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API on http_server.address.

Under the "production" profile the bootstrap school is saved before the
server starts; a failure there (for example the records already exist)
aborts startup.

Examples:
  school-records serve --config config/local.yaml
  school-records serve --config config/local.yaml --profile production`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, st, err := setup(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	log.Info().Str("profile", cfg.Profile).Msg("starting school-records")

	server, err := newServer(ctx, cfg, st, log)
	if err != nil {
		return err
	}

	// ListenAndServe blocks, so it runs in its own goroutine and reports
	// back through errCh. http.ErrServerClosed is the normal result of
	// Shutdown and is not an error.
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", cfg.HTTPServer.Addr).Msg("server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server encountered an error")
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shutdown server gracefully")
		return fmt.Errorf("serve: shutdown: %w", err)
	}

	log.Info().Msg("server stopped gracefully")
	return nil
}

// newServer seeds the bootstrap records when the profile asks for it and
// builds the HTTP server. Nothing listens yet.
func newServer(ctx context.Context, cfg *config.Config, st storage.Storage, log zerolog.Logger) (*http.Server, error) {
	if cfg.Seeds() {
		if _, err := seed.Run(ctx, st.Schools(), log); err != nil {
			log.Error().Err(err).Msg("bootstrap seeding failed")
			return nil, err
		}
	}

	return &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: router.New(st, log),

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, nil
}
