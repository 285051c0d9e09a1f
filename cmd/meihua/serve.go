package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/meihua/internal/cli"
	httpAdapter "github.com/aretw0/meihua/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves the casting API over HTTP. Requests under /v1 are validated against the
embedded OpenAPI document (served at /openapi.yaml); Prometheus metrics are on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd, false)
		if err != nil {
			return err
		}
		port := a.cfg.HTTP.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		metrics := httpAdapter.NewMetrics()
		eng, err := a.openEngine(cmd, cli.EngineOptions{Hooks: metrics.Hooks()})
		if err != nil {
			return err
		}
		defer eng.Close()

		handler, err := httpAdapter.NewHandler(eng,
			httpAdapter.WithLogger(a.logger),
			httpAdapter.WithMetrics(metrics))
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			a.logger.Info("Starting meihua server", "address", srv.Addr, "journal", a.cfg.Journal.Backend)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			a.logger.Info("Start shutdown", "signal", ctx.Signal())

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
				if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("kill server: %w", err)
				}
			}
			a.logger.Info("meihua server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides http.port)")
}
