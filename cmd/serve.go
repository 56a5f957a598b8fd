package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/glycemic/internal/handlers"
)

func newServeCmd(opts *options) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Starts the glycemic HTTP API on the specified port.

Clients create a session, switch category or search, toggle foods in and out
of the selection and read the summary. Sessions live in memory only.`,
		Example: `  # Start server on the configured port (default 8888)
  glycemic serve

  # Start server on custom port
  glycemic serve --port 3000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = opts.cfg.Server.Port
			}

			foods, source, err := opts.loadFoods(cmd.Context())
			if err != nil {
				return err
			}
			recipes, err := opts.loadRecipes(cmd.Context())
			if err != nil {
				return err
			}

			handler := handlers.New(foods, recipes, opts.cfg.DefaultCategory())

			addr := ":" + port
			server := &http.Server{
				Addr:              addr,
				Handler:           handler.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Glycemic API available", "addr", addr, "url", "http://localhost"+addr, "catalog", source, "foods", len(foods), "recipes", len(recipes))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (defaults to server.port)")

	return cmd
}
