package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"explorer/internal/bootstrap"
	"explorer/internal/bootstrap/logging"
	"explorer/internal/errs"
	"explorer/internal/transport/httpapi"
	"explorer/internal/usecase/explorer"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve push ingestion and entity queries over HTTP",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *explorer.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		addr, _ := cmd.Flags().GetString("addr")
		addr = strings.TrimSpace(addr)
		if addr == "" {
			addr = app.Config.HTTP.Addr
		}

		opts := httpapi.Options{Ready: app.Ready}
		if app.Config.Metrics.Enabled {
			opts.Metrics = app.Metrics.Handler()
			opts.Observer = app.Metrics
		}

		server := &http.Server{
			Addr:              addr,
			Handler:           httpapi.NewRouter(svc, opts),
			ReadHeaderTimeout: 10 * time.Second,
		}

		return runServer(ctx, server)
	}),
}

// runServer serves until ctx is done, then drains in-flight requests.
func runServer(ctx context.Context, server *http.Server) error {
	served := make(chan error, 1)
	go func() {
		logging.Info(ctx, "http server started", slog.String("addr", server.Addr))
		served <- server.ListenAndServe()
	}()

	select {
	case err := <-served:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error(ctx, "http server failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "serve http")
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return errs.Wrap(err, "shutdown http server")
	}
	logging.Info(ctx, "http server stopped")
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (default http.addr from config)")
}
