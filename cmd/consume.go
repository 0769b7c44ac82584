package cmd

import (
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"explorer/internal/bootstrap"
	"explorer/internal/bootstrap/config"
	"explorer/internal/bootstrap/logging"
	"explorer/internal/errs"
	"explorer/internal/transport/natsbus"
	"explorer/internal/usecase/explorer"
)

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Consume indexer push events from NATS",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *explorer.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		conn, err := connectNATS(cmd, app.Config.NATS)
		if err != nil {
			return err
		}
		defer conn.Close()

		subscriber := natsbus.NewSubscriber(conn, app.Config.NATS.Subject, app.Config.NATS.Queue, svc)
		if err := subscriber.Run(ctx); err != nil {
			logging.Error(ctx, "nats consumer failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "consume push events")
		}
		return nil
	}),
}

// connectNATS dials the configured server; --nats-url overrides nats.url.
func connectNATS(cmd *cobra.Command, cfg config.NATSConfig) (*nats.Conn, error) {
	ctx := cmd.Context()
	url := cfg.URL
	if override, _ := cmd.Flags().GetString("nats-url"); strings.TrimSpace(override) != "" {
		url = strings.TrimSpace(override)
	}

	conn, err := nats.Connect(
		url,
		nats.Name("explorer"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logging.Warn(ctx, "nats disconnected", slog.Any("err", errs.Loggable(err)))
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logging.Info(ctx, "nats reconnected", slog.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, errs.Wrapf(err, "connect nats %s", url)
	}
	return conn, nil
}

func init() {
	rootCmd.AddCommand(consumeCmd)

	consumeCmd.Flags().String("nats-url", "", "NATS server URL (default nats.url from config)")
}
