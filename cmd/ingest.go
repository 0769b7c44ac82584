package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"explorer/internal/bootstrap"
	"explorer/internal/bootstrap/logging"
	domainexplorer "explorer/internal/domain/explorer"
	"explorer/internal/errs"
	"explorer/internal/transport/natsbus"
	"explorer/internal/usecase/explorer"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest push events from a JSON-lines file in one transaction",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *explorer.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		path, _ := cmd.Flags().GetString("file")
		publish, _ := cmd.Flags().GetBool("publish")

		events, err := readEvents(cmd, path)
		if err != nil {
			return err
		}

		if publish {
			return publishEvents(cmd, app, events)
		}

		results, err := svc.IngestBatch(ctx, events)
		if err != nil {
			logging.Error(ctx, "ingest batch failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "ingest batch")
		}
		for _, r := range results {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.Kind, r.ID); err != nil {
				return errs.Wrap(err, "write ingest output")
			}
		}
		return nil
	}),
}

// publishEvents hands each event to the NATS consumer instead of writing the store directly.
func publishEvents(cmd *cobra.Command, app *bootstrap.App, events []domainexplorer.PushEvent) error {
	conn, err := connectNATS(cmd, app.Config.NATS)
	if err != nil {
		return err
	}
	defer conn.Close()

	for i, event := range events {
		reply, err := natsbus.Publish(cmd.Context(), conn, app.Config.NATS.Subject, event)
		if err != nil {
			return errs.Wrapf(err, "publish event %d", i)
		}
		if !reply.OK {
			return fmt.Errorf("event %d rejected: %s", i, reply.Error)
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", reply.Result.Kind, reply.Result.ID); err != nil {
			return errs.Wrap(err, "write publish output")
		}
	}
	return nil
}

// readEvents decodes a stream of PushEvent objects; "-" reads stdin.
func readEvents(cmd *cobra.Command, path string) ([]domainexplorer.PushEvent, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("--file is required")
	}

	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, errs.Wrap(err, "open events file")
		}
		defer f.Close()
		r = f
	}

	var events []domainexplorer.PushEvent
	dec := json.NewDecoder(r)
	for {
		var event domainexplorer.PushEvent
		err := dec.Decode(&event)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errs.Wrapf(err, "decode event %d", len(events))
		}
		events = append(events, event)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("no events in %s", path)
	}
	return events, nil
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().String("file", "", "JSON-lines file of push events, - for stdin")
	ingestCmd.Flags().Bool("publish", false, "Publish events to NATS instead of writing the store")
	ingestCmd.Flags().String("nats-url", "", "NATS server URL used with --publish")
}
