package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"explorer/internal/bootstrap"
	"explorer/internal/bootstrap/logging"
	"explorer/internal/errs"
	"explorer/internal/infrastructure/networkfile"
	"explorer/internal/usecase/explorer"
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Manage the network registry",
}

var networkImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Create or update networks from a TOML registry file",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *explorer.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		path, _ := cmd.Flags().GetString("file")
		networks, err := networkfile.Load(path)
		if err != nil {
			return errs.Wrap(err, "load network file")
		}
		if err := svc.RegisterNetworks(ctx, networks); err != nil {
			logging.Error(ctx, "register networks failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "register networks")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "imported %d networks\n", len(networks)); err != nil {
			return errs.Wrap(err, "write import output")
		}
		return nil
	}),
}

var networkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered networks",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *explorer.Service) error {
		return runQuery(cmd, svc, "networks")
	}),
}

func init() {
	rootCmd.AddCommand(networkCmd)
	networkCmd.AddCommand(networkImportCmd, networkListCmd)

	networkImportCmd.Flags().String("file", "networks.toml", "Network registry file")
	addQueryFlags(networkListCmd)
}
