package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"explorer/internal/bootstrap"
	"explorer/internal/bootstrap/logging"
	"explorer/internal/errs"
	"explorer/internal/usecase/explorer"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply, revert or inspect schema migration units",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migration units in declared order",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, _ *explorer.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))
		through, _ := cmd.Flags().GetString("through")

		m, err := app.Migrator()
		if err != nil {
			return err
		}
		if err := m.Up(ctx, through); err != nil {
			logging.Error(ctx, "migrate up failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "migrate up")
		}
		return renderMigrationStatus(cmd, app)
	}),
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert applied migration units in reverse order",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, _ *explorer.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))
		through, _ := cmd.Flags().GetString("through")

		m, err := app.Migrator()
		if err != nil {
			return err
		}
		if err := m.Down(ctx, through); err != nil {
			logging.Error(ctx, "migrate down failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "migrate down")
		}
		return renderMigrationStatus(cmd, app)
	}),
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "List migration units and whether each is applied",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, _ *explorer.Service) error {
		return renderMigrationStatus(cmd, app)
	}),
}

func renderMigrationStatus(cmd *cobra.Command, app *bootstrap.App) error {
	m, err := app.Migrator()
	if err != nil {
		return err
	}
	statuses, err := m.Status(cmd.Context())
	if err != nil {
		return errs.Wrap(err, "migration status")
	}

	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		applied, at := "no", ""
		if s.Applied {
			applied = "yes"
		}
		if s.AppliedAt != nil {
			at = formatTime(*s.AppliedAt)
		}
		rows = append(rows, []string{s.Version, s.Name, applied, at})
	}
	return renderTable(cmd.OutOrStdout(), []string{"VERSION", "NAME", "APPLIED", "APPLIED AT"}, rows)
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)

	migrateUpCmd.Flags().String("through", "", "Stop after this unit (version or version_name); empty applies all")
	migrateDownCmd.Flags().String("through", "", "Revert down to and including this unit; empty reverts all")
}
