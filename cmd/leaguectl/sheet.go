package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/qw-league/internal/app"
	"github.com/riskibarqy/qw-league/internal/infrastructure/workbook"
)

func (c *cli) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Write the ledger and every derived table to a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(a *app.App) error {
				export, err := a.Sheets.Export(cmd.Context())
				if err != nil {
					return fmt.Errorf("read league tables: %w", err)
				}
				if err := workbook.WriteFile(args[0], export); err != nil {
					return fmt.Errorf("write workbook: %w", err)
				}
				c.logger.Info("workbook exported",
					"path", args[0],
					"rows", len(export.Rows),
					"standings", len(export.Standings),
					"games", len(export.Games),
				)
				return nil
			})
		},
	}
}

func (c *cli) loadSheetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load-sheet <file.xlsx>",
		Short: "Replace rosters, teams and schedule from a workbook",
		Long: "Replace rosters, teams and schedule from the Players, Standins, Teams and Schedule sheets of a workbook. " +
			"Columns are matched by header name; absent sheets leave their table untouched.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := workbook.NewReader().ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read workbook: %w", err)
			}

			return c.withApp(cmd.Context(), func(a *app.App) error {
				result, err := a.Sheets.Load(cmd.Context(), sheets)
				if err != nil {
					return fmt.Errorf("load sheets: %w", err)
				}
				if c.asJSON {
					return writeJSON(cmd.OutOrStdout(), result)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "players=%d standins=%d teams=%d fixtures=%d\n",
					result.Players, result.Standins, result.Teams, result.Fixtures)
				return nil
			})
		},
	}
}
