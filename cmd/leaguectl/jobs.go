package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/qw-league/internal/app"
	"github.com/riskibarqy/qw-league/internal/usecase"
)

func (c *cli) enqueueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enqueue <hub-url>...",
		Short: "Stage hub game URLs for the next import run",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(a *app.App) error {
				result, err := a.Intake.Enqueue(cmd.Context(), args)
				if err != nil {
					return fmt.Errorf("enqueue: %w", err)
				}
				if c.asJSON {
					return writeJSON(cmd.OutOrStdout(), result)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "accepted %d of %d url(s)\n", result.Accepted, len(args))
				return nil
			})
		},
	}
}

func (c *cli) processCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Import every staged URL, then re-aggregate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd.Context(), func(a *app.App) error {
				result, err := a.Runner.Process(cmd.Context())
				return c.printRun(cmd.OutOrStdout(), result, err)
			})
		},
	}
}

func (c *cli) aggregateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "aggregate",
		Short: "Rebuild player stats, standings and the games log from the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd.Context(), func(a *app.App) error {
				result, err := a.Runner.Aggregate(cmd.Context())
				return c.printRun(cmd.OutOrStdout(), result, err)
			})
		},
	}
}

func (c *cli) printRun(w io.Writer, result usecase.RunResult, runErr error) error {
	if runErr != nil {
		return fmt.Errorf("%s run %s: %w", result.Job, result.RunID, runErr)
	}
	if c.asJSON {
		return writeJSON(w, result)
	}

	rows := [][]string{
		{"run id", result.RunID},
		{"job", result.Job},
		{"status", result.Status},
		{"duration", result.FinishedAt.Sub(result.StartedAt).String()},
	}
	if imp := result.Import; imp != nil {
		rows = append(rows,
			[]string{"pending", strconv.Itoa(imp.Pending)},
			[]string{"imported", strconv.Itoa(imp.Imported)},
			[]string{"duplicates", strconv.Itoa(imp.Duplicates)},
			[]string{"skipped", strconv.Itoa(imp.Skipped)},
			[]string{"failed", strconv.Itoa(imp.Failed)},
			[]string{"rejected", strconv.Itoa(imp.Rejected)},
			[]string{"rows appended", strconv.Itoa(imp.RowsAppended)},
		)
	}
	if agg := result.Aggregation; agg != nil {
		rows = append(rows,
			[]string{"ledger rows", strconv.Itoa(agg.Rows)},
			[]string{"players", strconv.Itoa(agg.Players)},
			[]string{"standins", strconv.Itoa(agg.Standins)},
			[]string{"unmatched", strconv.Itoa(agg.Unmatched)},
			[]string{"teams", strconv.Itoa(agg.Teams)},
			[]string{"games", strconv.Itoa(agg.Games)},
			[]string{"malformed", strconv.Itoa(agg.Malformed)},
		)
	}
	renderTable(w, []string{"field", "value"}, rows)
	return nil
}
