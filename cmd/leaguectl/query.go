package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/qw-league/internal/app"
	"github.com/riskibarqy/qw-league/internal/usecase"
)

func (c *cli) queryCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "query <endpoint>",
		Short:     "Print one read-only view",
		Long:      "Print one read-only view. Endpoints: " + strings.Join(usecase.Endpoints(), ", ") + ".",
		Args:      cobra.ExactArgs(1),
		ValidArgs: usecase.Endpoints(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.query(cmd, args[0])
		},
	}
}

// endpointCmd is a shortcut for "query <endpoint>".
func (c *cli) endpointCmd(endpoint, short string) *cobra.Command {
	return &cobra.Command{
		Use:   endpoint,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.query(cmd, endpoint)
		},
	}
}

func (c *cli) query(cmd *cobra.Command, endpoint string) error {
	return c.withApp(cmd.Context(), func(a *app.App) error {
		records, err := a.Query.Query(cmd.Context(), endpoint)
		if err != nil {
			return fmt.Errorf("query %s: %w", endpoint, err)
		}
		if c.asJSON {
			return writeJSON(cmd.OutOrStdout(), records)
		}
		printRecords(cmd.OutOrStdout(), records)
		return nil
	})
}

func printRecords(w io.Writer, records []usecase.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}

	header := records[0].Keys()
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		row := make([]string, len(header))
		for i, key := range header {
			value, _ := record.Get(key)
			row[i] = formatCell(value)
		}
		rows = append(rows, row)
	}
	renderTable(w, header, rows)
	fmt.Fprintf(w, "\n(%d rows)\n", len(records))
}

func formatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []usecase.MapRecord:
		parts := make([]string, 0, len(v))
		for _, m := range v {
			parts = append(parts, fmt.Sprintf("%s %d-%d", m.MapName, m.TeamAFrags, m.TeamBFrags))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}
