package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ledgersense/ledgersense/internal/cli"
	"github.com/ledgersense/ledgersense/internal/config"
	"github.com/spf13/cobra"
)

func risksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "risks",
		Short: "List persisted risk events",
		Long:  `Show transactions that were flagged as unusual, most recent first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			settings, err := config.Load()
			if err != nil {
				return err
			}
			store, err := initStorage(cmd.Context(), settings)
			if err != nil {
				return err
			}
			defer store.Close()

			events, err := store.ListRiskEvents(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list risk events: %w", err)
			}

			if len(events) == 0 {
				fmt.Println(cli.FormatInfo("No risk events recorded."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintln(w, "CREATED\tTRANSACTION\tSCORE\tSEVERITY\tREASONS")
			for _, ev := range events {
				severity := cli.SeverityStyle(string(ev.Severity)).Render(string(ev.Severity))
				reasons := make([]string, len(ev.Reasons))
				for i, r := range ev.Reasons {
					reasons[i] = string(r)
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
					ev.CreatedAt.Format("2006-01-02 15:04"),
					ev.TransactionID, ev.Score, severity, strings.Join(reasons, ","))
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 50, "maximum number of events to show")

	return cmd
}
