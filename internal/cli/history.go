package cli

import (
	"fmt"

	"github.com/claude/liftcalc/internal/journal"
	"github.com/spf13/cobra"
)

func newHistoryCmd(opts *options) *cobra.Command {
	var limit int
	var kind string

	cmd := &cobra.Command{
		Use:     "history",
		Short:   "Show recent calculations",
		GroupID: "tooling",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}
			j, err := journal.Open(opts.stateDir)
			if err != nil {
				return err
			}
			defer j.Close()

			entries, err := j.Recent(limit, kind)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				if entries == nil {
					entries = []journal.Entry{}
				}
				return writeJSON(out, entries)
			}
			if len(entries) == 0 {
				_, _ = dimColor.Fprintln(out, "no calculations recorded")
				return nil
			}
			for _, e := range entries {
				_, _ = dimColor.Fprintf(out, "%s ", e.CreatedAt.Format("2006-01-02 15:04"))
				_, _ = labelColor.Fprintf(out, "%-9s", e.Kind)
				fmt.Fprintf(out, " %s -> %s\n", e.Input, e.Result)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	cmd.Flags().StringVar(&kind, "kind", "", "only show one kind (estimate, prescribe, plates)")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded calculations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := journal.Open(opts.stateDir)
			if err != nil {
				return err
			}
			defer j.Close()

			n, err := j.Clear()
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("removed %d entries", n))
			return nil
		},
	})
	return cmd
}
