package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/thruflo/targetorder/internal/journal"
)

func newHistoryCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the most recent committed operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, cfg, _, err := resolvePaths(opts)
			if err != nil {
				return err
			}
			path := cfg.HistoryPath(base)
			if path == "" {
				return errors.New("history is disabled (history.file is empty)")
			}

			fs, err := journal.Open(path)
			if err != nil {
				return err
			}
			entries, err := fs.Tail(limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No history.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%4d  %s  %-14s %s\n", e.Seq, e.Time.Local().Format(time.DateTime), e.Op, strings.Join(e.Args, " "))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show (0 for all)")
	return cmd
}
