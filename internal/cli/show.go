package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/thruflo/targetorder/internal/sequence"
	"golang.org/x/term"
)

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the layer order with group membership",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printLayers(out, w.seq, terminalWidth(out))
			return nil
		},
	}
}

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the project's grouping and layer order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd, opts)
			if err != nil {
				return err
			}
			if err := w.seq.Validate(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %d targets, %d groups\n", w.seq.Len(), len(w.seq.GroupIDs()))
			return nil
		},
	}
}

// terminalWidth returns the column count of out if it is a terminal, or 0.
func terminalWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// truncate cuts s to at most width runes. width <= 0 leaves s whole.
func truncate(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width])
}

// printLayers writes one row per target. Non-leader members are indented
// under their leader. Rows are cut at width when it is positive.
func printLayers(out io.Writer, seq *sequence.Sequence, width int) {
	if seq.Len() == 0 {
		fmt.Fprintln(out, "No targets.")
		return
	}

	header := []string{"POS", "ID", "NAME", "GROUP", "RANK", "GROUP NAME"}
	rows := make([][]string, 0, seq.Len())
	for i, t := range seq.Targets() {
		name, gid, rank, gname := t.Name(), "-", "-", ""
		if t.IsStage {
			name = "(stage)"
		}
		if d := t.Group(); d != nil && d.GroupID != "" {
			gid, rank, gname = d.GroupID, strconv.Itoa(d.IndexInGroup), d.GroupName
			if d.IndexInGroup > 0 {
				name = "  " + name
			}
		}
		rows = append(rows, []string{strconv.Itoa(i), t.ID, name, gid, rank, gname})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, r := range rows {
		for i, c := range r {
			widths[i] = max(widths[i], utf8.RuneCountInString(c))
		}
	}

	writeRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = fmt.Sprintf("%-*s", widths[i], c)
		}
		line := strings.TrimRight(strings.Join(parts, "  "), " ")
		fmt.Fprintln(out, truncate(line, width))
	}

	writeRow(header)
	dashes := make([]string, len(header))
	for i, wd := range widths {
		dashes[i] = strings.Repeat("-", wd)
	}
	writeRow(dashes)
	for _, r := range rows {
		writeRow(r)
	}
}
