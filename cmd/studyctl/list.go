package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/joshuapare/studykit/study/store"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newListCmd())
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every tracked document with its study count",
		Long: `The list command prints the table of tracked documents. Use "studyctl reset"
to clear a row or all of them.

Example:
  studyctl list
  studyctl list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList()
		},
	}
	return cmd
}

func runList() error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	entries := ws.Store.Entries()

	if jsonOut {
		return printJSON(nonNilEntries(entries))
	}

	printEntries(entries)
	return nil
}

// printEntries renders the tracked-documents table.
func printEntries(entries []store.Entry) {
	if quiet {
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stdout, "No study data yet.")
		return
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DOCUMENT\tCOUNT")
	total := 0
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%d\n", e.ID, e.Count)
		total += e.Count
	}
	tw.Flush()
	printVerbose("\n%d documents, %d sessions\n", len(entries), total)
}

// nonNilEntries keeps JSON output an array when nothing is tracked.
func nonNilEntries(entries []store.Entry) []store.Entry {
	if entries == nil {
		return []store.Entry{}
	}
	return entries
}
