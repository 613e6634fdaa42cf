package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/joshuapare/studykit/internal/workspace"
	"github.com/spf13/cobra"
)

var checkFix bool

func init() {
	cmd := newCheckCmd()
	cmd.Flags().BoolVar(&checkFix, "fix", false, "Rewrite stale or missing headers from the stored counts")
	rootCmd.AddCommand(cmd)
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Compare stored counts with document headers",
		Long: `The check command compares every tracked count with the "study_count" value
in the document's front matter. Headers drift when a note is edited by hand
or when a content sync failed after a recorded session.

Statuses:
  ok              header matches the stored count
  stale           header holds a different value
  missing-header  the document has no study_count header
  missing-file    the document no longer exists

Example:
  studyctl check
  studyctl check --fix`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck()
		},
	}
	return cmd
}

func runCheck() error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	drifts, err := ws.Check()
	if err != nil {
		return fmt.Errorf("failed to check headers: %w", err)
	}

	fixed := 0
	if checkFix {
		fixed, err = ws.Repair(drifts)
		if err != nil {
			return fmt.Errorf("failed to repair headers: %w", err)
		}
	}

	if jsonOut {
		if drifts == nil {
			drifts = []workspace.Drift{}
		}
		return printJSON(map[string]interface{}{
			"documents": drifts,
			"fixed":     fixed,
		})
	}

	if quiet {
		return nil
	}
	if len(drifts) == 0 {
		fmt.Fprintln(os.Stdout, "No study data yet.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DOCUMENT\tCOUNT\tHEADER\tSTATUS")
	issues := 0
	for _, d := range drifts {
		hdr := "-"
		if d.Status == workspace.DriftOK || d.Status == workspace.DriftStale {
			hdr = fmt.Sprint(d.Header)
		}
		if d.Status != workspace.DriftOK {
			issues++
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", d.ID, d.Count, hdr, d.Status)
	}
	tw.Flush()

	switch {
	case issues == 0:
		printInfo("\nAll headers up to date.\n")
	case checkFix:
		printInfo("\nRewrote %d headers.\n", fixed)
	default:
		printInfo("\n%d documents need attention. Run with --fix to rewrite headers.\n", issues)
	}
	return nil
}
