package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var resetAll bool

func init() {
	cmd := newResetCmd()
	cmd.Flags().BoolVar(&resetAll, "all", false, "Clear the study count of every document")
	rootCmd.AddCommand(cmd)
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset <doc> | --all",
		Short: "Reset study counts",
		Long: `The reset command removes the study count of one document, or of every
document with --all, then prints the remaining table. Document headers are
left untouched; the next record rewrites them.

The document does not need to exist any more, so counts of deleted notes can
be cleared by their identifier.

Example:
  studyctl reset notes/biology.md
  studyctl reset --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(args)
		},
	}
	return cmd
}

func runReset(args []string) error {
	switch {
	case resetAll && len(args) > 0:
		return errors.New("give either a document or --all, not both")
	case !resetAll && len(args) == 0:
		return errors.New("nothing to reset: give a document or --all")
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	target := "*"
	if resetAll {
		n := ws.Store.Len()
		if err := ws.Store.ResetAll(); err != nil {
			return fmt.Errorf("failed to reset study data: %w", err)
		}
		printVerbose("Cleared %d documents\n", n)
	} else {
		doc, err := ws.Vault.Lookup(args[0])
		if err != nil {
			return err
		}
		id := doc.ID()
		target = id
		if ws.Store.Get(id) == 0 {
			printVerbose("%s has no study count\n", id)
		}
		if err := ws.Store.Reset(id); err != nil {
			return fmt.Errorf("failed to reset %s: %w", id, err)
		}
		printVerbose("Reset %s\n", id)
	}

	entries := ws.Store.Entries()
	if jsonOut {
		return printJSON(map[string]interface{}{
			"reset":   target,
			"entries": nonNilEntries(entries),
		})
	}
	printEntries(entries)
	return nil
}

