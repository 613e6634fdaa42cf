package main

import (
	"github.com/joshuapare/studykit/study/session"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newRecordCmd())
}

func newRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record [doc]",
		Short: "Record a study session for a document",
		Long: `The record command increments the study counter of a document and writes
the new value into its front matter as "study_count".

The document is the active document. Without one, nothing is recorded.

Example:
  studyctl record notes/biology.md
  studyctl record --vault ~/notes biology.md --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(args)
		},
	}
	return cmd
}

func runRecord(args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	doc, err := ws.Resolve(docArg(args))
	if err != nil {
		return err
	}

	count, err := ws.Recorder.Record(doc)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"id":     doc.ID(),
			"count":  count,
			"status": session.StatusText(count),
		})
	}
	printVerbose("%s\n", session.StatusText(count))
	return nil
}
