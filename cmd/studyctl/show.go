package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newShowCmd())
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [doc]",
		Short: "Show how many times a document was studied",
		Long: `The show command prints the study count of a document without changing it.

Example:
  studyctl show notes/biology.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(args)
		},
	}
	return cmd
}

func runShow(args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	doc, err := ws.Resolve(docArg(args))
	if err != nil {
		return err
	}

	count, err := ws.Recorder.Show(doc)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"id":    doc.ID(),
			"count": count,
		})
	}
	return nil
}
