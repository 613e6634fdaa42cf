package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joshuapare/studykit/internal/logger"
	"github.com/joshuapare/studykit/internal/workspace"
	"github.com/joshuapare/studykit/study/document"
	"github.com/joshuapare/studykit/study/session"
	"github.com/spf13/cobra"
)

var statusFollow bool

func init() {
	cmd := newStatusCmd()
	cmd.Flags().
		BoolVarP(&statusFollow, "follow", "f", false, "Keep running and reprint the status whenever a document changes")
	rootCmd.AddCommand(cmd)
}

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [doc]",
		Short: "Print the status line for a document",
		Long: `The status command prints the status line ("Studied: N") of the active
document. With no document the status line is empty.

With --follow, every document that changes in the vault becomes the active
document and its status line is printed.

Example:
  studyctl status notes/biology.md
  studyctl status --follow`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(args)
		},
	}
	return cmd
}

func runStatus(args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	doc, err := ws.Resolve(docArg(args))
	if err != nil {
		return err
	}
	if doc != nil {
		printStatus(os.Stdout, ws, doc)
	} else if jsonOut {
		if err := printJSON(statusLine{}); err != nil {
			return err
		}
	}

	if !statusFollow {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events, err := ws.Vault.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch vault: %w", err)
	}
	printVerbose("Watching %s\n", ws.Vault.Root())
	followStatus(ws, events, os.Stdout)
	return nil
}

type statusLine struct {
	ID     string `json:"id"`
	Count  int    `json:"count"`
	Status string `json:"status"`
}

// followStatus prints a status line for each changed document until events
// is closed.
func followStatus(ws *workspace.Workspace, events <-chan document.Event, w io.Writer) {
	for ev := range events {
		switch {
		case ev.Err != nil:
			logger.Warn("watch error", "error", ev.Err)
			printVerbose("watch error: %v\n", ev.Err)
		case ev.Op == document.OpChanged:
			if err := ws.Reload(); err != nil {
				logger.Warn("reload failed", "error", err)
			}
			printStatus(w, ws, ev.Doc)
		}
	}
}

func printStatus(w io.Writer, ws *workspace.Workspace, doc document.Document) {
	count := ws.Store.Get(doc.ID())
	if jsonOut {
		enc := newJSONEncoder(w)
		_ = enc.Encode(statusLine{ID: doc.ID(), Count: count, Status: session.StatusText(count)})
		return
	}
	if quiet {
		return
	}
	fmt.Fprintf(w, "%s\t%s\n", doc.ID(), session.StatusText(count))
}
