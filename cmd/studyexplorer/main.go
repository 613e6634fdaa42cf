package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshuapare/studykit/internal/config"
	"github.com/joshuapare/studykit/internal/logger"
	"github.com/joshuapare/studykit/internal/workspace"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Parse flags first (before positional args)
	args := os.Args[1:]
	debugMode := false

	// Extract --debug/-d flag
	filteredArgs := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "--debug" || arg == "-d" {
			debugMode = true
		} else {
			filteredArgs = append(filteredArgs, arg)
		}
	}

	if len(filteredArgs) > 0 {
		switch filteredArgs[0] {
		case "--help", "-h":
			printHelp()
			os.Exit(0)
		case "--version", "-v":
			fmt.Printf("studyexplorer %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built: %s\n", date)
			os.Exit(0)
		}
	}
	if len(filteredArgs) > 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	if len(filteredArgs) == 1 {
		cfg.Vault = filteredArgs[0]
	}

	// Initialize logger (must be before any logging calls)
	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	if debugMode {
		level = slog.LevelDebug
	}
	if err := logger.Init(logger.Options{
		Enabled: debugMode || cfg.Log.Enabled,
		LogDir:  cfg.LogDir(),
		Level:   level,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}

	logger.Info("starting studyexplorer", "vault", cfg.Vault, "debug", debugMode)

	// Notifications reach the status bar through each call's outcome.
	ws, err := workspace.Open(cfg, nil)
	if err != nil {
		logger.Error("failed to open vault", "vault", cfg.Vault, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create the TUI model
	m := NewModel(ws)
	events, err := ws.Vault.Watch(ctx)
	if err != nil {
		// The explorer still works without live refresh
		logger.Warn("vault watch unavailable", "error", err)
	} else {
		m.SetEvents(events)
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		cancel()
		os.Exit(1)
	}

	logger.Info("studyexplorer exited normally")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: studyexplorer [options] [vault]\n")
	fmt.Fprintf(os.Stderr, "Try 'studyexplorer --help' for more information.\n")
}

func printHelp() {
	fmt.Println("studyexplorer - Interactive TUI for study counters")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  studyexplorer [options] [vault]")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Browse the Markdown notes of a vault and record study sessions.")
	fmt.Println("  The selected note is the active document; its count is shown in")
	fmt.Println("  the status bar and written to the note's front matter on record.")
	fmt.Println()
	fmt.Println("  Keys:")
	fmt.Println("    ↑/k, ↓/j    Select document")
	fmt.Println("    r           Record a study session")
	fmt.Println("    s           Show the study count")
	fmt.Println("    ,           Settings (tracked documents, reset)")
	fmt.Println("    c           Copy document path")
	fmt.Println("    ?           Show help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -d, --debug    Enable debug logging to ~/.studykit/logs/")
	fmt.Println("  -h, --help     Show this help message")
	fmt.Println("  -v, --version  Show version information")
	fmt.Println()
	fmt.Println("The vault defaults to the 'vault' setting of ~/.studykit/config.yaml.")
	fmt.Println("For non-interactive use, run 'studyctl' instead.")
}
