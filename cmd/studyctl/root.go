package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joshuapare/studykit/internal/config"
	"github.com/joshuapare/studykit/internal/logger"
	"github.com/joshuapare/studykit/internal/workspace"
	"github.com/joshuapare/studykit/study/session"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	debug      bool
	vaultDir   string
	dataFile   string
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "studyctl",
	Short: "Track how many times you have studied each note",
	Long: `studyctl keeps a study counter for every Markdown note in a vault.

Recording a session bumps the note's counter and writes the new value into the
note's front matter as "study_count". Counters live in <vault>/.studykit/data.json
unless data_file is configured.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Write debug logs to ~/.studykit/logs/")
	rootCmd.PersistentFlags().StringVar(&vaultDir, "vault", "", "Notes vault directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data-file", "", "Counter data file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Use this config file instead of the global/project ones")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves configuration and applies flag overrides.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadFile(configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if vaultDir != "" {
		cfg.Vault = vaultDir
	}
	if dataFile != "" {
		cfg.DataFile = dataFile
	}
	return cfg, nil
}

// openWorkspace loads config, initializes logging and opens the vault.
// Notifications are printed unless JSON output was requested.
func openWorkspace() (*workspace.Workspace, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if debug {
		level = min(level, slog.LevelDebug)
	}
	if err := logger.Init(logger.Options{
		Enabled: debug || cfg.Log.Enabled,
		LogDir:  cfg.LogDir(),
		Level:   level,
	}); err != nil {
		printError("failed to init logging: %v\n", err)
	}

	printVerbose("Opening vault: %s\n", cfg.Vault)
	ws, err := workspace.Open(cfg, session.NotifierFunc(notify))
	if err != nil {
		return nil, err
	}
	return ws, nil
}

// notify prints a recorder notification.
func notify(msg string) {
	if !jsonOut {
		printInfo("%s\n", msg)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	return newJSONEncoder(os.Stdout).Encode(v)
}

func newJSONEncoder(w io.Writer) *json.Encoder {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder
}

// docArg returns the optional document argument, or "" for no active document.
func docArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
