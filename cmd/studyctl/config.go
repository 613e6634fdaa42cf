package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joshuapare/studykit/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configInitGlobal bool
	configInitForce  bool
)

func init() {
	cmd := newConfigCmd()
	rootCmd.AddCommand(cmd)
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create studykit configuration",
		Long: `Configuration is merged from defaults, ~/.studykit/config.yaml and
./.studykit/config.yaml, in that order. Flags override all of them.`,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigPath()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit()
		},
	}
	initCmd.Flags().BoolVar(&configInitGlobal, "global", false, "Write ~/.studykit/config.yaml instead of the project file")
	initCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing file")

	cmd.AddCommand(show, path, initCmd)
	return cmd
}

func runConfigShow() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(map[string]interface{}{
			"vault":      cfg.Vault,
			"data_file":  cfg.DataPath(),
			"extensions": cfg.Extensions,
			"log":        cfg.Log,
		})
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}

func runConfigPath() error {
	paths := map[string]string{
		"global":  config.GlobalConfigPath(),
		"project": config.ProjectConfigPath(),
	}
	if configFile != "" {
		paths["explicit"] = configFile
	}
	if jsonOut {
		return printJSON(paths)
	}
	for _, name := range []string{"global", "project", "explicit"} {
		p, ok := paths[name]
		if !ok {
			continue
		}
		state := "missing"
		if _, err := os.Stat(p); err == nil {
			state = "found"
		}
		printInfo("%-8s %s (%s)\n", name, p, state)
	}
	return nil
}

func runConfigInit() error {
	path := config.ProjectConfigPath()
	if configInitGlobal {
		path = config.GlobalConfigPath()
	}
	if path == "" {
		return fmt.Errorf("cannot determine config location")
	}
	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	printInfo("Wrote %s\n", path)
	return nil
}
