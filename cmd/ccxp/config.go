// Package main provides project settings commands for .ccxp/config.yaml.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/B16B1RD/cc-xp-kit/internal/config"
	"github.com/B16B1RD/cc-xp-kit/internal/ui"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and create project settings",
	Long: `View and create local project settings in .ccxp/config.yaml.

The file is searched for from the current directory upwards. Every key is
optional; missing keys use the built-in defaults.

EXAMPLES:
  ccxp config path
  ccxp config show
  ccxp config init`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show project config path",
	RunE:  runConfigPath,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective project settings",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func resolveProjectConfig() (string, *config.ProjectConfig, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return config.Resolve(cwd)
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	configPath, _, err := resolveProjectConfig()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), configPath)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	configPath, cfg, err := resolveProjectConfig()
	if err != nil {
		return err
	}

	_, statErr := os.Stat(configPath)
	exists := statErr == nil

	if wantsJSON(cmd) {
		return printJSON(cmd, map[string]interface{}{
			"path":   configPath,
			"exists": exists,
			"config": map[string]interface{}{
				"stories":  map[string]interface{}{"path": cfg.Stories.Path, "search": cfg.Stories.Search},
				"tests":    map[string]interface{}{"dir": cfg.Tests.Dir, "file": cfg.Tests.File},
				"keywords": map[string]interface{}{"file": cfg.Keywords.File},
				"strategy": map[string]interface{}{"short_text_threshold": cfg.Strategy.ShortTextThreshold},
			},
		})
	}

	if exists {
		ui.PrintInfo("Project config: %s", configPath)
	} else {
		ui.PrintInfo("Project config: %s (not created, showing defaults)", configPath)
	}
	ui.Println()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	configPath := filepath.Join(cwd, config.DirName, config.FileName)

	if _, err := os.Stat(configPath); err == nil && !configInitForce {
		if !ui.IsInteractive() {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
		}
		ok, err := ui.PromptConfirm(fmt.Sprintf("%s already exists. Overwrite?", configPath), false)
		if err != nil {
			return err
		}
		if !ok {
			ui.PrintInfo("Left %s unchanged", configPath)
			return nil
		}
	}

	if err := config.WriteProjectConfig(configPath, config.Default()); err != nil {
		return err
	}
	ui.PrintSuccess("Created %s", configPath)
	return nil
}
