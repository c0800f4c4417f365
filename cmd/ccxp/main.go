// Package main provides the entry point for the ccxp CLI.
//
// ccxp bundles the XP workflow helpers: acceptance test stub generation from
// GIVEN/WHEN/THEN criteria, a Kent Beck TDD strategy advisor, and an
// idempotent auto-fixer for user stories documents.
package main

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/B16B1RD/cc-xp-kit/internal/config"
	"github.com/B16B1RD/cc-xp-kit/internal/story"
	"github.com/B16B1RD/cc-xp-kit/internal/ui"
)

// Version information set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "ccxp",
	Short:         "XP workflow helpers for acceptance tests, TDD strategy and story fixes",
	Long:          ui.GetHelpText(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		if debug {
			log.SetLevel(log.DebugLevel)
			log.Debug("Debug logging enabled")
		}

		quiet, _ := cmd.Flags().GetBool("quiet")
		ui.SetQuietMode(quiet)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
//
// Errors are printed once here. Unknown commands typed in the wrong order
// (e.g., "ccxp init config") get a "did you mean" suggestion.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		ui.PrintError("%s", userMessage(err))

		errStr := err.Error()
		if strings.Contains(errStr, "unknown command") {
			// Error format: unknown command "init" for "ccxp"
			if start := strings.Index(errStr, `unknown command "`); start != -1 {
				start += len(`unknown command "`)
				if end := strings.Index(errStr[start:], `"`); end != -1 {
					unknownCmd := errStr[start : start+end]
					if suggestion, found := suggestCorrectCommand(unknownCmd, os.Args[1:], rootCmd); found {
						printCommandSuggestion(suggestion)
					}
				}
			}
		}
		os.Exit(1)
	}
}

// userMessage returns the user-facing text for err.
func userMessage(err error) string {
	var missing *config.MissingFileError
	if errors.As(err, &missing) {
		return missing.UserMessage()
	}
	var parse *story.ConfigParseError
	if errors.As(err, &parse) {
		return parse.UserMessage()
	}
	return err.Error()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON (where supported)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-essential output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(acceptCmd)
	rootCmd.AddCommand(strategyCmd)
	rootCmd.AddCommand(autofixCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(skillCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		ui.PrintBanner(version)
		ui.PrintInfo("Version: %s", version)
		ui.PrintInfo("Commit: %s", commit)
		ui.PrintInfo("Built: %s", date)
	},
}

func main() {
	Execute()
}
