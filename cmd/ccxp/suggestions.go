// Package main provides command suggestion functionality for the CLI.
//
// This file implements "did you mean" suggestions when users type commands
// in the wrong order (e.g., "ccxp show config" instead of "ccxp config show").
package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/B16B1RD/cc-xp-kit/internal/ui"
)

// subcommandMap maps subcommand names to their parent commands.
//
// Example: "serve" -> ["mcp"] means "serve" is a subcommand of "mcp".
var subcommandMap = map[string][]string{
	"show":    {"config", "skill"},
	"path":    {"config"},
	"init":    {"config"},
	"serve":   {"mcp"},
	"list":    {"skill"},
	"install": {"skill"},
}

// suggestCorrectCommand checks if the user typed a subcommand at the wrong level
// and returns a suggestion if found.
//
// Parameters:
//   - unknownCmd: The command that was not recognized by Cobra
//   - allArgs: All command line arguments (excluding program name)
//   - rootCmd: The root command to search for valid parent commands
//
// Returns:
//   - string: A suggested command string with correct order, or empty if no suggestion found
//   - bool: True if a valid suggestion was found
//
// Example:
//
//	unknownCmd: "show"
//	allArgs: ["--debug", "show", "config", "--json"]
//	Returns: "ccxp --debug config show --json", true
func suggestCorrectCommand(unknownCmd string, allArgs []string, rootCmd *cobra.Command) (string, bool) {
	parentCmds, isSubcommand := subcommandMap[unknownCmd]
	if !isSubcommand {
		return "", false
	}

	unknownCmdIdx := -1
	for i, arg := range allArgs {
		if arg == unknownCmd {
			unknownCmdIdx = i
			break
		}
	}
	if unknownCmdIdx == -1 {
		return "", false
	}

	for i := unknownCmdIdx + 1; i < len(allArgs); i++ {
		arg := allArgs[i]
		if strings.HasPrefix(arg, "-") {
			continue
		}

		for _, parentCmd := range parentCmds {
			if arg != parentCmd || !hasCommand(rootCmd, parentCmd) {
				continue
			}

			parts := []string{rootCmd.Name()}
			parts = append(parts, allArgs[:unknownCmdIdx]...)
			parts = append(parts, parentCmd, unknownCmd)
			parts = append(parts, allArgs[unknownCmdIdx+1:i]...)
			parts = append(parts, allArgs[i+1:]...)
			return strings.Join(parts, " "), true
		}
	}

	return "", false
}

func hasCommand(rootCmd *cobra.Command, name string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name {
			return true
		}
	}
	return false
}

// printCommandSuggestion prints a "did you mean" suggestion to the user.
func printCommandSuggestion(suggestion string) {
	ui.Println()
	ui.PrintInfo("Did you mean:")
	ui.PrintDim("  %s", suggestion)
	ui.Println()
}
