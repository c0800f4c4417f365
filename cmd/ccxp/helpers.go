// Package main provides helper functions shared by CLI commands.
package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// wantsJSON reports whether --json was set globally or on the command.
func wantsJSON(cmd *cobra.Command) bool {
	jsonOutput, _ := cmd.Root().PersistentFlags().GetBool("json")
	if localJSON, _ := cmd.Flags().GetBool("json"); localJSON {
		jsonOutput = true
	}
	return jsonOutput
}

// printJSON writes v as indented JSON to the command's output.
func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// commandContext returns the command's context, or a background context for
// commands run outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
