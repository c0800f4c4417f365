// Package main provides the schema command for CLI introspection.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/B16B1RD/cc-xp-kit/internal/schema"
)

var schemaFormat string

// schemaCmd outputs CLI schema for LLM/tooling integration.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Output CLI schema for LLM/tooling integration",
	Long: `Output a machine-readable schema of all CLI commands.

This command introspects the CLI and outputs structured documentation
that LLMs and other tools can use to understand how to use the CLI.

FORMATS:
  json     - Full JSON schema with commands, flags, examples (default)
  markdown - Markdown documentation suitable for docs sites
  llm      - Single-file format optimized for LLM context windows

The schema includes:
  - All CLI commands with their flags and examples
  - Common workflows for typical use cases
  - The user stories document format the tools read and patch

EXAMPLES:
  ccxp schema                    # JSON to stdout
  ccxp schema --format markdown  # Markdown docs
  ccxp schema --format llm       # LLM-optimized single file
  ccxp schema > cli-schema.json  # Save to file`,
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().StringVar(&schemaFormat, "format", "json", "Output format: json, markdown, llm")
}

// runSchema generates and outputs the CLI schema.
func runSchema(cmd *cobra.Command, args []string) error {
	cliSchema := schema.GetCLISchema(cmd.Root(), version)
	out := cmd.OutOrStdout()

	switch schemaFormat {
	case "json":
		return printJSON(cmd, map[string]interface{}{
			"cli_schema":      cliSchema,
			"document_format": schema.DocumentFormat,
		})

	case "markdown":
		fmt.Fprintln(out, schema.ToMarkdown(cliSchema))
		fmt.Fprintln(out, "---")
		fmt.Fprintln(out)
		fmt.Fprint(out, schema.DocumentFormat, "\n")

	case "llm":
		fmt.Fprintln(out, schema.ToLLMFormat(cliSchema, schema.DocumentFormat))

	default:
		return fmt.Errorf("unknown format '%s': must be json, markdown, or llm", schemaFormat)
	}

	return nil
}
