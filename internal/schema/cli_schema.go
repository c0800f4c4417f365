// Package schema provides CLI and document format schema generation.
//
// This package generates machine-readable schema documentation for the CLI
// and the stories document it patches, enabling LLMs and other tools to
// understand how to use ccxp.
package schema

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CLISchema represents the complete CLI schema.
type CLISchema struct {
	Name        string        `json:"name"`
	Version     string        `json:"version"`
	Description string        `json:"description"`
	Commands    []CommandInfo `json:"commands"`
	GlobalFlags []FlagInfo    `json:"global_flags"`
	Workflows   []Workflow    `json:"workflows"`
}

// CommandInfo represents a CLI command.
type CommandInfo struct {
	Path        string        `json:"path"`
	Short       string        `json:"short"`
	Long        string        `json:"long,omitempty"`
	Usage       string        `json:"usage"`
	Examples    []string      `json:"examples,omitempty"`
	Flags       []FlagInfo    `json:"flags,omitempty"`
	Subcommands []CommandInfo `json:"subcommands,omitempty"`
}

// FlagInfo represents a CLI flag.
type FlagInfo struct {
	Name        string `json:"name"`
	Shorthand   string `json:"shorthand,omitempty"`
	Type        string `json:"type"`
	Default     string `json:"default,omitempty"`
	Description string `json:"description"`
}

// Workflow represents a common CLI workflow.
type Workflow struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Steps       []string `json:"steps"`
}

// GetCLISchema generates the CLI schema from a root Cobra command.
//
// Parameters:
//   - rootCmd: The root Cobra command
//   - version: CLI version string
//
// Returns:
//   - *CLISchema: The generated CLI schema
func GetCLISchema(rootCmd *cobra.Command, version string) *CLISchema {
	schema := &CLISchema{
		Name:        "ccxp",
		Version:     version,
		Description: "XP and TDD helpers: acceptance criteria to test stubs, TDD strategy advice, and user stories patching.",
		Commands:    extractCommands(rootCmd, ""),
		GlobalFlags: extractFlags(rootCmd.PersistentFlags()),
		Workflows:   getCommonWorkflows(),
	}
	return schema
}

// extractCommands recursively extracts command information.
func extractCommands(cmd *cobra.Command, parentPath string) []CommandInfo {
	var commands []CommandInfo

	for _, subCmd := range cmd.Commands() {
		// Skip help and completion commands
		if subCmd.Name() == "help" || subCmd.Name() == "completion" {
			continue
		}

		path := subCmd.Name()
		if parentPath != "" {
			path = parentPath + " " + subCmd.Name()
		}

		info := CommandInfo{
			Path:     path,
			Short:    subCmd.Short,
			Long:     subCmd.Long,
			Usage:    subCmd.UseLine(),
			Examples: extractExamples(subCmd.Example),
			Flags:    extractFlags(subCmd.LocalFlags()),
		}

		// Recursively get subcommands
		if subCmd.HasSubCommands() {
			info.Subcommands = extractCommands(subCmd, path)
		}

		commands = append(commands, info)
	}

	return commands
}

// extractFlags extracts flag information from a FlagSet.
func extractFlags(flags *pflag.FlagSet) []FlagInfo {
	var flagInfos []FlagInfo

	flags.VisitAll(func(f *pflag.Flag) {
		// Skip hidden flags
		if f.Hidden {
			return
		}

		info := FlagInfo{
			Name:        f.Name,
			Shorthand:   f.Shorthand,
			Type:        f.Value.Type(),
			Default:     f.DefValue,
			Description: f.Usage,
		}
		flagInfos = append(flagInfos, info)
	})

	return flagInfos
}

// extractExamples parses the Example field into individual examples.
func extractExamples(example string) []string {
	if example == "" {
		return nil
	}

	var examples []string
	lines := strings.Split(example, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			examples = append(examples, line)
		}
	}
	return examples
}

// getCommonWorkflows returns common CLI workflows.
func getCommonWorkflows() []Workflow {
	return []Workflow{
		{
			Name:        "Project setup",
			Description: "Write .ccxp/config.yaml with the default paths",
			Steps: []string{
				"ccxp config init",
				"ccxp config show",
			},
		},
		{
			Name:        "Acceptance criteria to test stubs",
			Description: "Turn GIVEN/WHEN/THEN lines into a Fake It test suite",
			Steps: []string{
				"ccxp accept docs/agile-artifacts/stories/user-stories-v1.0.md",
				"# Preview without writing:",
				"ccxp accept --stdout",
				"# Force a template:",
				"ccxp accept --category web",
				"# Regenerate on every save:",
				"ccxp accept --watch",
			},
		},
		{
			Name:        "Choose a TDD strategy",
			Description: "Pick Fake It, Triangulation or Obvious Implementation",
			Steps: []string{
				"ccxp strategy \"2つの数を足す関数\"",
				"# Second test for an existing behavior:",
				"ccxp strategy --subsequent --has-tests \"スコアを計算する\"",
				"# Interactive:",
				"ccxp strategy",
			},
		},
		{
			Name:        "Fix stories after a failed MVP validation",
			Description: "Inject missing features, criteria and order, then log the status",
			Steps: []string{
				"ccxp autofix --dry-run",
				"ccxp autofix",
				"# With a custom fix set:",
				"ccxp autofix --print-standard > fix.json",
				"ccxp autofix docs/agile-artifacts/stories/user-stories-v1.0.md fix.json",
			},
		},
		{
			Name:        "MCP server for AI agents",
			Description: "Start MCP server for AI integration",
			Steps: []string{
				"ccxp mcp serve",
			},
		},
	}
}

// ToMarkdown converts the schema to Markdown documentation.
//
// Parameters:
//   - schema: The CLI schema to convert
//
// Returns:
//   - string: Markdown documentation
func ToMarkdown(schema *CLISchema) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s CLI Reference\n\n", schema.Name))
	sb.WriteString(fmt.Sprintf("**Version:** %s\n\n", schema.Version))
	sb.WriteString(fmt.Sprintf("%s\n\n", schema.Description))

	// Global flags
	sb.WriteString("## Global Flags\n\n")
	sb.WriteString("| Flag | Type | Default | Description |\n")
	sb.WriteString("|------|------|---------|-------------|\n")
	for _, f := range schema.GlobalFlags {
		name := "--" + f.Name
		if f.Shorthand != "" {
			name = "-" + f.Shorthand + ", " + name
		}
		sb.WriteString(fmt.Sprintf("| `%s` | %s | %s | %s |\n", name, f.Type, f.Default, f.Description))
	}
	sb.WriteString("\n")

	// Commands
	sb.WriteString("## Commands\n\n")
	for _, cmd := range schema.Commands {
		writeCommandMarkdown(&sb, cmd, 3)
	}

	// Workflows
	sb.WriteString("## Common Workflows\n\n")
	for _, w := range schema.Workflows {
		sb.WriteString(fmt.Sprintf("### %s\n\n", w.Name))
		if w.Description != "" {
			sb.WriteString(fmt.Sprintf("%s\n\n", w.Description))
		}
		sb.WriteString("```bash\n")
		for _, step := range w.Steps {
			sb.WriteString(step + "\n")
		}
		sb.WriteString("```\n\n")
	}

	return sb.String()
}

// writeCommandMarkdown writes a command to markdown.
func writeCommandMarkdown(sb *strings.Builder, cmd CommandInfo, level int) {
	heading := strings.Repeat("#", level)
	sb.WriteString(fmt.Sprintf("%s `%s`\n\n", heading, cmd.Path))
	sb.WriteString(fmt.Sprintf("%s\n\n", cmd.Short))

	if cmd.Long != "" {
		sb.WriteString(fmt.Sprintf("%s\n\n", cmd.Long))
	}

	sb.WriteString(fmt.Sprintf("**Usage:** `%s`\n\n", cmd.Usage))

	if len(cmd.Flags) > 0 {
		sb.WriteString("**Flags:**\n\n")
		sb.WriteString("| Flag | Type | Default | Description |\n")
		sb.WriteString("|------|------|---------|-------------|\n")
		for _, f := range cmd.Flags {
			name := "--" + f.Name
			if f.Shorthand != "" {
				name = "-" + f.Shorthand + ", " + name
			}
			sb.WriteString(fmt.Sprintf("| `%s` | %s | %s | %s |\n", name, f.Type, f.Default, f.Description))
		}
		sb.WriteString("\n")
	}

	if len(cmd.Examples) > 0 {
		sb.WriteString("**Examples:**\n\n```bash\n")
		for _, ex := range cmd.Examples {
			sb.WriteString(ex + "\n")
		}
		sb.WriteString("```\n\n")
	}

	// Subcommands
	for _, sub := range cmd.Subcommands {
		writeCommandMarkdown(sb, sub, level+1)
	}
}

// ToLLMFormat converts the schema to an LLM-optimized single-file format.
//
// Parameters:
//   - schema: The CLI schema to convert
//   - documentFormat: The stories document format reference
//
// Returns:
//   - string: LLM-optimized documentation
func ToLLMFormat(schema *CLISchema, documentFormat string) string {
	var sb strings.Builder

	sb.WriteString("# ccxp CLI - Complete Reference for LLMs\n\n")
	sb.WriteString("This document contains everything needed to drive ccxp and to author documents it understands.\n\n")

	sb.WriteString("## Key Concepts\n\n")
	sb.WriteString("- **Acceptance criteria** are single lines of the form `GIVEN <precondition> WHEN <action> THEN <outcome>`. Keywords are upper case.\n")
	sb.WriteString("- **Category** (game, web, api, generic) is detected from keywords in the document and only selects the stub template.\n")
	sb.WriteString("- **Strategies**: Fake It (hardcode first), Triangulation (second example forces generalization), Obvious Implementation (write it directly).\n")
	sb.WriteString("- **autofix** is idempotent: running it twice leaves the document unchanged after the first run.\n\n")

	sb.WriteString("## Quick Reference\n\n")
	sb.WriteString("```\n")
	sb.WriteString("ccxp accept [stories.md]            # Generate tests/acceptance.test.js\n")
	sb.WriteString("ccxp accept --stdout                # Print the suite instead of writing it\n")
	sb.WriteString("ccxp strategy \"<description>\"       # Recommend a TDD strategy\n")
	sb.WriteString("ccxp strategy --template \"<desc>\"    # Include a red/green/refactor template\n")
	sb.WriteString("ccxp autofix [stories.md] [fix.json] # Patch the stories document\n")
	sb.WriteString("ccxp autofix --dry-run              # Show what would change\n")
	sb.WriteString("ccxp schema                         # Get this schema\n")
	sb.WriteString("```\n\n")

	sb.WriteString("## Exit Codes\n\n")
	sb.WriteString("- 0: success, or nothing to do (for example no criteria found)\n")
	sb.WriteString("- 1: missing input file, malformed fix config, or any other error\n\n")

	sb.WriteString("## CLI Commands\n\n")
	for _, cmd := range schema.Commands {
		writeLLMCommand(&sb, cmd)
	}

	sb.WriteString("---\n\n")
	sb.WriteString(documentFormat)

	return sb.String()
}

// writeLLMCommand writes a command in LLM-friendly format.
func writeLLMCommand(sb *strings.Builder, cmd CommandInfo) {
	sb.WriteString(fmt.Sprintf("### %s\n\n", cmd.Path))
	sb.WriteString(fmt.Sprintf("%s\n\n", cmd.Short))

	if cmd.Long != "" {
		sb.WriteString(fmt.Sprintf("%s\n\n", cmd.Long))
	}

	if len(cmd.Flags) > 0 {
		sb.WriteString("Flags:\n")
		for _, f := range cmd.Flags {
			name := "--" + f.Name
			if f.Shorthand != "" {
				name = "-" + f.Shorthand + "/" + name
			}
			sb.WriteString(fmt.Sprintf("  %s (%s): %s\n", name, f.Type, f.Description))
		}
		sb.WriteString("\n")
	}

	if len(cmd.Examples) > 0 {
		sb.WriteString("Examples:\n")
		for _, ex := range cmd.Examples {
			sb.WriteString(fmt.Sprintf("  %s\n", ex))
		}
		sb.WriteString("\n")
	}

	// Subcommands
	for _, sub := range cmd.Subcommands {
		writeLLMCommand(sb, sub)
	}
}
