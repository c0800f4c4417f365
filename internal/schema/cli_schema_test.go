package schema

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func testRoot() *cobra.Command {
	root := &cobra.Command{Use: "ccxp"}
	root.PersistentFlags().Bool("debug", false, "Enable debug logging")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-essential output")

	accept := &cobra.Command{
		Use:     "accept [stories-file]",
		Short:   "Generate test stubs",
		Example: "  # default path\n  ccxp accept\n  ccxp accept --stdout",
		Run:     func(*cobra.Command, []string) {},
	}
	accept.Flags().String("category", "auto", "Template category")
	accept.Flags().Bool("hidden", false, "hidden")
	_ = accept.Flags().MarkHidden("hidden")

	mcp := &cobra.Command{Use: "mcp", Short: "MCP server"}
	mcp.AddCommand(&cobra.Command{Use: "serve", Short: "Serve", Run: func(*cobra.Command, []string) {}})

	root.AddCommand(accept, mcp)
	return root
}

func TestGetCLISchema(t *testing.T) {
	s := GetCLISchema(testRoot(), "1.2.3")

	if s.Name != "ccxp" || s.Version != "1.2.3" {
		t.Fatalf("schema header = %q %q", s.Name, s.Version)
	}
	if len(s.GlobalFlags) != 2 {
		t.Errorf("GlobalFlags = %d, want 2", len(s.GlobalFlags))
	}

	var accept, mcp *CommandInfo
	for i := range s.Commands {
		switch s.Commands[i].Path {
		case "accept":
			accept = &s.Commands[i]
		case "mcp":
			mcp = &s.Commands[i]
		}
	}
	if accept == nil || mcp == nil {
		t.Fatalf("commands = %+v", s.Commands)
	}

	if len(accept.Flags) != 1 || accept.Flags[0].Name != "category" || accept.Flags[0].Default != "auto" {
		t.Errorf("accept flags = %+v, want only category", accept.Flags)
	}
	if want := []string{"ccxp accept", "ccxp accept --stdout"}; strings.Join(accept.Examples, "|") != strings.Join(want, "|") {
		t.Errorf("accept examples = %v, want %v", accept.Examples, want)
	}
	if len(mcp.Subcommands) != 1 || mcp.Subcommands[0].Path != "mcp serve" {
		t.Errorf("mcp subcommands = %+v", mcp.Subcommands)
	}
}

func TestToMarkdownAndLLMFormat(t *testing.T) {
	s := GetCLISchema(testRoot(), "dev")

	md := ToMarkdown(s)
	for _, want := range []string{"# ccxp CLI Reference", "### `accept`", "#### `mcp serve`", "| `-q, --quiet` |", "## Common Workflows"} {
		if !strings.Contains(md, want) {
			t.Errorf("ToMarkdown() missing %q", want)
		}
	}

	llm := ToLLMFormat(s, DocumentFormat)
	for _, want := range []string{"### accept", "  --category (string): Template category", "### 🎯 受け入れ基準", "**修正された実装順序:**"} {
		if !strings.Contains(llm, want) {
			t.Errorf("ToLLMFormat() missing %q", want)
		}
	}
}
