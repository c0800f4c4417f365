// Package ui provides the banner and help text for the ccxp CLI.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// banner is the ASCII art logo.
const banner = `
   ██████╗ ██████╗██╗  ██╗██████╗
  ██╔════╝██╔════╝╚██╗██╔╝██╔══██╗
  ██║     ██║      ╚███╔╝ ██████╔╝
  ██║     ██║      ██╔██╗ ██╔═══╝
  ╚██████╗╚██████╗██╔╝ ██╗██║
   ╚═════╝ ╚═════╝╚═╝  ╚═╝╚═╝`

// tagline is the product tagline.
const tagline = "XP and TDD helpers for story-driven development"

// PrintBanner prints the banner with version info.
//
// Parameters:
//   - version: The CLI version string to display
func PrintBanner(version string) {
	if IsQuiet() {
		return
	}

	styledBanner := lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true).
		Render(banner)

	writeln(false, styledBanner)
	writeln(false, "")

	taglineStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		PaddingLeft(2)
	writeln(false, taglineStyle.Render(tagline))
	writeln(false, "")

	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		PaddingLeft(2)
	writeln(false, infoStyle.Render(fmt.Sprintf("Version: %s", version)))
	writeln(false, "")
}

// GetHelpText returns the long help text shown by `ccxp --help`.
func GetHelpText() string {
	purple := lipgloss.NewStyle().Foreground(Purple).Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	return fmt.Sprintf(`%s

%s
  %s      Generate test stubs from GIVEN/WHEN/THEN criteria
  %s  Recommend Fake It, Triangulation or Obvious Implementation
  %s     Patch the user stories document after MVP validation

%s
  %s        Show or initialize .ccxp/config.yaml

%s
  %s        Start MCP server for AI agent integration
  %s     Install agent skills for Claude Code, Cursor, Codex
  %s             Output machine-readable CLI schema`,
		dim.Render(tagline+"."),
		purple.Render("Tools:"),
		purple.Render("ccxp accept [stories.md]"),
		purple.Render("ccxp strategy [description]"),
		purple.Render("ccxp autofix [stories.md] [fix.json]"),
		purple.Render("Project:"),
		purple.Render("ccxp config"),
		purple.Render("AI/LLM:"),
		purple.Render("ccxp mcp serve"),
		purple.Render("ccxp skill install"),
		purple.Render("ccxp schema"),
	)
}
