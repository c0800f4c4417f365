// Package ui provides result rendering components.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func displayWidth(s string) int {
	return lipgloss.Width(s)
}

// OutcomeLabel returns an icon and styled label for a patch outcome.
//
// Parameters:
//   - outcome: "applied", "already-applied", "section-not-found" or "no-input"
//
// Returns:
//   - string: The styled label
func OutcomeLabel(outcome string) string {
	var style lipgloss.Style
	var icon string

	switch outcome {
	case "applied":
		style = StatusAppliedStyle
		icon = "✓"
	case "already-applied":
		style = StatusSkippedStyle
		icon = "="
	case "section-not-found":
		style = StatusMissingStyle
		icon = "?"
	default:
		style = DimStyle
		icon = "·"
	}

	return style.Render(fmt.Sprintf("%s %s", icon, outcome))
}

// PrintResultBox prints a boxed summary whose border reflects success.
//
// Parameters:
//   - title: Box title
//   - ok: Whether the result is a success
//   - lines: Body lines
func PrintResultBox(title string, ok bool, lines ...string) {
	border := Green
	icon := "✓"
	if !ok {
		border = Amber
		icon = "•"
	}

	content := BoxTitleStyle.Render(fmt.Sprintf("%s %s", icon, title))
	for _, line := range lines {
		content += "\n" + line
	}

	style := BoxStyle.BorderForeground(border)
	writeln(false, style.Render(content))
}
