// Package ui provides terminal UI components using Charm libraries.
//
// This package contains the styling, message printing, and line-based input
// used by the ccxp commands.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette.
var (
	// Primary accent
	Purple = lipgloss.Color("#9D61FF")

	// Secondary colors
	Teal    = lipgloss.Color("#14B8A6")
	Red     = lipgloss.Color("#EF4444")
	Amber   = lipgloss.Color("#F59E0B")
	Green   = lipgloss.Color("#22C55E")
	Gray    = lipgloss.Color("#6B7280")
	DimGray = lipgloss.Color("#9CA3AF")
)

// Text styles.
var (
	// TitleStyle for main headings
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Purple)

	// SubtitleStyle for secondary headings
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	// SuccessStyle for success messages
	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	// ErrorStyle for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	// WarningStyle for warning messages
	WarningStyle = lipgloss.NewStyle().
			Foreground(Amber)

	// InfoStyle for informational messages
	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E5E7EB"))

	// DimStyle for less important text
	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	// AccentStyle for numbers and keys
	AccentStyle = lipgloss.NewStyle().
			Foreground(Teal)

	// CodeStyle for inline code and paths
	CodeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F3F4F6")).
			Background(lipgloss.Color("#374151")).
			Padding(0, 1)
)

// Box styles.
var (
	// BoxStyle for content boxes
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Purple).
			Padding(0, 1)

	// BoxTitleStyle for box titles
	BoxTitleStyle = lipgloss.NewStyle().
			Foreground(Purple).
			Bold(true)
)

// Table styles.
var (
	// TableHeaderStyle for table headers
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(DimGray).
				Bold(true)

	// TableCellStyle for table cells
	TableCellStyle = lipgloss.NewStyle()
)

// Outcome styles used for patch reports.
var (
	// StatusAppliedStyle for applied patches
	StatusAppliedStyle = lipgloss.NewStyle().
				Foreground(Green)

	// StatusSkippedStyle for patches that were already present
	StatusSkippedStyle = lipgloss.NewStyle().
				Foreground(Teal)

	// StatusMissingStyle for patches whose section was not found
	StatusMissingStyle = lipgloss.NewStyle().
				Foreground(Amber)
)

// Diff styles.
var (
	// DiffAddStyle for added lines
	DiffAddStyle = lipgloss.NewStyle().
			Foreground(Green)

	// DiffRemoveStyle for removed lines
	DiffRemoveStyle = lipgloss.NewStyle().
			Foreground(Red)

	// DiffContextStyle for context lines
	DiffContextStyle = lipgloss.NewStyle().
				Foreground(DimGray)
)
