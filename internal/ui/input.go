// Package ui provides interactive input components.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// LinePrompter reads one answer line per prompt from an input stream.
//
// It returns io.EOF once the stream is exhausted, including when the final
// line has no trailing newline and is empty.
type LinePrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewLinePrompter creates a prompter reading from in and writing prompts to w.
func NewLinePrompter(in io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{
		reader: bufio.NewReader(in),
		out:    w,
	}
}

// Prompt displays message and reads the answer line.
//
// Parameters:
//   - message: The prompt message to display
//
// Returns:
//   - string: The trimmed answer
//   - error: io.EOF when input is closed, or any read error
func (p *LinePrompter) Prompt(message string) (string, error) {
	fmt.Fprintf(p.out, "%s ", InfoStyle.Render(message))

	input, err := p.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && input != "" {
			return strings.TrimSpace(input), nil
		}
		return "", err
	}

	return strings.TrimSpace(input), nil
}

// Prompt displays a prompt and reads user input from stdin.
//
// Parameters:
//   - message: The prompt message to display
//
// Returns:
//   - string: The user's input
//   - error: Any error that occurred
func Prompt(message string) (string, error) {
	return NewLinePrompter(os.Stdin, os.Stdout).Prompt(message)
}

// PromptConfirm displays a yes/no confirmation prompt.
//
// Parameters:
//   - message: The prompt message to display
//   - defaultYes: Whether the default is yes (true) or no (false)
//
// Returns:
//   - bool: True if user confirmed, false otherwise
//   - error: Any error that occurred
func PromptConfirm(message string, defaultYes bool) (bool, error) {
	suffix := "[y/N]"
	if defaultYes {
		suffix = "[Y/n]"
	}

	input, err := Prompt(fmt.Sprintf("%s %s", message, suffix))
	if err != nil {
		return false, err
	}

	input = strings.ToLower(strings.TrimSpace(input))

	if input == "" {
		return defaultYes, nil
	}

	return input == "y" || input == "yes", nil
}

// IsInteractive reports whether stdin is a terminal.
func IsInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}
