package config

import (
	"fmt"
	"strings"
)

// MissingFileError reports a required input file that does not exist.
type MissingFileError struct {
	// Path is the file that was expected, empty when a search failed.
	Path string

	// Candidates lists the locations searched when Path is empty.
	Candidates []string

	// Usage is a one-line usage hint shown with the message.
	Usage string
}

// Error returns a user-facing message.
func (e *MissingFileError) Error() string {
	return e.UserMessage()
}

// UserMessage names the missing path (or the searched locations) and adds
// the usage hint.
func (e *MissingFileError) UserMessage() string {
	var msg string
	if e.Path != "" {
		msg = fmt.Sprintf("user stories file not found: %s", e.Path)
	} else {
		msg = fmt.Sprintf("user stories file not found (searched: %s)", strings.Join(e.Candidates, ", "))
	}
	if e.Usage != "" {
		msg += "\nUsage: " + e.Usage
	}
	return msg
}
