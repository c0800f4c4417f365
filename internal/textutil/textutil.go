// Package textutil provides small string helpers shared by the generators.
package textutil

import (
	"regexp"
	"strings"
)

var (
	// wordSeparator splits on runs of whitespace, including ideographic space.
	wordSeparator = regexp.MustCompile(`[\s\x{00a0}\x{3000}]+`)
	// nonIdentChars matches anything outside [a-zA-Z0-9].
	nonIdentChars = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// DefaultFunctionName is used when a description yields no usable identifier.
const DefaultFunctionName = "doSomething"

// FunctionName derives a placeholder function name from a free-text
// description.
//   - Takes the first whitespace-delimited word (leading whitespace yields an empty first word)
//   - Lowercases it
//   - Strips every character outside [a-zA-Z0-9]
//   - Falls back to DefaultFunctionName when nothing is left
//
// Example: "Calculate-Score for a line" → "calculatescore"
func FunctionName(description string) string {
	first := wordSeparator.Split(description, 2)[0]
	name := nonIdentChars.ReplaceAllString(strings.ToLower(first), "")
	if name == "" {
		return DefaultFunctionName
	}
	return name
}

// EscapeSingleQuoted escapes s for use inside a single-quoted JavaScript
// string literal.
func EscapeSingleQuoted(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
