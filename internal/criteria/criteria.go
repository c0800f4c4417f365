// Package criteria extracts GIVEN/WHEN/THEN acceptance criteria from
// user-story documents and classifies the project they describe.
package criteria

import (
	"regexp"
	"strings"
)

// Criterion is one acceptance criterion in GIVEN/WHEN/THEN form.
type Criterion struct {
	// Given is the precondition.
	Given string `json:"given"`

	// When is the action.
	When string `json:"when"`

	// Then is the expected outcome.
	Then string `json:"then"`
}

// String renders the criterion back into its sentence form.
func (c Criterion) String() string {
	return "GIVEN " + c.Given + " WHEN " + c.When + " THEN " + c.Then
}

const (
	// space covers ASCII whitespace plus the Unicode spaces that appear in
	// Japanese documents (ideographic space, NBSP, ...).
	space = `[\s\v\x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}]`
	// char is any character except a line terminator.
	char = `[^\n\r\x{2028}\x{2029}]`
)

// criterionPattern matches GIVEN <a> WHEN <b> THEN <c>. The GIVEN and WHEN
// parts are the shortest runs up to the next keyword; the THEN part runs to
// the end of the line.
var criterionPattern = regexp.MustCompile(
	`GIVEN` + space + `+(` + char + `+?)` + space + `+WHEN` + space + `+(` + char + `+?)` + space + `+THEN` + space + `+(` + char + `+)`,
)

// Extract returns every acceptance criterion in content, in order of
// appearance. Fragments missing one of the three keywords are skipped.
// A document without criteria yields an empty result, never an error.
//
// Parameters:
//   - content: The document text
//
// Returns:
//   - []Criterion: The criteria found (nil when none)
func Extract(content string) []Criterion {
	matches := criterionPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	result := make([]Criterion, 0, len(matches))
	for _, m := range matches {
		result = append(result, Criterion{
			Given: strings.TrimSpace(m[1]),
			When:  strings.TrimSpace(m[2]),
			Then:  strings.TrimSpace(m[3]),
		})
	}
	return result
}
