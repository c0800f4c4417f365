// Package keywords provides the static keyword tables used for project
// category detection and TDD strategy scoring.
//
// The default tables are embedded at compile time from keywords.yaml. A
// project can swap them for its own file via the keywords.file setting in
// .ccxp/config.yaml or the --keywords flag.
package keywords

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

//go:embed keywords.yaml
var defaultTables []byte

// Tables holds every keyword list known to ccxp.
type Tables struct {
	// Categories contains the project category keyword lists.
	Categories CategoryTables `yaml:"categories"`

	// Complexity contains the strategy scoring keyword lists.
	Complexity ComplexityTables `yaml:"complexity"`
}

// CategoryTables lists keywords per project category.
type CategoryTables struct {
	Game []string `yaml:"game"`
	Web  []string `yaml:"web"`
	API  []string `yaml:"api"`
}

// ComplexityTables lists keywords used to score a feature description.
type ComplexityTables struct {
	Complex []string `yaml:"complex"`
	Simple  []string `yaml:"simple"`
	Obvious []string `yaml:"obvious"`
}

// Default returns the embedded keyword tables.
//
// The embedded file is validated by tests, so a parse failure here is a
// build defect and panics.
func Default() *Tables {
	t, err := Parse(defaultTables)
	if err != nil {
		panic(fmt.Sprintf("embedded keywords.yaml is invalid: %v", err))
	}
	return t
}

// Parse decodes keyword tables from YAML.
//
// Parameters:
//   - data: YAML document with categories and complexity sections
//
// Returns:
//   - *Tables: The decoded tables
//   - error: Any decoding error
func Parse(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse keyword tables: %w", err)
	}
	return &t, nil
}

// Load reads keyword tables from a file. Lists missing from the file keep
// their embedded defaults, so an override may replace a single list.
//
// Parameters:
//   - path: Path to a YAML file in the keywords.yaml layout
//
// Returns:
//   - *Tables: The merged tables
//   - error: Any read or parse error
func Load(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyword file: %w", err)
	}

	override, err := Parse(data)
	if err != nil {
		return nil, err
	}

	t := Default()
	mergeList(&t.Categories.Game, override.Categories.Game)
	mergeList(&t.Categories.Web, override.Categories.Web)
	mergeList(&t.Categories.API, override.Categories.API)
	mergeList(&t.Complexity.Complex, override.Complexity.Complex)
	mergeList(&t.Complexity.Simple, override.Complexity.Simple)
	mergeList(&t.Complexity.Obvious, override.Complexity.Obvious)

	log.Debug("Loaded keyword tables", "path", path)
	return t, nil
}

// LoadOrDefault loads tables from path, or returns the defaults when path
// is empty.
func LoadOrDefault(path string) (*Tables, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func mergeList(dst *[]string, src []string) {
	if src != nil {
		*dst = src
	}
}

// ContainsAny reports whether any keyword occurs in text, ignoring case.
func ContainsAny(text string, list []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range list {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// CountMatches returns how many keywords of list occur in text, ignoring
// case. Each keyword counts at most once.
func CountMatches(text string, list []string) int {
	lower := strings.ToLower(text)
	n := 0
	for _, kw := range list {
		if strings.Contains(lower, strings.ToLower(kw)) {
			n++
		}
	}
	return n
}
