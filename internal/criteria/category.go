package criteria

import (
	"fmt"
	"strings"

	"github.com/B16B1RD/cc-xp-kit/internal/keywords"
)

// Category is the kind of project a stories document describes. It only
// selects the test stub template.
type Category string

const (
	// CategoryGame is a game project (canvas, pieces, play).
	CategoryGame Category = "game"

	// CategoryWeb is a web site or form-based project.
	CategoryWeb Category = "web"

	// CategoryAPI is an HTTP API project.
	CategoryAPI Category = "api"

	// CategoryGeneric is anything else.
	CategoryGeneric Category = "generic"
)

// Categories lists every category in detection priority order, followed by
// the generic fallback.
var Categories = []Category{CategoryGame, CategoryWeb, CategoryAPI, CategoryGeneric}

// ParseCategory converts a user-supplied name into a Category.
//
// Parameters:
//   - name: Category name (case-insensitive)
//
// Returns:
//   - Category: The parsed category
//   - error: Error if the name is unknown
func ParseCategory(name string) (Category, error) {
	lower := Category(strings.ToLower(strings.TrimSpace(name)))
	for _, c := range Categories {
		if c == lower {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q (expected game, web, api or generic)", name)
}

// DetectCategory classifies content by keyword presence.
//
// Categories are tested in fixed priority order (game, web, api) and the
// first one with any keyword present as a case-insensitive substring wins.
// There is no scoring: a document mentioning both a game and a web keyword
// is a game. Content matching nothing is generic.
//
// Parameters:
//   - content: The document text
//   - tables: Keyword tables (nil uses the embedded defaults)
//
// Returns:
//   - Category: The detected category
func DetectCategory(content string, tables *keywords.Tables) Category {
	if tables == nil {
		tables = keywords.Default()
	}

	switch {
	case keywords.ContainsAny(content, tables.Categories.Game):
		return CategoryGame
	case keywords.ContainsAny(content, tables.Categories.Web):
		return CategoryWeb
	case keywords.ContainsAny(content, tables.Categories.API):
		return CategoryAPI
	default:
		return CategoryGeneric
	}
}
