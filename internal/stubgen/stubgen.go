// Package stubgen renders acceptance criteria into placeholder test suites.
//
// Every generated test is a deliberate "Fake It" stub: it documents the
// GIVEN/WHEN/THEN text as Arrange/Act/Assert comments and asserts a
// condition that is always true. The suite targets JavaScript test runners
// with describe/it/expect globals (bun, jest, vitest).
package stubgen

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/charmbracelet/log"

	"github.com/B16B1RD/cc-xp-kit/internal/backup"
	"github.com/B16B1RD/cc-xp-kit/internal/criteria"
	"github.com/B16B1RD/cc-xp-kit/internal/textutil"
)

const (
	// DefaultDir is the directory generated suites are written to.
	DefaultDir = "tests"

	// DefaultFile is the file name of the generated suite.
	DefaultFile = "acceptance.test.js"

	suiteHeader = "describe('Acceptance Criteria Tests', () => {"
	suiteFooter = "\n});"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("stubs").Option("missingkey=error").ParseFS(templateFS, "templates/*.tmpl"),
)

// stub is the data passed to a test template.
type stub struct {
	Name  string
	Given string
	When  string
	Then  string
}

// TestName derives the human-readable test name for a criterion:
// "should <then> when <when>", lower-cased.
func TestName(c criteria.Criterion) string {
	return "should " + strings.ToLower(c.Then) + " when " + strings.ToLower(c.When)
}

// templateFor selects the template for a category. Game and web projects
// have their own scaffolding; everything else gets the minimal skeleton.
func templateFor(category criteria.Category) string {
	switch category {
	case criteria.CategoryGame:
		return "game.tmpl"
	case criteria.CategoryWeb:
		return "web.tmpl"
	default:
		return "generic.tmpl"
	}
}

// Generate renders a test suite with one placeholder test per criterion.
//
// Parameters:
//   - list: The criteria, in the order the tests should appear
//   - category: The project category selecting the template
//
// Returns:
//   - string: The suite source
//   - error: Any template execution error
func Generate(list []criteria.Criterion, category criteria.Category) (string, error) {
	name := templateFor(category)

	tests := make([]string, 0, len(list))
	for i, c := range list {
		var b strings.Builder
		err := templates.ExecuteTemplate(&b, name, stub{
			Name:  textutil.EscapeSingleQuoted(TestName(c)),
			Given: c.Given,
			When:  c.When,
			Then:  c.Then,
		})
		if err != nil {
			return "", fmt.Errorf("failed to render test %d: %w", i+1, err)
		}
		tests = append(tests, "\n"+strings.TrimRight(b.String(), "\n"))
	}

	return suiteHeader + strings.Join(tests, "\n") + suiteFooter, nil
}

// WriteResult describes a written suite.
type WriteResult struct {
	// Path is where the suite was written.
	Path string

	// BackupPath is the copy of the previous suite, or empty if there was none.
	BackupPath string
}

// WriteSuite writes content to dir/name, creating dir if needed. An existing
// file is first copied to a timestamped backup.
//
// Parameters:
//   - dir: Output directory
//   - name: Output file name
//   - content: The suite source
//   - now: Instant used for the backup suffix
//
// Returns:
//   - *WriteResult: The written and backup paths
//   - error: Any filesystem error
func WriteSuite(dir, name, content string, now time.Time) (*WriteResult, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create test directory: %w", err)
	}

	path := filepath.Join(dir, name)
	backupPath, err := backup.Create(path, now)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write test file: %w", err)
	}

	log.Debug("Wrote test suite", "path", path, "backup", backupPath)
	return &WriteResult{Path: path, BackupPath: backupPath}, nil
}
