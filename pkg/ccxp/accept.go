package ccxp

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/B16B1RD/cc-xp-kit/internal/config"
	"github.com/B16B1RD/cc-xp-kit/internal/criteria"
	"github.com/B16B1RD/cc-xp-kit/internal/stubgen"
)

// AcceptUsage is the usage hint shown when the stories document is missing.
const AcceptUsage = "ccxp accept [stories-file]"

// SuiteResult is the outcome of turning a document into a test suite.
type SuiteResult struct {
	// Criteria are the extracted acceptance criteria in document order.
	Criteria []criteria.Criterion `json:"criteria"`

	// Category is the template category used.
	Category criteria.Category `json:"category"`

	// Detected is true when Category came from keyword detection.
	Detected bool `json:"detected"`

	// Suite is the generated test source, empty when no criteria were found.
	Suite string `json:"suite,omitempty"`
}

// StoriesPath returns the stories document for an optional argument,
// falling back to the configured default.
func (c *Client) StoriesPath(arg string) string {
	if arg == "" {
		arg = c.config.Stories.Path
	}
	return c.ResolvePath(arg)
}

// ReadStories reads a stories document.
//
// Returns:
//   - string: The document text
//   - error: *config.MissingFileError when path does not exist
func (c *Client) ReadStories(path string, usage string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &config.MissingFileError{Path: path, Usage: usage}
		}
		return "", fmt.Errorf("failed to read stories file: %w", err)
	}
	return string(data), nil
}

// BuildSuite extracts criteria from content and renders the test suite.
//
// When content holds no criteria the result has an empty Suite and the
// generator is not run; this is not an error.
//
// Parameters:
//   - content: The document text
//   - category: A fixed category, or "" to detect one from content
//
// Returns:
//   - *SuiteResult: The criteria, category and suite
//   - error: Any template error
func (c *Client) BuildSuite(content string, category criteria.Category) (*SuiteResult, error) {
	result := &SuiteResult{
		Criteria: criteria.Extract(content),
		Category: category,
	}
	if result.Category == "" {
		result.Category = criteria.DetectCategory(content, c.keywords)
		result.Detected = true
	}

	log.Debug("Extracted acceptance criteria", "count", len(result.Criteria), "category", result.Category)

	if len(result.Criteria) == 0 {
		return result, nil
	}

	suite, err := stubgen.Generate(result.Criteria, result.Category)
	if err != nil {
		return nil, err
	}
	result.Suite = suite
	return result, nil
}

// WriteSuite writes a generated suite. Empty dir and file fall back to the
// configured tests location.
func (c *Client) WriteSuite(suite, dir, file string) (*stubgen.WriteResult, error) {
	if dir == "" {
		dir = c.config.Tests.Dir
	}
	if file == "" {
		file = c.config.Tests.File
	}
	return stubgen.WriteSuite(c.ResolvePath(dir), file, suite, c.now())
}
