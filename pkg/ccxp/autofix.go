package ccxp

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/B16B1RD/cc-xp-kit/internal/config"
	"github.com/B16B1RD/cc-xp-kit/internal/story"
)

const (
	// AutofixUsage is the usage hint shown when the stories document is missing.
	AutofixUsage = "ccxp autofix [stories-file] [fix-config.json]"

	// DefaultStatus is the validation status recorded after an auto-fix.
	DefaultStatus = "修正済み - 再検証待ち"

	// DefaultNotes accompanies DefaultStatus.
	DefaultNotes = "MVP検証失敗の自動修正完了"

	// FixSourceStandard names the built-in fix set in results.
	FixSourceStandard = "standard"
)

// AutofixOptions controls one auto-fix run.
type AutofixOptions struct {
	// StoriesPath is the document to patch. Empty searches the configured
	// candidates.
	StoriesPath string

	// FixConfigPath is a JSON fix set. Empty or nonexistent uses the
	// standard set.
	FixConfigPath string

	// FixSet, when non-nil, is used instead of FixConfigPath.
	FixSet *story.FixSet

	// Status and Notes label the validation entry. Empty Status uses
	// DefaultStatus; DefaultNotes is used only when both are empty.
	Status string
	Notes  string

	// DryRun computes the result without writing anything.
	DryRun bool
}

// AutofixResult is the outcome of an auto-fix run.
type AutofixResult struct {
	// Path is the patched document.
	Path string `json:"path"`

	// FixSource is the fix config path, "inline", or "standard".
	FixSource string `json:"fix_source"`

	// Report holds the per-patch outcomes.
	Report story.Report `json:"report"`

	// StatusWritten is true when a validation entry was appended.
	StatusWritten bool `json:"status_written"`

	// DryRun echoes the option.
	DryRun bool `json:"dry_run"`

	// Diff is a unified diff of the change, set for dry runs.
	Diff string `json:"diff,omitempty"`
}

// LocateStories resolves the document to patch. An explicit path must
// exist; otherwise the configured search patterns are tried in order.
//
// Returns:
//   - string: Absolute path to the document
//   - error: *config.MissingFileError when nothing is found
func (c *Client) LocateStories(arg string) (string, error) {
	if arg != "" {
		path := c.ResolvePath(arg)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return "", &config.MissingFileError{Path: path, Usage: AutofixUsage}
			}
			return "", fmt.Errorf("failed to stat stories file: %w", err)
		}
		return path, nil
	}
	return story.FindStoriesFile(c.workDir, c.config.Stories.Search)
}

// LoadFixSet loads the fix set named by path, or the standard set when path
// is empty or does not exist.
//
// Returns:
//   - *story.FixSet: The fix set
//   - string: Its source (the path, or FixSourceStandard)
//   - error: A read error or *story.ConfigParseError
func (c *Client) LoadFixSet(path string) (*story.FixSet, string, error) {
	if path == "" {
		return story.StandardFixSet(), FixSourceStandard, nil
	}

	resolved := c.ResolvePath(path)
	if _, err := os.Stat(resolved); os.IsNotExist(err) {
		log.Warn("Fix config not found, using the standard fix set", "path", resolved)
		return story.StandardFixSet(), FixSourceStandard, nil
	}

	fs, err := story.LoadFixSet(resolved)
	if err != nil {
		return nil, "", err
	}
	return fs, resolved, nil
}

// Autofix applies a fix set to the stories document and records a
// validation status entry for today.
//
// Parameters:
//   - opts: Run options
//
// Returns:
//   - *AutofixResult: What was done (or would be done, for dry runs)
//   - error: Missing document, malformed fix config, or filesystem errors
func (c *Client) Autofix(opts AutofixOptions) (*AutofixResult, error) {
	path, err := c.LocateStories(opts.StoriesPath)
	if err != nil {
		return nil, err
	}

	fs, source := opts.FixSet, "inline"
	if fs == nil {
		fs, source, err = c.LoadFixSet(opts.FixConfigPath)
		if err != nil {
			return nil, err
		}
	}

	status, notes := opts.Status, opts.Notes
	if status == "" {
		status = DefaultStatus
		if notes == "" {
			notes = DefaultNotes
		}
	}

	result := &AutofixResult{Path: path, FixSource: source, DryRun: opts.DryRun}
	patcher := story.NewPatcher(path, story.WithClock(c.now))

	if opts.DryRun {
		return c.previewAutofix(patcher, fs, status, notes, result)
	}

	report, err := patcher.ApplyFixes(fs)
	if err != nil {
		return nil, err
	}
	result.StatusWritten, err = patcher.UpdateValidationStatus(status, notes)
	if err != nil {
		return nil, err
	}
	result.Report = *report
	result.Report.BackupPath = patcher.BackupPath()

	log.Debug("Auto-fix complete", "path", path, "changed", report.Changed, "status_written", result.StatusWritten)
	return result, nil
}

func (c *Client) previewAutofix(p *story.Patcher, fs *story.FixSet, status, notes string, result *AutofixResult) (*AutofixResult, error) {
	data, err := os.ReadFile(p.Path())
	if err != nil {
		return nil, fmt.Errorf("failed to read stories file: %w", err)
	}
	before := string(data)

	after, report, err := p.Preview(fs)
	if err != nil {
		return nil, err
	}
	after, result.StatusWritten = story.AppendValidationStatus(after, c.now(), status, notes)
	result.Report = report

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: p.Path(),
		ToFile:   p.Path() + " (patched)",
		Context:  2,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to diff preview: %w", err)
	}
	result.Diff = diff
	return result, nil
}
