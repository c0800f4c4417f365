package story

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/B16B1RD/cc-xp-kit/internal/backup"
)

// Patcher applies patches to one stories document on disk.
//
// The first write made through a Patcher copies the current document to a
// timestamped backup; later writes reuse that backup. A Patcher is meant to
// live for one process run and is not safe for concurrent use.
type Patcher struct {
	path       string
	now        func() time.Time
	backupPath string
}

// Option configures a Patcher.
type Option func(*Patcher)

// WithClock sets the time source used for backup names and status dates.
func WithClock(now func() time.Time) Option {
	return func(p *Patcher) {
		p.now = now
	}
}

// NewPatcher creates a patcher for the document at path.
func NewPatcher(path string, opts ...Option) *Patcher {
	p := &Patcher{
		path: path,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Path returns the document path.
func (p *Patcher) Path() string {
	return p.path
}

// BackupPath returns the backup created during this run, or empty if the
// document has not been written.
func (p *Patcher) BackupPath() string {
	return p.backupPath
}

// Preview applies fs in memory and returns the resulting document without
// touching the file.
func (p *Patcher) Preview(fs *FixSet) (string, Report, error) {
	content, err := p.read()
	if err != nil {
		return "", Report{}, err
	}
	out, report := Apply(content, fs)
	return out, report, nil
}

// ApplyFixes applies fs to the document and writes it back if anything
// changed.
//
// Parameters:
//   - fs: The fixes to apply
//
// Returns:
//   - *Report: Per-patch outcomes and the backup path
//   - error: Any read, backup, or write error
func (p *Patcher) ApplyFixes(fs *FixSet) (*Report, error) {
	content, err := p.read()
	if err != nil {
		return nil, err
	}

	out, report := Apply(content, fs)
	log.Debug("Applied fix set",
		"features", report.Features,
		"criteria", report.Criteria,
		"order", report.Order,
	)

	if report.Changed {
		if err := p.write(out); err != nil {
			return nil, err
		}
	}
	report.BackupPath = p.backupPath
	return &report, nil
}

// UpdateValidationStatus appends today's validation status entry unless one
// already exists.
//
// Returns:
//   - bool: True if an entry was written
//   - error: Any read, backup, or write error
func (p *Patcher) UpdateValidationStatus(status, notes string) (bool, error) {
	content, err := p.read()
	if err != nil {
		return false, err
	}

	out, changed := AppendValidationStatus(content, p.now(), status, notes)
	if !changed {
		return false, nil
	}
	if err := p.write(out); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Patcher) read() (string, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return "", fmt.Errorf("failed to read stories file: %w", err)
	}
	return string(data), nil
}

func (p *Patcher) write(content string) error {
	if p.backupPath == "" {
		bp, err := backup.Create(p.path, p.now())
		if err != nil {
			return err
		}
		p.backupPath = bp
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(p.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(p.path, []byte(content), mode); err != nil {
		return fmt.Errorf("failed to write stories file: %w", err)
	}
	log.Debug("Wrote stories file", "path", p.path, "bytes", len(content))
	return nil
}
