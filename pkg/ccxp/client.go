// Package ccxp provides a public API for the ccxp tools.
//
// This package exposes the acceptance-criteria stub generator, the TDD
// strategy advisor, and the user stories auto-fixer as a Go library, so the
// CLI and the MCP server share one implementation.
//
// Example usage:
//
//	client, err := ccxp.NewClient(ccxp.WithWorkDir("/path/to/project"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.Autofix(ccxp.AutofixOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("changed: %v\n", result.Report.Changed)
package ccxp

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/B16B1RD/cc-xp-kit/internal/config"
	"github.com/B16B1RD/cc-xp-kit/internal/keywords"
)

// Client is the main entry point for the ccxp public API.
type Client struct {
	config       *config.ProjectConfig
	configPath   string
	workDir      string
	keywordsFile string
	keywords     *keywords.Tables
	now          func() time.Time
}

// Option configures a Client.
type Option func(*Client) error

// WithWorkDir sets the working directory that relative paths resolve
// against and where configuration is searched from.
func WithWorkDir(dir string) Option {
	return func(c *Client) error {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("failed to resolve work dir: %w", err)
		}
		c.workDir = abs
		return nil
	}
}

// WithConfig sets the project configuration directly.
func WithConfig(cfg *config.ProjectConfig) Option {
	return func(c *Client) error {
		c.config = cfg
		return nil
	}
}

// WithKeywordsFile overrides the keyword tables file from the configuration.
func WithKeywordsFile(path string) Option {
	return func(c *Client) error {
		c.keywordsFile = path
		return nil
	}
}

// WithClock sets the time source used for backups and status dates.
func WithClock(now func() time.Time) Option {
	return func(c *Client) error {
		c.now = now
		return nil
	}
}

// NewClient creates a new ccxp client.
//
// Parameters:
//   - opts: Configuration options
//
// Returns:
//   - *Client: A new client instance
//   - error: Any error loading configuration or keyword tables
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{now: time.Now}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.workDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		c.workDir = cwd
	}

	if c.config == nil {
		path, cfg, err := config.Resolve(c.workDir)
		if err != nil {
			return nil, err
		}
		c.config = cfg
		c.configPath = path
	} else {
		c.config.ApplyDefaults()
		c.configPath = filepath.Join(c.workDir, config.DirName, config.FileName)
	}

	kwFile := c.config.Keywords.File
	if c.keywordsFile != "" {
		kwFile = c.keywordsFile
	}
	tables, err := keywords.LoadOrDefault(c.ResolvePath(kwFile))
	if err != nil {
		return nil, err
	}
	c.keywords = tables

	return c, nil
}

// Config returns the effective project configuration.
func (c *Client) Config() *config.ProjectConfig {
	return c.config
}

// ConfigPath returns the configuration file path, which may not exist yet.
func (c *Client) ConfigPath() string {
	return c.configPath
}

// WorkDir returns the working directory.
func (c *Client) WorkDir() string {
	return c.workDir
}

// Keywords returns the keyword tables in use.
func (c *Client) Keywords() *keywords.Tables {
	return c.keywords
}

// ResolvePath makes path absolute relative to the working directory.
func (c *Client) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.workDir, path)
}
