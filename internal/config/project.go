// Package config provides project configuration management.
//
// This package handles reading and writing .ccxp/config.yaml, which holds the
// conventional paths and overrides shared by the ccxp tools.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DirName is the project configuration directory.
const DirName = ".ccxp"

// FileName is the project configuration file inside DirName.
const FileName = "config.yaml"

// DefaultStoriesPath is the conventional user-stories document location.
const DefaultStoriesPath = "docs/agile-artifacts/stories/user-stories-v1.0.md"

// DefaultStoriesSearch lists the locations searched, in order, when the
// auto-fixer is run without an explicit stories path.
var DefaultStoriesSearch = []string{
	"docs/agile-artifacts/stories/user-stories-v1.0.md",
	"docs/agile-artifacts/stories/user-stories.md",
	".claude/agile-artifacts/stories/user-stories-v1.0.md",
	".claude/agile-artifacts/stories/user-stories.md",
}

const (
	// DefaultTestsDir is where generated acceptance suites are written.
	DefaultTestsDir = "tests"

	// DefaultTestsFile is the generated acceptance suite file name.
	DefaultTestsFile = "acceptance.test.js"

	// DefaultShortTextThreshold is the obvious-implementation length limit.
	DefaultShortTextThreshold = 50
)

// ProjectConfig represents the .ccxp/config.yaml file.
type ProjectConfig struct {
	// Stories locates the user-stories document.
	Stories StoriesConfig `yaml:"stories,omitempty"`

	// Tests controls where generated test stubs go.
	Tests TestsConfig `yaml:"tests,omitempty"`

	// Keywords points at an optional keyword table override.
	Keywords KeywordsConfig `yaml:"keywords,omitempty"`

	// Strategy tunes the strategy advisor.
	Strategy StrategyConfig `yaml:"strategy,omitempty"`
}

// StoriesConfig locates the user-stories document.
type StoriesConfig struct {
	// Path is the stories document used when no path argument is given.
	Path string `yaml:"path,omitempty"`

	// Search lists doublestar patterns tried in order by the auto-fixer.
	Search []string `yaml:"search,omitempty"`
}

// TestsConfig controls generated test output.
type TestsConfig struct {
	// Dir is the output directory.
	Dir string `yaml:"dir,omitempty"`

	// File is the output file name.
	File string `yaml:"file,omitempty"`
}

// KeywordsConfig points at a keyword table override.
type KeywordsConfig struct {
	// File is a YAML file in the keywords.yaml layout.
	File string `yaml:"file,omitempty"`
}

// StrategyConfig tunes the strategy advisor.
type StrategyConfig struct {
	// ShortTextThreshold is the description length (characters) below which
	// obvious-keyword descriptions get Obvious Implementation.
	ShortTextThreshold int `yaml:"short_text_threshold,omitempty"`
}

// Default returns a configuration with every field at its default.
func Default() *ProjectConfig {
	cfg := &ProjectConfig{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills every empty field with its default so callers never
// need to check for zero values.
func (c *ProjectConfig) ApplyDefaults() {
	if c.Stories.Path == "" {
		c.Stories.Path = DefaultStoriesPath
	}
	if len(c.Stories.Search) == 0 {
		c.Stories.Search = append([]string(nil), DefaultStoriesSearch...)
	}
	if c.Tests.Dir == "" {
		c.Tests.Dir = DefaultTestsDir
	}
	if c.Tests.File == "" {
		c.Tests.File = DefaultTestsFile
	}
	if c.Strategy.ShortTextThreshold <= 0 {
		c.Strategy.ShortTextThreshold = DefaultShortTextThreshold
	}
}

// LoadProjectConfig loads a project configuration from a file.
//
// Parameters:
//   - path: Path to the config.yaml file
//
// Returns:
//   - *ProjectConfig: The loaded configuration with defaults applied
//   - error: Any error that occurred during loading
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Relative keyword files resolve against the project root.
	if cfg.Keywords.File != "" && !filepath.IsAbs(cfg.Keywords.File) {
		cfg.Keywords.File = filepath.Join(filepath.Dir(filepath.Dir(path)), cfg.Keywords.File)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// WriteProjectConfig writes a project configuration to a file, creating the
// containing directory if needed.
//
// Parameters:
//   - path: Path to write the config.yaml file
//   - cfg: The configuration to write
//
// Returns:
//   - error: Any error that occurred during writing
func WriteProjectConfig(path string, cfg *ProjectConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	header := "# ccxp configuration\n# Generated by: ccxp config init\n\n"
	if err := os.WriteFile(path, []byte(header+string(data)), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Resolve finds and loads the configuration for dir.
//
// It walks up from dir looking for .ccxp/config.yaml. When none exists the
// defaults are returned together with the path a new file would be written
// to (inside dir).
//
// Parameters:
//   - dir: Directory to start from, usually the working directory
//
// Returns:
//   - string: The config file path (existing or prospective)
//   - *ProjectConfig: The configuration
//   - error: Any error reading an existing file
func Resolve(dir string) (string, *ProjectConfig, error) {
	root, err := FindRepoRoot(dir)
	if err != nil {
		return filepath.Join(dir, DirName, FileName), Default(), nil
	}

	path := filepath.Join(root, DirName, FileName)
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		return path, Default(), nil
	}

	cfg, err := LoadProjectConfig(path)
	if err != nil {
		return path, nil, err
	}
	return path, cfg, nil
}

// FindRepoRoot walks up from the given directory looking for a .ccxp/ directory.
//
// Parameters:
//   - dir: Starting directory
//
// Returns:
//   - string: The directory containing .ccxp/
//   - error: Error if no .ccxp/ directory exists up to the filesystem root
func FindRepoRoot(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	current := absDir
	for {
		candidate := filepath.Join(current, DirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no %s/ directory found (searched from %s to /)", DirName, absDir)
		}
		current = parent
	}
}
