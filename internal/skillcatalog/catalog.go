// Package skillcatalog lists the embedded agent skills and installs them
// into AI coding tool skill directories.
package skillcatalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/B16B1RD/cc-xp-kit/skills"
)

const SkillFileName = skills.SkillFileName

// Skill describes one installable agent skill.
type Skill struct {
	Name        string
	Description string
	Content     string
}

var catalog = []Skill{
	{
		Name:        skills.CCXPCLIName,
		Description: "XP loop with the ccxp CLI: acceptance stubs, TDD strategy, story auto-fix.",
		Content:     skills.CCXPCLIContent,
	},
	{
		Name:        skills.CCXPMCPName,
		Description: "The same loop through the ccxp MCP tools.",
		Content:     skills.CCXPMCPContent,
	},
}

// All returns a copy of all embedded skills in deterministic install order.
func All() []Skill {
	out := make([]Skill, len(catalog))
	copy(out, catalog)
	return out
}

// Names returns all valid skill names in deterministic order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for _, sk := range catalog {
		names = append(names, sk.Name)
	}
	return names
}

// Get returns one skill by exact name.
func Get(name string) (Skill, bool) {
	name = strings.TrimSpace(name)
	for _, sk := range catalog {
		if sk.Name == name {
			return sk, true
		}
	}
	return Skill{}, false
}

// Select resolves names to skills, or returns every skill when names is
// empty.
//
// Returns:
//   - []Skill: The selected skills in the order given
//   - error: Error naming the first unknown skill
func Select(names []string) ([]Skill, error) {
	if len(names) == 0 {
		return All(), nil
	}
	out := make([]Skill, 0, len(names))
	for _, name := range names {
		sk, ok := Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown skill %q (available: %s)", name, strings.Join(Names(), ", "))
		}
		out = append(out, sk)
	}
	return out, nil
}

// Install writes sk to <baseDir>/<name>/SKILL.md.
//
// Parameters:
//   - baseDir: The skill directory root (e.g. .claude/skills)
//   - sk: The skill to install
//   - force: Overwrite an existing installation
//
// Returns:
//   - string: The skill file path
//   - bool: True if the file was written, false if it already existed
//   - error: If the directory cannot be created or the file cannot be written
func Install(baseDir string, sk Skill, force bool) (string, bool, error) {
	skillDir := filepath.Join(baseDir, sk.Name)
	skillPath := filepath.Join(skillDir, SkillFileName)

	if !force {
		if _, err := os.Stat(skillPath); err == nil {
			return skillPath, false, nil
		}
	}

	if err := os.MkdirAll(skillDir, 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create directory %s: %w", skillDir, err)
	}
	if err := os.WriteFile(skillPath, []byte(sk.Content), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write %s: %w", skillPath, err)
	}
	return skillPath, true, nil
}
