// Package main provides the skill command for managing the ccxp agent skills.
//
// The agent skills teach AI assistants (Cursor, Claude Code, Codex) how to
// run the XP loop with ccxp. They are embedded in the binary at compile time
// and can be installed to any supported skill directory.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/B16B1RD/cc-xp-kit/internal/skillcatalog"
	"github.com/B16B1RD/cc-xp-kit/internal/ui"
)

// Supported skill directory locations for each tool.
// dirs[0] is project-level, dirs[1] is user-level (global).
var skillDirectories = map[string][]string{
	"cursor": {".cursor/skills", "~/.cursor/skills"},
	"claude": {".claude/skills", "~/.claude/skills"},
	"codex":  {".codex/skills", "~/.codex/skills"},
}

var (
	skillInstallCursor bool
	skillInstallClaude bool
	skillInstallCodex  bool
	skillInstallGlobal bool
	skillInstallForce  bool
)

// skillCmd is the parent command for agent skill management.
var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Manage the ccxp agent skills",
	Long: `Manage the ccxp agent skills for AI coding tools.

EXAMPLES:
  ccxp skill list
  ccxp skill show ccxp-cli
  ccxp skill install               # Auto-detect tool, install all skills
  ccxp skill install ccxp-mcp --claude
  ccxp skill install --global --force`,
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the embedded agent skills",
	Args:  cobra.NoArgs,
	RunE:  runSkillList,
}

var skillShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print an agent skill to stdout",
	Args:  cobra.ExactArgs(1),
	RunE:  runSkillShow,
}

var skillInstallCmd = &cobra.Command{
	Use:   "install [name...]",
	Short: "Install agent skills for your AI coding tool",
	Long: `Install the ccxp agent skills to the skill directory of your AI coding tool.

Without a tool flag, installs for every tool whose configuration directory
exists. Without names, installs every skill. Existing files are kept unless
--force is given.`,
	RunE: runSkillInstall,
}

func init() {
	skillInstallCmd.Flags().BoolVar(&skillInstallCursor, "cursor", false, "Install for Cursor")
	skillInstallCmd.Flags().BoolVar(&skillInstallClaude, "claude", false, "Install for Claude Code")
	skillInstallCmd.Flags().BoolVar(&skillInstallCodex, "codex", false, "Install for Codex")
	skillInstallCmd.Flags().BoolVar(&skillInstallGlobal, "global", false, "Install to user-level (global) directory instead of project-level")
	skillInstallCmd.Flags().BoolVar(&skillInstallForce, "force", false, "Overwrite existing skill installation")

	skillCmd.AddCommand(skillListCmd)
	skillCmd.AddCommand(skillShowCmd)
	skillCmd.AddCommand(skillInstallCmd)
}

func runSkillList(cmd *cobra.Command, args []string) error {
	table := ui.NewTable("NAME", "DESCRIPTION")
	for _, sk := range skillcatalog.All() {
		table.AddRow(sk.Name, sk.Description)
	}
	table.Render()
	return nil
}

func runSkillShow(cmd *cobra.Command, args []string) error {
	sk, ok := skillcatalog.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown skill %q (available: %s)", args[0], strings.Join(skillcatalog.Names(), ", "))
	}
	fmt.Fprint(cmd.OutOrStdout(), sk.Content)
	return nil
}

func runSkillInstall(cmd *cobra.Command, args []string) error {
	selected, err := skillcatalog.Select(args)
	if err != nil {
		return err
	}

	targets := resolveInstallTargets()
	if len(targets) == 0 {
		ui.PrintInfo("Specify a tool explicitly:")
		ui.PrintDim("  ccxp skill install --claude")
		ui.PrintDim("  ccxp skill install --cursor")
		ui.PrintDim("  ccxp skill install --codex")
		return fmt.Errorf("no supported AI tools detected")
	}

	var failures []string
	for _, target := range targets {
		for _, sk := range selected {
			path, written, err := skillcatalog.Install(target, sk, skillInstallForce)
			switch {
			case err != nil:
				failures = append(failures, fmt.Sprintf("%s: %v", target, err))
			case written:
				ui.PrintSuccess("Installed %s", path)
			default:
				ui.PrintDim("  Already installed at %s (use --force to overwrite)", path)
			}
		}
	}

	if len(failures) > 0 {
		ui.PrintWarning("Some installations failed:")
		for _, f := range failures {
			ui.PrintDim("  %s", f)
		}
		return fmt.Errorf("%d skill installation(s) failed", len(failures))
	}
	return nil
}

// resolveInstallTargets determines the skill directories to install into,
// from explicit tool flags or by detecting existing tool directories.
func resolveInstallTargets() []string {
	var tools []string
	if skillInstallCursor {
		tools = append(tools, "cursor")
	}
	if skillInstallClaude {
		tools = append(tools, "claude")
	}
	if skillInstallCodex {
		tools = append(tools, "codex")
	}

	if len(tools) == 0 {
		for toolName, dirs := range skillDirectories {
			for _, dir := range dirs {
				// A tool is present when its config dir (the parent of skills/) exists.
				if _, err := os.Stat(filepath.Dir(expandHome(dir))); err == nil {
					tools = append(tools, toolName)
					break
				}
			}
		}
		sort.Strings(tools)
	}

	idx := 0
	if skillInstallGlobal {
		idx = 1
	}
	paths := make([]string, 0, len(tools))
	for _, toolName := range tools {
		paths = append(paths, expandHome(skillDirectories[toolName][idx]))
	}
	return paths
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		if runtime.GOOS == "windows" {
			home = os.Getenv("USERPROFILE")
		} else {
			home = os.Getenv("HOME")
		}
	}
	return filepath.Join(home, path[1:])
}
