package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/B16B1RD/cc-xp-kit/internal/config"
	"github.com/B16B1RD/cc-xp-kit/internal/story"
	"github.com/B16B1RD/cc-xp-kit/internal/ui"
)

const testStories = `# ユーザーストーリー

## Story 1: テトリス

### 📋 実装機能一覧
- 移動

### 🎯 受け入れ基準
- [ ] GIVEN ゲーム開始 WHEN 矢印キー THEN ピースが動く
- [ ] GIVEN ピースが底 WHEN 1秒経過 THEN 次のピースが出る

### 🚀 実装順序
1. 移動

## Story 2: スコア
`

// setupProject creates a project directory, changes into it, and silences
// ui output. Flag variables are reset to their defaults.
func setupProject(t *testing.T, files map[string]string) string {
	t.Helper()

	tmp := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(tmp, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("MkdirAll(%s): %v", rel, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile(%s): %v", rel, err)
		}
	}

	origWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd(): %v", err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("Chdir(tmp): %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWD) })

	ui.SetOutput(io.Discard)
	t.Cleanup(func() { ui.SetOutput(nil) })

	acceptOutDir, acceptOutFile, acceptCategory, acceptKeywords = "", "", "auto", ""
	acceptStdout, acceptWatch = false, false
	strategySubsequent, strategyHasTests, strategyTemplate, strategyCopy = false, false, false, false
	autofixStatus, autofixNotes, autofixDryRun, autofixPrintStandard = "", "", false, false
	configInitForce = false
	skillInstallCursor, skillInstallClaude, skillInstallCodex, skillInstallGlobal, skillInstallForce = false, false, false, false, false
	schemaFormat = "json"

	// Commands resolve paths from Getwd, which may differ from tmp by symlinks.
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd(): %v", err)
	}
	return wd
}

func newTestCommand(in string) (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader(in))
	cmd.SetOut(&out)
	return cmd, &out
}

func TestRunAccept_WritesSuite(t *testing.T) {
	dir := setupProject(t, map[string]string{config.DefaultStoriesPath: testStories})
	cmd, _ := newTestCommand("")

	if err := runAccept(cmd, nil); err != nil {
		t.Fatalf("runAccept(): %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "tests", "acceptance.test.js"))
	if err != nil {
		t.Fatalf("ReadFile(suite): %v", err)
	}
	if got := strings.Count(string(data), "  it('"); got != 2 {
		t.Errorf("expected 2 stubs, got %d", got)
	}
	if !strings.Contains(string(data), "canvas") {
		t.Error("expected the game template for a tetris document")
	}
}

func TestRunAccept_NoCriteriaIsNotAnError(t *testing.T) {
	dir := setupProject(t, map[string]string{"stories.md": "# ストーリー\n\n受け入れ基準はまだない\n"})
	cmd, _ := newTestCommand("")

	if err := runAccept(cmd, []string{"stories.md"}); err != nil {
		t.Fatalf("runAccept(): %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "tests")); !os.IsNotExist(err) {
		t.Errorf("expected no tests directory, stat err = %v", err)
	}
}

func TestRunAccept_MissingFile(t *testing.T) {
	setupProject(t, nil)
	cmd, _ := newTestCommand("")

	err := runAccept(cmd, nil)
	var missing *config.MissingFileError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFileError, got %v", err)
	}
	if !strings.HasSuffix(missing.Path, filepath.FromSlash(config.DefaultStoriesPath)) {
		t.Errorf("missing path = %q", missing.Path)
	}
}

func TestRunAccept_StdinToStdout(t *testing.T) {
	dir := setupProject(t, nil)
	acceptStdout = true
	acceptCategory = "generic"
	cmd, out := newTestCommand(testStories)

	if err := runAccept(cmd, []string{"-"}); err != nil {
		t.Fatalf("runAccept(): %v", err)
	}
	if !strings.HasPrefix(out.String(), "describe('Acceptance Criteria Tests'") {
		t.Errorf("unexpected output: %q", out.String())
	}
	if strings.Contains(out.String(), "canvas") {
		t.Error("expected the generic template")
	}
	if _, err := os.Stat(filepath.Join(dir, "tests")); !os.IsNotExist(err) {
		t.Error("--stdout must not write the suite")
	}
}

func TestRunAccept_StdinWithWatch(t *testing.T) {
	setupProject(t, nil)
	acceptWatch = true
	cmd, _ := newTestCommand(testStories)

	if err := runAccept(cmd, []string{"-"}); err == nil {
		t.Fatal("expected an error for --watch with stdin")
	}
}

func TestRunAccept_BadCategory(t *testing.T) {
	setupProject(t, map[string]string{config.DefaultStoriesPath: testStories})
	acceptCategory = "desktop"
	cmd, _ := newTestCommand("")

	if err := runAccept(cmd, nil); err == nil {
		t.Fatal("expected an error for an unknown category")
	}
}

func TestRunStrategy_Description(t *testing.T) {
	setupProject(t, nil)
	strategyTemplate = true
	cmd, out := newTestCommand("")

	if err := runStrategy(cmd, []string{"2つの数を足す"}); err != nil {
		t.Fatalf("runStrategy(): %v", err)
	}
	if !strings.Contains(out.String(), "Obvious Implementation") {
		t.Errorf("expected Obvious Implementation, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "📄 Test template:") {
		t.Error("expected the rendered template")
	}
}

func TestRunStrategy_Flags(t *testing.T) {
	setupProject(t, nil)
	strategySubsequent, strategyHasTests = true, true
	cmd, out := newTestCommand("")

	if err := runStrategy(cmd, []string{"入力を検証する"}); err != nil {
		t.Fatalf("runStrategy(): %v", err)
	}
	if !strings.Contains(out.String(), "Triangulation") {
		t.Errorf("expected Triangulation, got:\n%s", out.String())
	}
}

func TestRunStrategy_Interactive(t *testing.T) {
	setupProject(t, nil)
	strategyCopy = true
	var copied string
	orig := clipboardWrite
	clipboardWrite = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { clipboardWrite = orig })

	cmd, out := newTestCommand("入力を検証する\nn\ny\ny\n")

	if err := runStrategy(cmd, nil); err != nil {
		t.Fatalf("runStrategy(): %v", err)
	}
	if !strings.Contains(out.String(), "Triangulation") {
		t.Errorf("expected Triangulation, got:\n%s", out.String())
	}
	if copied == "" {
		t.Error("expected the template to be copied")
	}
}

func TestRunStrategy_InteractiveEOF(t *testing.T) {
	setupProject(t, nil)
	cmd, out := newTestCommand("")

	if err := runStrategy(cmd, nil); err != nil {
		t.Fatalf("runStrategy(): %v", err)
	}
	if !strings.Contains(out.String(), "Bye") {
		t.Errorf("expected a farewell, got:\n%s", out.String())
	}
}

func TestRunAutofix_Idempotent(t *testing.T) {
	dir := setupProject(t, map[string]string{config.DefaultStoriesPath: testStories})
	cmd, _ := newTestCommand("")
	path := filepath.Join(dir, filepath.FromSlash(config.DefaultStoriesPath))

	if err := runAutofix(cmd, nil); err != nil {
		t.Fatalf("runAutofix(): %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(): %v", err)
	}
	if strings.Count(string(first), story.FeatureMarker) != 1 {
		t.Error("expected the feature marker once")
	}

	if err := runAutofix(cmd, nil); err != nil {
		t.Fatalf("runAutofix() second run: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(): %v", err)
	}
	if string(first) != string(second) {
		t.Error("second run changed the document")
	}

	backups, err := filepath.Glob(path + ".backup.*")
	if err != nil {
		t.Fatalf("Glob(): %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("expected 1 backup, got %d", len(backups))
	}
}

func TestRunAutofix_DryRunJSON(t *testing.T) {
	setupProject(t, map[string]string{"stories.md": testStories})
	autofixDryRun = true
	cmd, out := newTestCommand("")
	cmd.Flags().Bool("json", true, "")

	if err := runAutofix(cmd, []string{"stories.md"}); err != nil {
		t.Fatalf("runAutofix(): %v", err)
	}

	var res struct {
		DryRun bool   `json:"dry_run"`
		Diff   string `json:"diff"`
	}
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("Unmarshal(): %v\n%s", err, out.String())
	}
	if !res.DryRun || res.Diff == "" {
		t.Errorf("expected a dry-run diff, got %+v", res)
	}

	data, _ := os.ReadFile("stories.md")
	if string(data) != testStories {
		t.Error("dry run modified the document")
	}
}

func TestRunAutofix_BadFixConfig(t *testing.T) {
	setupProject(t, map[string]string{
		"stories.md": testStories,
		"fix.json":   `{"story1": {"missingFeatures": "nope"}}`,
	})
	cmd, _ := newTestCommand("")

	err := runAutofix(cmd, []string{"stories.md", "fix.json"})
	var parseErr *story.ConfigParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ConfigParseError, got %v", err)
	}
}

func TestRunAutofix_MissingDocument(t *testing.T) {
	setupProject(t, nil)
	cmd, _ := newTestCommand("")

	err := runAutofix(cmd, nil)
	var missing *config.MissingFileError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFileError, got %v", err)
	}
}

func TestRunAutofix_PrintStandard(t *testing.T) {
	setupProject(t, nil)
	autofixPrintStandard = true
	cmd, out := newTestCommand("")

	if err := runAutofix(cmd, nil); err != nil {
		t.Fatalf("runAutofix(): %v", err)
	}

	fs, err := story.ParseFixSet(out.Bytes())
	if err != nil {
		t.Fatalf("ParseFixSet(): %v", err)
	}
	if len(fs.ImplementationOrder) != len(story.StandardFixSet().ImplementationOrder) {
		t.Error("printed fix set does not round-trip")
	}
}

func TestRunConfigInitAndShow(t *testing.T) {
	dir := setupProject(t, nil)
	cmd, out := newTestCommand("")

	if err := runConfigInit(cmd, nil); err != nil {
		t.Fatalf("runConfigInit(): %v", err)
	}
	path := filepath.Join(dir, config.DirName, config.FileName)
	cfg, err := config.LoadProjectConfig(path)
	if err != nil {
		t.Fatalf("LoadProjectConfig(): %v", err)
	}
	if cfg.Tests.Dir != config.DefaultTestsDir {
		t.Errorf("Tests.Dir = %q, want %q", cfg.Tests.Dir, config.DefaultTestsDir)
	}

	if err := runConfigPath(cmd, nil); err != nil {
		t.Fatalf("runConfigPath(): %v", err)
	}
	if strings.TrimSpace(out.String()) != path {
		t.Errorf("config path = %q, want %q", strings.TrimSpace(out.String()), path)
	}

	out.Reset()
	if err := runConfigShow(cmd, nil); err != nil {
		t.Fatalf("runConfigShow(): %v", err)
	}
	if !strings.Contains(out.String(), "short_text_threshold: 50") {
		t.Errorf("unexpected config show output:\n%s", out.String())
	}
}

func TestRunConfigInit_ExistingWithForce(t *testing.T) {
	setupProject(t, map[string]string{".ccxp/config.yaml": "tests:\n  dir: spec\n"})
	configInitForce = true
	cmd, _ := newTestCommand("")

	if err := runConfigInit(cmd, nil); err != nil {
		t.Fatalf("runConfigInit(): %v", err)
	}
	cfg, err := config.LoadProjectConfig(filepath.Join(config.DirName, config.FileName))
	if err != nil {
		t.Fatalf("LoadProjectConfig(): %v", err)
	}
	if cfg.Tests.Dir != config.DefaultTestsDir {
		t.Errorf("expected --force to reset Tests.Dir, got %q", cfg.Tests.Dir)
	}
}

func TestRunSchema(t *testing.T) {
	setupProject(t, nil)
	var out bytes.Buffer
	schemaCmd.SetOut(&out)
	t.Cleanup(func() { schemaCmd.SetOut(nil) })

	schemaFormat = "markdown"
	if err := runSchema(schemaCmd, nil); err != nil {
		t.Fatalf("runSchema(): %v", err)
	}
	if !strings.Contains(out.String(), "accept") {
		t.Errorf("expected accept in markdown schema:\n%s", out.String())
	}

	schemaFormat = "yaml"
	if err := runSchema(schemaCmd, nil); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestRunSkillInstall_Claude(t *testing.T) {
	dir := setupProject(t, nil)
	skillInstallClaude = true
	cmd, _ := newTestCommand("")

	if err := runSkillInstall(cmd, []string{"ccxp-cli"}); err != nil {
		t.Fatalf("runSkillInstall(): %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".claude", "skills", "ccxp-cli", "SKILL.md")); err != nil {
		t.Errorf("expected installed skill: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".claude", "skills", "ccxp-mcp")); !os.IsNotExist(err) {
		t.Error("expected only the named skill to be installed")
	}

	if err := runSkillInstall(cmd, []string{"nope"}); err == nil {
		t.Error("expected an error for an unknown skill")
	}
}

func TestRunSkillShow(t *testing.T) {
	setupProject(t, nil)
	cmd, out := newTestCommand("")

	if err := runSkillShow(cmd, []string{"ccxp-mcp"}); err != nil {
		t.Fatalf("runSkillShow(): %v", err)
	}
	if !strings.Contains(out.String(), "patch_stories") {
		t.Errorf("unexpected skill content:\n%s", out.String())
	}
}
