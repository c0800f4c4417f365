package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/B16B1RD/cc-xp-kit/internal/story"
	"github.com/B16B1RD/cc-xp-kit/internal/strategy"
	"github.com/B16B1RD/cc-xp-kit/pkg/ccxp"
)

const doc = `## Story 1: ログイン

### 📋 実装機能一覧
- ログインフォーム

### 🎯 受け入れ基準
- [ ] GIVEN 登録済みユーザー WHEN 正しいパスワードを送信 THEN ダッシュボードが表示される

### 🚀 実装順序
1. フォーム

## Story 2
`

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	s, err := NewServer("test", ccxp.WithWorkDir(dir), ccxp.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	return s, dir
}

func TestHandleExtractCriteria(t *testing.T) {
	s, _ := newTestServer(t)

	_, out, err := s.handleExtractCriteria(context.Background(), nil, ExtractCriteriaInput{Content: doc})
	require.NoError(t, err)
	assert.True(t, out.Success)
	require.Len(t, out.Criteria, 1)
	assert.Equal(t, "正しいパスワードを送信", out.Criteria[0].When)
	assert.Equal(t, "web", out.Category)
}

func TestHandleExtractCriteria_MissingFile(t *testing.T) {
	s, _ := newTestServer(t)

	_, out, err := s.handleExtractCriteria(context.Background(), nil, ExtractCriteriaInput{Path: "missing.md"})
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Contains(t, out.ErrorMessage, "user stories file not found")
	assert.NotNil(t, out.Criteria)
}

func TestHandleGenerateTestStubs(t *testing.T) {
	s, dir := newTestServer(t)

	_, out, err := s.handleGenerateTestStubs(context.Background(), nil, GenerateTestStubsInput{
		Content: doc,
		Write:   true,
	})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, 1, out.CriteriaCount)
	assert.Equal(t, filepath.Join(dir, "tests", "acceptance.test.js"), out.WrittenTo)

	data, err := os.ReadFile(out.WrittenTo)
	require.NoError(t, err)
	assert.Equal(t, out.Suite, string(data))
}

func TestHandleGenerateTestStubs_NoCriteria(t *testing.T) {
	s, dir := newTestServer(t)

	_, out, err := s.handleGenerateTestStubs(context.Background(), nil, GenerateTestStubsInput{
		Content: "# empty\n",
		Write:   true,
	})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Zero(t, out.CriteriaCount)
	assert.Empty(t, out.WrittenTo)
	assert.NoDirExists(t, filepath.Join(dir, "tests"))
}

func TestHandleGenerateTestStubs_BadCategory(t *testing.T) {
	s, _ := newTestServer(t)

	_, out, err := s.handleGenerateTestStubs(context.Background(), nil, GenerateTestStubsInput{Content: doc, Category: "desktop"})
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Contains(t, out.ErrorMessage, "unknown category")
}

func TestHandleRecommendStrategy(t *testing.T) {
	s, _ := newTestServer(t)

	_, out, err := s.handleRecommendStrategy(context.Background(), nil, RecommendStrategyInput{Description: ""})
	require.NoError(t, err)
	assert.False(t, out.Success)

	_, out, err = s.handleRecommendStrategy(context.Background(), nil, RecommendStrategyInput{
		Description: "入力を検証する",
		Subsequent:  true,
		HasTests:    true,
	})
	require.NoError(t, err)
	require.NotNil(t, out.Recommendation)
	assert.Equal(t, strategy.Triangulation, out.Recommendation.Strategy)
	assert.NotEmpty(t, out.Report)
}

func TestHandleRenderStrategyTemplate(t *testing.T) {
	s, _ := newTestServer(t)

	_, out, err := s.handleRenderStrategyTemplate(context.Background(), nil, RenderStrategyTemplateInput{Strategy: "fake", Description: "score"})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, string(strategy.FakeIt), out.Strategy)
	assert.NotEmpty(t, out.Template)

	_, out, err = s.handleRenderStrategyTemplate(context.Background(), nil, RenderStrategyTemplateInput{Strategy: "guess"})
	require.NoError(t, err)
	assert.False(t, out.Success)
}

func TestHandlePatchStories(t *testing.T) {
	s, dir := newTestServer(t)
	path := filepath.Join(dir, "stories.md")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, out, err := s.handlePatchStories(context.Background(), nil, PatchStoriesInput{
		Path:   "stories.md",
		FixSet: `{"implementationOrder": ["ログインAPI", "フォーム"]}`,
		DryRun: true,
	})
	require.NoError(t, err)
	require.True(t, out.Success, out.ErrorMessage)
	assert.Equal(t, "inline", out.FixSource)
	assert.Equal(t, story.OutcomeApplied, out.Report.Order)
	assert.Contains(t, out.Diff, "+1. ログインAPI")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc, string(data))

	_, out, err = s.handlePatchStories(context.Background(), nil, PatchStoriesInput{Path: "stories.md"})
	require.NoError(t, err)
	require.True(t, out.Success, out.ErrorMessage)
	assert.Equal(t, "standard", out.FixSource)
	assert.True(t, out.StatusWritten)
	assert.NotEmpty(t, out.Report.BackupPath)
}

func TestHandlePatchStories_Errors(t *testing.T) {
	s, dir := newTestServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stories.md"), []byte(doc), 0o644))

	_, out, err := s.handlePatchStories(context.Background(), nil, PatchStoriesInput{Path: "stories.md", FixSet: "[1]"})
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Contains(t, out.ErrorMessage, "fix_set")

	_, out, err = s.handlePatchStories(context.Background(), nil, PatchStoriesInput{})
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Contains(t, out.ErrorMessage, "searched")
}

func TestHandleGetSchema(t *testing.T) {
	s, _ := newTestServer(t)
	root := &cobra.Command{Use: "ccxp", Short: "test root"}
	root.AddCommand(&cobra.Command{Use: "accept", Short: "generate stubs", Run: func(*cobra.Command, []string) {}})
	s.SetRootCmd(root)

	_, out, err := s.handleGetSchema(context.Background(), nil, GetSchemaInput{})
	require.NoError(t, err)
	assert.NotNil(t, out.CLISchema)
	assert.NotEmpty(t, out.DocumentFormat)

	_, out, err = s.handleGetSchema(context.Background(), nil, GetSchemaInput{Format: "markdown"})
	require.NoError(t, err)
	assert.Contains(t, out.Markdown, "accept")

	_, out, err = s.handleGetSchema(context.Background(), nil, GetSchemaInput{Format: "yaml"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ErrorMessage)
}
