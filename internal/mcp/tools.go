package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/B16B1RD/cc-xp-kit/internal/config"
	"github.com/B16B1RD/cc-xp-kit/internal/criteria"
	"github.com/B16B1RD/cc-xp-kit/internal/schema"
	"github.com/B16B1RD/cc-xp-kit/internal/story"
	"github.com/B16B1RD/cc-xp-kit/internal/strategy"
	"github.com/B16B1RD/cc-xp-kit/pkg/ccxp"
)

// errorMessage prefers the user-facing message of typed errors.
func errorMessage(err error) string {
	var missing *config.MissingFileError
	if errors.As(err, &missing) {
		return missing.UserMessage()
	}
	var parse *story.ConfigParseError
	if errors.As(err, &parse) {
		return parse.UserMessage()
	}
	return err.Error()
}

// documentSource reads the document from inline content or a path. Inline
// content wins when both are given.
func (s *Server) documentSource(content, path string) (string, error) {
	if content != "" {
		return content, nil
	}
	return s.client.ReadStories(s.client.StoriesPath(path), ccxp.AcceptUsage)
}

// ExtractCriteriaInput defines the input parameters for the extract_criteria tool.
type ExtractCriteriaInput struct {
	Content string `json:"content,omitempty" jsonschema:"Document text. Takes precedence over path"`
	Path    string `json:"path,omitempty" jsonschema:"Path to the stories document (defaults to the configured path)"`
}

// ExtractCriteriaOutput defines the output for the extract_criteria tool.
type ExtractCriteriaOutput struct {
	Success      bool                 `json:"success"`
	Criteria     []criteria.Criterion `json:"criteria"`
	Category     string               `json:"category"`
	ErrorMessage string               `json:"error_message,omitempty"`
}

// handleExtractCriteria handles the extract_criteria tool call.
func (s *Server) handleExtractCriteria(ctx context.Context, req *mcp.CallToolRequest, input ExtractCriteriaInput) (*mcp.CallToolResult, ExtractCriteriaOutput, error) {
	content, err := s.documentSource(input.Content, input.Path)
	if err != nil {
		return nil, ExtractCriteriaOutput{Criteria: []criteria.Criterion{}, ErrorMessage: errorMessage(err)}, nil
	}

	list := criteria.Extract(content)
	if list == nil {
		list = []criteria.Criterion{}
	}
	return nil, ExtractCriteriaOutput{
		Success:  true,
		Criteria: list,
		Category: string(criteria.DetectCategory(content, s.client.Keywords())),
	}, nil
}

// GenerateTestStubsInput defines the input parameters for the generate_test_stubs tool.
type GenerateTestStubsInput struct {
	Content  string `json:"content,omitempty" jsonschema:"Document text. Takes precedence over path"`
	Path     string `json:"path,omitempty" jsonschema:"Path to the stories document (defaults to the configured path)"`
	Category string `json:"category,omitempty" jsonschema:"Template category: game, web, api or generic. Detected from the document when empty"`
	Write    bool   `json:"write,omitempty" jsonschema:"Write the suite to disk instead of only returning it"`
	OutDir   string `json:"out_dir,omitempty" jsonschema:"Output directory (defaults to the configured tests directory)"`
	OutFile  string `json:"out_file,omitempty" jsonschema:"Output file name (defaults to the configured tests file)"`
}

// GenerateTestStubsOutput defines the output for the generate_test_stubs tool.
type GenerateTestStubsOutput struct {
	Success       bool   `json:"success"`
	CriteriaCount int    `json:"criteria_count"`
	Category      string `json:"category"`
	Suite         string `json:"suite,omitempty"`
	WrittenTo     string `json:"written_to,omitempty"`
	BackupPath    string `json:"backup_path,omitempty"`
	Message       string `json:"message,omitempty"`
	ErrorMessage  string `json:"error_message,omitempty"`
}

// handleGenerateTestStubs handles the generate_test_stubs tool call.
func (s *Server) handleGenerateTestStubs(ctx context.Context, req *mcp.CallToolRequest, input GenerateTestStubsInput) (*mcp.CallToolResult, GenerateTestStubsOutput, error) {
	var category criteria.Category
	if input.Category != "" {
		c, err := criteria.ParseCategory(input.Category)
		if err != nil {
			return nil, GenerateTestStubsOutput{ErrorMessage: err.Error()}, nil
		}
		category = c
	}

	content, err := s.documentSource(input.Content, input.Path)
	if err != nil {
		return nil, GenerateTestStubsOutput{ErrorMessage: errorMessage(err)}, nil
	}

	res, err := s.client.BuildSuite(content, category)
	if err != nil {
		return nil, GenerateTestStubsOutput{ErrorMessage: err.Error()}, nil
	}

	out := GenerateTestStubsOutput{
		Success:       true,
		CriteriaCount: len(res.Criteria),
		Category:      string(res.Category),
		Suite:         res.Suite,
	}
	if len(res.Criteria) == 0 {
		out.Message = "no acceptance criteria found; nothing generated"
		return nil, out, nil
	}

	if input.Write {
		written, err := s.client.WriteSuite(res.Suite, input.OutDir, input.OutFile)
		if err != nil {
			return nil, GenerateTestStubsOutput{ErrorMessage: err.Error()}, nil
		}
		out.WrittenTo = written.Path
		out.BackupPath = written.BackupPath
	}
	return nil, out, nil
}

// RecommendStrategyInput defines the input parameters for the recommend_strategy tool.
type RecommendStrategyInput struct {
	Description string `json:"description" jsonschema:"Free-text description of the feature to implement"`
	Subsequent  bool   `json:"subsequent,omitempty" jsonschema:"The behavior already has an implementation"`
	HasTests    bool   `json:"has_tests,omitempty" jsonschema:"Tests for the behavior already exist"`
}

// RecommendStrategyOutput defines the output for the recommend_strategy tool.
type RecommendStrategyOutput struct {
	Success        bool                     `json:"success"`
	Recommendation *strategy.Recommendation `json:"recommendation,omitempty"`
	Report         string                   `json:"report,omitempty"`
	ErrorMessage   string                   `json:"error_message,omitempty"`
}

// handleRecommendStrategy handles the recommend_strategy tool call.
func (s *Server) handleRecommendStrategy(ctx context.Context, req *mcp.CallToolRequest, input RecommendStrategyInput) (*mcp.CallToolResult, RecommendStrategyOutput, error) {
	if input.Description == "" {
		return nil, RecommendStrategyOutput{ErrorMessage: "description is required"}, nil
	}

	rec := s.client.RecommendStrategy(input.Description, !input.Subsequent, input.HasTests)
	return nil, RecommendStrategyOutput{
		Success:        true,
		Recommendation: &rec,
		Report:         strategy.FormatReport(rec),
	}, nil
}

// RenderStrategyTemplateInput defines the input parameters for the render_strategy_template tool.
type RenderStrategyTemplateInput struct {
	Strategy    string `json:"strategy" jsonschema:"Strategy: fake, triangulation or obvious"`
	Description string `json:"description" jsonschema:"Feature description used to name the function"`
}

// RenderStrategyTemplateOutput defines the output for the render_strategy_template tool.
type RenderStrategyTemplateOutput struct {
	Success      bool   `json:"success"`
	Strategy     string `json:"strategy,omitempty"`
	Template     string `json:"template,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// handleRenderStrategyTemplate handles the render_strategy_template tool call.
func (s *Server) handleRenderStrategyTemplate(ctx context.Context, req *mcp.CallToolRequest, input RenderStrategyTemplateInput) (*mcp.CallToolResult, RenderStrategyTemplateOutput, error) {
	st, err := strategy.ParseStrategy(input.Strategy)
	if err != nil {
		return nil, RenderStrategyTemplateOutput{ErrorMessage: err.Error()}, nil
	}
	return nil, RenderStrategyTemplateOutput{
		Success:  true,
		Strategy: string(st),
		Template: strategy.RenderTemplate(st, input.Description),
	}, nil
}

// PatchStoriesInput defines the input parameters for the patch_stories tool.
type PatchStoriesInput struct {
	Path      string `json:"path,omitempty" jsonschema:"Path to the stories document. Searched in the configured locations when empty"`
	FixConfig string `json:"fix_config,omitempty" jsonschema:"Path to a JSON fix set. The standard fix set is used when empty or missing"`
	FixSet    string `json:"fix_set,omitempty" jsonschema:"Inline JSON fix set. Takes precedence over fix_config"`
	Status    string `json:"status,omitempty" jsonschema:"Validation status text for today's entry"`
	Notes     string `json:"notes,omitempty" jsonschema:"Notes for today's validation entry"`
	DryRun    bool   `json:"dry_run,omitempty" jsonschema:"Preview the change as a unified diff without writing"`
}

// PatchStoriesOutput defines the output for the patch_stories tool.
type PatchStoriesOutput struct {
	Success       bool         `json:"success"`
	Path          string       `json:"path,omitempty"`
	FixSource     string       `json:"fix_source,omitempty"`
	Report        story.Report `json:"report"`
	StatusWritten bool         `json:"status_written"`
	DryRun        bool         `json:"dry_run"`
	Diff          string       `json:"diff,omitempty"`
	ErrorMessage  string       `json:"error_message,omitempty"`
}

// handlePatchStories handles the patch_stories tool call.
func (s *Server) handlePatchStories(ctx context.Context, req *mcp.CallToolRequest, input PatchStoriesInput) (*mcp.CallToolResult, PatchStoriesOutput, error) {
	opts := ccxp.AutofixOptions{
		StoriesPath:   input.Path,
		FixConfigPath: input.FixConfig,
		Status:        input.Status,
		Notes:         input.Notes,
		DryRun:        input.DryRun,
	}
	if input.FixSet != "" {
		fs, err := story.ParseFixSet([]byte(input.FixSet))
		if err != nil {
			return nil, PatchStoriesOutput{ErrorMessage: "fix_set: " + err.Error()}, nil
		}
		opts.FixSet = fs
	}

	res, err := s.client.Autofix(opts)
	if err != nil {
		return nil, PatchStoriesOutput{ErrorMessage: errorMessage(err)}, nil
	}

	return nil, PatchStoriesOutput{
		Success:       true,
		Path:          res.Path,
		FixSource:     res.FixSource,
		Report:        res.Report,
		StatusWritten: res.StatusWritten,
		DryRun:        res.DryRun,
		Diff:          res.Diff,
	}, nil
}

// GetSchemaInput defines input for get_schema tool.
type GetSchemaInput struct {
	Format string `json:"format,omitempty" jsonschema:"Output format: json (default), markdown, or llm"`
}

// GetSchemaOutput defines output for get_schema tool.
type GetSchemaOutput struct {
	CLISchema      interface{} `json:"cli_schema,omitempty"`
	DocumentFormat string      `json:"document_format,omitempty"`
	Markdown       string      `json:"markdown,omitempty"`
	LLMFormat      string      `json:"llm_format,omitempty"`
	ErrorMessage   string      `json:"error_message,omitempty"`
}

// handleGetSchema handles the get_schema tool call.
func (s *Server) handleGetSchema(ctx context.Context, req *mcp.CallToolRequest, input GetSchemaInput) (*mcp.CallToolResult, GetSchemaOutput, error) {
	format := input.Format
	if format == "" {
		format = "json"
	}

	var cliSchema *schema.CLISchema
	if s.rootCmd != nil {
		cliSchema = schema.GetCLISchema(s.rootCmd, s.version)
	}

	switch format {
	case "json":
		out := GetSchemaOutput{DocumentFormat: schema.DocumentFormat}
		if cliSchema != nil {
			out.CLISchema = cliSchema
		}
		return nil, out, nil
	case "markdown":
		var md string
		if cliSchema != nil {
			md = schema.ToMarkdown(cliSchema) + "\n\n"
		}
		return nil, GetSchemaOutput{Markdown: md + schema.DocumentFormat}, nil
	case "llm":
		if cliSchema == nil {
			return nil, GetSchemaOutput{LLMFormat: schema.DocumentFormat}, nil
		}
		return nil, GetSchemaOutput{LLMFormat: schema.ToLLMFormat(cliSchema, schema.DocumentFormat)}, nil
	default:
		return nil, GetSchemaOutput{ErrorMessage: "format must be one of: json, markdown, llm"}, nil
	}
}
