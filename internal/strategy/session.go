package strategy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the user a question and returns the answer line.
//
// Implementations return io.EOF once the input stream is closed.
type Prompter interface {
	Prompt(message string) (string, error)
}

// Session runs the interactive question sequence of the advisor.
type Session struct {
	// Prompter supplies the answers.
	Prompter Prompter

	// Out receives the report.
	Out io.Writer

	// Base carries threshold and keyword overrides; the two booleans are
	// replaced by the user's answers.
	Base Options
}

// SessionResult is what an interactive session produced.
type SessionResult struct {
	Description    string
	Recommendation Recommendation

	// Template is the rendered illustration, empty if the user declined.
	Template string
}

// Run asks for a description and the implementation context, prints the
// recommendation, and offers to render the strategy template.
//
// Closing the input stream at any prompt ends the session with a farewell
// line; Run then returns a nil result and a nil error.
//
// Parameters:
//   - ctx: Context checked between prompts
//
// Returns:
//   - *SessionResult: The outcome, or nil if the user left early
//   - error: Any non-EOF prompt or context error
func (s *Session) Run(ctx context.Context) (*SessionResult, error) {
	fmt.Fprintln(s.Out, "🎯 Kent Beck TDD strategy advisor")
	fmt.Fprintln(s.Out, "=====================================")
	fmt.Fprintln(s.Out)

	description, err := s.ask(ctx, "Describe the feature to implement:")
	if err != nil {
		return s.finish(err)
	}
	isFirst, err := s.ask(ctx, "Is this the first implementation? (y/n):")
	if err != nil {
		return s.finish(err)
	}
	hasTests, err := s.ask(ctx, "Are there existing tests? (y/n):")
	if err != nil {
		return s.finish(err)
	}

	opts := s.Base
	opts.IsFirstImplementation = isYes(isFirst)
	opts.HasExistingTests = isYes(hasTests)

	result := &SessionResult{
		Description:    description,
		Recommendation: Recommend(description, opts),
	}

	fmt.Fprintln(s.Out)
	fmt.Fprint(s.Out, FormatReport(result.Recommendation))

	wantTemplate, err := s.ask(ctx, "\nGenerate a test template? (y/n):")
	if err != nil {
		if _, err := s.finish(err); err != nil {
			return nil, err
		}
		return result, nil
	}

	if isYes(wantTemplate) {
		result.Template = RenderTemplate(result.Recommendation.Strategy, description)
		fmt.Fprintln(s.Out, "\n📄 Test template:")
		fmt.Fprintln(s.Out, result.Template)
	}

	return result, nil
}

func (s *Session) ask(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.Prompter.Prompt(message)
}

// finish turns end-of-input into a graceful goodbye.
func (s *Session) finish(err error) (*SessionResult, error) {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(s.Out, "\n👋 Bye")
		return nil, nil
	}
	return nil, err
}

func isYes(answer string) bool {
	return strings.ToLower(strings.TrimSpace(answer)) == "y"
}

// FormatReport renders a recommendation as the multi-line report shown by
// the interactive advisor.
func FormatReport(r Recommendation) string {
	var b strings.Builder
	b.WriteString("📋 Strategy report\n")
	b.WriteString("=====================\n")
	fmt.Fprintf(&b, "🎯 Strategy:   %s\n", r.Strategy)
	fmt.Fprintf(&b, "🎪 Confidence: %s\n", r.Confidence)
	fmt.Fprintf(&b, "💡 Reason:     %s\n", r.Reason)
	b.WriteString("\n📝 Example:\n")
	b.WriteString(r.Example)
	b.WriteString("\n")
	fmt.Fprintf(&b, "\n⏭️  Next step: %s\n", r.NextStep)
	return b.String()
}
