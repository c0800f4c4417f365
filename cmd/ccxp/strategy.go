// Package main provides the strategy command, the Kent Beck TDD advisor.
package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/B16B1RD/cc-xp-kit/internal/strategy"
	"github.com/B16B1RD/cc-xp-kit/internal/ui"
	"github.com/B16B1RD/cc-xp-kit/pkg/ccxp"
)

var (
	strategySubsequent bool
	strategyHasTests   bool
	strategyTemplate   bool
	strategyCopy       bool
)

// clipboardWrite is replaced in tests.
var clipboardWrite = clipboard.WriteAll

// strategyCmd recommends a TDD strategy.
var strategyCmd = &cobra.Command{
	Use:   "strategy [description]",
	Short: "Recommend a TDD strategy (Fake It, Triangulation, Obvious Implementation)",
	Long: `Recommend a Kent Beck TDD strategy for a feature description.

With a description, the advisor assumes a first implementation without
existing tests unless --subsequent or --has-tests say otherwise. Without a
description it asks for the description and context interactively.

EXAMPLES:
  ccxp strategy "2つの数を足す"
  ccxp strategy "スコアを計算する" --subsequent --has-tests
  ccxp strategy "ログイン判定" --template --copy
  ccxp strategy`,
	RunE: runStrategy,
}

func init() {
	strategyCmd.Flags().BoolVar(&strategySubsequent, "subsequent", false, "The behavior already has an implementation")
	strategyCmd.Flags().BoolVar(&strategyHasTests, "has-tests", false, "Tests for the behavior already exist")
	strategyCmd.Flags().BoolVar(&strategyTemplate, "template", false, "Also render the strategy's code template")
	strategyCmd.Flags().BoolVar(&strategyCopy, "copy", false, "Copy the template (or the report) to the clipboard")
}

// runStrategy prints a recommendation, or runs the interactive advisor when
// no description is given.
func runStrategy(cmd *cobra.Command, args []string) error {
	client, err := ccxp.NewClient()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return runStrategySession(cmd, client)
	}

	description := strings.Join(args, " ")
	rec := client.RecommendStrategy(description, !strategySubsequent, strategyHasTests)

	var template string
	if strategyTemplate {
		template = strategy.RenderTemplate(rec.Strategy, description)
	}

	if wantsJSON(cmd) {
		return printJSON(cmd, struct {
			strategy.Recommendation
			Template string `json:"template,omitempty"`
		}{rec, template})
	}

	report := strategy.FormatReport(rec)
	out := cmd.OutOrStdout()
	fmt.Fprint(out, report)
	if template != "" {
		fmt.Fprintln(out, "\n📄 Test template:")
		fmt.Fprintln(out, template)
	}

	if strategyCopy {
		text := template
		if text == "" {
			text = report
		}
		copyToClipboard(text)
	}
	return nil
}

func runStrategySession(cmd *cobra.Command, client *ccxp.Client) error {
	out := cmd.OutOrStdout()
	session := &strategy.Session{
		Prompter: ui.NewLinePrompter(cmd.InOrStdin(), out),
		Out:      out,
		Base:     client.StrategyOptions(true, false),
	}

	result, err := session.Run(commandContext(cmd))
	if err != nil {
		return err
	}
	if result != nil && strategyCopy && result.Template != "" {
		copyToClipboard(result.Template)
	}
	return nil
}

// copyToClipboard copies text, warning instead of failing when no
// clipboard is available.
func copyToClipboard(text string) {
	if err := clipboardWrite(text); err != nil {
		ui.PrintWarning("Could not copy to clipboard: %v", err)
		return
	}
	ui.PrintSuccess("Copied to clipboard")
}
