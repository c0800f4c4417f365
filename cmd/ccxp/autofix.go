// Package main provides the autofix command for user stories documents.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/B16B1RD/cc-xp-kit/internal/story"
	"github.com/B16B1RD/cc-xp-kit/internal/ui"
	"github.com/B16B1RD/cc-xp-kit/pkg/ccxp"
)

var (
	autofixStatus        string
	autofixNotes         string
	autofixDryRun        bool
	autofixPrintStandard bool
)

// autofixCmd applies an MVP fix set to a stories document.
var autofixCmd = &cobra.Command{
	Use:   "autofix [stories-file] [fix-config.json]",
	Short: "Apply MVP validation fixes to a user stories document",
	Long: `Patch a user stories document after a failed MVP validation.

The fix set adds missing features, appends acceptance criteria, and replaces
the implementation order. Each patch is idempotent: running autofix twice
leaves the document unchanged the second time. A dated validation status
entry is appended at most once per day. The original document is backed up
to <file>.backup.<timestamp> before the first write.

Without a stories file the configured search locations are tried. Without a
fix config (or when it does not exist) the standard fix set is used; print
it with --print-standard to start a custom one.

EXAMPLES:
  ccxp autofix
  ccxp autofix docs/stories.md fixes.json
  ccxp autofix --dry-run
  ccxp autofix --status "再検証中" --notes "スコア表示を追加"
  ccxp autofix --print-standard > fixes.json`,
	Args: cobra.MaximumNArgs(2),
	RunE: runAutofix,
}

func init() {
	autofixCmd.Flags().StringVar(&autofixStatus, "status", "", fmt.Sprintf("Validation status text (default %q)", ccxp.DefaultStatus))
	autofixCmd.Flags().StringVar(&autofixNotes, "notes", "", fmt.Sprintf("Validation notes (default %q when --status is also unset)", ccxp.DefaultNotes))
	autofixCmd.Flags().BoolVar(&autofixDryRun, "dry-run", false, "Show the changes as a diff without writing")
	autofixCmd.Flags().BoolVar(&autofixPrintStandard, "print-standard", false, "Print the standard fix set as JSON and exit")
}

// runAutofix patches the document and reports per-section outcomes.
func runAutofix(cmd *cobra.Command, args []string) error {
	if autofixPrintStandard {
		data, err := story.StandardFixSet().JSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	client, err := ccxp.NewClient()
	if err != nil {
		return err
	}

	opts := ccxp.AutofixOptions{
		Status: autofixStatus,
		Notes:  autofixNotes,
		DryRun: autofixDryRun,
	}
	if len(args) > 0 {
		opts.StoriesPath = args[0]
	}
	if len(args) > 1 {
		opts.FixConfigPath = args[1]
	}

	res, err := client.Autofix(opts)
	if err != nil {
		return err
	}

	if wantsJSON(cmd) {
		return printJSON(cmd, res)
	}

	printAutofixResult(res)
	return nil
}

func printAutofixResult(res *ccxp.AutofixResult) {
	ui.PrintKeyValue("Document", res.Path)
	ui.PrintKeyValue("Fix set", res.FixSource)
	ui.Println()

	table := ui.NewTable("SECTION", "OUTCOME")
	table.AddRow("Features", ui.OutcomeLabel(string(res.Report.Features)))
	table.AddRow("Acceptance criteria", ui.OutcomeLabel(string(res.Report.Criteria)))
	table.AddRow("Implementation order", ui.OutcomeLabel(string(res.Report.Order)))
	statusOutcome := story.OutcomeAlreadyApplied
	if res.StatusWritten {
		statusOutcome = story.OutcomeApplied
	}
	table.AddRow("Validation status", ui.OutcomeLabel(string(statusOutcome)))
	table.Render()
	ui.Println()

	if res.DryRun {
		if res.Diff == "" {
			ui.PrintInfo("Dry run: no changes")
			return
		}
		ui.PrintInfo("Dry run: nothing was written")
		ui.PrintDiff(res.Diff)
		return
	}

	if !res.Report.Changed && !res.StatusWritten {
		ui.PrintInfo("Document already up to date")
		return
	}
	lines := []string{res.Path}
	if res.Report.BackupPath != "" {
		lines = append(lines, "Backup: "+res.Report.BackupPath)
	}
	ui.PrintResultBox("Document updated", true, lines...)
}
