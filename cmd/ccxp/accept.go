// Package main provides the accept command for acceptance test stub generation.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/B16B1RD/cc-xp-kit/internal/criteria"
	"github.com/B16B1RD/cc-xp-kit/internal/ui"
	"github.com/B16B1RD/cc-xp-kit/internal/watch"
	"github.com/B16B1RD/cc-xp-kit/pkg/ccxp"
)

var (
	acceptOutDir   string
	acceptOutFile  string
	acceptCategory string
	acceptKeywords string
	acceptStdout   bool
	acceptWatch    bool
)

// acceptCmd generates acceptance test stubs from a stories document.
var acceptCmd = &cobra.Command{
	Use:   "accept [stories-file]",
	Short: "Generate acceptance test stubs from GIVEN/WHEN/THEN criteria",
	Long: `Generate a failing JavaScript test stub for every acceptance criterion.

Criteria are lines of the form "GIVEN <context> WHEN <action> THEN <outcome>".
The project category (game, web, api, generic) is detected from keywords in
the document unless --category is given, and selects the stub template.

The stories file defaults to stories.path from .ccxp/config.yaml, or
docs/agile-artifacts/stories/user-stories-v1.0.md. Use "-" to read stdin.
An existing suite is backed up before it is overwritten.

EXAMPLES:
  ccxp accept
  ccxp accept docs/stories.md --category web
  ccxp accept - --stdout < stories.md
  ccxp accept --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAccept,
}

func init() {
	acceptCmd.Flags().StringVar(&acceptOutDir, "out-dir", "", "Output directory (default: tests.dir from config, or tests)")
	acceptCmd.Flags().StringVar(&acceptOutFile, "out-file", "", "Output file name (default: tests.file from config, or acceptance.test.js)")
	acceptCmd.Flags().StringVar(&acceptCategory, "category", "auto", "Template category: auto, game, web, api, generic")
	acceptCmd.Flags().StringVar(&acceptKeywords, "keywords", "", "YAML file overriding the keyword tables")
	acceptCmd.Flags().BoolVar(&acceptStdout, "stdout", false, "Print the suite instead of writing it")
	acceptCmd.Flags().BoolVar(&acceptWatch, "watch", false, "Regenerate whenever the stories file changes")
}

// runAccept extracts criteria and writes the generated suite.
func runAccept(cmd *cobra.Command, args []string) error {
	client, err := ccxp.NewClient(ccxp.WithKeywordsFile(acceptKeywords))
	if err != nil {
		return err
	}

	var category criteria.Category
	if acceptCategory != "" && acceptCategory != "auto" {
		category, err = criteria.ParseCategory(acceptCategory)
		if err != nil {
			return err
		}
	}

	var arg string
	if len(args) > 0 {
		arg = args[0]
	}

	if arg == "-" {
		if acceptWatch {
			return fmt.Errorf("--watch cannot be used when reading from stdin")
		}
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		return generateSuite(cmd, client, string(data), category)
	}

	path := client.StoriesPath(arg)
	regenerate := func() error {
		content, err := client.ReadStories(path, ccxp.AcceptUsage)
		if err != nil {
			return err
		}
		return generateSuite(cmd, client, content, category)
	}

	if err := regenerate(); err != nil {
		return err
	}
	if !acceptWatch {
		return nil
	}

	w, err := watch.New(path, watch.DefaultDebounce)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui.PrintInfo("Watching %s for changes (Ctrl+C to stop)", path)
	return w.Run(ctx, func(context.Context) error {
		log.Debug("Stories file changed, regenerating", "path", path)
		return regenerate()
	})
}

// generateSuite renders the suite for content and writes or prints it.
// Content without criteria only produces a warning.
func generateSuite(cmd *cobra.Command, client *ccxp.Client, content string, category criteria.Category) error {
	res, err := client.BuildSuite(content, category)
	if err != nil {
		return err
	}

	if len(res.Criteria) == 0 {
		ui.PrintWarning("No acceptance criteria found (expected lines like \"GIVEN ... WHEN ... THEN ...\")")
		if wantsJSON(cmd) {
			return printJSON(cmd, res)
		}
		return nil
	}

	source := "specified"
	if res.Detected {
		source = "detected"
	}

	if acceptStdout {
		log.Debug("Printing suite", "criteria", len(res.Criteria), "category", res.Category, "source", source)
		fmt.Fprint(cmd.OutOrStdout(), res.Suite)
		return nil
	}

	written, err := client.WriteSuite(res.Suite, acceptOutDir, acceptOutFile)
	if err != nil {
		return err
	}

	if wantsJSON(cmd) {
		return printJSON(cmd, struct {
			*ccxp.SuiteResult
			Path       string `json:"path"`
			BackupPath string `json:"backup_path,omitempty"`
		}{res, written.Path, written.BackupPath})
	}

	ui.PrintSuccess("Generated %d test stubs (%s, %s)", len(res.Criteria), res.Category, source)
	ui.PrintKeyValue("Suite", fmt.Sprintf("%s (%s)", written.Path, humanize.Bytes(uint64(len(res.Suite)))))
	if written.BackupPath != "" {
		ui.PrintKeyValue("Backup", written.BackupPath)
	}
	for i, c := range res.Criteria {
		ui.PrintDim("  %d. %s", i+1, c.String())
	}
	return nil
}
