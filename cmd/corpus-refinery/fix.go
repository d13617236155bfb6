package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/corpus-refinery/internal/fixer"
	"github.com/pdiddy/corpus-refinery/pkg/types"
)

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Repair broken YAML frontmatter in generated documents",
	Long: `Fix repairs the malformed YAML frontmatter that LLMs produce: code block
wrappers around the document, missing closing --- markers, unquoted emails
and URLs, and nested metadata that belongs at the top level. Repaired
documents carry a flat frontmatter block that parses cleanly; document
bodies are never modified.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := types.FixConfig{
			SourceDir: stringSetting(cmd, "source-dir", "fix.source_dir"),
			OutputDir: stringSetting(cmd, "output-dir", "fix.output_dir"),
		}

		summary, err := fixer.RunAll(cfg, os.Stdout)
		if err != nil {
			return err
		}
		if summary.Failed > 0 {
			return fmt.Errorf("%d document(s) failed repair", summary.Failed)
		}
		return nil
	},
}

func init() {
	fixCmd.Flags().String("source-dir", "data/generated", "directory of raw generated documents")
	fixCmd.Flags().String("output-dir", "", "directory for repaired documents (default: in place)")

	rootCmd.AddCommand(fixCmd)
}
