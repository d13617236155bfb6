package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/corpus-refinery/internal/enforce"
	"github.com/pdiddy/corpus-refinery/internal/runlog"
	"github.com/pdiddy/corpus-refinery/pkg/types"
)

var enforceCmd = &cobra.Command{
	Use:   "enforce",
	Short: "Enforce the canonical section template on generated documents",
	Long: `Enforce rewrites each generated document to carry exactly the sections of
the canonical template, in template order. Matched content is preserved,
missing sections are filled with the Hebrew placeholder, and extra sections
are discarded (recorded with a preview in the run log). Every document also
gets language, text, and completeness metrics; the run log, a per-section
CSV, and a summary report land in the log directory.`,
	RunE: runEnforce,
}

func runEnforce(cmd *cobra.Command, args []string) error {
	cfg := types.EnforceConfig{
		TemplatePath: stringSetting(cmd, "template", "enforce.template_path"),
		SourceDir:    stringSetting(cmd, "source-dir", "enforce.source_dir"),
		TargetDir:    stringSetting(cmd, "target-dir", "enforce.target_dir"),
		LogDir:       stringSetting(cmd, "log-dir", "enforce.log_dir"),
	}

	if cmd.Flags().Changed("subfolders") || !viper.IsSet("enforce.subfolders") {
		raw, _ := cmd.Flags().GetString("subfolders")
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				cfg.Subfolders = append(cfg.Subfolders, s)
			}
		}
	} else {
		cfg.Subfolders = viper.GetStringSlice("enforce.subfolders")
	}
	if len(cfg.Subfolders) == 0 {
		return fmt.Errorf("no source subfolders configured: set --subfolders or enforce.subfolders")
	}

	template, err := enforce.LoadTemplate(cfg.TemplatePath)
	if err != nil {
		return err
	}

	paths := runlog.PathsFor(cfg.LogDir, time.Now())
	log, err := runlog.Open(paths.Log)
	if err != nil {
		return err
	}
	defer log.Close()

	summary, err := enforce.RunAll(cfg, template, log, os.Stdout)
	if err != nil {
		return err
	}

	// The CSV and summary are derived from the full log after the run.
	records, err := runlog.Read(paths.Log)
	if err != nil {
		return err
	}
	if err := runlog.WriteSectionCSV(paths.CSV, records, template); err != nil {
		return err
	}
	sf, err := os.Create(paths.Summary)
	if err != nil {
		return fmt.Errorf("creating summary file: %w", err)
	}
	defer sf.Close()
	runlog.WriteSummary(sf, records, template)

	fmt.Printf("\nrun log: %s\n", paths.Log)
	if summary.HasFailures() {
		return fmt.Errorf("%d document(s) failed enforcement", summary.Failed)
	}
	return nil
}

func init() {
	enforceCmd.Flags().String("template", "templates/input_template_hebrew.md", "canonical template file")
	enforceCmd.Flags().String("source-dir", "data/generated", "base directory of generated documents")
	enforceCmd.Flags().String("subfolders", "", "comma-separated per-model subfolders (e.g. markdown-hebrew-mistral)")
	enforceCmd.Flags().String("target-dir", "data/structured/hebrew", "directory for structured output")
	enforceCmd.Flags().String("log-dir", "logs", "directory for run logs and reports")

	rootCmd.AddCommand(enforceCmd)
}
