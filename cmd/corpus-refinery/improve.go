package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/corpus-refinery/internal/genai"
	"github.com/pdiddy/corpus-refinery/internal/improve"
	"github.com/pdiddy/corpus-refinery/internal/runlog"
	"github.com/pdiddy/corpus-refinery/pkg/types"
)

var improveCmd = &cobra.Command{
	Use:   "improve",
	Short: "Regenerate documents below the completeness threshold",
	Long: `Improve reads the newest enforcement run log, selects successfully
enforced documents whose completeness fell below the threshold, and asks
the model that produced each document to regenerate it from its structured
form. Improved documents are written to per-model "-improved" folders; run
enforce on those folders to re-score them. One invocation performs one
pass.`,
	RunE: runImprove,
}

func runImprove(cmd *cobra.Command, args []string) error {
	threshold, _ := cmd.Flags().GetFloat64("threshold")
	if !cmd.Flags().Changed("threshold") && viper.IsSet("improve.threshold") {
		threshold = viper.GetFloat64("improve.threshold")
	}

	cfg := types.ImproveConfig{
		AIConfig: types.AIConfig{
			APIKey:      secretDefault("anthropic-api-key", ""),
			Temperature: 0.7,
			MaxTokens:   4000,
			Timeout:     5 * time.Minute,
		},
		Threshold:     threshold,
		StructuredDir: stringSetting(cmd, "structured-dir", "improve.structured_dir"),
		OutputDir:     stringSetting(cmd, "output-dir", "improve.output_dir"),
		OutputPrefix:  stringSetting(cmd, "output-prefix", "improve.output_prefix"),
	}

	logDir := stringSetting(cmd, "log-dir", "enforce.log_dir")
	logPath, _ := cmd.Flags().GetString("log")
	if logPath == "" {
		var err error
		logPath, err = runlog.Latest(logDir)
		if err != nil {
			return err
		}
	}
	fmt.Printf("using run log: %s\n", logPath)

	records, err := runlog.Read(logPath)
	if err != nil {
		return err
	}

	resolver := genai.NewResolver(cfg.AIConfig)

	summary, err := improve.Run(context.Background(), cfg, records, resolver, os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d document(s) failed improvement", summary.Failed)
	}
	return nil
}

func init() {
	improveCmd.Flags().Float64("threshold", 80, "minimum completeness percentage to accept a document")
	improveCmd.Flags().String("log", "", "enforcement run log to read (default: newest in log dir)")
	improveCmd.Flags().String("log-dir", "logs", "directory of enforcement run logs")
	improveCmd.Flags().String("structured-dir", "data/structured/hebrew", "directory of structured documents")
	improveCmd.Flags().String("output-dir", "data/generated", "base directory for improved documents")
	improveCmd.Flags().String("output-prefix", "markdown-hebrew", "prefix for per-model output subfolders")

	rootCmd.AddCommand(improveCmd)
}
