// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enforce

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/corpus-refinery/internal/frontmatter"
	"github.com/pdiddy/corpus-refinery/internal/runlog"
	"github.com/pdiddy/corpus-refinery/internal/score"
	"github.com/pdiddy/corpus-refinery/pkg/types"
)

// BatchSummary holds counts from one enforcement run.
type BatchSummary struct {
	Processed int
	Failed    int
}

// Total returns the number of documents seen.
func (s BatchSummary) Total() int {
	return s.Processed + s.Failed
}

// HasFailures reports whether any documents failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// RunAll enforces the template on every Markdown file under the configured
// source subfolders, scores each document before enforcement, writes the
// structured output to the target directory, and appends one record per
// document to the run log. A document's failure is recorded and skipped;
// it never aborts the batch. Files are processed in directory-listing
// order within each subfolder.
func RunAll(cfg types.EnforceConfig, template []string, log *runlog.Writer, w io.Writer) (BatchSummary, error) {
	if err := os.MkdirAll(cfg.TargetDir, 0o755); err != nil {
		return BatchSummary{}, fmt.Errorf("creating target directory: %w", err)
	}

	var summary BatchSummary

	for _, subfolder := range cfg.Subfolders {
		model := modelTag(subfolder)
		sourceDir := filepath.Join(cfg.SourceDir, subfolder)

		entries, err := os.ReadDir(sourceDir)
		if err != nil {
			fmt.Fprintf(w, "skipping %s: %v\n", subfolder, err)
			continue
		}

		fmt.Fprintf(w, "model %s: %s\n", model, sourceDir)

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
				continue
			}

			rec := enforceFile(sourceDir, entry.Name(), model, subfolder, cfg.TargetDir, template)
			if err := log.Append(rec); err != nil {
				return summary, err
			}

			if rec.Status == types.StatusFailed {
				fmt.Fprintf(w, "failed  %s: %s\n", entry.Name(), rec.Error)
				summary.Failed++
				continue
			}

			fmt.Fprintf(w, "enforced %s -> %s (completeness %.1f%%, matched %d, missing %d, extra %d)\n",
				entry.Name(), rec.OutputFile, rec.Completeness.Percentage,
				len(rec.Enforcement.MatchedSections),
				len(rec.Enforcement.MissingSections),
				len(rec.Enforcement.ExtraSections))
			summary.Processed++
		}
	}

	fmt.Fprintf(w, "\nprocessed: %d, failed: %d\n", summary.Processed, summary.Failed)
	return summary, nil
}

// enforceFile runs metrics and enforcement for a single document and
// returns its run-log record. All errors are folded into a failed record.
func enforceFile(sourceDir, name, model, subfolder, targetDir string, template []string) types.FileRecord {
	rec := types.FileRecord{
		OriginalFile: name,
		Model:        model,
		Subfolder:    subfolder,
		Timestamp:    time.Now().Format(time.RFC3339),
		Status:       types.StatusFailed,
	}

	data, err := os.ReadFile(filepath.Join(sourceDir, name))
	if err != nil {
		rec.Error = err.Error()
		return rec
	}
	content := string(data)

	// Metrics are computed on the original document, before enforcement.
	rec.LanguageRatio = math.Round(score.LanguageRatio(content)*100) / 100

	_, body, _ := frontmatter.Split(content)
	text := score.Text(body)
	rec.Text = &text

	found := ExtractSections(body)
	completeness := score.Completeness(found.Content, len(template))
	rec.Completeness = &completeness

	structured, report := Apply(content, template)
	rec.Enforcement = &report

	ext := filepath.Ext(name)
	outName := strings.TrimSuffix(name, ext) + "_" + model + ext
	if err := os.WriteFile(filepath.Join(targetDir, outName), []byte(structured), 0o644); err != nil {
		rec.Error = err.Error()
		return rec
	}

	rec.OutputFile = outName
	rec.Status = types.StatusSuccess
	return rec
}

// modelTag derives the source-model name from a subfolder name: the last
// hyphen-separated token ("markdown-hebrew-mistral" -> "mistral").
func modelTag(subfolder string) string {
	if i := strings.LastIndex(subfolder, "-"); i >= 0 {
		return subfolder[i+1:]
	}
	return subfolder
}
