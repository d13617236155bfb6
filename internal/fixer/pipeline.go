// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fixer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/corpus-refinery/pkg/types"
)

// BatchSummary holds counts from one repair run.
type BatchSummary struct {
	Fixed     int
	Unchanged int
	Failed    int
}

// Total returns the number of documents seen.
func (s BatchSummary) Total() int {
	return s.Fixed + s.Unchanged + s.Failed
}

// RunAll repairs every Markdown file in the source directory and writes
// the results to the output directory (or in place when the output
// directory is empty). One file's failure is reported and skipped; it
// never aborts the batch. Files are processed in sorted order.
func RunAll(cfg types.FixConfig, w io.Writer) (BatchSummary, error) {
	entries, err := os.ReadDir(cfg.SourceDir)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("reading source directory %s: %w", cfg.SourceDir, err)
	}

	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = cfg.SourceDir
	} else if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return BatchSummary{}, fmt.Errorf("creating output directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var summary BatchSummary

	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(cfg.SourceDir, name))
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		fixed, applied := Fix(string(data))
		if fixed == string(data) {
			fmt.Fprintf(w, "ok      %s\n", name)
			summary.Unchanged++
			continue
		}

		if err := os.WriteFile(filepath.Join(outputDir, name), []byte(fixed), 0o644); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		if len(applied) == 0 {
			fmt.Fprintf(w, "fixed   %s: normalized frontmatter\n", name)
		} else {
			fmt.Fprintf(w, "fixed   %s: %s\n", name, strings.Join(applied, "; "))
		}
		summary.Fixed++
	}

	fmt.Fprintf(w, "\nfixed: %d, unchanged: %d, failed: %d\n", summary.Fixed, summary.Unchanged, summary.Failed)
	return summary, nil
}
