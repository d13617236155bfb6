// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pdiddy/corpus-refinery/pkg/types"
)

// WriteSectionCSV exports one (filename, model, section_title, status) row
// per template section of every successful record, for per-section auditing
// across the corpus. Rows follow template order within each file.
func WriteSectionCSV(path string, records []types.FileRecord, template []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating section CSV %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"filename", "model", "section_title", "status"}); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, rec := range records {
		if rec.Status != types.StatusSuccess || rec.Enforcement == nil {
			continue
		}
		for _, section := range template {
			status, ok := rec.Enforcement.SectionStatus[section]
			if !ok {
				status = types.SectionMissing
			}
			row := []string{rec.OriginalFile, rec.Model, section, string(status)}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("writing CSV row: %w", err)
			}
		}
	}

	w.Flush()
	return w.Error()
}

// WriteSummary renders a human-readable run summary: overall counts and
// averages, then per-model blocks with per-file detail.
func WriteSummary(w io.Writer, records []types.FileRecord, template []string) {
	var succeeded, failed int
	var sumLang, sumCompleteness float64

	byModel := map[string][]types.FileRecord{}
	for _, rec := range records {
		byModel[rec.Model] = append(byModel[rec.Model], rec)
		if rec.Status != types.StatusSuccess {
			failed++
			continue
		}
		succeeded++
		sumLang += rec.LanguageRatio
		if rec.Completeness != nil {
			sumCompleteness += rec.Completeness.Percentage
		}
	}

	rule := "================================================================================"
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "STRUCTURE ENFORCEMENT SUMMARY")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Template sections: %d\n", len(template))
	fmt.Fprintf(w, "Files processed:   %d (%d ok, %d failed)\n", len(records), succeeded, failed)
	if succeeded > 0 {
		fmt.Fprintf(w, "Avg Hebrew %%:      %.1f\n", sumLang/float64(succeeded))
		fmt.Fprintf(w, "Avg completeness:  %.1f%%\n", sumCompleteness/float64(succeeded))
	}
	fmt.Fprintln(w)

	models := make([]string, 0, len(byModel))
	for m := range byModel {
		models = append(models, m)
	}
	sort.Strings(models)

	for _, model := range models {
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "MODEL: %s\n", model)
		fmt.Fprintln(w, rule)

		for _, rec := range byModel[model] {
			fmt.Fprintf(w, "\n%s\n", rec.OriginalFile)
			if rec.Status != types.StatusSuccess {
				fmt.Fprintf(w, "  FAILED: %s\n", rec.Error)
				continue
			}
			fmt.Fprintf(w, "  Output:       %s\n", rec.OutputFile)
			fmt.Fprintf(w, "  Hebrew %%:     %.1f\n", rec.LanguageRatio)
			if rec.Completeness != nil {
				fmt.Fprintf(w, "  Completeness: %.1f%% (%d/%d sections)\n",
					rec.Completeness.Percentage, rec.Completeness.FilledSections, rec.Completeness.TotalSections)
			}
			if rec.Text != nil {
				fmt.Fprintf(w, "  Words:        %d\n", rec.Text.WordCount)
			}
			if rec.Enforcement != nil {
				fmt.Fprintf(w, "  Matched %d, missing %d, extra %d\n",
					len(rec.Enforcement.MatchedSections),
					len(rec.Enforcement.MissingSections),
					len(rec.Enforcement.ExtraSections))
				for _, section := range template {
					status := rec.Enforcement.SectionStatus[section]
					line := fmt.Sprintf("    [%-7s] %s", status, section)
					if status == types.SectionMatchedNormalized {
						line += fmt.Sprintf("  (was: %q)", rec.Enforcement.OriginalNames[section])
					}
					fmt.Fprintln(w, line)
				}
				for _, extra := range rec.Enforcement.ExtraSections {
					fmt.Fprintf(w, "    [+] discarded: %s\n", extra)
				}
			}
		}
		fmt.Fprintln(w)
	}
}
