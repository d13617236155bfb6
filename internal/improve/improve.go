// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package improve implements the regeneration loop: it reads an
// enforcement run log, selects documents below the completeness
// threshold, and asks the originating model to regenerate each one from
// its structured form. Improved documents land in per-model output
// folders and are scored by running the enforcer again; one invocation
// performs exactly one pass.
package improve

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/pdiddy/corpus-refinery/internal/genai"
	"github.com/pdiddy/corpus-refinery/pkg/types"
)

// Candidate is one document selected for regeneration.
type Candidate struct {
	OriginalFile string
	OutputFile   string
	Model        string
	Completeness float64
}

// Summary holds counts from one improvement pass.
type Summary struct {
	Candidates int
	Improved   int
	Failed     int
}

// SelectCandidates filters run-log records down to successfully enforced
// documents whose completeness fell below the threshold. Records without
// completeness metrics count as zero and are always selected.
func SelectCandidates(records []types.FileRecord, threshold float64) []Candidate {
	var out []Candidate
	for _, rec := range records {
		if rec.Status != types.StatusSuccess {
			continue
		}
		var completeness float64
		if rec.Completeness != nil {
			completeness = rec.Completeness.Percentage
		}
		if completeness >= threshold {
			continue
		}
		out = append(out, Candidate{
			OriginalFile: rec.OriginalFile,
			OutputFile:   rec.OutputFile,
			Model:        rec.Model,
			Completeness: completeness,
		})
	}
	return out
}

// Run executes one improvement pass over the given run-log records.
// Candidates are grouped by model and processed in sorted model order so
// runs are reproducible. Each improved document is written to
// "<OutputDir>/<OutputPrefix>-<model>-improved/<original file>". One
// document's failure is reported and skipped; it never aborts the pass.
func Run(ctx context.Context, cfg types.ImproveConfig, records []types.FileRecord, resolver *genai.Resolver, w io.Writer) (Summary, error) {
	candidates := SelectCandidates(records, cfg.Threshold)
	summary := Summary{Candidates: len(candidates)}

	fmt.Fprintf(w, "loaded %d records, %d below %.1f%% threshold\n", len(records), len(candidates), cfg.Threshold)
	if len(candidates) == 0 {
		fmt.Fprintln(w, "all documents meet the quality threshold")
		return summary, nil
	}

	byModel := make(map[string][]Candidate)
	for _, c := range candidates {
		byModel[c.Model] = append(byModel[c.Model], c)
	}
	models := make([]string, 0, len(byModel))
	for m := range byModel {
		models = append(models, m)
	}
	sort.Strings(models)

	prefix := cfg.OutputPrefix
	if prefix == "" {
		prefix = "markdown-hebrew"
	}

	for _, model := range models {
		group := byModel[model]
		fmt.Fprintf(w, "\nmodel %s: %d documents to improve\n", model, len(group))

		backend, err := resolver.Resolve(model)
		if err != nil {
			fmt.Fprintf(w, "skipping model %s: %v\n", model, err)
			summary.Failed += len(group)
			continue
		}

		outputDir := filepath.Join(cfg.OutputDir, prefix+"-"+model+"-improved")
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return summary, fmt.Errorf("creating output directory %s: %w", outputDir, err)
		}

		for _, c := range group {
			if err := improveOne(ctx, cfg, c, backend, outputDir); err != nil {
				fmt.Fprintf(w, "failed  %s: %v\n", c.OriginalFile, err)
				summary.Failed++
				continue
			}
			fmt.Fprintf(w, "improved %s (was %.1f%%)\n", c.OriginalFile, c.Completeness)
			summary.Improved++
		}
	}

	fmt.Fprintf(w, "\ncandidates: %d, improved: %d, failed: %d\n", summary.Candidates, summary.Improved, summary.Failed)
	fmt.Fprintln(w, "next step: run enforce on the improved folders to re-score")
	return summary, nil
}

// improveOne regenerates a single document from its structured form and
// writes the result under the original filename.
func improveOne(ctx context.Context, cfg types.ImproveConfig, c Candidate, backend genai.Backend, outputDir string) error {
	structuredPath := filepath.Join(cfg.StructuredDir, c.OutputFile)
	data, err := os.ReadFile(structuredPath)
	if err != nil {
		return fmt.Errorf("reading structured document: %w", err)
	}

	prompt := BuildPrompt(string(data), ResponsibilityName(c.OriginalFile))

	improved, err := backend.Generate(ctx, genai.Request{
		Prompt:      prompt,
		Model:       c.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	})
	if err != nil {
		return fmt.Errorf("generating with %s: %w", c.Model, err)
	}

	outPath := filepath.Join(outputDir, c.OriginalFile)
	if err := os.WriteFile(outPath, []byte(improved), 0o644); err != nil {
		return fmt.Errorf("writing improved document: %w", err)
	}
	return nil
}
