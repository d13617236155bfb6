package enforce

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/corpus-refinery/internal/runlog"
	"github.com/pdiddy/corpus-refinery/pkg/types"
)

func TestRunAll(t *testing.T) {
	tmpDir := t.TempDir()
	sourceDir := filepath.Join(tmpDir, "generated")
	subfolder := "markdown-hebrew-mistral"
	if err := os.MkdirAll(filepath.Join(sourceDir, subfolder), 0o755); err != nil {
		t.Fatal(err)
	}

	doc := `---
title: ניהול פסולת
---
# ניהול פסולת

## סקירה

תוכן הסקירה בעברית.
`
	if err := os.WriteFile(filepath.Join(sourceDir, subfolder, "res_waste_001.md"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := types.EnforceConfig{
		SourceDir:  sourceDir,
		Subfolders: []string{subfolder, "missing-subfolder"},
		TargetDir:  filepath.Join(tmpDir, "structured"),
		LogDir:     filepath.Join(tmpDir, "logs"),
	}

	paths := runlog.PathsFor(cfg.LogDir, time.Now())
	log, err := runlog.Open(paths.Log)
	if err != nil {
		t.Fatal(err)
	}
	defer log.Close()

	var buf strings.Builder
	summary, err := RunAll(cfg, testTemplate, log, &buf)
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}

	if summary.Processed != 1 || summary.Failed != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if !strings.Contains(buf.String(), "skipping missing-subfolder") {
		t.Errorf("missing subfolder not reported:\n%s", buf.String())
	}

	// Output file carries the model tag derived from the subfolder.
	outPath := filepath.Join(cfg.TargetDir, "res_waste_001_mistral.md")
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	for _, name := range testTemplate {
		if !strings.Contains(string(data), "## "+name) {
			t.Errorf("output missing section %q", name)
		}
	}

	// The run log holds one successful record with metrics.
	records, err := runlog.Read(paths.Log)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.Status != types.StatusSuccess {
		t.Errorf("Status = %q, error: %s", rec.Status, rec.Error)
	}
	if rec.Model != "mistral" {
		t.Errorf("Model = %q, want mistral", rec.Model)
	}
	if rec.OutputFile != "res_waste_001_mistral.md" {
		t.Errorf("OutputFile = %q", rec.OutputFile)
	}
	if rec.LanguageRatio < 80 {
		t.Errorf("LanguageRatio = %v, want mostly Hebrew", rec.LanguageRatio)
	}
	if rec.Completeness == nil || rec.Completeness.FilledSections != 1 {
		t.Errorf("Completeness = %+v", rec.Completeness)
	}
	if rec.Enforcement == nil || len(rec.Enforcement.MissingSections) != 2 {
		t.Errorf("Enforcement = %+v", rec.Enforcement)
	}
}

func TestModelTag(t *testing.T) {
	tests := []struct {
		subfolder string
		want      string
	}{
		{"markdown-hebrew-mistral", "mistral"},
		{"markdown-hebrew-claude", "claude"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := modelTag(tt.subfolder); got != tt.want {
			t.Errorf("modelTag(%q) = %q, want %q", tt.subfolder, got, tt.want)
		}
	}
}
