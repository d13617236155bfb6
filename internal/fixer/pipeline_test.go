package fixer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/corpus-refinery/pkg/types"
)

func TestRunAll(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()

	writeDoc(t, srcDir, "broken.md", "```yaml\n---\ntitle: Parks\ncategory: recreation\n---\n```\nBody.\n")
	writeDoc(t, srcDir, "clean.md", "# No Frontmatter\n\nPlain document.\n")
	writeDoc(t, srcDir, "notes.txt", "not markdown")

	cfg := types.FixConfig{SourceDir: srcDir, OutputDir: outDir}
	var buf strings.Builder
	summary, err := RunAll(cfg, &buf)
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}

	if summary.Fixed != 1 {
		t.Errorf("Fixed = %d, want 1", summary.Fixed)
	}
	if summary.Unchanged != 1 {
		t.Errorf("Unchanged = %d, want 1", summary.Unchanged)
	}
	if summary.Failed != 0 {
		t.Errorf("Failed = %d, want 0", summary.Failed)
	}

	fixed, err := os.ReadFile(filepath.Join(outDir, "broken.md"))
	if err != nil {
		t.Fatalf("fixed file not written: %v", err)
	}
	if strings.Contains(string(fixed), "```") {
		t.Errorf("fence survived:\n%s", fixed)
	}

	// The unchanged file is not copied to the output directory.
	if _, err := os.Stat(filepath.Join(outDir, "clean.md")); !os.IsNotExist(err) {
		t.Error("unchanged file should not be written")
	}
}

func TestRunAllMissingSourceDir(t *testing.T) {
	cfg := types.FixConfig{SourceDir: filepath.Join(t.TempDir(), "nope")}
	var buf strings.Builder
	if _, err := RunAll(cfg, &buf); err == nil {
		t.Error("expected error for missing source directory")
	}
}

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
