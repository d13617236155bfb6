package enforce

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTemplate(t *testing.T) {
	path := writeTemplate(t, `---
description: canonical structure
---
# [שם התחום]

## 1. סקירה

הנחיות לסעיף.

## 2. תהליכים

## [מקום שמור]

## אנשי קשר
`)

	sections, err := LoadTemplate(path)
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}

	want := []string{"סקירה", "תהליכים", "אנשי קשר"}
	if len(sections) != len(want) {
		t.Fatalf("sections = %v, want %v", sections, want)
	}
	for i := range want {
		if sections[i] != want[i] {
			t.Errorf("sections[%d] = %q, want %q", i, sections[i], want[i])
		}
	}
}

func TestLoadTemplateNoSections(t *testing.T) {
	path := writeTemplate(t, "# Title only\n\nNo level-2 headings.\n")
	if _, err := LoadTemplate(path); err == nil {
		t.Error("expected error for template without sections")
	}
}

func TestLoadTemplateMissingFile(t *testing.T) {
	if _, err := LoadTemplate(filepath.Join(t.TempDir(), "nope.md")); err == nil {
		t.Error("expected error for missing file")
	}
}
