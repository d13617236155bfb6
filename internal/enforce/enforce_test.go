package enforce

import (
	"strings"
	"testing"

	"github.com/pdiddy/corpus-refinery/pkg/types"
)

var testTemplate = []string{"סקירה", "תהליכים", "אנשי קשר"}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3. Committees", "Committees"},
		{"12.   Spaced", "Spaced"},
		{"  Plain  ", "Plain"},
		{"1.NoSpace", "NoSpace"},
		{"No Number", "No Number"},
	}

	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractSections(t *testing.T) {
	body := `# כותרת

intro text not in any section

## 1. סקירה

תוכן הסקירה.

## תהליכים

תוכן התהליכים.
`

	s := ExtractSections(body)

	if len(s.Order) != 2 {
		t.Fatalf("Order = %v, want 2 sections", s.Order)
	}
	if s.Order[0] != "סקירה" || s.Order[1] != "תהליכים" {
		t.Errorf("Order = %v", s.Order)
	}
	if s.Content["סקירה"] != "תוכן הסקירה." {
		t.Errorf("content = %q", s.Content["סקירה"])
	}
	if s.Original["סקירה"] != "1. סקירה" {
		t.Errorf("original = %q", s.Original["סקירה"])
	}
}

func TestExtractSectionsStripsSeparator(t *testing.T) {
	body := "## סקירה\n\nתוכן.\n\n---\n\n## תהליכים\n\n[לא מולא]\n\n---\n"

	s := ExtractSections(body)

	if s.Content["סקירה"] != "תוכן." {
		t.Errorf("separator not stripped: %q", s.Content["סקירה"])
	}
	if s.Content["תהליכים"] != types.MissingPlaceholder {
		t.Errorf("content = %q", s.Content["תהליכים"])
	}
}

func TestApply(t *testing.T) {
	content := `---
title: ניהול פסולת
category: sanitation
---
# ניהול פסולת

## 1. סקירה

תוכן הסקירה המלא.

## נושא זר

תוכן שלא שייך לתבנית.
`

	out, report := Apply(content, testTemplate)

	// Frontmatter and title preserved.
	if !strings.HasPrefix(out, "---\ntitle: ניהול פסולת\ncategory: sanitation\n---\n\n# ניהול פסולת\n") {
		t.Errorf("prefix wrong:\n%s", out)
	}

	// All template sections appear, in order, under canonical headings.
	idx := -1
	for _, name := range testTemplate {
		pos := strings.Index(out, "## "+name+"\n")
		if pos < 0 {
			t.Fatalf("section %q missing from output", name)
		}
		if pos < idx {
			t.Errorf("section %q out of order", name)
		}
		idx = pos
	}

	if len(report.MatchedSections) != 1 || report.MatchedSections[0] != "סקירה" {
		t.Errorf("MatchedSections = %v", report.MatchedSections)
	}
	if report.SectionStatus["סקירה"] != types.SectionMatchedNormalized {
		t.Errorf("status = %q, want handled", report.SectionStatus["סקירה"])
	}
	if len(report.MissingSections) != 2 {
		t.Errorf("MissingSections = %v", report.MissingSections)
	}
	if len(report.ExtraSections) != 1 || report.ExtraSections[0] != "נושא זר" {
		t.Errorf("ExtraSections = %v", report.ExtraSections)
	}
	if len(report.Discarded) != 1 || !strings.Contains(report.Discarded[0].Preview, "תוכן שלא שייך") {
		t.Errorf("Discarded = %v", report.Discarded)
	}

	// Missing sections carry the placeholder.
	if strings.Count(out, types.MissingPlaceholder) != 2 {
		t.Errorf("placeholder count = %d, want 2", strings.Count(out, types.MissingPlaceholder))
	}

	// Discarded content is gone from the output.
	if strings.Contains(out, "תוכן שלא שייך") {
		t.Error("discarded content leaked into output")
	}
}

func TestApplyExactMatchStatus(t *testing.T) {
	content := "## סקירה\n\nתוכן.\n"
	_, report := Apply(content, testTemplate)

	if report.SectionStatus["סקירה"] != types.SectionMatchedExact {
		t.Errorf("status = %q, want yes", report.SectionStatus["סקירה"])
	}
}

func TestApplyIdempotent(t *testing.T) {
	inputs := []string{
		"---\ntitle: בדיקה\n---\n# בדיקה\n\n## 2. סקירה\n\nתוכן כלשהו.\n\n## זר\n\nחתוך.\n",
		"# ללא מטא\n\n## תהליכים\n\nתוכן תהליכים.\n",
		"",
		"## סקירה\n\n" + types.MissingPlaceholder + "\n",
	}

	for i, input := range inputs {
		once, _ := Apply(input, testTemplate)
		twice, secondReport := Apply(once, testTemplate)

		if once != twice {
			t.Errorf("input %d not idempotent:\nfirst:\n%q\nsecond:\n%q", i, once, twice)
		}
		if len(secondReport.ExtraSections) != 0 {
			t.Errorf("input %d second pass found extras: %v", i, secondReport.ExtraSections)
		}
	}
}

func TestApplyReportStableUnderReenforcement(t *testing.T) {
	content := "## סקירה\n\nתוכן אמיתי.\n"

	once, first := Apply(content, testTemplate)
	_, second := Apply(once, testTemplate)

	if len(first.MatchedSections) != len(second.MatchedSections) {
		t.Errorf("matched drifted: %v vs %v", first.MatchedSections, second.MatchedSections)
	}
	if len(first.MissingSections) != len(second.MissingSections) {
		t.Errorf("missing drifted: %v vs %v", first.MissingSections, second.MissingSections)
	}
}

func TestPreviewCapped(t *testing.T) {
	long := strings.Repeat("א", 300)
	got := preview(long)
	if len([]rune(got)) != previewLen {
		t.Errorf("preview length = %d runes, want %d", len([]rune(got)), previewLen)
	}
}
