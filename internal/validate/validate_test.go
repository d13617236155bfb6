package validate

import (
	"strings"
	"testing"

	"github.com/pdiddy/corpus-refinery/pkg/types"
)

func sampleDoc() types.ParsedDocument {
	return types.ParsedDocument{
		Filename: "res_permits_001.md",
		DocID:    "res_permits_001",
		Metadata: map[string]any{
			"title":          "Building Permits",
			"category":       "permits",
			"contact_names":  "Dana Levi",
			"contact_emails": "d.levi@city.gov",
		},
		Body:         "## Overview\n\nPermit handling.\n",
		ParseSuccess: true,
	}
}

func sampleChunk() types.Chunk {
	return types.Chunk{
		Header:  "## Overview",
		Content: "Permit applications are handled within 30 days.",
		Index:   0,
		Type:    types.ChunkSection,
	}
}

func TestCheckValidChunk(t *testing.T) {
	result := Check(sampleChunk(), sampleDoc())

	if !result.IsValid {
		t.Fatalf("IsValid = false, issues: %v", result.Issues)
	}
	if result.Severity != types.SeverityInfo {
		t.Errorf("Severity = %q, want info", result.Severity)
	}
	if len(result.Issues) != 0 {
		t.Errorf("Issues = %v, want none", result.Issues)
	}

	m := result.Metadata
	if m.Title != "Building Permits" {
		t.Errorf("Title = %q", m.Title)
	}
	if m.Category != "permits" {
		t.Errorf("Category = %q", m.Category)
	}
	if m.ContactNames != "Dana Levi" {
		t.Errorf("ContactNames = %q", m.ContactNames)
	}
	if m.DocID != "res_permits_001" || m.ChunkIndex != 0 || m.Header != "## Overview" {
		t.Errorf("chunk identity wrong: %+v", m)
	}
}

func TestCheckShortChunk(t *testing.T) {
	chunk := sampleChunk()
	chunk.Content = "short"
	chunk.Index = 3

	result := Check(chunk, sampleDoc())

	if result.IsValid {
		t.Error("IsValid = true, want false")
	}
	if result.Severity != types.SeverityCritical {
		t.Errorf("Severity = %q, want critical", result.Severity)
	}
	found := false
	for _, issue := range result.Issues {
		if strings.Contains(issue, "chunk 3 has insufficient content") {
			found = true
		}
	}
	if !found {
		t.Errorf("Issues = %v, want insufficient-content issue", result.Issues)
	}
}

func TestCheckParseFailure(t *testing.T) {
	doc := types.ParsedDocument{
		Filename:   "res_water_supply_002.md",
		DocID:      "res_water_supply_002",
		Metadata:   map[string]any{},
		Body:       "No headings, just text.",
		ParseError: "no YAML frontmatter found (missing --- markers)",
	}

	result := Check(sampleChunk(), doc)

	// Parse failure degrades to a warning; the chunk itself is still valid.
	if !result.IsValid {
		t.Error("IsValid = false, want true")
	}
	if result.Severity != types.SeverityWarning {
		t.Errorf("Severity = %q, want warning", result.Severity)
	}
	if result.Metadata.Title != "Res Water Supply 002" {
		t.Errorf("Title = %q, want filename-derived title", result.Metadata.Title)
	}
}

func TestCheckDefaultFields(t *testing.T) {
	doc := sampleDoc()
	doc.Metadata = map[string]any{"title": "Bare"}

	result := Check(sampleChunk(), doc)

	if result.Metadata.Category != "Unknown" {
		t.Errorf("Category = %q, want Unknown", result.Metadata.Category)
	}
	for name, got := range map[string]string{
		"subcategory": result.Metadata.Subcategory,
		"priority":    result.Metadata.Priority,
		"cluster":     result.Metadata.Cluster,
		"frequency":   result.Metadata.Frequency,
	} {
		if got != "" {
			t.Errorf("%s = %q, want empty default", name, got)
		}
	}
}

func TestTitleFor(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		filename string
		want     string
	}{
		{"first heading", "## Waste Collection\n\ntext", "x.md", "Waste Collection"},
		{"level one heading", "# Top Title\n\ntext", "x.md", "Top Title"},
		{"no heading", "plain text", "res_parks_003.md", "Res Parks 003"},
		{"hebrew heading", "## סקירה כללית\n", "x.md", "סקירה כללית"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleFor(tt.body, tt.filename); got != tt.want {
				t.Errorf("TitleFor = %q, want %q", got, tt.want)
			}
		})
	}
}
