package chunker

import (
	"testing"

	"github.com/pdiddy/corpus-refinery/pkg/types"
)

func TestByHeadings(t *testing.T) {
	body := `Intro text before any heading.

## Overview

Overview content.

### Details

Detail content.

## Contact

Contact content.
`

	chunks := ByHeadings(body, "Document Title")

	want := []struct {
		header  string
		content string
	}{
		{"Document Title", "Intro text before any heading."},
		{"## Overview", "Overview content."},
		{"### Details", "Detail content."},
		{"## Contact", "Contact content."},
	}

	if len(chunks) != len(want) {
		t.Fatalf("got %d chunks, want %d", len(chunks), len(want))
	}
	for i, w := range want {
		if chunks[i].Header != w.header {
			t.Errorf("chunk %d header = %q, want %q", i, chunks[i].Header, w.header)
		}
		if chunks[i].Content != w.content {
			t.Errorf("chunk %d content = %q, want %q", i, chunks[i].Content, w.content)
		}
	}
}

func TestByHeadingsIndicesContiguous(t *testing.T) {
	body := "## A\n\ncontent a\n\n## Empty\n\n## B\n\ncontent b\n"
	chunks := ByHeadings(body, "Title")

	// The empty heading produces no chunk, so indices stay contiguous.
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("chunk %d has Index %d", i, c.Index)
		}
		if c.Type != types.ChunkSection {
			t.Errorf("chunk %d type = %q", i, c.Type)
		}
	}
	if chunks[1].Header != "## B" {
		t.Errorf("chunk 1 header = %q, want ## B", chunks[1].Header)
	}
}

func TestByHeadingsEdgeCases(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantChunks int
	}{
		{"empty body", "", 0},
		{"whitespace only", "  \n\n\t\n", 0},
		{"no headings", "Just plain text.\nMore text.", 1},
		{"heading only", "## Lonely\n", 0},
		{"level 4 not split", "#### Deep heading\ncontent", 1},
		{"hash without space", "#NotAHeading\ncontent", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := ByHeadings(tt.body, "Title")
			if len(chunks) != tt.wantChunks {
				t.Errorf("got %d chunks, want %d", len(chunks), tt.wantChunks)
			}
		})
	}
}

func TestByHeadingsDeterministic(t *testing.T) {
	body := "## א\n\nתוכן ראשון\n\n## ב\n\nתוכן שני\n"
	a := ByHeadings(body, "כותרת")
	b := ByHeadings(body, "כותרת")

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}
