// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enforce rebuilds generated documents to exactly match a canonical
// section template. Documents from different generation runs disagree on
// section numbering, ordering, and coverage; enforcement makes the output
// shape fully deterministic from the template alone: every output has
// exactly the template's sections, in template order, under the template's
// exact headings. Content for sections the document did not provide is
// replaced by a placeholder; content under non-template headings is
// discarded and logged, never merged.
package enforce

import (
	"regexp"
	"strings"

	"github.com/pdiddy/corpus-refinery/internal/frontmatter"
	"github.com/pdiddy/corpus-refinery/pkg/types"
)

// ordinalPrefix matches a leading "1. " / "12. " numbering prefix.
var ordinalPrefix = regexp.MustCompile(`^\d+\.\s*`)

// titleLine matches the document-level "# Title" heading.
var titleLine = regexp.MustCompile(`(?m)^# (.+)$`)

// previewLen caps the discarded-content preview, in runes.
const previewLen = 200

// NormalizeName strips a leading ordinal prefix and surrounding whitespace
// from a section name. Generation runs inconsistently add or omit
// numbering, so matching happens on normalized names while originals are
// retained for audit.
func NormalizeName(name string) string {
	return ordinalPrefix.ReplaceAllString(strings.TrimSpace(name), "")
}

// Sections holds the level-2 sections found in a body, keyed by normalized
// name. Order preserves first appearance; a repeated normalized name keeps
// its position but takes the last content.
type Sections struct {
	Content  map[string]string // normalized name -> trimmed content
	Original map[string]string // normalized name -> header text as found
	Order    []string          // normalized names in document order
}

// ExtractSections collects all "## " sections from a Markdown body. Text
// before the first section (including the "# " title) is not part of any
// section.
func ExtractSections(body string) Sections {
	s := Sections{
		Content:  map[string]string{},
		Original: map[string]string{},
	}

	current := ""
	var lines []string

	flush := func() {
		if current == "" {
			lines = nil
			return
		}
		content := strings.TrimSpace(strings.Join(lines, "\n"))
		// A trailing "---" line is the section separator the enforcer
		// itself writes, not content. Stripping it keeps enforcement
		// idempotent.
		if content == "---" {
			content = ""
		} else if rest, ok := strings.CutSuffix(content, "\n---"); ok {
			content = strings.TrimSpace(rest)
		}
		s.Content[current] = content
		lines = nil
	}

	for _, line := range strings.Split(body, "\n") {
		if name, ok := strings.CutPrefix(line, "## "); ok {
			flush()
			original := strings.TrimSpace(name)
			current = NormalizeName(original)
			if _, seen := s.Content[current]; !seen {
				s.Order = append(s.Order, current)
			}
			s.Original[current] = original
			continue
		}
		if current != "" {
			lines = append(lines, line)
		}
	}
	flush()

	return s
}

// Apply rebuilds content to the template's exact structure and reports what
// was matched, normalized, missing, and discarded. The frontmatter block
// and a leading "# " title are preserved verbatim; every template section is
// emitted under its canonical heading followed by a "---" separator line.
//
// Apply is idempotent: applied to its own output with the same template it
// reproduces that output byte for byte.
func Apply(content string, template []string) (string, types.EnforcementReport) {
	meta, body, hasMeta := frontmatter.Split(content)

	found := ExtractSections(body)

	report := types.EnforcementReport{
		SectionStatus: map[string]types.SectionStatus{},
		OriginalNames: found.Original,
	}

	var parts []string

	if m := titleLine.FindStringSubmatch(body); m != nil {
		parts = append(parts, "# "+m[1], "")
	}

	inTemplate := make(map[string]bool, len(template))
	for _, name := range template {
		inTemplate[name] = true

		parts = append(parts, "## "+name, "")

		// A section holding only the placeholder is as good as missing;
		// re-emitting the placeholder keeps repeated enforcement stable.
		if sectionContent := found.Content[name]; sectionContent != "" && sectionContent != types.MissingPlaceholder {
			parts = append(parts, sectionContent)
			report.MatchedSections = append(report.MatchedSections, name)
			if found.Original[name] == name {
				report.SectionStatus[name] = types.SectionMatchedExact
			} else {
				report.SectionStatus[name] = types.SectionMatchedNormalized
			}
		} else {
			parts = append(parts, types.MissingPlaceholder)
			report.MissingSections = append(report.MissingSections, name)
			report.SectionStatus[name] = types.SectionMissing
		}

		parts = append(parts, "", "---", "")
	}

	for _, name := range found.Order {
		if inTemplate[name] {
			continue
		}
		report.ExtraSections = append(report.ExtraSections, name)
		report.Discarded = append(report.Discarded, types.DiscardedSection{
			Section: name,
			Preview: preview(found.Content[name]),
		})
	}

	rebuilt := strings.Join(parts, "\n")
	if hasMeta {
		return "---\n" + meta + "\n---\n\n" + rebuilt, report
	}
	return rebuilt, report
}

// preview returns the first 200 runes of content.
func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLen {
		return content
	}
	return string(runes[:previewLen])
}
