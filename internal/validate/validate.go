// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate checks chunks before indexing and enriches their
// metadata. Validation never rejects a document outright: a chunk is only
// invalid when its content is too short to be useful, and every recognized
// metadata field receives a typed default so downstream consumers never see
// an absent value.
package validate

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdiddy/corpus-refinery/pkg/types"
)

// minContentLength is the smallest trimmed chunk content considered
// indexable.
const minContentLength = 10

// firstHeading matches the first level-1 to level-3 heading in a body.
var firstHeading = regexp.MustCompile(`(?m)^#{1,3}\s+(.+)$`)

// defaultFields maps recognized metadata fields to their typed defaults.
var defaultFields = map[string]string{
	"category":    "Unknown",
	"subcategory": "",
	"priority":    "",
	"cluster":     "",
	"frequency":   "",
}

// Check validates one chunk against its parent document and builds the
// enriched metadata record.
func Check(chunk types.Chunk, doc types.ParsedDocument) types.ValidationResult {
	var issues []string
	severity := types.SeverityInfo

	meta := make(map[string]any, len(doc.Metadata))
	for k, v := range doc.Metadata {
		meta[k] = v
	}

	if !doc.ParseSuccess {
		issues = append(issues, "YAML parsing failed: "+doc.ParseError)
		severity = types.SeverityWarning

		if field(meta, "title") == "" {
			meta["title"] = TitleFor(doc.Body, doc.Filename)
			issues = append(issues, "Title extracted from content/filename")
		}
	}

	content := strings.TrimSpace(chunk.Content)
	isValid := len(content) >= minContentLength
	if !isValid {
		issues = append(issues, fmt.Sprintf("chunk %d has insufficient content (%d chars)", chunk.Index, len(chunk.Content)))
		severity = types.SeverityCritical
	}

	for name, def := range defaultFields {
		if field(meta, name) == "" {
			meta[name] = def
		}
	}

	enriched := types.EnrichedMetadata{
		Filename:   doc.Filename,
		DocID:      doc.DocID,
		ChunkIndex: chunk.Index,
		Header:     chunk.Header,
		ChunkType:  chunk.Type,

		Title:       fieldOr(meta, "title", doc.Filename),
		Category:    field(meta, "category"),
		Subcategory: field(meta, "subcategory"),
		Priority:    field(meta, "priority"),
		Cluster:     field(meta, "cluster"),
		Frequency:   field(meta, "frequency"),

		ContactNames:  field(meta, "contact_names"),
		ContactEmails: field(meta, "contact_emails"),
		SystemNames:   field(meta, "system_names"),
		RelatedDocIDs: field(meta, "related_doc_ids"),
	}

	return types.ValidationResult{
		IsValid:  isValid,
		Severity: severity,
		Issues:   issues,
		Metadata: enriched,
	}
}

// TitleFor derives a document title from the first heading in the body, or
// from the filename (underscores to spaces, title-cased) when no heading
// exists.
func TitleFor(body, filename string) string {
	if m := firstHeading.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1])
	}

	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	words := strings.Fields(strings.ReplaceAll(stem, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// field reads a metadata value as a string; non-string and nil values read
// as empty.
func field(meta map[string]any, name string) string {
	v, ok := meta[name]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

// fieldOr is field with a fallback for empty values.
func fieldOr(meta map[string]any, name, fallback string) string {
	if v := field(meta, name); v != "" {
		return v
	}
	return fallback
}
