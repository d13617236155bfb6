// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package frontmatter splits raw document text into YAML metadata and a
// Markdown body. Generation models frequently emit malformed frontmatter
// (fenced code wrappers, missing delimiters, non-mapping YAML); parsing
// failure is reported but never drops content, so callers can always
// continue with the body.
package frontmatter

import (
	"path/filepath"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/corpus-refinery/pkg/types"
)

var (
	// fenceOpen matches a ```yml or ```yaml line opening the document.
	fenceOpen = regexp.MustCompile("^```ya?ml[ \t]*\n")

	// fencedBlock matches frontmatter followed by a closing fence and the
	// remaining body, after the opening fence has been removed.
	fencedBlock = regexp.MustCompile("(?s)^(---[ \t]*\n.*?\n---)[ \t]*\n```[ \t]*\n(.*)$")

	// block matches a leading frontmatter block and the body after it.
	block = regexp.MustCompile(`(?s)^---[ \t]*\n(.*?)\n---[ \t]*\n(.*)$`)
)

// StripFence removes a fenced code-block wrapper around the frontmatter if
// present, a common generation artifact. It reports whether a wrapper was
// found.
func StripFence(content string) (string, bool) {
	if !fenceOpen.MatchString(content) {
		return content, false
	}
	content = fenceOpen.ReplaceAllString(content, "")

	if m := fencedBlock.FindStringSubmatch(content); m != nil {
		return m[1] + "\n\n" + m[2], true
	}

	// Opening fence removed but no matching close; leave the rest as-is.
	return content, true
}

// Split separates a frontmatter block from the body. When no block is found
// it returns ("", content, false).
func Split(content string) (meta, body string, found bool) {
	m := block.FindStringSubmatch(content)
	if m == nil {
		return "", content, false
	}
	return m[1], m[2], true
}

// Parse builds a ParsedDocument from raw text. The body is always populated;
// when the metadata block is missing or does not parse to a mapping, the
// document carries an empty metadata map and a descriptive ParseError.
func Parse(filename, raw string) types.ParsedDocument {
	stripped, wasWrapped := StripFence(raw)

	doc := types.ParsedDocument{
		Filename: filename,
		DocID:    strings.TrimSuffix(filename, filepath.Ext(filename)),
		Metadata: map[string]any{},
	}

	meta, body, found := Split(stripped)
	if !found {
		doc.Body = stripped
		doc.ParseError = "no YAML frontmatter found (missing --- markers)"
		if wasWrapped {
			doc.ParseError += " (code block wrapper was stripped)"
		}
		return doc
	}

	doc.Body = body

	var parsed any
	if err := yaml.Unmarshal([]byte(meta), &parsed); err != nil {
		doc.ParseError = "YAML parsing error: " + err.Error()
		return doc
	}

	mapping, ok := parsed.(map[string]any)
	if !ok || len(mapping) == 0 {
		doc.ParseError = "YAML parsed but is empty or not a mapping"
		return doc
	}

	doc.Metadata = mapping
	doc.ParseSuccess = true
	return doc
}
