// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fixer

import (
	"regexp"
	"strings"
)

const (
	maxContactNames = 5
	maxSystemNames  = 10
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// relatedDocPattern matches document identifiers like res_building_permit_001.
	relatedDocPattern = regexp.MustCompile(`res_[a-z_]+_\d{3}`)

	// camelCasePattern matches multi-word capitalized tokens like PermitTrack.
	camelCasePattern = regexp.MustCompile(`[A-Z][a-z]+(?:[A-Z][a-z]+)+`)

	// acronymPattern matches all-caps tokens of two or more letters.
	acronymPattern = regexp.MustCompile(`[A-Z]{2,}`)

	// personNamePattern matches two- or three-token capitalized phrases like
	// "John Doe" or "John Michael Doe".
	personNamePattern = regexp.MustCompile(`[A-Z][a-z]+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?`)
)

// systemStoplist filters common false positives out of system-name
// extraction: words that satisfy the capitalization patterns but name
// nothing.
var systemStoplist = map[string]bool{
	"None":     true,
	"Step":     true,
	"Section":  true,
	"Overview": true,
	"Title":    true,
	"Code":     true,
	"High":     true,
	"Low":      true,
}

// Emails returns the de-duplicated email addresses found anywhere in the raw
// metadata text, in first-seen order.
func Emails(raw string) []string {
	return dedupe(emailPattern.FindAllString(raw, -1), 0)
}

// RelatedDocIDs returns the de-duplicated document identifiers found in the
// raw metadata text.
func RelatedDocIDs(raw string) []string {
	return dedupe(relatedDocPattern.FindAllString(raw, -1), 0)
}

// SystemNames returns up to 10 system names found in the raw metadata text:
// CamelCase tokens and all-caps acronyms, minus a stoplist of common false
// positives.
func SystemNames(raw string) []string {
	found := camelCasePattern.FindAllString(raw, -1)
	found = append(found, acronymPattern.FindAllString(raw, -1)...)

	var kept []string
	for _, s := range found {
		if !systemStoplist[s] {
			kept = append(kept, s)
		}
	}
	return dedupe(kept, maxSystemNames)
}

// ContactNames extracts contact names, preferring the structured contact
// list under shared_resources_in_this_cluster when present. Otherwise it
// falls back to a capitalized two/three-word pattern over the raw text.
//
// The fallback is a deliberate heuristic with a known false-positive mode:
// any proper-noun-shaped phrase matches, including section labels. Results
// are capped at 5 and joined with ", ".
func ContactNames(parsed map[string]any, raw string) string {
	names := structuredContacts(parsed)
	if len(names) == 0 {
		names = dedupe(personNamePattern.FindAllString(raw, -1), maxContactNames)
	}
	return strings.Join(names, ", ")
}

// structuredContacts reads the contacts list nested under
// shared_resources_in_this_cluster. Entries are either plain strings
// ("John Doe (Facilities)") or mappings with a "name" key.
func structuredContacts(parsed map[string]any) []string {
	resources, ok := parsed["shared_resources_in_this_cluster"].(map[string]any)
	if !ok {
		return nil
	}
	contacts, ok := resources["contacts"].([]any)
	if !ok {
		return nil
	}

	var names []string
	for _, c := range contacts {
		switch t := c.(type) {
		case string:
			name, _, _ := strings.Cut(t, "(")
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		case map[string]any:
			if name, ok := t["name"].(string); ok {
				names = append(names, name)
			}
		}
	}
	return names
}

// dedupe removes duplicates preserving first-seen order. A limit of 0 means
// unlimited.
func dedupe(values []string, limit int) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
