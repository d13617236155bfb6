// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fixer repairs malformed YAML frontmatter and flattens it into a
// fixed set of searchable fields. It runs ahead of parsing to make
// previously-unparseable documents parseable: its output frontmatter always
// round-trips through a YAML reader. The fixer never fails on malformed
// input; when YAML parsing is hopeless it degrades to regex extraction.
package fixer

import (
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"
)

var (
	fenceOpen  = regexp.MustCompile("^```ya?ml[ \t]*\n")
	fenceClose = regexp.MustCompile("\n```[ \t]*\n")

	frontmatterBlock = regexp.MustCompile(`(?s)^---[ \t]*\n(.*?)\n---[ \t]*\n(.*)$`)

	// headingResume matches frontmatter whose closing --- is missing but
	// whose body resumes at a Markdown heading.
	headingResume = regexp.MustCompile(`(?s)^---[ \t]*\n(.*?)\n(#.*)$`)

	bareEmail    = regexp.MustCompile(`(\s+email:\s+)([^\s"']+@[^\s"']+)`)
	bareURL      = regexp.MustCompile(`(\s+url:\s+)(https?://[^\s"']+)`)
	markdownLink = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
)

// FlatFields is the canonical flat metadata block the fixer emits. Tier 1
// fields identify the document; Tier 2 fields are extracted from nested
// structures so they stay searchable after flattening. Field order here is
// emission order.
type FlatFields struct {
	Title       string `yaml:"title"`
	Category    string `yaml:"category"`
	Subcategory string `yaml:"subcategory"`
	Priority    string `yaml:"priority"`
	Frequency   string `yaml:"frequency"`
	Cluster     string `yaml:"cluster"`

	ContactNames  string `yaml:"contact_names"`
	ContactEmails string `yaml:"contact_emails"`
	SystemNames   string `yaml:"system_names"`
	RelatedDocIDs string `yaml:"related_doc_ids"`
}

// Fix repairs and flattens the frontmatter of one document. It returns the
// rewritten document (clean flat frontmatter reattached ahead of the
// untouched body) and the list of corrections applied. A document without
// any frontmatter is returned unchanged.
func Fix(content string) (string, []string) {
	var corrections []string

	yamlText, body, hasYAML := extractRegion(content, &corrections)
	if !hasYAML {
		return content, []string{"No YAML frontmatter found"}
	}

	cleaned := cleanText(yamlText)

	parsed := safeParse(cleaned, &corrections)

	flat := flattenFields(parsed, yamlText, &corrections)

	out, err := yaml.Marshal(flat)
	if err != nil {
		// Marshaling a struct of strings cannot fail in practice; keep the
		// document rather than lose it.
		return content, append(corrections, "flat metadata serialization failed: "+err.Error())
	}

	return "---\n" + string(out) + "---\n\n" + body, corrections
}

// extractRegion locates the frontmatter, handling fenced wrappers and a
// missing closing delimiter.
func extractRegion(content string, corrections *[]string) (yamlText, body string, ok bool) {
	if fenceOpen.MatchString(content) {
		content = fenceOpen.ReplaceAllString(content, "")
		content = replaceFirst(fenceClose, content, "\n")
		*corrections = append(*corrections, "Removed code block wrapper")
	}

	if m := frontmatterBlock.FindStringSubmatch(content); m != nil {
		return m[1], m[2], true
	}

	if m := headingResume.FindStringSubmatch(content); m != nil {
		*corrections = append(*corrections, "Added missing closing ---")
		return m[1], m[2], true
	}

	return "", content, false
}

// replaceFirst replaces only the first match of re in s.
func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}

// cleanText applies targeted textual repairs before YAML parsing. Unquoted
// emails and URLs and Markdown link syntax are the dominant causes of parse
// failure: their colons and brackets break block mappings.
func cleanText(yamlText string) string {
	yamlText = bareEmail.ReplaceAllString(yamlText, `$1"$2"`)
	yamlText = bareURL.ReplaceAllString(yamlText, `$1"$2"`)
	yamlText = markdownLink.ReplaceAllString(yamlText, `"$1"`)
	return yamlText
}

// safeParse parses YAML to a mapping, returning an empty map on any failure.
func safeParse(yamlText string, corrections *[]string) map[string]any {
	var parsed any
	if err := yaml.Unmarshal([]byte(yamlText), &parsed); err == nil {
		if m, ok := parsed.(map[string]any); ok {
			return m
		}
	} else {
		*corrections = append(*corrections, "YAML parsing failed, extracting with regex")
	}
	return map[string]any{}
}

// flattenFields builds the flat field set from the parsed mapping with
// regex fallbacks against the raw text. Tier 2 fields are always extracted
// by pattern scanning: they live in nested, variably-shaped structures that
// are unreliable to parse generically.
func flattenFields(parsed map[string]any, rawYAML string, corrections *[]string) FlatFields {
	return FlatFields{
		Title:       tier1Field(parsed, rawYAML, "title", corrections),
		Category:    tier1Field(parsed, rawYAML, "category", corrections),
		Subcategory: tier1Field(parsed, rawYAML, "subcategory", corrections),
		Priority:    tier1Field(parsed, rawYAML, "priority", corrections),
		Frequency:   tier1Field(parsed, rawYAML, "frequency", corrections),
		Cluster:     tier1Field(parsed, rawYAML, "cluster", corrections),

		ContactNames:  ContactNames(parsed, rawYAML),
		ContactEmails: strings.Join(Emails(rawYAML), ", "),
		SystemNames:   strings.Join(SystemNames(rawYAML), ", "),
		RelatedDocIDs: strings.Join(RelatedDocIDs(rawYAML), ", "),
	}
}

// tier1Field resolves an essential field through the ordered fallback chain:
// top-level mapping, nested under "responsibility_details", top-level regex,
// indented regex. Each regex path records a correction for audit.
func tier1Field(parsed map[string]any, rawYAML, field string, corrections *[]string) string {
	if v, ok := parsed[field]; ok {
		return stringify(v)
	}

	if details, ok := parsed["responsibility_details"].(map[string]any); ok {
		if v, ok := details[field]; ok {
			return stringify(v)
		}
	}

	topLevel := regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(field) + `:\s*(.+)$`)
	if m := topLevel.FindStringSubmatch(rawYAML); m != nil {
		*corrections = append(*corrections, "Extracted '"+field+"' via regex")
		return strings.Trim(strings.TrimSpace(m[1]), `"'`)
	}

	indented := regexp.MustCompile(`(?m)^\s+` + regexp.QuoteMeta(field) + `:\s*(.+)$`)
	if m := indented.FindStringSubmatch(rawYAML); m != nil {
		*corrections = append(*corrections, "Extracted '"+field+"' via regex (indented)")
		return strings.Trim(strings.TrimSpace(m[1]), `"'`)
	}

	return ""
}

// stringify renders a parsed YAML scalar as a flat string value.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		out, err := yaml.Marshal(t)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(out))
	}
}
