// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the value types shared across pipeline stages.
package types

// ParsedDocument is the result of splitting a raw document into YAML
// frontmatter metadata and a Markdown body. The body is always populated,
// even when metadata parsing fails; content is never dropped on failure.
type ParsedDocument struct {
	// Filename is the base name of the source file (e.g. "res_permits_001.md").
	Filename string `json:"filename" yaml:"filename"`

	// DocID is the filename without its extension, used as a stable
	// document identifier for chunk IDs and the index.
	DocID string `json:"doc_id" yaml:"doc_id"`

	// Metadata holds the parsed frontmatter mapping. Empty when parsing fails.
	Metadata map[string]any `json:"metadata" yaml:"metadata"`

	// Body is the Markdown content after the frontmatter block, or the
	// entire input when no frontmatter was found.
	Body string `json:"body" yaml:"body"`

	// ParseSuccess reports whether the frontmatter parsed to a mapping.
	ParseSuccess bool `json:"parse_success" yaml:"parse_success"`

	// ParseError describes why parsing failed. Empty on success.
	ParseError string `json:"parse_error,omitempty" yaml:"parse_error,omitempty"`
}

// ChunkType tags the kind of content a chunk carries. Currently every chunk
// is a section; the tag exists so other kinds (tables, figures) can be added
// without changing the Chunk shape.
type ChunkType string

const (
	ChunkSection ChunkType = "section"
)

// Chunk is a single header-delimited content unit within a document body.
type Chunk struct {
	// Header is the heading line text the chunk was split on, including
	// the leading # characters, or the caller-supplied default for content
	// before the first heading.
	Header string `json:"header" yaml:"header"`

	// Content is the text under the header, trimmed.
	Content string `json:"content" yaml:"content"`

	// Index is the 0-based position of the chunk in document order.
	Index int `json:"chunk_index" yaml:"chunk_index"`

	// Type tags the chunk kind.
	Type ChunkType `json:"chunk_type" yaml:"chunk_type"`
}

// EnrichedMetadata is the per-chunk record built by the validator. It merges
// document-level Tier 1 fields with chunk identifiers and the Tier 2 fields
// the fixer extracts from nested metadata. Every field is always populated;
// recognized fields default to "" (or "Unknown" for Category) when absent.
type EnrichedMetadata struct {
	Filename   string    `json:"filename" yaml:"filename"`
	DocID      string    `json:"doc_id" yaml:"doc_id"`
	ChunkIndex int       `json:"chunk_index" yaml:"chunk_index"`
	Header     string    `json:"header" yaml:"header"`
	ChunkType  ChunkType `json:"chunk_type" yaml:"chunk_type"`

	// Tier 1: document identity.
	Title       string `json:"title" yaml:"title"`
	Category    string `json:"category" yaml:"category"`
	Subcategory string `json:"subcategory" yaml:"subcategory"`
	Priority    string `json:"priority" yaml:"priority"`
	Cluster     string `json:"cluster" yaml:"cluster"`
	Frequency   string `json:"frequency" yaml:"frequency"`

	// Tier 2: extracted searchable fields, comma-separated lists. These are
	// both stored as metadata and inlined into the indexed chunk text.
	ContactNames  string `json:"contact_names" yaml:"contact_names"`
	ContactEmails string `json:"contact_emails" yaml:"contact_emails"`
	SystemNames   string `json:"system_names" yaml:"system_names"`
	RelatedDocIDs string `json:"related_doc_ids" yaml:"related_doc_ids"`
}

// Severity grades validation findings.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// ValidationResult is the outcome of validating one chunk against its
// parent document.
type ValidationResult struct {
	// IsValid reports whether the chunk should be indexed. The only
	// invalidity condition today is insufficient content.
	IsValid bool `json:"is_valid" yaml:"is_valid"`

	// Severity is the highest severity among the issues found.
	Severity Severity `json:"severity" yaml:"severity"`

	// Issues lists human-readable findings.
	Issues []string `json:"issues,omitempty" yaml:"issues,omitempty"`

	// Metadata is the enriched per-chunk record.
	Metadata EnrichedMetadata `json:"metadata" yaml:"metadata"`
}
