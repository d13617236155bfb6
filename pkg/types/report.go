// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SectionStatus classifies how one template section was fulfilled by a
// document.
type SectionStatus string

const (
	// SectionMatchedExact means the document header equals the template name.
	SectionMatchedExact SectionStatus = "yes"

	// SectionMatchedNormalized means the header matched only after
	// stripping a leading ordinal prefix ("3. Committees" vs "Committees").
	SectionMatchedNormalized SectionStatus = "handled"

	// SectionMissing means no matching section was found; the enforcer
	// emitted the placeholder instead.
	SectionMissing SectionStatus = "no"
)

// DiscardedSection records a non-template section that enforcement dropped.
// Extras are never merged into template sections because the merge target
// is ambiguous; they are logged for human review instead.
type DiscardedSection struct {
	Section string `json:"section" yaml:"section"`

	// Preview is the first 200 characters of the discarded content.
	Preview string `json:"content" yaml:"content"`
}

// EnforcementReport describes what structure enforcement did to one document.
type EnforcementReport struct {
	MatchedSections []string           `json:"matched_sections" yaml:"matched_sections"`
	MissingSections []string           `json:"missing_sections" yaml:"missing_sections"`
	ExtraSections   []string           `json:"extra_sections" yaml:"extra_sections"`
	Discarded       []DiscardedSection `json:"discarded_content" yaml:"discarded_content"`

	// SectionStatus maps each template section name to its status.
	SectionStatus map[string]SectionStatus `json:"section_status" yaml:"section_status"`

	// OriginalNames maps normalized section names to the header text as it
	// appeared in the document, retained for audit of normalized matches.
	OriginalNames map[string]string `json:"original_names" yaml:"original_names"`
}

// TextMetrics are readability measures computed over the document body only,
// with the frontmatter block excluded.
type TextMetrics struct {
	WordCount         int     `json:"word_count" yaml:"word_count"`
	SentenceCount     int     `json:"sentence_count" yaml:"sentence_count"`
	AvgSentenceLength float64 `json:"avg_sentence_length" yaml:"avg_sentence_length"`

	// CharCount excludes spaces and line breaks.
	CharCount int `json:"char_count" yaml:"char_count"`
}

// CompletenessMetrics measure how many template sections the original
// document actually filled, before enforcement rewrote it.
type CompletenessMetrics struct {
	FilledSections int     `json:"filled_sections" yaml:"filled_sections"`
	TotalSections  int     `json:"total_sections" yaml:"total_sections"`
	Percentage     float64 `json:"completeness_percentage" yaml:"completeness_percentage"`

	// CrossReferences counts literal "##" occurrences across section bodies,
	// a coarse proxy for section-to-section references.
	CrossReferences int `json:"cross_references" yaml:"cross_references"`

	// AvgWordsPerSection is total words across filled sections divided by
	// the filled-section count.
	AvgWordsPerSection float64 `json:"avg_words_per_section" yaml:"avg_words_per_section"`
}

// QualityMetrics bundles all per-document quality measures. They are
// computed on the raw found sections, before enforcement, so they reflect
// original generation quality rather than the always-complete enforced shape.
type QualityMetrics struct {
	// LanguageRatio is the percentage of Hebrew characters among alphabetic
	// characters, 0-100.
	LanguageRatio float64 `json:"hebrew_percentage" yaml:"hebrew_percentage"`

	Text         TextMetrics         `json:"quality" yaml:"quality"`
	Completeness CompletenessMetrics `json:"completeness" yaml:"completeness"`
}

// RecordStatus marks whether a run-log record describes a successful or a
// failed document.
type RecordStatus string

const (
	StatusSuccess RecordStatus = "success"
	StatusFailed  RecordStatus = "failed"
)

// FileRecord is one line of the append-only JSONL run log: everything the
// pipeline learned about one document in one run.
type FileRecord struct {
	OriginalFile string `json:"original_file" yaml:"original_file"`
	OutputFile   string `json:"output_file,omitempty" yaml:"output_file,omitempty"`

	// Model is the source-model tag parsed from the input subfolder name.
	Model     string `json:"model" yaml:"model"`
	Subfolder string `json:"subfolder,omitempty" yaml:"subfolder,omitempty"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`

	LanguageRatio float64              `json:"hebrew_percentage" yaml:"hebrew_percentage"`
	Text          *TextMetrics         `json:"quality,omitempty" yaml:"quality,omitempty"`
	Completeness  *CompletenessMetrics `json:"completeness,omitempty" yaml:"completeness,omitempty"`
	Enforcement   *EnforcementReport   `json:"enforcement,omitempty" yaml:"enforcement,omitempty"`

	Status RecordStatus `json:"status" yaml:"status"`
	Error  string       `json:"error,omitempty" yaml:"error,omitempty"`
}
