// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// AIConfig holds shared settings for stages that call a text-generation
// backend.
type AIConfig struct {
	// Model is the generation model identifier (e.g. "mistral", "claude").
	// The identifier selects the backend through a static mapping.
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for hosted backends.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Temperature is the sampling temperature (default 0.7).
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// MaxTokens is the maximum output length (default 4000).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Timeout bounds a single generation call (default 5m).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// FixConfig holds settings for the metadata-flattening stage.
type FixConfig struct {
	// SourceDir is the directory of raw generated documents.
	SourceDir string `json:"source_dir" yaml:"source_dir"`

	// OutputDir receives the repaired documents. Empty means in-place.
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
}

// EnforceConfig holds settings for the structure-enforcement stage.
type EnforceConfig struct {
	// TemplatePath is the canonical template file whose level-2 headings
	// define the required section set and order.
	TemplatePath string `json:"template_path" yaml:"template_path"`

	// SourceDir is the base directory of generated documents.
	SourceDir string `json:"source_dir" yaml:"source_dir"`

	// Subfolders lists the per-model input subfolders under SourceDir
	// (e.g. "markdown-hebrew-mistral"). The model tag is the trailing
	// hyphen-separated token of each name.
	Subfolders []string `json:"subfolders" yaml:"subfolders"`

	// TargetDir receives the structured output files.
	TargetDir string `json:"target_dir" yaml:"target_dir"`

	// LogDir receives the JSONL run log, CSV section export, and summary.
	LogDir string `json:"log_dir" yaml:"log_dir"`
}

// ImproveConfig holds settings for the improvement loop.
type ImproveConfig struct {
	AIConfig `yaml:",inline"`

	// Threshold is the minimum completeness percentage a document must
	// reach to be accepted (default 80).
	Threshold float64 `json:"threshold" yaml:"threshold"`

	// MaxIterations is the intended bound on improvement rounds. A single
	// invocation performs exactly one pass; re-invocation is required to
	// iterate, so the bound is enforced by the caller.
	MaxIterations int `json:"max_iterations" yaml:"max_iterations"`

	// StructuredDir is where the enforcer wrote structured documents.
	StructuredDir string `json:"structured_dir" yaml:"structured_dir"`

	// OutputDir is the base directory for improved documents; each model
	// writes into "<prefix>-<model>-improved/" beneath it.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// OutputPrefix names the per-model output subfolders (default
	// "markdown-hebrew").
	OutputPrefix string `json:"output_prefix" yaml:"output_prefix"`
}

// IndexConfig holds settings for the chunk index.
type IndexConfig struct {
	// DocsDir is the directory of documents to index.
	DocsDir string `json:"docs_dir" yaml:"docs_dir"`

	// IndexDir is the directory holding the SQLite database.
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of query results (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Fix     FixConfig     `json:"fix" yaml:"fix"`
	Enforce EnforceConfig `json:"enforce" yaml:"enforce"`
	Improve ImproveConfig `json:"improve" yaml:"improve"`
	Index   IndexConfig   `json:"index" yaml:"index"`
}
