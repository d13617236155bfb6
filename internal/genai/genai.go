// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package genai abstracts the text-generation backends used for document
// regeneration. Two implementations exist behind one contract: a locally
// hosted Ollama server and the hosted Anthropic messages API. Callers pick
// a backend by model identifier through a static mapping; the backends
// themselves are blocking "send prompt, receive text" calls bounded by the
// caller's context.
package genai

import "context"

// Request carries one generation call's prompt and sampling parameters.
type Request struct {
	// Prompt is the full prompt text.
	Prompt string

	// Model is the model tag the caller selected (e.g. "mistral").
	// Local backends pass it through; hosted backends map it to their
	// own API model identifier.
	Model string

	// Temperature is the sampling temperature.
	Temperature float64

	// MaxTokens caps the generated output length.
	MaxTokens int
}

// Backend generates text for a single request. Implementations return the
// raw generated text or an error; they never write files.
type Backend interface {
	Generate(ctx context.Context, req Request) (string, error)
}
