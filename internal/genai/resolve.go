// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package genai

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/pdiddy/corpus-refinery/pkg/types"
)

// Resolver maps model tags to backends. The mapping is static for a run:
// local Ollama models and the hosted "claude" tag.
type Resolver struct {
	backends map[string]Backend
}

// ollamaModels are the model tags served by the local backend.
var ollamaModels = []string{"mistral", "qwen", "aya"}

// NewResolver builds the standard name-to-backend mapping from one AI
// configuration. The HTTP client's timeout bounds every generation call.
func NewResolver(cfg types.AIConfig) *Resolver {
	client := &http.Client{Timeout: cfg.Timeout}

	r := &Resolver{backends: map[string]Backend{}}

	ollama := NewOllama(client, "")
	for _, m := range ollamaModels {
		r.backends[m] = ollama
	}
	r.backends["claude"] = NewAnthropic(client, cfg.APIKey, "")

	return r
}

// Register adds or replaces a backend for a model tag. Tests use it to
// install mocks.
func (r *Resolver) Register(model string, b Backend) {
	r.backends[model] = b
}

// Resolve returns the backend serving the given model tag.
func (r *Resolver) Resolve(model string) (Backend, error) {
	b, ok := r.backends[model]
	if !ok {
		known := make([]string, 0, len(r.backends))
		for m := range r.backends {
			known = append(known, m)
		}
		sort.Strings(known)
		return nil, fmt.Errorf("unknown model %q: known models are %s", model, strings.Join(known, ", "))
	}
	return b, nil
}
