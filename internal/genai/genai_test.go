package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/corpus-refinery/pkg/types"
)

func TestOllamaGenerate(t *testing.T) {
	var gotReq ollamaGenerateRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "תשובה בעברית"})
	}))
	defer ts.Close()

	o := NewOllama(ts.Client(), ts.URL)
	got, err := o.Generate(context.Background(), Request{
		Prompt:      "כתוב מסמך",
		Model:       "mistral",
		Temperature: 0.7,
		MaxTokens:   4000,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if got != "תשובה בעברית" {
		t.Errorf("response = %q", got)
	}
	if gotReq.Model != "mistral" || gotReq.Stream {
		t.Errorf("request = %+v", gotReq)
	}
	if gotReq.Options.Temperature != 0.7 || gotReq.Options.NumPredict != 4000 {
		t.Errorf("options = %+v", gotReq.Options)
	}
}

func TestOllamaGenerateServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer ts.Close()

	o := NewOllama(ts.Client(), ts.URL)
	_, err := o.Generate(context.Background(), Request{Model: "nope"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "model not found") {
		t.Errorf("error = %v", err)
	}
}

func TestAnthropicGenerate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("x-api-key = %q", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Error("anthropic-version header missing")
		}
		w.Write([]byte(`{"content":[{"type":"text","text":"חלק ראשון "},{"type":"text","text":"וחלק שני"}]}`))
	}))
	defer ts.Close()

	a := NewAnthropic(ts.Client(), "test-key", "")
	a.endpoint = ts.URL

	got, err := a.Generate(context.Background(), Request{Prompt: "שפר מסמך", MaxTokens: 100})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "חלק ראשון וחלק שני" {
		t.Errorf("response = %q", got)
	}
}

func TestAnthropicGenerateMissingKey(t *testing.T) {
	a := NewAnthropic(nil, "", "")
	_, err := a.Generate(context.Background(), Request{Prompt: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "anthropic-api-key") {
		t.Errorf("error = %v", err)
	}
}

func TestAnthropicGenerateAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"max_tokens required"}}`))
	}))
	defer ts.Close()

	a := NewAnthropic(ts.Client(), "test-key", "")
	a.endpoint = ts.URL

	_, err := a.Generate(context.Background(), Request{Prompt: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "max_tokens required") {
		t.Errorf("error = %v", err)
	}
}

func TestResolver(t *testing.T) {
	r := NewResolver(types.AIConfig{Timeout: time.Minute})

	for _, model := range []string{"mistral", "qwen", "aya", "claude"} {
		if _, err := r.Resolve(model); err != nil {
			t.Errorf("Resolve(%q): %v", model, err)
		}
	}

	_, err := r.Resolve("gpt-unknown")
	if err == nil {
		t.Fatal("expected error for unknown model")
	}
	if !strings.Contains(err.Error(), "known models are aya, claude, mistral, qwen") {
		t.Errorf("error = %v", err)
	}
}

type stubBackend struct {
	response string
	err      error
}

func (s *stubBackend) Generate(_ context.Context, _ Request) (string, error) {
	return s.response, s.err
}

func TestResolverRegister(t *testing.T) {
	r := NewResolver(types.AIConfig{})
	stub := &stubBackend{response: "stubbed"}
	r.Register("mistral", stub)

	b, err := r.Resolve("mistral")
	if err != nil {
		t.Fatal(err)
	}
	got, _ := b.Generate(context.Background(), Request{})
	if got != "stubbed" {
		t.Errorf("response = %q", got)
	}
}
