// Package embed provides text embeddings through the OpenRouter
// OpenAI-compatible API.
package embed

import (
	"context"
	"fmt"
	"strings"
)

const (
	// FunctionName identifies this embedding configuration. Collections are
	// created with this name in their metadata so later readers can tell
	// which embedding space their vectors live in.
	FunctionName = "openrouter"

	defaultModel   = "text-embedding-3-small"
	defaultBaseURL = "https://openrouter.ai/api/v1"
)

// Embedder maps batches of texts to fixed-dimension vectors. Outputs are
// positionally aligned with inputs: callers zip them back together by index.
type Embedder interface {
	// EmbedBatch embeds document texts, one vector per input, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	// EmbedQuery embeds query texts. Shares request logic and result shape
	// with EmbedBatch; the split mirrors how vector stores call embedders.
	EmbedQuery(ctx context.Context, texts []string) ([][]float32, error)
	// Name returns the stable identifier persisted with collections.
	Name() string
}

// Config controls how the embedder is constructed.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	// ForceREST selects the plain-HTTP adapter instead of the go-openai
	// wrapper. The wrapper carries custom base URLs fine, so this is an
	// explicit capability switch rather than something probed at runtime.
	ForceREST bool
}

// BackendError wraps a transport or API failure from the embedding backend.
// Callers decide whether to abort; no retries happen at this layer.
type BackendError struct {
	Op    string
	Cause error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("embedding backend: %s: %v", e.Op, e.Cause)
}

func (e *BackendError) Unwrap() error { return e.Cause }

// New builds an Embedder from cfg. A missing API key fails here, before any
// request is made. The implementation is chosen once: the go-openai client
// by default, the REST adapter when cfg.ForceREST is set.
func New(cfg Config) (Embedder, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY not set")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.ForceREST {
		return newRESTEmbedder(cfg), nil
	}
	return newOpenAIEmbedder(cfg), nil
}

// EmbedText embeds a single string by normalizing it to a one-element batch.
// The result is still a batch: one vector, at index zero.
func EmbedText(ctx context.Context, e Embedder, text string) ([][]float32, error) {
	return e.EmbedBatch(ctx, []string{text})
}
