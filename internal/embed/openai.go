package embed

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// openaiEmbedder talks to OpenRouter through the go-openai client with a
// custom base URL.
type openaiEmbedder struct {
	api   *openai.Client
	model string
}

func newOpenAIEmbedder(cfg Config) *openaiEmbedder {
	conf := openai.DefaultConfig(cfg.APIKey)
	conf.BaseURL = cfg.BaseURL
	return &openaiEmbedder{
		api:   openai.NewClientWithConfig(conf),
		model: cfg.Model,
	}
}

func (e *openaiEmbedder) Name() string { return FunctionName }

func (e *openaiEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	req := openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: texts,
	}
	resp, err := e.api.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, &BackendError{Op: "create embeddings", Cause: err}
	}
	if len(resp.Data) != len(texts) {
		return nil, &BackendError{
			Op:    "create embeddings",
			Cause: fmt.Errorf("got %d embeddings for %d inputs", len(resp.Data), len(texts)),
		}
	}
	out := make([][]float32, len(resp.Data))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(out) {
			return nil, &BackendError{
				Op:    "create embeddings",
				Cause: fmt.Errorf("embedding index %d out of range", item.Index),
			}
		}
		out[item.Index] = item.Embedding
	}
	return out, nil
}

func (e *openaiEmbedder) EmbedQuery(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedBatch(ctx, texts)
}
