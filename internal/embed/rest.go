package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// restEmbedder speaks the embeddings endpoint directly over net/http. The
// request and response shapes match what the go-openai variant sends, so the
// two are interchangeable.
type restEmbedder struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func newRESTEmbedder(cfg Config) *restEmbedder {
	return &restEmbedder{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (e *restEmbedder) Name() string { return FunctionName }

func (e *restEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	payload, err := json.Marshal(embeddingRequest{Model: e.model, Input: texts})
	if err != nil {
		return nil, &BackendError{Op: "encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/embeddings", bytes.NewReader(payload))
	if err != nil {
		return nil, &BackendError{Op: "build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, &BackendError{Op: "post embeddings", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, &BackendError{
			Op:    "post embeddings",
			Cause: fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(b))),
		}
	}

	var decoded embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &BackendError{Op: "decode response", Cause: err}
	}
	if len(decoded.Data) != len(texts) {
		return nil, &BackendError{
			Op:    "post embeddings",
			Cause: fmt.Errorf("got %d embeddings for %d inputs", len(decoded.Data), len(texts)),
		}
	}

	out := make([][]float32, len(decoded.Data))
	for i, item := range decoded.Data {
		out[i] = item.Embedding
	}
	return out, nil
}

func (e *restEmbedder) EmbedQuery(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedBatch(ctx, texts)
}
