package chroma

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "http://localhost:8000"

// ErrNotFound reports that a collection does not exist on the server. It is
// the expected first-run signal for the provisioner and must stay
// distinguishable from connectivity failures.
var ErrNotFound = errors.New("chroma: collection not found")

// APIError carries a non-2xx response from the Chroma server.
type APIError struct {
	Status int
	Method string
	Path   string
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("chroma %s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

type Client struct {
	baseURL string
	*http.Client
}

type Collection struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type createCollectionRequest struct {
	Name     string         `json:"name"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type AddRequest struct {
	IDs        []string         `json:"ids"`
	Documents  []string         `json:"documents,omitempty"`
	Metadatas  []map[string]any `json:"metadatas,omitempty"`
	Embeddings [][]float32      `json:"embeddings,omitempty"`
}

type QueryRequest struct {
	QueryEmbeddings [][]float32    `json:"query_embeddings"`
	NResults        int            `json:"n_results"`
	Where           map[string]any `json:"where,omitempty"`
	Include         []string       `json:"include,omitempty"`
}

type QueryResponse struct {
	IDs       [][]string         `json:"ids"`
	Documents [][]string         `json:"documents"`
	Distances [][]float32        `json:"distances"`
	Metadatas [][]map[string]any `json:"metadatas"`
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Heartbeat probes server liveness. Callers should invoke it right after
// construction so an unreachable server fails fast instead of on first use.
func (c *Client) Heartbeat(ctx context.Context) error {
	var out map[string]any
	return c.do(ctx, http.MethodGet, "/api/v1/heartbeat", nil, &out)
}

func (c *Client) CreateCollection(ctx context.Context, name string, metadata map[string]any) (*Collection, error) {
	req := createCollectionRequest{Name: name, Metadata: metadata}
	var out Collection
	if err := c.do(ctx, http.MethodPost, "/api/v1/collections", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCollection looks a collection up by name. A missing collection is
// reported as ErrNotFound; any other failure keeps its original cause.
func (c *Client) GetCollection(ctx context.Context, name string) (*Collection, error) {
	var out Collection
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/collections/%s", name), nil, &out)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCollection(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/collections/%s", name), nil, nil)
}

func (c *Client) Add(ctx context.Context, collectionID string, req AddRequest) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/collections/%s/add", collectionID), req, nil)
}

func (c *Client) Query(ctx context.Context, collectionID string, req QueryRequest) (*QueryResponse, error) {
	var out QueryResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/collections/%s/query", collectionID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Count(ctx context.Context, collectionID string) (int, error) {
	var count int
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/collections/%s/count", collectionID), nil, &count); err != nil {
		return 0, err
	}
	return count, nil
}

func isNotFound(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusNotFound ||
		strings.Contains(strings.ToLower(apiErr.Body), "does not exist")
}

func (c *Client) do(ctx context.Context, method, path string, in interface{}, out interface{}) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid base url: %w", err)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + path

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return &APIError{
			Status: resp.StatusCode,
			Method: method,
			Path:   path,
			Body:   strings.TrimSpace(string(b)),
		}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
