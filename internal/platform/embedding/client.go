// Package embedding calls the external text-embedding service. Vectors are
// unit-normalized client-side so stored dot products equal cosine similarity.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/clinsearch/clinsearch/internal/platform/errs"
)

// Embedder turns text into a fixed-length unit vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Client is an Ollama-compatible embedding client.
type Client struct {
	url    string
	model  string
	dim    int
	client *http.Client
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

// NewClient builds a client against an Ollama-style embeddings endpoint.
// dim is the expected vector length; responses of any other length are
// rejected rather than stored.
func NewClient(url, model string, dim int) *Client {
	return &Client{
		url:    url,
		model:  model,
		dim:    dim,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Embed requests one embedding. The same text always yields the same vector,
// so ranking stays reproducible across runs.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embedRequest{Model: c.model, Prompt: text})
	if err != nil {
		return nil, &errs.EmbeddingError{Reason: "marshal request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, &errs.EmbeddingError{Reason: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &errs.EmbeddingError{Reason: "service unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &errs.EmbeddingError{
			Reason: fmt.Sprintf("status %d: %s", resp.StatusCode, string(snippet)),
		}
	}

	var out embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &errs.EmbeddingError{Reason: "decode response", Err: err}
	}
	if len(out.Embedding) != c.dim {
		return nil, &errs.EmbeddingError{
			Reason: fmt.Sprintf("dimension mismatch: got %d, want %d", len(out.Embedding), c.dim),
		}
	}

	return normalize(out.Embedding), nil
}

// normalize scales the vector to unit length and narrows to float32.
func normalize(vec []float64) []float32 {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	norm := math.Sqrt(sum)

	out := make([]float32, len(vec))
	if norm == 0 {
		return out
	}
	for i, v := range vec {
		out[i] = float32(v / norm)
	}
	return out
}
