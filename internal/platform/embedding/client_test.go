package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clinsearch/clinsearch/internal/platform/errs"
)

func embedServer(t *testing.T, vec []float64, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: %s", r.Method)
		}
		var req embedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("request decode: %v", err)
		}
		if req.Model == "" || req.Prompt == "" {
			t.Errorf("request must carry model and prompt: %+v", req)
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		json.NewEncoder(w).Encode(embedResponse{Embedding: vec})
	}))
}

func TestEmbed_NormalizesToUnitLength(t *testing.T) {
	srv := embedServer(t, []float64{3, 4, 0}, http.StatusOK)
	defer srv.Close()

	c := NewClient(srv.URL, "nomic-embed-text", 3)
	vec, err := c.Embed(context.Background(), "diabetic patient in Boston")
	if err != nil {
		t.Fatal(err)
	}
	if len(vec) != 3 {
		t.Fatalf("length: %d", len(vec))
	}

	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if math.Abs(sum-1) > 1e-6 {
		t.Errorf("vector norm squared: %f, want 1", sum)
	}
	if math.Abs(float64(vec[0])-0.6) > 1e-6 || math.Abs(float64(vec[1])-0.8) > 1e-6 {
		t.Errorf("components: %v", vec)
	}
}

func TestEmbed_RejectsWrongDimension(t *testing.T) {
	srv := embedServer(t, []float64{1, 2}, http.StatusOK)
	defer srv.Close()

	c := NewClient(srv.URL, "nomic-embed-text", 768)
	_, err := c.Embed(context.Background(), "text")
	var ee *errs.EmbeddingError
	if !errors.As(err, &ee) {
		t.Fatalf("expected EmbeddingError, got %v", err)
	}
}

func TestEmbed_ServiceFailure(t *testing.T) {
	srv := embedServer(t, nil, http.StatusInternalServerError)
	defer srv.Close()

	c := NewClient(srv.URL, "nomic-embed-text", 3)
	_, err := c.Embed(context.Background(), "text")
	var ee *errs.EmbeddingError
	if !errors.As(err, &ee) {
		t.Fatalf("expected EmbeddingError, got %v", err)
	}
}

func TestEmbed_Unreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1/api/embeddings", "m", 3)
	_, err := c.Embed(context.Background(), "text")
	var ee *errs.EmbeddingError
	if !errors.As(err, &ee) {
		t.Fatalf("expected EmbeddingError, got %v", err)
	}
}

func TestNormalize_ZeroVector(t *testing.T) {
	out := normalize([]float64{0, 0})
	if out[0] != 0 || out[1] != 0 {
		t.Errorf("zero vector must stay zero: %v", out)
	}
}
