package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newOllamaServer(t *testing.T, embeddings [][]float32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			w.WriteHeader(http.StatusOK)
		case "/api/embed":
			var req ollamaEmbedRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("failed to decode embed request: %v", err)
			}
			if req.Model == "" {
				t.Error("embed request missing model")
			}
			json.NewEncoder(w).Encode(ollamaEmbedResponse{Embeddings: embeddings})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
}

func TestOllamaProvider_EmbedBatch(t *testing.T) {
	server := newOllamaServer(t, [][]float32{{1, 0}, {0, 1}})
	defer server.Close()

	p, err := NewOllamaProvider(server.URL, "test-model", 2)
	if err != nil {
		t.Fatalf("NewOllamaProvider() error = %v", err)
	}
	defer p.Close()

	got, err := p.EmbedBatch(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("EmbedBatch() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("EmbedBatch() returned %d vectors, want 2", len(got))
	}
	if got[0][0] != 1 || got[1][1] != 1 {
		t.Errorf("EmbedBatch() = %v", got)
	}
}

func TestOllamaProvider_CountMismatch(t *testing.T) {
	server := newOllamaServer(t, [][]float32{{1, 0}})
	defer server.Close()

	p, err := NewOllamaProvider(server.URL, "test-model", 2)
	if err != nil {
		t.Fatalf("NewOllamaProvider() error = %v", err)
	}

	if _, err := p.EmbedBatch(context.Background(), []string{"a", "b"}); err == nil {
		t.Fatal("expected count mismatch error")
	}
}

func TestOllamaProvider_Unreachable(t *testing.T) {
	server := newOllamaServer(t, nil)
	server.Close()

	if _, err := NewOllamaProvider(server.URL, "test-model", 2); err == nil {
		t.Fatal("expected error when ollama is unreachable")
	}
}

func TestOllamaProvider_Defaults(t *testing.T) {
	server := newOllamaServer(t, nil)
	defer server.Close()

	p, err := NewOllamaProvider(server.URL, "", 0)
	if err != nil {
		t.Fatalf("NewOllamaProvider() error = %v", err)
	}
	if p.model != "nomic-embed-text" {
		t.Errorf("model = %q, want default", p.model)
	}
	if p.Dimensions() != 768 {
		t.Errorf("Dimensions() = %d, want 768", p.Dimensions())
	}
	if p.Name() != "ollama" {
		t.Errorf("Name() = %q, want ollama", p.Name())
	}
}
