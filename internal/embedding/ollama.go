package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// OllamaProvider implements Provider using a local Ollama server
type OllamaProvider struct {
	host       string
	model      string
	dimensions int
	httpClient *http.Client
}

// ollamaEmbedRequest is the request body for Ollama's /api/embed endpoint.
type ollamaEmbedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// ollamaEmbedResponse is the response from Ollama's /api/embed endpoint.
type ollamaEmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// NewOllamaProvider creates a new Ollama embedding provider
func NewOllamaProvider(host, model string, dimensions int) (*OllamaProvider, error) {
	if host == "" {
		host = "http://localhost:11434"
	}
	if model == "" {
		model = "nomic-embed-text"
	}
	if dimensions == 0 {
		dimensions = 768
	}

	p := &OllamaProvider{
		host:       strings.TrimRight(host, "/"),
		model:      model,
		dimensions: dimensions,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}

	if !p.isHealthy() {
		return nil, fmt.Errorf("ollama is not reachable at %s", p.host)
	}

	return p, nil
}

// isHealthy checks if Ollama is reachable.
func (p *OllamaProvider) isHealthy() bool {
	resp, err := p.httpClient.Get(p.host + "/api/tags")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Embed generates an embedding for a single text
func (p *OllamaProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := p.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

// EmbedBatch generates embeddings for multiple texts in one request
func (p *OllamaProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	body, err := json.Marshal(ollamaEmbedRequest{Model: p.model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.host+"/api/embed", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama embed returned status %d", resp.StatusCode)
	}

	var result ollamaEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode embed response: %w", err)
	}

	if len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: got %d for %d texts", len(result.Embeddings), len(texts))
	}

	return result.Embeddings, nil
}

// Dimensions reports the configured output dimensionality
func (p *OllamaProvider) Dimensions() int {
	return p.dimensions
}

// Name identifies this provider
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Close releases resources
func (p *OllamaProvider) Close() error {
	return nil
}
