package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Client is an OpenAI-compatible embeddings client. Anything speaking the
// /embeddings protocol works, including local servers.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// Config configures the OpenAI-compatible embeddings client.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

// NewClient creates a new embeddings client using the provided configuration.
// A missing API key is an initialization failure, reported here rather than
// on first use.
func NewClient(cfg Config) (*Client, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  key,
		model:   cfg.Model,
		client:  &http.Client{Timeout: t},
	}, nil
}

// Name returns the identifier of this embedder implementation.
func (c *Client) Name() string { return "openai" }

// EmbedBatch embeds all texts in a single request and returns the vectors
// in input order. The call is made exactly once; a failure is returned to
// the caller instead of retried.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	type reqBody struct {
		Input []string `json:"input"`
		Model string   `json:"model"`
	}
	data, err := json.Marshal(reqBody{Input: texts, Model: c.model})
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/embeddings", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai embeddings failed: %s", resp.Status)
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// OpenAI-compatible response shape first
	var openaiOut struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &openaiOut); err == nil && len(openaiOut.Data) > 0 {
		if len(openaiOut.Data) != len(texts) {
			return nil, fmt.Errorf("got %d embeddings for %d inputs", len(openaiOut.Data), len(texts))
		}
		out := make([][]float64, len(openaiOut.Data))
		for i, d := range openaiOut.Data {
			out[i] = d.Embedding
		}
		return out, nil
	}

	// Fallback to the Ollama-native batch shape: { "embeddings": [[...], ...] }
	var ollamaOut struct {
		Embeddings [][]float64 `json:"embeddings"`
	}
	if err := json.Unmarshal(payload, &ollamaOut); err == nil && len(ollamaOut.Embeddings) > 0 {
		if len(ollamaOut.Embeddings) != len(texts) {
			return nil, fmt.Errorf("got %d embeddings for %d inputs", len(ollamaOut.Embeddings), len(texts))
		}
		return ollamaOut.Embeddings, nil
	}
	return nil, fmt.Errorf("no embeddings returned")
}
