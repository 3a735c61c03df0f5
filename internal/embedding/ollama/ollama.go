package ollama

import (
	"context"
	"fmt"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"
)

// Client embeds text through a locally running Ollama server.
type Client struct {
	api     *ollama.Client
	model   string
	timeout time.Duration
}

// Config configures the Ollama embedding client. The server address comes
// from the environment (OLLAMA_HOST), matching the ollama CLI.
type Config struct {
	Model   string
	Timeout time.Duration
}

// NewClient connects to the local Ollama server and verifies the configured
// model is available. Both checks happen here so an absent server or model
// is an initialization failure rather than a mid-run surprise.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Model == "" {
		cfg.Model = "nomic-embed-text"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}
	api, err := ollama.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("could not create ollama client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	listResp, err := api.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list local models: %w", err)
	}
	found := false
	for _, m := range listResp.Models {
		if m.Name == cfg.Model || strings.HasPrefix(m.Name, cfg.Model+":") {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("model %s not found locally", cfg.Model)
	}
	return &Client{api: api, model: cfg.Model, timeout: t}, nil
}

// Name returns the identifier of this embedder implementation.
func (c *Client) Name() string { return "ollama" }

// EmbedBatch embeds all texts in one request and returns the vectors in
// input order.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	resp, err := c.api.Embed(ctx, &ollama.EmbedRequest{Model: c.model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("ollama embed failed: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("got %d embeddings for %d inputs", len(resp.Embeddings), len(texts))
	}
	out := make([][]float64, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		vec := make([]float64, len(emb))
		for j, v := range emb {
			vec[j] = float64(v)
		}
		out[i] = vec
	}
	return out, nil
}
