// Package embedding wraps the embedding model behind a small Encoder
// interface so the graph builder and matcher can be exercised with
// deterministic vectors in tests.
package embedding

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is the embedding model used when none is configured.
const DefaultModel = "text-embedding-004"

// Encoder turns texts into fixed-length unit-normalized vectors.
// Blank inputs are filtered before encoding and produce no output entry,
// so callers must not assume positional alignment with a batch that
// contained blanks. asQuery selects the asymmetric query encoding used
// for short requirement phrases matched against longer evidence documents.
type Encoder interface {
	Encode(ctx context.Context, texts []string, asQuery bool) ([][]float32, error)
}

// Config holds encoder configuration
type Config struct {
	APIKey string
	Model  string
}

// GeminiEncoder implements Encoder on top of the Gemini embedding API,
// mapping asQuery to the retrieval-query / retrieval-document task types.
type GeminiEncoder struct {
	client *genai.Client
	model  string
}

// NewGeminiEncoder creates an encoder backed by the Gemini embedding API
func NewGeminiEncoder(ctx context.Context, cfg Config) (*GeminiEncoder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("embedding: API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("embedding: failed to create Gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &GeminiEncoder{client: client, model: model}, nil
}

// Encode embeds the non-blank texts, preserving their relative order.
func (e *GeminiEncoder) Encode(ctx context.Context, texts []string, asQuery bool) ([][]float32, error) {
	kept := FilterBlank(texts)
	if len(kept) == 0 {
		return nil, nil
	}

	em := e.client.EmbeddingModel(e.model)
	if asQuery {
		em.TaskType = genai.TaskTypeRetrievalQuery
	} else {
		em.TaskType = genai.TaskTypeRetrievalDocument
	}

	batch := em.NewBatch()
	for _, text := range kept {
		batch.AddContent(genai.Text(text))
	}

	resp, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("embedding: failed to embed %d texts: %w", len(kept), err)
	}
	if len(resp.Embeddings) != len(kept) {
		return nil, fmt.Errorf("embedding: expected %d embeddings, got %d", len(kept), len(resp.Embeddings))
	}

	vectors := make([][]float32, 0, len(resp.Embeddings))
	for _, emb := range resp.Embeddings {
		vectors = append(vectors, Normalize(emb.Values))
	}
	return vectors, nil
}

// Close releases the underlying API client
func (e *GeminiEncoder) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

var (
	defaultOnce    sync.Once
	defaultEncoder *GeminiEncoder
	defaultErr     error
)

// Default returns the process-wide encoder, initializing it on first use.
// Initialization failure is sticky: a misconfigured provider fails every
// call rather than being silently retried.
func Default(ctx context.Context, cfg Config) (*GeminiEncoder, error) {
	defaultOnce.Do(func() {
		defaultEncoder, defaultErr = NewGeminiEncoder(ctx, cfg)
	})
	if defaultErr != nil {
		return nil, defaultErr
	}
	return defaultEncoder, nil
}

// FilterBlank drops empty strings, preserving the order of the rest
func FilterBlank(texts []string) []string {
	kept := make([]string, 0, len(texts))
	for _, t := range texts {
		if t != "" {
			kept = append(kept, t)
		}
	}
	return kept
}

// Normalize scales a vector to unit length. Zero vectors are returned
// unchanged.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

// Cosine returns the cosine similarity of two unit vectors (their dot
// product). Mismatched or empty vectors score 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}
