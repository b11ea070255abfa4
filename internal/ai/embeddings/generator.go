// Package embeddings turns flattened resume profiles and search
// queries into vectors for pgvector similarity search.
package embeddings

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/hotgigs/talent/pkg/kernel"
)

// embeddingModel is pinned: its 1536 dimensions must match the vector
// column on the resumes table.
const embeddingModel = openai.EmbeddingModelTextEmbedding3Small

// Generator embeds resume text for semantic search.
type Generator struct {
	client *openai.Client
}

// NewGenerator creates an embedding generator.
func NewGenerator(apiKey string) *Generator {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)
	return &Generator{client: &client}
}

// GenerateEmbedding embeds one text, either a flattened profile or a
// search query. Empty text is an error; callers decide whether an
// unparsed profile should skip embedding instead.
func (g *Generator) GenerateEmbedding(ctx context.Context, text string) (kernel.ResumeEmbedding, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	resp, err := g.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{text},
		},
		Model: embeddingModel,
	})
	if err != nil {
		return nil, fmt.Errorf("generate embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding data returned")
	}

	return toEmbedding(resp.Data[0].Embedding), nil
}

// toEmbedding narrows the API's float64 values to the float32 vector
// stored in postgres.
func toEmbedding(values []float64) kernel.ResumeEmbedding {
	embedding := make(kernel.ResumeEmbedding, len(values))
	for i, v := range values {
		embedding[i] = float32(v)
	}
	return embedding
}
