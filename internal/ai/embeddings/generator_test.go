package embeddings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateEmbeddingRejectsEmptyText(t *testing.T) {
	g := NewGenerator("test-key")

	embedding, err := g.GenerateEmbedding(context.Background(), "")
	require.Error(t, err)
	assert.Nil(t, embedding)
}

func TestToEmbeddingNarrowsValues(t *testing.T) {
	embedding := toEmbedding([]float64{0.25, -0.5, 1})
	require.Len(t, embedding, 3)
	assert.Equal(t, float32(0.25), embedding[0])
	assert.Equal(t, float32(-0.5), embedding[1])
	assert.Equal(t, float32(1), embedding[2])

	assert.Empty(t, toEmbedding(nil))
}
