// Package texthash provides a deterministic, model-free embedding provider.
//
// Vectors are expanded from a sha256 stream over the input bytes and
// L2-normalized, so the same text always yields the same unit vector for a
// given dimension. The vectors carry no semantics: scores are only
// comparable between texts embedded by this same provider.
package texthash

import (
	"context"
	"crypto/sha256"
	"encoding/binary"

	"github.com/kailas-cloud/semdex/internal/domain"
)

// DefaultDimensions matches the dimension of the common MiniLM sentence models.
const DefaultDimensions = 384

// Embedder implements domain.Embedder without any external model.
type Embedder struct {
	dimensions int
}

// NewEmbedder creates a texthash provider with the given dimension.
func NewEmbedder(dimensions int) *Embedder {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &Embedder{dimensions: dimensions}
}

// Dimensions returns the configured vector dimension.
func (e *Embedder) Dimensions() int { return e.dimensions }

// Embed derives a unit vector purely from the text's byte content.
// It never fails; the empty string is a valid degenerate input.
func (e *Embedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	vec := make([]float32, e.dimensions)

	seed := sha256.Sum256([]byte(text))
	var block [sha256.Size]byte
	var counter [4]byte

	for i := 0; i < e.dimensions; i++ {
		if i%8 == 0 {
			binary.LittleEndian.PutUint32(counter[:], uint32(i/8))
			h := sha256.New()
			h.Write(seed[:])
			h.Write(counter[:])
			h.Sum(block[:0])
		}
		bits := binary.LittleEndian.Uint32(block[(i%8)*4:])
		// Map to [-1, 1). The exact distribution does not matter,
		// only determinism and a nonzero norm.
		vec[i] = float32(int32(bits)) / (1 << 31)
	}

	return domain.EmbeddingResult{Embedding: domain.Normalize(vec)}, nil
}

// BatchEmbed applies Embed per element.
func (e *Embedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	return domain.BatchFallback(ctx, e, texts)
}
