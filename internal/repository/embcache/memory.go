// Package embcache provides caching decorators for embedders.
//
// Two layers exist: MemoryCache keys vectors by the exact input text inside
// the process, and CachedEmbedder persists vectors in the backing key-value
// store so they survive restarts. Both are optimizations only: a cache race
// may recompute, and a duplicate write is harmless because embedding is
// deterministic for a fixed configuration.
package embcache

import (
	"container/list"
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/semdex/internal/domain"
)

// MemoryCache is an in-process embedding cache keyed by the exact input
// text. Two different texts are never considered equal. With maxEntries > 0
// it evicts least-recently-used entries; otherwise it grows unbounded.
type MemoryCache struct {
	inner      domain.Embedder
	maxEntries int
	cacheTotal *prometheus.CounterVec

	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front = most recently used
}

type memoryEntry struct {
	text   string
	vector []float32
}

// NewMemoryCache creates an in-process caching decorator.
// cacheTotal is a counter vec with labels "cache" and "result", may be nil.
func NewMemoryCache(inner domain.Embedder, maxEntries int, cacheTotal *prometheus.CounterVec) *MemoryCache {
	return &MemoryCache{
		inner:      inner,
		maxEntries: maxEntries,
		cacheTotal: cacheTotal,
		entries:    make(map[string]*list.Element),
		order:      list.New(),
	}
}

// Embed returns the cached vector for text, or computes and caches one.
func (c *MemoryCache) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if vec, ok := c.get(text); ok {
		c.incCache("hit")
		return domain.EmbeddingResult{Embedding: vec}, nil
	}
	c.incCache("miss")

	result, err := c.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, err
	}

	c.put(text, result.Embedding)
	return result, nil
}

// BatchEmbed applies the per-element hit/miss contract: cached texts are
// served from the cache, the rest go to the inner embedder in one call.
func (c *MemoryCache) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if len(texts) == 0 {
		return domain.BatchEmbeddingResult{}, nil
	}

	embeddings := make([][]float32, len(texts))
	var missTexts []string
	var missIdx []int

	for i, text := range texts {
		if vec, ok := c.get(text); ok {
			c.incCache("hit")
			embeddings[i] = vec
			continue
		}
		c.incCache("miss")
		missTexts = append(missTexts, text)
		missIdx = append(missIdx, i)
	}

	if len(missTexts) > 0 {
		var result domain.BatchEmbeddingResult
		var err error
		if be, ok := c.inner.(domain.BatchEmbedder); ok {
			result, err = be.BatchEmbed(ctx, missTexts)
		} else {
			result, err = domain.BatchFallback(ctx, c.inner, missTexts)
		}
		if err != nil {
			return domain.BatchEmbeddingResult{}, err
		}
		for j, idx := range missIdx {
			embeddings[idx] = result.Embeddings[j]
			c.put(missTexts[j], result.Embeddings[j])
		}
	}

	return domain.BatchEmbeddingResult{Embeddings: embeddings}, nil
}

// Len returns the current number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *MemoryCache) get(text string) ([]float32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[text]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*memoryEntry).vector, true
}

func (c *MemoryCache) put(text string, vector []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[text]; ok {
		// Concurrent miss on the same text: the recomputed vector is
		// identical, so overwriting is idempotent.
		el.Value.(*memoryEntry).vector = vector
		c.order.MoveToFront(el)
		return
	}

	c.entries[text] = c.order.PushFront(&memoryEntry{text: text, vector: vector})

	if c.maxEntries > 0 && len(c.entries) > c.maxEntries {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*memoryEntry).text)
		}
	}
}

func (c *MemoryCache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues("memory", result).Inc()
	}
}
