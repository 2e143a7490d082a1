package search

import (
	"sort"

	"github.com/kailas-cloud/semdex/internal/domain"
)

// Display truncation limits for ranked results, matching the API surface:
// long bodies are cut with an ellipsis, tag lists are capped.
const (
	maxBodyChars = 200
	maxTags      = 5
)

// scoreEpsilon is the tolerance under which two scores count as equal
// for tie-breaking.
const scoreEpsilon = 1e-9

// Rank scores candidates against queryVector by cosine similarity, drops
// those whose category does not exactly equal filter (when non-empty),
// and returns at most k results ordered by score descending. Ties within
// scoreEpsilon keep the original candidate order, so identical inputs
// always produce identical output.
func Rank(queryVector []float32, candidates []domain.ContentRecord, filter string, k int) []domain.SearchResult {
	if k <= 0 || len(candidates) == 0 {
		return nil
	}

	results := make([]domain.SearchResult, 0, len(candidates))
	for i := range candidates {
		rec := &candidates[i]
		if filter != "" && rec.Category != filter {
			continue
		}
		score := domain.CosineSimilarity(queryVector, rec.Embedding)
		results = append(results, newResult(rec, score))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score-results[j].Score > scoreEpsilon
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}

func newResult(rec *domain.ContentRecord, score float64) domain.SearchResult {
	tags := rec.Tags
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	return domain.SearchResult{
		ID:        rec.ID,
		Title:     rec.Title,
		Body:      truncate(rec.Body, maxBodyChars),
		Category:  rec.Category,
		Tags:      tags,
		Author:    rec.Author,
		CreatedAt: rec.CreatedAt,
		Score:     score,
		Distance:  1 - score,
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
