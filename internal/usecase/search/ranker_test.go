package search

import (
	"math"
	"strings"
	"testing"

	"github.com/kailas-cloud/semdex/internal/domain"
)

func candidate(id, category string, embedding []float32) domain.ContentRecord {
	return domain.ContentRecord{
		ID:        id,
		Title:     "title-" + id,
		Category:  category,
		Embedding: embedding,
	}
}

func TestRank_OrderedByScoreDescending(t *testing.T) {
	query := []float32{1, 0}
	candidates := []domain.ContentRecord{
		candidate("far", "tech", []float32{0, 1}),
		candidate("near", "tech", []float32{1, 0.1}),
		candidate("exact", "tech", []float32{1, 0}),
	}

	results := Rank(query, candidates, "", 10)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].ID != "exact" || results[1].ID != "near" || results[2].ID != "far" {
		t.Fatalf("unexpected order: %s, %s, %s", results[0].ID, results[1].ID, results[2].ID)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score+scoreEpsilon {
			t.Fatalf("scores not descending at %d", i)
		}
	}
}

func TestRank_DistanceComplementsScore(t *testing.T) {
	query := []float32{1, 0}
	candidates := []domain.ContentRecord{
		candidate("a", "", []float32{1, 0.5}),
		candidate("b", "", []float32{0.2, 1}),
	}

	for _, r := range Rank(query, candidates, "", 10) {
		if math.Abs(r.Distance-(1-r.Score)) > 1e-12 {
			t.Fatalf("distance %f != 1 - score %f for %s", r.Distance, r.Score, r.ID)
		}
	}
}

func TestRank_TruncatesToK(t *testing.T) {
	query := []float32{1, 0}
	var candidates []domain.ContentRecord
	for i := 0; i < 10; i++ {
		candidates = append(candidates, candidate(string(rune('a'+i)), "", []float32{1, float32(i)}))
	}

	if got := len(Rank(query, candidates, "", 3)); got != 3 {
		t.Fatalf("expected 3 results, got %d", got)
	}
	// k beyond candidate count returns all
	if got := len(Rank(query, candidates, "", 100)); got != 10 {
		t.Fatalf("expected all 10 results, got %d", got)
	}
}

func TestRank_EdgeCases(t *testing.T) {
	query := []float32{1, 0}
	candidates := []domain.ContentRecord{candidate("a", "", []float32{1, 0})}

	if got := Rank(query, nil, "", 5); len(got) != 0 {
		t.Errorf("expected empty result for empty candidates, got %d", len(got))
	}
	if got := Rank(query, candidates, "", 0); len(got) != 0 {
		t.Errorf("expected empty result for k=0, got %d", len(got))
	}
	if got := Rank(query, candidates, "", -1); len(got) != 0 {
		t.Errorf("expected empty result for k<0, got %d", len(got))
	}
}

func TestRank_CategoryFilterExactMatch(t *testing.T) {
	query := []float32{1, 0}
	candidates := []domain.ContentRecord{
		candidate("t1", "tech", []float32{1, 0}),
		candidate("t2", "tech", []float32{0.9, 0.1}),
		candidate("d1", "design", []float32{0, 1}),
		candidate("p1", "technology", []float32{1, 0}), // prefix, must not match "tech"
	}

	results := Rank(query, candidates, "design", 5)
	if len(results) != 1 || results[0].ID != "d1" {
		t.Fatalf("expected exactly the design record, got %v", results)
	}

	results = Rank(query, candidates, "tech", 5)
	if len(results) != 2 {
		t.Fatalf("expected 2 tech records, got %d", len(results))
	}

	if got := Rank(query, candidates, "missing", 5); len(got) != 0 {
		t.Fatalf("expected empty result for unmatched filter, got %d", len(got))
	}
}

func TestRank_StableTieBreak(t *testing.T) {
	query := []float32{1, 0}
	// All candidates identical to the query: scores tie exactly.
	candidates := []domain.ContentRecord{
		candidate("first", "", []float32{1, 0}),
		candidate("second", "", []float32{1, 0}),
		candidate("third", "", []float32{1, 0}),
	}

	for i := 0; i < 10; i++ {
		results := Rank(query, candidates, "", 3)
		if results[0].ID != "first" || results[1].ID != "second" || results[2].ID != "third" {
			t.Fatalf("run %d: tie-break not stable: %s, %s, %s",
				i, results[0].ID, results[1].ID, results[2].ID)
		}
	}
}

func TestRank_ZeroEmbeddingExcludedNotFatal(t *testing.T) {
	query := []float32{1, 0}
	candidates := []domain.ContentRecord{
		candidate("ok", "", []float32{1, 0}),
		candidate("zero", "", []float32{0, 0}),
	}

	results := Rank(query, candidates, "", 5)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID != "ok" {
		t.Fatalf("expected ok ranked first, got %s", results[0].ID)
	}
	if results[1].Score != 0.0 {
		t.Fatalf("expected zero-norm candidate scored 0.0, got %f", results[1].Score)
	}
}

func TestNewResult_Truncation(t *testing.T) {
	rec := domain.ContentRecord{
		ID:   "doc",
		Body: strings.Repeat("x", maxBodyChars+50),
		Tags: []string{"1", "2", "3", "4", "5", "6", "7"},
	}

	r := newResult(&rec, 0.5)
	if len([]rune(r.Body)) != maxBodyChars+3 {
		t.Errorf("expected body truncated with ellipsis, got len %d", len(r.Body))
	}
	if !strings.HasSuffix(r.Body, "...") {
		t.Errorf("expected ellipsis suffix")
	}
	if len(r.Tags) != maxTags {
		t.Errorf("expected %d tags, got %d", maxTags, len(r.Tags))
	}

	short := domain.ContentRecord{ID: "doc", Body: "short"}
	if got := newResult(&short, 0.5).Body; got != "short" {
		t.Errorf("expected short body untouched, got %q", got)
	}
}
