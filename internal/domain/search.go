package domain

import "time"

// SearchQuery describes one ranked retrieval request.
// Vector, when set, is used verbatim and Text is not embedded.
type SearchQuery struct {
	Text           string
	Vector         []float32
	K              int
	CategoryFilter string
}

// SearchResult is a single ranked hit. Distance is derived:
// Distance == 1 - Score always holds.
type SearchResult struct {
	ID        string
	Title     string
	Body      string
	Category  string
	Tags      []string
	Author    string
	CreatedAt time.Time
	Score     float64
	Distance  float64
}
