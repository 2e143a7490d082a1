package domain

import "time"

// KeyPrefix namespaces every key this service writes to the backing store.
// Overridden from config at startup.
var KeyPrefix = "semdex:"

// ContentRecord is an indexed piece of content. The id is immutable once
// assigned; re-indexing under the same id overwrites the previous version.
type ContentRecord struct {
	ID        string
	Title     string
	Body      string
	Category  string
	Tags      []string
	Author    string
	CreatedAt time.Time
	Embedding []float32
}

// HasEmbedding reports whether the record carries an embedding.
// A record is never stored without one.
func (r *ContentRecord) HasEmbedding() bool {
	return len(r.Embedding) > 0
}

// EmbedText returns the canonical text used to embed this record:
// title and body concatenated.
func (r *ContentRecord) EmbedText() string {
	if r.Title == "" {
		return r.Body
	}
	if r.Body == "" {
		return r.Title
	}
	return r.Title + " " + r.Body
}
