package content

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/semdex/internal/domain"
)

// Hash field names. Tags are stored comma-joined; the embedding as
// little-endian float32 bytes.
const (
	fieldTitle     = "title"
	fieldBody      = "body"
	fieldCategory  = "category"
	fieldTags      = "tags"
	fieldAuthor    = "author"
	fieldCreatedAt = "created_at"
	fieldEmbedding = "embedding"
)

// buildHashFields converts a record into a flat map for HSET.
func buildHashFields(rec *domain.ContentRecord) map[string]string {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return map[string]string{
		fieldTitle:     rec.Title,
		fieldBody:      rec.Body,
		fieldCategory:  rec.Category,
		fieldTags:      strings.Join(rec.Tags, ","),
		fieldAuthor:    rec.Author,
		fieldCreatedAt: strconv.FormatInt(createdAt.Unix(), 10),
		fieldEmbedding: vectorToBytes(rec.Embedding),
	}
}

// parseHashFields converts a flat hash map back into a record.
func parseHashFields(id string, m map[string]string) (domain.ContentRecord, error) {
	embedding, err := vectorFromBytes(m[fieldEmbedding])
	if err != nil {
		return domain.ContentRecord{}, fmt.Errorf("content %s: %w", id, err)
	}

	var tags []string
	if m[fieldTags] != "" {
		tags = strings.Split(m[fieldTags], ",")
	}

	var createdAt time.Time
	if ts, err := strconv.ParseInt(m[fieldCreatedAt], 10, 64); err == nil {
		createdAt = time.Unix(ts, 0).UTC()
	}

	return domain.ContentRecord{
		ID:        id,
		Title:     m[fieldTitle],
		Body:      m[fieldBody],
		Category:  m[fieldCategory],
		Tags:      tags,
		Author:    m[fieldAuthor],
		CreatedAt: createdAt,
		Embedding: embedding,
	}, nil
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

func vectorFromBytes(s string) ([]float32, error) {
	if len(s)%4 != 0 {
		return nil, fmt.Errorf("invalid embedding data: len=%d (not multiple of 4)", len(s))
	}
	data := []byte(s)
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
