package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/semdex/internal/domain"
)

var (
	indexID       string
	indexTitle    string
	indexBody     string
	indexCategory string
	indexTags     []string
	indexAuthor   string
	indexGlob     string
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index content for similarity search",
	Long: `Index a single piece of content given via flags, or bulk-index
JSON documents matched by a glob pattern.

Each matched file holds either one document or an array of documents:
  {"id": "...", "title": "...", "body": "...", "category": "...",
   "tags": ["..."], "author": "..."}

Missing ids are generated. Re-indexing an existing id overwrites it.

Examples:
  semdex index --title "Intro" --body "..." --category tech
  semdex index --glob "content/**/*.json"`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().StringVar(&indexID, "id", "", "content id (generated when empty)")
	indexCmd.Flags().StringVar(&indexTitle, "title", "", "content title")
	indexCmd.Flags().StringVar(&indexBody, "body", "", "content body")
	indexCmd.Flags().StringVar(&indexCategory, "category", "", "content category")
	indexCmd.Flags().StringSliceVar(&indexTags, "tags", nil, "content tags")
	indexCmd.Flags().StringVar(&indexAuthor, "author", "", "content author")
	indexCmd.Flags().StringVar(&indexGlob, "glob", "", "bulk-index JSON files matching this pattern")
}

// contentDoc is the JSON shape accepted for bulk indexing.
type contentDoc struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Author   string   `json:"author"`
}

func runIndex(cmd *cobra.Command, _ []string) error {
	if indexGlob != "" {
		return runBulkIndex(cmd)
	}

	if indexTitle == "" && indexBody == "" {
		return fmt.Errorf("either --glob or at least one of --title/--body is required")
	}

	rec := domain.ContentRecord{
		ID:       indexID,
		Title:    indexTitle,
		Body:     indexBody,
		Category: indexCategory,
		Tags:     indexTags,
		Author:   indexAuthor,
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	if err := indexer.IndexContent(cmd.Context(), &rec); err != nil {
		return err
	}

	fmt.Printf("Indexed %s (%d dimensions)\n", rec.ID, len(rec.Embedding))
	return nil
}

func runBulkIndex(cmd *cobra.Command) error {
	paths, err := doublestar.FilepathGlob(indexGlob)
	if err != nil {
		return fmt.Errorf("invalid glob %q: %w", indexGlob, err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files match %q", indexGlob)
	}

	var records []domain.ContentRecord
	for _, path := range paths {
		docs, err := readDocs(path)
		if err != nil {
			return err
		}
		records = append(records, docs...)
	}

	bar := progressbar.Default(int64(len(records)), "indexing")
	result, err := indexer.BulkIndex(cmd.Context(), records, cfg.Indexing.Workers, func() {
		_ = bar.Add(1)
	})
	if err != nil {
		return err
	}
	_ = bar.Finish()

	fmt.Printf("Indexed %d documents from %d files (%d failed)\n",
		result.Indexed, len(paths), result.Failed)
	return nil
}

// readDocs parses one JSON file holding a document or an array of documents.
func readDocs(path string) ([]domain.ContentRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var docs []contentDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		var single contentDoc
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		docs = []contentDoc{single}
	}

	now := time.Now().UTC()
	records := make([]domain.ContentRecord, 0, len(docs))
	for _, d := range docs {
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		records = append(records, domain.ContentRecord{
			ID:        d.ID,
			Title:     d.Title,
			Body:      d.Body,
			Category:  d.Category,
			Tags:      d.Tags,
			Author:    d.Author,
			CreatedAt: now,
		})
	}
	return records, nil
}
