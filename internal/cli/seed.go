package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/semdex/internal/domain"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Index a set of demo documents",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	records := sampleContent()

	bar := progressbar.Default(int64(len(records)), "seeding")
	result, err := indexer.BulkIndex(cmd.Context(), records, cfg.Indexing.Workers, func() {
		_ = bar.Add(1)
	})
	if err != nil {
		return err
	}
	_ = bar.Finish()

	fmt.Printf("Seeded %d demo documents (%d failed)\n", result.Indexed, result.Failed)
	return nil
}

func sampleContent() []domain.ContentRecord {
	now := time.Now().UTC()
	return []domain.ContentRecord{
		{
			ID:        "content_1",
			Title:     "Advanced Vector Search with Redis",
			Body:      "Learn how to implement high-performance vector search using Redis Stack with real-time indexing and semantic similarity matching. This comprehensive guide covers HNSW algorithms, optimization techniques, and best practices for production deployments.",
			Category:  "technology",
			Tags:      []string{"redis", "vector-search", "database", "performance"},
			Author:    "Redis Labs",
			CreatedAt: now.Add(-2 * time.Hour),
		},
		{
			ID:        "content_2",
			Title:     "Building Real-time AI Applications",
			Body:      "A comprehensive guide to creating responsive AI applications with streaming data processing and instant user feedback. Covers architecture patterns, performance optimization, and scalability considerations.",
			Category:  "tutorial",
			Tags:      []string{"ai", "real-time", "streaming", "architecture"},
			Author:    "AI Weekly",
			CreatedAt: now.Add(-5 * time.Hour),
		},
		{
			ID:        "content_3",
			Title:     "Machine Learning in Production: Redis Integration",
			Body:      "Best practices for deploying ML models with Redis as a feature store and real-time inference cache. Learn about model serving, feature engineering, and monitoring strategies.",
			Category:  "research",
			Tags:      []string{"machine-learning", "production", "redis", "feature-store"},
			Author:    "MLOps Community",
			CreatedAt: now.Add(-24 * time.Hour),
		},
		{
			ID:        "content_4",
			Title:     "Semantic Caching for LLM Optimization",
			Body:      "Revolutionary approach to reducing LLM API costs through intelligent semantic caching. Achieve 90% cost reduction while maintaining response quality through vector similarity matching.",
			Category:  "technology",
			Tags:      []string{"llm", "caching", "optimization", "cost-reduction"},
			Author:    "OpenAI Research",
			CreatedAt: now.Add(-8 * time.Hour),
		},
		{
			ID:        "content_5",
			Title:     "Real-time Feature Streaming Architecture",
			Body:      "Design patterns for processing user interactions in real-time to update ML features instantly. Covers Redis Streams, event sourcing, and feature pipeline optimization.",
			Category:  "tutorial",
			Tags:      []string{"streaming", "features", "real-time", "architecture"},
			Author:    "Data Engineering Weekly",
			CreatedAt: now.Add(-12 * time.Hour),
		},
		{
			ID:        "content_6",
			Title:     "Personalization at Scale: Multi-Strategy Recommendations",
			Body:      "Advanced personalization techniques combining collaborative filtering, content-based filtering, and contextual awareness for superior user experience.",
			Category:  "research",
			Tags:      []string{"personalization", "recommendations", "ml", "user-experience"},
			Author:    "Netflix Tech Blog",
			CreatedAt: now.Add(-18 * time.Hour),
		},
		{
			ID:        "content_7",
			Title:     "Redis Streams for Event-Driven Architecture",
			Body:      "Comprehensive guide to using Redis Streams for building robust event-driven systems. Covers consumer groups, message processing, and fault tolerance patterns.",
			Category:  "technology",
			Tags:      []string{"redis", "streams", "event-driven", "architecture"},
			Author:    "Redis University",
			CreatedAt: now.Add(-48 * time.Hour),
		},
		{
			ID:        "content_8",
			Title:     "Performance Optimization for AI Applications",
			Body:      "Deep dive into performance optimization techniques for AI-powered applications. Covers caching strategies, request batching, and system monitoring.",
			Category:  "tutorial",
			Tags:      []string{"performance", "optimization", "ai", "monitoring"},
			Author:    "High Scalability",
			CreatedAt: now.Add(-36 * time.Hour),
		},
	}
}
