package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/semdex/internal/domain"
)

var (
	searchK        int
	searchCategory string
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find content most similar to a query",
	Long: `Embed the query text and return the top-k most similar records,
optionally restricted to an exact category.

Examples:
  semdex search "vector similarity in redis"
  semdex search "ml deployment" -k 3 --category tutorial`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVarP(&searchK, "limit", "k", 0, "maximum number of results (default from config)")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "exact-match category filter")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print results as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	k := searchK
	if k == 0 {
		k = cfg.Search.DefaultK
	}
	if k > cfg.Search.MaxK {
		k = cfg.Search.MaxK
	}

	results, err := searcher.Search(cmd.Context(), domain.SearchQuery{
		Text:           args[0],
		K:              k,
		CategoryFilter: searchCategory,
	})
	if err != nil {
		return err
	}

	if searchJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	for i, r := range results {
		fmt.Printf("%2d. %s  (score %.4f)\n", i+1, r.Title, r.Score)
		fmt.Printf("    id=%s category=%s author=%s\n", r.ID, r.Category, r.Author)
		if len(r.Tags) > 0 {
			fmt.Printf("    tags: %s\n", strings.Join(r.Tags, ", "))
		}
		if r.Body != "" {
			fmt.Printf("    %s\n", r.Body)
		}
	}
	return nil
}
