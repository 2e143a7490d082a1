package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var embedCmd = &cobra.Command{
	Use:   "embed <text>",
	Short: "Print the embedding vector for a text",
	Long: `Embed a text and print the raw vector as JSON. Useful for callers
that want to precompute query vectors.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := embedder.Embed(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return json.NewEncoder(os.Stdout).Encode(result.Embedding)
	},
}

func init() {
	rootCmd.AddCommand(embedCmd)
}
