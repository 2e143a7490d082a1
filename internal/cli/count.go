package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of indexed records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		n, err := indexer.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countCmd)
}
