package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"symdoc/internal/adapter/analyzer"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages and file extensions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, info := range analyzer.Languages() {
			fmt.Printf("%-12s %-28s %d rules\n", info.Lang, strings.Join(info.Extensions, " "), info.Rules)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
