package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"symdoc/internal/adapter/fs"
	"symdoc/internal/adapter/render"
	"symdoc/internal/usecase"
)

var (
	symOutput  string
	symNoCache bool
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols [path]",
	Short: "Print the per-file symbol grouping as JSON",
	Long: `Scan the source tree and print the detected symbols, grouped by file, as
JSON. Nothing is written to the configured document path.

Examples:
  symdoc symbols                    # Print to stdout
  symdoc symbols -o symbols.json    # Write to a file
  symdoc symbols | jq '.files[].path'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSymbols,
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
	symbolsCmd.Flags().StringVarP(&symOutput, "output", "o", "", "output file (default: stdout)")
	symbolsCmd.Flags().BoolVar(&symNoCache, "no-cache", false, "ignore and do not update the symbol cache")
}

func runSymbols(cmd *cobra.Command, args []string) error {
	path, err := targetDir(args)
	if err != nil {
		return err
	}

	cfg := GetConfig()
	scan, cleanup := newScan(cfg, path, scanOptions{noCache: symNoCache}, nil)
	defer cleanup()
	generateUC := usecase.NewGenerateUseCase(scan, render.NewJSON(), logger)

	ctx, stop := commandContext(cmd)
	defer stop()

	result, output, err := generateUC.Render(ctx, path, nil)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if symOutput != "" {
		if err := fs.WriteFileAtomic(symOutput, output); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Printf("Symbols written to: %s\n", symOutput)
		fmt.Printf("  Files:   %d\n", len(result.Report.Groups))
		fmt.Printf("  Symbols: %d\n", result.Scan.Stats.Symbols)
	} else {
		os.Stdout.Write(output)
	}

	return nil
}
