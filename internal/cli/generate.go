package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"symdoc/config"
	"symdoc/internal/adapter/render"
	"symdoc/internal/port"
	"symdoc/internal/usecase"
)

var (
	genOutput  string
	genFormat  string
	genNoCache bool
	genWorkers int
	genQuiet   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Write the public symbol reference document",
	Long: `Scan the source tree and write every detected public symbol, grouped by
file, into one document. The default output is docs/API.md under the root.

Per-file results are cached in .symdoc/cache.db so unchanged files are not
read again on the next run.

Examples:
  symdoc generate                      # Document the current directory
  symdoc generate /path/to/project     # Document a specific directory
  symdoc generate -f json -o api.json  # Write JSON instead of markdown`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "output file (default from config, docs/API.md)")
	generateCmd.Flags().StringVarP(&genFormat, "format", "f", "", "output format: markdown or json (default from config)")
	generateCmd.Flags().BoolVar(&genNoCache, "no-cache", false, "ignore and do not update the symbol cache")
	generateCmd.Flags().IntVarP(&genWorkers, "workers", "w", 0, "number of parallel workers (default from config, 0 = one per CPU)")
	generateCmd.Flags().BoolVarP(&genQuiet, "quiet", "q", false, "do not show progress or the summary")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	path, err := targetDir(args)
	if err != nil {
		return err
	}

	cfg := GetConfig()

	renderer, err := render.ForFormat(formatOrDefault(genFormat, cfg), cfg.Output.Title, cfg.Output.Description)
	if err != nil {
		return err
	}

	outputPath, err := resolveOutput(cfg, path, genOutput, renderer)
	if err != nil {
		return err
	}

	scan, cleanup := newScan(cfg, path, scanOptions{noCache: genNoCache, workers: genWorkers}, nil)
	defer cleanup()
	generateUC := usecase.NewGenerateUseCase(scan, renderer, logger)

	ctx, stop := commandContext(cmd)
	defer stop()

	var progress usecase.ProgressFunc
	if !genQuiet {
		fmt.Fprintf(progressWriter, "Scanning %s...\n", path)
		progress = newProgressBar("Scanning")
	}

	result, err := generateUC.Generate(ctx, path, outputPath, progress)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("generation interrupted, %s left unchanged", outputPath)
		}
		return fmt.Errorf("generation failed: %w", err)
	}

	if !genQuiet {
		fmt.Printf("\nGeneration complete:\n")
		printStats(result.Scan.Stats)
		fmt.Printf("\nDocument written to: %s\n", result.OutputPath)
	}
	return nil
}

// targetDir resolves the optional positional path against the root and
// checks that it is a directory.
func targetDir(args []string) (string, error) {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return "", fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", path)
	}
	return path, nil
}

func formatOrDefault(flag string, cfg *config.Config) string {
	if flag != "" {
		return strings.ToLower(flag)
	}
	return strings.ToLower(cfg.Output.Format)
}

// resolveOutput picks the document path. An explicit flag is taken relative
// to the working directory; the configured path is relative to root and has
// its extension matched to the renderer.
func resolveOutput(cfg *config.Config, root, flag string, renderer port.Renderer) (string, error) {
	if flag != "" {
		out, err := filepath.Abs(flag)
		if err != nil {
			return "", fmt.Errorf("invalid output path: %w", err)
		}
		return out, nil
	}

	out := cfg.OutputPath(root)
	if ext := filepath.Ext(out); ext != renderer.Extension() {
		out = strings.TrimSuffix(out, ext) + renderer.Extension()
	}
	return out, nil
}

// commandContext returns a context cancelled on interrupt.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt)
}
