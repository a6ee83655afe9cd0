package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"symdoc/internal/adapter/analyzer"
	"symdoc/internal/adapter/fs"
	"symdoc/internal/adapter/memstore"
	"symdoc/internal/adapter/render"
	"symdoc/internal/port"
	"symdoc/internal/usecase"
)

var (
	watchOutput   string
	watchFormat   string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Regenerate the document whenever source files change",
	Long: `Generate the document once, then watch the tree and regenerate after each
burst of changes to supported source files. Stop with Ctrl-C.

Examples:
  symdoc watch
  symdoc watch --debounce 1s -o docs/REFERENCE.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "output file (default from config, docs/API.md)")
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "", "output format: markdown or json (default from config)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "quiet period before regenerating (default from config, 300ms)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path, err := targetDir(args)
	if err != nil {
		return err
	}

	cfg := GetConfig()

	renderer, err := render.ForFormat(formatOrDefault(watchFormat, cfg), cfg.Output.Title, cfg.Output.Description)
	if err != nil {
		return err
	}
	outputPath, err := resolveOutput(cfg, path, watchOutput, renderer)
	if err != nil {
		return err
	}

	// One cache lives for the whole session so each regeneration only
	// re-reads the files that changed.
	var cache port.SymbolStore
	if cfg.Cache.Enabled {
		cache = openCache(cfg, path)
	}
	if cache == nil {
		cache = memstore.NewMemoryStore()
	}
	defer cache.Close()

	scan, cleanup := newScan(cfg, path, scanOptions{}, cache)
	defer cleanup()
	generateUC := usecase.NewGenerateUseCase(scan, renderer, logger)

	debounce := watchDebounce
	if debounce <= 0 {
		debounce = time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
	}
	watcher, err := fs.NewWatcher(cfg.Scan.IgnoreDirs, analyzer.Supported, debounce)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	ctx, stop := commandContext(cmd)
	defer stop()

	regenerate := func() {
		start := time.Now()
		result, err := generateUC.Generate(ctx, path, outputPath, nil)
		if err != nil {
			if ctx.Err() == nil {
				logger.Error("regeneration failed", "error", err)
			}
			return
		}
		fmt.Printf("[%s] %s: %d files, %d symbols (%d cached) in %s\n",
			time.Now().Format("15:04:05"),
			result.OutputPath,
			len(result.Report.Groups),
			result.Scan.Stats.Symbols,
			result.Scan.Stats.CacheHits,
			formatDuration(time.Since(start)),
		)
	}

	regenerate()
	fmt.Printf("Watching %s for changes (Ctrl-C to stop)...\n", path)

	err = watcher.Watch(ctx, path, func(files []string) {
		logger.Debug("change detected", "files", len(files), "first", files[0])
		regenerate()
	})
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
