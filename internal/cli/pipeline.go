package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"symdoc/config"
	"symdoc/internal/adapter/analyzer"
	"symdoc/internal/adapter/fs"
	"symdoc/internal/adapter/store"
	"symdoc/internal/domain"
	"symdoc/internal/port"
	"symdoc/internal/usecase"
)

// progressWriter keeps progress output off stdout so documents printed there
// stay pipeable.
var progressWriter io.Writer = os.Stderr

// scanOptions are the per-command overrides of the scan configuration.
type scanOptions struct {
	noCache bool
	workers int
}

// openCache opens the on-disk symbol cache for root. Any failure degrades to
// running without a cache; the returned store is nil in that case.
func openCache(cfg *config.Config, root string) port.SymbolStore {
	if err := config.EnsureStateDir(root); err != nil {
		logger.Warn("symbol cache disabled", "error", err)
		return nil
	}

	dbPath := config.CacheDBPath(root)
	st, migration, err := store.Prepare(dbPath, store.ComputeConfigHash(cfg, analyzer.Fingerprint()))
	if err != nil {
		logger.Warn("symbol cache disabled", "path", dbPath, "error", err)
		return nil
	}
	if migration.NeedsRebuild {
		logger.Info("symbol cache cleared", "reason", migration.Reason)
	}
	return st
}

// newScan wires the scan pipeline for root. The returned cleanup closes the
// cache, if one was opened.
func newScan(cfg *config.Config, root string, opts scanOptions, cache port.SymbolStore) (*usecase.ScanUseCase, func()) {
	cleanup := func() {}
	if cache == nil && cfg.Cache.Enabled && !opts.noCache {
		if st := openCache(cfg, root); st != nil {
			cache = st
			cleanup = func() {
				if err := st.Close(); err != nil {
					logger.Warn("failed to close symbol cache", "error", err)
				}
			}
		}
	}

	workers := cfg.Scan.Workers
	if opts.workers > 0 {
		workers = opts.workers
	}

	scan := usecase.NewScanUseCase(
		fs.NewWalker(cfg.Scan.IgnoreDirs, cfg.Scan.Excludes, cfg.Scan.Gitignore),
		fs.NewReader(cfg.Scan.MaxFileSize),
		analyzer.NewSymbolExtractor(),
		cache,
		workers,
		logger,
	)
	return scan, cleanup
}

// newProgressBar returns a progress callback that lazily creates a bar once
// the total file count is known.
func newProgressBar(description string) usecase.ProgressFunc {
	var bar *progressbar.ProgressBar
	var barMu sync.Mutex
	var startTime time.Time

	return func(processed, total int, currentFile string) {
		barMu.Lock()
		defer barMu.Unlock()

		if bar == nil {
			startTime = time.Now()
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWriter(progressWriter),
				progressbar.OptionSetDescription("[cyan]"+description+"[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(progressWriter)
				}),
			)
		}

		bar.Set(processed)

		if processed > 0 {
			elapsed := time.Since(startTime)
			rate := float64(processed) / elapsed.Seconds()
			remaining := total - processed
			if rate > 0 {
				eta := time.Duration(float64(remaining)/rate) * time.Second
				bar.Describe(fmt.Sprintf("[cyan]%s[reset] ETA: %s", description, formatDuration(eta)))
			}
		}
	}
}

// printStats writes the scan summary shown after generate and watch runs.
func printStats(stats domain.ScanStats) {
	fmt.Printf("  Files visited:  %d\n", stats.FilesVisited)
	fmt.Printf("  Files scanned:  %d\n", stats.FilesScanned)
	if stats.CacheHits > 0 {
		fmt.Printf("  Cache hits:     %d\n", stats.CacheHits)
	}
	fmt.Printf("  Symbols:        %d\n", stats.Symbols)

	if len(stats.Skipped) > 0 {
		reasons := make([]string, 0, len(stats.Skipped))
		for r := range stats.Skipped {
			reasons = append(reasons, string(r))
		}
		sort.Strings(reasons)
		fmt.Printf("  Skipped:\n")
		for _, r := range reasons {
			fmt.Printf("    %-15s %d\n", r+":", stats.Skipped[domain.SkipReason(r)])
		}
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
