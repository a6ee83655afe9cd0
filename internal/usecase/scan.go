package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"

	"symdoc/internal/adapter/analyzer"
	"symdoc/internal/domain"
	"symdoc/internal/logging"
	"symdoc/internal/port"
)

// ProgressFunc is called after each file is processed.
type ProgressFunc func(processed, total int, currentFile string)

// ScanUseCase walks a tree and extracts symbols from every file, one task
// per file on a fixed pool of workers.
type ScanUseCase struct {
	walker    port.FileWalker
	reader    port.FileReader
	extractor *analyzer.SymbolExtractor
	cache     port.SymbolStore
	workers   int
	logger    *slog.Logger
}

// NewScanUseCase creates a new scan use case. cache may be nil; workers <= 0
// means one per CPU.
func NewScanUseCase(
	walker port.FileWalker,
	reader port.FileReader,
	extractor *analyzer.SymbolExtractor,
	cache port.SymbolStore,
	workers int,
	logger *slog.Logger,
) *ScanUseCase {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &ScanUseCase{
		walker:    walker,
		reader:    reader,
		extractor: extractor,
		cache:     cache,
		workers:   workers,
		logger:    logger,
	}
}

// ScanResult contains the results of a scan.
type ScanResult struct {
	Root    string
	Files   []domain.FileResult // traversal order
	Symbols []domain.Symbol     // traversal order, then in-file rule order
	Stats   domain.ScanStats
}

// Scan extracts symbols from every file under root. Per-file failures are
// recorded on the file's result and never abort the scan. When ctx is
// cancelled no new files are started; the partial result is returned along
// with the context error.
func (u *ScanUseCase) Scan(ctx context.Context, root string, progress ProgressFunc) (*ScanResult, error) {
	// File paths come back absolute; Root must match them for RelPath.
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}

	files, err := u.walker.Walk(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	results := make([]domain.FileResult, len(files))
	started := make([]bool, len(files))

	jobs := make(chan int)
	var wg sync.WaitGroup
	var mu sync.Mutex
	processed := 0

	for w := 0; w < u.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = u.scanFile(files[i])
				if progress != nil {
					mu.Lock()
					processed++
					progress(processed, len(files), files[i].Path)
					mu.Unlock()
				}
			}
		}()
	}

issue:
	for i := range files {
		select {
		case <-ctx.Done():
			break issue
		case jobs <- i:
			started[i] = true
		}
	}
	close(jobs)
	wg.Wait()

	result := &ScanResult{
		Root:  root,
		Stats: domain.ScanStats{Skipped: make(map[domain.SkipReason]int)},
	}
	var fresh []port.CachedFile
	for i, res := range results {
		if !started[i] {
			continue
		}
		result.Files = append(result.Files, res)
		result.Symbols = append(result.Symbols, res.Symbols...)
		u.count(&result.Stats, res)

		if u.cache != nil && !res.Cached && cacheable(res.Skip) {
			fresh = append(fresh, port.CachedFile{
				Path:    res.Path,
				ModTime: files[i].ModTime,
				Size:    files[i].Size,
				Lang:    res.Lang,
				Skip:    res.Skip,
				Symbols: res.Symbols,
			})
		}
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, ctxErr
	}

	if u.cache != nil {
		u.updateCache(files, fresh)
	}

	u.logger.Debug("scan complete",
		"root", root,
		"files", result.Stats.FilesVisited,
		"symbols", result.Stats.Symbols,
		"cache_hits", result.Stats.CacheHits,
	)
	return result, nil
}

// scanFile never fails: every problem becomes a skip reason on the result.
func (u *ScanUseCase) scanFile(info port.FileInfo) domain.FileResult {
	lang := analyzer.Detect(info.Path)
	if lang == domain.LangNone {
		return domain.FileResult{Path: info.Path, Skip: domain.SkipUnsupported}
	}

	if u.cache != nil {
		entry, ok, err := u.cache.GetFile(info.Path)
		if err != nil {
			u.logger.Warn("cache lookup failed", "path", info.Path, "error", err)
		} else if ok && entry.Fresh(info) {
			return domain.FileResult{
				Path:    info.Path,
				Lang:    lang,
				Symbols: entry.Symbols,
				Skip:    entry.Skip,
				Cached:  true,
			}
		}
	}

	text, skip, err := u.reader.ReadText(info.Path)
	if skip != domain.SkipNone {
		u.logger.Debug("skipping file", "path", info.Path, "reason", skip, "error", err)
		return domain.FileResult{Path: info.Path, Lang: lang, Skip: skip, Err: err}
	}

	res := u.extractor.Extract(info.Path, lang, text)
	if res.Skip == domain.SkipExtractFailed {
		u.logger.Warn("extraction failed", "path", info.Path, "error", res.Err)
	}
	return res
}

func (u *ScanUseCase) count(stats *domain.ScanStats, res domain.FileResult) {
	stats.FilesVisited++
	if res.Cached {
		stats.CacheHits++
	}
	if res.Skipped() {
		stats.Skipped[res.Skip]++
		return
	}
	stats.FilesScanned++
	stats.Symbols += len(res.Symbols)
}

func (u *ScanUseCase) updateCache(files []port.FileInfo, fresh []port.CachedFile) {
	if err := u.cache.PutFiles(fresh); err != nil {
		u.logger.Warn("failed to update symbol cache", "error", err)
		return
	}

	keep := make(map[string]bool, len(files))
	for _, f := range files {
		keep[f.Path] = true
	}
	removed, err := u.cache.Prune(keep)
	if err != nil {
		u.logger.Warn("failed to prune symbol cache", "error", err)
		return
	}
	if removed > 0 {
		u.logger.Debug("pruned symbol cache", "removed", removed)
	}
}

// cacheable reports whether a result depends only on file content and
// configuration, so it can be reused while the file is unchanged.
func cacheable(skip domain.SkipReason) bool {
	switch skip {
	case domain.SkipNone, domain.SkipEmpty, domain.SkipBinary, domain.SkipTooLarge:
		return true
	default:
		return false
	}
}
