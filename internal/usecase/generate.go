package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"symdoc/internal/adapter/fs"
	"symdoc/internal/domain"
	"symdoc/internal/logging"
	"symdoc/internal/port"
)

// GenerateUseCase scans a tree, renders the grouped symbols and writes the
// document in one step.
type GenerateUseCase struct {
	scan     *ScanUseCase
	renderer port.Renderer
	logger   *slog.Logger
}

func NewGenerateUseCase(scan *ScanUseCase, renderer port.Renderer, logger *slog.Logger) *GenerateUseCase {
	if logger == nil {
		logger = logging.Nop()
	}
	return &GenerateUseCase{
		scan:     scan,
		renderer: renderer,
		logger:   logger,
	}
}

// GenerateResult contains the results of a generate operation.
type GenerateResult struct {
	Scan       *ScanResult
	Report     domain.Report
	OutputPath string
	Bytes      int
}

// Render scans root and returns the rendered document without writing it.
func (u *GenerateUseCase) Render(ctx context.Context, root string, progress ProgressFunc) (*GenerateResult, []byte, error) {
	scanResult, err := u.scan.Scan(ctx, root, progress)
	if err != nil {
		return nil, nil, err
	}

	report := BuildReport(scanResult.Root, scanResult.Symbols)
	data, err := u.renderer.Render(report)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to render report: %w", err)
	}

	return &GenerateResult{
		Scan:   scanResult,
		Report: report,
		Bytes:  len(data),
	}, data, nil
}

// Generate renders the document for root and writes it to outputPath. The
// document is built fully in memory first; nothing is written if the scan
// is cancelled.
func (u *GenerateUseCase) Generate(ctx context.Context, root, outputPath string, progress ProgressFunc) (*GenerateResult, error) {
	result, data, err := u.Render(ctx, root, progress)
	if err != nil {
		return nil, err
	}

	if err := fs.WriteFileAtomic(outputPath, data); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	result.OutputPath = outputPath

	u.logger.Info("wrote document",
		"path", outputPath,
		"files", len(result.Report.Groups),
		"symbols", result.Scan.Stats.Symbols,
	)
	return result, nil
}
