package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"mockscan.dev/pkg/mockscan/internal/adapter"
	"mockscan.dev/pkg/mockscan/internal/controller"
	m "mockscan.dev/pkg/mockscan/internal/model"
)

// ScanArgs contains the arguments for a mock usage scan.
type ScanArgs struct {
	Options m.Options
}

// Workflow runs a complete scan and hands the report to the UI.
type Workflow interface {
	Scan(ctx context.Context, args ScanArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	controller.UI
	Scanner
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(fsAdapter adapter.SourceFSAdapter, ui controller.UI, scanner Scanner) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		UI:              ui,
		Scanner:         scanner,
	}
}

// Scan compiles the patterns, scans every matching file in discovery order and
// displays the report. An invalid pattern aborts the run before any file is
// read. Unreadable files are reported and skipped.
func (w *workflow) Scan(ctx context.Context, args ScanArgs) error {
	opts := args.Options

	patterns, err := CompilePatterns(opts)
	if err != nil {
		slog.Error("invalid pattern", "error", err)
		w.DisplayPatternError(ctx, err)

		return err
	}

	if err := w.checkRoot(opts.Root); err != nil {
		slog.Error("invalid root", "root", opts.Root, "error", err)
		return fmt.Errorf("find sources: %w", err)
	}

	sources, err := w.FindSources(opts.Root, opts.Suffix)
	if err != nil {
		slog.Error("failed to find sources", "root", opts.Root, "error", err)
		return fmt.Errorf("find sources: %w", err)
	}

	slog.Info("scanning", "root", opts.Root, "suffix", opts.Suffix, "files", len(sources))

	aggregator := NewAggregator()

	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}

		results, err := w.ScanFile(ctx, source, patterns)
		aggregator.AddResults(results)

		if err != nil {
			var readErr *FileReadError
			if !errors.As(err, &readErr) {
				return fmt.Errorf("scan %s: %w", source, err)
			}

			w.DisplayFileError(ctx, readErr)

			continue
		}

		aggregator.AddFile(source, results)
	}

	report := aggregator.Report()
	slog.Info("scan finished", "tests", report.TotalTests, "mocks", report.TotalMocks)

	if err := w.DisplayReport(ctx, report); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

// checkRoot requires root to be an existing directory.
func (w *workflow) checkRoot(root m.Path) error {
	info, err := w.FileInfo(root)
	if err != nil {
		return fmt.Errorf("root path error: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("root path %s is not a directory", root)
	}

	return nil
}
