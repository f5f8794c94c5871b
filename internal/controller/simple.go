package controller

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	m "mockscan.dev/pkg/mockscan/internal/model"
)

const noTestsMessage = "No tests found"

// SimpleUI implements UI as plain text written to the command's stdout.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayPatternError prints the pattern compilation error.
func (s *SimpleUI) DisplayPatternError(ctx context.Context, err error) {
	if ctx.Err() != nil {
		return
	}

	s.printf("%v\n", err)
}

// DisplayFileError prints a per-file read failure.
func (s *SimpleUI) DisplayFileError(ctx context.Context, err error) {
	if ctx.Err() != nil {
		return
	}

	s.printf("%v\n", err)
}

// DisplayReport prints the overall totals, the per-file breakdown ordered by
// descending average and the mock count histogram.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if report.TotalTests == 0 {
		return s.outPrintf("%s\n", noTestsMessage)
	}

	if err := s.outPrintf("Overall results: %s\n", overallLine(report)); err != nil {
		return err
	}

	sorted := report.SortedResults()

	for _, file := range report.RankedFiles() {
		if err := s.outPrintf("\nFile %s has average %d mocks per test\n", file.File, file.Average); err != nil {
			return err
		}

		for _, result := range m.ResultsFor(sorted, file.File) {
			if err := s.outPrintf("%s\n", result); err != nil {
				return err
			}
		}
	}

	if err := s.outPrintf("\n\nNumber of tests having x number of mocks:\n\n"); err != nil {
		return err
	}

	for _, mocks := range report.Histogram.Keys() {
		if err := s.outPrintf("%d: %d\n", mocks, report.Histogram[mocks]); err != nil {
			return err
		}
	}

	return nil
}

func overallLine(report m.Report) string {
	return fmt.Sprintf("%d tests with %d mocks; average of %s mocks per test",
		report.TotalTests, report.TotalMocks, formatAverage(report.Average()))
}

// formatAverage prints the shortest exact representation, e.g. 2.5 or 1.3333333333333333.
func formatAverage(avg float64) string {
	return strconv.FormatFloat(avg, 'f', -1, 64)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

// outPrintf writes formatted output to the underlying cobra command's stdout.
func (s *SimpleUI) outPrintf(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
	return err
}
