package domain

import (
	"math"

	m "mockscan.dev/pkg/mockscan/internal/model"
)

// Aggregator accumulates scan results into a Report. It is not safe for
// concurrent use; the scan is single-threaded.
type Aggregator struct {
	report m.Report
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		report: m.Report{Histogram: m.Histogram{}},
	}
}

// AddResults feeds results into the global totals and histogram.
func (a *Aggregator) AddResults(results []m.TestResult) {
	for _, result := range results {
		a.report.Results = append(a.report.Results, result)
		a.report.TotalTests++
		a.report.TotalMocks += result.Mocks
		a.report.Histogram[result.Mocks]++
	}
}

// AddFile records the per-file average of a fully scanned file. Files whose
// rounded average is zero are dropped.
func (a *Aggregator) AddFile(file m.Path, results []m.TestResult) {
	aggregate := m.FileAggregate{File: file, Tests: len(results)}
	for _, result := range results {
		aggregate.Mocks += result.Mocks
	}

	aggregate.Average = FileAverage(aggregate.Mocks, aggregate.Tests)
	if aggregate.Average > 0 {
		a.report.Files = append(a.report.Files, aggregate)
	}
}

// Report returns the accumulated report.
func (a *Aggregator) Report() m.Report {
	return a.report
}

// FileAverage is mocks/tests rounded half to even, or 0 without tests.
func FileAverage(mocks, tests int) int {
	if tests == 0 {
		return 0
	}

	return int(math.RoundToEven(float64(mocks) / float64(tests)))
}
