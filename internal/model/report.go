package model

import (
	"fmt"
	"sort"
	"strings"
)

// TestResult is one finished test observation.
type TestResult struct {
	File  Path
	Suite string
	Test  string
	Mocks int
}

// String renders the result as "<file>:<suite>:<test> uses <n> mocks".
func (r TestResult) String() string {
	return fmt.Sprintf("%s:%s:%s uses %d mocks", r.File, r.Suite, r.Test, r.Mocks)
}

// FileAggregate holds per-file totals and the rounded average mocks per test.
type FileAggregate struct {
	File    Path
	Tests   int
	Mocks   int
	Average int
}

// Histogram maps a mock count to the number of tests having exactly that count.
type Histogram map[int]int

// Keys returns the histogram buckets in ascending order.
func (h Histogram) Keys() []int {
	keys := make([]int, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}

	sort.Ints(keys)

	return keys
}

// Report is the accumulated outcome of a scan. Files holds only aggregates
// with a positive average, in discovery order.
type Report struct {
	TotalTests int
	TotalMocks int
	Results    []TestResult
	Files      []FileAggregate
	Histogram  Histogram
}

// Average returns the unrounded mean mocks per test, or 0 when no tests were found.
func (r Report) Average() float64 {
	if r.TotalTests == 0 {
		return 0
	}

	return float64(r.TotalMocks) / float64(r.TotalTests)
}

// RankedFiles returns the file aggregates ordered by descending average.
// Ties keep discovery order.
func (r Report) RankedFiles() []FileAggregate {
	ranked := make([]FileAggregate, len(r.Files))
	copy(ranked, r.Files)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Average > ranked[j].Average
	})

	return ranked
}

// SortedResults returns a copy of the results sorted by their rendered line.
func (r Report) SortedResults() []TestResult {
	sorted := make([]TestResult, len(r.Results))
	copy(sorted, r.Results)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].String() < sorted[j].String()
	})

	return sorted
}

// ResultsFor returns the contiguous run of sorted results whose rendered line
// starts with "<file>:".
func ResultsFor(sorted []TestResult, file Path) []TestResult {
	prefix := string(file) + ":"

	var group []TestResult

	for _, result := range sorted {
		if strings.HasPrefix(result.String(), prefix) {
			group = append(group, result)
			continue
		}

		if len(group) > 0 {
			break
		}
	}

	return group
}
