package controller

import (
	"context"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	m "mockscan.dev/pkg/mockscan/internal/model"
)

// YAMLUI renders the report as a YAML document. Diagnostics are printed as in SimpleUI.
type YAMLUI struct {
	*SimpleUI
}

// NewYAMLUI creates a new YAMLUI.
func NewYAMLUI(cmd *cobra.Command) *YAMLUI {
	return &YAMLUI{SimpleUI: NewSimpleUI(cmd)}
}

type yamlReport struct {
	TotalTests int         `yaml:"total_tests"`
	TotalMocks int         `yaml:"total_mocks"`
	Average    float64     `yaml:"average"`
	Files      []yamlFile  `yaml:"files"`
	Histogram  map[int]int `yaml:"histogram"`
}

type yamlFile struct {
	Path    string     `yaml:"path"`
	Average int        `yaml:"average"`
	Tests   []yamlTest `yaml:"tests"`
}

type yamlTest struct {
	Suite string `yaml:"suite"`
	Test  string `yaml:"test"`
	Mocks int    `yaml:"mocks"`
}

// DisplayReport prints the report as YAML. Files are ordered by descending
// average. A report without tests prints the plain "No tests found" message.
func (y *YAMLUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if report.TotalTests == 0 {
		return y.outPrintf("%s\n", noTestsMessage)
	}

	out, err := yaml.Marshal(toYAMLReport(report))
	if err != nil {
		return err
	}

	_, err = y.cmd.OutOrStdout().Write(out)

	return err
}

func toYAMLReport(report m.Report) yamlReport {
	doc := yamlReport{
		TotalTests: report.TotalTests,
		TotalMocks: report.TotalMocks,
		Average:    report.Average(),
		Files:      []yamlFile{},
		Histogram:  map[int]int(report.Histogram),
	}

	if doc.Histogram == nil {
		doc.Histogram = map[int]int{}
	}

	sorted := report.SortedResults()

	for _, file := range report.RankedFiles() {
		entry := yamlFile{Path: string(file.File), Average: file.Average}
		for _, result := range m.ResultsFor(sorted, file.File) {
			entry.Tests = append(entry.Tests, yamlTest{Suite: result.Suite, Test: result.Test, Mocks: result.Mocks})
		}

		doc.Files = append(doc.Files, entry)
	}

	return doc
}
