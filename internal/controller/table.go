package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "mockscan.dev/pkg/mockscan/internal/model"
)

// TableUI renders the report as tables. Diagnostics are printed as in SimpleUI.
type TableUI struct {
	*SimpleUI
}

// NewTableUI creates a new TableUI.
func NewTableUI(cmd *cobra.Command) *TableUI {
	return &TableUI{SimpleUI: NewSimpleUI(cmd)}
}

// DisplayReport prints the totals followed by a file table and a histogram table.
func (t *TableUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if report.TotalTests == 0 {
		return t.outPrintf("%s\n", noTestsMessage)
	}

	if err := t.outPrintf("Overall results: %s\n\n", overallLine(report)); err != nil {
		return err
	}

	if err := t.outPrintf("%s\n", renderFileTable(report)); err != nil {
		return err
	}

	return t.outPrintf("%s", renderHistogramTable(report.Histogram))
}

func renderFileTable(report m.Report) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"File", "Avg Mocks", "Tests", "Mocks"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
	})

	files := report.RankedFiles()
	for _, file := range files {
		table.Append([]string{
			string(file.File),
			fmt.Sprintf("%d", file.Average),
			fmt.Sprintf("%d", file.Tests),
			fmt.Sprintf("%d", file.Mocks),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(files)),
		formatAverage(report.Average()),
		fmt.Sprintf("%d", report.TotalTests),
		fmt.Sprintf("%d", report.TotalMocks),
	})

	table.Render()

	return tableBuffer.String()
}

func renderHistogramTable(histogram m.Histogram) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Mocks", "Tests"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})

	for _, mocks := range histogram.Keys() {
		table.Append([]string{fmt.Sprintf("%d", mocks), fmt.Sprintf("%d", histogram[mocks])})
	}

	table.Render()

	return tableBuffer.String()
}
