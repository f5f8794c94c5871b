package controller

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "mockscan.dev/pkg/mockscan/internal/model"
)

func sampleReport() m.Report {
	return m.Report{
		TotalTests: 3,
		TotalMocks: 8,
		Results: []m.TestResult{
			{File: "b.ts", Suite: "B", Test: "x", Mocks: 0},
			{File: "a.ts", Suite: "S", Test: "t2", Mocks: 5},
			{File: "a.ts", Suite: "S", Test: "t1", Mocks: 3},
		},
		Files: []m.FileAggregate{
			{File: "a.ts", Tests: 2, Mocks: 8, Average: 4},
		},
		Histogram: m.Histogram{0: 1, 3: 1, 5: 1},
	}
}

func newBufferedCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return cmd, &buf
}

func TestSimpleUI_DisplayReport(t *testing.T) {
	cmd, buf := newBufferedCmd()
	ui := NewSimpleUI(cmd)

	err := ui.DisplayReport(context.Background(), sampleReport())
	require.NoError(t, err)

	want := "Overall results: 3 tests with 8 mocks; average of 2.6666666666666665 mocks per test\n" +
		"\nFile a.ts has average 4 mocks per test\n" +
		"a.ts:S:t1 uses 3 mocks\n" +
		"a.ts:S:t2 uses 5 mocks\n" +
		"\n\nNumber of tests having x number of mocks:\n\n" +
		"0: 1\n" +
		"3: 1\n" +
		"5: 1\n"
	assert.Equal(t, want, buf.String())
}

func TestSimpleUI_DisplayReport_FilesByDescendingAverage(t *testing.T) {
	cmd, buf := newBufferedCmd()
	ui := NewSimpleUI(cmd)

	report := m.Report{
		TotalTests: 2,
		TotalMocks: 7,
		Results: []m.TestResult{
			{File: "low.ts", Suite: "L", Test: "a", Mocks: 1},
			{File: "high.ts", Suite: "H", Test: "b", Mocks: 6},
		},
		Files: []m.FileAggregate{
			{File: "low.ts", Tests: 1, Mocks: 1, Average: 1},
			{File: "high.ts", Tests: 1, Mocks: 6, Average: 6},
		},
		Histogram: m.Histogram{1: 1, 6: 1},
	}

	require.NoError(t, ui.DisplayReport(context.Background(), report))

	out := buf.String()
	high := bytes.Index(buf.Bytes(), []byte("File high.ts has average 6"))
	low := bytes.Index(buf.Bytes(), []byte("File low.ts has average 1"))
	require.NotEqual(t, -1, high, out)
	require.NotEqual(t, -1, low, out)
	assert.Less(t, high, low)
	assert.Contains(t, out, "average of 3.5 mocks per test")
}

func TestSimpleUI_DisplayReport_NoTests(t *testing.T) {
	cmd, buf := newBufferedCmd()
	ui := NewSimpleUI(cmd)

	err := ui.DisplayReport(context.Background(), m.Report{Histogram: m.Histogram{}})
	require.NoError(t, err)
	assert.Equal(t, "No tests found\n", buf.String())
}

func TestSimpleUI_DisplayErrors(t *testing.T) {
	cmd, buf := newBufferedCmd()
	ui := NewSimpleUI(cmd)

	ui.DisplayPatternError(context.Background(), errors.New("Invalid suite pattern (: missing closing )"))
	ui.DisplayFileError(context.Background(), errors.New("Couldn't process file a.ts: boom at line 3"))

	assert.Equal(t,
		"Invalid suite pattern (: missing closing )\nCouldn't process file a.ts: boom at line 3\n",
		buf.String())
}

func TestSimpleUI_CanceledContext(t *testing.T) {
	cmd, buf := newBufferedCmd()
	ui := NewSimpleUI(cmd)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ui.DisplayFileError(ctx, errors.New("ignored"))
	err := ui.DisplayReport(ctx, sampleReport())

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, buf.String())
}

func TestNewUI(t *testing.T) {
	cmd, _ := newBufferedCmd()

	tests := []struct {
		format Format
		want   interface{}
	}{
		{FormatText, &SimpleUI{}},
		{"", &SimpleUI{}},
		{FormatTable, &TableUI{}},
		{FormatYAML, &YAMLUI{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			ui, err := NewUI(cmd, tt.format)
			require.NoError(t, err)
			assert.IsType(t, tt.want, ui)
		})
	}

	_, err := NewUI(cmd, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}
