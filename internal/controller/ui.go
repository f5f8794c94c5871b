// Package controller provides output adapters for displaying scan reports.
package controller

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	m "mockscan.dev/pkg/mockscan/internal/model"
)

// Format selects how the report is rendered.
type Format string

// Available Format values.
const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
)

// Formats lists every supported Format.
var Formats = []Format{FormatText, FormatTable, FormatYAML}

// UI defines the interface for displaying scan diagnostics and the final report.
type UI interface {
	DisplayPatternError(ctx context.Context, err error)
	DisplayFileError(ctx context.Context, err error)
	DisplayReport(ctx context.Context, report m.Report) error
}

// NewUI returns the UI for format, writing through cmd.
func NewUI(cmd *cobra.Command, format Format) (UI, error) {
	switch format {
	case FormatText, "":
		return NewSimpleUI(cmd), nil
	case FormatTable:
		return NewTableUI(cmd), nil
	case FormatYAML:
		return NewYAMLUI(cmd), nil
	}

	return nil, fmt.Errorf("unsupported format %q (want one of %v)", format, Formats)
}
