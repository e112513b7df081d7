// Package render turns synthesized report documents into downloadable files.
package render

import (
	"fmt"

	"github.com/seu-repo/lapeco-hr/internal/ports"
)

// New returns the renderer for format ("pdf" or "csv").
func New(format, company string) (ports.DocumentRenderer, error) {
	switch format {
	case "", "pdf":
		return NewPDFRenderer(company), nil
	case "csv":
		return NewCSVRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}
