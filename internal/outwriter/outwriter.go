// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for
// the command layer.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteMetricsReport prints a metrics report using the configured output format.
func (ow *OutWriter) WriteMetricsReport(report schema.MetricsReport, kinds []schema.MetricKind, cfg *contract.Config) error {
	return PrintMetricsReport(report, kinds, cfg)
}

// WriteCompositeReport prints a composite score report using the configured output format.
func (ow *OutWriter) WriteCompositeReport(report schema.CompositeReport, cfg *contract.Config) error {
	return PrintCompositeReport(report, cfg)
}

// WriteStatus prints store status using the configured output format.
func (ow *OutWriter) WriteStatus(status schema.StoreStatus, cfg *contract.Config) error {
	return PrintStatus(status, cfg)
}

// WriteKinds prints the metric kind catalog using the configured output format.
func (ow *OutWriter) WriteKinds(cfg *contract.Config) error {
	return PrintKinds(cfg)
}

// GetMaxTableLabelWidth calculates the maximum width for free-text table
// cells based on terminal width and table configuration.
func GetMaxTableLabelWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed numeric columns with borders and padding
	baseWidth := 45

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
