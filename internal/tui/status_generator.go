package tui

import (
	"fmt"
	"time"

	"github.com/Prajwal-Prathiksh/rainchart/internal/config"
	"github.com/Prajwal-Prathiksh/rainchart/internal/source"
	"github.com/Prajwal-Prathiksh/rainchart/internal/widgets"
)

// ConfigString describes which config files are in effect.
func ConfigString() string {
	_, existingConfigPaths := config.GetConfigPaths()
	switch len(existingConfigPaths) {
	case 0:
		return "  Config: Using defaults (no config file found)"
	case 1:
		return fmt.Sprintf("  Config file: %s", existingConfigPaths[0])
	default:
		return fmt.Sprintf("  Config files: %s (+ %d more)", existingConfigPaths[len(existingConfigPaths)-1], len(existingConfigPaths)-1)
	}
}

// GenerateStatusInfo gathers the status of a loaded dataset and of the
// chart widget showing it (logic only)
func GenerateStatusInfo(ds source.Dataset, chartWidget *widgets.RainChart, cfg config.Config, loadedAt time.Time) StatusInfo {
	info := StatusInfo{
		Title:       ds.Document.ChartTitle,
		Source:      ds.Path,
		Kind:        ds.Kind.String(),
		Metadata:    ds.Metadata,
		Summary:     ds.Summary,
		Intervals:   ds.Intervals,
		MinDuration: cfg.MinDuration,
		ConfigStr:   ConfigString(),
		LoadedAt:    loadedAt,
	}
	if styles, err := cfg.StyleTable(); err == nil {
		info.Styles = styles
	}
	if chartWidget != nil {
		if vis, err := chartWidget.Visible(); err == nil {
			info.Visible, info.HasVisible = vis, true
		}
		info.Pins = chartWidget.Pins()
		info.Hover = chartWidget.Status()
	}
	return info
}
