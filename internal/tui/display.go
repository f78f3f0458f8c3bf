package tui

import (
	"fmt"
	"strings"

	"github.com/mum4k/termdash/cell"
	"github.com/mum4k/termdash/widgets/text"

	"github.com/Prajwal-Prathiksh/rainchart/internal/analytics"
	"github.com/Prajwal-Prathiksh/rainchart/internal/chart"
	"github.com/Prajwal-Prathiksh/rainchart/internal/widgets"
)

// LineSpec holds formatting information for status text display
type LineSpec struct {
	Text     string
	Color    cell.Color
	UseColor bool
}

// maxListedIntervals caps the interval list; the bar chart shows the rest.
const maxListedIntervals = 8

// BuildStatusLines centralizes ALL string construction & styling.
func BuildStatusLines(info StatusInfo) []LineSpec {
	var lines []LineSpec

	appendLine := func(txt string, color cell.Color, useColor bool) {
		txt = strings.TrimRight(txt, " ")
		lines = append(lines, LineSpec{Text: txt, Color: color, UseColor: useColor})
	}

	// Header: session and overall rain
	title := info.Title
	if title == "" {
		title = "Rain Analysis"
	}
	appendLine("  "+title, cell.ColorYellow, true)
	if md := info.Metadata; md != nil {
		appendLine(fmt.Sprintf("--    Session: %d %s %s", md.Year, md.Race, md.Session), 0, false)
	}
	if info.Summary.HasRain() {
		appendLine(fmt.Sprintf("--    Rain: %s (%.1f%% of samples)", info.Summary.Overall, info.Summary.RainFraction*100), cell.ColorCyan, true)
	} else {
		appendLine("--    Rain: none detected", cell.ColorGreen, true)
	}

	// Spacer
	appendLine("", 0, false)

	// Interval section
	appendLine(fmt.Sprintf("  Rain Intervals: %d (min duration %s)", info.Summary.Intervals, FormatDurationAuto(Seconds(info.MinDuration))), 0, false)
	if info.Summary.Intervals > 0 {
		appendLine(fmt.Sprintf("--    Total rain: %s, longest: %s",
			FormatDurationAuto(Seconds(info.Summary.TotalRain)),
			FormatDurationAuto(Seconds(info.Summary.LongestInterval))), 0, false)
	}
	shown := info.Intervals
	if len(shown) > maxListedIntervals {
		shown = shown[len(shown)-maxListedIntervals:]
		appendLine(fmt.Sprintf("--    (%d earlier intervals not listed)", len(info.Intervals)-maxListedIntervals), 0, false)
	}
	for _, iv := range shown {
		appendLine(fmt.Sprintf("--    [%s] %s to %s  %s  %s",
			styleCode(info.Styles, iv.Intensity),
			analytics.FormatClock(iv.StartX), analytics.FormatClock(iv.EndX),
			FormatDurationAuto(Seconds(iv.Duration())),
			iv.Intensity.Title()), intensityColor(info.Styles, iv.Intensity), true)
	}

	// Spacer
	appendLine("", 0, false)

	// View section
	appendLine("  View:", 0, false)
	if info.HasVisible {
		appendLine(fmt.Sprintf("--    Window: %s to %s (%s)",
			analytics.FormatClock(info.Visible.Min), analytics.FormatClock(info.Visible.Max),
			FormatDurationAuto(Seconds(info.Visible.Span()))), 0, false)
	}
	if len(info.Pins) > 0 {
		pins := make([]string, 0, len(info.Pins))
		for _, p := range info.Pins {
			pins = append(pins, analytics.FormatClock(p))
		}
		appendLine("--    Pinned: "+strings.Join(pins, ", "), cell.ColorYellow, true)
	}
	if info.Hover != "" {
		appendLine("--    "+info.Hover, 0, false)
	}

	// Spacer
	appendLine("", 0, false)

	// Summary section
	appendLine("  Data Summary:", 0, false)
	appendLine(fmt.Sprintf("--    Total samples: %d", info.Summary.TotalSamples), 0, false)
	appendLine(fmt.Sprintf("--    Rain samples: %d", info.Summary.RainSamples), cell.ColorCyan, true)
	appendLine(fmt.Sprintf("--    Dry samples: %d", info.Summary.TotalSamples-info.Summary.RainSamples), cell.ColorGreen, true)
	if !info.LoadedAt.IsZero() {
		appendLine("--    Loaded at: "+info.LoadedAt.Format("Jan 2 15:04:05"), 0, false)
	}

	// Spacer
	appendLine("", 0, false)

	// Paths & config
	appendLine(fmt.Sprintf("  Data source: %s (%s)", info.Source, info.Kind), 0, false)
	appendLine(info.ConfigStr, 0, false)

	return lines
}

func styleCode(styles analytics.StyleTable, lvl analytics.Intensity) string {
	if styles == nil {
		styles = analytics.DefaultStyles()
	}
	return styles.Lookup(lvl).Code
}

func intensityColor(styles analytics.StyleTable, lvl analytics.Intensity) cell.Color {
	if styles == nil {
		styles = analytics.DefaultStyles()
	}
	return widgets.CellColor(styles.Lookup(lvl).Region.Opaque(), chart.RGBA(0, 0, 0, 1))
}

// UpdateStatusText writes formatted status information to the text widget
func UpdateStatusText(textWidget *text.Text, info StatusInfo) {
	textWidget.Reset()
	for _, ln := range BuildStatusLines(info) {
		if ln.UseColor {
			textWidget.Write(ln.Text+"\n", text.WriteCellOpts(cell.FgColor(ln.Color)))
		} else {
			textWidget.Write(ln.Text + "\n")
		}
	}
}
