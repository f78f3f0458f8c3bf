// Package report writes rain interval reports as xlsx workbooks.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Prajwal-Prathiksh/rainchart/internal/analytics"
)

const (
	IntervalsSheet = "Intervals"
	SummarySheet   = "Summary"
)

var intervalHeader = []interface{}{"#", "Start (s)", "End (s)", "Start", "End", "Duration (s)", "Duration", "Intensity", "Samples"}

// Write writes a workbook with one row per interval on the Intervals sheet
// and the session statistics on the Summary sheet.
func Write(w io.Writer, intervals []analytics.Interval, summary analytics.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", IntervalsSheet); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}

	if err := writeIntervals(f, intervals, bold); err != nil {
		return err
	}
	if err := writeSummary(f, summary, bold); err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("report: write: %w", err)
	}
	return nil
}

func writeIntervals(f *excelize.File, intervals []analytics.Interval, bold int) error {
	if err := f.SetSheetRow(IntervalsSheet, "A1", &intervalHeader); err != nil {
		return fmt.Errorf("report: intervals header: %w", err)
	}
	for i, iv := range intervals {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("report: %w", err)
		}
		row := []interface{}{
			i + 1,
			iv.StartX,
			iv.EndX,
			analytics.FormatClock(iv.StartX),
			analytics.FormatClock(iv.EndX),
			iv.Duration(),
			analytics.FormatClock(iv.Duration()),
			iv.Intensity.Title(),
			iv.SampleCount,
		}
		if err := f.SetSheetRow(IntervalsSheet, cell, &row); err != nil {
			return fmt.Errorf("report: interval %d: %w", i+1, err)
		}
	}
	if err := f.SetCellStyle(IntervalsSheet, "A1", "I1", bold); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := f.SetColWidth(IntervalsSheet, "B", "I", 13); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, s analytics.Summary, bold int) error {
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total samples", s.TotalSamples},
		{"Rain samples", s.RainSamples},
		{"Rain fraction", s.RainFraction},
		{"Intervals", s.Intervals},
		{"Total rain (s)", s.TotalRain},
		{"Total rain", analytics.FormatClock(s.TotalRain)},
		{"Longest interval (s)", s.LongestInterval},
		{"Longest interval", analytics.FormatClock(s.LongestInterval)},
		{"Overall intensity", s.Overall},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("report: %w", err)
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("report: summary: %w", err)
		}
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "B1", bold); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", 22); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}
