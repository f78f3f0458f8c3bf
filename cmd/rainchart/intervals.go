package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Prajwal-Prathiksh/rainchart/internal/analytics"
	"github.com/Prajwal-Prathiksh/rainchart/internal/source"
)

func (a *app) newIntervalsCmd() *cobra.Command {
	var (
		sf     sessionFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "intervals [file]",
		Short: "Print the detected rain intervals",
		Long:  `Detect rain intervals in a data file or cached session and print them with the session summary.`,
		Example: heredoc.Doc(`
			# Intervals of a weather timeline, ignoring showers under a minute
			$ rainchart intervals monaco_timeline.json --min-duration 60

			# Intervals of a cached session as JSON
			$ rainchart intervals --year 2024 --race "Sao Paulo" --session Race --json
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.dataset(args, sf)
			if err != nil {
				return err
			}
			if asJSON {
				return writeIntervalsJSON(cmd.OutOrStdout(), ds)
			}
			styles, err := a.cfg.StyleTable()
			if err != nil {
				return err
			}
			printIntervals(cmd.OutOrStdout(), ds, styles)
			return nil
		},
	}
	analysisFlags(cmd)
	sf.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")
	return cmd
}

func printIntervals(w io.Writer, ds source.Dataset, styles analytics.StyleTable) {
	title := ds.Document.ChartTitle
	if title == "" {
		title = ds.Path
	}
	fmt.Fprintln(w, title)
	if len(ds.Intervals) == 0 {
		fmt.Fprintln(w, "  no rain intervals")
	}
	for i, iv := range ds.Intervals {
		fmt.Fprintf(w, "  %2d  [%s] %s - %s  %-8s %-8s %d samples\n",
			i+1, styles.Lookup(iv.Intensity).Code,
			analytics.FormatClock(iv.StartX), analytics.FormatClock(iv.EndX),
			analytics.FormatClock(iv.Duration()), iv.Intensity, iv.SampleCount)
	}
	s := ds.Summary
	fmt.Fprintf(w, "samples: %d, raining: %d (%.1f%%), overall: %s\n", s.TotalSamples, s.RainSamples, s.RainFraction*100, s.Overall)
	fmt.Fprintf(w, "intervals: %d, total rain: %s, longest: %s\n", s.Intervals, analytics.FormatClock(s.TotalRain), analytics.FormatClock(s.LongestInterval))
}

type intervalJSON struct {
	StartX      float64 `json:"start_x"`
	EndX        float64 `json:"end_x"`
	Duration    float64 `json:"duration"`
	Intensity   string  `json:"intensity"`
	SampleCount int     `json:"sample_count"`
}

type summaryJSON struct {
	TotalSamples    int     `json:"total_samples"`
	RainSamples     int     `json:"rain_samples"`
	RainFraction    float64 `json:"rain_fraction"`
	Intervals       int     `json:"intervals"`
	TotalRain       float64 `json:"total_rain"`
	LongestInterval float64 `json:"longest_interval"`
	Overall         string  `json:"overall"`
}

func writeIntervalsJSON(w io.Writer, ds source.Dataset) error {
	out := struct {
		Title     string         `json:"title,omitempty"`
		Intervals []intervalJSON `json:"intervals"`
		Summary   summaryJSON    `json:"summary"`
	}{
		Title:     ds.Document.ChartTitle,
		Intervals: make([]intervalJSON, 0, len(ds.Intervals)),
		Summary: summaryJSON{
			TotalSamples:    ds.Summary.TotalSamples,
			RainSamples:     ds.Summary.RainSamples,
			RainFraction:    ds.Summary.RainFraction,
			Intervals:       ds.Summary.Intervals,
			TotalRain:       ds.Summary.TotalRain,
			LongestInterval: ds.Summary.LongestInterval,
			Overall:         ds.Summary.Overall,
		},
	}
	for _, iv := range ds.Intervals {
		out.Intervals = append(out.Intervals, intervalJSON{
			StartX:      iv.StartX,
			EndX:        iv.EndX,
			Duration:    iv.Duration(),
			Intensity:   iv.Intensity.String(),
			SampleCount: iv.SampleCount,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
