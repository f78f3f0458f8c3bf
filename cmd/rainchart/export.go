package main

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Prajwal-Prathiksh/rainchart/internal/render"
	"github.com/Prajwal-Prathiksh/rainchart/internal/report"
	"github.com/Prajwal-Prathiksh/rainchart/internal/source"
)

func (a *app) newRenderCmd() *cobra.Command {
	var (
		sf       sessionFlags
		output   string
		opts     render.Options
		from, to float64
	)
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Export the chart as PNG, SVG or HTML",
		Long:  `Export the chart of a data file or cached session. The output extension picks the format.`,
		Example: heredoc.Doc(`
			# Static image of the whole session
			$ rainchart render monaco_timeline.json -o monaco.png

			# Interactive page for the first hour, with a pinned line at 20:00
			$ rainchart render monaco_timeline.json -o monaco.html --to 3600 --pin 1200
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			format, err := render.FormatFor(output)
			if err != nil {
				return err
			}
			ds, err := a.dataset(args, sf)
			if err != nil {
				return err
			}
			m, err := a.loadModel(ds)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("from") || cmd.Flags().Changed("to") {
				full, err := m.XRange()
				if err != nil {
					return err
				}
				lo, hi := full.Min, full.Max
				if cmd.Flags().Changed("from") {
					lo = from
				}
				if cmd.Flags().Changed("to") {
					hi = to
				}
				if err := m.SetXRange(lo, hi); err != nil {
					return err
				}
			}

			w, err := createOutput(cmd, output)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, w.Close()) }()
			if err := render.Write(w, format, m, opts); err != nil {
				return err
			}
			a.logger.Info("rendered", "format", format, "output", output)
			return nil
		},
	}
	analysisFlags(cmd)
	sf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (.png, .svg or .html)")
	cmd.Flags().IntVar(&opts.Width, "width", 1200, "Image width in pixels")
	cmd.Flags().IntVar(&opts.Height, "height", 600, "Image height in pixels")
	cmd.Flags().StringVar(&opts.Title, "title", "", "Title override")
	cmd.Flags().Float64SliceVar(&opts.Pins, "pin", nil, "Pinned marker positions in seconds")
	cmd.Flags().Float64Var(&from, "from", 0, "Start of the shown window in seconds")
	cmd.Flags().Float64Var(&to, "to", 0, "End of the shown window in seconds")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func (a *app) newReportCmd() *cobra.Command {
	var (
		sf     sessionFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "report [file]",
		Short: "Write the rain intervals as an xlsx workbook",
		Example: heredoc.Doc(`
			$ rainchart report monaco_timeline.json -o monaco.xlsx
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ds, err := a.dataset(args, sf)
			if err != nil {
				return err
			}
			w, err := createOutput(cmd, output)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, w.Close()) }()
			if err := report.Write(w, ds.Intervals, ds.Summary); err != nil {
				return err
			}
			a.logger.Info("report written", "intervals", len(ds.Intervals), "output", output)
			return nil
		},
	}
	analysisFlags(cmd)
	sf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output xlsx file")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func (a *app) newConvertCmd() *cobra.Command {
	var (
		sf      sessionFlags
		output  string
		toCache bool
	)
	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a timeline or CSV file to a chart document",
		Long: heredoc.Doc(`
			Analyse a weather timeline or CSV file and write the resulting chart
			document, with its rain annotations, as JSON. With --cache the document
			is also stored in the cache under the session from --year/--race/--session,
			or from the timeline metadata.
		`),
		Example: heredoc.Doc(`
			$ rainchart convert monaco_timeline.json -o monaco.json
			$ rainchart convert monaco_timeline.json --cache
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			opts, err := a.sourceOptions()
			if err != nil {
				return err
			}
			ds, err := source.Load(args[0], opts)
			if err != nil {
				return err
			}

			if toCache {
				key := sf
				if !key.set() && ds.Metadata != nil {
					key = sessionFlags{year: ds.Metadata.Year, race: ds.Metadata.Race, session: ds.Metadata.Session}
				}
				k, err := key.key()
				if err != nil {
					return fmt.Errorf("cache: %w", err)
				}
				e, err := a.store().Put(cmd.Context(), k, ds.Document)
				if err != nil {
					return err
				}
				a.logger.Info("cached", "key", e.Key, "path", a.store().Path(k))
			}
			if output == "" {
				if toCache {
					return nil
				}
				output = "-"
			}

			w, err := createOutput(cmd, output)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, w.Close()) }()
			return ds.Document.Encode(w)
		},
	}
	analysisFlags(cmd)
	sf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output document file, - for stdout (default stdout unless --cache)")
	cmd.Flags().BoolVar(&toCache, "cache", false, "Store the document in the cache")
	return cmd
}
