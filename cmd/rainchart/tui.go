package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/mum4k/termdash"
	"github.com/mum4k/termdash/terminal/tcell"
	"github.com/spf13/cobra"

	"github.com/Prajwal-Prathiksh/rainchart/internal/source"
	"github.com/Prajwal-Prathiksh/rainchart/internal/tui"
)

// redrawInterval keeps zoom and pan responsive between data refreshes.
const redrawInterval = 250 * time.Millisecond

func (a *app) newTUICmd() *cobra.Command {
	var (
		sf          sessionFlags
		snapshotDir string
	)
	cmd := &cobra.Command{
		Use:   "tui [file]",
		Short: "Interactive terminal chart",
		Long: heredoc.Doc(`
			Show the weather chart with rain regions in the terminal. The file is
			reloaded every refresh_secs seconds, keeping the current zoom.

			Mouse: wheel zooms, drag pans, click pins a line while the modifier
			('m') is on, right click clears the pins.
			Keys: i/o zoom, arrows pan, f fits, esc resets, c clears pins, p saves a PNG snapshot,
			r reloads, q quits.
		`),
		Example: heredoc.Doc(`
			$ rainchart tui monaco_timeline.json
			$ rainchart tui --year 2024 --race Monaco --session Race
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context(), args, sf, snapshotDir)
		},
	}
	analysisFlags(cmd)
	sf.register(cmd)
	cmd.Flags().StringVar(&snapshotDir, "snapshot-dir", ".", "Directory for PNG snapshots")
	return cmd
}

// runTUI implements the TUI command using termdash
func (a *app) runTUI(ctx context.Context, args []string, sf sessionFlags, snapshotDir string) error {
	load := func() (source.Dataset, error) { return a.dataset(args, sf) }
	// Fail before taking over the terminal.
	if _, err := load(); err != nil {
		return err
	}

	// The terminal is ours now; log to a file instead.
	logFile, err := openLogFile(a.cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger, err := newLogger(logFile, a.cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger = logger

	uiParams := &tui.UIParams{Refresh: a.cfg.Refresh()}

	t, err := tcell.New()
	if err != nil {
		return fmt.Errorf("tcell.New => %w", err)
	}
	defer t.Close()

	chartWidget, err := tui.CreateChartWidget(a.cfg)
	if err != nil {
		return fmt.Errorf("CreateChartWidget => %w", err)
	}
	barsWidget := tui.CreateBarsWidget()
	textWidget, err := tui.CreateTextWidget()
	if err != nil {
		return fmt.Errorf("CreateTextWidget => %w", err)
	}

	c, err := tui.CreateUILayout(t, chartWidget, barsWidget, textWidget)
	if err != nil {
		return fmt.Errorf("CreateUILayout => %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updateData, err := tui.SetupDataRefresh(ctx, logger, uiParams, tui.Widgets{
		Chart:     chartWidget,
		Bars:      barsWidget,
		Text:      textWidget,
		Container: c,
	}, a.cfg, load)
	if err != nil {
		return fmt.Errorf("SetupDataRefresh => %w", err)
	}

	// Initial data load
	if err := updateData(); err != nil {
		logger.Error("initial data load", "err", err)
	}

	snapshot := func() (string, error) {
		path := tui.SnapshotPath(snapshotDir, time.Now())
		return path, tui.ExportSnapshot(chartWidget, path)
	}
	keyboardHandler := tui.CreateKeyboardHandler(cancel, updateData, snapshot, logger)

	logger.Info("tui started", "refresh", uiParams.Get())
	if err := termdash.Run(ctx, t, c, termdash.KeyboardSubscriber(keyboardHandler), termdash.RedrawInterval(redrawInterval)); err != nil {
		return fmt.Errorf("termdash.Run => %w", err)
	}
	return nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	return f, nil
}
