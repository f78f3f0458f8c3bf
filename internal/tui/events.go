package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mum4k/termdash/cell"
	"github.com/mum4k/termdash/container"
	"github.com/mum4k/termdash/terminal/terminalapi"
	"github.com/mum4k/termdash/widgets/text"

	"github.com/Prajwal-Prathiksh/rainchart/internal/config"
	"github.com/Prajwal-Prathiksh/rainchart/internal/source"
	"github.com/Prajwal-Prathiksh/rainchart/internal/widgets"
)

// ViewInterval is how often the title and status follow zoom and pan
// between data reloads.
const ViewInterval = 500 * time.Millisecond

// Widgets groups the dashboard parts the refresh loop updates.
type Widgets struct {
	Chart     *widgets.RainChart
	Bars      *widgets.IntervalBars
	Text      *text.Text
	Container *container.Container
}

// Loader produces the dataset to display.
type Loader func() (source.Dataset, error)

// SetupDataRefresh sets up periodic data refresh and returns the update function
func SetupDataRefresh(ctx context.Context, logger *log.Logger, uiParams *UIParams, w Widgets, cfg config.Config, load Loader) (func() error, error) {
	styles, err := cfg.StyleTable()
	if err != nil {
		return nil, err
	}

	var (
		mu       sync.Mutex
		current  source.Dataset
		loaded   bool
		loadedAt time.Time
	)

	refreshView := func() {
		mu.Lock()
		ds, ok, at := current, loaded, loadedAt
		mu.Unlock()
		if !ok {
			return
		}
		if err := UpdateChartTitleFromZoom(w.Container, w.Chart); err != nil {
			logger.Debug("chart title", "err", err)
		}
		UpdateStatusText(w.Text, GenerateStatusInfo(ds, w.Chart, cfg, at))
	}

	updateData := func() error {
		ds, err := load()
		if err != nil {
			logger.Warn("could not load data", "err", err)
			w.Text.Reset()
			w.Text.Write(fmt.Sprintf("Could not load data: %v\n", err), text.WriteCellOpts(cell.FgColor(cell.ColorRed)))
			w.Text.Write("Press q to quit, r to refresh\n")
			return nil
		}
		if ds.Document.XAxis == nil || len(ds.Document.XAxis.Data) == 0 {
			w.Text.Reset()
			w.Text.Write("No data available.\n", text.WriteCellOpts(cell.FgColor(cell.ColorYellow)))
			w.Text.Write("Press q to quit, r to refresh\n")
			return nil
		}

		if err := UpdateWidgets(w.Chart, w.Bars, ds, styles); err != nil {
			return err
		}
		mu.Lock()
		current, loaded, loadedAt = ds, true, time.Now()
		mu.Unlock()
		logger.Debug("data loaded", "source", ds.Path, "kind", ds.Kind, "intervals", len(ds.Intervals))

		refreshView()
		return nil
	}

	// Set up periodic refresh
	currentRefresh := uiParams.Get()
	if currentRefresh <= 0 {
		currentRefresh = cfg.Refresh()
	}
	refreshTicker := time.NewTicker(currentRefresh)
	viewTicker := time.NewTicker(ViewInterval)

	go func() {
		defer refreshTicker.Stop()
		defer viewTicker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-viewTicker.C:
				refreshView()
			case <-refreshTicker.C:
				if err := updateData(); err != nil {
					logger.Error("data update", "err", err)
				}
				if d := uiParams.Get(); d != currentRefresh && d > 0 {
					currentRefresh = d
					refreshTicker.Reset(d)
				}
			}
		}
	}()

	return updateData, nil
}

// CreateKeyboardHandler creates the keyboard event handler for the TUI
func CreateKeyboardHandler(cancel context.CancelFunc, updateData func() error, snapshot func() (string, error), logger *log.Logger) func(*terminalapi.Keyboard) {
	return func(k *terminalapi.Keyboard) {
		switch k.Key {
		case 'q', 'Q':
			cancel()
		case 'r', 'R':
			if err := updateData(); err != nil {
				logger.Error("manual refresh", "err", err)
			}
		case 'p', 'P':
			if snapshot == nil {
				return
			}
			path, err := snapshot()
			if err != nil {
				logger.Error("snapshot", "err", err)
				return
			}
			logger.Info("snapshot saved", "path", path)
		}
	}
}
