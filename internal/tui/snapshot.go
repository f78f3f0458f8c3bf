package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Prajwal-Prathiksh/rainchart/internal/chart"
	"github.com/Prajwal-Prathiksh/rainchart/internal/render"
	"github.com/Prajwal-Prathiksh/rainchart/internal/widgets"
)

// SnapshotPath returns the PNG path for a snapshot taken at now.
func SnapshotPath(dir string, now time.Time) string {
	return filepath.Join(dir, "rainchart-"+now.Format("20060102-150405")+".png")
}

// ExportSnapshot renders the visible window of the chart, with its pinned
// markers, to a PNG file at path.
func ExportSnapshot(chartWidget *widgets.RainChart, path string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	return chartWidget.WithModel(func(m *chart.Model, pins []float64) error {
		return render.PNG(f, m, render.Options{Pins: pins})
	})
}
