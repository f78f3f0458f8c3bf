package tui

import (
	"sync"
	"time"

	"github.com/Prajwal-Prathiksh/rainchart/internal/analytics"
	"github.com/Prajwal-Prathiksh/rainchart/internal/chart"
	"github.com/Prajwal-Prathiksh/rainchart/internal/timeline"
)

// UIParams holds the real-time adjustable parameters
type UIParams struct {
	Refresh time.Duration
	mu      sync.RWMutex
}

// Get returns thread-safe copies of the parameters
func (p *UIParams) Get() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Refresh
}

// Set changes the refresh period.
func (p *UIParams) Set(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Refresh = d
}

// StatusInfo holds information needed for status display
type StatusInfo struct {
	Title     string
	Source    string
	Kind      string
	Metadata  *timeline.Metadata
	Summary   analytics.Summary
	Intervals []analytics.Interval
	Styles    analytics.StyleTable

	MinDuration float64
	Visible     chart.Range
	HasVisible  bool
	Pins        []float64
	Hover       string

	ConfigStr string
	LoadedAt  time.Time
}
