package widgets

import (
	"fmt"
	"image"
	"sync"

	"github.com/mum4k/termdash/cell"
	"github.com/mum4k/termdash/private/canvas"
	"github.com/mum4k/termdash/private/draw"
	"github.com/mum4k/termdash/terminal/terminalapi"
	"github.com/mum4k/termdash/widgetapi"

	"github.com/Prajwal-Prathiksh/rainchart/internal/analytics"
	"github.com/Prajwal-Prathiksh/rainchart/internal/chart"
)

// Bar is one rain interval as drawn by IntervalBars.
type Bar struct {
	Interval analytics.Interval
	Color    cell.Color
	Code     string
}

// IntervalBars displays rain intervals as bars whose height is the
// interval duration, with MM:SS above and the intensity code below.
type IntervalBars struct {
	mu    sync.Mutex
	bars  []Bar
	title string

	background chart.Color
	textColor  cell.Color
	maxBars    int
}

// IntervalBarsOption is used to configure IntervalBars
type IntervalBarsOption interface {
	setBars(*IntervalBars)
}

type intervalBarsOption func(*IntervalBars)

func (o intervalBarsOption) setBars(ib *IntervalBars) {
	o(ib)
}

// NewIntervalBars creates an interval bar chart widget.
func NewIntervalBars(opts ...IntervalBarsOption) *IntervalBars {
	ib := &IntervalBars{
		title:      "Rain intervals",
		background: chart.RGBA(0, 0, 0, 1),
		textColor:  cell.ColorWhite,
		maxBars:    12,
	}
	for _, opt := range opts {
		opt.setBars(ib)
	}
	return ib
}

// BarsTitle sets the caption drawn when there are no intervals.
func BarsTitle(title string) IntervalBarsOption {
	return intervalBarsOption(func(ib *IntervalBars) {
		ib.title = title
	})
}

// BarsTextColor sets the label color.
func BarsTextColor(c cell.Color) IntervalBarsOption {
	return intervalBarsOption(func(ib *IntervalBars) {
		ib.textColor = c
	})
}

// MaxBars caps how many of the most recent intervals are drawn.
func MaxBars(n int) IntervalBarsOption {
	return intervalBarsOption(func(ib *IntervalBars) {
		if n > 0 {
			ib.maxBars = n
		}
	})
}

// Update replaces the intervals. Bars take the opaque region color of
// their intensity from styles.
func (ib *IntervalBars) Update(intervals []analytics.Interval, styles analytics.StyleTable) {
	bars := make([]Bar, 0, len(intervals))
	for _, iv := range intervals {
		st := styles.Lookup(iv.Intensity)
		bars = append(bars, Bar{
			Interval: iv,
			Color:    CellColor(st.Region.Opaque(), ib.background),
			Code:     st.Code,
		})
	}
	if len(bars) > ib.maxBars {
		bars = bars[len(bars)-ib.maxBars:]
	}

	ib.mu.Lock()
	defer ib.mu.Unlock()
	ib.bars = bars
}

// Bars returns the bars currently drawn.
func (ib *IntervalBars) Bars() []Bar {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	return append([]Bar(nil), ib.bars...)
}

// formatSeconds formats a duration in seconds as MM:SS, or H:MM:SS from
// an hour up.
func formatSeconds(s float64) string {
	if s <= 0 {
		return "00:00"
	}
	total := int(s + 0.5)
	h, m, sec := total/3600, total/60%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%02d:%02d", m, sec)
}

// Draw implements widgetapi.Widget.Draw
func (ib *IntervalBars) Draw(cvs *canvas.Canvas, meta *widgetapi.Meta) error {
	ib.mu.Lock()
	defer ib.mu.Unlock()

	area := cvs.Area()
	if area.Dx() < 10 || area.Dy() < 5 {
		return draw.ResizeNeeded(cvs)
	}

	cvs.Clear()

	if len(ib.bars) == 0 {
		text(cvs, ib.title+": none", image.Point{1, 1}, cell.FgColor(ib.textColor))
		return nil
	}

	// One row above for durations, one below for codes.
	barArea := image.Rect(area.Min.X, area.Min.Y+1, area.Max.X, area.Max.Y-1)
	if barArea.Dy() < 1 {
		return draw.ResizeNeeded(cvs)
	}

	n := len(ib.bars)
	spacing := 1
	barWidth := (barArea.Dx() - spacing*(n-1)) / n
	if barWidth < 1 {
		barWidth = 1
		spacing = 0
	}

	longest := 1.0
	for _, b := range ib.bars {
		longest = max(longest, b.Interval.Duration())
	}

	for i, b := range ib.bars {
		barX := barArea.Min.X + i*(barWidth+spacing)
		if barX >= barArea.Max.X {
			break
		}
		height := int(float64(barArea.Dy()) * b.Interval.Duration() / longest)
		if height < 1 {
			height = 1
		}
		top := barArea.Max.Y - height
		for y := top; y < barArea.Max.Y; y++ {
			for x := barX; x < barX+barWidth && x < barArea.Max.X; x++ {
				cvs.SetCell(image.Point{x, y}, '█', cell.FgColor(b.Color))
			}
		}

		center := barX + barWidth/2
		label := formatSeconds(b.Interval.Duration())
		if lx := center - len(label)/2; lx >= area.Min.X && lx+len(label) <= area.Max.X {
			ly := max(top-1, area.Min.Y)
			draw.Text(cvs, label, image.Point{lx, ly}, draw.TextCellOpts(cell.FgColor(ib.textColor)))
		}
		if lx := center - len(b.Code)/2; lx >= area.Min.X && lx+len(b.Code) <= area.Max.X {
			draw.Text(cvs, b.Code, image.Point{lx, area.Max.Y - 1}, draw.TextCellOpts(cell.FgColor(ib.textColor)))
		}
	}
	return nil
}

// Keyboard implements widgetapi.Widget.Keyboard
func (ib *IntervalBars) Keyboard(k *terminalapi.Keyboard, meta *widgetapi.EventMeta) error {
	return nil
}

// Mouse implements widgetapi.Widget.Mouse
func (ib *IntervalBars) Mouse(m *terminalapi.Mouse, meta *widgetapi.EventMeta) error {
	return nil
}

// Options implements widgetapi.Widget.Options
func (ib *IntervalBars) Options() widgetapi.Options {
	return widgetapi.Options{
		WantKeyboard: widgetapi.KeyScopeNone,
		WantMouse:    widgetapi.MouseScopeNone,
		MinimumSize:  image.Point{20, 6},
	}
}
