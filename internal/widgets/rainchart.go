// Package widgets provides termdash widgets for rain analysis charts.
package widgets

import (
	"fmt"
	"image"
	"math"
	"strings"
	"sync"

	"github.com/mum4k/termdash/cell"
	"github.com/mum4k/termdash/keyboard"
	"github.com/mum4k/termdash/mouse"
	"github.com/mum4k/termdash/private/canvas"
	"github.com/mum4k/termdash/private/canvas/braille"
	"github.com/mum4k/termdash/private/draw"
	"github.com/mum4k/termdash/terminal/terminalapi"
	"github.com/mum4k/termdash/widgetapi"

	"github.com/Prajwal-Prathiksh/rainchart/internal/chart"
	"github.com/Prajwal-Prathiksh/rainchart/internal/interact"
)

const (
	leftGutter  = 7 // y labels plus the axis line
	rightGutter = 7
	topRows     = 1 // title
	bottomRows  = 3 // x axis line, x labels, status
)

// RainChart draws a dual-axis chart model with braille lines, shaded
// regions and pinned markers, and feeds mouse and keyboard input to an
// interaction controller.
//
// Terminal mouse reports carry no modifier keys, so the modifier is a
// latch toggled with 'm'.
type RainChart struct {
	mu    sync.Mutex
	model *chart.Model
	ctrl  *interact.Controller

	plot     image.Rectangle
	pressed  bool
	modifier bool
	status   string

	background chart.Color
	labelColor cell.Color
	pinColor   cell.Color
	trackColor cell.Color
	panStep    float64
	zoom       interact.Config
	listeners  []interact.Listener
}

// RainChartOption is used to configure the RainChart
type RainChartOption interface {
	set(*RainChart)
}

type rainChartOption func(*RainChart)

func (o rainChartOption) set(rc *RainChart) {
	o(rc)
}

// Background sets the color translucent regions are composited over.
func Background(c chart.Color) RainChartOption {
	return rainChartOption(func(rc *RainChart) {
		rc.background = c.Opaque()
	})
}

// LabelColor sets the color of axis labels.
func LabelColor(c cell.Color) RainChartOption {
	return rainChartOption(func(rc *RainChart) {
		rc.labelColor = c
	})
}

// PinColor sets the color of pinned marker lines.
func PinColor(c cell.Color) RainChartOption {
	return rainChartOption(func(rc *RainChart) {
		rc.pinColor = c
	})
}

// TrackerColor sets the column highlight under the pointer.
func TrackerColor(c cell.Color) RainChartOption {
	return rainChartOption(func(rc *RainChart) {
		rc.trackColor = c
	})
}

// PanStep sets the arrow key pan distance in braille pixels.
func PanStep(px float64) RainChartOption {
	return rainChartOption(func(rc *RainChart) {
		rc.panStep = px
	})
}

// Zoom sets the zoom policy.
func Zoom(cfg interact.Config) RainChartOption {
	return rainChartOption(func(rc *RainChart) {
		rc.zoom = cfg
	})
}

// OnEvent registers a listener for controller events. Listeners run with
// the widget locked and must not call back into it.
func OnEvent(l interact.Listener) RainChartOption {
	return rainChartOption(func(rc *RainChart) {
		rc.listeners = append(rc.listeners, l)
	})
}

// NewRainChart wraps model in a widget. The model's margins are zeroed:
// the widget carves its own gutters and sizes the model to the plot
// area in braille pixels.
func NewRainChart(model *chart.Model, opts ...RainChartOption) (*RainChart, error) {
	rc := &RainChart{
		model:      model,
		background: chart.RGBA(0, 0, 0, 1),
		labelColor: cell.ColorCyan,
		pinColor:   cell.ColorYellow,
		trackColor: cell.ColorNumber(238),
		panStep:    8,
		zoom:       interact.DefaultConfig(),
	}
	for _, opt := range opts {
		opt.set(rc)
	}
	if err := rc.zoom.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(rc.panStep) || math.IsInf(rc.panStep, 0) || rc.panStep <= 0 {
		return nil, fmt.Errorf("widgets: pan step must be finite and positive, got %g", rc.panStep)
	}

	cfg := model.Config()
	cfg.Margins = chart.Margins{}
	cfg.NarrowRightMargin = 0
	if err := model.Reconfigure(cfg); err != nil {
		return nil, err
	}

	rc.ctrl = interact.New(model, rc.zoom)
	rc.ctrl.Subscribe(rc.onEvent)
	return rc, nil
}

func (rc *RainChart) onEvent(e interact.Event) {
	switch e := e.(type) {
	case interact.PointHovered:
		rc.status = e.Info
	case interact.RegionHovered:
		rc.status = e.Region.Tooltip
		if rc.status == "" {
			rc.status = e.Region.Label
		}
	case interact.PointClicked:
		rc.status = fmt.Sprintf("Clicked X: %.2f Y: %.2f", e.X, e.Y)
	}
	for _, l := range rc.listeners {
		l(e)
	}
}

// Load replaces the chart data. The current view and pinned markers are
// kept so periodic reloads do not undo the user's zoom.
func (rc *RainChart) Load(doc chart.Document) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	view := rc.model.View()
	if err := rc.model.Load(doc); err != nil {
		return err
	}
	return rc.model.SetView(view)
}

// Title returns the loaded chart title.
func (rc *RainChart) Title() string {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.model.Config().Title
}

// Status returns the text of the widget's status line.
func (rc *RainChart) Status() string {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.status
}

// Modifier reports whether the modifier latch is on.
func (rc *RainChart) Modifier() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.modifier
}

// Pins returns the pinned marker positions in data units.
func (rc *RainChart) Pins() []float64 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.ctrl.PinnedMarkers()
}

// View returns the model's current view state.
func (rc *RainChart) View() chart.ViewState {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.model.View()
}

// WithModel calls fn with the model and the pinned markers while holding
// the widget lock. fn must not retain the model or call back into rc.
func (rc *RainChart) WithModel(fn func(m *chart.Model, pins []float64) error) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return fn(rc.model, rc.ctrl.PinnedMarkers())
}

// Visible returns the data x window currently on screen.
func (rc *RainChart) Visible() (chart.Range, error) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.model.Mapper().VisibleX()
}

func plotArea(area image.Rectangle, right bool) image.Rectangle {
	rg := 1
	if right {
		rg = rightGutter
	}
	return image.Rect(
		area.Min.X+leftGutter,
		area.Min.Y+topRows,
		area.Max.X-rg,
		area.Max.Y-bottomRows,
	)
}

// cellToPixel maps a terminal cell to the braille pixel at its center.
func cellToPixel(p image.Point, plot image.Rectangle) (float64, float64) {
	return float64((p.X-plot.Min.X)*2 + 1), float64((p.Y-plot.Min.Y)*4 + 2)
}

// pixelToCell maps a braille pixel x to its terminal column.
func pixelToCell(px float64, plot image.Rectangle) int {
	return plot.Min.X + int(math.Floor(px/2))
}

// Draw implements widgetapi.Widget.Draw
func (rc *RainChart) Draw(cvs *canvas.Canvas, meta *widgetapi.Meta) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	area := cvs.Area()
	if area.Dx() < leftGutter+rightGutter+5 || area.Dy() < topRows+bottomRows+3 {
		return draw.ResizeNeeded(cvs)
	}

	cvs.Clear()

	if len(rc.model.Series()) == 0 {
		rc.plot = image.Rectangle{}
		return draw.Text(cvs, "No data", image.Point{1, 1})
	}

	rc.plot = plotArea(area, rc.model.RightAxisEnabled())
	rc.model.SetSize(float64(rc.plot.Dx()*2), float64(rc.plot.Dy()*4))
	m := rc.model.Mapper()

	rc.drawTitle(cvs, area)
	if err := rc.drawAxes(cvs); err != nil {
		return err
	}
	rc.drawYLabels(cvs, m, chart.Left)
	if rc.model.RightAxisEnabled() {
		rc.drawYLabels(cvs, m, chart.Right)
	}
	rc.drawXLabels(cvs, m)

	bc, err := braille.New(rc.plot)
	if err != nil {
		return err
	}
	for _, s := range rc.model.Series() {
		if err := rc.drawSeries(bc, m, s); err != nil {
			return err
		}
	}
	if err := bc.CopyTo(cvs); err != nil {
		return err
	}

	rc.drawRegions(cvs, m)
	rc.drawTracker(cvs, m)
	rc.drawPins(cvs, m)
	rc.drawMarkers(cvs, m)
	rc.drawStatus(cvs, area)
	return nil
}

func text(cvs *canvas.Canvas, s string, p image.Point, opts ...cell.Option) {
	ar := cvs.Area()
	if s == "" || p.Y < ar.Min.Y || p.Y >= ar.Max.Y || p.X >= ar.Max.X {
		return
	}
	if p.X < ar.Min.X {
		p.X = ar.Min.X
	}
	// Trim mode never reports overrun.
	_ = draw.Text(cvs, s, p, draw.TextCellOpts(opts...), draw.TextOverrunMode(draw.OverrunModeTrim))
}

func (rc *RainChart) drawTitle(cvs *canvas.Canvas, area image.Rectangle) {
	cfg := rc.model.Config()
	title := cfg.Title
	if title == "" {
		title = "Rain Analysis"
	}
	text(cvs, title, image.Point{area.Min.X + 1, area.Min.Y}, cell.FgColor(cell.ColorWhite), cell.Bold())

	x := area.Min.X + len(title) + 3
	if l := cfg.LeftAxis.String(); l != "" {
		text(cvs, "◀ "+l, image.Point{x, area.Min.Y}, cell.FgColor(CellColor(cfg.LeftColor, rc.background)))
		x += len([]rune(l)) + 4
	}
	if rc.model.RightAxisEnabled() {
		if r := cfg.RightAxis.String(); r != "" {
			text(cvs, r+" ▶", image.Point{x, area.Min.Y}, cell.FgColor(CellColor(cfg.RightColor, rc.background)))
		}
	}
}

func (rc *RainChart) drawAxes(cvs *canvas.Canvas) error {
	plot := rc.plot
	lines := []draw.HVLine{
		{
			Start: image.Point{plot.Min.X - 1, plot.Min.Y},
			End:   image.Point{plot.Min.X - 1, plot.Max.Y},
		},
		{
			Start: image.Point{plot.Min.X - 1, plot.Max.Y},
			End:   image.Point{plot.Max.X - 1, plot.Max.Y},
		},
	}
	if rc.model.RightAxisEnabled() {
		lines[1].End.X = plot.Max.X
		lines = append(lines, draw.HVLine{
			Start: image.Point{plot.Max.X, plot.Min.Y},
			End:   image.Point{plot.Max.X, plot.Max.Y},
		})
	}
	return draw.HVLines(cvs, lines)
}

func tick(v, span float64) string {
	switch {
	case math.Abs(span) >= 100:
		return fmt.Sprintf("%.0f", v)
	case math.Abs(span) >= 1:
		return fmt.Sprintf("%.1f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func (rc *RainChart) drawYLabels(cvs *canvas.Canvas, m chart.Mapper, axis chart.Axis) {
	plot := rc.plot
	vis, err := m.VisibleY(axis)
	if err != nil {
		return
	}
	color := rc.labelColor
	if axis == chart.Right {
		color = CellColor(rc.model.Config().RightColor, rc.background)
	}

	const numLabels = 4
	height := plot.Dy()
	for i := 0; i < numLabels; i++ {
		row := plot.Max.Y - 1 - i*(height-1)/(numLabels-1)
		_, py := cellToPixel(image.Point{plot.Min.X, row}, plot)
		v, err := m.ScreenToDataY(py, axis)
		if err != nil {
			continue
		}
		label := tick(v, vis.Span())
		if len(label) > leftGutter-1 {
			label = label[:leftGutter-1]
		}
		x := plot.Min.X - len(label) - 1
		if axis == chart.Right {
			x = plot.Max.X + 1
		}
		text(cvs, label, image.Point{x, row}, cell.FgColor(color))
	}
}

func (rc *RainChart) drawXLabels(cvs *canvas.Canvas, m chart.Mapper) {
	plot := rc.plot
	vis, err := m.VisibleX()
	if err != nil {
		return
	}
	width := plot.Dx()
	numLabels := 5
	if width < 40 {
		numLabels = 3
	}
	next := plot.Min.X - leftGutter
	for i := 0; i < numLabels; i++ {
		col := plot.Min.X + i*(width-1)/(numLabels-1)
		px, _ := cellToPixel(image.Point{col, plot.Min.Y}, plot)
		v, err := m.ScreenToDataX(px)
		if err != nil {
			continue
		}
		label := tick(v, vis.Span())
		x := col - len(label)/2
		if x < next {
			continue
		}
		text(cvs, label, image.Point{x, plot.Max.Y + 1}, cell.FgColor(rc.labelColor))
		next = x + len(label) + 1
	}
}

// drawSeries draws a polyline clipped to the braille canvas.
func (rc *RainChart) drawSeries(bc *braille.Canvas, m chart.Mapper, s chart.Series) error {
	ar := bc.Area()
	maxX, maxY := float64(ar.Dx()-1), float64(ar.Dy()-1)
	color := CellColor(s.Color(), rc.background)

	var prev *[2]float64
	for i := 0; i < s.Len(); i++ {
		px, err := m.DataToScreenX(s.X(i))
		if err != nil {
			return nil
		}
		py, err := m.DataToScreenY(s.Y(i), s.Axis())
		if err != nil {
			return nil
		}
		cur := [2]float64{px, py}
		if prev == nil {
			if px >= 0 && px <= maxX && py >= 0 && py <= maxY {
				if err := bc.SetPixel(pixel(px, py), cell.FgColor(color)); err != nil {
					return err
				}
			}
			prev = &cur
			continue
		}
		x0, y0, x1, y1, ok := clipSegment(prev[0], prev[1], cur[0], cur[1], maxX, maxY)
		prev = &cur
		if !ok {
			continue
		}
		if err := draw.BrailleLine(bc, pixel(x0, y0), pixel(x1, y1), draw.BrailleLineCellOpts(cell.FgColor(color))); err != nil {
			return err
		}
	}
	return nil
}

func pixel(x, y float64) image.Point {
	return image.Point{int(math.Round(x)), int(math.Round(y))}
}

// clipSegment clips a segment to [0, maxX] x [0, maxY] (Liang-Barsky).
func clipSegment(x0, y0, x1, y1, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := x1-x0, y1-y0
	edges := [4][2]float64{{-dx, x0}, {dx, maxX - x0}, {-dy, y0}, {dy, maxY - y0}}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// drawRegions shades every plot column whose center falls in a region.
func (rc *RainChart) drawRegions(cvs *canvas.Canvas, m chart.Mapper) {
	plot := rc.plot
	for col := plot.Min.X; col < plot.Max.X; col++ {
		px, _ := cellToPixel(image.Point{col, plot.Min.Y}, plot)
		x, err := m.ScreenToDataX(px)
		if err != nil {
			return
		}
		r, ok := rc.model.RegionAt(x)
		if !ok {
			continue
		}
		bg := cell.BgColor(CellColor(r.Color, rc.background))
		for row := plot.Min.Y; row < plot.Max.Y; row++ {
			cvs.SetCellOpts(image.Point{col, row}, bg)
		}
	}
}

func (rc *RainChart) column(m chart.Mapper, x float64) (int, bool) {
	px, err := m.DataToScreenX(x)
	if err != nil {
		return 0, false
	}
	col := pixelToCell(px, rc.plot)
	if px == float64(rc.plot.Dx()*2) {
		col--
	}
	return col, col >= rc.plot.Min.X && col < rc.plot.Max.X
}

func (rc *RainChart) drawTracker(cvs *canvas.Canvas, m chart.Mapper) {
	x, ok := rc.ctrl.Tracker()
	if !ok {
		return
	}
	col, ok := rc.column(m, x)
	if !ok {
		return
	}
	for row := rc.plot.Min.Y; row < rc.plot.Max.Y; row++ {
		cvs.SetCellOpts(image.Point{col, row}, cell.BgColor(rc.trackColor))
	}
}

func (rc *RainChart) drawPins(cvs *canvas.Canvas, m chart.Mapper) {
	for _, x := range rc.ctrl.PinnedMarkers() {
		col, ok := rc.column(m, x)
		if !ok {
			continue
		}
		for row := rc.plot.Min.Y; row < rc.plot.Max.Y; row++ {
			cvs.SetCell(image.Point{col, row}, '│', cell.FgColor(rc.pinColor))
		}
		label := tick(x, 100)
		text(cvs, label, image.Point{col + 1, rc.plot.Max.Y - 1}, cell.FgColor(rc.pinColor))
	}
}

func (rc *RainChart) drawMarkers(cvs *canvas.Canvas, m chart.Mapper) {
	for _, a := range rc.model.Annotations() {
		mk, ok := a.(chart.TextMarker)
		if !ok {
			continue
		}
		col, ok := rc.column(m, mk.X)
		if !ok {
			continue
		}
		x := col - len([]rune(mk.Text))/2
		if x < rc.plot.Min.X {
			x = rc.plot.Min.X
		}
		text(cvs, mk.Text, image.Point{x, rc.plot.Min.Y},
			cell.FgColor(cell.ColorWhite), cell.BgColor(CellColor(mk.Color, rc.background)), cell.Bold())
	}
}

func (rc *RainChart) drawStatus(cvs *canvas.Canvas, area image.Rectangle) {
	var parts []string
	if rc.modifier {
		parts = append(parts, "[MOD]")
	}
	if n := len(rc.ctrl.PinnedMarkers()); n > 0 {
		parts = append(parts, fmt.Sprintf("pins: %d", n))
	}
	if rc.status != "" {
		parts = append(parts, rc.status)
	}
	text(cvs, strings.Join(parts, " | "), image.Point{area.Min.X + 1, area.Max.Y - 1}, cell.FgColor(cell.ColorWhite))
}

func (rc *RainChart) pointer(p image.Point) interact.Pointer {
	x, y := cellToPixel(p, rc.plot)
	return interact.Pointer{X: x, Y: y, Modifier: rc.modifier}
}

// Keyboard implements widgetapi.Widget.Keyboard
func (rc *RainChart) Keyboard(k *terminalapi.Keyboard, meta *widgetapi.EventMeta) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	switch k.Key {
	case 'm', 'M':
		rc.modifier = !rc.modifier
	case 'c', 'C':
		rc.ctrl.ClearFixedLines()
	case 'f', 'F':
		rc.model.FitToView()
	case keyboard.KeyEsc:
		rc.model.ResetView()
	case '+', '=', 'i', 'I':
		return rc.ctrl.Wheel(1, rc.modifier)
	case '-', 'o', 'O':
		return rc.ctrl.Wheel(-1, rc.modifier)
	case keyboard.KeyArrowLeft:
		return rc.ctrl.Pan(rc.panStep, 0)
	case keyboard.KeyArrowRight:
		return rc.ctrl.Pan(-rc.panStep, 0)
	case keyboard.KeyArrowUp:
		return rc.ctrl.Pan(0, rc.panStep)
	case keyboard.KeyArrowDown:
		return rc.ctrl.Pan(0, -rc.panStep)
	}
	return nil
}

// Mouse implements widgetapi.Widget.Mouse
func (rc *RainChart) Mouse(m *terminalapi.Mouse, meta *widgetapi.EventMeta) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.plot.Empty() {
		return nil
	}
	p := rc.pointer(m.Position)

	switch m.Button {
	case mouse.ButtonLeft:
		if rc.pressed {
			rc.ctrl.PointerMove(p)
			return nil
		}
		if !m.Position.In(rc.plot) {
			return nil
		}
		rc.pressed = true
		rc.ctrl.PointerDown(p)
	case mouse.ButtonRelease:
		if rc.pressed {
			rc.pressed = false
			rc.ctrl.PointerUp(p)
			return nil
		}
		if m.Position.In(rc.plot) {
			rc.ctrl.PointerMove(p)
		} else {
			rc.ctrl.Leave()
		}
	case mouse.ButtonRight:
		rc.ctrl.ClearFixedLines()
	case mouse.ButtonWheelUp:
		return rc.ctrl.Wheel(1, rc.modifier)
	case mouse.ButtonWheelDown:
		return rc.ctrl.Wheel(-1, rc.modifier)
	}
	return nil
}

// Options implements widgetapi.Widget.Options
func (rc *RainChart) Options() widgetapi.Options {
	return widgetapi.Options{
		WantKeyboard: widgetapi.KeyScopeFocused,
		WantMouse:    widgetapi.MouseScopeWidget,
		MinimumSize:  image.Point{leftGutter + rightGutter + 5, topRows + bottomRows + 3},
	}
}
