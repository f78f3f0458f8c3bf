package widgets

import (
	"image"
	"strings"
	"testing"

	"github.com/mum4k/termdash/keyboard"
	"github.com/mum4k/termdash/mouse"
	"github.com/mum4k/termdash/private/canvas"
	"github.com/mum4k/termdash/terminal/terminalapi"
	"github.com/mum4k/termdash/widgetapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prajwal-Prathiksh/rainchart/internal/analytics"
	"github.com/Prajwal-Prathiksh/rainchart/internal/chart"
)

func ptr(v float64) *float64 { return &v }

func testDocument() chart.Document {
	xs := make([]float64, 11)
	left := make([]float64, 11)
	right := make([]float64, 11)
	for i := range xs {
		xs[i] = float64(i * 10)
		left[i] = 20 + float64(i)/2
		right[i] = float64(10 - i)
	}
	return chart.Document{
		ChartTitle: "Rain Analysis: test",
		XAxis:      &chart.AxisSpec{Label: "Time", Unit: "s", Data: xs},
		LeftYAxis:  &chart.AxisSpec{Label: "Air Temperature", Unit: "°C", Data: left},
		RightYAxis: &chart.AxisSpec{Label: "Wind Speed", Unit: "km/h", Data: right},
		Annotations: []chart.AnnotationSpec{
			{Type: "region", StartX: ptr(20), EndX: ptr(40), Label: "heavy", Color: "rgba(0,0,139,0.5)", Tooltip: "Heavy rain"},
			{Type: "marker", X: ptr(30), Text: "H"},
		},
	}
}

func drawnChart(t *testing.T) (*RainChart, *canvas.Canvas) {
	t.Helper()
	model := chart.NewModel(chart.DefaultConfig())
	require.NoError(t, model.Load(testDocument()))
	rc, err := NewRainChart(model)
	require.NoError(t, err)

	cvs, err := canvas.New(image.Rect(0, 0, 80, 24))
	require.NoError(t, err)
	require.NoError(t, rc.Draw(cvs, &widgetapi.Meta{}))
	return rc, cvs
}

func TestCellToPixel(t *testing.T) {
	t.Parallel()

	plot := image.Rect(7, 1, 73, 21)
	x, y := cellToPixel(image.Point{7, 1}, plot)
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 2.0, y)

	x, y = cellToPixel(image.Point{10, 5}, plot)
	assert.Equal(t, 7.0, x)
	assert.Equal(t, 18.0, y)
	assert.Equal(t, 10, pixelToCell(x, plot))
}

func TestClipSegment(t *testing.T) {
	t.Parallel()

	x0, y0, x1, y1, ok := clipSegment(1, 1, 5, 5, 10, 10)
	require.True(t, ok)
	assert.Equal(t, []float64{1, 1, 5, 5}, []float64{x0, y0, x1, y1})

	x0, y0, x1, y1, ok = clipSegment(-10, 5, 20, 5, 10, 10)
	require.True(t, ok)
	assert.Equal(t, []float64{0, 5, 10, 5}, []float64{x0, y0, x1, y1})

	_, _, _, _, ok = clipSegment(-5, -5, -1, -1, 10, 10)
	assert.False(t, ok)
	_, _, _, _, ok = clipSegment(12, 0, 12, 10, 10, 10)
	assert.False(t, ok)
}

func TestNewRainChartZeroesMargins(t *testing.T) {
	t.Parallel()

	rc, _ := drawnChart(t)
	assert.Equal(t, image.Rect(7, 1, 80-rightGutter, 21), rc.plot)
	vp := rc.model.Viewport()
	assert.Equal(t, chart.Viewport{Width: float64(rc.plot.Dx() * 2), Height: float64(rc.plot.Dy() * 4)}, vp)
	assert.Equal(t, "Rain Analysis: test", rc.Title())
}

func TestDrawShadesRegions(t *testing.T) {
	t.Parallel()

	rc, cvs := drawnChart(t)
	col, ok := rc.column(rc.model.Mapper(), 30)
	require.True(t, ok)

	c, err := cvs.Cell(image.Point{col, rc.plot.Min.Y + 5})
	require.NoError(t, err)
	assert.Equal(t, CellColor(chart.RGBA(0, 0, 139, 0.5), rc.background), c.Opts.BgColor)

	col, ok = rc.column(rc.model.Mapper(), 80)
	require.True(t, ok)
	c, err = cvs.Cell(image.Point{col, rc.plot.Min.Y + 5})
	require.NoError(t, err)
	assert.NotEqual(t, CellColor(chart.RGBA(0, 0, 139, 0.5), rc.background), c.Opts.BgColor)
}

func TestDrawWithoutSeries(t *testing.T) {
	t.Parallel()

	rc, err := NewRainChart(chart.NewModel(chart.DefaultConfig()))
	require.NoError(t, err)
	cvs, err := canvas.New(image.Rect(0, 0, 80, 24))
	require.NoError(t, err)
	require.NoError(t, rc.Draw(cvs, &widgetapi.Meta{}))
	assert.True(t, rc.plot.Empty())
	require.NoError(t, rc.Mouse(&terminalapi.Mouse{Position: image.Point{10, 10}, Button: mouse.ButtonLeft}, &widgetapi.EventMeta{}))
}

func TestMouseHoverAndRegion(t *testing.T) {
	t.Parallel()

	rc, _ := drawnChart(t)
	m := rc.model.Mapper()

	col, _ := rc.column(m, 80)
	require.NoError(t, rc.Mouse(&terminalapi.Mouse{Position: image.Point{col, 10}, Button: mouse.ButtonRelease}, &widgetapi.EventMeta{}))
	assert.True(t, strings.HasPrefix(rc.Status(), "X: "), rc.Status())
	assert.Contains(t, rc.Status(), "Right: ")

	col, _ = rc.column(m, 30)
	require.NoError(t, rc.Mouse(&terminalapi.Mouse{Position: image.Point{col, 10}, Button: mouse.ButtonRelease}, &widgetapi.EventMeta{}))
	assert.Equal(t, "Heavy rain", rc.Status())
}

func TestMousePinWithModifierLatch(t *testing.T) {
	t.Parallel()

	rc, _ := drawnChart(t)
	meta := &widgetapi.EventMeta{}
	col, _ := rc.column(rc.model.Mapper(), 50)
	pos := image.Point{col, 10}

	require.NoError(t, rc.Keyboard(&terminalapi.Keyboard{Key: 'm'}, meta))
	assert.True(t, rc.Modifier())
	require.NoError(t, rc.Mouse(&terminalapi.Mouse{Position: pos, Button: mouse.ButtonLeft}, meta))
	require.NoError(t, rc.Mouse(&terminalapi.Mouse{Position: pos, Button: mouse.ButtonRelease}, meta))

	pins := rc.Pins()
	require.Len(t, pins, 1)
	assert.InDelta(t, 50, pins[0], 1.0)
	assert.Equal(t, chart.DefaultViewState(), rc.View())

	require.NoError(t, rc.Keyboard(&terminalapi.Keyboard{Key: 'c'}, meta))
	assert.Empty(t, rc.Pins())
}

func TestMouseDragPans(t *testing.T) {
	t.Parallel()

	rc, _ := drawnChart(t)
	meta := &widgetapi.EventMeta{}
	require.NoError(t, rc.Mouse(&terminalapi.Mouse{Position: image.Point{20, 10}, Button: mouse.ButtonLeft}, meta))
	require.NoError(t, rc.Mouse(&terminalapi.Mouse{Position: image.Point{25, 11}, Button: mouse.ButtonLeft}, meta))
	require.NoError(t, rc.Mouse(&terminalapi.Mouse{Position: image.Point{25, 11}, Button: mouse.ButtonRelease}, meta))

	v := rc.View()
	assert.Equal(t, 10.0, v.XOffset)
	assert.Equal(t, 4.0, v.YOffset)
	assert.Empty(t, rc.Pins())
}

func TestWheelAndKeys(t *testing.T) {
	t.Parallel()

	rc, _ := drawnChart(t)
	meta := &widgetapi.EventMeta{}
	require.NoError(t, rc.Mouse(&terminalapi.Mouse{Position: image.Point{20, 10}, Button: mouse.ButtonWheelUp}, meta))
	assert.InDelta(t, 1.3, rc.View().YScale, 1e-9)
	assert.Equal(t, 1.0, rc.View().XScale)

	require.NoError(t, rc.Keyboard(&terminalapi.Keyboard{Key: 'm'}, meta))
	require.NoError(t, rc.Keyboard(&terminalapi.Keyboard{Key: '+'}, meta))
	assert.InDelta(t, 1.2, rc.View().XScale, 1e-9)

	require.NoError(t, rc.Keyboard(&terminalapi.Keyboard{Key: keyboard.KeyArrowLeft}, meta))
	assert.Equal(t, rc.panStep, rc.View().XOffset)

	require.NoError(t, rc.Keyboard(&terminalapi.Keyboard{Key: keyboard.KeyEsc}, meta))
	assert.Equal(t, chart.DefaultViewState(), rc.View())
}

func TestLoadKeepsView(t *testing.T) {
	t.Parallel()

	rc, _ := drawnChart(t)
	require.NoError(t, rc.Keyboard(&terminalapi.Keyboard{Key: '+'}, &widgetapi.EventMeta{}))
	before := rc.View()

	require.NoError(t, rc.Load(testDocument()))
	assert.Equal(t, before, rc.View())

	bad := testDocument()
	bad.LeftYAxis.Data = bad.LeftYAxis.Data[:3]
	require.Error(t, rc.Load(bad))
	assert.Equal(t, before, rc.View())
}

func TestIntervalBars(t *testing.T) {
	t.Parallel()

	ib := NewIntervalBars(MaxBars(2))
	ivs := []analytics.Interval{
		{StartX: 0, EndX: 60, Intensity: analytics.Light},
		{StartX: 100, EndX: 190, Intensity: analytics.Moderate},
		{StartX: 300, EndX: 4000, Intensity: analytics.Heavy},
	}
	ib.Update(ivs, analytics.DefaultStyles())

	bars := ib.Bars()
	require.Len(t, bars, 2)
	assert.Equal(t, "M", bars[0].Code)
	assert.Equal(t, "H", bars[1].Code)

	cvs, err := canvas.New(image.Rect(0, 0, 30, 10))
	require.NoError(t, err)
	require.NoError(t, ib.Draw(cvs, &widgetapi.Meta{}))
}

func TestFormatSeconds(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "00:00", formatSeconds(0))
	assert.Equal(t, "01:30", formatSeconds(90))
	assert.Equal(t, "1:01:40", formatSeconds(3700))
}
