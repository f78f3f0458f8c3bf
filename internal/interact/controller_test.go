package interact_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prajwal-Prathiksh/rainchart/internal/chart"
	"github.com/Prajwal-Prathiksh/rainchart/internal/interact"
)

func ptr(v float64) *float64 { return &v }

type recorder struct {
	events []interact.Event
}

func (r *recorder) listen(e interact.Event) { r.events = append(r.events, e) }

func setup(t *testing.T) (*chart.Model, *interact.Controller, *recorder) {
	t.Helper()
	xs := make([]float64, 11)
	ys := make([]float64, 11)
	for i := range xs {
		xs[i] = float64(i * 10)
		ys[i] = float64(i)
	}
	m := chart.NewModel(chart.DefaultConfig())
	require.NoError(t, m.Load(chart.Document{
		XAxis:     &chart.AxisSpec{Data: xs},
		LeftYAxis: &chart.AxisSpec{Data: ys},
		Annotations: []chart.AnnotationSpec{
			{Type: "region", StartX: ptr(20), EndX: ptr(40), Label: "heavy"},
		},
	}))
	c := interact.New(m, interact.DefaultConfig())
	rec := &recorder{}
	c.Subscribe(rec.listen)
	return m, c, rec
}

func screenX(t *testing.T, m *chart.Model, x float64) float64 {
	t.Helper()
	px, err := m.Mapper().DataToScreenX(x)
	require.NoError(t, err)
	return px
}

func midY(m *chart.Model) float64 {
	vp := m.Viewport()
	return vp.Top + vp.Height/2
}

func TestWheelZoomsYOnly(t *testing.T) {
	t.Parallel()

	m, c, _ := setup(t)
	c.Wheel(1, false)
	c.Wheel(1, false)

	v := m.View()
	assert.InDelta(t, 1.69, v.YScale, 1e-9)
	assert.InDelta(t, 1.69, v.RightYScale, 1e-9)
	assert.Equal(t, 1.0, v.XScale)

	c.Wheel(-1, false)
	assert.InDelta(t, 1.183, m.View().YScale, 1e-9)
}

func TestWheelWithModifierZoomsBothAxes(t *testing.T) {
	t.Parallel()

	m, c, _ := setup(t)
	c.Wheel(1, true)
	v := m.View()
	assert.InDelta(t, 1.2, v.XScale, 1e-9)
	assert.InDelta(t, 1.2, v.YScale, 1e-9)

	c.Wheel(-1, true)
	assert.InDelta(t, 0.96, m.View().XScale, 1e-9)
}

func TestWheelClampsScale(t *testing.T) {
	t.Parallel()

	m, c, _ := setup(t)
	c.Wheel(50, true)
	assert.Equal(t, 10.0, m.View().XScale)
	assert.Equal(t, 10.0, m.View().YScale)

	c.Wheel(-50, true)
	assert.Equal(t, 0.1, m.View().XScale)
	assert.Equal(t, 0.1, m.View().YScale)
}

func TestDragPans(t *testing.T) {
	t.Parallel()

	m, c, rec := setup(t)
	c.PointerDown(interact.Pointer{X: 100, Y: 300})
	assert.True(t, c.Dragging())
	c.PointerMove(interact.Pointer{X: 130, Y: 310})
	c.PointerMove(interact.Pointer{X: 150, Y: 320})
	c.PointerUp(interact.Pointer{X: 150, Y: 320})

	v := m.View()
	assert.Equal(t, 50.0, v.XOffset)
	assert.Equal(t, 20.0, v.YOffset)
	assert.Equal(t, 20.0, v.RightYOffset)
	assert.False(t, c.Dragging())
	assert.Empty(t, rec.events)
}

func TestClickWithoutMovement(t *testing.T) {
	t.Parallel()

	m, c, rec := setup(t)
	px := screenX(t, m, 55)
	c.PointerDown(interact.Pointer{X: px, Y: midY(m)})
	c.PointerUp(interact.Pointer{X: px, Y: midY(m)})

	require.Len(t, rec.events, 1)
	click, ok := rec.events[0].(interact.PointClicked)
	require.True(t, ok)
	assert.InDelta(t, 55, click.X, 1e-9)
	assert.InDelta(t, 5.5, click.Y, 1e-9)
	assert.Empty(t, c.PinnedMarkers())
}

func TestModifierClickPinsMarker(t *testing.T) {
	t.Parallel()

	m, c, rec := setup(t)
	c.PointerDown(interact.Pointer{X: screenX(t, m, 30), Y: midY(m), Modifier: true})
	c.PointerDown(interact.Pointer{X: screenX(t, m, 70), Y: midY(m), Modifier: true})

	assert.False(t, c.Dragging())
	pins := c.PinnedMarkers()
	require.Len(t, pins, 2)
	assert.InDelta(t, 30, pins[0], 1e-9)
	assert.InDelta(t, 70, pins[1], 1e-9)
	require.Len(t, rec.events, 2)
	assert.IsType(t, interact.PointClicked{}, rec.events[0])

	pins[0] = -1
	assert.InDelta(t, 30, c.PinnedMarkers()[0], 1e-9)

	c.ClearFixedLines()
	assert.Empty(t, c.PinnedMarkers())
}

func TestPinnedMarkersSurviveViewChanges(t *testing.T) {
	t.Parallel()

	m, c, _ := setup(t)
	c.PointerDown(interact.Pointer{X: screenX(t, m, 30), Y: midY(m), Modifier: true})
	require.NoError(t, c.Wheel(3, true))
	require.NoError(t, c.Pan(40, 0))
	m.ResetView()

	require.Len(t, c.PinnedMarkers(), 1)
	assert.InDelta(t, 30, c.PinnedMarkers()[0], 1e-9)
}

func TestHoverEmitsOneEventPerMove(t *testing.T) {
	t.Parallel()

	m, c, rec := setup(t)
	y := midY(m)

	c.PointerMove(interact.Pointer{X: screenX(t, m, 10), Y: y})
	c.PointerMove(interact.Pointer{X: screenX(t, m, 25), Y: y})
	c.PointerMove(interact.Pointer{X: screenX(t, m, 35), Y: y})
	c.PointerMove(interact.Pointer{X: screenX(t, m, 60), Y: y})
	c.PointerMove(interact.Pointer{X: screenX(t, m, 30), Y: y})

	require.Len(t, rec.events, 5)
	hover, ok := rec.events[0].(interact.PointHovered)
	require.True(t, ok)
	assert.Equal(t, "X: 10.00 | Left: 1.00", hover.Info)

	region, ok := rec.events[1].(interact.RegionHovered)
	require.True(t, ok)
	assert.Equal(t, "heavy", region.Region.Label)

	assert.IsType(t, interact.PointHovered{}, rec.events[2])
	assert.IsType(t, interact.PointHovered{}, rec.events[3])
	assert.IsType(t, interact.RegionHovered{}, rec.events[4])

	x, ok := c.Tracker()
	require.True(t, ok)
	assert.InDelta(t, 30, x, 1e-9)
}

func TestHoverOutsideViewportClearsTracker(t *testing.T) {
	t.Parallel()

	m, c, rec := setup(t)
	c.PointerMove(interact.Pointer{X: screenX(t, m, 50), Y: midY(m)})
	_, ok := c.Tracker()
	require.True(t, ok)

	c.PointerMove(interact.Pointer{X: 5, Y: 5})
	_, ok = c.Tracker()
	assert.False(t, ok)
	assert.Len(t, rec.events, 1)

	c.PointerMove(interact.Pointer{X: screenX(t, m, 50), Y: midY(m)})
	c.Leave()
	_, ok = c.Tracker()
	assert.False(t, ok)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, interact.DefaultConfig().Validate())

	cfg := interact.DefaultConfig()
	cfg.ZoomOut = 0
	assert.Error(t, cfg.Validate())

	cfg = interact.DefaultConfig()
	cfg.MinScale, cfg.MaxScale = 5, 1
	assert.Error(t, cfg.Validate())
}

func TestPanRejectsNonFiniteDeltas(t *testing.T) {
	t.Parallel()

	m, c, _ := setup(t)
	require.NoError(t, c.Pan(5, -3))
	before := m.View()

	require.Error(t, c.Pan(math.NaN(), 0))
	require.Error(t, c.Pan(0, math.Inf(1)))
	assert.Equal(t, before, m.View())

	// A drag through a non-finite position leaves the view alone too.
	y := midY(m)
	c.PointerDown(interact.Pointer{X: screenX(t, m, 50), Y: y})
	c.PointerMove(interact.Pointer{X: math.NaN(), Y: y})
	assert.Equal(t, before, m.View())
	c.PointerMove(interact.Pointer{X: screenX(t, m, 50) + 10, Y: y})
	assert.Equal(t, before.XOffset+10, m.View().XOffset)
	require.NoError(t, m.View().Validate())
}
