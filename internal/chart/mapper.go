package chart

// Mapper converts between data space and screen space. It is a pure
// function of its fields; Model.Mapper returns a snapshot.
type Mapper struct {
	Viewport Viewport
	View     ViewState
	X        Range
	Left     Range
	Right    Range
}

func (m Mapper) yParams(axis Axis) (Range, float64, float64) {
	if axis == Right {
		return m.Right, m.View.RightYScale, m.View.RightYOffset
	}
	return m.Left, m.View.YScale, m.View.YOffset
}

// DataToScreenX maps a data x to a screen x.
func (m Mapper) DataToScreenX(x float64) (float64, error) {
	span := m.X.Span()
	if span == 0 {
		return 0, ErrDegenerateRange
	}
	n := (x - m.X.Min) / span
	raw := m.Viewport.Left + n*m.Viewport.Width
	return raw*m.View.XScale + m.View.XOffset, nil
}

// ScreenToDataX is the exact inverse of DataToScreenX.
func (m Mapper) ScreenToDataX(px float64) (float64, error) {
	span := m.X.Span()
	if span == 0 || m.View.XScale == 0 || m.Viewport.Width == 0 {
		return 0, ErrDegenerateRange
	}
	raw := (px - m.View.XOffset) / m.View.XScale
	n := (raw - m.Viewport.Left) / m.Viewport.Width
	return m.X.Min + n*span, nil
}

// DataToScreenY maps a data y on the given axis to a screen y. Screen y
// grows downwards.
func (m Mapper) DataToScreenY(y float64, axis Axis) (float64, error) {
	r, scale, offset := m.yParams(axis)
	span := r.Span()
	if span == 0 {
		return 0, ErrDegenerateRange
	}
	n := (y - r.Min) / span
	raw := m.Viewport.Bottom() - n*m.Viewport.Height
	return raw*scale + offset, nil
}

// ScreenToDataY is the exact inverse of DataToScreenY.
func (m Mapper) ScreenToDataY(py float64, axis Axis) (float64, error) {
	r, scale, offset := m.yParams(axis)
	span := r.Span()
	if span == 0 || scale == 0 || m.Viewport.Height == 0 {
		return 0, ErrDegenerateRange
	}
	raw := (py - offset) / scale
	n := (m.Viewport.Bottom() - raw) / m.Viewport.Height
	return r.Min + n*span, nil
}

// VisibleX returns the data x window spanned by the viewport edges.
func (m Mapper) VisibleX() (Range, error) {
	lo, err := m.ScreenToDataX(m.Viewport.Left)
	if err != nil {
		return Range{}, err
	}
	hi, err := m.ScreenToDataX(m.Viewport.Right())
	if err != nil {
		return Range{}, err
	}
	return Range{Min: lo, Max: hi}, nil
}

// VisibleY returns the data y window of an axis spanned by the viewport edges.
func (m Mapper) VisibleY(axis Axis) (Range, error) {
	lo, err := m.ScreenToDataY(m.Viewport.Bottom(), axis)
	if err != nil {
		return Range{}, err
	}
	hi, err := m.ScreenToDataY(m.Viewport.Top, axis)
	if err != nil {
		return Range{}, err
	}
	return Range{Min: lo, Max: hi}, nil
}
