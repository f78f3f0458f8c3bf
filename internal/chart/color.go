package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB color with a fractional alpha channel.
type Color struct {
	R, G, B uint8
	A       float64
}

// RGBA builds a Color; alpha is clamped to [0, 1].
func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: clamp01(a)}
}

var namedColors = map[string]Color{
	"black":       {0, 0, 0, 1},
	"white":       {255, 255, 255, 1},
	"red":         {255, 0, 0, 1},
	"green":       {0, 128, 0, 1},
	"blue":        {0, 0, 255, 1},
	"orange":      {255, 165, 0, 1},
	"yellow":      {255, 255, 0, 1},
	"gray":        {128, 128, 128, 1},
	"grey":        {128, 128, 128, 1},
	"lightblue":   {173, 216, 230, 1},
	"skyblue":     {135, 206, 235, 1},
	"dodgerblue":  {30, 144, 255, 1},
	"darkblue":    {0, 0, 139, 1},
	"transparent": {0, 0, 0, 0},
}

// ParseColor accepts #RGB, #RRGGBB, #RRGGBBAA, rgb(r,g,b), rgba(r,g,b,a)
// and a handful of CSS color names.
func ParseColor(s string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[v]; ok {
		return c, nil
	}

	switch {
	case strings.HasPrefix(v, "#"):
		return parseHex(v)
	case strings.HasPrefix(v, "rgba(") && strings.HasSuffix(v, ")"):
		return parseFunc(v[len("rgba("):len(v)-1], true)
	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		return parseFunc(v[len("rgb("):len(v)-1], false)
	}
	return Color{}, fmt.Errorf("chart: invalid color %q", s)
}

// MustParseColor is ParseColor for package-level tables.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(v string) (Color, error) {
	alpha := 1.0
	if len(v) == 9 {
		a, err := strconv.ParseUint(v[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("chart: invalid color %q", v)
		}
		alpha = float64(a) / 255
		v = v[:7]
	}
	cf, err := colorful.Hex(v)
	if err != nil {
		return Color{}, fmt.Errorf("chart: invalid color %q: %w", v, err)
	}
	r, g, b := cf.RGB255()
	return Color{R: r, G: g, B: b, A: alpha}, nil
}

func parseFunc(body string, withAlpha bool) (Color, error) {
	parts := strings.Split(body, ",")
	want := 3
	if withAlpha {
		want = 4
	}
	if len(parts) != want {
		return Color{}, fmt.Errorf("chart: invalid color component count in %q", body)
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil || f < 0 || f > 255 {
			return Color{}, fmt.Errorf("chart: invalid color component %q", parts[i])
		}
		ch[i] = uint8(math.Round(f))
	}

	alpha := 1.0
	if withAlpha {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return Color{}, fmt.Errorf("chart: invalid alpha %q", parts[3])
		}
		alpha = a
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil
}

// IsZero reports whether c is the unset value.
func (c Color) IsZero() bool { return c == Color{} }

// Opaque returns c with full alpha.
func (c Color) Opaque() Color {
	c.A = 1
	return c
}

// Colorful converts to go-colorful, ignoring alpha.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Over composites c onto an opaque background and returns an opaque color.
func (c Color) Over(bg Color) Color {
	r, g, b := bg.Colorful().BlendRgb(c.Colorful(), c.A).Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: 1}
}

// Hex formats the color channels as #rrggbb.
func (c Color) Hex() string { return c.Colorful().Hex() }

// CSS formats the color as rgba(r,g,b,a).
func (c Color) CSS() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

func (c Color) String() string { return c.CSS() }

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
