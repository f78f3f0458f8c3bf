package widgets

import (
	"github.com/mum4k/termdash/cell"

	"github.com/Prajwal-Prathiksh/rainchart/internal/chart"
)

// CellColor converts a chart color to a 24-bit terminal color. Translucent
// colors are composited over bg first.
func CellColor(c, bg chart.Color) cell.Color {
	o := c
	if c.A < 1 {
		o = c.Over(bg.Opaque())
	}
	return cell.ColorRGB24(int(o.R), int(o.G), int(o.B))
}
