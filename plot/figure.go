package plot

import "github.com/gonutz/prototype/draw"

// Color is the color of a trace.
type Color = draw.Color

// RGB creates a Color from 8 bit channels.
func RGB(r, g, b uint8) Color {
	return draw.RGB(float32(r)/255, float32(g)/255, float32(b)/255)
}

// palette holds the default trace colors, assigned in trace order and wrapping
// around.
var palette = []Color{
	RGB(0x63, 0x6e, 0xfa),
	RGB(0xef, 0x55, 0x3b),
	RGB(0x00, 0xcc, 0x96),
	RGB(0xab, 0x63, 0xfa),
	RGB(0xff, 0xa1, 0x5a),
}

// Figure is a set of line traces drawn over a shared pair of axes.
type Figure struct {
	Title  string
	Traces []*Trace
}

// Trace is a single polyline. Points are connected in slice order.
type Trace struct {
	Name  string
	X     []float64
	Y     []float64
	Color Color
}

// NewFigure creates an empty figure. The title is used for the window.
func NewFigure(title string) *Figure {
	return &Figure{Title: title}
}

// Line adds a trace to the figure and gives it the next palette color. If x is
// empty, the points are placed at x = 0, 1, 2, ...
func (f *Figure) Line(name string, x, y []float64) *Trace {
	t := &Trace{
		Name:  name,
		X:     x,
		Y:     y,
		Color: palette[len(f.Traces)%len(palette)],
	}
	if len(t.X) == 0 {
		t.X = make([]float64, len(y))
		for i := range t.X {
			t.X[i] = float64(i)
		}
	}
	f.Traces = append(f.Traces, t)
	return t
}

// RGB overrides the trace's palette color.
func (t *Trace) RGB(red, green, blue uint8) *Trace {
	t.Color = RGB(red, green, blue)
	return t
}

// Len is the number of drawable points. Unpaired trailing coordinates are
// ignored.
func (t *Trace) Len() int {
	if len(t.X) < len(t.Y) {
		return len(t.X)
	}
	return len(t.Y)
}
