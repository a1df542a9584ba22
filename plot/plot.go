// Package plot shows line traces in an interactive window.
//
// Drag with the left mouse button to pan, use the mouse wheel to zoom, press R
// to fit all traces again, F11 to toggle fullscreen and Escape to close.
package plot

import (
	"fmt"
	"math"

	"github.com/gonutz/prototype/draw"
)

const (
	windowWidth  = 800
	windowHeight = 600
)

// runWindow opens the window and runs update once per frame until it closes.
var runWindow = func(title string, width, height int, update func(draw.Window)) error {
	return draw.RunWindow(title, width, height, update)
}

// RenderError is returned when the window backend cannot be started.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	if e.Err == nil {
		return "render: failed"
	}
	return "render: " + e.Err.Error()
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Show opens a window displaying fig and blocks until the user closes it.
func Show(fig *Figure) error {
	title := fig.Title
	if title == "" {
		title = "Plot"
	}
	v := newViewer(fig)
	if err := runWindow(title, windowWidth, windowHeight, v.frame); err != nil {
		return &RenderError{Err: err}
	}
	return nil
}

type viewer struct {
	fig        *Figure
	fullscreen bool
	dragging   bool
	dragX      int
	dragY      int
	view       view
}

// view is the visible data rectangle.
type view struct {
	minX float64
	maxX float64
	minY float64
	maxY float64
}

func newViewer(fig *Figure) *viewer {
	v := &viewer{fig: fig}
	v.resetView()
	return v
}

func (v *viewer) resetView() {
	v.view = fitView(v.fig.Traces)
	v.dragging = false
}

func (v *viewer) frame(window draw.Window) {
	if window.WasKeyPressed(draw.KeyEscape) {
		window.Close()
		return
	}

	if window.WasKeyPressed(draw.KeyF11) {
		v.fullscreen = !v.fullscreen
		v.dragging = false
	}
	window.SetFullscreen(v.fullscreen)

	if window.WasKeyPressed(draw.KeyR) {
		v.resetView()
	}

	v.draw(window)
}

// fitView returns the bounds of all trace points plus a tenth of their extent
// on every side. Degenerate extents get a margin of 1, and a figure without
// any points shows [-1, 1] on both axes.
func fitView(traces []*Trace) view {
	b := view{
		minX: math.Inf(1),
		maxX: math.Inf(-1),
		minY: math.Inf(1),
		maxY: math.Inf(-1),
	}
	for _, t := range traces {
		for i := 0; i < t.Len(); i++ {
			b.minX = math.Min(b.minX, t.X[i])
			b.maxX = math.Max(b.maxX, t.X[i])
			b.minY = math.Min(b.minY, t.Y[i])
			b.maxY = math.Max(b.maxY, t.Y[i])
		}
	}
	if isInf(b.minX) {
		return view{minX: -1, maxX: 1, minY: -1, maxY: 1}
	}

	var xMargin float64 = 1
	if b.minX < b.maxX {
		xMargin = (b.maxX - b.minX) / 10
	}
	b.minX -= xMargin
	b.maxX += xMargin

	var yMargin float64 = 1
	if b.minY < b.maxY {
		yMargin = (b.maxY - b.minY) / 10
	}
	b.minY -= yMargin
	b.maxY += yMargin

	return b
}

func (v *viewer) draw(window draw.Window) {
	mouseX, mouseY := window.MousePosition()

	if window.IsMouseDown(draw.LeftButton) {
		if !v.dragging {
			v.dragX, v.dragY = mouseX, mouseY
			v.dragging = true
		}
	} else {
		v.dragging = false
	}

	width, height := window.Size()
	t := newTransformer(v.view, width, height)

	// Drag the view with the mouse.
	if v.dragging {
		screenDx := v.dragX - mouseX
		screenDy := mouseY - v.dragY
		if screenDx != 0 || screenDy != 0 {
			v.view = v.view.shift(
				float64(screenDx)*t.xFromScreen,
				float64(screenDy)*t.yFromScreen,
			)
			v.dragX, v.dragY = mouseX, mouseY
			t = newTransformer(v.view, width, height)
		}
	}

	// Zoom with the mouse wheel, keeping the point under the cursor in place.
	if wheelY := window.MouseWheelY(); wheelY != 0 {
		v.view = v.view.zoom(math.Pow(1.1, -wheelY), mouseX, mouseY, width, height)
		t = newTransformer(v.view, width, height)
	}

	// Axes through the origin, pinned to the window border when the origin is
	// out of view so the tick labels stay visible.
	x0, y0 := t.toScreen(0, 0)
	axisX := clamp(x0, 0, width-1)
	axisY := clamp(y0, 0, height-1)
	window.DrawLine(0, axisY, width, axisY, draw.White)
	window.DrawLine(axisX, 0, axisX, height, draw.White)

	xScale, xPrecision := calcStepsAndPrecision(t.xRange)
	for _, x := range ticks(v.view.minX, v.view.maxX, xScale) {
		tickX, _ := t.toScreen(x, 0)
		window.DrawLine(tickX, axisY-3, tickX, axisY+4, draw.White)
		text := fmt.Sprintf("%.*f", xPrecision, x)
		textW, textH := window.GetTextSize(text)
		textY := axisY + 5
		if textY+textH > height {
			textY = axisY - 5 - textH
		}
		window.DrawText(text, tickX-textW/2, textY, draw.White)
	}

	yScale, yPrecision := calcStepsAndPrecision(t.yRange)
	for _, y := range ticks(v.view.minY, v.view.maxY, yScale) {
		_, tickY := t.toScreen(0, y)
		window.DrawLine(axisX-3, tickY, axisX+4, tickY, draw.White)
		text := fmt.Sprintf("%.*f", yPrecision, y)
		textW, textH := window.GetTextSize(text)
		textX := axisX - 5 - textW
		if textX < 0 {
			textX = axisX + 6
		}
		window.DrawText(text, textX, tickY-textH/2, draw.White)
	}

	for _, tr := range v.fig.Traces {
		n := tr.Len()
		if n == 0 {
			continue
		}
		x, y := t.toScreen(tr.X[0], tr.Y[0])
		for i := 1; i < n; i++ {
			x2, y2 := t.toScreen(tr.X[i], tr.Y[i])
			window.DrawLine(x, y, x2, y2, tr.Color)
			x, y = x2, y2
		}
		// DrawLine does not draw the last point in a line, so we have to draw
		// the very last point of the trace ourselves.
		window.DrawPoint(x, y, tr.Color)
	}

	v.drawLegend(window, width)

	// Write the current mouse position in the lower right hand corner.
	mx, my := t.fromScreen(mouseX, mouseY)
	mouseText := fmt.Sprintf("%.*f %.*f", xPrecision+1, mx, yPrecision+1, my)
	textW, textH := window.GetTextSize(mouseText)
	window.DrawText(mouseText, width-textW, height-textH, draw.White)
}

// drawLegend lists the trace names in the top right corner, each next to a
// short line in the trace color.
func (v *viewer) drawLegend(window draw.Window, width int) {
	const (
		margin     = 8
		sampleSize = 20
	)
	y := margin
	for _, tr := range v.fig.Traces {
		if tr.Name == "" {
			continue
		}
		textW, textH := window.GetTextSize(tr.Name)
		x := width - margin - textW
		window.DrawText(tr.Name, x, y, tr.Color)
		lineY := y + textH/2
		window.DrawLine(x-margin-sampleSize, lineY, x-margin, lineY, tr.Color)
		y += textH + 2
	}
}

// maxTicks bounds the number of ticks per axis.
const maxTicks = 200

// ticks returns the multiples of step in [lo, hi], leaving out the one at the
// origin where the axes cross. It returns nothing if there would be more than
// maxTicks of them.
func ticks(lo, hi, step float64) []float64 {
	if !(step > 0) || !(lo <= hi) {
		return nil
	}
	first := math.Ceil(lo / step)
	last := math.Floor(hi / step)
	if !(last-first < maxTicks) {
		return nil
	}
	var out []float64
	for i := 0; i <= int(last-first); i++ {
		x := (first + float64(i)) * step
		if abs(x) > step/10 {
			out = append(out, x)
		}
	}
	return out
}

func (b view) shift(dx, dy float64) view {
	b.minX += dx
	b.maxX += dx
	b.minY += dy
	b.maxY += dy
	return b
}

// minRelativeRange limits zooming in: an axis never spans less than this
// fraction of its largest coordinate magnitude, so neighboring ticks stay
// distinct float64 values.
const minRelativeRange = 1e-9

// zoom scales the view by scale around the data point under the given screen
// position. Zooming in further than minRelativeRange allows leaves the view
// unchanged.
func (b view) zoom(scale float64, screenX, screenY, width, height int) view {
	t := newTransformer(b, width, height)
	if scale < 1 && (t.xRange*scale < minRange(b.minX, b.maxX) ||
		t.yRange*scale < minRange(b.minY, b.maxY)) {
		return b
	}
	mx, my := t.fromScreen(screenX, screenY)

	b.maxX = b.minX + t.xRange*scale
	b.maxY = b.minY + t.yRange*scale

	t = newTransformer(b, width, height)
	mx2, my2 := t.fromScreen(screenX, screenY)
	return b.shift(mx-mx2, my-my2)
}

func minRange(lo, hi float64) float64 {
	return math.Max(minRelativeRange*math.Max(abs(lo), abs(hi)), math.SmallestNonzeroFloat64)
}

func newTransformer(b view, width, height int) transformer {
	xRange := b.maxX - b.minX
	yRange := b.maxY - b.minY
	w, h := float64(width-1), float64(height-1)
	xToScreen := w / xRange
	yToScreen := h / yRange
	return transformer{
		minX:        b.minX,
		minY:        b.minY,
		xRange:      xRange,
		yRange:      yRange,
		xToScreen:   xToScreen,
		yToScreen:   yToScreen,
		xFromScreen: 1.0 / xToScreen,
		yFromScreen: 1.0 / yToScreen,
		height:      height,
	}
}

type transformer struct {
	minX        float64
	minY        float64
	xRange      float64
	yRange      float64
	xToScreen   float64
	yToScreen   float64
	xFromScreen float64
	yFromScreen float64
	height      int
}

func (t transformer) toScreen(x, y float64) (screenX, screenY int) {
	screenX = round((x - t.minX) * t.xToScreen)
	screenY = t.height - 1 - round((y-t.minY)*t.yToScreen)
	return
}

func (t transformer) fromScreen(screenX, screenY int) (x, y float64) {
	x = t.minX + float64(screenX)*t.xFromScreen
	y = t.minY + float64(t.height-1-screenY)*t.yFromScreen
	return
}

// calcStepsAndPrecision picks a tick distance giving roughly 5 to 15 ticks
// over theRange and the number of decimals needed to print them.
func calcStepsAndPrecision(theRange float64) (float64, int) {
	if !(theRange > 0) || isInf(theRange) {
		return 1, 0
	}
	steps := theRange / 10
	scale := float64(1)
	prec := 0
	if steps < 1 {
		for steps < 1 {
			steps *= 10
			scale /= 10
			prec++
		}
	} else {
		for steps > 1 {
			steps /= 10
			scale *= 10
		}
	}

	if theRange/scale < 5 {
		scale *= 0.5
	}
	if theRange/scale > 15 {
		scale *= 2
	}

	return scale, prec
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func isInf(x float64) bool {
	return math.IsInf(x, 1) || math.IsInf(x, -1)
}

func round(f float64) int {
	if f < 0 {
		return int(f - 0.5)
	}
	return int(f + 0.5)
}
