package plot

import (
	"errors"
	"testing"

	"github.com/gonutz/prototype/draw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubWindow(t *testing.T, fn func(title string, width, height int, update func(draw.Window)) error) {
	t.Helper()
	orig := runWindow
	runWindow = fn
	t.Cleanup(func() { runWindow = orig })
}

func TestShowWrapsBackendError(t *testing.T) {
	backendErr := errors.New("no display")
	stubWindow(t, func(string, int, int, func(draw.Window)) error {
		return backendErr
	})

	err := Show(NewFigure("ramp"))
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	require.ErrorIs(t, err, backendErr)
	assert.Equal(t, "render: no display", err.Error())
}

func TestShowOpensWindow(t *testing.T) {
	var gotTitle string
	var gotW, gotH int
	stubWindow(t, func(title string, width, height int, update func(draw.Window)) error {
		gotTitle, gotW, gotH = title, width, height
		require.NotNil(t, update)
		return nil
	})

	fig := NewFigure("ramp.csv")
	fig.Line("value", []float64{0, 1}, []float64{1, 2})
	require.NoError(t, Show(fig))
	assert.Equal(t, "ramp.csv", gotTitle)
	assert.Equal(t, windowWidth, gotW)
	assert.Equal(t, windowHeight, gotH)

	require.NoError(t, Show(NewFigure("")))
	assert.Equal(t, "Plot", gotTitle)
}

func TestFigureLine(t *testing.T) {
	fig := NewFigure("f")
	a := fig.Line("a", []float64{0, 1}, []float64{3, 4})
	b := fig.Line("b", nil, []float64{7, 8, 9})

	require.Len(t, fig.Traces, 2)
	assert.Same(t, a, fig.Traces[0])
	assert.Same(t, b, fig.Traces[1])
	assert.Equal(t, palette[0], a.Color)
	assert.Equal(t, palette[1], b.Color)
	assert.Equal(t, []float64{0, 1, 2}, b.X, "missing x counts up from 0")

	b.RGB(255, 0, 0)
	assert.Equal(t, RGB(255, 0, 0), b.Color)

	for i := 0; i < len(palette); i++ {
		fig.Line("", nil, nil)
	}
	assert.Equal(t, palette[1], fig.Traces[len(fig.Traces)-1].Color, "palette wraps around")
}

func TestTraceLen(t *testing.T) {
	assert.Equal(t, 0, (&Trace{}).Len())
	assert.Equal(t, 2, (&Trace{X: []float64{0, 1, 2}, Y: []float64{5, 6}}).Len())
	assert.Equal(t, 1, (&Trace{X: []float64{0}, Y: []float64{5, 6}}).Len())
}

func TestFitView(t *testing.T) {
	fig := NewFigure("")
	fig.Line("value", []float64{0, 1, 2, 3, 4}, []float64{10, 12, 9, 9, 15})
	fig.Line("rate", []float64{0, 1, 2, 3}, []float64{2, -3, 0, 6})

	v := fitView(fig.Traces)
	assert.InDelta(t, -0.4, v.minX, 1e-9)
	assert.InDelta(t, 4.4, v.maxX, 1e-9)
	assert.InDelta(t, -4.8, v.minY, 1e-9)
	assert.InDelta(t, 16.8, v.maxY, 1e-9)
}

func TestFitViewEmptyTrace(t *testing.T) {
	fig := NewFigure("")
	fig.Line("value", []float64{0}, []float64{5})
	fig.Line("rate", []float64{}, []float64{})

	v := fitView(fig.Traces)
	assert.Equal(t, view{minX: -1, maxX: 1, minY: 4, maxY: 6}, v)
}

func TestFitViewNoPoints(t *testing.T) {
	assert.Equal(t, view{minX: -1, maxX: 1, minY: -1, maxY: 1}, fitView(nil))

	fig := NewFigure("")
	fig.Line("value", nil, nil)
	fig.Line("rate", nil, nil)
	assert.Equal(t, view{minX: -1, maxX: 1, minY: -1, maxY: 1}, fitView(fig.Traces))
}

func TestNewViewerEmptyFigure(t *testing.T) {
	v := newViewer(NewFigure(""))
	tr := newTransformer(v.view, windowWidth, windowHeight)
	x, y := tr.toScreen(0, 0)
	assert.Equal(t, 400, x)
	assert.Equal(t, 299, y)
}

func TestTransformerRoundTrip(t *testing.T) {
	tr := newTransformer(view{minX: -2, maxX: 8, minY: 0, maxY: 100}, 801, 601)

	x, y := tr.toScreen(-2, 0)
	assert.Equal(t, 0, x)
	assert.Equal(t, 600, y, "y grows upwards")

	x, y = tr.toScreen(8, 100)
	assert.Equal(t, 800, x)
	assert.Equal(t, 0, y)

	fx, fy := tr.fromScreen(400, 300)
	assert.InDelta(t, 3, fx, 1e-9)
	assert.InDelta(t, 50, fy, 1e-9)
}

func TestZoomKeepsCursorPoint(t *testing.T) {
	v := view{minX: 0, maxX: 10, minY: -5, maxY: 5}
	before := newTransformer(v, 800, 600)
	bx, by := before.fromScreen(200, 150)

	zoomed := v.zoom(0.5, 200, 150, 800, 600)
	after := newTransformer(zoomed, 800, 600)
	ax, ay := after.fromScreen(200, 150)

	assert.InDelta(t, bx, ax, 1e-9)
	assert.InDelta(t, by, ay, 1e-9)
	assert.InDelta(t, 5, zoomed.maxX-zoomed.minX, 1e-9)
	assert.InDelta(t, 5, zoomed.maxY-zoomed.minY, 1e-9)
}

func TestShift(t *testing.T) {
	v := view{minX: 0, maxX: 1, minY: 2, maxY: 3}.shift(1, -2)
	assert.Equal(t, view{minX: 1, maxX: 2, minY: 0, maxY: 1}, v)
}

func TestCalcStepsAndPrecision(t *testing.T) {
	tests := []struct {
		theRange float64
		step     float64
		prec     int
	}{
		{100, 10, 0},
		{10, 1, 0},
		{1, 0.1, 1},
		{0.3, 0.02, 2},
		{4.8, 0.2, 1},
		{0, 1, 0},
		{-3, 1, 0},
	}
	for _, tt := range tests {
		step, prec := calcStepsAndPrecision(tt.theRange)
		assert.InDelta(t, tt.step, step, 1e-12, "range %v", tt.theRange)
		assert.Equal(t, tt.prec, prec, "range %v", tt.theRange)
	}
}

func TestTicks(t *testing.T) {
	got := ticks(-2.5, 3.2, 1)
	assert.Equal(t, []float64{-2, -1, 1, 2, 3}, got)

	assert.Empty(t, ticks(-0.5, 0.5, 1))
}

// TestZoomTimestampView zooms far into a view of Unix second timestamps. The
// view must stop shrinking before neighboring ticks collapse into the same
// float64 value, and tick generation must finish.
func TestZoomTimestampView(t *testing.T) {
	const base = 1.7e9
	fig := NewFigure("")
	fig.Line("value", []float64{base, base + 30, base + 60}, []float64{1, 4, 2})
	fig.Line("rate", []float64{base, base + 30}, []float64{3, -2})

	v := fitView(fig.Traces)
	for i := 0; i < 1000; i++ {
		v = v.zoom(1/1.1, 400, 300, 800, 600)
	}

	xRange := v.maxX - v.minX
	require.Greater(t, xRange, 0.0)
	assert.GreaterOrEqual(t, xRange, minRelativeRange*base/2)

	step, _ := calcStepsAndPrecision(xRange)
	got := ticks(v.minX, v.maxX, step)
	require.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), maxTicks)
	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i], got[i-1], "ticks must be strictly increasing")
	}

	zoomedOut := v.zoom(1.1, 400, 300, 800, 600)
	assert.Greater(t, zoomedOut.maxX-zoomedOut.minX, xRange, "zooming out is never limited")
}

// TestTicksBelowFloatSpacing returns promptly even when step is smaller than
// the float64 spacing at the tick positions.
func TestTicksBelowFloatSpacing(t *testing.T) {
	got := ticks(1.7000000300450556e+09, 1.700000030045057e+09, 1e-07)
	assert.LessOrEqual(t, len(got), maxTicks)

	assert.Nil(t, ticks(0, 1e6, 1e-3), "too many ticks")
	assert.Nil(t, ticks(1, 0, 1))
	assert.Nil(t, ticks(0, 1, 0))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, clamp(-20000000000, 0, 799))
	assert.Equal(t, 799, clamp(20000000000, 0, 799))
	assert.Equal(t, 400, clamp(400, 0, 799))
}

// TestAxisOffScreenForTimestamps checks that the origin of a timestamp view
// lies far outside the window, which is why the axes get pinned to its border.
func TestAxisOffScreenForTimestamps(t *testing.T) {
	const base = 1.7e9
	fig := NewFigure("")
	fig.Line("value", []float64{base, base + 60}, []float64{10, 20})

	v := fitView(fig.Traces)
	x0, y0 := newTransformer(v, 800, 600).toScreen(0, 0)
	assert.Equal(t, 0, clamp(x0, 0, 799))
	assert.Equal(t, 599, clamp(y0, 0, 599))
}

func TestRenderErrorWithoutCause(t *testing.T) {
	assert.Equal(t, "render: failed", (&RenderError{}).Error())
}
