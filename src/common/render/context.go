package render

import (
	"github.com/jack-barr3tt/stk-engine/src/common/mileage"
	"github.com/jack-barr3tt/stk-engine/src/common/types"
)

// Layout is the size of the chart surface in CSS pixels. PixelRatio scales the
// backing surface so strokes stay crisp on dense displays.
type Layout struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	PixelRatio float64 `json:"pixel_ratio"`
}

func DefaultLayout() Layout {
	return Layout{Width: 800, Height: 300, PixelRatio: 1}
}

func (l Layout) normalized() Layout {
	def := DefaultLayout()
	if l.Width < minWidth {
		l.Width = def.Width
	}
	if l.Height < minHeight {
		l.Height = def.Height
	}
	l.Width = min(l.Width, maxWidth)
	l.Height = min(l.Height, maxHeight)
	if !(l.PixelRatio > 0) {
		l.PixelRatio = 1
	}
	l.PixelRatio = min(l.PixelRatio, maxPixelRatio)
	return l
}

// DeviceSize is the backing surface size in device pixels.
func (l Layout) DeviceSize() (int, int) {
	l = l.normalized()
	return int(float64(l.Width)*l.PixelRatio + 0.5), int(float64(l.Height)*l.PixelRatio + 0.5)
}

const (
	minWidth  = 200
	minHeight = 120
	maxWidth  = 1600
	maxHeight = 1000

	maxPixelRatio = 3.0

	padTop    = 20.0
	padRight  = 24.0
	padBottom = 64.0
	padLeft   = 76.0

	// share of the km range added above and below the data
	yPadding = 0.1
)

// Context holds the coordinate transforms of one rendered chart. Drawing and
// tooltip hit-testing both go through it so they always agree on positions.
type Context struct {
	Series    types.Series
	Anomalous map[int]bool
	Layout    Layout

	// plot area in CSS pixels
	Left, Top, Right, Bottom float64
	// value range of the y axis
	YMin, YMax float64

	ToX func(i int) float64
	ToY func(km float64) float64
}

func NewContext(series types.Series, anomalies []types.MileageAnomaly, layout Layout) *Context {
	layout = layout.normalized()

	ctx := &Context{
		Series:    series,
		Anomalous: mileage.AnomalousIndexes(anomalies),
		Layout:    layout,
		Left:      padLeft,
		Top:       padTop,
		Right:     float64(layout.Width) - padRight,
		Bottom:    float64(layout.Height) - padBottom,
	}

	var minKm, maxKm int
	if len(series) > 0 {
		minKm, maxKm = series[0].Km, series[0].Km
		for _, p := range series[1:] {
			minKm = min(minKm, p.Km)
			maxKm = max(maxKm, p.Km)
		}
	}
	span := float64(maxKm - minKm)
	if span == 0 {
		span = 1
	}
	ctx.YMin = float64(minKm) - span*yPadding
	ctx.YMax = float64(maxKm) + span*yPadding

	plotW := ctx.Right - ctx.Left
	plotH := ctx.Bottom - ctx.Top

	var elapsed float64
	if len(series) > 1 {
		elapsed = series[len(series)-1].Date.Sub(series[0].Date).Seconds()
	}

	ctx.ToX = func(i int) float64 {
		if elapsed <= 0 {
			return ctx.Left + plotW/2
		}
		return ctx.Left + plotW*series[i].Date.Sub(series[0].Date).Seconds()/elapsed
	}
	ctx.ToY = func(km float64) float64 {
		return ctx.Top + plotH*(1-(km-ctx.YMin)/(ctx.YMax-ctx.YMin))
	}

	return ctx
}

// PointAt returns the CSS pixel position of the i-th series point.
func (c *Context) PointAt(i int) (float64, float64) {
	return c.ToX(i), c.ToY(float64(c.Series[i].Km))
}

// GridValues are the km values of the evenly spaced horizontal gridlines.
func (c *Context) GridValues() []float64 {
	values := make([]float64, gridLines)
	for i := range values {
		values[i] = c.YMin + (c.YMax-c.YMin)*float64(i)/float64(gridLines-1)
	}
	return values
}

// LabelIndexes picks the points that get a date label: every step-th point so
// that about maxXLabels are printed, plus always the last one.
func (c *Context) LabelIndexes() []int {
	n := len(c.Series)
	if n == 0 {
		return nil
	}
	step := max(1, (n+maxXLabels-1)/maxXLabels)

	indexes := []int{}
	for i := 0; i < n; i += step {
		indexes = append(indexes, i)
	}
	if indexes[len(indexes)-1] != n-1 {
		indexes = append(indexes, n-1)
	}
	return indexes
}
