package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/jack-barr3tt/stk-engine/src/common/utils"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	gridLines  = 5
	maxXLabels = 6

	labelRotation = -45.0
	fontSize      = 8.0
)

var (
	backgroundColor = drawing.ColorWhite
	gridColor       = drawing.ColorFromHex("e5e7eb")
	labelColor      = drawing.ColorFromHex("6b7280")
	lineColor       = drawing.ColorFromHex("2563eb")
	areaColor       = drawing.Color{R: 37, G: 99, B: 235, A: 38}
	pointColor      = drawing.ColorFromHex("2563eb")
	anomalyColor    = drawing.ColorFromHex("dc2626")
)

type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case "", FormatSVG:
		return FormatSVG, true
	case FormatPNG:
		return FormatPNG, true
	}
	return "", false
}

func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() chart.RendererProvider {
	if f == FormatPNG {
		return chart.PNG
	}
	return chart.SVG
}

// surface scales CSS pixel coordinates to the device pixels of the backing renderer.
type surface struct {
	r     chart.Renderer
	scale float64
	font  *truetype.Font
}

func (s surface) px(v float64) int {
	return int(math.Round(v * s.scale))
}

func (s surface) line(x1, y1, x2, y2 float64, c drawing.Color, width float64) {
	s.r.SetFillColor(drawing.ColorTransparent)
	s.r.SetStrokeColor(c)
	s.r.SetStrokeWidth(width * s.scale)
	s.r.MoveTo(s.px(x1), s.px(y1))
	s.r.LineTo(s.px(x2), s.px(y2))
	s.r.Stroke()
}

func (s surface) text(body string, x, y float64, c drawing.Color) {
	s.r.SetFont(s.font)
	s.r.SetFontColor(c)
	s.r.SetFontSize(fontSize)
	s.r.Text(body, s.px(x), s.px(y))
}

// measure returns the width of body in CSS pixels.
func (s surface) measure(body string) float64 {
	s.r.SetFont(s.font)
	s.r.SetFontSize(fontSize)
	return float64(s.r.MeasureText(body).Width()) / s.scale
}

// Draw paints the chart described by ctx and returns the encoded image.
func Draw(ctx *Context, format Format) ([]byte, error) {
	w, h := ctx.Layout.DeviceSize()
	r, err := format.provider()(w, h)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s surface: %w", format, err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load chart font: %w", err)
	}
	r.SetDPI(chart.DefaultDPI * ctx.Layout.PixelRatio)

	s := surface{r: r, scale: ctx.Layout.PixelRatio, font: font}

	r.SetFillColor(backgroundColor)
	r.SetStrokeColor(drawing.ColorTransparent)
	r.SetStrokeWidth(0)
	r.MoveTo(0, 0)
	r.LineTo(w, 0)
	r.LineTo(w, h)
	r.LineTo(0, h)
	r.Close()
	r.Fill()

	drawYAxis(s, ctx)
	if len(ctx.Series) > 0 {
		drawArea(s, ctx)
		drawLine(s, ctx)
		drawXLabels(s, ctx)
		drawMarkers(s, ctx)
	}

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode %s chart: %w", format, err)
	}
	return buf.Bytes(), nil
}

func drawYAxis(s surface, ctx *Context) {
	for _, v := range ctx.GridValues() {
		y := ctx.ToY(v)
		s.line(ctx.Left, y, ctx.Right, y, gridColor, 1)

		label := utils.FormatKm(int(math.Round(v)))
		s.text(label, ctx.Left-8-s.measure(label), y+4, labelColor)
	}
}

func drawArea(s surface, ctx *Context) {
	s.r.SetFillColor(areaColor)
	s.r.SetStrokeColor(drawing.ColorTransparent)
	s.r.SetStrokeWidth(0)

	s.r.MoveTo(s.px(ctx.ToX(0)), s.px(ctx.Bottom))
	for i := range ctx.Series {
		x, y := ctx.PointAt(i)
		s.r.LineTo(s.px(x), s.px(y))
	}
	s.r.LineTo(s.px(ctx.ToX(len(ctx.Series)-1)), s.px(ctx.Bottom))
	s.r.Close()
	s.r.Fill()
}

func drawLine(s surface, ctx *Context) {
	s.r.SetFillColor(drawing.ColorTransparent)
	s.r.SetStrokeColor(lineColor)
	s.r.SetStrokeWidth(2 * s.scale)

	x, y := ctx.PointAt(0)
	s.r.MoveTo(s.px(x), s.px(y))
	for i := 1; i < len(ctx.Series); i++ {
		x, y = ctx.PointAt(i)
		s.r.LineTo(s.px(x), s.px(y))
	}
	s.r.Stroke()
}

func drawXLabels(s surface, ctx *Context) {
	s.r.SetTextRotation(chart.DegreesToRadians(labelRotation))
	defer s.r.ClearTextRotation()

	for _, i := range ctx.LabelIndexes() {
		s.text(ctx.Series[i].DateText, ctx.ToX(i)-12, ctx.Bottom+40, labelColor)
	}
}

func drawMarkers(s surface, ctx *Context) {
	for i := range ctx.Series {
		c, radius := pointColor, 4.0
		if ctx.Anomalous[i] {
			c, radius = anomalyColor, 5.0
		}
		x, y := ctx.PointAt(i)

		s.r.SetFillColor(c)
		s.r.SetStrokeColor(backgroundColor)
		s.r.SetStrokeWidth(1.5 * s.scale)
		s.r.Circle(radius*s.scale, s.px(x), s.px(y))
		s.r.FillStroke()
	}
}
