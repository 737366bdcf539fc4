package render

import (
	"fmt"
	"math"

	"github.com/jack-barr3tt/stk-engine/src/common/types"
	"github.com/jack-barr3tt/stk-engine/src/common/utils"
)

// TooltipRadius is how close, in CSS pixels, the pointer must be to a point for the tooltip to show.
const TooltipRadius = 30.0

type Tooltip struct {
	ctx    *Context
	Radius float64
}

type TooltipState struct {
	Visible bool                `json:"visible"`
	Index   int                 `json:"index"`
	Point   *types.MileagePoint `json:"point,omitempty"`
	Text    string              `json:"text,omitempty"`
	Left    float64             `json:"left,omitempty"`
	Top     float64             `json:"top,omitempty"`
}

func AttachTooltip(ctx *Context) *Tooltip {
	return &Tooltip{ctx: ctx, Radius: TooltipRadius}
}

// Move hit-tests a pointer position given in CSS pixels relative to the surface.
func (t *Tooltip) Move(x, y float64) TooltipState {
	best, bestDist := -1, math.MaxFloat64
	for i := range t.ctx.Series {
		px, py := t.ctx.PointAt(i)
		if d := math.Hypot(x-px, y-py); d < bestDist {
			best, bestDist = i, d
		}
	}

	if best < 0 || bestDist > t.Radius {
		return TooltipState{Index: -1}
	}

	p := t.ctx.Series[best]
	return TooltipState{
		Visible: true,
		Index:   best,
		Point:   &p,
		Text:    fmt.Sprintf("%s: %s km", p.DateText, utils.FormatKm(p.Km)),
		Left:    x + 12,
		Top:     y - 28,
	}
}
