package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"

	"github.com/jack-barr3tt/stk-engine/src/common/types"
	"github.com/jack-barr3tt/stk-engine/src/common/utils"
)

const (
	ContainerID = "stk-mileage-chart"
	TooltipID   = "stk-mileage-tooltip"
)

type StatLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

func StatLines(stats types.MileageStats) []StatLine {
	return []StatLine{
		{Label: "Lowest reading", Value: utils.FormatKm(stats.MinKm) + " km"},
		{Label: "Highest reading", Value: utils.FormatKm(stats.MaxKm) + " km"},
		{Label: "Total increase", Value: utils.FormatKm(stats.TotalIncrease) + " km"},
		{Label: "Average per year", Value: utils.FormatKm(stats.AvgPerYear) + " km"},
	}
}

func WarningLines(anomalies []types.MileageAnomaly) []string {
	lines := make([]string, 0, len(anomalies))
	for _, a := range anomalies {
		lines = append(lines, fmt.Sprintf("between %s (%s km) and %s (%s km) — drop of %s km",
			a.From.DateText, utils.FormatKm(a.From.Km),
			a.To.DateText, utils.FormatKm(a.To.Km),
			utils.FormatKm(a.Diff)))
	}
	return lines
}

var containerTemplate = template.Must(template.New("container").Parse(`<div id="{{.ID}}" class="stk-mileage-chart"{{if .ChartID}} data-chart-id="{{.ChartID}}"{{end}}>
<h3 class="stk-mileage-title">Mileage history</h3>
<img class="stk-mileage-surface" src="{{.Surface}}" width="{{.Width}}" height="{{.Height}}" alt="Mileage history chart">
<div class="stk-mileage-stats">{{range .Stats}}
<div class="stk-mileage-stat"><span>{{.Label}}</span> <strong>{{.Value}}</strong></div>{{end}}
</div>{{if .Warnings}}
<div class="stk-mileage-warning">
<strong>Possible odometer rollback</strong>
<ul>{{range .Warnings}}
<li>{{.}}</li>{{end}}
</ul>
</div>{{end}}
</div>`))

var tooltipTemplate = template.Must(template.New("tooltip").Parse(
	`<div id="{{.}}" class="stk-mileage-tooltip" style="position:absolute;display:none;pointer-events:none"></div>`))

// Chart is one rendered chart together with the context it was drawn with.
type Chart struct {
	Context   *Context
	Anomalies []types.MileageAnomaly
	Stats     types.MileageStats
	Format    Format
	Image     []byte
}

// Render draws the series into a new chart. The series must not be empty.
func Render(series types.Series, anomalies []types.MileageAnomaly, stats types.MileageStats, layout Layout, format Format) (*Chart, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("cannot render an empty series")
	}
	ctx := NewContext(series, anomalies, layout)
	img, err := Draw(ctx, format)
	if err != nil {
		return nil, err
	}
	return &Chart{Context: ctx, Anomalies: anomalies, Stats: stats, Format: format, Image: img}, nil
}

func (c *Chart) DataURL() string {
	return "data:" + c.Format.ContentType() + ";base64," + base64.StdEncoding.EncodeToString(c.Image)
}

// ContainerHTML renders the chart container: title, surface, stats panel and,
// when there are anomalies, the warning panel.
func (c *Chart) ContainerHTML(chartID string) (string, error) {
	var buf bytes.Buffer
	err := containerTemplate.Execute(&buf, struct {
		ID       string
		ChartID  string
		Surface  template.URL
		Width    int
		Height   int
		Stats    []StatLine
		Warnings []string
	}{
		ID:       ContainerID,
		ChartID:  chartID,
		Surface:  template.URL(c.DataURL()),
		Width:    c.Context.Layout.Width,
		Height:   c.Context.Layout.Height,
		Stats:    StatLines(c.Stats),
		Warnings: WarningLines(c.Anomalies),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func TooltipHTML() string {
	var buf bytes.Buffer
	_ = tooltipTemplate.Execute(&buf, TooltipID)
	return buf.String()
}
