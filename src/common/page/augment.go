package page

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jack-barr3tt/stk-engine/src/common/metrics"
	"github.com/jack-barr3tt/stk-engine/src/common/mileage"
	"github.com/jack-barr3tt/stk-engine/src/common/render"
	"github.com/jack-barr3tt/stk-engine/src/common/stations"
	"github.com/jack-barr3tt/stk-engine/src/common/types"
	"go.uber.org/zap"
)

// Placeholder is shown in the location column when a row's station can't be resolved.
const Placeholder = "—"

const locationHeader = "Inspection location"

type StationResolver interface {
	LookupProtocol(protocol string, t types.InspectionType) (types.StationInfo, bool)
}

// ChartStore keeps rendered charts so tooltip queries can be answered later.
type ChartStore interface {
	SaveChart(ctx context.Context, id string, chart *render.Chart) error
}

type Augmenter struct {
	Stations StationResolver
	Charts   ChartStore
	Layout   render.Layout
	Logger   *zap.SugaredLogger
}

func NewAugmenter(resolver StationResolver, charts ChartStore, logger *zap.SugaredLogger) *Augmenter {
	return &Augmenter{
		Stations: resolver,
		Charts:   charts,
		Layout:   render.DefaultLayout(),
		Logger:   logger,
	}
}

type Outcome string

const (
	OutcomeNoTable       Outcome = "no_table"
	OutcomeNoSeries      Outcome = "no_series"
	OutcomeChartExists   Outcome = "chart_exists"
	OutcomeChartRendered Outcome = "chart_rendered"
	OutcomeRenderFailed  Outcome = "render_failed"
)

type Result struct {
	Outcome        Outcome
	ChartID        string
	Report         types.MileageReport
	LocationsAdded int
	HeaderAdded    bool
	TooltipAdded   bool
}

func Parse(r io.Reader) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(r)
}

func Serialize(doc *goquery.Document) (string, error) {
	return doc.Html()
}

// Apply runs one augmentation pass over the document. Every injection point
// checks for its marker first, so applying a pass to its own output changes nothing.
func (a *Augmenter) Apply(ctx context.Context, doc *goquery.Document) Result {
	wrapper := doc.Find(WrapperSelector).First()
	if wrapper.Length() == 0 {
		return a.finish(Result{Outcome: OutcomeNoTable})
	}

	result := Result{}
	result.HeaderAdded, result.LocationsAdded = a.injectLocations(wrapper)

	if existing := doc.Find("#" + render.ContainerID); existing.Length() > 0 {
		result.Outcome = OutcomeChartExists
		result.ChartID, _ = existing.Attr("data-chart-id")
	} else {
		a.injectChart(ctx, wrapper, &result)
	}

	if result.Outcome == OutcomeChartRendered || result.Outcome == OutcomeChartExists {
		result.TooltipAdded = injectTooltip(doc)
	}

	return a.finish(result)
}

func (a *Augmenter) finish(result Result) Result {
	metrics.PagesProcessedTotal.WithLabelValues(string(result.Outcome)).Inc()
	if a.Logger != nil {
		a.Logger.Debugw("augmentation pass", "outcome", result.Outcome, "chart", result.ChartID,
			"points", len(result.Report.Series), "anomalies", len(result.Report.Anomalies), "locations", result.LocationsAdded)
	}
	return result
}

func (a *Augmenter) injectLocations(wrapper *goquery.Selection) (bool, int) {
	headerAdded := false
	header := wrapper.Find(HeaderRowSelector).First()
	if header.Length() > 0 && header.Find("th["+LocationAttr+"]").Length() == 0 {
		header.AppendHtml(fmt.Sprintf(`<th %s="header">%s</th>`, LocationAttr, locationHeader))
		headerAdded = true
	}

	added := 0
	for _, row := range Rows(wrapper) {
		if row.sel.Find("td["+LocationAttr+"]").Length() > 0 {
			continue
		}
		row.sel.AppendHtml(fmt.Sprintf(`<td %s="cell">%s</td>`, LocationAttr, html.EscapeString(a.locationText(row))))
		added++
	}
	return headerAdded, added
}

func (a *Augmenter) locationText(row Row) string {
	if a.Stations == nil {
		return Placeholder
	}
	protocol, ok := row.ProtocolText()
	if !ok {
		return Placeholder
	}
	typeText, ok := row.TypeText()
	if !ok {
		return Placeholder
	}
	t, ok := stations.ParseInspectionType(typeText)
	if !ok {
		return Placeholder
	}

	info, ok := a.Stations.LookupProtocol(protocol, t)
	if !ok {
		metrics.StationLookupsTotal.WithLabelValues("miss").Inc()
		return Placeholder
	}
	metrics.StationLookupsTotal.WithLabelValues("hit").Inc()
	return stations.FormatStation(info)
}

func (a *Augmenter) injectChart(ctx context.Context, wrapper *goquery.Selection, result *Result) {
	report := mileage.Analyze(Rows(wrapper))
	result.Report = report
	if report.Stats == nil {
		result.Outcome = OutcomeNoSeries
		return
	}

	start := time.Now()
	chart, err := render.Render(report.Series, report.Anomalies, *report.Stats, a.Layout, render.FormatSVG)
	metrics.RenderDurationMs.WithLabelValues(string(render.FormatSVG)).Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		a.warn("failed to render mileage chart", "error", err)
		result.Outcome = OutcomeRenderFailed
		return
	}

	id, err := ChartID(report.Series, chart.Context.Layout, render.FormatSVG)
	if err != nil {
		a.warn("failed to derive chart id", "error", err)
		result.Outcome = OutcomeRenderFailed
		return
	}
	fragment, err := chart.ContainerHTML(id)
	if err != nil {
		a.warn("failed to build chart container", "error", err)
		result.Outcome = OutcomeRenderFailed
		return
	}

	if a.Charts != nil {
		if err := a.Charts.SaveChart(ctx, id, chart); err != nil {
			// the page still gets its chart, only tooltip queries miss
			a.warn("failed to cache chart", "chart", id, "error", err)
		}
	}

	wrapper.AfterHtml(fragment)
	metrics.AnomaliesDetectedTotal.Add(float64(len(report.Anomalies)))
	result.Outcome = OutcomeChartRendered
	result.ChartID = id
}

func injectTooltip(doc *goquery.Document) bool {
	if doc.Find("#"+render.TooltipID).Length() > 0 {
		return false
	}
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return false
	}
	body.AppendHtml(render.TooltipHTML())
	return true
}

func (a *Augmenter) warn(msg string, keysAndValues ...interface{}) {
	if a.Logger != nil {
		a.Logger.Warnw(msg, keysAndValues...)
	}
}

// ChartID is derived from what was drawn, so the same readings at the same
// size always map to the same cached chart.
func ChartID(series types.Series, layout render.Layout, format render.Format) (string, error) {
	body, err := json.Marshal(struct {
		Series types.Series  `json:"series"`
		Layout render.Layout `json:"layout"`
		Format render.Format `json:"format"`
	}{series, layout, format})
	if err != nil {
		return "", fmt.Errorf("failed to encode chart key: %w", err)
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:8]), nil
}

// Process runs one pass over a snapshot and returns the augmented page.
func (a *Augmenter) Process(ctx context.Context, snapshot types.PageSnapshot) (types.AugmentedPage, error) {
	doc, err := Parse(strings.NewReader(snapshot.HTML))
	if err != nil {
		return types.AugmentedPage{}, fmt.Errorf("failed to parse snapshot %s: %w", snapshot.ID, err)
	}

	result := a.Apply(ctx, doc)

	out, err := Serialize(doc)
	if err != nil {
		return types.AugmentedPage{}, fmt.Errorf("failed to serialize snapshot %s: %w", snapshot.ID, err)
	}

	return types.AugmentedPage{
		ID:        snapshot.ID,
		HTML:      out,
		ChartID:   result.ChartID,
		Points:    len(result.Report.Series),
		Anomalies: result.Report.Anomalies,
		Stats:     result.Report.Stats,
	}, nil
}
