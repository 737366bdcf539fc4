package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jack-barr3tt/stk-engine/src/common/metrics"
	"github.com/jack-barr3tt/stk-engine/src/common/mileage"
	"github.com/jack-barr3tt/stk-engine/src/common/page"
	"github.com/jack-barr3tt/stk-engine/src/common/render"
	"github.com/jack-barr3tt/stk-engine/src/common/types"
)

func parseMileageRequest(c *fiber.Ctx) (types.MileageReport, error) {
	var req MileageRequest
	if err := c.BodyParser(&req); err != nil {
		return types.MileageReport{}, err
	}
	return mileage.Analyze(req.Rows), nil
}

func (s *APIServer) PostMileage(c *fiber.Ctx) error {
	report, err := parseMileageRequest(c)
	if err != nil {
		return badRequest(c, "body must be a JSON object with a rows array")
	}

	response := MileageResponse{
		MileageReport: report,
		StatLines:     []render.StatLine{},
		Warnings:      render.WarningLines(report.Anomalies),
	}
	if report.Stats != nil {
		response.StatLines = render.StatLines(*report.Stats)
	}
	return c.JSON(response)
}

func (s *APIServer) PostMileageChart(c *fiber.Ctx) error {
	format, ok := render.ParseFormat(c.Query("format"))
	if !ok {
		return badRequest(c, "format must be svg or png")
	}
	layout := render.Layout{
		Width:      c.QueryInt("width", 0),
		Height:     c.QueryInt("height", 0),
		PixelRatio: c.QueryFloat("dpr", 1),
	}

	report, err := parseMileageRequest(c)
	if err != nil {
		return badRequest(c, "body must be a JSON object with a rows array")
	}
	if report.Stats == nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error:   "No data",
			Message: "no row has both a valid date and a valid mileage",
		})
	}

	start := time.Now()
	chart, err := render.Render(report.Series, report.Anomalies, *report.Stats, layout, format)
	metrics.RenderDurationMs.WithLabelValues(string(format)).Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		s.Logger.Errorw("failed to render chart", "error", err, "format", format)
		return internalError(c, "Render error", "Failed to render chart", err)
	}

	id, err := page.ChartID(report.Series, chart.Context.Layout, format)
	if err != nil {
		s.Logger.Warnw("failed to derive chart id", "error", err)
	} else if err := s.Charts.SaveChart(c.Context(), id, chart); err != nil {
		s.Logger.Warnw("failed to cache chart", "chart", id, "error", err)
	} else {
		c.Set("X-Chart-Id", id)
	}

	c.Set(fiber.HeaderContentType, format.ContentType())
	return c.Send(chart.Image)
}
