package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jack-barr3tt/stk-engine/src/common/data"
	"github.com/jack-barr3tt/stk-engine/src/common/render"
)

func (s *APIServer) loadChart(c *fiber.Ctx) (*render.Chart, error) {
	chart, err := s.Charts.GetChart(c.Context(), c.Params("id"))
	if errors.Is(err, data.ErrChartNotFound) {
		return nil, c.Status(fiber.StatusNotFound).JSON(NotFoundResponse{
			Error: "Chart not found",
		})
	}
	if err != nil {
		s.Logger.Errorw("failed to read chart", "error", err, "chart", c.Params("id"))
		return nil, internalError(c, "Cache error", "Failed to retrieve chart", err)
	}
	return chart, nil
}

func (s *APIServer) GetChart(c *fiber.Ctx) error {
	chart, err := s.loadChart(c)
	if chart == nil {
		return err
	}
	c.Set(fiber.HeaderContentType, chart.Format.ContentType())
	return c.Send(chart.Image)
}

// GetChartTooltip hit-tests a pointer position, in CSS pixels relative to the
// chart surface, against a cached chart.
func (s *APIServer) GetChartTooltip(c *fiber.Ctx) error {
	x, errX := strconv.ParseFloat(c.Query("x"), 64)
	y, errY := strconv.ParseFloat(c.Query("y"), 64)
	if errX != nil || errY != nil {
		return badRequest(c, "x and y query parameters are required")
	}

	chart, err := s.loadChart(c)
	if chart == nil {
		return err
	}

	return c.JSON(render.AttachTooltip(chart.Context).Move(x, y))
}
