package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jack-barr3tt/stk-engine/src/common/metrics"
	"github.com/jack-barr3tt/stk-engine/src/common/stations"
	"github.com/jack-barr3tt/stk-engine/src/common/types"
)

func (s *APIServer) stationResponse(c *fiber.Ctx, code string, t types.InspectionType) error {
	info, ok := s.Stations.Lookup(code, t)
	if !ok {
		metrics.StationLookupsTotal.WithLabelValues("miss").Inc()
		return c.Status(fiber.StatusNotFound).JSON(NotFoundResponse{
			Error: "Station not found",
		})
	}
	metrics.StationLookupsTotal.WithLabelValues("hit").Inc()

	return c.JSON(StationResponse{
		Code:      code,
		Type:      t,
		Station:   info,
		Formatted: stations.FormatStation(info),
	})
}

func (s *APIServer) GetStation(c *fiber.Ctx) error {
	t, ok := stations.ParseInspectionType(c.Params("type"))
	if !ok {
		return badRequest(c, "type must be STK or ME")
	}
	return s.stationResponse(c, c.Params("code"), t)
}

func (s *APIServer) GetProtocolStation(c *fiber.Ctx) error {
	t, ok := stations.ParseInspectionType(c.Query("type"))
	if !ok {
		return badRequest(c, "type query parameter must be STK or ME")
	}
	code, ok := stations.ExtractStationCode(c.Params("protocol"))
	if !ok {
		return badRequest(c, "protocol must look like CZ-<station>-<yy>-<mm>-<number>")
	}
	return s.stationResponse(c, code, t)
}
