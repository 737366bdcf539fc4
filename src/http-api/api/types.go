package api

import (
	"github.com/jack-barr3tt/stk-engine/src/common/render"
	"github.com/jack-barr3tt/stk-engine/src/common/types"
)

type ErrorResponse struct {
	Error   string  `json:"error"`
	Message string  `json:"message"`
	Stack   *string `json:"stack,omitempty"`
}

type NotFoundResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// MileageRow is one table row as posted by a client. A nil field is a missing cell.
type MileageRow struct {
	Date    *string `json:"date"`
	Mileage *string `json:"mileage"`
}

func (r MileageRow) DateText() (string, bool) {
	if r.Date == nil {
		return "", false
	}
	return *r.Date, true
}

func (r MileageRow) MileageText() (string, bool) {
	if r.Mileage == nil {
		return "", false
	}
	return *r.Mileage, true
}

type MileageRequest struct {
	Rows []MileageRow `json:"rows"`
}

type MileageResponse struct {
	types.MileageReport
	StatLines []render.StatLine `json:"stat_lines"`
	Warnings  []string          `json:"warnings"`
}

type StationResponse struct {
	Code      string               `json:"code"`
	Type      types.InspectionType `json:"type"`
	Station   types.StationInfo    `json:"station"`
	Formatted string               `json:"formatted"`
}
