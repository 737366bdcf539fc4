package types

import "time"

// PageSnapshot is one capture of the inspection history page, as delivered by the browser bridge.
type PageSnapshot struct {
	ID         string    `json:"id"`
	URL        string    `json:"url,omitempty"`
	HTML       string    `json:"html"`
	CapturedAt time.Time `json:"captured_at"`
}

type AugmentedPage struct {
	ID        string           `json:"id"`
	HTML      string           `json:"html"`
	ChartID   string           `json:"chart_id,omitempty"`
	Points    int              `json:"points"`
	Anomalies []MileageAnomaly `json:"anomalies"`
	Stats     *MileageStats    `json:"stats,omitempty"`
}
