package types

import "time"

// MileagePoint is one day's odometer reading scraped from the inspection table.
type MileagePoint struct {
	Date     time.Time `json:"date"`
	Km       int       `json:"km"`
	DateText string    `json:"date_text"`
}

// Series is ordered by ascending Date with at most one point per day.
type Series []MileagePoint

type MileageAnomaly struct {
	Index int          `json:"index"`
	From  MileagePoint `json:"from"`
	To    MileagePoint `json:"to"`
	Diff  int          `json:"diff"`
}

type MileageStats struct {
	MinKm         int `json:"min_km"`
	MaxKm         int `json:"max_km"`
	TotalIncrease int `json:"total_increase"`
	DaySpan       int `json:"day_span"`
	AvgPerDay     int `json:"avg_per_day"`
	AvgPerYear    int `json:"avg_per_year"`
}

type MileageReport struct {
	Series    Series           `json:"series"`
	Anomalies []MileageAnomaly `json:"anomalies"`
	Stats     *MileageStats    `json:"stats,omitempty"`
}
