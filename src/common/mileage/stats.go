package mileage

import (
	"math"

	"github.com/jack-barr3tt/stk-engine/src/common/types"
)

// Summarize derives point estimates over the whole series, anomalous points
// included. It returns false for an empty series.
func Summarize(series types.Series) (types.MileageStats, bool) {
	if len(series) == 0 {
		return types.MileageStats{}, false
	}

	minKm, maxKm := series[0].Km, series[0].Km
	for _, p := range series[1:] {
		minKm = min(minKm, p.Km)
		maxKm = max(maxKm, p.Km)
	}

	days := series[len(series)-1].Date.Sub(series[0].Date).Hours() / 24
	daySpan := max(1, int(math.Round(days)))

	total := maxKm - minKm
	avgPerDay := int(math.Round(float64(total) / float64(daySpan)))

	return types.MileageStats{
		MinKm:         minKm,
		MaxKm:         maxKm,
		TotalIncrease: total,
		DaySpan:       daySpan,
		AvgPerDay:     avgPerDay,
		AvgPerYear:    avgPerDay * 365,
	}, true
}

// Analyze runs the whole pipeline over the rows of one table.
func Analyze[R RowAccessor](rows []R) types.MileageReport {
	series := BuildSeries(rows)
	report := types.MileageReport{
		Series:    series,
		Anomalies: DetectAnomalies(series),
	}
	if stats, ok := Summarize(series); ok {
		report.Stats = &stats
	}
	return report
}
