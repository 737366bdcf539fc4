package mileage

import "github.com/jack-barr3tt/stk-engine/src/common/types"

// DetectAnomalies reports every adjacent pair whose mileage goes down. There
// is no tolerance and consecutive drops are reported separately.
func DetectAnomalies(series types.Series) []types.MileageAnomaly {
	anomalies := []types.MileageAnomaly{}

	for i := 1; i < len(series); i++ {
		from, to := series[i-1], series[i]
		if to.Km < from.Km {
			anomalies = append(anomalies, types.MileageAnomaly{
				Index: i,
				From:  from,
				To:    to,
				Diff:  from.Km - to.Km,
			})
		}
	}

	return anomalies
}

// AnomalousIndexes marks both points of every anomalous pair.
func AnomalousIndexes(anomalies []types.MileageAnomaly) map[int]bool {
	marked := make(map[int]bool, len(anomalies)*2)
	for _, a := range anomalies {
		marked[a.Index-1] = true
		marked[a.Index] = true
	}
	return marked
}
