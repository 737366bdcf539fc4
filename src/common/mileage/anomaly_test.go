package mileage

import (
	"testing"

	"github.com/jack-barr3tt/stk-engine/src/common/types"
)

func seriesOf(kms ...int) types.Series {
	s := make(types.Series, len(kms))
	for i, km := range kms {
		d := day(2020, 1, 1).AddDate(0, i, 0)
		s[i] = types.MileagePoint{Date: d, Km: km, DateText: d.Format("2.1.2006")}
	}
	return s
}

func TestDetectAnomaliesExample(t *testing.T) {
	rows := []testRow{
		{date: "1.1.2023", km: "10 000"},
		{date: "15.3.2023", km: "12500"},
		{date: "1.6.2023", km: "12000"},
	}
	anomalies := DetectAnomalies(BuildSeries(rows))
	if len(anomalies) != 1 {
		t.Fatalf("expected 1 anomaly, got %d", len(anomalies))
	}
	a := anomalies[0]
	if a.Index != 2 || a.Diff != 500 || a.From.Km != 12500 || a.To.Km != 12000 {
		t.Fatalf("unexpected anomaly: %+v", a)
	}
}

func TestDetectAnomaliesEveryDrop(t *testing.T) {
	series := seriesOf(100, 200, 199, 150, 300, 300, 10)
	anomalies := DetectAnomalies(series)
	wantIdx := []int{2, 3, 6}
	wantDiff := []int{1, 49, 290}
	if len(anomalies) != len(wantIdx) {
		t.Fatalf("expected %d anomalies, got %d: %+v", len(wantIdx), len(anomalies), anomalies)
	}
	for i, a := range anomalies {
		if a.Index != wantIdx[i] || a.Diff != wantDiff[i] {
			t.Fatalf("anomaly %d = index %d diff %d, want %d/%d", i, a.Index, a.Diff, wantIdx[i], wantDiff[i])
		}
		if a.From != series[a.Index-1] || a.To != series[a.Index] {
			t.Fatalf("anomaly %d does not reference its adjacent pair", i)
		}
	}
}

func TestDetectAnomaliesIffDecrease(t *testing.T) {
	series := seriesOf(5, 5, 6, 4, 4, 9, 8, 8, 20)
	flagged := map[int]bool{}
	for _, a := range DetectAnomalies(series) {
		flagged[a.Index] = true
		if a.Diff != series[a.Index-1].Km-series[a.Index].Km || a.Diff <= 0 {
			t.Fatalf("bad diff for %+v", a)
		}
	}
	for i := 1; i < len(series); i++ {
		if decrease := series[i].Km < series[i-1].Km; decrease != flagged[i] {
			t.Fatalf("index %d: decrease=%v flagged=%v", i, decrease, flagged[i])
		}
	}
}

func TestDetectAnomaliesShortSeries(t *testing.T) {
	if got := DetectAnomalies(nil); len(got) != 0 {
		t.Fatalf("expected none for nil series")
	}
	if got := DetectAnomalies(seriesOf(10)); len(got) != 0 {
		t.Fatalf("expected none for single point")
	}
}

func TestAnomalousIndexes(t *testing.T) {
	marked := AnomalousIndexes(DetectAnomalies(seriesOf(1, 3, 2, 5, 4)))
	for _, i := range []int{1, 2, 3, 4} {
		if !marked[i] {
			t.Fatalf("expected index %d marked", i)
		}
	}
	if marked[0] {
		t.Fatalf("index 0 should not be marked")
	}
}
