package mileage

import (
	"testing"

	"github.com/jack-barr3tt/stk-engine/src/common/types"
)

func TestSummarizeExample(t *testing.T) {
	rows := []testRow{
		{date: "1.1.2023", km: "10 000"},
		{date: "15.3.2023", km: "12500"},
		{date: "1.6.2023", km: "12000"},
	}
	stats, ok := Summarize(BuildSeries(rows))
	if !ok {
		t.Fatalf("expected stats")
	}
	if stats.MinKm != 10000 || stats.MaxKm != 12500 || stats.TotalIncrease != 2500 {
		t.Fatalf("unexpected min/max/total: %+v", stats)
	}
	// 1.1. -> 1.6.2023 is 151 days; 2500/151 = 16.56
	if stats.DaySpan != 151 || stats.AvgPerDay != 17 || stats.AvgPerYear != 17*365 {
		t.Fatalf("unexpected averages: %+v", stats)
	}
}

func TestSummarizeSameDayFloorsSpan(t *testing.T) {
	stats, ok := Summarize(seriesOf(42000))
	if !ok {
		t.Fatalf("expected stats for single point")
	}
	if stats.DaySpan != 1 || stats.TotalIncrease != 0 || stats.AvgPerDay != 0 || stats.AvgPerYear != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestSummarizeIncludesRollbackAtBoundary(t *testing.T) {
	// the last reading rolled back below the first; min follows it
	stats, _ := Summarize(seriesOf(10000, 20000, 5000))
	if stats.MinKm != 5000 || stats.MaxKm != 20000 || stats.TotalIncrease != 15000 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if _, ok := Summarize(types.Series{}); ok {
		t.Fatalf("expected no stats for empty series")
	}
}

func TestAnalyze(t *testing.T) {
	report := Analyze([]testRow{
		{date: "1.1.2023", km: "10 000"},
		{date: "15.3.2023", km: "12500"},
		{date: "1.6.2023", km: "12000"},
	})
	if len(report.Series) != 3 || len(report.Anomalies) != 1 || report.Stats == nil {
		t.Fatalf("unexpected report: %+v", report)
	}

	empty := Analyze([]testRow{})
	if len(empty.Series) != 0 || len(empty.Anomalies) != 0 || empty.Stats != nil {
		t.Fatalf("unexpected empty report: %+v", empty)
	}
}
