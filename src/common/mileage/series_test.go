package mileage

import (
	"testing"
	"time"
)

type testRow struct {
	date, km     string
	noDate, noKm bool
}

func (r testRow) DateText() (string, bool)    { return r.date, !r.noDate }
func (r testRow) MileageText() (string, bool) { return r.km, !r.noKm }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildSeriesExample(t *testing.T) {
	rows := []testRow{
		{date: "1.1.2023", km: "10 000"},
		{date: "15.3.2023", km: "12500"},
		{date: "1.6.2023", km: "12000"},
	}
	series := BuildSeries(rows)
	if len(series) != 3 {
		t.Fatalf("expected 3 points, got %d", len(series))
	}
	want := []struct {
		date time.Time
		km   int
	}{
		{day(2023, 1, 1), 10000},
		{day(2023, 3, 15), 12500},
		{day(2023, 6, 1), 12000},
	}
	for i, w := range want {
		if !series[i].Date.Equal(w.date) || series[i].Km != w.km {
			t.Fatalf("point %d = %+v, want %v/%d", i, series[i], w.date, w.km)
		}
	}
	if series[1].DateText != "15.3.2023" {
		t.Fatalf("expected display text to be kept, got %q", series[1].DateText)
	}
}

func TestBuildSeriesSortsAndDedupes(t *testing.T) {
	rows := []testRow{
		{date: "3.5.2022", km: "50 000"},
		{date: "1.1.2020", km: "10 000"},
		{date: "3.5.2022", km: "50 120"},
		{date: "3.5.2022", km: "49 999"},
		{date: "12.8.2021", km: "30 000"},
		{date: "1.1.2020", km: "9 000"},
	}
	series := BuildSeries(rows)
	if len(series) != 3 {
		t.Fatalf("expected 3 days, got %d: %+v", len(series), series)
	}
	for i := 1; i < len(series); i++ {
		if !series[i-1].Date.Before(series[i].Date) {
			t.Fatalf("series not strictly ascending at %d: %v >= %v", i, series[i-1].Date, series[i].Date)
		}
	}
	if series[0].Km != 10000 {
		t.Fatalf("expected max of 1.1.2020 readings, got %d", series[0].Km)
	}
	if series[2].Km != 50120 {
		t.Fatalf("expected max of 3.5.2022 readings, got %d", series[2].Km)
	}
}

func TestBuildSeriesSkipsBadRows(t *testing.T) {
	rows := []testRow{
		{date: "1.1.2023", km: "1 000"},
		{date: "1.2.2023", noKm: true},
		{noDate: true, km: "5 000"},
		{date: "x.2.2023", km: "2 000"},
		{date: "1.3.2023", km: "n/a"},
		{date: "1.4", km: "3 000"},
		{date: "1.5.2023", km: "4 000"},
	}
	series := BuildSeries(rows)
	if len(series) != 2 {
		t.Fatalf("expected 2 valid points, got %d: %+v", len(series), series)
	}
	if series[0].Km != 1000 || series[1].Km != 4000 {
		t.Fatalf("unexpected points: %+v", series)
	}
}

func TestBuildSeriesEmpty(t *testing.T) {
	series := BuildSeries([]testRow{})
	if series == nil || len(series) != 0 {
		t.Fatalf("expected empty non-nil series, got %#v", series)
	}
	if got := BuildSeries[testRow](nil); len(got) != 0 {
		t.Fatalf("expected empty series for nil rows")
	}
}

func TestBuildSeriesSameDaySpelledDifferently(t *testing.T) {
	rows := []testRow{
		{date: "01.02.2023", km: "700"},
		{date: "1.2.2023", km: "900"},
	}
	series := BuildSeries(rows)
	if len(series) != 1 {
		t.Fatalf("expected one point per calendar day, got %d", len(series))
	}
	if series[0].Km != 900 || series[0].DateText != "1.2.2023" {
		t.Fatalf("unexpected point: %+v", series[0])
	}
}
