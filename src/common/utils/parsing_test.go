package utils

import (
	"testing"
	"time"
)

func TestParseDay(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"1.1.2023", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"15.03.2023", time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{" 1. 6. 2023 ", time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), true},
		{"29.2.2024", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), true},
		{"29.2.2023", time.Time{}, false},
		{"31.4.2023", time.Time{}, false},
		{"1.13.2023", time.Time{}, false},
		{"0.1.2023", time.Time{}, false},
		{"1.1", time.Time{}, false},
		{"1.1.", time.Time{}, false},
		{"a.1.2023", time.Time{}, false},
		{"1.1.2023.5", time.Time{}, false},
		{"2023-01-01", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, c := range cases {
		got, ok := ParseDay(c.in)
		if ok != c.ok {
			t.Fatalf("ParseDay(%q) ok=%v, want %v", c.in, ok, c.ok)
		}
		if ok && !got.Equal(c.want) {
			t.Fatalf("ParseDay(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseMileage(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"10 000", 10000, true},
		{"12500", 12500, true},
		{"123 456", 123456, true},
		{"1 234 567", 1234567, true},
		{"  42 \n", 42, true},
		{"0", 0, true},
		{"", 0, false},
		{"   ", 0, false},
		{"-5", 0, false},
		{"12 km", 0, false},
		{"1.5", 0, false},
	}

	for _, c := range cases {
		got, ok := ParseMileage(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("ParseMileage(%q) = (%d, %v), want (%d, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestFormatKm(t *testing.T) {
	cases := map[int]string{
		0:       "0",
		999:     "999",
		1000:    "1 000",
		12500:   "12 500",
		1234567: "1 234 567",
	}
	for in, want := range cases {
		if got := FormatKm(in); got != want {
			t.Fatalf("FormatKm(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("CHART_TTL", "90s")
	if got := GetEnvDuration("CHART_TTL", time.Minute); got != 90*time.Second {
		t.Fatalf("expected 90s, got %v", got)
	}
	t.Setenv("CHART_TTL", "120")
	if got := GetEnvDuration("CHART_TTL", time.Minute); got != 2*time.Minute {
		t.Fatalf("expected 2m, got %v", got)
	}
	t.Setenv("CHART_TTL", "soon")
	if got := GetEnvDuration("CHART_TTL", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback, got %v", got)
	}
}

func TestUnmarshalSnapshots(t *testing.T) {
	one, err := UnmarshalSnapshots([]byte(` {"id":"a","html":"<p></p>"}`))
	if err != nil || len(one) != 1 || one[0].ID != "a" {
		t.Fatalf("single = %+v, %v", one, err)
	}

	batch, err := UnmarshalSnapshots([]byte(`[{"id":"a","html":""},{"id":"b","html":""}]`))
	if err != nil || len(batch) != 2 || batch[1].ID != "b" {
		t.Fatalf("batch = %+v, %v", batch, err)
	}

	if _, err := UnmarshalSnapshots([]byte(`{"id":`)); err == nil {
		t.Fatal("expected error for truncated json")
	}
}

func TestBuildChartKey(t *testing.T) {
	if got := BuildChartKey("abc"); got != "chart:abc" {
		t.Fatalf("BuildChartKey = %q", got)
	}
}
