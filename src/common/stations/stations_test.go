package stations

import (
	"strings"
	"testing"

	"github.com/jack-barr3tt/stk-engine/src/common/types"
)

func TestExtractStationCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"CZ-1234-23-05-0007", "1234", true},
		{" CZ-3201-19-11-12345 ", "3201", true},
		{"CZ-9-00-00-1", "9", true},
		{"CZ-1234-2-05-0007", "", false},
		{"CZ-1234-23-05", "", false},
		{"SK-1234-23-05-0007", "", false},
		{"CZ-ABCD-23-05-0007", "", false},
		{"xCZ-1234-23-05-0007", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := ExtractStationCode(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("ExtractStationCode(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestParseInspectionType(t *testing.T) {
	cases := []struct {
		in   string
		want types.InspectionType
	}{
		{"STK", types.InspectionSTK},
		{"stk", types.InspectionSTK},
		{"Technická prohlídka", types.InspectionSTK},
		{"ME", types.InspectionME},
		{"Měření emisí", types.InspectionME},
		{"Emise", types.InspectionME},
	}
	for _, c := range cases {
		got, ok := ParseInspectionType(c.in)
		if !ok || got != c.want {
			t.Fatalf("ParseInspectionType(%q) = (%q, %v), want %q", c.in, got, ok, c.want)
		}
	}
	if _, ok := ParseInspectionType("evidenční kontrola"); ok {
		t.Fatalf("expected unknown type to fail")
	}
}

func testRegistry() *Registry {
	return NewRegistry(map[types.InspectionType][]types.StationInfo{
		types.InspectionSTK: {
			{ID: "3201", OperatorName: "STK Plzeň s.r.o.", Street: "Domažlická 1", Town: "Plzeň", Zip: "318 00"},
		},
		types.InspectionME: {
			{ID: "1234", OperatorName: "Emise Brno", Street: "Vídeňská 5", Town: "Brno", Zip: "619 00"},
		},
	})
}

func TestRegistryLookup(t *testing.T) {
	r := testRegistry()

	info, ok := r.Lookup("3201", types.InspectionSTK)
	if !ok || info.Town != "Plzeň" {
		t.Fatalf("expected STK station 3201, got %+v %v", info, ok)
	}

	// tables are separate per inspection type
	if _, ok := r.Lookup("1234", types.InspectionSTK); ok {
		t.Fatalf("1234 is only an emission station")
	}
	if _, ok := r.Lookup("1234", types.InspectionME); !ok {
		t.Fatalf("expected emission station 1234")
	}
	if _, ok := r.Lookup("3201", "XX"); ok {
		t.Fatalf("unknown type must not match")
	}

	var nilRegistry *Registry
	if _, ok := nilRegistry.Lookup("3201", types.InspectionSTK); ok {
		t.Fatalf("nil registry must not match")
	}
}

func TestRegistryLookupProtocol(t *testing.T) {
	r := testRegistry()

	// station 1234 does not exist in the STK table
	code, ok := ExtractStationCode("CZ-1234-23-05-0007")
	if !ok || code != "1234" {
		t.Fatalf("unexpected code %q", code)
	}
	if _, ok := r.LookupProtocol("CZ-1234-23-05-0007", types.InspectionSTK); ok {
		t.Fatalf("expected no STK station for 1234")
	}

	info, ok := r.LookupProtocol("CZ-3201-22-01-0001", types.InspectionSTK)
	if !ok || info.ID != "3201" {
		t.Fatalf("expected station 3201, got %+v", info)
	}
	if _, ok := r.LookupProtocol("garbage", types.InspectionSTK); ok {
		t.Fatalf("expected no match for malformed protocol")
	}
}

func TestFormatStation(t *testing.T) {
	got := FormatStation(types.StationInfo{OperatorName: "STK Plzeň s.r.o.", Street: "Domažlická 1", Town: "Plzeň", Zip: "318 00"})
	if want := "STK Plzeň s.r.o., Domažlická 1, 318 00 Plzeň"; got != want {
		t.Fatalf("FormatStation = %q, want %q", got, want)
	}
	if got := FormatStation(types.StationInfo{OperatorName: "Op", Town: "Town"}); got != "Op, Town" {
		t.Fatalf("unexpected partial format %q", got)
	}
}

func TestLoadJSON(t *testing.T) {
	ref, err := LoadJSON(strings.NewReader(`{"version":"2024-01","type":"STK","stations":[{"id":"3201","operator_name":"A","street":"B","town":"C","zip":"D"}]}`))
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if ref.Type != types.InspectionSTK || len(ref.Stations) != 1 || ref.Stations[0].ID != "3201" {
		t.Fatalf("unexpected reference %+v", ref)
	}

	if _, err := LoadJSON(strings.NewReader(`{"type":"XX","stations":[]}`)); err == nil {
		t.Fatalf("expected error for unknown type")
	}
	if _, err := LoadJSON(strings.NewReader(`not json`)); err == nil {
		t.Fatalf("expected decode error")
	}
}
