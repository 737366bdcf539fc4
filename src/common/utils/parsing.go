package utils

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/jack-barr3tt/stk-engine/src/common/types"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ParseDay parses the table's D.M.YYYY date text into a UTC midnight date.
func ParseDay(text string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(text), ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return time.Time{}, false
		}
		nums[i] = n
	}

	day, month, year := nums[0], nums[1], nums[2]
	if year < 1000 || month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalises 31.2. into March; reject instead
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

// ParseMileage strips all whitespace, thousand separators included, and parses a non-negative integer.
func ParseMileage(text string) (int, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '\u00a0' || r == '\u202f' {
			return -1
		}
		return r
	}, text)
	if cleaned == "" {
		return 0, false
	}

	km, err := strconv.Atoi(cleaned)
	if err != nil || km < 0 {
		return 0, false
	}
	return km, true
}

var kmPrinter = message.NewPrinter(language.English)

// FormatKm groups digits by three with a plain space, the way the site prints
// odometer values: 12500 -> "12 500".
func FormatKm(km int) string {
	return strings.ReplaceAll(kmPrinter.Sprintf("%d", km), ",", " ")
}

func UnmarshalSnapshot(data []byte) (*types.PageSnapshot, error) {
	var snapshot types.PageSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// UnmarshalSnapshots accepts either one snapshot or a batch of them, which is
// how the bridge flushes several tabs at once.
func UnmarshalSnapshots(data []byte) ([]types.PageSnapshot, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var snapshots []types.PageSnapshot
		if err := json.Unmarshal([]byte(trimmed), &snapshots); err != nil {
			return nil, err
		}
		return snapshots, nil
	}

	snapshot, err := UnmarshalSnapshot([]byte(trimmed))
	if err != nil {
		return nil, err
	}
	return []types.PageSnapshot{*snapshot}, nil
}

func UnmarshalStationReference(data []byte) (*types.StationReference, error) {
	var ref types.StationReference
	if err := json.Unmarshal(data, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}
