package mileage

import (
	"sort"
	"strings"
	"time"

	"github.com/jack-barr3tt/stk-engine/src/common/types"
	"github.com/jack-barr3tt/stk-engine/src/common/utils"
)

// RowAccessor exposes the two cells of an inspection row the series is built from.
// ok is false when the cell is missing from the row.
type RowAccessor interface {
	DateText() (text string, ok bool)
	MileageText() (text string, ok bool)
}

// BuildSeries extracts one reading per day from the table rows, keeping the
// highest mileage seen for a day, ordered by ascending date. Rows that are
// missing a cell or fail to parse are skipped.
func BuildSeries[R RowAccessor](rows []R) types.Series {
	byDay := make(map[time.Time]types.MileagePoint)

	for _, row := range rows {
		dateText, ok := row.DateText()
		if !ok {
			continue
		}
		kmText, ok := row.MileageText()
		if !ok {
			continue
		}

		dateText = strings.TrimSpace(dateText)
		date, ok := utils.ParseDay(dateText)
		if !ok {
			continue
		}
		km, ok := utils.ParseMileage(kmText)
		if !ok {
			continue
		}

		if existing, seen := byDay[date]; seen && existing.Km >= km {
			continue
		}
		byDay[date] = types.MileagePoint{Date: date, Km: km, DateText: dateText}
	}

	series := make(types.Series, 0, len(byDay))
	for _, point := range byDay {
		series = append(series, point)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})

	return series
}
