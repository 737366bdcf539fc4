package page

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Markers of the inspection history table as the site renders it. This is the
// one place to change when the site's markup changes.
const (
	WrapperSelector      = "#inspection-history"
	HeaderRowSelector    = "thead tr"
	RowSelector          = "tbody tr"
	DateCellSelector     = `td[data-cell="date"]`
	MileageCellSelector  = `td[data-cell="mileage"]`
	MileageTextSelector  = "span"
	ProtocolCellSelector = `td[data-cell="protocol"]`
	TypeCellSelector     = `td[data-cell="type"]`

	LocationAttr = "data-stk-location"
)

// Row is one data row of the inspection table. It implements mileage.RowAccessor.
type Row struct {
	sel *goquery.Selection
}

func Rows(wrapper *goquery.Selection) []Row {
	rows := []Row{}
	wrapper.Find(RowSelector).Each(func(_ int, s *goquery.Selection) {
		rows = append(rows, Row{sel: s})
	})
	return rows
}

func (r Row) cellText(selector string) (string, bool) {
	cell := r.sel.Find(selector).First()
	if cell.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(cell.Text()), true
}

func (r Row) DateText() (string, bool) {
	return r.cellText(DateCellSelector)
}

// MileageText reads the odometer value, which the site nests in an inner element of the cell.
func (r Row) MileageText() (string, bool) {
	inner := r.sel.Find(MileageCellSelector).First().Find(MileageTextSelector).First()
	if inner.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(inner.Text()), true
}

func (r Row) ProtocolText() (string, bool) {
	return r.cellText(ProtocolCellSelector)
}

func (r Row) TypeText() (string, bool) {
	return r.cellText(TypeCellSelector)
}
