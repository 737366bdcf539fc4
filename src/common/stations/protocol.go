package stations

import (
	"regexp"
	"strings"

	"github.com/jack-barr3tt/stk-engine/src/common/types"
)

// CZ-<station>-<yy>-<mm>-<sequence>
var protocolPattern = regexp.MustCompile(`^CZ-(\d+)-\d{2}-\d{2}-\d+$`)

// ExtractStationCode returns the station code embedded in a protocol number.
func ExtractStationCode(protocol string) (string, bool) {
	m := protocolPattern.FindStringSubmatch(strings.TrimSpace(protocol))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ParseInspectionType maps the inspection type cell text to one of the two reference tables.
func ParseInspectionType(text string) (types.InspectionType, bool) {
	t := strings.ToUpper(strings.TrimSpace(text))
	switch {
	case t == "":
		return "", false
	case t == string(types.InspectionME), strings.Contains(t, "EMIS"):
		return types.InspectionME, true
	case strings.Contains(t, string(types.InspectionSTK)), strings.Contains(t, "TECHNICK"):
		return types.InspectionSTK, true
	}
	return "", false
}
