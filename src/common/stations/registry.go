package stations

import (
	"fmt"
	"io"
	"strings"

	"github.com/jack-barr3tt/stk-engine/src/common/types"
	"github.com/jack-barr3tt/stk-engine/src/common/utils"
)

// Registry holds the static station tables, one per inspection type, indexed by station id.
// It is built once and only read afterwards.
type Registry struct {
	tables map[types.InspectionType]map[string]types.StationInfo
}

func NewRegistry(byType map[types.InspectionType][]types.StationInfo) *Registry {
	r := &Registry{tables: make(map[types.InspectionType]map[string]types.StationInfo, len(byType))}
	for t, records := range byType {
		table := make(map[string]types.StationInfo, len(records))
		for _, rec := range records {
			table[normalizeID(rec.ID)] = rec
		}
		r.tables[t] = table
	}
	return r
}

func (r *Registry) Lookup(code string, t types.InspectionType) (types.StationInfo, bool) {
	if r == nil {
		return types.StationInfo{}, false
	}
	table, ok := r.tables[t]
	if !ok {
		return types.StationInfo{}, false
	}
	info, ok := table[normalizeID(code)]
	return info, ok
}

// LookupProtocol resolves the station that issued a protocol number.
func (r *Registry) LookupProtocol(protocol string, t types.InspectionType) (types.StationInfo, bool) {
	code, ok := ExtractStationCode(protocol)
	if !ok {
		return types.StationInfo{}, false
	}
	return r.Lookup(code, t)
}

func (r *Registry) Len(t types.InspectionType) int {
	if r == nil {
		return 0
	}
	return len(r.tables[t])
}

func normalizeID(id string) string {
	return strings.TrimSpace(id)
}

// FormatStation renders the one-line location shown in the table: "operator, street, zip town".
func FormatStation(info types.StationInfo) string {
	parts := []string{}
	for _, p := range []string{info.OperatorName, info.Street} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if place := strings.TrimSpace(strings.TrimSpace(info.Zip) + " " + strings.TrimSpace(info.Town)); place != "" {
		parts = append(parts, place)
	}
	return strings.Join(parts, ", ")
}

// LoadJSON reads one reference record set.
func LoadJSON(r io.Reader) (*types.StationReference, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	ref, err := utils.UnmarshalStationReference(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode station reference: %w", err)
	}
	t, ok := ParseInspectionType(string(ref.Type))
	if !ok {
		return nil, fmt.Errorf("unknown inspection type %q in station reference", ref.Type)
	}
	ref.Type = t
	return ref, nil
}
