package types

type InspectionType string

const (
	InspectionSTK InspectionType = "STK"
	InspectionME  InspectionType = "ME"
)

type StationInfo struct {
	ID           string `json:"id"`
	OperatorName string `json:"operator_name"`
	Street       string `json:"street"`
	Town         string `json:"town"`
	Zip          string `json:"zip"`
}

type StationReference struct {
	Version  string         `json:"version"`
	Type     InspectionType `json:"type"`
	Stations []StationInfo  `json:"stations"`
}
