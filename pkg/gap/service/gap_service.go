package service

import "context"

type Severity string

const (
	SeverityGood     Severity = "good"
	SeverityModerate Severity = "moderate"
	SeverityCritical Severity = "critical"
)

// Filter narrows the analysis. Empty fields match everything.
type Filter struct {
	District    string
	AmenityType string
}

type AmenityGap struct {
	AmenityType string   `json:"amenityType"`
	Available   int      `json:"available"`
	Required    int      `json:"required"`
	Gap         int      `json:"gap"`
	Coverage    float64  `json:"coverage"`
	Severity    Severity `json:"severity"`
}

type VillageGap struct {
	VillageID string       `json:"villageId"`
	Name      string       `json:"name"`
	District  string       `json:"district"`
	Block     string       `json:"block"`
	Amenities []AmenityGap `json:"amenities"`
	Coverage  float64      `json:"coverage"`
	Severity  Severity     `json:"severity"`
}

type Analysis struct {
	Villages         []VillageGap `json:"villages"`
	Summary          []AmenityGap `json:"summary"`
	CriticalVillages int          `json:"criticalVillages"`
}

type GapService interface {
	Analyze(ctx context.Context, f Filter) (*Analysis, error)
	// Export renders the analysis as an xlsx workbook.
	Export(ctx context.Context, f Filter) ([]byte, error)
}
