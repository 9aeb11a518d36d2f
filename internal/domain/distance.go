package domain

import "math"

// DistanceSource - which tier of the fallback chain produced a distance
type DistanceSource string

const (
	SourceNone      DistanceSource = ""
	SourceCache     DistanceSource = "cache"
	SourceGrid      DistanceSource = "grid"
	SourceRouting   DistanceSource = "routing"
	SourceHaversine DistanceSource = "haversine"
)

// Route - answer of the external routing service
type Route struct {
	DistanceKm  float64 `json:"distance_km"`
	DurationMin float64 `json:"duration_min"`
	// Geometry is the encoded polyline exactly as returned by the service.
	Geometry string `json:"geometry,omitempty"`
}

// DistanceResult - distance between two points plus optional route metadata
type DistanceResult struct {
	DistanceKm  float64        `json:"distance_km"`
	DurationMin *float64       `json:"duration_min,omitempty"`
	Geometry    string         `json:"geometry,omitempty"`
	Source      DistanceSource `json:"source"`
}

// DistanceMatrix - dense [person][center] distances for one assignment run
type DistanceMatrix struct {
	Cells [][]DistanceResult `json:"cells"`
}

// NewDistanceMatrix allocates a rows×cols matrix with every distance set to unfilled.
func NewDistanceMatrix(rows, cols int, unfilled float64) *DistanceMatrix {
	cells := make([][]DistanceResult, rows)
	for i := range cells {
		row := make([]DistanceResult, cols)
		for j := range row {
			row[j] = DistanceResult{DistanceKm: unfilled}
		}
		cells[i] = row
	}
	return &DistanceMatrix{Cells: cells}
}

// Rows returns the number of people.
func (m *DistanceMatrix) Rows() int {
	return len(m.Cells)
}

// Cols returns the number of centers.
func (m *DistanceMatrix) Cols() int {
	if len(m.Cells) == 0 {
		return 0
	}
	return len(m.Cells[0])
}

// Distance returns the distance in km between person i and center j.
func (m *DistanceMatrix) Distance(i, j int) float64 {
	return m.Cells[i][j].DistanceKm
}

// Filled reports whether every cell holds a finite distance.
func (m *DistanceMatrix) Filled() bool {
	for _, row := range m.Cells {
		for _, c := range row {
			if math.IsInf(c.DistanceKm, 0) || math.IsNaN(c.DistanceKm) {
				return false
			}
		}
	}
	return true
}
