package domain

import "github.com/google/uuid"

// AssignmentStatus - terminal state of an assignment run
type AssignmentStatus string

const (
	// StatusDone means every person was placed.
	StatusDone AssignmentStatus = "done"
	// StatusPartial means capacity ran out before everyone was placed.
	StatusPartial AssignmentStatus = "partial"
)

// Assignment - one person placed at one center
type Assignment struct {
	PersonIndex int      `json:"person_index"`
	CenterIndex int      `json:"center_index"`
	Person      GeoPoint `json:"person"`
	Center      GeoPoint `json:"center"`
	DistanceKm  float64  `json:"distance_km"`
	Category    Category `json:"category"`
}

// AssignmentStats - aggregate figures over a run; distance figures cover assigned
// people only and are zero when nobody was assigned
type AssignmentStats struct {
	TotalPeople       int     `json:"total_people"`
	TotalAssigned     int     `json:"total_assigned"`
	Unassigned        int     `json:"unassigned"`
	TotalCapacity     int     `json:"total_capacity"`
	PWDAssigned       int     `json:"pwd_assigned"`
	FemaleAssigned    int     `json:"female_assigned"`
	MaleAssigned      int     `json:"male_assigned"`
	AverageDistanceKm float64 `json:"average_distance_km"`
	MinDistanceKm     float64 `json:"min_distance_km"`
	MaxDistanceKm     float64 `json:"max_distance_km"`
}

// ComplexityInfo - human readable cost model of a run
type ComplexityInfo struct {
	TimeComplexity  string `json:"time_complexity"`
	SpaceComplexity string `json:"space_complexity"`
	Description     string `json:"description"`
}

// AssignmentResult - full outcome of one assignment run
type AssignmentResult struct {
	RunID             uuid.UUID        `json:"run_id"`
	Status            AssignmentStatus `json:"status"`
	Assignments       []Assignment     `json:"assignments"`
	UnassignedPeople  []int            `json:"unassigned_people"`
	CenterLoad        []int            `json:"center_load"`
	RemainingCapacity []int            `json:"remaining_capacity"`
	Stats             AssignmentStats  `json:"stats"`
	Complexity        ComplexityInfo   `json:"complexity"`
	RoadDistances     bool             `json:"road_distances"`
}
