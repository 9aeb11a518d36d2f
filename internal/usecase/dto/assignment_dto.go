package dto

import "github.com/center-assignment/internal/domain"

// PointInput - bare coordinates; range checks happen in the use case so they
// surface as INVALID_COORDINATES
type PointInput struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// PersonInput - a person to place
type PersonInput struct {
	Lat      float64 `json:"lat" yaml:"lat"`
	Lon      float64 `json:"lon" yaml:"lon"`
	Category string  `json:"category" yaml:"category" validate:"required"`
}

// AssignRequest - request to assign people to centers
type AssignRequest struct {
	People            []PersonInput `json:"people" yaml:"people" validate:"required,min=1,max=10000,dive"`
	Centers           []PointInput  `json:"centers" yaml:"centers" validate:"required,min=1,max=1000"`
	CapacityPerCenter int           `json:"capacity_per_center,omitempty" yaml:"capacity_per_center" validate:"omitempty,min=1"`
	UseRoadDistances  *bool         `json:"use_road_distances,omitempty" yaml:"use_road_distances"`
}

// AssignResponse - assignment result plus timing
type AssignResponse struct {
	domain.AssignmentResult
	DurationMs float64 `json:"duration_ms"`
}

// PeopleFromDomain converts stream event points into request inputs
func PeopleFromDomain(points []domain.GeoPoint) []PersonInput {
	out := make([]PersonInput, len(points))
	for i, p := range points {
		out[i] = PersonInput{Lat: p.Lat, Lon: p.Lon, Category: string(p.Category)}
	}
	return out
}

// CentersFromDomain converts stream event points into request inputs
func CentersFromDomain(points []domain.GeoPoint) []PointInput {
	out := make([]PointInput, len(points))
	for i, p := range points {
		out[i] = PointInput{Lat: p.Lat, Lon: p.Lon}
	}
	return out
}
