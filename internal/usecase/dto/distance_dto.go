package dto

import (
	"github.com/center-assignment/internal/domain"
	"github.com/center-assignment/internal/domain/repository"
	"github.com/center-assignment/internal/pathfinder"
)

// DistanceRequest - distance between two points
type DistanceRequest struct {
	From             PointInput `json:"from"`
	To               PointInput `json:"to"`
	UseRoadDistances *bool      `json:"use_road_distances,omitempty"`
}

// DistanceResponse - resolved distance
type DistanceResponse struct {
	domain.DistanceResult
	StraightLineKm float64 `json:"straight_line_km"`
}

// MatrixRequest - origins x destinations matrix
type MatrixRequest struct {
	Origins          []PointInput `json:"origins" validate:"required,min=1,max=100"`
	Destinations     []PointInput `json:"destinations" validate:"required,min=1,max=100"`
	UseRoadDistances *bool        `json:"use_road_distances,omitempty"`
}

// MatrixResponse - dense matrix in origin-major order
type MatrixResponse struct {
	Rows        int                       `json:"rows"`
	Cols        int                       `json:"cols"`
	DistancesKm [][]float64               `json:"distances_km"`
	Cells       [][]domain.DistanceResult `json:"cells"`
}

// CacheStatsResponse - distance cache and grid memo statistics
type CacheStatsResponse struct {
	Distance repository.CacheStats `json:"distance"`
	Grid     *pathfinder.CacheStats `json:"grid,omitempty"`
}
