package repository

import (
	"context"

	"github.com/center-assignment/internal/domain"
)

// RoutingRepository - external road routing service (OSRM, Mapbox Directions)
type RoutingRepository interface {
	// Route returns the road distance, duration and encoded geometry between two points
	Route(ctx context.Context, from, to domain.GeoPoint) (*domain.Route, error)
}

// ProgressSink receives matrix computation progress. Implementations must not block.
type ProgressSink interface {
	Update(completed, total int, message string)
}
