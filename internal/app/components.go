// Package app wires the components shared by the api, worker and assign commands.
package app

import (
	"github.com/center-assignment/internal/assignment"
	"github.com/center-assignment/internal/config"
	"github.com/center-assignment/internal/domain/repository"
	"github.com/center-assignment/internal/infrastructure/mapbox"
	"github.com/center-assignment/internal/infrastructure/osrm"
	"github.com/center-assignment/internal/pathfinder"
	"github.com/center-assignment/internal/pkg/logger"
	"github.com/center-assignment/internal/repository/cache"
	"github.com/center-assignment/internal/usecase"
	"go.uber.org/zap"
)

// Components - use cases built from one Config
type Components struct {
	Distances  *usecase.DistanceProvider
	Assignment *usecase.AssignmentUseCase
	Distance   *usecase.DistanceUseCase
	Graph      *usecase.GraphUseCase
}

// NewRouting returns the routing client selected by ROUTING_PROVIDER
func NewRouting(cfg *config.Config, log *zap.Logger) repository.RoutingRepository {
	switch cfg.Routing.Provider {
	case config.ProviderMapbox:
		return mapbox.NewMapboxClient(&cfg.Routing.Mapbox, logger.Component(log, "mapbox"))
	default:
		return osrm.NewOSRMClient(&cfg.Routing.OSRM, logger.Component(log, "osrm"))
	}
}

func NewDistanceProvider(cfg *config.Config, log *zap.Logger) *usecase.DistanceProvider {
	grid := pathfinder.NewPathfinder(pathfinder.Config{
		ResolutionDeg: cfg.Grid.ResolutionDeg,
		MarginDeg:     cfg.Grid.MarginDeg,
		MaxRangeKm:    cfg.Grid.MaxRangeKm,
		MaxExpansions: cfg.Grid.MaxExpansions,
	}, logger.Component(log, "pathfinder"))

	distCfg := usecase.DefaultDistanceConfig()
	distCfg.UseRoadDistances = cfg.Assignment.UseRoadDistances
	distCfg.BatchSize = cfg.Distance.BatchSize
	distCfg.BatchDelay = cfg.Distance.BatchDelay
	distCfg.GridMaxRangeKm = cfg.Grid.MaxRangeKm

	return usecase.NewDistanceProvider(
		NewRouting(cfg, log),
		grid,
		cache.NewDistanceCache(cfg.Distance.CacheTTL, logger.Component(log, "distance-cache")),
		logger.Component(log, "distance"),
		distCfg,
	)
}

func NewComponents(cfg *config.Config, log *zap.Logger) *Components {
	distances := NewDistanceProvider(cfg, log)
	return &Components{
		Distances: distances,
		Assignment: usecase.NewAssignmentUseCase(
			distances,
			assignment.NewEngine(),
			logger.Component(log, "assignment"),
			cfg.Assignment.CapacityPerCenter,
			cfg.Assignment.UseRoadDistances,
		),
		Distance: usecase.NewDistanceUseCase(distances, logger.Component(log, "distance")),
		Graph:    usecase.NewGraphUseCase(logger.Component(log, "graph")),
	}
}
