package usecase

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/center-assignment/internal/domain"
	"github.com/center-assignment/internal/domain/repository"
	"github.com/center-assignment/internal/metrics"
	"github.com/center-assignment/internal/pathfinder"
	"github.com/center-assignment/internal/pkg/errors"
	"github.com/center-assignment/internal/pkg/utils"
	"github.com/center-assignment/internal/progress"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// GridPathfinder is the short-range distance estimator used before the routing service
type GridPathfinder interface {
	FindPath(ctx context.Context, a, b domain.GeoPoint) (*pathfinder.Path, error)
	ClearCache()
	CacheStats() pathfinder.CacheStats
}

// DistanceConfig controls the fallback chain and the matrix batching
type DistanceConfig struct {
	UseRoadDistances bool
	BatchSize        int
	BatchDelay       time.Duration
	GridMaxRangeKm   float64
	// UnfilledDistanceKm is written to matrix cells that were never computed.
	// nil means +Inf.
	UnfilledDistanceKm *float64
}

// Unfilled returns the sentinel for never computed matrix cells.
func (c DistanceConfig) Unfilled() float64 {
	if c.UnfilledDistanceKm == nil {
		return math.Inf(1)
	}
	return *c.UnfilledDistanceKm
}

func DefaultDistanceConfig() DistanceConfig {
	return DistanceConfig{
		UseRoadDistances: true,
		BatchSize:        25,
		BatchDelay:       100 * time.Millisecond,
		GridMaxRangeKm:   100,
	}
}

// DistanceProvider resolves point to point distances through
// cache -> grid search -> routing service -> Haversine.
type DistanceProvider struct {
	routing repository.RoutingRepository
	grid    GridPathfinder
	cache   repository.DistanceCache
	logger  *zap.Logger
	cfg     DistanceConfig
}

// NewDistanceProvider wires the provider. routing and grid may be nil, in which case
// that tier is skipped.
func NewDistanceProvider(
	routing repository.RoutingRepository,
	grid GridPathfinder,
	cache repository.DistanceCache,
	logger *zap.Logger,
	cfg DistanceConfig,
) *DistanceProvider {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 25
	}
	if cfg.BatchDelay < 0 {
		cfg.BatchDelay = 0
	}
	if cfg.GridMaxRangeKm <= 0 {
		cfg.GridMaxRangeKm = 100
	}
	return &DistanceProvider{
		routing: routing,
		grid:    grid,
		cache:   cache,
		logger:  logger,
		cfg:     cfg,
	}
}

// WithRoadDistances returns a provider sharing the same cache and collaborators
// with road distances switched on or off.
func (p *DistanceProvider) WithRoadDistances(enabled bool) *DistanceProvider {
	cp := *p
	cp.cfg.UseRoadDistances = enabled
	return &cp
}

// RoadDistances reports whether the road tiers are enabled.
func (p *DistanceProvider) RoadDistances() bool {
	return p.cfg.UseRoadDistances
}

// GetDistance returns the best available distance between a and b. Only invalid
// coordinates produce an error; every other failure degrades to the next tier.
func (p *DistanceProvider) GetDistance(ctx context.Context, a, b domain.GeoPoint) (domain.DistanceResult, error) {
	if !utils.ValidateCoordinates(a.Lat, a.Lon) || !utils.ValidateCoordinates(b.Lat, b.Lon) {
		return domain.DistanceResult{}, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"from": []float64{a.Lat, a.Lon},
			"to":   []float64{b.Lat, b.Lon},
		})
	}

	straight := utils.PointDistance(a, b)
	// straight line mode never reads road values stored by earlier lookups
	if !p.cfg.UseRoadDistances {
		return p.haversine(straight), nil
	}

	key := domain.PairKey(a, b)
	if cached, ok := p.cache.Get(key); ok {
		metrics.DistanceLookups.WithLabelValues(string(domain.SourceCache)).Inc()
		cached.Source = domain.SourceCache
		return cached, nil
	}

	if p.grid != nil && straight <= p.cfg.GridMaxRangeKm {
		path, err := p.grid.FindPath(ctx, a, b)
		if err == nil {
			result := domain.DistanceResult{DistanceKm: path.DistanceKm, Source: domain.SourceGrid}
			p.cache.Set(key, result)
			metrics.DistanceLookups.WithLabelValues(string(domain.SourceGrid)).Inc()
			return result, nil
		}
		p.logger.Debug("Grid search failed, falling back to routing",
			zap.String("pair", key),
			zap.Error(err))
	}

	if p.routing != nil {
		started := time.Now()
		route, err := p.routing.Route(ctx, a, b)
		metrics.RoutingLatency.Observe(float64(time.Since(started).Milliseconds()))
		if err == nil {
			duration := route.DurationMin
			result := domain.DistanceResult{
				DistanceKm:  route.DistanceKm,
				DurationMin: &duration,
				Geometry:    route.Geometry,
				Source:      domain.SourceRouting,
			}
			p.cache.Set(key, result)
			metrics.DistanceLookups.WithLabelValues(string(domain.SourceRouting)).Inc()
			return result, nil
		}

		metrics.RoutingFailures.Inc()
		p.logger.Warn("Routing service unavailable, using straight-line distance",
			zap.String("code", errors.ErrRoutingUnavailable.Code),
			zap.String("pair", key),
			zap.Float64("haversine_km", straight),
			zap.Error(err))
	}

	// not cached, so a later call retries the road value
	return p.haversine(straight), nil
}

func (p *DistanceProvider) haversine(km float64) domain.DistanceResult {
	metrics.DistanceLookups.WithLabelValues(string(domain.SourceHaversine)).Inc()
	return domain.DistanceResult{DistanceKm: km, Source: domain.SourceHaversine}
}

// GetDistanceMatrix computes the people x centers matrix in row-major batches.
// Calls inside a batch run concurrently; consecutive batches are spaced by BatchDelay.
// Cancellation is observed between batches only: on cancel the partially filled
// matrix is returned together with ctx.Err().
func (p *DistanceProvider) GetDistanceMatrix(
	ctx context.Context,
	people, centers []domain.GeoPoint,
	sink repository.ProgressSink,
) (*domain.DistanceMatrix, error) {
	if err := validatePoints(people, centers); err != nil {
		return nil, err
	}

	sink = progress.OrNop(sink)
	matrix := domain.NewDistanceMatrix(len(people), len(centers), p.cfg.Unfilled())
	total := len(people) * len(centers)
	if total == 0 {
		return matrix, nil
	}

	started := time.Now()
	defer func() {
		metrics.MatrixDuration.WithLabelValues(p.mode()).Observe(time.Since(started).Seconds())
	}()

	limit := rate.Inf
	if p.cfg.BatchDelay > 0 {
		limit = rate.Every(p.cfg.BatchDelay)
	}
	limiter := rate.NewLimiter(limit, 1)

	// in-flight calls are never interrupted by cancellation
	callCtx := context.WithoutCancel(ctx)

	var (
		mu        sync.Mutex
		completed int
	)

	cols := len(centers)
	for start := 0; start < total; start += p.cfg.BatchSize {
		if err := limiter.Wait(ctx); err != nil {
			p.logger.Info("Distance matrix canceled",
				zap.Int("completed", completed),
				zap.Int("total", total))
			return matrix, err
		}

		end := start + p.cfg.BatchSize
		if end > total {
			end = total
		}

		var g errgroup.Group
		for k := start; k < end; k++ {
			i, j := k/cols, k%cols
			g.Go(func() error {
				result, err := p.GetDistance(callCtx, people[i], centers[j])
				if err != nil {
					return err
				}

				mu.Lock()
				defer mu.Unlock()
				matrix.Cells[i][j] = result
				completed++
				sink.Update(completed, total, fmt.Sprintf("person %d -> center %d", i, j))
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return matrix, err
		}
	}

	p.logger.Debug("Distance matrix computed",
		zap.Int("people", len(people)),
		zap.Int("centers", len(centers)),
		zap.Duration("elapsed", time.Since(started)))

	return matrix, nil
}

// HaversineMatrix computes the straight-line matrix without touching cache or network.
func (p *DistanceProvider) HaversineMatrix(people, centers []domain.GeoPoint) (*domain.DistanceMatrix, error) {
	if err := validatePoints(people, centers); err != nil {
		return nil, err
	}

	started := time.Now()
	matrix := domain.NewDistanceMatrix(len(people), len(centers), p.cfg.Unfilled())
	for i, person := range people {
		for j, center := range centers {
			matrix.Cells[i][j] = domain.DistanceResult{
				DistanceKm: utils.PointDistance(person, center),
				Source:     domain.SourceHaversine,
			}
		}
	}
	metrics.MatrixDuration.WithLabelValues("haversine").Observe(time.Since(started).Seconds())
	return matrix, nil
}

// ClearCache drops the distance cache and the grid search memo.
func (p *DistanceProvider) ClearCache() {
	p.cache.Clear()
	if p.grid != nil {
		p.grid.ClearCache()
	}
}

func (p *DistanceProvider) CacheStats() repository.CacheStats {
	return p.cache.Stats()
}

// GridStats returns the grid memo statistics, or nil without a grid tier.
func (p *DistanceProvider) GridStats() *pathfinder.CacheStats {
	if p.grid == nil {
		return nil
	}
	stats := p.grid.CacheStats()
	return &stats
}

func (p *DistanceProvider) mode() string {
	if p.cfg.UseRoadDistances {
		return "road"
	}
	return "haversine"
}

func validatePoints(people, centers []domain.GeoPoint) error {
	if idx := utils.ValidatePoints(people); idx >= 0 {
		return errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"role":  string(domain.RolePerson),
			"index": idx,
		})
	}
	if idx := utils.ValidatePoints(centers); idx >= 0 {
		return errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"role":  string(domain.RoleCenter),
			"index": idx,
		})
	}
	return nil
}
