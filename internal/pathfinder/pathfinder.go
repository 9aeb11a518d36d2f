// Package pathfinder estimates short-range geographic distances with A* over a
// regular lat/lon grid.
package pathfinder

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/center-assignment/internal/domain"
	"github.com/center-assignment/internal/pkg/utils"
	"go.uber.org/zap"
)

const kmPerDegree = utils.KmPerDegree

var (
	// ErrOutOfRange is returned when the straight-line distance exceeds MaxRangeKm.
	ErrOutOfRange = errors.New("pathfinder: points farther apart than the grid range")

	// ErrPathNotFound is returned when the search exhausts the grid or its expansion budget.
	ErrPathNotFound = errors.New("pathfinder: no path between points")

	// ErrInvalidPoint is returned for coordinates outside the WGS84 ranges.
	ErrInvalidPoint = errors.New("pathfinder: invalid coordinates")
)

// Config sizes the grid. Out of range values fall back to DefaultConfig.
type Config struct {
	ResolutionDeg float64
	MarginDeg     float64
	MaxRangeKm    float64
	MaxExpansions int
}

// DefaultConfig - 0.001° cells (~100 m), 0.005° margin (~500 m), 100 km ceiling
func DefaultConfig() Config {
	return Config{
		ResolutionDeg: 0.001,
		MarginDeg:     0.005,
		MaxRangeKm:    100,
		MaxExpansions: 250000,
	}
}

// Path is the result of a grid search.
type Path struct {
	Cells      []Cell  `json:"-"`
	DistanceKm float64 `json:"distance_km"`
	Expanded   int     `json:"expanded"`
	Cached     bool    `json:"cached"`
}

// CacheStats describes the memo of computed paths.
type CacheStats struct {
	Size             int     `json:"size"`
	MaxRangeKm       float64 `json:"max_range_km"`
	ResolutionMeters float64 `json:"resolution_meters"`
}

type memoEntry struct {
	from domain.GeoPoint
	path *Path
}

// Pathfinder runs A* searches and memoizes their results. Safe for concurrent use.
type Pathfinder struct {
	cfg    Config
	logger *zap.Logger

	mu   sync.RWMutex
	memo map[string]memoEntry
}

// NewPathfinder returns a Pathfinder with an empty memo.
func NewPathfinder(cfg Config, logger *zap.Logger) *Pathfinder {
	def := DefaultConfig()
	if cfg.ResolutionDeg <= 0 {
		cfg.ResolutionDeg = def.ResolutionDeg
	}
	if cfg.MarginDeg < 0 {
		cfg.MarginDeg = def.MarginDeg
	}
	if cfg.MaxRangeKm <= 0 {
		cfg.MaxRangeKm = def.MaxRangeKm
	}
	if cfg.MaxExpansions <= 0 {
		cfg.MaxExpansions = def.MaxExpansions
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pathfinder{
		cfg:    cfg,
		logger: logger,
		memo:   make(map[string]memoEntry),
	}
}

// MaxRangeKm returns the straight-line ceiling above which FindPath refuses to search.
func (p *Pathfinder) MaxRangeKm() float64 {
	return p.cfg.MaxRangeKm
}

// FindPath returns the grid distance between a and b.
func (p *Pathfinder) FindPath(ctx context.Context, a, b domain.GeoPoint) (*Path, error) {
	if !a.Valid() || !b.Valid() {
		return nil, ErrInvalidPoint
	}

	straight := utils.PointDistance(a, b)
	if straight > p.cfg.MaxRangeKm {
		return nil, fmt.Errorf("%w: %.1f km > %.1f km", ErrOutOfRange, straight, p.cfg.MaxRangeKm)
	}

	key := domain.PairKey(a, b)
	if path, ok := p.lookup(key, a); ok {
		return path, nil
	}

	grid := NewGrid(a.Point(), b.Point(), p.cfg.ResolutionDeg, p.cfg.MarginDeg)
	path, err := search(ctx, grid, p.cfg.MaxExpansions)
	if err != nil {
		p.logger.Debug("Grid search failed",
			zap.Float64("straight_km", straight),
			zap.Int("grid_width", grid.Width),
			zap.Int("grid_height", grid.Height),
			zap.Error(err))
		return nil, err
	}

	p.logger.Debug("Grid path found",
		zap.Float64("distance_km", path.DistanceKm),
		zap.Int("cells", len(path.Cells)),
		zap.Int("expanded", path.Expanded))

	p.mu.Lock()
	p.memo[key] = memoEntry{from: a, path: path}
	p.mu.Unlock()

	out := *path
	return &out, nil
}

func (p *Pathfinder) lookup(key string, from domain.GeoPoint) (*Path, bool) {
	p.mu.RLock()
	entry, ok := p.memo[key]
	p.mu.RUnlock()
	if !ok {
		return nil, false
	}

	out := *entry.path
	out.Cached = true
	if domain.PairKey(entry.from, entry.from) != domain.PairKey(from, from) {
		// stored in the opposite direction
		cells := make([]Cell, len(out.Cells))
		for i, c := range out.Cells {
			cells[len(cells)-1-i] = c
		}
		out.Cells = cells
	}
	return &out, true
}

// ClearCache drops every memoized path.
func (p *Pathfinder) ClearCache() {
	p.mu.Lock()
	p.memo = make(map[string]memoEntry)
	p.mu.Unlock()
}

// CacheStats returns the memo size and grid parameters.
func (p *Pathfinder) CacheStats() CacheStats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return CacheStats{
		Size:             len(p.memo),
		MaxRangeKm:       p.cfg.MaxRangeKm,
		ResolutionMeters: p.cfg.ResolutionDeg * kmPerDegree * 1000,
	}
}
