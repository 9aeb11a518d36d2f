package usecase

import (
	"context"

	"github.com/center-assignment/internal/domain"
	"github.com/center-assignment/internal/pkg/errors"
	"github.com/center-assignment/internal/pkg/utils"
	"github.com/center-assignment/internal/pkg/validator"
	"github.com/center-assignment/internal/usecase/dto"
	"go.uber.org/zap"
)

type DistanceUseCase struct {
	distances *DistanceProvider
	logger    *zap.Logger
}

func NewDistanceUseCase(distances *DistanceProvider, logger *zap.Logger) *DistanceUseCase {
	return &DistanceUseCase{
		distances: distances,
		logger:    logger,
	}
}

func (uc *DistanceUseCase) GetDistance(ctx context.Context, req dto.DistanceRequest) (*dto.DistanceResponse, error) {
	from := domain.NewCenter(req.From.Lat, req.From.Lon)
	to := domain.NewCenter(req.To.Lat, req.To.Lon)
	if !from.Valid() || !to.Valid() {
		return nil, errors.ErrInvalidCoordinates
	}

	result, err := uc.provider(req.UseRoadDistances).GetDistance(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &dto.DistanceResponse{
		DistanceResult: result,
		StraightLineKm: utils.PointDistance(from, to),
	}, nil
}

func (uc *DistanceUseCase) GetMatrix(ctx context.Context, req dto.MatrixRequest) (*dto.MatrixResponse, error) {
	if err := validator.Validate(req); err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(validator.FieldErrors(err))
	}

	origins := make([]domain.GeoPoint, len(req.Origins))
	for i, p := range req.Origins {
		origins[i] = domain.NewPerson(p.Lat, p.Lon, "")
	}
	destinations := make([]domain.GeoPoint, len(req.Destinations))
	for j, p := range req.Destinations {
		destinations[j] = domain.NewCenter(p.Lat, p.Lon)
	}

	provider := uc.provider(req.UseRoadDistances)

	var (
		matrix *domain.DistanceMatrix
		err    error
	)
	if provider.RoadDistances() {
		matrix, err = provider.GetDistanceMatrix(ctx, origins, destinations, nil)
	} else {
		matrix, err = provider.HaversineMatrix(origins, destinations)
	}
	if err != nil {
		return nil, err
	}

	resp := &dto.MatrixResponse{
		Rows:        matrix.Rows(),
		Cols:        matrix.Cols(),
		DistancesKm: make([][]float64, matrix.Rows()),
		Cells:       matrix.Cells,
	}
	for i := range matrix.Cells {
		resp.DistancesKm[i] = make([]float64, matrix.Cols())
		for j := range matrix.Cells[i] {
			resp.DistancesKm[i][j] = matrix.Distance(i, j)
		}
	}
	return resp, nil
}

func (uc *DistanceUseCase) CacheStats() *dto.CacheStatsResponse {
	return &dto.CacheStatsResponse{
		Distance: uc.distances.CacheStats(),
		Grid:     uc.distances.GridStats(),
	}
}

func (uc *DistanceUseCase) ClearCache() {
	uc.distances.ClearCache()
	uc.logger.Info("Distance caches cleared")
}

func (uc *DistanceUseCase) provider(useRoad *bool) *DistanceProvider {
	if useRoad == nil {
		return uc.distances
	}
	return uc.distances.WithRoadDistances(*useRoad)
}
