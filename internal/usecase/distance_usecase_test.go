package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/center-assignment/internal/domain"
	"github.com/center-assignment/internal/pathfinder"
	apperrors "github.com/center-assignment/internal/pkg/errors"
	"github.com/center-assignment/internal/usecase"
	"github.com/center-assignment/internal/usecase/dto"
)

func point(p domain.GeoPoint) dto.PointInput {
	return dto.PointInput{Lat: p.Lat, Lon: p.Lon}
}

func TestDistanceUseCase_GetDistance(t *testing.T) {
	routing := &MockRoutingRepository{}
	uc := usecase.NewDistanceUseCase(newProvider(routing, nil, testConfig()), zap.NewNop())

	routing.On("Route", mock.Anything, madrid, valencia).
		Return(&domain.Route{DistanceKm: 355, DurationMin: 205}, nil).Once()

	resp, err := uc.GetDistance(context.Background(), dto.DistanceRequest{From: point(madrid), To: point(valencia)})

	require.NoError(t, err)
	assert.Equal(t, 355.0, resp.DistanceKm)
	assert.Equal(t, domain.SourceRouting, resp.Source)
	assert.InDelta(t, 303, resp.StraightLineKm, 10)
	routing.AssertExpectations(t)
}

func TestDistanceUseCase_GetDistanceStraightLine(t *testing.T) {
	routing := &MockRoutingRepository{}
	uc := usecase.NewDistanceUseCase(newProvider(routing, nil, testConfig()), zap.NewNop())
	off := false

	resp, err := uc.GetDistance(context.Background(), dto.DistanceRequest{
		From:             point(madrid),
		To:               point(valencia),
		UseRoadDistances: &off,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.SourceHaversine, resp.Source)
	assert.Equal(t, resp.StraightLineKm, resp.DistanceKm)
	routing.AssertNotCalled(t, "Route", mock.Anything, mock.Anything, mock.Anything)
}

func TestDistanceUseCase_GetDistanceInvalid(t *testing.T) {
	uc := usecase.NewDistanceUseCase(newProvider(nil, nil, testConfig()), zap.NewNop())

	_, err := uc.GetDistance(context.Background(), dto.DistanceRequest{
		From: dto.PointInput{Lat: 100, Lon: 0},
		To:   point(madrid),
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCoordinates)
}

func TestDistanceUseCase_GetMatrix(t *testing.T) {
	routing := &MockRoutingRepository{}
	uc := usecase.NewDistanceUseCase(newProvider(routing, nil, testConfig()), zap.NewNop())

	routing.On("Route", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("unavailable"))

	resp, err := uc.GetMatrix(context.Background(), dto.MatrixRequest{
		Origins:      []dto.PointInput{point(madrid), point(toledo)},
		Destinations: []dto.PointInput{point(valencia)},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Rows)
	assert.Equal(t, 1, resp.Cols)
	require.Len(t, resp.DistancesKm, 2)
	assert.Equal(t, resp.Cells[1][0].DistanceKm, resp.DistancesKm[1][0])
	assert.Equal(t, domain.SourceHaversine, resp.Cells[0][0].Source)
	routing.AssertNumberOfCalls(t, "Route", 2)
}

func TestDistanceUseCase_GetMatrixValidation(t *testing.T) {
	uc := usecase.NewDistanceUseCase(newProvider(nil, nil, testConfig()), zap.NewNop())

	_, err := uc.GetMatrix(context.Background(), dto.MatrixRequest{Origins: []dto.PointInput{point(madrid)}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)

	_, err = uc.GetMatrix(context.Background(), dto.MatrixRequest{
		Origins:      []dto.PointInput{point(madrid)},
		Destinations: []dto.PointInput{{Lat: 0, Lon: 200}},
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCoordinates)
}

func TestDistanceUseCase_CacheStatsAndClear(t *testing.T) {
	routing := &MockRoutingRepository{}
	grid := &MockGridPathfinder{}
	uc := usecase.NewDistanceUseCase(newProvider(routing, grid, testConfig()), zap.NewNop())

	grid.On("FindPath", mock.Anything, madrid, toledo).Return(&pathfinder.Path{DistanceKm: 71}, nil).Once()
	grid.On("CacheStats").Return(pathfinder.CacheStats{Size: 1, MaxRangeKm: 100, ResolutionMeters: 111})
	grid.On("ClearCache").Return().Once()

	_, err := uc.GetDistance(context.Background(), dto.DistanceRequest{From: point(madrid), To: point(toledo)})
	require.NoError(t, err)

	stats := uc.CacheStats()
	assert.Equal(t, 1, stats.Distance.Size)
	assert.Equal(t, int64(1), stats.Distance.Misses)
	require.NotNil(t, stats.Grid)
	assert.Equal(t, 1, stats.Grid.Size)

	uc.ClearCache()
	assert.Equal(t, 0, uc.CacheStats().Distance.Size)
	grid.AssertExpectations(t)
}
