package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/center-assignment/internal/domain"
	"github.com/center-assignment/internal/pathfinder"
	"github.com/center-assignment/internal/progress"
)

// MockRoutingRepository - mock for repository.RoutingRepository
type MockRoutingRepository struct {
	mock.Mock
}

func (m *MockRoutingRepository) Route(ctx context.Context, from, to domain.GeoPoint) (*domain.Route, error) {
	args := m.Called(ctx, from, to)
	if fn, ok := args.Get(0).(func(context.Context, domain.GeoPoint, domain.GeoPoint) *domain.Route); ok {
		return fn(ctx, from, to), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

// MockGridPathfinder - mock for usecase.GridPathfinder
type MockGridPathfinder struct {
	mock.Mock
}

func (m *MockGridPathfinder) FindPath(ctx context.Context, a, b domain.GeoPoint) (*pathfinder.Path, error) {
	args := m.Called(ctx, a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pathfinder.Path), args.Error(1)
}

func (m *MockGridPathfinder) ClearCache() {
	m.Called()
}

func (m *MockGridPathfinder) CacheStats() pathfinder.CacheStats {
	args := m.Called()
	return args.Get(0).(pathfinder.CacheStats)
}

func progressCounter(n *int) progress.Func {
	return func(int, int, string) { *n++ }
}
