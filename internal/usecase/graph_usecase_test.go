package usecase_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/center-assignment/internal/pkg/errors"
	"github.com/center-assignment/internal/usecase"
	"github.com/center-assignment/internal/usecase/dto"
)

func sampleGraphInput() dto.GraphInput {
	return dto.GraphInput{
		Edges: []dto.EdgeInput{
			{From: "A", To: "B", Weight: 4},
			{From: "A", To: "C", Weight: 2},
			{From: "B", To: "C", Weight: 1},
			{From: "B", To: "D", Weight: 5},
			{From: "C", To: "D", Weight: 8},
			{From: "C", To: "E", Weight: 10},
			{From: "D", To: "E", Weight: 2},
		},
	}
}

func TestGraphUseCase_ShortestPath(t *testing.T) {
	uc := usecase.NewGraphUseCase(zap.NewNop())

	resp, err := uc.ShortestPath(context.Background(), dto.ShortestPathRequest{
		Graph: sampleGraphInput(),
		Start: "A",
		End:   "E",
	})

	require.NoError(t, err)
	assert.True(t, resp.Found)
	assert.Equal(t, 10, resp.Distance)
	assert.Equal(t, []string{"A", "C", "B", "D", "E"}, resp.Path)
}

func TestGraphUseCase_ShortestPathHops(t *testing.T) {
	uc := usecase.NewGraphUseCase(zap.NewNop())

	resp, err := uc.ShortestPath(context.Background(), dto.ShortestPathRequest{
		Graph:  sampleGraphInput(),
		Start:  "A",
		End:    "E",
		Metric: "hops",
	})

	require.NoError(t, err)
	assert.True(t, resp.Found)
	assert.Equal(t, 2, resp.Distance)
	assert.Equal(t, []string{"A", "C", "E"}, resp.Path)
}

func TestGraphUseCase_NoPath(t *testing.T) {
	uc := usecase.NewGraphUseCase(zap.NewNop())
	in := sampleGraphInput()
	in.Edges = append(in.Edges, dto.EdgeInput{From: "X", To: "Y", Weight: 1})

	resp, err := uc.ShortestPath(context.Background(), dto.ShortestPathRequest{Graph: in, Start: "A", End: "Y"})
	require.NoError(t, err)
	assert.False(t, resp.Found)
	assert.Equal(t, -1, resp.Distance)
	assert.Empty(t, resp.Path)

	resp, err = uc.ShortestPath(context.Background(), dto.ShortestPathRequest{Graph: in, Start: "A", End: "missing"})
	require.NoError(t, err)
	assert.False(t, resp.Found)
}

func TestGraphUseCase_InvalidGraph(t *testing.T) {
	uc := usecase.NewGraphUseCase(zap.NewNop())

	tests := []struct {
		name string
		req  dto.ShortestPathRequest
	}{
		{
			name: "negative weight",
			req: dto.ShortestPathRequest{
				Graph: dto.GraphInput{Edges: []dto.EdgeInput{{From: "A", To: "B", Weight: -3}}},
				Start: "A", End: "B",
			},
		},
		{
			name: "weight above limit",
			req: dto.ShortestPathRequest{
				Graph: dto.GraphInput{Edges: []dto.EdgeInput{{From: "A", To: "B", Weight: 1_000_000_001}}},
				Start: "A", End: "B",
			},
		},
		{
			name: "max int weight",
			req: dto.ShortestPathRequest{
				Graph: dto.GraphInput{Edges: []dto.EdgeInput{
					{From: "A", To: "B", Weight: math.MaxInt - 1},
					{From: "B", To: "C", Weight: 10},
				}},
				Start: "A", End: "C",
			},
		},
		{
			name: "self loop",
			req: dto.ShortestPathRequest{
				Graph: dto.GraphInput{Edges: []dto.EdgeInput{{From: "A", To: "A", Weight: 1}}},
				Start: "A", End: "A",
			},
		},
		{
			name: "no edges",
			req:  dto.ShortestPathRequest{Start: "A", End: "B"},
		},
		{
			name: "unknown metric",
			req:  dto.ShortestPathRequest{Graph: sampleGraphInput(), Start: "A", End: "B", Metric: "time"},
		},
		{
			name: "missing start",
			req:  dto.ShortestPathRequest{Graph: sampleGraphInput(), End: "B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.ShortestPath(context.Background(), tt.req)
			assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
		})
	}
}

func TestGraphUseCase_Distances(t *testing.T) {
	uc := usecase.NewGraphUseCase(zap.NewNop())
	in := sampleGraphInput()
	in.Vertices = []string{"Z"}

	resp, err := uc.Distances(context.Background(), dto.GraphDistancesRequest{Graph: in, Start: "A"})

	require.NoError(t, err)
	assert.Equal(t, "A", resp.Start)
	assert.Equal(t, map[string]int{"A": 0, "B": 3, "C": 2, "D": 8, "E": 10}, resp.Distances)
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, resp.Reachable)
	assert.Equal(t, []string{"Z"}, resp.Unreachable)
}

func TestGraphUseCase_DistancesUnknownStart(t *testing.T) {
	uc := usecase.NewGraphUseCase(zap.NewNop())

	_, err := uc.Distances(context.Background(), dto.GraphDistancesRequest{Graph: sampleGraphInput(), Start: "Q"})

	assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
}
