package usecase

import (
	"context"

	"github.com/center-assignment/internal/graph"
	"github.com/center-assignment/internal/pkg/errors"
	"github.com/center-assignment/internal/pkg/validator"
	"github.com/center-assignment/internal/usecase/dto"
	"go.uber.org/zap"
)

type GraphUseCase struct {
	logger *zap.Logger
}

func NewGraphUseCase(logger *zap.Logger) *GraphUseCase {
	return &GraphUseCase{logger: logger}
}

func (uc *GraphUseCase) ShortestPath(_ context.Context, req dto.ShortestPathRequest) (*dto.ShortestPathResponse, error) {
	if err := validator.Validate(req); err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(validator.FieldErrors(err))
	}

	g, err := buildGraph(req.Graph)
	if err != nil {
		return nil, err
	}

	solver := graph.NewSolver(g)

	var (
		path []string
		dist int
	)
	if req.Metric == "hops" {
		path, dist = solver.ShortestPathFunc(req.Start, req.End, func(_, _ string) int { return 1 })
	} else {
		path, dist = solver.ShortestPath(req.Start, req.End)
	}

	if dist == graph.NoPath {
		uc.logger.Debug("No path between vertices",
			zap.String("start", req.Start),
			zap.String("end", req.End))
		return &dto.ShortestPathResponse{Found: false, Path: []string{}, Distance: graph.NoPath}, nil
	}

	return &dto.ShortestPathResponse{Found: true, Path: path, Distance: dist}, nil
}

func (uc *GraphUseCase) Distances(_ context.Context, req dto.GraphDistancesRequest) (*dto.GraphDistancesResponse, error) {
	if err := validator.Validate(req); err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(validator.FieldErrors(err))
	}

	g, err := buildGraph(req.Graph)
	if err != nil {
		return nil, err
	}
	if !g.HasVertex(req.Start) {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"start": "unknown vertex " + req.Start,
		})
	}

	solver := graph.NewSolver(g)
	all := solver.ShortestDistances(req.Start)

	resp := &dto.GraphDistancesResponse{
		Start:       req.Start,
		Distances:   make(map[string]int, len(all)),
		Reachable:   solver.ReachableVertices(req.Start),
		Unreachable: []string{},
	}
	for _, v := range g.Vertices() {
		d := all[v]
		if d == graph.Unreachable {
			resp.Unreachable = append(resp.Unreachable, v)
			continue
		}
		resp.Distances[v] = d
	}
	return resp, nil
}

func buildGraph(in dto.GraphInput) (*graph.Graph, error) {
	g := graph.New()
	for _, v := range in.Vertices {
		if err := g.AddVertex(v); err != nil {
			return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"vertex": err.Error()})
		}
	}
	for i, e := range in.Edges {
		if err := g.AddEdge(e.From, e.To, e.Weight); err != nil {
			return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"edge":  i,
				"error": err.Error(),
			})
		}
	}
	return g, nil
}
