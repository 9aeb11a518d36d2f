package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/center-assignment/internal/assignment"
	"github.com/center-assignment/internal/domain"
	"github.com/center-assignment/internal/domain/repository"
	"github.com/center-assignment/internal/metrics"
	"github.com/center-assignment/internal/pkg/errors"
	"github.com/center-assignment/internal/pkg/utils"
	"github.com/center-assignment/internal/pkg/validator"
	"github.com/center-assignment/internal/usecase/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AssignmentUseCase struct {
	distances         *DistanceProvider
	engine            *assignment.Engine
	logger            *zap.Logger
	capacityPerCenter int
	useRoadDistances  bool
}

func NewAssignmentUseCase(
	distances *DistanceProvider,
	engine *assignment.Engine,
	logger *zap.Logger,
	capacityPerCenter int,
	useRoadDistances bool,
) *AssignmentUseCase {
	return &AssignmentUseCase{
		distances:         distances,
		engine:            engine,
		logger:            logger,
		capacityPerCenter: capacityPerCenter,
		useRoadDistances:  useRoadDistances,
	}
}

// Assign validates the request, builds the distance matrix and runs the engine.
// sink may be nil.
func (uc *AssignmentUseCase) Assign(
	ctx context.Context,
	req dto.AssignRequest,
	sink repository.ProgressSink,
) (*dto.AssignResponse, error) {
	started := time.Now()

	people, centers, err := uc.prepare(req)
	if err != nil {
		metrics.AssignmentRuns.WithLabelValues("invalid").Inc()
		return nil, err
	}

	capacity := uc.capacityPerCenter
	if req.CapacityPerCenter > 0 {
		capacity = req.CapacityPerCenter
	}
	useRoad := uc.useRoadDistances
	if req.UseRoadDistances != nil {
		useRoad = *req.UseRoadDistances
	}

	var matrix *domain.DistanceMatrix
	if useRoad {
		matrix, err = uc.distances.WithRoadDistances(true).GetDistanceMatrix(ctx, people, centers, sink)
	} else {
		matrix, err = uc.distances.HaversineMatrix(people, centers)
	}
	if err != nil {
		metrics.AssignmentRuns.WithLabelValues("error").Inc()
		if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			uc.logger.Info("Assignment canceled while computing distances", zap.Error(err))
			return nil, errors.ErrRequestCanceled.WithDetails(map[string]interface{}{"reason": err.Error()})
		}
		return nil, err
	}

	res, err := uc.engine.Assign(people, centers, capacity, matrix)
	if err != nil {
		metrics.AssignmentRuns.WithLabelValues("error").Inc()
		uc.logger.Error("Assignment engine failed", zap.Error(err))
		return nil, fmt.Errorf("assign: %w", err)
	}

	result := domain.AssignmentResult{
		RunID:             uuid.New(),
		Status:            res.Status,
		Assignments:       res.Assignments,
		UnassignedPeople:  res.UnassignedPeople,
		CenterLoad:        res.CenterLoad,
		RemainingCapacity: res.RemainingCapacity,
		Stats:             res.Stats,
		Complexity:        assignment.ComplexityInfo(useRoad),
		RoadDistances:     useRoad,
	}

	metrics.AssignmentRuns.WithLabelValues(string(result.Status)).Inc()
	metrics.AssignmentUnassigned.Observe(float64(result.Stats.Unassigned))

	elapsed := time.Since(started)
	uc.logger.Info("Assignment completed",
		zap.String("run_id", result.RunID.String()),
		zap.String("status", string(result.Status)),
		zap.Bool("road_distances", useRoad),
		zap.Int("people", result.Stats.TotalPeople),
		zap.Int("centers", len(centers)),
		zap.Int("assigned", result.Stats.TotalAssigned),
		zap.Int("unassigned", result.Stats.Unassigned),
		zap.Float64("avg_distance_km", result.Stats.AverageDistanceKm),
		zap.Duration("elapsed", elapsed))

	return &dto.AssignResponse{
		AssignmentResult: result,
		DurationMs:       float64(elapsed.Microseconds()) / 1000,
	}, nil
}

func (uc *AssignmentUseCase) prepare(req dto.AssignRequest) ([]domain.GeoPoint, []domain.GeoPoint, error) {
	if req.CapacityPerCenter < 0 {
		return nil, nil, errors.ErrInvalidCapacity.WithDetails(map[string]interface{}{
			"capacity_per_center": req.CapacityPerCenter,
		})
	}
	if req.CapacityPerCenter == 0 && uc.capacityPerCenter <= 0 {
		return nil, nil, errors.ErrInvalidCapacity
	}

	if err := validator.Validate(req); err != nil {
		return nil, nil, errors.ErrInvalidRequest.WithDetails(validator.FieldErrors(err))
	}

	people := make([]domain.GeoPoint, len(req.People))
	for i, p := range req.People {
		if !utils.ValidateCoordinates(p.Lat, p.Lon) {
			return nil, nil, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
				"role":  string(domain.RolePerson),
				"index": i,
				"lat":   p.Lat,
				"lon":   p.Lon,
			})
		}
		category, err := domain.ParseCategory(p.Category)
		if err != nil {
			return nil, nil, errors.ErrInvalidCategory.WithDetails(map[string]interface{}{
				"index":    i,
				"category": p.Category,
			})
		}
		people[i] = domain.NewPerson(p.Lat, p.Lon, category)
	}

	centers := make([]domain.GeoPoint, len(req.Centers))
	for j, c := range req.Centers {
		if !utils.ValidateCoordinates(c.Lat, c.Lon) {
			return nil, nil, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
				"role":  string(domain.RoleCenter),
				"index": j,
				"lat":   c.Lat,
				"lon":   c.Lon,
			})
		}
		centers[j] = domain.NewCenter(c.Lat, c.Lon)
	}

	return people, centers, nil
}
