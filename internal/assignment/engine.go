// Package assignment places people at capacity-limited centers, serving priority
// classes first and the nearest center with free capacity within each person.
package assignment

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/center-assignment/internal/domain"
)

var (
	ErrInvalidCapacity = errors.New("assignment: capacity per center must be positive")
	ErrMatrixShape     = errors.New("assignment: distance matrix does not match people x centers")
)

// Distances is the read side of a people x centers distance matrix.
type Distances interface {
	Rows() int
	Cols() int
	Distance(i, j int) float64
}

// Result is the raw outcome of a run, before run metadata is attached.
type Result struct {
	Status            domain.AssignmentStatus
	Assignments       []domain.Assignment
	UnassignedPeople  []int
	RemainingCapacity []int
	CenterLoad        []int
	Stats             domain.AssignmentStats
}

// Engine is stateless; capacity bookkeeping lives in each Assign call.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Assign runs the greedy priority-capacitated assignment.
func (e *Engine) Assign(people, centers []domain.GeoPoint, capacityPerCenter int, matrix Distances) (*Result, error) {
	if capacityPerCenter <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacityPerCenter)
	}
	if matrix == nil || matrix.Rows() != len(people) || (len(people) > 0 && matrix.Cols() != len(centers)) {
		return nil, ErrMatrixShape
	}

	remaining := make([]int, len(centers))
	for j := range remaining {
		remaining[j] = capacityPerCenter
	}

	order := PriorityOrder(people)

	res := &Result{
		Assignments:      make([]domain.Assignment, 0, len(people)),
		UnassignedPeople: []int{},
		CenterLoad:       make([]int, len(centers)),
	}

	for _, i := range order {
		best := -1
		bestDist := math.Inf(1)
		for j := range centers {
			if remaining[j] <= 0 {
				continue
			}
			d := matrix.Distance(i, j)
			// strict < keeps the lowest index among equal distances
			if best < 0 || d < bestDist {
				best = j
				bestDist = d
			}
		}

		if best < 0 {
			res.UnassignedPeople = append(res.UnassignedPeople, i)
			continue
		}

		remaining[best]--
		res.CenterLoad[best]++
		res.Assignments = append(res.Assignments, domain.Assignment{
			PersonIndex: i,
			CenterIndex: best,
			Person:      people[i],
			Center:      centers[best],
			DistanceKm:  bestDist,
			Category:    people[i].Category,
		})
	}

	res.RemainingCapacity = remaining
	res.Stats = computeStats(people, res.Assignments, capacityPerCenter*len(centers))
	res.Status = domain.StatusDone
	if len(res.UnassignedPeople) > 0 {
		res.Status = domain.StatusPartial
	}
	return res, nil
}

// PriorityOrder returns person indices stable-sorted by category rank.
func PriorityOrder(people []domain.GeoPoint) []int {
	order := make([]int, len(people))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return people[order[a]].Category.Rank() < people[order[b]].Category.Rank()
	})
	return order
}

func computeStats(people []domain.GeoPoint, assignments []domain.Assignment, totalCapacity int) domain.AssignmentStats {
	stats := domain.AssignmentStats{
		TotalPeople:   len(people),
		TotalAssigned: len(assignments),
		Unassigned:    len(people) - len(assignments),
		TotalCapacity: totalCapacity,
	}
	if len(assignments) == 0 {
		return stats
	}

	sum := 0.0
	stats.MinDistanceKm = math.Inf(1)
	stats.MaxDistanceKm = math.Inf(-1)
	for _, a := range assignments {
		switch a.Category {
		case domain.CategoryPWD:
			stats.PWDAssigned++
		case domain.CategoryFemale:
			stats.FemaleAssigned++
		case domain.CategoryMale:
			stats.MaleAssigned++
		}
		sum += a.DistanceKm
		stats.MinDistanceKm = math.Min(stats.MinDistanceKm, a.DistanceKm)
		stats.MaxDistanceKm = math.Max(stats.MaxDistanceKm, a.DistanceKm)
	}
	stats.AverageDistanceKm = sum / float64(len(assignments))
	return stats
}

// ComplexityInfo describes the cost of a run for the selected distance mode.
func ComplexityInfo(useRoad bool) domain.ComplexityInfo {
	if useRoad {
		return domain.ComplexityInfo{
			TimeComplexity:  "O(P*C*T_route + P log P + P*C)",
			SpaceComplexity: "O(P*C + K)",
			Description: "Road distances: one cached lookup per person/center pair (grid A* for short ranges, " +
				"routing service otherwise, K cached pairs), then a stable priority sort and a greedy nearest-center scan.",
		}
	}
	return domain.ComplexityInfo{
		TimeComplexity:  "O(P*C + P log P)",
		SpaceComplexity: "O(P*C)",
		Description: "Straight-line distances: Haversine for every person/center pair, " +
			"then a stable priority sort and a greedy nearest-center scan.",
	}
}
