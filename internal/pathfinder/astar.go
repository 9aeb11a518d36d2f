package pathfinder

import (
	"context"
	"fmt"
	"math"

	"github.com/center-assignment/internal/pkg/pqueue"
)

const ctxCheckInterval = 1024

type move struct {
	dx, dy int
	cost   float64
}

var moves = [8]move{
	{1, 0, 1}, {-1, 0, 1}, {0, 1, 1}, {0, -1, 1},
	{1, 1, math.Sqrt2}, {1, -1, math.Sqrt2}, {-1, 1, math.Sqrt2}, {-1, -1, math.Sqrt2},
}

// search runs A* from grid.Start to grid.Goal. Returned distance is in km.
func search(ctx context.Context, grid *Grid, maxExpansions int) (*Path, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if grid.Start == grid.Goal {
		return &Path{Cells: []Cell{grid.Start}}, nil
	}

	step := grid.StepKm()
	heuristic := func(c Cell) float64 {
		return math.Hypot(float64(c.X-grid.Goal.X), float64(c.Y-grid.Goal.Y)) * step
	}

	open := pqueue.New[Cell, float64](64)
	gScore := map[Cell]float64{grid.Start: 0}
	parent := make(map[Cell]Cell)
	closed := make(map[Cell]struct{})

	open.Push(grid.Start, heuristic(grid.Start))
	expanded := 0

	for !open.IsEmpty() {
		cur, _, err := open.Pop()
		if err != nil {
			return nil, err
		}
		if _, done := closed[cur]; done {
			continue
		}
		if cur == grid.Goal {
			return &Path{
				Cells:      reconstruct(parent, grid.Start, grid.Goal),
				DistanceKm: gScore[cur],
				Expanded:   expanded,
			}, nil
		}

		closed[cur] = struct{}{}
		expanded++
		if maxExpansions > 0 && expanded > maxExpansions {
			return nil, fmt.Errorf("%w: expansion limit %d reached", ErrPathNotFound, maxExpansions)
		}
		if expanded%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		base := gScore[cur]
		for _, m := range moves {
			next := Cell{X: cur.X + m.dx, Y: cur.Y + m.dy}
			if !grid.Contains(next) || grid.Blocked(next) {
				continue
			}
			if _, done := closed[next]; done {
				continue
			}
			tentative := base + m.cost*step
			if old, seen := gScore[next]; seen && tentative >= old {
				continue
			}
			gScore[next] = tentative
			parent[next] = cur
			open.Push(next, tentative+heuristic(next))
		}
	}

	return nil, ErrPathNotFound
}

func reconstruct(parent map[Cell]Cell, start, goal Cell) []Cell {
	path := []Cell{goal}
	for cur := goal; cur != start; {
		cur = parent[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
