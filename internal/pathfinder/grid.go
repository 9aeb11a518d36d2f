package pathfinder

import (
	"math"

	"github.com/paulmach/orb"
)

// Cell is a grid coordinate, only meaningful relative to the Grid that produced it.
type Cell struct {
	X, Y int
}

// Grid discretizes the padded bounding box of two points into square cells.
type Grid struct {
	Bound      orb.Bound
	Resolution float64
	Width      int
	Height     int
	Start      Cell
	Goal       Cell
	// Obstacles is reserved for blocked cells; the service never populates it.
	Obstacles map[Cell]struct{}
}

// NewGrid builds the search grid between from and to.
func NewGrid(from, to orb.Point, resolution, margin float64) *Grid {
	bound := orb.MultiPoint{from, to}.Bound().Pad(margin)

	g := &Grid{
		Bound:      bound,
		Resolution: resolution,
		Width:      int(math.Round((bound.Max[0]-bound.Min[0])/resolution)) + 1,
		Height:     int(math.Round((bound.Max[1]-bound.Min[1])/resolution)) + 1,
		Obstacles:  make(map[Cell]struct{}),
	}
	g.Start = g.CellOf(from)
	g.Goal = g.CellOf(to)
	return g
}

// CellOf maps a point to its cell.
func (g *Grid) CellOf(p orb.Point) Cell {
	return Cell{
		X: int(math.Round((p.Lon() - g.Bound.Min[0]) / g.Resolution)),
		Y: int(math.Round((p.Lat() - g.Bound.Min[1]) / g.Resolution)),
	}
}

// PointOf returns the point at the center of c.
func (g *Grid) PointOf(c Cell) orb.Point {
	return orb.Point{
		g.Bound.Min[0] + float64(c.X)*g.Resolution,
		g.Bound.Min[1] + float64(c.Y)*g.Resolution,
	}
}

// Contains reports whether c lies inside the grid.
func (g *Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Blocked reports whether c is an obstacle.
func (g *Grid) Blocked(c Cell) bool {
	_, ok := g.Obstacles[c]
	return ok
}

// Block marks c as an obstacle.
func (g *Grid) Block(c Cell) {
	g.Obstacles[c] = struct{}{}
}

// StepKm is the length of one orthogonal move.
func (g *Grid) StepKm() float64 {
	return g.Resolution * kmPerDegree
}
