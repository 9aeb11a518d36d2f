// Package graph implements an undirected weighted graph over string vertex ids and
// a Dijkstra shortest-path solver on top of it.
//
// Edges are stored symmetrically in an adjacency list: every insertion or removal
// touches both endpoints. Parallel edges are not allowed and the first weight
// written for a pair wins; a second AddEdge for the same pair is a no-op.
package graph

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNegativeWeight is returned by AddEdge for weights below zero.
	ErrNegativeWeight = errors.New("graph: negative edge weight")

	// ErrSelfLoop is returned by AddEdge when both endpoints are the same vertex.
	ErrSelfLoop = errors.New("graph: self loops are not supported")

	// ErrEmptyVertex is returned when an empty vertex id is used.
	ErrEmptyVertex = errors.New("graph: vertex id is empty")

	// ErrWeightTooLarge is returned by AddEdge for weights above MaxWeight.
	ErrWeightTooLarge = errors.New("graph: edge weight too large")
)

// MaxWeight bounds a single edge weight so that path sums stay far below
// Unreachable for any graph that fits in memory.
const MaxWeight = 1_000_000_000

// Edge is one adjacency entry: the neighbor reached from the owning vertex and the
// edge weight.
type Edge struct {
	To     string
	Weight int
}

// Graph is an undirected weighted graph. It is not safe for concurrent mutation.
type Graph struct {
	adjacency map[string][]Edge
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{adjacency: make(map[string][]Edge)}
}

// AddVertex adds v if it is not present yet.
func (g *Graph) AddVertex(v string) error {
	if v == "" {
		return ErrEmptyVertex
	}
	if _, ok := g.adjacency[v]; !ok {
		g.adjacency[v] = nil
	}
	return nil
}

// AddEdge connects a and b with weight w, creating missing vertices. If the pair is
// already connected the existing weight is kept.
func (g *Graph) AddEdge(a, b string, w int) error {
	if a == "" || b == "" {
		return ErrEmptyVertex
	}
	if a == b {
		return fmt.Errorf("%w: %s", ErrSelfLoop, a)
	}
	if w < 0 {
		return fmt.Errorf("%w: %s-%s weight=%d", ErrNegativeWeight, a, b, w)
	}
	if w > MaxWeight {
		return fmt.Errorf("%w: %s-%s weight=%d", ErrWeightTooLarge, a, b, w)
	}

	_ = g.AddVertex(a)
	_ = g.AddVertex(b)

	if g.HasEdge(a, b) {
		return nil
	}

	g.adjacency[a] = append(g.adjacency[a], Edge{To: b, Weight: w})
	g.adjacency[b] = append(g.adjacency[b], Edge{To: a, Weight: w})
	return nil
}

// RemoveVertex deletes v and every edge touching it. Missing vertices are ignored.
func (g *Graph) RemoveVertex(v string) {
	edges, ok := g.adjacency[v]
	if !ok {
		return
	}
	for _, e := range edges {
		g.adjacency[e.To] = without(g.adjacency[e.To], v)
	}
	delete(g.adjacency, v)
}

// RemoveEdge deletes the a-b edge from both adjacency lists.
func (g *Graph) RemoveEdge(a, b string) {
	if !g.HasEdge(a, b) {
		return
	}
	g.adjacency[a] = without(g.adjacency[a], b)
	g.adjacency[b] = without(g.adjacency[b], a)
}

// HasVertex reports whether v is in the graph.
func (g *Graph) HasVertex(v string) bool {
	_, ok := g.adjacency[v]
	return ok
}

// HasEdge reports whether a and b are connected.
func (g *Graph) HasEdge(a, b string) bool {
	_, ok := g.EdgeWeight(a, b)
	return ok
}

// EdgeWeight returns the weight of the a-b edge.
func (g *Graph) EdgeWeight(a, b string) (int, bool) {
	for _, e := range g.adjacency[a] {
		if e.To == b {
			return e.Weight, true
		}
	}
	return 0, false
}

// Neighbors returns a copy of v's adjacency list in insertion order.
func (g *Graph) Neighbors(v string) []Edge {
	edges := g.adjacency[v]
	out := make([]Edge, len(edges))
	copy(out, edges)
	return out
}

// Vertices returns all vertex ids sorted ascending.
func (g *Graph) Vertices() []string {
	out := make([]string, 0, len(g.adjacency))
	for v := range g.adjacency {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int {
	return len(g.adjacency)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, edges := range g.adjacency {
		total += len(edges)
	}
	return total / 2
}

// Clear removes every vertex and edge.
func (g *Graph) Clear() {
	g.adjacency = make(map[string][]Edge)
}

// String dumps the adjacency list, one vertex per line, sorted by vertex id.
func (g *Graph) String() string {
	var sb strings.Builder
	for _, v := range g.Vertices() {
		sb.WriteString(v)
		sb.WriteString(" ->")
		for _, e := range g.adjacency[v] {
			fmt.Fprintf(&sb, " %s(%d)", e.To, e.Weight)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func without(edges []Edge, v string) []Edge {
	out := edges[:0]
	for _, e := range edges {
		if e.To != v {
			out = append(out, e)
		}
	}
	return out
}
