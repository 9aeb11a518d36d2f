package graph

import (
	"math"
	"sort"

	"github.com/center-assignment/internal/pkg/pqueue"
)

// Unreachable is the distance reported by ShortestDistances for vertices that
// cannot be reached from the start vertex.
const Unreachable = math.MaxInt

// NoPath is the distance returned together with a nil path when either endpoint is
// missing or the end vertex is unreachable. Callers must check for it explicitly.
const NoPath = -1

// WeightFunc computes the cost of traversing the edge u-v. Negative results make
// the edge impassable.
type WeightFunc func(u, v string) int

// Solver runs Dijkstra's algorithm over a Graph.
//
// Complexity: O((V + E) log V) time, O(V + E) space with lazy decrease-key
// (stale heap entries are skipped once their vertex is visited).
type Solver struct {
	g *Graph
}

// NewSolver returns a solver bound to g. The graph must not be mutated while a
// search is running.
func NewSolver(g *Graph) *Solver {
	return &Solver{g: g}
}

// ShortestPath returns the cheapest path from start to end and its total weight.
// The search stops as soon as end is popped from the queue. If either vertex is
// absent or end is unreachable it returns (nil, NoPath).
func (s *Solver) ShortestPath(start, end string) ([]string, int) {
	return s.ShortestPathFunc(start, end, nil)
}

// ShortestPathFunc is ShortestPath with a custom edge cost. A nil weight uses the
// stored edge weights.
func (s *Solver) ShortestPathFunc(start, end string, weight WeightFunc) ([]string, int) {
	if !s.g.HasVertex(start) || !s.g.HasVertex(end) {
		return nil, NoPath
	}
	if start == end {
		return []string{start}, 0
	}

	dist, parent := s.run(start, end, weight)
	if dist[end] == Unreachable {
		return nil, NoPath
	}

	return reconstructPath(parent, start, end), dist[end]
}

// ShortestDistances returns the distance from start to every vertex; unreachable
// vertices hold Unreachable. An absent start yields an empty map.
func (s *Solver) ShortestDistances(start string) map[string]int {
	if !s.g.HasVertex(start) {
		return map[string]int{}
	}
	dist, _ := s.run(start, "", nil)
	return dist
}

// PathExists reports whether end can be reached from start.
func (s *Solver) PathExists(start, end string) bool {
	_, d := s.ShortestPath(start, end)
	return d != NoPath
}

// ReachableVertices lists every vertex reachable from start, including start,
// sorted ascending.
func (s *Solver) ReachableVertices(start string) []string {
	var out []string
	for v, d := range s.ShortestDistances(start) {
		if d != Unreachable {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// run is the shared Dijkstra loop. An empty end disables the early exit.
func (s *Solver) run(start, end string, weight WeightFunc) (map[string]int, map[string]string) {
	vertices := s.g.Vertices()
	dist := make(map[string]int, len(vertices))
	for _, v := range vertices {
		dist[v] = Unreachable
	}
	dist[start] = 0

	parent := make(map[string]string, len(vertices))
	visited := make(map[string]bool, len(vertices))

	pq := pqueue.New[string, int](len(vertices))
	pq.Push(start, 0)

	for !pq.IsEmpty() {
		u, _, err := pq.Pop()
		if err != nil {
			break
		}
		if visited[u] {
			continue
		}
		visited[u] = true

		if u == end {
			break
		}

		for _, e := range s.g.adjacency[u] {
			if visited[e.To] {
				continue
			}

			w := e.Weight
			if weight != nil {
				w = weight(u, e.To)
				if w < 0 {
					continue
				}
			}

			// custom weights are unbounded; a sum reaching Unreachable is no path
			if w >= Unreachable-dist[u] {
				continue
			}
			candidate := dist[u] + w
			if candidate < dist[e.To] {
				dist[e.To] = candidate
				parent[e.To] = u
				pq.Push(e.To, candidate)
			}
		}
	}

	return dist, parent
}

func reconstructPath(parent map[string]string, start, end string) []string {
	if _, ok := parent[end]; !ok {
		return nil
	}

	var path []string
	for cur := end; cur != start; cur = parent[cur] {
		path = append(path, cur)
	}
	path = append(path, start)

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
