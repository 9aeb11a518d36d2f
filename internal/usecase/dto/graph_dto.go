package dto

// EdgeInput - undirected weighted edge
type EdgeInput struct {
	From   string `json:"from" validate:"required"`
	To     string `json:"to" validate:"required"`
	Weight int    `json:"weight" validate:"min=0,max=1000000000"`
}

// GraphInput - graph description shared by the graph requests
type GraphInput struct {
	Vertices []string    `json:"vertices,omitempty" validate:"omitempty,dive,required"`
	Edges    []EdgeInput `json:"edges" validate:"required,min=1,max=10000,dive"`
}

// ShortestPathRequest - shortest path between two vertices.
// Metric "hops" ignores weights and counts edges.
type ShortestPathRequest struct {
	Graph  GraphInput `json:"graph"`
	Start  string     `json:"start" validate:"required"`
	End    string     `json:"end" validate:"required"`
	Metric string     `json:"metric,omitempty" validate:"omitempty,oneof=weight hops"`
}

// ShortestPathResponse - Found is false (and Distance -1) when no path exists
type ShortestPathResponse struct {
	Found    bool     `json:"found"`
	Path     []string `json:"path"`
	Distance int      `json:"distance"`
}

// GraphDistancesRequest - distances from one vertex to all others
type GraphDistancesRequest struct {
	Graph GraphInput `json:"graph"`
	Start string     `json:"start" validate:"required"`
}

// GraphDistancesResponse - unreachable vertices are listed separately
type GraphDistancesResponse struct {
	Start       string         `json:"start"`
	Distances   map[string]int `json:"distances"`
	Reachable   []string       `json:"reachable"`
	Unreachable []string       `json:"unreachable"`
}
