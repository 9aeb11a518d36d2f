package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamAssignmentRequest  = "stream:assignment:request"
	StreamAssignmentDone     = "stream:assignment:done"
	StreamAssignmentProgress = "stream:assignment:progress"
)

// AssignmentRequestEvent - incoming request to run an assignment
type AssignmentRequestEvent struct {
	RequestID         uuid.UUID  `json:"request_id"`
	People            []GeoPoint `json:"people"`
	Centers           []GeoPoint `json:"centers"`
	CapacityPerCenter int        `json:"capacity_per_center"`
	UseRoadDistances  *bool      `json:"use_road_distances,omitempty"`
}

// AssignmentDoneEvent - result published once a request has been processed
type AssignmentDoneEvent struct {
	RequestID uuid.UUID         `json:"request_id"`
	Result    *AssignmentResult `json:"result,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// ProgressEvent - progress of a distance matrix computation
type ProgressEvent struct {
	RequestID uuid.UUID `json:"request_id"`
	Completed int       `json:"completed"`
	Total     int       `json:"total"`
	Message   string    `json:"message"`
	At        time.Time `json:"at"`
}

// StreamMessage - message read from a Redis stream
type StreamMessage struct {
	ID   string
	Data string
}
