package progress

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/center-assignment/internal/domain"
	"github.com/center-assignment/internal/domain/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const publishTimeout = 2 * time.Second

// Stream publishes progress events to a Redis stream from a background goroutine.
// Updates are buffered; when the buffer is full the update is dropped.
type Stream struct {
	repo      repository.StreamRepository
	stream    string
	requestID uuid.UUID
	every     int
	logger    *zap.Logger

	mu      sync.Mutex
	closed  bool
	events  chan domain.ProgressEvent
	done    chan struct{}
	dropped atomic.Int64
}

// NewStream starts the publisher. Only every Nth update (and the final one) is enqueued.
func NewStream(repo repository.StreamRepository, stream string, requestID uuid.UUID, buffer, every int, logger *zap.Logger) *Stream {
	if buffer <= 0 {
		buffer = 64
	}
	if every <= 0 {
		every = 1
	}
	s := &Stream{
		repo:      repo,
		stream:    stream,
		requestID: requestID,
		every:     every,
		logger:    logger,
		events:    make(chan domain.ProgressEvent, buffer),
		done:      make(chan struct{}),
	}
	go s.publish()
	return s
}

func (s *Stream) Update(completed, total int, message string) {
	if completed%s.every != 0 && completed != total {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	select {
	case s.events <- domain.ProgressEvent{
		RequestID: s.requestID,
		Completed: completed,
		Total:     total,
		Message:   message,
		At:        time.Now().UTC(),
	}:
	default:
		s.dropped.Add(1)
	}
}

// Close stops accepting updates and waits until the buffered ones are published.
func (s *Stream) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.events)
	}
	s.mu.Unlock()
	<-s.done
}

// Dropped returns how many updates were discarded because the buffer was full.
func (s *Stream) Dropped() int64 {
	return s.dropped.Load()
}

func (s *Stream) publish() {
	defer close(s.done)
	for ev := range s.events {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := s.repo.PublishToStream(ctx, s.stream, ev); err != nil {
			s.logger.Warn("Failed to publish progress",
				zap.String("request_id", s.requestID.String()),
				zap.Error(err))
		}
		cancel()
	}
}
