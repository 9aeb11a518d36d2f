package assignment

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/center-assignment/internal/domain"
	"github.com/center-assignment/internal/domain/repository"
	"github.com/center-assignment/internal/metrics"
	"github.com/center-assignment/internal/pkg/errors"
	"github.com/center-assignment/internal/progress"
	"github.com/center-assignment/internal/usecase/dto"
	"github.com/center-assignment/internal/worker"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	progressBuffer = 64
	publishTimeout = 5 * time.Second
)

// AssignmentUseCase - the part of usecase.AssignmentUseCase the worker needs
type AssignmentUseCase interface {
	Assign(ctx context.Context, req dto.AssignRequest, sink repository.ProgressSink) (*dto.AssignResponse, error)
}

type Config struct {
	ConsumerGroup string
	MaxRetries    int
	Concurrency   int
	ProgressEvery int
	RetryDelay    time.Duration
}

// AssignmentWorker consumes assignment requests from Redis Streams, runs them and
// publishes progress and results
type AssignmentWorker struct {
	*worker.BaseWorker
	streamRepo    repository.StreamRepository
	assignmentUC  AssignmentUseCase
	consumerName  string
	maxRetries    int
	concurrency   int
	progressEvery int
	retryDelay    time.Duration
}

func NewAssignmentWorker(
	streamRepo repository.StreamRepository,
	assignmentUC AssignmentUseCase,
	cfg Config,
	logger *zap.Logger,
) *AssignmentWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 1
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}

	return &AssignmentWorker{
		BaseWorker:    worker.NewBaseWorker("assignment", cfg.ConsumerGroup, logger),
		streamRepo:    streamRepo,
		assignmentUC:  assignmentUC,
		consumerName:  consumerName,
		maxRetries:    cfg.MaxRetries,
		concurrency:   cfg.Concurrency,
		progressEvery: cfg.ProgressEvery,
		retryDelay:    cfg.RetryDelay,
	}
}

// Start blocks until Stop is called or ctx is done. Runs already in progress finish
// before Start returns.
func (w *AssignmentWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting AssignmentWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("concurrency", w.concurrency))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamAssignmentRequest, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-w.StopChan():
			cancel()
		case <-consumeCtx.Done():
		}
	}()

	messages, err := w.streamRepo.ConsumeStream(consumeCtx, domain.StreamAssignmentRequest, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < w.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-consumeCtx.Done():
					return
				case msg, ok := <-messages:
					if !ok {
						return
					}
					w.handle(ctx, msg)
				}
			}
		}()
	}
	wg.Wait()

	if ctx.Err() != nil {
		logger.Info("Context cancelled")
		return ctx.Err()
	}
	logger.Info("Worker stopped")
	return nil
}

func (w *AssignmentWorker) handle(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	event, err := parseMessage(msg)
	if err != nil {
		logger.Warn("Failed to parse message, skipping", zap.Error(err))
		metrics.StreamEvents.WithLabelValues("malformed").Inc()
		w.ack(msg.ID)
		return
	}
	if event.RequestID == uuid.Nil {
		event.RequestID = uuid.New()
	}
	logger = logger.With(zap.String("request_id", event.RequestID.String()))

	stream := progress.NewStream(w.streamRepo, domain.StreamAssignmentProgress, event.RequestID, progressBuffer, w.progressEvery, logger)
	sink := progress.Multi{progress.NewLog(logger, w.progressEvery), stream}
	resp, err := w.run(ctx, event, sink)
	stream.Close()
	if dropped := stream.Dropped(); dropped > 0 {
		logger.Debug("Progress updates dropped", zap.Int64("dropped", dropped))
	}

	done := &domain.AssignmentDoneEvent{RequestID: event.RequestID}
	if err != nil {
		done.Error = err.Error()
		metrics.StreamEvents.WithLabelValues("failed").Inc()
		logger.Error("Assignment request failed", zap.Error(err))
	} else {
		done.Result = &resp.AssignmentResult
		metrics.StreamEvents.WithLabelValues("processed").Inc()
		logger.Info("Assignment request processed",
			zap.String("status", string(resp.Status)),
			zap.Int("assigned", resp.Stats.TotalAssigned),
			zap.Int("unassigned", resp.Stats.Unassigned))
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := w.streamRepo.PublishToStream(pubCtx, domain.StreamAssignmentDone, done); err != nil {
		// left pending so another consumer can pick it up
		logger.Error("Failed to publish done event", zap.Error(err))
		return
	}

	w.ack(msg.ID)
}

// run retries failures that are not caused by the request itself
func (w *AssignmentWorker) run(ctx context.Context, event *domain.AssignmentRequestEvent, sink repository.ProgressSink) (*dto.AssignResponse, error) {
	req := dto.AssignRequest{
		People:            dto.PeopleFromDomain(event.People),
		Centers:           dto.CentersFromDomain(event.Centers),
		CapacityPerCenter: event.CapacityPerCenter,
		UseRoadDistances:  event.UseRoadDistances,
	}

	var lastErr error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		resp, err := w.assignmentUC.Assign(ctx, req, sink)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !retryable(err) || attempt == w.maxRetries {
			break
		}

		w.Logger().Warn("Assignment attempt failed, retrying",
			zap.String("request_id", event.RequestID.String()),
			zap.Int("attempt", attempt),
			zap.Error(err))

		select {
		case <-time.After(time.Duration(attempt) * w.retryDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

func (w *AssignmentWorker) ack(messageID string) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := w.streamRepo.AckMessage(ctx, domain.StreamAssignmentRequest, w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Error("Failed to ack message",
			zap.String("message_id", messageID),
			zap.Error(err))
	}
}

func parseMessage(msg domain.StreamMessage) (*domain.AssignmentRequestEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("missing 'data' field")
	}

	var event domain.AssignmentRequestEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &event, nil
}

// retryable reports whether err may succeed on a second attempt. Client errors and
// cancellations never do.
func retryable(err error) bool {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr.StatusCode >= 500
	}
	return !stderrors.Is(err, context.Canceled) && !stderrors.Is(err, context.DeadlineExceeded)
}
