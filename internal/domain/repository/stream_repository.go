package repository

import (
	"context"

	"github.com/center-assignment/internal/domain"
)

// StreamRepository - Redis Streams transport used by the assignment worker
type StreamRepository interface {
	// ConsumeStream reads messages of a consumer group until ctx is done
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	// AckMessage acknowledges a processed message
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// CreateConsumerGroup creates the group (and the stream) if it does not exist yet
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishToStream JSON-encodes data and appends it to the stream
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
