// Package progress holds ProgressSink implementations for distance matrix builds.
// Every sink is non-blocking.
package progress

import (
	"github.com/center-assignment/internal/domain/repository"
	"go.uber.org/zap"
)

// Nop discards updates.
type Nop struct{}

func (Nop) Update(int, int, string) {}

// Func adapts a plain function to repository.ProgressSink.
type Func func(completed, total int, message string)

func (f Func) Update(completed, total int, message string) {
	f(completed, total, message)
}

// Multi forwards every update to each sink in order.
type Multi []repository.ProgressSink

func (m Multi) Update(completed, total int, message string) {
	for _, s := range m {
		if s != nil {
			s.Update(completed, total, message)
		}
	}
}

// Log writes every Nth update (and the final one) at info level.
type Log struct {
	logger *zap.Logger
	every  int
}

func NewLog(logger *zap.Logger, every int) *Log {
	if every <= 0 {
		every = 1
	}
	return &Log{logger: logger, every: every}
}

func (l *Log) Update(completed, total int, message string) {
	if completed%l.every != 0 && completed != total {
		return
	}
	l.logger.Info("Distance matrix progress",
		zap.Int("completed", completed),
		zap.Int("total", total),
		zap.String("message", message))
}

// OrNop returns sink, or Nop when sink is nil.
func OrNop(sink repository.ProgressSink) repository.ProgressSink {
	if sink == nil {
		return Nop{}
	}
	return sink
}
