package queue

import (
	"context"
)

// MemoryDriver is a channel-backed queue driver used in development and tests.
// Jobs do not survive a restart.
type MemoryDriver struct {
	jobs chan []byte
}

// NewMemoryDriver returns an in-process queue driver.
func NewMemoryDriver() *MemoryDriver {
	return &MemoryDriver{jobs: make(chan []byte, 1024)}
}

func (d *MemoryDriver) Push(payload []byte) error {
	select {
	case d.jobs <- payload:
		return nil
	default:
		return ErrQueueFull
	}
}

func (d *MemoryDriver) Pop(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case raw := <-d.jobs:
		return raw, nil
	}
}
