package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Slot is a single durable key holding one serialized snapshot.
// Write replaces the stored value wholesale.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, value []byte) error
	Close() error
}
