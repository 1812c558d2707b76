package storage

import (
	"context"
	"sync"
)

type MemorySlot struct {
	mu    sync.Mutex
	value []byte
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.value == nil {
		return nil, ErrNotFound
	}
	return append([]byte(nil), s.value...), nil
}

func (s *MemorySlot) Write(ctx context.Context, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = append([]byte(nil), value...)
	return nil
}

func (s *MemorySlot) Close() error {
	return nil
}
