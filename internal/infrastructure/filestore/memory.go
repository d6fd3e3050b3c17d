package filestore

import (
	"context"
	"fmt"
	"sync"

	"mattrack/internal/ports"
)

// Memory is an in-process file store for tests.
type Memory struct {
	mu    sync.RWMutex
	files map[string][]byte
}

var _ ports.FileStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{files: make(map[string][]byte)}
}

func (s *Memory) Save(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[name]; ok {
		return fmt.Errorf("stored file %q already exists", name)
	}
	cloned := make([]byte, len(data))
	copy(cloned, data)
	s.files[name] = cloned
	return nil
}

func (s *Memory) Open(_ context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.files[name]
	if !ok {
		return nil, fmt.Errorf("stored file %q not found", name)
	}
	cloned := make([]byte, len(data))
	copy(cloned, data)
	return cloned, nil
}
