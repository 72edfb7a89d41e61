package repository

import (
	"context"
	"sync"
)

// MemoryFolderIndex хранит индекс в памяти процесса и теряется при рестарте
type MemoryFolderIndex struct {
	mu    sync.RWMutex
	names []string
}

func NewMemoryFolderIndex(initial ...string) *MemoryFolderIndex {
	idx := &MemoryFolderIndex{}
	for i := len(initial) - 1; i >= 0; i-- {
		_ = idx.Add(context.Background(), initial[i])
	}

	return idx
}

func (r *MemoryFolderIndex) Add(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.names {
		if n == name {
			return nil
		}
	}

	r.names = append([]string{name}, r.names...)

	return nil
}

func (r *MemoryFolderIndex) Remove(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, n := range r.names {
		if n == name {
			r.names = append(r.names[:i:i], r.names[i+1:]...)
			return nil
		}
	}

	return nil
}

func (r *MemoryFolderIndex) All(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.names))
	copy(out, r.names)

	return out, nil
}
