package overrides

import (
	"context"
	"sync"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	users map[string]Overrides
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{users: map[string]Overrides{}}
}

func (r *MemoryRepo) Set(_ context.Context, userID, param string, value float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.users[userID] == nil {
		r.users[userID] = Overrides{}
	}
	r.users[userID][param] = value
	return nil
}

func (r *MemoryRepo) Delete(_ context.Context, userID, param string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users[userID], param)
	return nil
}

func (r *MemoryRepo) Get(_ context.Context, userID string) (Overrides, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := Overrides{}
	for k, v := range r.users[userID] {
		out[k] = v
	}
	return out, nil
}
