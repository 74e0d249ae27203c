package catalog

import (
	"context"
	"sync"

	"github.com/jmac122/OSRS-Dashboard/internal/model"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	monsters map[string]model.Monster
	masters  map[string]model.Master
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		monsters: map[string]model.Monster{},
		masters:  map[string]model.Master{},
	}
}

// SeedMonsters validates and stores monster records, keyed by id.
func (r *MemoryRepo) SeedMonsters(_ context.Context, monsters []model.Monster) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range monsters {
		if err := ValidateMonster(m); err != nil {
			return err
		}
		r.monsters[m.ID] = m
	}
	return nil
}

func (r *MemoryRepo) SeedMasters(_ context.Context, masters []model.Master) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range masters {
		if err := ValidateMaster(m); err != nil {
			return err
		}
		r.masters[m.ID] = m
	}
	return nil
}

func (r *MemoryRepo) Monster(_ context.Context, id string) (model.Monster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.monsters[id]
	if !ok {
		return model.Monster{}, ErrMonsterNotFound
	}
	return m, nil
}

func (r *MemoryRepo) Master(_ context.Context, id string) (model.Master, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.masters[id]
	if !ok {
		return model.Master{}, ErrMasterNotFound
	}
	return m, nil
}

func (r *MemoryRepo) Monsters(_ context.Context) (map[string]model.Monster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]model.Monster, len(r.monsters))
	for id, m := range r.monsters {
		out[id] = m
	}
	return out, nil
}

func (r *MemoryRepo) Masters(_ context.Context) (map[string]model.Master, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]model.Master, len(r.masters))
	for id, m := range r.masters {
		out[id] = m
	}
	return out, nil
}
