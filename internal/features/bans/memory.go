package bans

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository: блокировки в памяти процесса.
type MemoryRepository struct {
	mu    sync.RWMutex
	bans  map[int64]time.Time
	order []int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{bans: make(map[int64]time.Time)}
}

func (r *MemoryRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.bans[userID]
	return ok, nil
}

func (r *MemoryRepository) Insert(ctx context.Context, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bans[userID]; ok {
		return false, nil
	}
	r.bans[userID] = time.Now()
	r.order = append(r.order, userID)
	return true, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]Ban, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Ban, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, Ban{UserID: id, BannedAt: r.bans[id]})
	}
	return out, nil
}

var _ Repository = (*MemoryRepository)(nil)
