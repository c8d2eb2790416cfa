package accounting

import (
	"context"
	"sync"
	"time"

	"serotonyl.ru/topup-bot/internal/common"
	"serotonyl.ru/topup-bot/internal/features/users"
)

// MemoryRepository начисляет через users.MemoryRepository и ведёт журнал в памяти.
type MemoryRepository struct {
	users *users.MemoryRepository

	mu      sync.RWMutex
	journal []Transaction
}

func NewMemoryRepository(usersRepo *users.MemoryRepository) *MemoryRepository {
	return &MemoryRepository{users: usersRepo}
}

func (r *MemoryRepository) Credit(ctx context.Context, t *Transaction) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ok, err := r.users.AddBonuses(ctx, t.UserID, t.Amount)
	if err != nil || !ok {
		return false, err
	}
	t.CreatedAt = time.Now()
	r.journal = append(r.journal, *t)
	return true, nil
}

func (r *MemoryRepository) Balance(ctx context.Context, userID int64) (int64, error) {
	u, err := r.users.GetByUserID(ctx, userID)
	if err != nil {
		return 0, common.ErrNotFound
	}
	return u.Bonuses, nil
}

func (r *MemoryRepository) History(ctx context.Context, userID int64, limit int) ([]Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Transaction
	for i := len(r.journal) - 1; i >= 0 && len(out) < limit; i-- {
		if r.journal[i].UserID == userID {
			out = append(out, r.journal[i])
		}
	}
	return out, nil
}

var _ Repository = (*MemoryRepository)(nil)
