package promo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"serotonyl.ru/topup-bot/internal/common"
)

// MemoryRepository in-memory реестр промокодов с теми же начальными кодами,
// что и миграция.
type MemoryRepository struct {
	mu     sync.RWMutex
	promos map[string]Promo
}

func NewMemoryRepository() *MemoryRepository {
	now := time.Now()
	r := &MemoryRepository{promos: make(map[string]Promo)}
	for code, discount := range Seeds() {
		r.promos[code] = Promo{Code: code, Discount: discount, CreatedAt: now}
	}
	return r
}

func (r *MemoryRepository) Get(ctx context.Context, code string) (*Promo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.promos[code]
	if !ok {
		return nil, common.ErrPromoNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) Upsert(ctx context.Context, code string, discount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.promos[code]
	if !ok {
		p = Promo{Code: code, CreatedAt: time.Now()}
	}
	p.Discount = discount
	r.promos[code] = p
	return nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]Promo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Promo, 0, len(r.promos))
	for _, p := range r.promos {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

var _ Repository = (*MemoryRepository)(nil)
