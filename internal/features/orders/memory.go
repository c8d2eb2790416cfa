package orders

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// MemoryRepository: заказы в памяти в порядке создания.
type MemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
	nextID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

func (r *MemoryRepository) Create(ctx context.Context, userID int64, pkg string, price decimal.Decimal) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o := Order{
		ID:        r.nextID,
		UserID:    userID,
		Package:   pkg,
		Price:     price.Round(2),
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
	r.nextID++
	r.orders = append(r.orders, o)
	return &o, nil
}

func (r *MemoryRepository) AttachPlayerID(ctx context.Context, userID int64, playerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.orders) - 1; i >= 0; i-- {
		o := &r.orders[i]
		if o.UserID == userID && o.Status == StatusPending {
			id := playerID
			o.PlayerID = &id
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID int64) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *MemoryRepository) ListAll(ctx context.Context, limit int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0, limit)
	for i := len(r.orders) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.orders[i])
	}
	return out, nil
}

func (r *MemoryRepository) LatestPending(ctx context.Context, userID int64) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.orders) - 1; i >= 0; i-- {
		if o := r.orders[i]; o.UserID == userID && o.Status == StatusPending {
			return &o, nil
		}
	}
	return nil, nil
}

// Aggregate: при равной популярности побеждает пакет, заказанный раньше.
func (r *MemoryRepository) Aggregate(ctx context.Context) (*Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st := Stats{Revenue: decimal.Zero}
	counts := make(map[string]int64)
	var order []string
	for _, o := range r.orders {
		st.Count++
		st.Revenue = st.Revenue.Add(o.Price)
		if _, ok := counts[o.Package]; !ok {
			order = append(order, o.Package)
		}
		counts[o.Package]++
	}
	for _, pkg := range order {
		if counts[pkg] > st.PopularCount {
			st.Popular = pkg
			st.PopularCount = counts[pkg]
		}
	}
	return &st, nil
}

var _ Repository = (*MemoryRepository)(nil)
