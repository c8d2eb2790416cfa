package users

import (
	"context"
	"fmt"
	"sync"
	"time"

	"serotonyl.ru/topup-bot/internal/common"
)

// MemoryRepository in-memory хранилище покупателей (DB_DRIVER=memory и тесты).
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[int64]*User
}

// NewMemoryRepository создаёт пустое in-memory хранилище.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[int64]*User)}
}

func (r *MemoryRepository) Ensure(ctx context.Context, userID int64, username, language string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[userID]; ok {
		if u.Username != username {
			u.Username = username
			u.UpdatedAt = time.Now()
		}
		return nil
	}
	now := time.Now()
	r.users[userID] = &User{
		UserID:    userID,
		Username:  username,
		Language:  language,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

func (r *MemoryRepository) GetByUserID(ctx context.Context, userID int64) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, fmt.Errorf("покупатель не найден (user_id=%d): %w", userID, common.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (r *MemoryRepository) SetLanguage(ctx context.Context, userID int64, language string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[userID]; ok {
		u.Language = language
		u.UpdatedAt = time.Now()
	}
	return nil
}

func (r *MemoryRepository) SetReferrer(ctx context.Context, userID, referrerID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok || u.ReferredBy != nil {
		return false, nil
	}
	ref := referrerID
	u.ReferredBy = &ref
	u.UpdatedAt = time.Now()
	return true, nil
}

func (r *MemoryRepository) EnsureReferralCode(ctx context.Context, userID int64, code string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return "", fmt.Errorf("покупатель не найден (user_id=%d): %w", userID, common.ErrNotFound)
	}
	if u.ReferralCode == nil {
		c := code
		u.ReferralCode = &c
		u.UpdatedAt = time.Now()
	}
	return *u.ReferralCode, nil
}

func (r *MemoryRepository) AddBonuses(ctx context.Context, userID, amount int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return false, nil
	}
	u.Bonuses += amount
	u.UpdatedAt = time.Now()
	return true, nil
}

var _ Repository = (*MemoryRepository)(nil)
