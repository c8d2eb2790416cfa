package admin

import (
	"context"
	"sync"
	"time"

	"serotonyl.ru/topup-bot/internal/common"
)

// MemoryRepository хранит сессии и попытки входа в памяти.
type MemoryRepository struct {
	mu       sync.Mutex
	sessions []AdminSession
	attempts []LoginAttempt
	now      func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{now: time.Now}
}

func (r *MemoryRepository) CreateSession(ctx context.Context, session *AdminSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	s := *session
	s.ID = int64(len(r.sessions) + 1)
	s.AuthenticatedAt = now
	s.LastActivity = now
	s.IsActive = true
	r.sessions = append(r.sessions, s)
	return nil
}

func (r *MemoryRepository) GetActiveSession(ctx context.Context, userID int64) (*AdminSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for i := len(r.sessions) - 1; i >= 0; i-- {
		s := r.sessions[i]
		if s.UserID == userID && s.IsActive && s.ExpiresAt.After(now) {
			return &s, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *MemoryRepository) DeactivateSession(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.sessions {
		if r.sessions[i].UserID == userID {
			r.sessions[i].IsActive = false
		}
	}
	return nil
}

func (r *MemoryRepository) UpdateActivity(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for i := range r.sessions {
		if r.sessions[i].UserID == userID && r.sessions[i].IsActive {
			r.sessions[i].LastActivity = now
		}
	}
	return nil
}

func (r *MemoryRepository) LogAttempt(ctx context.Context, userID int64, success bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.attempts = append(r.attempts, LoginAttempt{
		ID:          int64(len(r.attempts) + 1),
		UserID:      userID,
		AttemptTime: r.now(),
		Success:     success,
	})
	return nil
}

func (r *MemoryRepository) GetRecentAttempts(ctx context.Context, userID int64, period time.Duration) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := r.now().Add(-period)
	count := 0
	for _, a := range r.attempts {
		if a.UserID == userID && !a.Success && !a.AttemptTime.Before(since) {
			count++
		}
	}
	return count, nil
}

var _ Repository = (*MemoryRepository)(nil)
