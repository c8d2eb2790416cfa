package bans

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Repository: хранилище блокировок.
type Repository interface {
	Exists(ctx context.Context, userID int64) (bool, error)
	Insert(ctx context.Context, userID int64) (bool, error)
	List(ctx context.Context) ([]Ban, error)
}

// Service: проверка и выдача блокировок.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// IsBanned проверяет, заблокирован ли покупатель.
func (s *Service) IsBanned(ctx context.Context, userID int64) (bool, error) {
	return s.repo.Exists(ctx, userID)
}

// Ban блокирует покупателя. Повторный вызов не ошибка.
func (s *Service) Ban(ctx context.Context, userID int64) error {
	created, err := s.repo.Insert(ctx, userID)
	if err != nil {
		return err
	}
	if created {
		log.WithField("user_id", userID).Warn("Пользователь заблокирован")
	}
	return nil
}

// List возвращает блокировки в порядке выдачи.
func (s *Service) List(ctx context.Context) ([]Ban, error) {
	return s.repo.List(ctx)
}
