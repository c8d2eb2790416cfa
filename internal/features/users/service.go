// Package users: service.go содержит бизнес-логику управления покупателями.
// Сервис регистрирует покупателей, хранит язык и реферальные связи.
package users

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/topup-bot/internal/i18n"
)

// Repository описывает хранилище покупателей.
type Repository interface {
	Ensure(ctx context.Context, userID int64, username, language string) error
	GetByUserID(ctx context.Context, userID int64) (*User, error)
	SetLanguage(ctx context.Context, userID int64, language string) error
	SetReferrer(ctx context.Context, userID, referrerID int64) (bool, error)
	EnsureReferralCode(ctx context.Context, userID int64, code string) (string, error)
	AddBonuses(ctx context.Context, userID, amount int64) (bool, error)
}

// Service управляет покупателями.
type Service struct {
	repo            Repository
	defaultLanguage string
}

// NewService создаёт сервис покупателей.
func NewService(repo Repository, defaultLanguage string) *Service {
	return &Service{repo: repo, defaultLanguage: defaultLanguage}
}

// Ensure гарантирует, что покупатель есть в базе, и возвращает его запись.
// Новый покупатель получает язык по умолчанию и нулевой баланс.
func (s *Service) Ensure(ctx context.Context, userID int64, username string) (*User, error) {
	return s.EnsureWithLanguage(ctx, userID, username, "")
}

// EnsureWithLanguage: как Ensure, но новому покупателю ставит язык его
// клиента Telegram, если он поддерживается. Язык существующего не меняется.
func (s *Service) EnsureWithLanguage(ctx context.Context, userID int64, username, clientLang string) (*User, error) {
	lang := i18n.Match(clientLang)
	if lang == "" {
		lang = s.defaultLanguage
	}
	if err := s.repo.Ensure(ctx, userID, username, lang); err != nil {
		return nil, err
	}
	return s.repo.GetByUserID(ctx, userID)
}

// Get возвращает покупателя по Telegram user ID.
func (s *Service) Get(ctx context.Context, userID int64) (*User, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// SetLanguage меняет язык интерфейса.
func (s *Service) SetLanguage(ctx context.Context, userID int64, language string) error {
	return s.repo.SetLanguage(ctx, userID, language)
}

// LinkReferrer обрабатывает аргумент /start вида ref<id>.
// Пригласивший записывается один раз: повторные ссылки игнорируются,
// пригласить самого себя нельзя.
func (s *Service) LinkReferrer(ctx context.Context, userID int64, arg string) (bool, error) {
	referrerID, ok := ParseReferralArg(arg)
	if !ok || referrerID == userID {
		return false, nil
	}

	linked, err := s.repo.SetReferrer(ctx, userID, referrerID)
	if err != nil {
		return false, err
	}
	if linked {
		log.WithFields(log.Fields{
			"user_id":     userID,
			"referred_by": referrerID,
		}).Info("Реферер записан")
	}
	return linked, nil
}

// ReferralCode возвращает код покупателя, создавая его при первом запросе.
func (s *Service) ReferralCode(ctx context.Context, userID int64) (string, error) {
	code, err := s.repo.EnsureReferralCode(ctx, userID, fmt.Sprintf("%s%d", ReferralPrefix, userID))
	if err != nil {
		return "", err
	}
	return code, nil
}

// ParseReferralArg разбирает ref<id>. Всё остальное: не реферальная ссылка.
func ParseReferralArg(arg string) (int64, bool) {
	if !strings.HasPrefix(arg, ReferralPrefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(arg, ReferralPrefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
