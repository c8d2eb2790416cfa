// Package admin: service.go содержит проверку оператора, вход по паролю
// и действия админ-меню.
package admin

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/topup-bot/internal/common"
	"serotonyl.ru/topup-bot/internal/features/bans"
	"serotonyl.ru/topup-bot/internal/features/catalog"
	"serotonyl.ru/topup-bot/internal/features/orders"
	"serotonyl.ru/topup-bot/internal/features/promo"
)

// Repository: хранилище сессий и попыток входа.
type Repository interface {
	CreateSession(ctx context.Context, session *AdminSession) error
	GetActiveSession(ctx context.Context, userID int64) (*AdminSession, error)
	DeactivateSession(ctx context.Context, userID int64) error
	UpdateActivity(ctx context.Context, userID int64) error
	LogAttempt(ctx context.Context, userID int64, success bool) error
	GetRecentAttempts(ctx context.Context, userID int64, period time.Duration) (int, error)
}

// Deps: сервисы, над которыми работает админ-меню.
type Deps struct {
	Orders  *orders.Service
	Bans    *bans.Service
	Promos  *promo.Service
	Catalog *catalog.Catalog
}

// Service управляет админ-панелью.
type Service struct {
	repo         Repository
	operators    map[int64]bool
	passwordHash string
	deps         Deps
}

// NewService создаёт сервис. Пустой passwordHash: вход без пароля.
func NewService(repo Repository, operatorIDs []int64, passwordHash string, deps Deps) *Service {
	ops := make(map[int64]bool, len(operatorIDs))
	for _, id := range operatorIDs {
		ops[id] = true
	}
	return &Service{
		repo:         repo,
		operators:    ops,
		passwordHash: passwordHash,
		deps:         deps,
	}
}

// IsOperator проверяет, что пользователь есть в ADMIN_IDS.
func (s *Service) IsOperator(userID int64) bool {
	return s.operators[userID]
}

// PasswordRequired: включён ли вход по паролю.
func (s *Service) PasswordRequired() bool {
	return s.passwordHash != ""
}

// Authorized проверяет доступ к админ-меню: оператор и, если включён пароль,
// активная сессия. Обновляет активность сессии.
func (s *Service) Authorized(ctx context.Context, userID int64) (bool, error) {
	if !s.IsOperator(userID) {
		return false, common.ErrForbidden
	}
	if !s.PasswordRequired() {
		return true, nil
	}

	_, err := s.repo.GetActiveSession(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := s.repo.UpdateActivity(ctx, userID); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Не удалось обновить активность сессии")
	}
	return true, nil
}

// VerifyPassword проверяет пароль оператора по хешу Argon2id.
// 3 неудачные попытки за час: блокировка входа на час.
func (s *Service) VerifyPassword(ctx context.Context, userID int64, password string) error {
	if !s.IsOperator(userID) {
		return common.ErrForbidden
	}

	attempts, err := s.repo.GetRecentAttempts(ctx, userID, AttemptsWindow)
	if err != nil {
		return err
	}
	if attempts >= MaxAttempts {
		return common.ErrTooManyAttempts
	}

	match := verifyArgon2id(password, s.passwordHash)
	if err := s.repo.LogAttempt(ctx, userID, match); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Не удалось записать попытку входа")
	}
	if !match {
		log.WithField("user_id", userID).Warn("Неверный пароль админ-панели")
		return common.ErrWrongPassword
	}

	session := &AdminSession{
		UserID:       userID,
		SessionToken: generateSecureToken(),
		ExpiresAt:    time.Now().Add(SessionTTL),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return err
	}
	log.WithField("user_id", userID).Info("Оператор вошёл в админ-панель")
	return nil
}

// Logout закрывает сессии оператора.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	return s.repo.DeactivateSession(ctx, userID)
}

// Orders: последние заказы.
func (s *Service) Orders(ctx context.Context) ([]orders.Order, error) {
	return s.deps.Orders.ListAll(ctx)
}

// Stats: сводка по заказам.
func (s *Service) Stats(ctx context.Context) (*orders.Stats, error) {
	return s.deps.Orders.Aggregate(ctx)
}

// Ban разбирает ID из текста оператора и блокирует пользователя.
func (s *Service) Ban(ctx context.Context, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.ErrInvalidBanTarget
	}
	if err := s.deps.Bans.Ban(ctx, id); err != nil {
		return 0, err
	}
	return id, nil
}

// Promos: все промокоды.
func (s *Service) Promos(ctx context.Context) ([]promo.Promo, error) {
	return s.deps.Promos.List(ctx)
}

// AddPromo разбирает аргументы "КОД ДОЛЯ" и сохраняет промокод.
func (s *Service) AddPromo(ctx context.Context, args []string) (string, decimal.Decimal, error) {
	if len(args) != 2 {
		return "", decimal.Zero, common.ErrInvalidDiscount
	}
	discount, err := decimal.NewFromString(strings.TrimSpace(args[1]))
	if err != nil {
		return "", decimal.Zero, common.ErrInvalidDiscount
	}
	if err := s.deps.Promos.Add(ctx, args[0], discount); err != nil {
		return "", decimal.Zero, err
	}
	return promo.Normalize(args[0]), discount, nil
}

// ReloadCatalog перечитывает прайс и возвращает число пакетов.
func (s *Service) ReloadCatalog() (int, error) {
	if err := s.deps.Catalog.Reload(); err != nil {
		return 0, err
	}
	return len(s.deps.Catalog.Packages()), nil
}
