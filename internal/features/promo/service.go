package promo

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/topup-bot/internal/common"
)

// Repository: хранилище промокодов.
type Repository interface {
	Get(ctx context.Context, code string) (*Promo, error)
	Upsert(ctx context.Context, code string, discount decimal.Decimal) error
	List(ctx context.Context) ([]Promo, error)
}

// Ограничения колонок promos
const (
	MaxCodeLength = 64 // code VARCHAR(64)
	DiscountScale = 4  // discount NUMERIC(5,4)
)

// Seeds: промокоды, которые есть в реестре с первого запуска.
func Seeds() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"SUMMER10": decimal.RequireFromString("0.10"),
		"WELCOME":  decimal.RequireFromString("0.05"),
	}
}

// Service: реестр промокодов.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Normalize приводит код к виду, в котором он хранится.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Lookup ищет промокод без учёта регистра.
// Неизвестный код: common.ErrPromoNotFound.
func (s *Service) Lookup(ctx context.Context, code string) (*Promo, error) {
	code = Normalize(code)
	if code == "" {
		return nil, common.ErrPromoNotFound
	}
	return s.repo.Get(ctx, code)
}

// Add добавляет или обновляет промокод. Скидка должна быть в [0, 1)
// и помещаться в NUMERIC(5,4), код: не длиннее VARCHAR(64).
func (s *Service) Add(ctx context.Context, code string, discount decimal.Decimal) error {
	code = Normalize(code)
	if code == "" || utf8.RuneCountInString(code) > MaxCodeLength {
		return common.ErrInvalidPromoCode
	}
	if discount.IsNegative() || discount.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return common.ErrInvalidDiscount
	}
	if !discount.Equal(discount.Truncate(DiscountScale)) {
		return common.ErrInvalidDiscount
	}
	if err := s.repo.Upsert(ctx, code, discount); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"component": "promo",
		"code":      code,
		"discount":  discount.String(),
	}).Info("Промокод сохранён")
	return nil
}

// List возвращает все промокоды.
func (s *Service) List(ctx context.Context) ([]Promo, error) {
	return s.repo.List(ctx)
}

// Apply считает цену со скидкой без округления: base * (1 - discount).
func Apply(base, discount decimal.Decimal) decimal.Decimal {
	return base.Mul(decimal.NewFromInt(1).Sub(discount))
}
