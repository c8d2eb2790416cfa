package accounting

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/topup-bot/internal/features/users"
)

// Repository: хранилище начислений.
type Repository interface {
	Credit(ctx context.Context, t *Transaction) (bool, error)
	Balance(ctx context.Context, userID int64) (int64, error)
	History(ctx context.Context, userID int64, limit int) ([]Transaction, error)
}

// UserReader: откуда брать пригласившего.
type UserReader interface {
	Get(ctx context.Context, userID int64) (*users.User, error)
}

// Service: движок начислений.
//
// Повторное действие пользователя начисляет повторно: ключа
// идемпотентности у начислений нет.
type Service struct {
	repo         Repository
	users        UserReader
	bonusDivisor decimal.Decimal
	referralRate decimal.Decimal
}

// NewService создаёт движок. divisor: сколько рублей за 1 бонус (1000),
// rate: доля комиссии пригласившему (0.05).
func NewService(repo Repository, users UserReader, divisor, rate decimal.Decimal) *Service {
	return &Service{
		repo:         repo,
		users:        users,
		bonusDivisor: divisor,
		referralRate: rate,
	}
}

// PurchaseBonus = floor(price / divisor).
func PurchaseBonus(price, divisor decimal.Decimal) int64 {
	if !price.IsPositive() || !divisor.IsPositive() {
		return 0
	}
	q, _ := price.QuoRem(divisor, 0)
	return q.IntPart()
}

// ReferralCommission = floor(price * rate).
func ReferralCommission(price, rate decimal.Decimal) int64 {
	if !price.IsPositive() || !rate.IsPositive() {
		return 0
	}
	return price.Mul(rate).Floor().IntPart()
}

// CreditPurchaseBonus начисляет покупателю бонус за заказ.
// price: цена без округления. Ноль бонусов, ничего не пишется.
func (s *Service) CreditPurchaseBonus(ctx context.Context, userID, orderID int64, price decimal.Decimal) (int64, error) {
	amount := PurchaseBonus(price, s.bonusDivisor)
	if amount == 0 {
		return 0, nil
	}

	oid := orderID
	t := &Transaction{
		ID:      uuid.New(),
		UserID:  userID,
		Amount:  amount,
		Kind:    KindPurchaseBonus,
		OrderID: &oid,
	}
	ok, err := s.repo.Credit(ctx, t)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("покупатель %d не найден при начислении бонуса", userID)
	}

	log.WithFields(log.Fields{
		"user_id":  userID,
		"order_id": orderID,
		"amount":   amount,
	}).Info("Начислен бонус за покупку")
	return amount, nil
}

// CreditReferralCommission начисляет комиссию пригласившему покупателя.
// Возвращает ID пригласившего и сумму; нет пригласившего: (0, 0, nil).
func (s *Service) CreditReferralCommission(ctx context.Context, userID int64, price decimal.Decimal) (int64, int64, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	if u.ReferredBy == nil {
		return 0, 0, nil
	}
	referrerID := *u.ReferredBy

	amount := ReferralCommission(price, s.referralRate)
	if amount == 0 {
		return referrerID, 0, nil
	}

	source := userID
	t := &Transaction{
		ID:           uuid.New(),
		UserID:       referrerID,
		Amount:       amount,
		Kind:         KindReferralCommission,
		SourceUserID: &source,
	}
	ok, err := s.repo.Credit(ctx, t)
	if err != nil {
		return 0, 0, err
	}
	if !ok {
		// Пригласивший ни разу не писал боту: начислять некому
		log.WithFields(log.Fields{
			"user_id":     userID,
			"referred_by": referrerID,
		}).Warn("Пригласивший не найден, комиссия не начислена")
		return referrerID, 0, nil
	}

	log.WithFields(log.Fields{
		"user_id":     userID,
		"referred_by": referrerID,
		"amount":      amount,
	}).Info("Начислена реферальная комиссия")
	return referrerID, amount, nil
}

// Balance: текущий бонусный баланс.
func (s *Service) Balance(ctx context.Context, userID int64) (int64, error) {
	return s.repo.Balance(ctx, userID)
}

// History: последние начисления, новые сначала.
func (s *Service) History(ctx context.Context, userID int64, limit int) ([]Transaction, error) {
	return s.repo.History(ctx, userID, limit)
}
