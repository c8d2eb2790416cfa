// Package accounting начисляет бонусы: за покупку самому покупателю
// и комиссию пригласившему. Каждое начисление: атомарное увеличение баланса
// плюс запись в журнал bonus_transactions.
package accounting

import (
	"time"

	"github.com/google/uuid"
)

// Kind: тип начисления.
type Kind string

const (
	KindPurchaseBonus      Kind = "purchase_bonus"
	KindReferralCommission Kind = "referral_commission"
)

// Transaction: запись журнала начислений.
type Transaction struct {
	ID           uuid.UUID `db:"id"`
	UserID       int64     `db:"user_id"` // Кому начислено
	Amount       int64     `db:"amount"`  // Всегда положительное
	Kind         Kind      `db:"kind"`
	OrderID      *int64    `db:"order_id"`       // Для бонуса за покупку
	SourceUserID *int64    `db:"source_user_id"` // Для комиссии: кто купил
	CreatedAt    time.Time `db:"created_at"`
}
