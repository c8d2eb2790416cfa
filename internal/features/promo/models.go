// Package promo управляет промокодами: код → доля скидки в [0, 1).
package promo

import (
	"time"

	"github.com/shopspring/decimal"
)

// Promo: промокод из реестра.
type Promo struct {
	Code      string          `db:"code"`     // Код в верхнем регистре
	Discount  decimal.Decimal `db:"discount"` // Доля скидки: 0.10 = 10%
	CreatedAt time.Time       `db:"created_at"`
}
