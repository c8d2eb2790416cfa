// Package orders: журнал заказов. Заказ создаётся при выборе пакета
// в статусе pending и никогда не удаляется ботом.
package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status: статус заказа.
type Status string

// Бот сам ставит только pending, остальные статусы меняет оператор.
const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Order: одна попытка покупки.
type Order struct {
	ID        int64           `db:"id"`
	UserID    int64           `db:"user_id"`
	Package   string          `db:"package"`
	Price     decimal.Decimal `db:"price"` // Округлена до копеек
	PlayerID  *string         `db:"player_id"`
	Status    Status          `db:"status"`
	CreatedAt time.Time       `db:"created_at"`
}

// Stats: сводка для оператора.
type Stats struct {
	Count        int64
	Revenue      decimal.Decimal
	Popular      string // Пусто, если заказов нет
	PopularCount int64
}
