// Package session хранит состояние диалога покупки для каждого пользователя.
// Состояние живёт только в памяти процесса и теряется при перезапуске.
// Ожидаемый ввод задаётся одним значением Awaiting, поэтому два ожидания
// одновременно невозможны.
package session

import (
	"time"

	"github.com/shopspring/decimal"
)

// Awaiting: какой свободный ввод ждёт бот от пользователя.
type Awaiting int

// Возможные состояния диалога
const (
	Idle                  Awaiting = iota // Ничего не ждём
	AwaitingPlayerID                      // Ждём ID игрока (8-12 цифр)
	AwaitingPromoCode                     // Ждём промокод, одно сообщение
	AwaitingCustomAmount                  // Ждём количество UC, одно сообщение
	AwaitingBanTarget                     // Оператор: ждём ID для блокировки
	AwaitingAdminPassword                 // Оператор: ждём пароль админки
)

func (a Awaiting) String() string {
	switch a {
	case Idle:
		return "idle"
	case AwaitingPlayerID:
		return "awaiting_player_id"
	case AwaitingPromoCode:
		return "awaiting_promo_code"
	case AwaitingCustomAmount:
		return "awaiting_custom_amount"
	case AwaitingBanTarget:
		return "awaiting_ban_target"
	case AwaitingAdminPassword:
		return "awaiting_admin_password"
	default:
		return "unknown"
	}
}

// Session: диалог одного пользователя.
type Session struct {
	UserID   int64
	Package  string          // Выбранный пакет
	Discount decimal.Decimal // Скидка по промокоду, ещё не использованная
	PlayerID string          // ID игрока для текущего заказа
	Awaiting Awaiting
	LastSeen time.Time
}
