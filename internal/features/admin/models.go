// Package admin содержит операторскую часть бота: проверка оператора, вход по паролю
// и действия модерации над заказами, промокодами, блокировками и прайсом.
// models.go описывает структуры сессий и попыток входа.
package admin

import "time"

// AdminSession: активная сессия оператора после входа по паролю.
type AdminSession struct {
	ID              int64     `db:"id"`
	UserID          int64     `db:"user_id"`
	SessionToken    string    `db:"session_token"`
	AuthenticatedAt time.Time `db:"authenticated_at"`
	ExpiresAt       time.Time `db:"expires_at"`
	LastActivity    time.Time `db:"last_activity"`
	IsActive        bool      `db:"is_active"`
}

// LoginAttempt: попытка входа (для защиты от brute-force).
type LoginAttempt struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	AttemptTime time.Time `db:"attempt_time"`
	Success     bool      `db:"success"`
}

// Параметры входа
const (
	SessionTTL     = 24 * time.Hour // Сколько живёт сессия оператора
	AttemptsWindow = 1 * time.Hour  // Окно подсчёта неудачных попыток
	MaxAttempts    = 3              // Неудачных попыток до блокировки
)

// Токены кнопок админ-меню
const (
	TokenOrders = "admin_orders"
	TokenStats  = "admin_stats"
	TokenBan    = "admin_ban"
	TokenPromos = "admin_promos"
	TokenReload = "admin_reload"
	TokenLogout = "admin_logout"
)

// MenuTokens: кнопки админ-меню в порядке показа. «Выйти» есть только
// при входе по паролю.
func MenuTokens(withLogout bool) []string {
	tokens := []string{TokenOrders, TokenStats, TokenBan, TokenPromos, TokenReload}
	if withLogout {
		tokens = append(tokens, TokenLogout)
	}
	return tokens
}
