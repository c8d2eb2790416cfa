// Package users управляет покупателями: регистрацией, языком, реферальными связями.
// models.go описывает структуры данных для работы с таблицей users.
package users

import "time"

// User представляет покупателя в базе данных.
// Запись создаётся при первом обращении к боту и никогда не удаляется.
type User struct {
	UserID       int64     `db:"user_id"`       // Telegram user ID (уникальный)
	Username     string    `db:"username"`      // @username (может быть пустым)
	Language     string    `db:"language"`      // Язык интерфейса: ru / en
	Bonuses      int64     `db:"bonuses"`       // Бонусный баланс (не отрицательный)
	ReferralCode *string   `db:"referral_code"` // Код для ссылки, создаётся лениво
	ReferredBy   *int64    `db:"referred_by"`   // Кто пригласил (ставится один раз)
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// DisplayName возвращает @username или заглушку, если ника нет.
func (u *User) DisplayName() string {
	if u == nil || u.Username == "" {
		return "не указан"
	}
	return "@" + u.Username
}

// ReferralPrefix начинает аргумент /start реферальной ссылки (ref<user_id>).
const ReferralPrefix = "ref"
