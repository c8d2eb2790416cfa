// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входят: форматирование денег и дат, валидация ввода, работа с временем.
package common

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// playerIDPattern: ID игрока, от 8 до 12 цифр и ничего больше.
var playerIDPattern = regexp.MustCompile(`^\d{8,12}$`)

// IsValidPlayerID проверяет формат ID игрока.
//
// Примеры:
//
//	IsValidPlayerID("12345678")    → true
//	IsValidPlayerID("1234567")     → false (7 цифр)
//	IsValidPlayerID("12345678a")   → false
func IsValidPlayerID(id string) bool {
	return playerIDPattern.MatchString(id)
}

// ParsePositiveInt разбирает положительное целое число из пользовательского ввода.
func ParsePositiveInt(text string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil || n <= 0 {
		return 0, ErrInvalidAmount
	}
	return n, nil
}

// RoundMoney округляет сумму до копеек (half-up для положительных сумм).
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// FormatMoney форматирует сумму с символом валюты.
// Пример: FormatMoney(90.06, "₽") → "90.06 ₽"
func FormatMoney(amount decimal.Decimal, currency string) string {
	s := RoundMoney(amount).StringFixed(2)
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// FormatPercent переводит долю в проценты для показа: 0.1 → "10".
func FormatPercent(fraction decimal.Decimal) string {
	return fraction.Mul(decimal.NewFromInt(100)).Round(2).String()
}

// loadLocation загружает часовой пояс, при ошибке: Москва (UTC+3).
func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		// Если не удалось загрузить: используем UTC+3 вручную
		return time.FixedZone("MSK", 3*60*60)
	}
	return loc
}

// FormatDateTime форматирует время в формат "2006-01-02 15:04:05" в указанном поясе.
// Используется в истории заказов.
func FormatDateTime(t time.Time, tz string) string {
	return t.In(loadLocation(tz)).Format("2006-01-02 15:04:05")
}
