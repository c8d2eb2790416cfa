// Package common: errors.go определяет ошибки, которые используются во всех модулях бота.
// Ошибки сгруппированы по типу: обработчик по errors.Is решает,
// что показать пользователю, а что только залогировать.
package common

import "errors"

// Ошибки валидации: пользователь получает подсказку, состояние диалога
// остаётся или сбрасывается по правилам автомата.
var (
	// ErrInvalidAmount: количество не является положительным целым числом
	ErrInvalidAmount = errors.New("количество должно быть положительным числом")
	// ErrPromoNotFound: промокода нет в реестре
	ErrPromoNotFound = errors.New("промокод не найден")
	// ErrInvalidDiscount: скидка вне диапазона [0, 1) или точнее 4 знаков
	ErrInvalidDiscount = errors.New("скидка должна быть в диапазоне [0, 1), не больше 4 знаков")
	// ErrInvalidPromoCode: пустой код или длиннее 64 символов
	ErrInvalidPromoCode = errors.New("некорректный промокод")
	// ErrInvalidBanTarget: ID для блокировки не является числом
	ErrInvalidBanTarget = errors.New("некорректный ID пользователя")
)

// Ошибки «не найдено»: поглощаются молча.
var (
	// ErrNotFound: запись не найдена
	ErrNotFound = errors.New("запись не найдена")
)

// ErrStoreUnavailable: хранилище недоступно. Запрос падает, повтора нет.
var ErrStoreUnavailable = errors.New("хранилище недоступно")

// Ошибки доступа к админке
var (
	// ErrForbidden: действие доступно только оператору
	ErrForbidden = errors.New("доступ запрещён")
	// ErrWrongPassword: неверный пароль
	ErrWrongPassword = errors.New("неверный пароль")
	// ErrTooManyAttempts: слишком много неудачных попыток входа
	ErrTooManyAttempts = errors.New("слишком много попыток, подождите 1 час")
)

// IsValidation сообщает, относится ли ошибка к ошибкам валидации.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrPromoNotFound) ||
		errors.Is(err, ErrInvalidDiscount) ||
		errors.Is(err, ErrInvalidPromoCode) ||
		errors.Is(err, ErrInvalidBanTarget)
}
