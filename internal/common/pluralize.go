package common

// PluralizeOrders возвращает правильную форму слова «заказ» для числа n.
//
// Правила русского языка:
//   - n%10==1 И n%100!=11 → "заказ" (1, 21, 101)
//   - n%10 в [2,3,4] И n%100 НЕ в [12,13,14] → "заказа" (2, 3, 22)
//   - Остальные случаи → "заказов" (0, 5-20, 100)
func PluralizeOrders(n int64) string {
	if n < 0 {
		n = -n
	}
	lastDigit := n % 10
	lastTwoDigits := n % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return "заказ"
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "заказа"
	}
	return "заказов"
}
