package shop

import (
	"strings"

	"serotonyl.ru/topup-bot/internal/i18n"
)

// faqKeywords: фразы, на которые отвечает справочник. Проверяются по вхождению
// в текст в нижнем регистре, на любом из языков.
var faqKeywords = []struct {
	phrases []string
	answer  i18n.Key
}{
	{[]string{"как долго", "сколько ждать", "how long", "when will"}, i18n.FAQDelivery},
	{[]string{"где мой заказ", "статус", "where is my order", "order status"}, i18n.FAQOrders},
	{[]string{"как оплатить", "оплата", "how to pay", "payment"}, i18n.FAQPayment},
	{[]string{"цена", "сколько стоит", "прайс", "price", "cost"}, i18n.FAQPrice},
}

// faqAnswer подбирает ответ на свободный текст вне сценария.
func faqAnswer(text string) i18n.Key {
	text = strings.ToLower(text)
	for _, f := range faqKeywords {
		for _, p := range f.phrases {
			if strings.Contains(text, p) {
				return f.answer
			}
		}
	}
	return i18n.FAQFallback
}
