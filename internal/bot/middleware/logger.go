// Package middleware содержит промежуточные обработчики для логирования,
// восстановления после паники и rate-limiting.
package middleware

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// maxLoggedText: сколько символов текста попадает в лог.
const maxLoggedText = 50

// LogMessage логирует входящее сообщение.
// Записывает: user_id, chat_id, username, текст (первые 50 символов).
func LogMessage(message *tgbotapi.Message) {
	if message == nil || message.From == nil || message.Chat == nil {
		return
	}

	text := message.Text
	if text == "" {
		text = message.Caption
	}

	log.WithFields(log.Fields{
		"user_id":  message.From.ID,
		"chat_id":  message.Chat.ID,
		"username": message.From.UserName,
		"text":     Truncate(text, maxLoggedText),
		"photo":    len(message.Photo) > 0,
	}).Debug("Входящее сообщение")
}

// LogCallback логирует нажатие inline-кнопки.
func LogCallback(cq *tgbotapi.CallbackQuery) {
	if cq == nil || cq.From == nil {
		return
	}
	log.WithFields(log.Fields{
		"user_id":  cq.From.ID,
		"username": cq.From.UserName,
		"data":     cq.Data,
	}).Debug("Нажата кнопка")
}

// Truncate обрезает строку до n символов (не байт) и добавляет "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
