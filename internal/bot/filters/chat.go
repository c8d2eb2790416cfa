// Package filters решает, какие апдейты вообще доходят до магазина.
package filters

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// ChatFilter пропускает только личные чаты с живыми пользователями.
// Магазин работает в личке: заказы, ID игрока и скриншоты не должны
// попадать в группы.
type ChatFilter struct{}

func NewChatFilter() *ChatFilter {
	return &ChatFilter{}
}

// CheckAccess проверяет чат и отправителя апдейта.
func (f *ChatFilter) CheckAccess(chat *tgbotapi.Chat, from *tgbotapi.User) bool {
	if chat == nil {
		log.WithField("component", "ChatFilter").Warn("nil chat")
		return false
	}
	if from == nil {
		log.WithFields(log.Fields{
			"component": "ChatFilter",
			"chat_id":   chat.ID,
			"chat_type": chat.Type,
		}).Warn("nil from (service/channel message?)")
		return false
	}

	logger := log.WithFields(log.Fields{
		"component": "ChatFilter",
		"chat_id":   chat.ID,
		"chat_type": chat.Type,
		"user_id":   from.ID,
	})

	if from.IsBot {
		logger.Debug("deny: sender is a bot")
		return false
	}
	if !chat.IsPrivate() {
		logger.Debug("deny: not a private chat")
		return false
	}
	return true
}
