package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"serotonyl.ru/topup-bot/internal/features/shop"
)

// toEvent переводит апдейт Telegram в событие магазина.
// false: апдейт магазину не интересен (стикер, правка сообщения и т.п.).
func toEvent(upd tgbotapi.Update) (shop.Event, bool) {
	if cq := upd.CallbackQuery; cq != nil {
		if cq.From == nil || cq.Data == "" {
			return nil, false
		}
		return shop.Selection{Sender: toSender(cq.From), Token: cq.Data}, true
	}

	m := upd.Message
	if m == nil || m.From == nil {
		return nil, false
	}
	s := toSender(m.From)

	switch {
	case len(m.Photo) > 0:
		// Последний размер: самый крупный
		return shop.MediaProof{
			Sender:   s,
			MediaRef: m.Photo[len(m.Photo)-1].FileID,
			Caption:  m.Caption,
		}, true
	case m.IsCommand():
		return shop.Command{
			Sender: s,
			Name:   strings.ToLower(m.Command()),
			Args:   strings.Fields(m.CommandArguments()),
		}, true
	case strings.TrimSpace(m.Text) != "":
		return shop.Text{Sender: s, Content: m.Text}, true
	}
	return nil, false
}

func toSender(u *tgbotapi.User) shop.Sender {
	return shop.Sender{
		ID:           u.ID,
		Username:     u.UserName,
		LanguageCode: u.LanguageCode,
	}
}

// origin возвращает чат и автора апдейта.
func origin(upd tgbotapi.Update) (*tgbotapi.Chat, *tgbotapi.User) {
	if cq := upd.CallbackQuery; cq != nil {
		if cq.Message != nil {
			return cq.Message.Chat, cq.From
		}
		return nil, cq.From
	}
	if m := upd.Message; m != nil {
		return m.Chat, m.From
	}
	return nil, nil
}

// userKey: ключ шардирования апдейта. 0, автор неизвестен.
func userKey(upd tgbotapi.Update) int64 {
	if _, from := origin(upd); from != nil {
		return from.ID
	}
	return 0
}
