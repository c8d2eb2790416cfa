package bot

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/topup-bot/internal/features/shop"
	"serotonyl.ru/topup-bot/internal/i18n"
)

// API: часть tgbotapi.BotAPI, нужная для отправки.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Messenger отправляет ответы магазина в Telegram.
type Messenger struct {
	api       API
	operators []int64
}

// NewMessenger создаёт отправителя. operators: получатели уведомлений (ADMIN_IDS).
func NewMessenger(api API, operators []int64) *Messenger {
	return &Messenger{api: api, operators: operators}
}

// Reply отправляет ответ с inline-кнопками, по одной в ряд.
func (m *Messenger) Reply(ctx context.Context, r shop.Reply) error {
	msg := tgbotapi.NewMessage(r.UserID, r.Render())
	if kb, ok := keyboard(r.Lang, r.Options); ok {
		msg.ReplyMarkup = kb
	}
	if _, err := m.api.Send(msg); err != nil {
		return fmt.Errorf("ошибка отправки ответа (user_id=%d): %w", r.UserID, err)
	}
	return nil
}

// NotifyOperators рассылает уведомление всем операторам. Скриншот уходит
// фото с подписью. Ошибка одного оператора не мешает остальным.
func (m *Messenger) NotifyOperators(ctx context.Context, n shop.Notice) error {
	text := n.Render()

	var errs []error
	for _, op := range m.operators {
		var c tgbotapi.Chattable
		if n.MediaRef != "" {
			photo := tgbotapi.NewPhoto(op, tgbotapi.FileID(n.MediaRef))
			photo.Caption = text
			c = photo
		} else {
			c = tgbotapi.NewMessage(op, text)
		}

		if _, err := m.api.Send(c); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"operator_id": op,
				"notice":      n.Key,
			}).Warn("Не удалось уведомить оператора")
			errs = append(errs, fmt.Errorf("оператор %d: %w", op, err))
		}
	}
	return errors.Join(errs...)
}

// AnswerCallback убирает «часики» на нажатой кнопке.
func (m *Messenger) AnswerCallback(id string) {
	if _, err := m.api.Request(tgbotapi.NewCallback(id, "")); err != nil {
		log.WithError(err).Debug("Не удалось ответить на callback")
	}
}

func keyboard(lang string, opts []shop.Option) (tgbotapi.InlineKeyboardMarkup, bool) {
	if len(opts) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(opts))
	for _, o := range opts {
		label := o.Label
		if label == "" {
			label = i18n.Button(lang, o.Token)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, o.Token),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}

var _ shop.Messenger = (*Messenger)(nil)
