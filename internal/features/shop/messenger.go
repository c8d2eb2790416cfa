package shop

import (
	"context"
	"time"

	"serotonyl.ru/topup-bot/internal/i18n"
)

// Option: кнопка под ответом. Пустой Label, подпись берётся из i18n по токену.
type Option struct {
	Token string
	Label string
}

// Reply: ответ пользователю. Text, если задан, отправляется вместо
// шаблона Key (списки собираются построчно).
type Reply struct {
	UserID  int64
	Lang    string
	Key     i18n.Key
	Params  map[string]string
	Text    string
	Options []Option
}

// Render возвращает текст ответа.
func (r Reply) Render() string {
	if r.Text != "" {
		return r.Text
	}
	return i18n.Text(r.Lang, r.Key, r.Params)
}

// Notice: уведомление операторам. MediaRef, пересылаемое фото, если есть.
type Notice struct {
	Key      i18n.Key
	Params   map[string]string
	MediaRef string
}

// Render возвращает текст уведомления. Операторы читают по-русски.
func (n Notice) Render() string {
	return i18n.Text(i18n.Fallback, n.Key, n.Params)
}

// Messenger доставляет ответы и уведомления.
type Messenger interface {
	Reply(ctx context.Context, r Reply) error
	NotifyOperators(ctx context.Context, n Notice) error
}

// ReminderScheduler откладывает вызов Service.Remind для пользователя.
// Срабатывает не раньше чем через delay, отмена не поддерживается.
type ReminderScheduler interface {
	ScheduleReminder(userID int64, delay time.Duration)
}
