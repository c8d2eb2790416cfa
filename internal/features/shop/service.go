package shop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/topup-bot/internal/features/accounting"
	"serotonyl.ru/topup-bot/internal/features/admin"
	"serotonyl.ru/topup-bot/internal/features/bans"
	"serotonyl.ru/topup-bot/internal/features/catalog"
	"serotonyl.ru/topup-bot/internal/features/orders"
	"serotonyl.ru/topup-bot/internal/features/promo"
	"serotonyl.ru/topup-bot/internal/features/session"
	"serotonyl.ru/topup-bot/internal/features/users"
	"serotonyl.ru/topup-bot/internal/i18n"
)

// Config: настройки сценария.
type Config struct {
	BotUsername   string          // Для реферальной ссылки
	Timezone      string          // Для дат в истории
	ReminderDelay time.Duration   // Через сколько напомнить о заказе
	ReferralRate  decimal.Decimal // Только для текста реферальной ссылки
}

// Deps: сервисы, с которыми работает сценарий.
type Deps struct {
	Users      *users.Service
	Bans       *bans.Service
	Promos     *promo.Service
	Orders     *orders.Service
	Accounting *accounting.Service
	Catalog    *catalog.Catalog
	Admin      *admin.Service
	Sessions   *session.Store
	Messenger  Messenger
	Reminders  ReminderScheduler
}

// Service: диспетчер событий магазина.
type Service struct {
	cfg Config
	Deps
}

// NewService создаёт диспетчер.
func NewService(cfg Config, deps Deps) *Service {
	return &Service{cfg: cfg, Deps: deps}
}

// SetReminders подключает планировщик после создания сервиса:
// планировщику самому нужен Service.Remind.
func (s *Service) SetReminders(r ReminderScheduler) {
	s.Reminders = r
}

// request: контекст обработки одного события.
type request struct {
	user *users.User
	lang string
}

// Handle обрабатывает событие: регистрирует пользователя, проверяет
// блокировку или права оператора, затем передаёт событие обработчику.
// События одного пользователя выполняются строго по очереди.
//
// Ошибка хранилища логируется вызывающим; пользователь получает
// общее сообщение о сбое.
func (s *Service) Handle(ctx context.Context, ev Event) error {
	from := ev.From()

	unlock := s.Sessions.Lock(from.ID)
	defer unlock()

	u, err := s.Users.EnsureWithLanguage(ctx, from.ID, from.Username, from.LanguageCode)
	if err != nil {
		return s.fail(ctx, from.ID, i18n.Fallback, err)
	}
	req := &request{user: u, lang: i18n.Normalize(u.Language)}

	if s.operatorChannel(ev) {
		if !s.Admin.IsOperator(from.ID) {
			return s.reply(ctx, req, i18n.Forbidden, nil)
		}
	} else if !s.Admin.IsOperator(from.ID) {
		banned, err := s.Bans.IsBanned(ctx, from.ID)
		if err != nil {
			return s.fail(ctx, from.ID, req.lang, err)
		}
		if banned {
			return s.reply(ctx, req, i18n.Banned, nil)
		}
	}

	switch e := ev.(type) {
	case Command:
		err = s.handleCommand(ctx, req, e)
	case Selection:
		err = s.handleSelection(ctx, req, e)
	case Text:
		err = s.handleText(ctx, req, e)
	case MediaProof:
		err = s.handleMedia(ctx, req, e)
	default:
		err = fmt.Errorf("неизвестное событие %T", ev)
	}
	if err != nil {
		return s.fail(ctx, from.ID, req.lang, err)
	}
	return nil
}

// operatorChannel: событие адресовано админ-меню.
func (s *Service) operatorChannel(ev Event) bool {
	switch e := ev.(type) {
	case Command:
		return e.Name == CmdAdmin || e.Name == CmdAddPromo
	case Selection:
		return isAdminToken(e.Token)
	}
	return false
}

// Remind срабатывает по таймеру: если у пользователя остался pending-заказ,
// напоминает о нём. Берёт ту же блокировку пользователя, что и Handle.
func (s *Service) Remind(ctx context.Context, userID int64) error {
	unlock := s.Sessions.Lock(userID)
	defer unlock()

	o, err := s.Orders.LatestPending(ctx, userID)
	if err != nil {
		return err
	}
	if o == nil {
		log.WithField("user_id", userID).Debug("Напоминание не нужно: нет активного заказа")
		return nil
	}
	u, err := s.Users.Get(ctx, userID)
	if err != nil {
		return err
	}
	req := &request{user: u, lang: i18n.Normalize(u.Language)}
	return s.reply(ctx, req, i18n.Reminder, map[string]string{"package": o.Package},
		Option{Token: TokenEnterID}, Option{Token: TokenPay})
}

func (s *Service) reply(ctx context.Context, req *request, key i18n.Key, params map[string]string, opts ...Option) error {
	return s.Messenger.Reply(ctx, Reply{
		UserID:  req.user.UserID,
		Lang:    req.lang,
		Key:     key,
		Params:  params,
		Options: opts,
	})
}

// replyOrLog: ответ после того, как заказ уже записан. Ошибка доставки
// только логируется, состояние заказа от неё не зависит.
func (s *Service) replyOrLog(ctx context.Context, req *request, key i18n.Key, params map[string]string, opts ...Option) {
	if err := s.reply(ctx, req, key, params, opts...); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"user_id": req.user.UserID,
			"reply":   key,
		}).Warn("Не удалось отправить ответ пользователю")
	}
}

func (s *Service) notify(ctx context.Context, key i18n.Key, params map[string]string) {
	s.forward(ctx, Notice{Key: key, Params: params})
}

// forward: уведомление операторам. Недоступный оператор не ломает событие.
func (s *Service) forward(ctx context.Context, n Notice) {
	if err := s.Messenger.NotifyOperators(ctx, n); err != nil {
		log.WithError(err).WithField("notice", n.Key).Error("Не удалось уведомить операторов")
	}
}

// fail отвечает общим сообщением о сбое и возвращает исходную ошибку.
func (s *Service) fail(ctx context.Context, userID int64, lang string, err error) error {
	if rerr := s.Messenger.Reply(ctx, Reply{UserID: userID, Lang: lang, Key: i18n.Failure}); rerr != nil {
		err = errors.Join(err, rerr)
	}
	return err
}
