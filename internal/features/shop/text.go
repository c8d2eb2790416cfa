package shop

import (
	"context"
	"strconv"
	"strings"

	"serotonyl.ru/topup-bot/internal/common"
	"serotonyl.ru/topup-bot/internal/features/session"
	"serotonyl.ru/topup-bot/internal/i18n"
)

// handleText отдаёт текст обработчику текущего ожидания.
// Ожидание одно на сессию, поэтому сообщение не может достаться двум обработчикам.
func (s *Service) handleText(ctx context.Context, req *request, t Text) error {
	uid := req.user.UserID

	// ID игрока проверяется как есть, без обрезки пробелов.
	// При ошибке ожидание остаётся.
	if s.Sessions.Get(uid).Awaiting == session.AwaitingPlayerID {
		return s.submitPlayerID(ctx, req, t.Content)
	}

	content := strings.TrimSpace(t.Content)

	switch s.Sessions.Consume(uid) {
	case session.AwaitingPromoCode:
		return s.applyPromo(ctx, req, content)
	case session.AwaitingCustomAmount:
		return s.customQuote(ctx, req, content)
	case session.AwaitingBanTarget:
		return s.submitBanTarget(ctx, req, content)
	case session.AwaitingAdminPassword:
		return s.submitPassword(ctx, req, content)
	default:
		return s.reply(ctx, req, faqAnswer(content), nil)
	}
}

func (s *Service) submitPlayerID(ctx context.Context, req *request, playerID string) error {
	uid := req.user.UserID
	if !common.IsValidPlayerID(playerID) {
		return s.reply(ctx, req, i18n.InvalidPlayerID, nil)
	}

	s.Sessions.Update(uid, func(sess *session.Session) {
		sess.PlayerID = playerID
		sess.Awaiting = session.Idle
	})

	// Нет pending-заказа: ID остаётся только в сессии
	attached, err := s.Orders.AttachPlayerID(ctx, uid, playerID)
	if err != nil {
		return err
	}

	if attached {
		s.notify(ctx, i18n.NoticePlayerID, map[string]string{
			"username":  req.user.DisplayName(),
			"user_id":   formatInt(uid),
			"player_id": playerID,
		})
	}
	s.replyOrLog(ctx, req, i18n.PlayerIDSaved, map[string]string{"player_id": playerID},
		Option{Token: TokenPay})
	return nil
}

// applyPromo запоминает скидку в сессии. Реестр промокодов не меняется.
func (s *Service) applyPromo(ctx context.Context, req *request, code string) error {
	p, err := s.Promos.Lookup(ctx, code)
	if err != nil {
		if common.IsValidation(err) {
			return s.reply(ctx, req, i18n.PromoInvalid, nil)
		}
		return err
	}

	s.Sessions.Update(req.user.UserID, func(sess *session.Session) {
		sess.Discount = p.Discount
	})
	return s.reply(ctx, req, i18n.PromoApplied, map[string]string{
		"percent": common.FormatPercent(p.Discount),
	})
}

func (s *Service) customQuote(ctx context.Context, req *request, content string) error {
	units, err := common.ParsePositiveInt(content)
	if err != nil {
		return s.reply(ctx, req, i18n.InvalidAmount, nil)
	}
	return s.reply(ctx, req, i18n.CustomQuote, map[string]string{
		"units": formatInt(units),
		"price": s.Catalog.Format(s.Catalog.Quote(units)),
	})
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
