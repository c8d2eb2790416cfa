package shop

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/topup-bot/internal/common"
	"serotonyl.ru/topup-bot/internal/features/admin"
	"serotonyl.ru/topup-bot/internal/features/catalog"
	"serotonyl.ru/topup-bot/internal/features/promo"
	"serotonyl.ru/topup-bot/internal/features/session"
	"serotonyl.ru/topup-bot/internal/i18n"
)

func isAdminToken(token string) bool {
	for _, t := range admin.MenuTokens(true) {
		if t == token {
			return true
		}
	}
	return false
}

func (s *Service) handleSelection(ctx context.Context, req *request, sel Selection) error {
	switch {
	case sel.Token == TokenEnterID:
		s.Sessions.Expect(req.user.UserID, session.AwaitingPlayerID)
		return s.reply(ctx, req, i18n.EnterPlayerID, nil)
	case sel.Token == TokenPay:
		return s.pay(ctx, req)
	case strings.HasPrefix(sel.Token, TokenLangPrefix):
		lang := i18n.Match(strings.TrimPrefix(sel.Token, TokenLangPrefix))
		if lang == "" {
			return nil
		}
		return s.setLanguage(ctx, req, lang)
	case isAdminToken(sel.Token):
		return s.handleAdminToken(ctx, req, sel.Token)
	}

	if pkg, ok := s.Catalog.PackageByToken(sel.Token); ok {
		return s.selectPackage(ctx, req, pkg)
	}

	log.WithFields(log.Fields{
		"user_id": req.user.UserID,
		"token":   sel.Token,
	}).Debug("Неизвестная кнопка")
	return nil
}

// selectPackage: цена со скидкой из сессии, новый pending-заказ, бонус
// за покупку, уведомление операторам и напоминание, затем ответ
// пользователю. Сессия запоминает
// пакет, ID игрока сбрасывается, ожидание ввода снимается.
func (s *Service) selectPackage(ctx context.Context, req *request, pkg catalog.Package) error {
	uid := req.user.UserID
	sess := s.Sessions.Get(uid)

	quoted := promo.Apply(pkg.Price, sess.Discount)

	order, err := s.Orders.Create(ctx, uid, pkg.ID, quoted)
	if err != nil {
		return err
	}
	if _, err := s.Accounting.CreditPurchaseBonus(ctx, uid, order.ID, quoted); err != nil {
		return err
	}

	s.Sessions.Update(uid, func(sess *session.Session) {
		sess.Package = pkg.ID
		sess.PlayerID = ""
		sess.Awaiting = session.Idle
	})

	price := s.Catalog.Format(quoted)
	discount := ""
	if sess.Discount.IsPositive() {
		discount = i18n.Text(req.lang, i18n.OrderDiscountLine, map[string]string{
			"percent": common.FormatPercent(sess.Discount),
		})
	}

	s.notify(ctx, i18n.NoticeNewOrder, map[string]string{
		"order_id": formatInt(order.ID),
		"username": req.user.DisplayName(),
		"user_id":  formatInt(uid),
		"package":  pkg.ID,
		"price":    price,
	})

	if s.Reminders != nil {
		s.Reminders.ScheduleReminder(uid, s.cfg.ReminderDelay)
	}

	s.replyOrLog(ctx, req, i18n.OrderDetails, map[string]string{
		"order_id": formatInt(order.ID),
		"username": req.user.DisplayName(),
		"package":  pkg.ID,
		"price":    price,
		"discount": discount,
	}, Option{Token: TokenEnterID}, Option{Token: TokenPay})
	return nil
}

// pay: шаг подтверждения оплаты. Комиссия пригласившему считается
// от прайсовой цены выбранного пакета.
func (s *Service) pay(ctx context.Context, req *request) error {
	uid := req.user.UserID
	sess := s.Sessions.Get(uid)
	if sess.Package == "" {
		return s.reply(ctx, req, i18n.NoPendingOrder, nil)
	}

	playerID := sess.PlayerID
	if playerID == "" {
		playerID = i18n.Text(req.lang, i18n.NotSpecified, nil)
	}

	if price, ok := s.Catalog.Price(sess.Package); ok {
		if _, _, err := s.Accounting.CreditReferralCommission(ctx, uid, price); err != nil {
			return err
		}
	}

	s.notify(ctx, i18n.NoticePayment, map[string]string{
		"username":  req.user.DisplayName(),
		"user_id":   formatInt(uid),
		"package":   sess.Package,
		"player_id": playerID,
	})

	s.replyOrLog(ctx, req, i18n.PaymentInfo, map[string]string{
		"package":   sess.Package,
		"player_id": playerID,
	})
	return nil
}
