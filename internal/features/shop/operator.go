package shop

import (
	"context"
	"errors"
	"strings"

	"serotonyl.ru/topup-bot/internal/common"
	"serotonyl.ru/topup-bot/internal/features/admin"
	"serotonyl.ru/topup-bot/internal/features/session"
	"serotonyl.ru/topup-bot/internal/i18n"
)

// authorize пускает в админ-меню. Если нужен пароль, переводит диалог
// в ожидание пароля и возвращает false.
func (s *Service) authorize(ctx context.Context, req *request) (bool, error) {
	ok, err := s.Admin.Authorized(ctx, req.user.UserID)
	if errors.Is(err, common.ErrForbidden) {
		return false, s.reply(ctx, req, i18n.Forbidden, nil)
	}
	if err != nil {
		return false, err
	}
	if !ok {
		s.Sessions.Expect(req.user.UserID, session.AwaitingAdminPassword)
		return false, s.reply(ctx, req, i18n.AdminPassword, nil)
	}
	return true, nil
}

func (s *Service) cmdAdmin(ctx context.Context, req *request) error {
	ok, err := s.authorize(ctx, req)
	if !ok || err != nil {
		return err
	}
	return s.showAdminMenu(ctx, req)
}

func (s *Service) showAdminMenu(ctx context.Context, req *request) error {
	tokens := admin.MenuTokens(s.Admin.PasswordRequired())
	opts := make([]Option, 0, len(tokens))
	for _, t := range tokens {
		opts = append(opts, Option{Token: t})
	}
	return s.reply(ctx, req, i18n.AdminMenu, nil, opts...)
}

// cmdAddPromo: /addpromo КОД ДОЛЯ
func (s *Service) cmdAddPromo(ctx context.Context, req *request, args []string) error {
	ok, err := s.authorize(ctx, req)
	if !ok || err != nil {
		return err
	}
	code, discount, err := s.Admin.AddPromo(ctx, args)
	if err != nil {
		if common.IsValidation(err) {
			return s.reply(ctx, req, i18n.AdminPromoUsage, nil)
		}
		return err
	}
	return s.reply(ctx, req, i18n.AdminPromoAdded, map[string]string{
		"code":    code,
		"percent": common.FormatPercent(discount),
	})
}

func (s *Service) handleAdminToken(ctx context.Context, req *request, token string) error {
	ok, err := s.authorize(ctx, req)
	if !ok || err != nil {
		return err
	}

	switch token {
	case admin.TokenOrders:
		return s.adminOrders(ctx, req)
	case admin.TokenStats:
		return s.adminStats(ctx, req)
	case admin.TokenBan:
		s.Sessions.Expect(req.user.UserID, session.AwaitingBanTarget)
		return s.reply(ctx, req, i18n.AdminBanPrompt, nil)
	case admin.TokenPromos:
		return s.adminPromos(ctx, req)
	case admin.TokenReload:
		n, err := s.Admin.ReloadCatalog()
		if err != nil {
			return s.reply(ctx, req, i18n.AdminReloadFailed, map[string]string{"error": err.Error()})
		}
		return s.reply(ctx, req, i18n.AdminReloadOK, map[string]string{"count": formatInt(int64(n))})
	case admin.TokenLogout:
		if err := s.Admin.Logout(ctx, req.user.UserID); err != nil {
			return err
		}
		return s.reply(ctx, req, i18n.AdminLoggedOut, nil)
	}
	return nil
}

func (s *Service) adminOrders(ctx context.Context, req *request) error {
	list, err := s.Admin.Orders(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return s.reply(ctx, req, i18n.AdminOrdersEmpty, nil)
	}

	var sb strings.Builder
	sb.WriteString(i18n.Text(req.lang, i18n.AdminOrdersHeader, nil))
	for _, o := range list {
		playerID := i18n.Text(req.lang, i18n.NotSpecified, nil)
		if o.PlayerID != nil {
			playerID = *o.PlayerID
		}
		sb.WriteString("\n")
		sb.WriteString(i18n.Text(req.lang, i18n.AdminOrderLine, map[string]string{
			"order_id":  formatInt(o.ID),
			"user_id":   formatInt(o.UserID),
			"package":   o.Package,
			"price":     s.Catalog.Format(o.Price),
			"status":    string(o.Status),
			"player_id": playerID,
			"date":      common.FormatDateTime(o.CreatedAt, s.cfg.Timezone),
		}))
	}
	return s.replyText(ctx, req, i18n.AdminOrdersHeader, sb.String())
}

func (s *Service) adminStats(ctx context.Context, req *request) error {
	st, err := s.Admin.Stats(ctx)
	if err != nil {
		return err
	}
	if st.Count == 0 {
		return s.reply(ctx, req, i18n.AdminStatsEmpty, nil)
	}
	return s.reply(ctx, req, i18n.AdminStats, map[string]string{
		"count":         formatInt(st.Count),
		"revenue":       s.Catalog.Format(st.Revenue),
		"package":       st.Popular,
		"popular_count": formatInt(st.PopularCount),
		"orders_word":   common.PluralizeOrders(st.PopularCount),
	})
}

func (s *Service) adminPromos(ctx context.Context, req *request) error {
	list, err := s.Admin.Promos(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return s.reply(ctx, req, i18n.AdminPromosEmpty, nil)
	}

	var sb strings.Builder
	sb.WriteString(i18n.Text(req.lang, i18n.AdminPromosHeader, nil))
	for _, p := range list {
		sb.WriteString("\n")
		sb.WriteString(i18n.Text(req.lang, i18n.AdminPromoLine, map[string]string{
			"code":    p.Code,
			"percent": common.FormatPercent(p.Discount),
		}))
	}
	return s.replyText(ctx, req, i18n.AdminPromosHeader, sb.String())
}

// submitBanTarget: одно сообщение после «Заблокировать», при любом вводе
// ожидание уже снято.
func (s *Service) submitBanTarget(ctx context.Context, req *request, content string) error {
	if !s.Admin.IsOperator(req.user.UserID) {
		return s.reply(ctx, req, i18n.Forbidden, nil)
	}
	id, err := s.Admin.Ban(ctx, content)
	if err != nil {
		if common.IsValidation(err) {
			return s.reply(ctx, req, i18n.AdminBanInvalid, nil)
		}
		return err
	}
	return s.reply(ctx, req, i18n.AdminBanDone, map[string]string{"user_id": formatInt(id)})
}

func (s *Service) submitPassword(ctx context.Context, req *request, password string) error {
	err := s.Admin.VerifyPassword(ctx, req.user.UserID, password)
	switch {
	case err == nil:
		if err := s.reply(ctx, req, i18n.AdminAuthOK, nil); err != nil {
			return err
		}
		return s.showAdminMenu(ctx, req)
	case errors.Is(err, common.ErrWrongPassword):
		return s.reply(ctx, req, i18n.AdminAuthFailed, nil)
	case errors.Is(err, common.ErrTooManyAttempts):
		return s.reply(ctx, req, i18n.AdminAuthLocked, nil)
	case errors.Is(err, common.ErrForbidden):
		return s.reply(ctx, req, i18n.Forbidden, nil)
	default:
		return err
	}
}

// handleMedia пересылает скриншот оплаты операторам без разбора.
func (s *Service) handleMedia(ctx context.Context, req *request, m MediaProof) error {
	if err := s.reply(ctx, req, i18n.ScreenshotThanks, nil); err != nil {
		return err
	}
	s.forward(ctx, Notice{
		Key: i18n.NoticeScreenshot,
		Params: map[string]string{
			"username": req.user.DisplayName(),
			"user_id":  formatInt(req.user.UserID),
		},
		MediaRef: m.MediaRef,
	})
	return nil
}
