package shop

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/topup-bot/internal/common"
	"serotonyl.ru/topup-bot/internal/features/accounting"
	"serotonyl.ru/topup-bot/internal/features/session"
	"serotonyl.ru/topup-bot/internal/i18n"
)

func (s *Service) handleCommand(ctx context.Context, req *request, c Command) error {
	switch c.Name {
	case CmdStart:
		return s.cmdStart(ctx, req, c.Args)
	case CmdBuy, CmdBuyUC:
		return s.cmdBuy(ctx, req)
	case CmdPromo:
		return s.cmdPromo(ctx, req, c.Args)
	case CmdHistory:
		return s.cmdHistory(ctx, req)
	case CmdBonuses:
		return s.cmdBonuses(ctx, req)
	case CmdCustom:
		s.Sessions.Expect(req.user.UserID, session.AwaitingCustomAmount)
		return s.reply(ctx, req, i18n.CustomPrompt, nil)
	case CmdReferral:
		return s.cmdReferral(ctx, req)
	case CmdLanguage:
		return s.cmdLanguage(ctx, req, c.Args)
	case CmdAdmin:
		return s.cmdAdmin(ctx, req)
	case CmdAddPromo:
		return s.cmdAddPromo(ctx, req, c.Args)
	default:
		return s.reply(ctx, req, i18n.FAQFallback, nil)
	}
}

// cmdStart: /start [ref<id>]. Пригласивший записывается только один раз.
func (s *Service) cmdStart(ctx context.Context, req *request, args []string) error {
	if len(args) > 0 {
		if _, err := s.Users.LinkReferrer(ctx, req.user.UserID, args[0]); err != nil {
			return err
		}
	}
	return s.reply(ctx, req, i18n.Welcome, nil)
}

func (s *Service) cmdBuy(ctx context.Context, req *request) error {
	pkgs := s.Catalog.Packages()
	opts := make([]Option, 0, len(pkgs))
	for _, p := range pkgs {
		opts = append(opts, Option{
			Token: p.Token(),
			Label: fmt.Sprintf("%s UC: %s", p.ID, s.Catalog.Format(p.Price)),
		})
	}
	return s.reply(ctx, req, i18n.ChoosePackage, nil, opts...)
}

// cmdPromo: без аргумента ждём код следующим сообщением, с аргументом применяем сразу.
func (s *Service) cmdPromo(ctx context.Context, req *request, args []string) error {
	if len(args) > 0 {
		return s.applyPromo(ctx, req, args[0])
	}
	s.Sessions.Expect(req.user.UserID, session.AwaitingPromoCode)
	return s.reply(ctx, req, i18n.PromoPrompt, nil)
}

func (s *Service) cmdHistory(ctx context.Context, req *request) error {
	list, err := s.Orders.ListByUser(ctx, req.user.UserID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return s.reply(ctx, req, i18n.HistoryEmpty, nil)
	}

	var sb strings.Builder
	sb.WriteString(i18n.Text(req.lang, i18n.HistoryHeader, nil))
	for _, o := range list {
		sb.WriteString("\n")
		sb.WriteString(i18n.Text(req.lang, i18n.HistoryLine, map[string]string{
			"date":    common.FormatDateTime(o.CreatedAt, s.cfg.Timezone),
			"package": o.Package,
			"price":   s.Catalog.Format(o.Price),
			"status":  string(o.Status),
		}))
	}
	return s.replyText(ctx, req, i18n.HistoryHeader, sb.String())
}

// bonusJournalSize: сколько последних начислений показывает /bonuses.
const bonusJournalSize = 5

func (s *Service) cmdBonuses(ctx context.Context, req *request) error {
	uid := req.user.UserID
	balance, err := s.Accounting.Balance(ctx, uid)
	if err != nil {
		return err
	}
	journal, err := s.Accounting.History(ctx, uid, bonusJournalSize)
	if err != nil {
		return err
	}

	params := map[string]string{"bonuses": fmt.Sprint(balance)}
	if len(journal) == 0 {
		return s.reply(ctx, req, i18n.Bonuses, params)
	}

	var sb strings.Builder
	sb.WriteString(i18n.Text(req.lang, i18n.Bonuses, params))
	sb.WriteString("\n\n")
	sb.WriteString(i18n.Text(req.lang, i18n.BonusesJournal, nil))
	for _, t := range journal {
		key := i18n.BonusLinePurchase
		if t.Kind == accounting.KindReferralCommission {
			key = i18n.BonusLineReferral
		}
		sb.WriteString("\n")
		sb.WriteString(i18n.Text(req.lang, key, map[string]string{
			"date":   common.FormatDateTime(t.CreatedAt, s.cfg.Timezone),
			"amount": fmt.Sprint(t.Amount),
		}))
	}
	return s.replyText(ctx, req, i18n.Bonuses, sb.String())
}

func (s *Service) cmdReferral(ctx context.Context, req *request) error {
	code, err := s.Users.ReferralCode(ctx, req.user.UserID)
	if err != nil {
		return err
	}
	return s.reply(ctx, req, i18n.ReferralLink, map[string]string{
		"link":    fmt.Sprintf("https://t.me/%s?start=%s", s.cfg.BotUsername, code),
		"percent": common.FormatPercent(s.cfg.ReferralRate),
	})
}

// cmdLanguage: /language en меняет язык сразу, без аргумента показывает выбор.
func (s *Service) cmdLanguage(ctx context.Context, req *request, args []string) error {
	if len(args) > 0 {
		if lang := i18n.Match(args[0]); lang != "" {
			return s.setLanguage(ctx, req, lang)
		}
	}
	opts := make([]Option, 0, len(i18n.Supported()))
	for _, lang := range i18n.Supported() {
		opts = append(opts, Option{Token: TokenLangPrefix + lang})
	}
	return s.reply(ctx, req, i18n.ChooseLanguage, nil, opts...)
}

func (s *Service) setLanguage(ctx context.Context, req *request, lang string) error {
	if err := s.Users.SetLanguage(ctx, req.user.UserID, lang); err != nil {
		return err
	}
	req.lang = lang
	log.WithFields(log.Fields{"user_id": req.user.UserID, "language": lang}).Debug("Язык изменён")
	return s.reply(ctx, req, i18n.LanguageSet, nil)
}

// replyText отправляет собранный список. key остаётся для логов и тестов.
func (s *Service) replyText(ctx context.Context, req *request, key i18n.Key, text string) error {
	return s.Messenger.Reply(ctx, Reply{
		UserID: req.user.UserID,
		Lang:   req.lang,
		Key:    key,
		Text:   text,
	})
}
