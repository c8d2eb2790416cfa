// Package bot содержит транспорт Telegram: приём апдейтов (polling или
// webhook), фильтрацию, rate-limiting и доставку ответов магазина.
package bot

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/topup-bot/internal/bot/filters"
	"serotonyl.ru/topup-bot/internal/bot/middleware"
	"serotonyl.ru/topup-bot/internal/config"
	"serotonyl.ru/topup-bot/internal/features/shop"
)

// ShutdownTimeout: сколько ждём HTTP-сервер при остановке.
const ShutdownTimeout = 10 * time.Second

// Handler: обработчик событий магазина.
type Handler interface {
	Handle(ctx context.Context, ev shop.Event) error
}

// Bot: главная структура транспорта.
type Bot struct {
	api *tgbotapi.BotAPI
	cfg *config.Config

	shop        Handler
	messenger   *Messenger
	chatFilter  *filters.ChatFilter
	rateLimiter *middleware.RateLimiter
	dispatcher  *Dispatcher
}

// New создаёт бота.
func New(api *tgbotapi.BotAPI, cfg *config.Config, handler Handler, messenger *Messenger) *Bot {
	b := &Bot{
		api:         api,
		cfg:         cfg,
		shop:        handler,
		messenger:   messenger,
		chatFilter:  filters.NewChatFilter(),
		rateLimiter: middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
	}
	b.dispatcher = NewDispatcher(cfg.BotMaxInflight, b.handleUpdate)
	return b
}

// Run принимает апдейты до отмены ctx, затем дожидается обработки
// уже принятых.
func (b *Bot) Run(ctx context.Context) error {
	b.dispatcher.Start(ctx)
	defer func() {
		b.dispatcher.Stop()
		b.rateLimiter.Close()
		log.Info("Бот остановлен")
	}()

	log.WithFields(log.Fields{
		"mode":         b.cfg.BotMode,
		"max_inflight": b.cfg.BotMaxInflight,
		"username":     b.api.Self.UserName,
	}).Info("Бот запущен и ожидает сообщения...")

	if b.cfg.BotMode == config.ModeWebhook {
		if err := b.registerWebhook(); err != nil {
			return err
		}
		// Апдейты приходят через WebhookServer
		<-ctx.Done()
		return nil
	}
	b.poll(ctx)
	return nil
}

// poll: long polling.
func (b *Bot) poll(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotUpdateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			log.Info("Бот останавливается (ctx done)...")
			b.api.StopReceivingUpdates()
			return

		case update, ok := <-updates:
			if !ok {
				log.Info("Канал updates закрыт, бот остановлен")
				return
			}
			b.dispatcher.Dispatch(ctx, update)
		}
	}
}

// registerWebhook сообщает Telegram адрес и секрет webhook.
// NewWebhook в tgbotapi не знает secret_token, поэтому запрос собирается вручную.
func (b *Bot) registerWebhook() error {
	wh, err := tgbotapi.NewWebhook(b.cfg.WebhookURL)
	if err != nil {
		return fmt.Errorf("некорректный WEBHOOK_URL: %w", err)
	}
	params := tgbotapi.Params{"url": wh.URL.String()}
	params.AddNonEmpty("secret_token", b.cfg.WebhookSecret)
	if _, err := b.api.MakeRequest("setWebhook", params); err != nil {
		return fmt.Errorf("ошибка регистрации webhook: %w", err)
	}
	log.WithField("url", wh.URL.String()).Info("Webhook зарегистрирован")
	return nil
}

// WebhookServer: HTTP-сервер webhook-режима. Запуском и остановкой
// управляет вызывающий, апдейты уходят в диспетчер бота.
func (b *Bot) WebhookServer() *http.Server {
	return &http.Server{
		Addr:              b.cfg.WebhookListen,
		Handler:           NewRouter(b.cfg.WebhookPath, b.cfg.WebhookSecret, b.api, b.dispatcher.Dispatch),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// handleUpdate обрабатывает одно обновление от Telegram.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer middleware.RecoverFromPanic()

	if cq := update.CallbackQuery; cq != nil {
		middleware.LogCallback(cq)
		b.messenger.AnswerCallback(cq.ID)
	} else {
		middleware.LogMessage(update.Message)
	}

	chat, from := origin(update)
	if !b.chatFilter.CheckAccess(chat, from) {
		return
	}
	if !b.rateLimiter.Allow(from.ID) {
		log.WithField("user_id", from.ID).Debug("rate limited")
		return
	}

	ev, ok := toEvent(update)
	if !ok {
		return
	}
	if err := b.shop.Handle(ctx, ev); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"user_id": from.ID,
			"event":   fmt.Sprintf("%T", ev),
		}).Error("Ошибка обработки события")
	}
}
