// Package main: точка входа бота.
// Загружает конфигурацию, инициализирует приложение и запускает.
// Поддерживает graceful shutdown по SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"serotonyl.ru/topup-bot/internal/app"
	"serotonyl.ru/topup-bot/internal/bot"
	"serotonyl.ru/topup-bot/internal/config"
)

func main() {
	// Настраиваем логирование
	setupLogging()

	log.Info("=== Бот запускается ===")

	// Загружаем конфигурацию из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Не удалось загрузить конфигурацию")
	}

	// Устанавливаем уровень логирования из конфига
	level, err := log.ParseLevel(cfg.AppLogLevel)
	if err == nil {
		log.SetLevel(level)
	}

	// Контекст отменяется по Ctrl+C или docker stop
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализируем приложение (БД, бот, сервисы)
	application, err := app.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Не удалось инициализировать приложение")
	}
	defer application.Close()

	g, gctx := errgroup.WithContext(ctx)

	// Приём апдейтов: long polling или регистрация webhook
	g.Go(func() error {
		return application.Bot.Run(gctx)
	})

	// Планировщик задач (cron): напоминания и чистка сессий
	g.Go(func() error {
		if err := application.Scheduler.Start(gctx); err != nil {
			return fmt.Errorf("планировщик: %w", err)
		}
		<-gctx.Done()
		application.Scheduler.Stop()
		return nil
	})

	if cfg.BotMode == config.ModeWebhook {
		srv := application.Bot.WebhookServer()

		// HTTP-сервер webhook
		g.Go(func() error {
			log.WithFields(log.Fields{
				"listen": cfg.WebhookListen,
				"path":   cfg.WebhookPath,
			}).Info("Webhook-сервер запущен")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("webhook-сервер: %w", err)
			}
			return nil
		})

		// Остановка сервера по сигналу или ошибке соседней горутины
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), bot.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("остановка webhook-сервера: %w", err)
			}
			log.Info("Webhook-сервер остановлен")
			return nil
		})
	}

	log.Info("=== Бот готов к работе ===")

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Бот завершился с ошибкой")
	}

	log.Info("=== Бот остановлен ===")
}

// setupLogging настраивает формат логов.
func setupLogging() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.DebugLevel)
}
