// Package app инициализирует все компоненты приложения.
// app.go собирает приложение: выбирает хранилище, создаёт репозитории, сервисы,
// планировщик и собирает всё в один объект Bot.
package app

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/topup-bot/internal/bot"
	"serotonyl.ru/topup-bot/internal/config"
	"serotonyl.ru/topup-bot/internal/db/postgres"
	"serotonyl.ru/topup-bot/internal/features/accounting"
	"serotonyl.ru/topup-bot/internal/features/admin"
	"serotonyl.ru/topup-bot/internal/features/bans"
	"serotonyl.ru/topup-bot/internal/features/catalog"
	"serotonyl.ru/topup-bot/internal/features/orders"
	"serotonyl.ru/topup-bot/internal/features/promo"
	"serotonyl.ru/topup-bot/internal/features/session"
	"serotonyl.ru/topup-bot/internal/features/shop"
	"serotonyl.ru/topup-bot/internal/features/users"
	"serotonyl.ru/topup-bot/internal/i18n"
	"serotonyl.ru/topup-bot/internal/jobs"
)

// App содержит все компоненты приложения.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	Shop      *shop.Service
	DB        *pgxpool.Pool // nil при DB_DRIVER=memory
	BotAPI    *tgbotapi.BotAPI
}

// Repositories: хранилища всех фич.
type Repositories struct {
	Users      users.Repository
	Bans       bans.Repository
	Promos     promo.Repository
	Orders     orders.Repository
	Accounting accounting.Repository
	Admin      admin.Repository
}

// MemoryRepositories: всё в памяти процесса.
func MemoryRepositories() Repositories {
	usersRepo := users.NewMemoryRepository()
	return Repositories{
		Users:      usersRepo,
		Bans:       bans.NewMemoryRepository(),
		Promos:     promo.NewMemoryRepository(),
		Orders:     orders.NewMemoryRepository(),
		Accounting: accounting.NewMemoryRepository(usersRepo),
		Admin:      admin.NewMemoryRepository(),
	}
}

// PostgresRepositories: боевое хранилище.
func PostgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:      users.NewPostgresRepository(pool),
		Bans:       bans.NewPostgresRepository(pool),
		Promos:     promo.NewPostgresRepository(pool),
		Orders:     orders.NewPostgresRepository(pool),
		Accounting: accounting.NewPostgresRepository(pool),
		Admin:      admin.NewPostgresRepository(pool),
	}
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен: компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. Хранилище ===
	var (
		pool  *pgxpool.Pool
		repos Repositories
	)
	switch cfg.DBDriver {
	case config.DriverMemory:
		log.Warn("DB_DRIVER=memory: данные живут до перезапуска")
		repos = MemoryRepositories()
	default:
		var err error
		pool, err = postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
		}
		if err := postgres.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ошибка миграций: %w", err)
		}
		repos = PostgresRepositories(pool)
	}

	// === 2. Telegram Bot API ===
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	log.Infof("Авторизован как @%s", botAPI.Self.UserName)

	if cfg.BotUsername == "" {
		cfg.BotUsername = botAPI.Self.UserName
	}

	// === 3. Сервисы и планировщик ===
	messenger := bot.NewMessenger(botAPI, cfg.AdminIDs)
	shopSvc, scheduler, err := Wire(cfg, repos, messenger)
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		return nil, err
	}

	// === 4. Собираем бота ===
	b := bot.New(botAPI, cfg, shopSvc, messenger)

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		Shop:      shopSvc,
		DB:        pool,
		BotAPI:    botAPI,
	}, nil
}

// Wire собирает сервисы магазина поверх хранилищ и транспорта.
func Wire(cfg *config.Config, repos Repositories, messenger shop.Messenger) (*shop.Service, *jobs.Scheduler, error) {
	cat, err := catalog.New(cfg.PricesFile, cfg.CurrencySymbol, cfg.CustomUnitPrice)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка загрузки прайса: %w", err)
	}

	defaultLang := i18n.Normalize(cfg.DefaultLanguage)

	usersSvc := users.NewService(repos.Users, defaultLang)
	bansSvc := bans.NewService(repos.Bans)
	promoSvc := promo.NewService(repos.Promos)
	ordersSvc := orders.NewService(repos.Orders)
	accountingSvc := accounting.NewService(repos.Accounting, usersSvc, cfg.PurchaseBonusDivisor, cfg.ReferralRate)
	adminSvc := admin.NewService(repos.Admin, cfg.AdminIDs, cfg.AdminPasswordHash, admin.Deps{
		Orders:  ordersSvc,
		Bans:    bansSvc,
		Promos:  promoSvc,
		Catalog: cat,
	})

	sessions := session.NewStore()

	shopSvc := shop.NewService(shop.Config{
		BotUsername:   cfg.BotUsername,
		Timezone:      cfg.AppTimezone,
		ReminderDelay: cfg.ReminderDelay,
		ReferralRate:  cfg.ReferralRate,
	}, shop.Deps{
		Users:      usersSvc,
		Bans:       bansSvc,
		Promos:     promoSvc,
		Orders:     ordersSvc,
		Accounting: accountingSvc,
		Catalog:    cat,
		Admin:      adminSvc,
		Sessions:   sessions,
		Messenger:  messenger,
	})

	scheduler := jobs.NewScheduler(cfg.AppTimezone, sessions, cfg.SessionIdleTimeout)
	scheduler.OnReminder(shopSvc.Remind)
	shopSvc.SetReminders(scheduler)

	return shopSvc, scheduler, nil
}

// Close освобождает ресурсы.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}
