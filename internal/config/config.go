// Package config загружает конфигурацию бота из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры;
// если рядом лежит .env: он подхватывается через godotenv.
package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// Допустимые значения DB_DRIVER и BOT_MODE.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	ModePolling = "polling"
	ModeWebhook = "webhook"
)

var webhookSecretRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,256}$`)

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- Telegram ---
	TelegramBotToken string  `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	AdminIDsRaw      string  `envconfig:"ADMIN_IDS" required:"true"`
	AdminIDs         []int64 `envconfig:"-"` // заполним вручную
	// Имя бота для реферальных ссылок. Пусто: берём из getMe.
	BotUsername string `envconfig:"BOT_USERNAME"`

	// --- Database ---
	// memory: всё в памяти процесса (для локальной отладки), postgres, боевой режим.
	DBDriver   string `envconfig:"DB_DRIVER" default:"postgres"`
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"botuser"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"topup_bot"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"Europe/Moscow"`

	// --- Bot runtime ---
	BotMode string `envconfig:"BOT_MODE" default:"polling"`
	// Сколько апдейтов обрабатываем параллельно (число воркеров-шардов).
	BotMaxInflight int `envconfig:"BOT_MAX_INFLIGHT" default:"64"`
	// Таймаут long polling (секунды)
	BotUpdateTimeoutSeconds int `envconfig:"BOT_UPDATE_TIMEOUT_SECONDS" default:"60"`

	// --- Webhook ---
	WebhookURL    string `envconfig:"WEBHOOK_URL"`
	WebhookListen string `envconfig:"WEBHOOK_LISTEN" default:"0.0.0.0:8443"`
	WebhookPath   string `envconfig:"WEBHOOK_PATH" default:"/webhook"`
	// Telegram присылает его в X-Telegram-Bot-Api-Secret-Token.
	// 1-256 символов: A-Z, a-z, 0-9, _ и -.
	WebhookSecret string `envconfig:"WEBHOOK_SECRET"`

	// --- Admin ---
	// Пустой хеш: вход по одному только ID из ADMIN_IDS.
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`

	// --- Shop ---
	PricesFile           string          `envconfig:"PRICES_FILE"`
	CurrencySymbol       string          `envconfig:"CURRENCY_SYMBOL" default:"₽"`
	CustomUnitPrice      decimal.Decimal `envconfig:"CUSTOM_UNIT_PRICE" default:"1.5"`
	PurchaseBonusDivisor decimal.Decimal `envconfig:"PURCHASE_BONUS_DIVISOR" default:"1000"`
	ReferralRate         decimal.Decimal `envconfig:"REFERRAL_RATE" default:"0.05"`
	DefaultLanguage      string          `envconfig:"DEFAULT_LANGUAGE" default:"ru"`

	// --- Sessions & reminders ---
	ReminderDelay      time.Duration `envconfig:"REMINDER_DELAY" default:"10m"`
	SessionIdleTimeout time.Duration `envconfig:"SESSION_IDLE_TIMEOUT" default:"24h"`

	// --- Rate Limiting ---
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"10"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

// DatabaseDSN возвращает строку подключения к PostgreSQL в формате DSN.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) Validate() error {
	if len(c.AdminIDs) == 0 {
		return fmt.Errorf("ADMIN_IDS не задан")
	}
	if c.DBDriver != DriverPostgres && c.DBDriver != DriverMemory {
		return fmt.Errorf("DB_DRIVER должен быть %q или %q", DriverPostgres, DriverMemory)
	}
	if c.DBDriver == DriverPostgres && c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD обязателен для DB_DRIVER=postgres")
	}
	if c.BotMode != ModePolling && c.BotMode != ModeWebhook {
		return fmt.Errorf("BOT_MODE должен быть %q или %q", ModePolling, ModeWebhook)
	}
	if c.BotMode == ModeWebhook && c.WebhookURL == "" {
		return fmt.Errorf("WEBHOOK_URL обязателен для BOT_MODE=webhook")
	}
	if c.BotMode == ModeWebhook && !webhookSecretRe.MatchString(c.WebhookSecret) {
		return fmt.Errorf("WEBHOOK_SECRET обязателен для BOT_MODE=webhook: 1-256 символов A-Z, a-z, 0-9, _, -")
	}
	if c.BotMaxInflight <= 0 {
		return fmt.Errorf("BOT_MAX_INFLIGHT должен быть > 0")
	}
	if c.BotUpdateTimeoutSeconds <= 0 {
		return fmt.Errorf("BOT_UPDATE_TIMEOUT_SECONDS должен быть > 0")
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("некорректные DB_MIN_CONNS/DB_MAX_CONNS")
	}
	if !c.PurchaseBonusDivisor.IsPositive() {
		return fmt.Errorf("PURCHASE_BONUS_DIVISOR должен быть > 0")
	}
	if c.ReferralRate.IsNegative() || c.ReferralRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("REFERRAL_RATE должен быть в диапазоне [0, 1)")
	}
	if !c.CustomUnitPrice.IsPositive() {
		return fmt.Errorf("CUSTOM_UNIT_PRICE должен быть > 0")
	}
	if c.ReminderDelay <= 0 {
		return fmt.Errorf("REMINDER_DELAY должен быть > 0")
	}
	return nil
}

// Load читает .env (если есть) и переменные окружения, заполняет структуру Config.
func Load() (*Config, error) {
	// Файла может не быть: это нормально
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	ids, err := parseInt64CSV(cfg.AdminIDsRaw)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_IDS parse: %w", err)
	}
	cfg.AdminIDs = ids

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parseInt64CSV(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad int64 %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
