package shop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

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

const operatorID = int64(1000)

// recordingMessenger запоминает все ответы и уведомления.
// replyErr и noticeErr имитируют недоступный Telegram.
type recordingMessenger struct {
	mu        sync.Mutex
	replies   []Reply
	notices   []Notice
	replyErr  error
	noticeErr error
}

func (m *recordingMessenger) Reply(ctx context.Context, r Reply) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.replyErr != nil {
		return m.replyErr
	}
	m.replies = append(m.replies, r)
	return nil
}

func (m *recordingMessenger) NotifyOperators(ctx context.Context, n Notice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.noticeErr != nil {
		return m.noticeErr
	}
	m.notices = append(m.notices, n)
	return nil
}

func (m *recordingMessenger) failReplies(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replyErr = err
}

func (m *recordingMessenger) failNotices(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.noticeErr = err
}

func (m *recordingMessenger) last(t *testing.T) Reply {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.replies)
	return m.replies[len(m.replies)-1]
}

func (m *recordingMessenger) keys() []i18n.Key {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]i18n.Key, 0, len(m.replies))
	for _, r := range m.replies {
		out = append(out, r.Key)
	}
	return out
}

func (m *recordingMessenger) noticeKeys() []i18n.Key {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]i18n.Key, 0, len(m.notices))
	for _, n := range m.notices {
		out = append(out, n.Key)
	}
	return out
}

func (m *recordingMessenger) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = nil
	m.notices = nil
}

// manualScheduler запоминает запросы на напоминание, ничего не запуская.
type manualScheduler struct {
	mu     sync.Mutex
	users  []int64
	delays []time.Duration
}

func (s *manualScheduler) ScheduleReminder(userID int64, delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, userID)
	s.delays = append(s.delays, delay)
}

func (s *manualScheduler) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// failingOrders имитирует недоступную базу.
type failingOrders struct {
	orders.MemoryRepository
	err error
}

func (f *failingOrders) Create(ctx context.Context, userID int64, pkg string, price decimal.Decimal) (*orders.Order, error) {
	return nil, f.err
}

type fixture struct {
	svc       *Service
	messenger *recordingMessenger
	scheduler *manualScheduler
	users     *users.Service
	orders    *orders.Service
	bans      *bans.Service
	acc       *accounting.Service
	sessions  *session.Store
}

type fixtureOption func(*fixtureConfig)

type fixtureConfig struct {
	passwordHash string
	ordersRepo   orders.Repository
}

func withPassword(hash string) fixtureOption {
	return func(c *fixtureConfig) { c.passwordHash = hash }
}

func withOrdersRepo(r orders.Repository) fixtureOption {
	return func(c *fixtureConfig) { c.ordersRepo = r }
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()
	cfg := fixtureConfig{ordersRepo: orders.NewMemoryRepository()}
	for _, o := range opts {
		o(&cfg)
	}

	usersRepo := users.NewMemoryRepository()
	usersSvc := users.NewService(usersRepo, i18n.Russian)
	bansSvc := bans.NewService(bans.NewMemoryRepository())
	promoSvc := promo.NewService(promo.NewMemoryRepository())
	ordersSvc := orders.NewService(cfg.ordersRepo)
	accSvc := accounting.NewService(
		accounting.NewMemoryRepository(usersRepo),
		usersSvc,
		decimal.NewFromInt(1000),
		decimal.RequireFromString("0.05"),
	)
	cat, err := catalog.New("", "₽", decimal.RequireFromString("1.5"))
	require.NoError(t, err)
	adminSvc := admin.NewService(admin.NewMemoryRepository(), []int64{operatorID}, cfg.passwordHash, admin.Deps{
		Orders:  ordersSvc,
		Bans:    bansSvc,
		Promos:  promoSvc,
		Catalog: cat,
	})
	sessions := session.NewStore()
	messenger := &recordingMessenger{}
	scheduler := &manualScheduler{}

	svc := NewService(Config{
		BotUsername:   "topup_test_bot",
		Timezone:      "Europe/Moscow",
		ReminderDelay: 10 * time.Minute,
		ReferralRate:  decimal.RequireFromString("0.05"),
	}, Deps{
		Users:      usersSvc,
		Bans:       bansSvc,
		Promos:     promoSvc,
		Orders:     ordersSvc,
		Accounting: accSvc,
		Catalog:    cat,
		Admin:      adminSvc,
		Sessions:   sessions,
		Messenger:  messenger,
	})
	svc.SetReminders(scheduler)

	return &fixture{
		svc:       svc,
		messenger: messenger,
		scheduler: scheduler,
		users:     usersSvc,
		orders:    ordersSvc,
		bans:      bansSvc,
		acc:       accSvc,
		sessions:  sessions,
	}
}

func sender(id int64) Sender {
	return Sender{ID: id, Username: "user" + formatInt(id)}
}

func (f *fixture) command(t *testing.T, userID int64, name string, args ...string) {
	t.Helper()
	require.NoError(t, f.svc.Handle(context.Background(), Command{Sender: sender(userID), Name: name, Args: args}))
}

func (f *fixture) selectToken(t *testing.T, userID int64, token string) {
	t.Helper()
	require.NoError(t, f.svc.Handle(context.Background(), Selection{Sender: sender(userID), Token: token}))
}

func (f *fixture) text(t *testing.T, userID int64, content string) {
	t.Helper()
	require.NoError(t, f.svc.Handle(context.Background(), Text{Sender: sender(userID), Content: content}))
}
