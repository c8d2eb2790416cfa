// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: разовые напоминания о брошенных
// заказах и периодическую очистку простаивающих сессий.
package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/topup-bot/internal/features/session"
)

// SweepSpec: как часто чистим простаивающие сессии.
const SweepSpec = "@every 1m"

// RemindFunc вызывается, когда подошло время напоминания.
type RemindFunc func(ctx context.Context, userID int64) error

// once: расписание на один запуск.
type once struct {
	at time.Time
}

// Next возвращает момент запуска, а после него нулевое время.
// Такие записи cron больше не запускает.
func (o once) Next(t time.Time) time.Time {
	if t.Before(o.at) {
		return o.at
	}
	return time.Time{}
}

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron        *cron.Cron
	sessions    *session.Store
	idleTimeout time.Duration
	remind      RemindFunc

	mu        sync.Mutex
	ctx       context.Context
	reminders map[cron.EntryID]int64
}

// NewScheduler создаёт планировщик в часовом поясе магазина.
func NewScheduler(timezone string, sessions *session.Store, idleTimeout time.Duration) *Scheduler {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.WithError(err).Warnf("Не удалось загрузить %s, используем UTC+3", timezone)
		loc = time.FixedZone("MSK", 3*60*60)
	}

	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(cron.PrintfLogger(log.StandardLogger()))),
	)

	return &Scheduler{
		cron:        c,
		sessions:    sessions,
		idleTimeout: idleTimeout,
		ctx:         context.Background(),
		reminders:   make(map[cron.EntryID]int64),
	}
}

// OnReminder задаёт обработчик напоминаний.
func (s *Scheduler) OnReminder(fn RemindFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remind = fn
}

// ScheduleReminder ставит разовое напоминание через delay.
// Запись удаляется из cron сразу после срабатывания.
func (s *Scheduler) ScheduleReminder(userID int64, delay time.Duration) {
	if delay < time.Millisecond {
		delay = time.Millisecond
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var id cron.EntryID
	id = s.cron.Schedule(once{at: time.Now().Add(delay)}, cron.FuncJob(func() {
		s.mu.Lock()
		eid := id
		s.mu.Unlock()
		s.fire(eid, userID)
	}))
	s.reminders[id] = userID

	log.WithFields(log.Fields{
		"user_id": userID,
		"delay":   delay.String(),
	}).Debug("[CRON] Напоминание запланировано")
}

func (s *Scheduler) fire(id cron.EntryID, userID int64) {
	s.mu.Lock()
	remind := s.remind
	ctx := s.ctx
	delete(s.reminders, id)
	s.mu.Unlock()

	s.cron.Remove(id)

	if remind == nil {
		return
	}
	if err := remind(ctx, userID); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("[CRON] Ошибка напоминания")
	}
}

// Pending: сколько напоминаний ещё не сработало.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reminders)
}

// sweep выгружает сессии, простаивающие дольше idleTimeout.
func (s *Scheduler) sweep() {
	if s.idleTimeout <= 0 {
		return
	}
	s.sessions.EvictIdle(s.idleTimeout)
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	if _, err := s.cron.AddFunc(SweepSpec, s.sweep); err != nil {
		return err
	}

	s.cron.Start()
	log.Info("Планировщик задач запущен")
	return nil
}

// Stop останавливает планировщик и ждёт выполняющиеся задачи.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
