package session

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type entry struct {
	mu      sync.Mutex // Держится всё время обработки события пользователя
	refs    int        // Сколько горутин держат или ждут mu
	session Session
}

// Store: сессии по user ID. Сессия создаётся при первом обращении.
//
// Lock сериализует обработку событий одного пользователя (сообщения
// и напоминания). Остальные методы короткие и сами берут внутренний мьютекс,
// их можно вызывать как под Lock, так и без него.
type Store struct {
	mu      sync.Mutex
	entries map[int64]*entry
	now     func() time.Time
}

// NewStore создаёт пустое хранилище.
func NewStore() *Store {
	return &Store{
		entries: make(map[int64]*entry),
		now:     time.Now,
	}
}

// get возвращает запись пользователя, создавая её. Вызывать под s.mu.
func (s *Store) get(userID int64) *entry {
	e, ok := s.entries[userID]
	if !ok {
		e = &entry{session: Session{UserID: userID, Awaiting: Idle, LastSeen: s.now()}}
		s.entries[userID] = e
	}
	return e
}

// Lock захватывает пользователя и возвращает функцию освобождения.
//
//	unlock := store.Lock(userID)
//	defer unlock()
func (s *Store) Lock(userID int64) func() {
	s.mu.Lock()
	e := s.get(userID)
	e.refs++
	s.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			e.refs--
			e.session.LastSeen = s.now()
			s.mu.Unlock()
			e.mu.Unlock()
		})
	}
}

// Get возвращает копию сессии.
func (s *Store) Get(userID int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(userID).session
}

// Update меняет сессию функцией fn и возвращает результат.
func (s *Store) Update(userID int64, fn func(*Session)) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.get(userID)
	fn(&e.session)
	e.session.UserID = userID
	e.session.LastSeen = s.now()
	return e.session
}

// Expect переводит диалог в ожидание a. Прежнее ожидание заменяется.
func (s *Store) Expect(userID int64, a Awaiting) {
	s.Update(userID, func(sess *Session) { sess.Awaiting = a })
}

// Consume возвращает текущее ожидание и сбрасывает его в Idle.
// Так одно текстовое сообщение достаётся ровно одному обработчику.
func (s *Store) Consume(userID int64) Awaiting {
	var prev Awaiting
	s.Update(userID, func(sess *Session) {
		prev = sess.Awaiting
		sess.Awaiting = Idle
	})
	return prev
}

// EvictIdle удаляет сессии, к которым не обращались дольше maxIdle.
// Захваченные сессии не трогает. Возвращает число удалённых.
func (s *Store) EvictIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	evicted := 0
	for id, e := range s.entries {
		if e.refs > 0 || e.session.LastSeen.After(cutoff) {
			continue
		}
		delete(s.entries, id)
		evicted++
	}
	if evicted > 0 {
		log.WithFields(log.Fields{
			"component": "session",
			"evicted":   evicted,
			"remaining": len(s.entries),
		}).Debug("Очищены неактивные сессии")
	}
	return evicted
}

// Len возвращает число сессий в памяти.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
