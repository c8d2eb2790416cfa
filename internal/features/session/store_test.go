package session

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwaiting_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "awaiting_player_id", AwaitingPlayerID.String())
	assert.Equal(t, "awaiting_ban_target", AwaitingBanTarget.String())
	assert.Equal(t, "unknown", Awaiting(99).String())
}

func TestStore_CreatedOnFirstUse(t *testing.T) {
	s := NewStore()

	sess := s.Get(1)
	assert.Equal(t, int64(1), sess.UserID)
	assert.Equal(t, Idle, sess.Awaiting)
	assert.True(t, sess.Discount.IsZero())
	assert.Equal(t, 1, s.Len())
}

func TestStore_ExpectReplacesPrevious(t *testing.T) {
	s := NewStore()

	s.Expect(1, AwaitingPromoCode)
	s.Expect(1, AwaitingPlayerID)
	assert.Equal(t, AwaitingPlayerID, s.Get(1).Awaiting)

	assert.Equal(t, AwaitingPlayerID, s.Consume(1))
	assert.Equal(t, Idle, s.Get(1).Awaiting)
	assert.Equal(t, Idle, s.Consume(1))
}

func TestStore_UpdateReturnsCopy(t *testing.T) {
	s := NewStore()

	got := s.Update(2, func(sess *Session) {
		sess.Package = "660"
		sess.Discount = decimal.RequireFromString("0.1")
		sess.UserID = 999
	})
	assert.Equal(t, int64(2), got.UserID)
	assert.Equal(t, "660", got.Package)

	got.Package = "changed"
	assert.Equal(t, "660", s.Get(2).Package)
}

func TestStore_LockSerialisesSameUser(t *testing.T) {
	s := NewStore()

	const workers = 50
	var (
		wg      sync.WaitGroup
		inside  int
		maxSeen int
		mu      sync.Mutex
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := s.Lock(7)
			defer unlock()

			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			s.Expect(7, AwaitingPlayerID)
			s.Update(7, func(sess *Session) { sess.Awaiting = Idle })

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Equal(t, Idle, s.Get(7).Awaiting)
}

func TestStore_LockDoesNotBlockOtherUsers(t *testing.T) {
	s := NewStore()

	unlock := s.Lock(1)
	defer unlock()

	done := make(chan struct{})
	go func() {
		u := s.Lock(2)
		u()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock of another user blocked")
	}
}

func TestStore_UnlockTwiceIsSafe(t *testing.T) {
	s := NewStore()
	unlock := s.Lock(1)
	unlock()
	unlock()

	u := s.Lock(1)
	u()
}

func TestStore_EvictIdle(t *testing.T) {
	s := NewStore()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Expect(1, AwaitingPromoCode)
	s.Expect(2, AwaitingPlayerID)
	unlock := s.Lock(3)

	now = now.Add(25 * time.Hour)
	s.Get(2) // Get не продлевает сессию

	s.Expect(4, AwaitingCustomAmount)

	evicted := s.EvictIdle(24 * time.Hour)
	assert.Equal(t, 2, evicted)
	require.Equal(t, 2, s.Len())

	// Захваченная сессия пережила очистку
	unlock()
	assert.Equal(t, AwaitingCustomAmount, s.Get(4).Awaiting)
	assert.Equal(t, Idle, s.Get(1).Awaiting)
}
