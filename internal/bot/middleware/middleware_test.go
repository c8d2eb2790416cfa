package middleware

import (
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_SlidingWindow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Close()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow(1))
	assert.True(t, rl.Allow(1))
	assert.False(t, rl.Allow(1))
	// Другой пользователь не затронут
	assert.True(t, rl.Allow(2))

	now = now.Add(61 * time.Second)
	assert.True(t, rl.Allow(1))
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(0, time.Minute)
	defer rl.Close()

	for i := 0; i < 100; i++ {
		assert.True(t, rl.Allow(1))
	}
}

func TestRateLimiter_SweepDropsStaleUsers(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)
	defer rl.Close()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	rl.Allow(1)
	rl.Allow(2)

	now = now.Add(30 * time.Second)
	rl.Allow(2)
	now = now.Add(40 * time.Second)
	rl.sweep()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.requests, int64(1))
	assert.Len(t, rl.requests[2], 1)
}

func TestRateLimiter_CloseTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	assert.NotPanics(t, func() {
		rl.Close()
		rl.Close()
	})
}

func TestRecoverFromPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		defer RecoverFromPanic()
		panic("boom")
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "при...", Truncate("привет", 3))
}

func TestLogMessage_NilSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		LogMessage(nil)
		LogMessage(&tgbotapi.Message{Text: "no sender"})
		LogCallback(nil)
		LogCallback(&tgbotapi.CallbackQuery{Data: "pay"})
	})
}
