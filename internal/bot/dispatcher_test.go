package bot

import (
	"context"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_KeepsPerUserOrder(t *testing.T) {
	var (
		mu   sync.Mutex
		seen = make(map[int64][]int)
	)
	d := NewDispatcher(4, func(ctx context.Context, upd tgbotapi.Update) {
		mu.Lock()
		defer mu.Unlock()
		uid := upd.Message.From.ID
		seen[uid] = append(seen[uid], upd.UpdateID)
	})
	d.Start(context.Background())

	const perUser = 50
	for i := 0; i < perUser; i++ {
		for uid := int64(1); uid <= 6; uid++ {
			require.True(t, d.Dispatch(context.Background(), tgbotapi.Update{
				UpdateID: i,
				Message:  textMessage(uid, "x"),
			}))
		}
	}
	d.Stop()

	for uid := int64(1); uid <= 6; uid++ {
		require.Len(t, seen[uid], perUser)
		for i, id := range seen[uid] {
			assert.Equal(t, i, id)
		}
	}
}

func TestDispatcher_UsersRunConcurrently(t *testing.T) {
	release := make(chan struct{})
	done := make(chan int64, 2)

	d := NewDispatcher(2, func(ctx context.Context, upd tgbotapi.Update) {
		uid := upd.Message.From.ID
		if uid == 2 {
			<-release
		}
		done <- uid
	})
	d.Start(context.Background())
	defer d.Stop()

	// 2 и 3 попадают в разные воркеры
	d.Dispatch(context.Background(), tgbotapi.Update{Message: textMessage(2, "slow")})
	d.Dispatch(context.Background(), tgbotapi.Update{Message: textMessage(3, "fast")})

	select {
	case uid := <-done:
		assert.Equal(t, int64(3), uid)
	case <-time.After(2 * time.Second):
		t.Fatal("воркер второго пользователя заблокирован первым")
	}
	close(release)
	assert.Equal(t, int64(2), <-done)
}

func TestDispatcher_DispatchRespectsContext(t *testing.T) {
	block := make(chan struct{})
	d := NewDispatcher(1, func(ctx context.Context, upd tgbotapi.Update) { <-block })
	d.Start(context.Background())
	defer func() {
		close(block)
		d.Stop()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	// Один апдейт в обработке, очередь заполнена
	for i := 0; i < shardQueue+1; i++ {
		require.True(t, d.Dispatch(ctx, tgbotapi.Update{Message: textMessage(1, "x")}))
	}
	cancel()
	assert.False(t, d.Dispatch(ctx, tgbotapi.Update{Message: textMessage(1, "x")}))
}

func TestDispatcher_DispatchAfterStop(t *testing.T) {
	var handled int
	d := NewDispatcher(2, func(ctx context.Context, upd tgbotapi.Update) { handled++ })
	d.Start(context.Background())

	require.True(t, d.Dispatch(context.Background(), tgbotapi.Update{Message: textMessage(1, "before")}))
	d.Stop()

	assert.False(t, d.Dispatch(context.Background(), tgbotapi.Update{Message: textMessage(1, "after")}))
	assert.Equal(t, 1, handled)
	d.Stop()
}
