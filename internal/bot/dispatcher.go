package bot

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// shardQueue: длина очереди одного воркера.
const shardQueue = 16

// HandlerFunc обрабатывает один апдейт.
type HandlerFunc func(ctx context.Context, upd tgbotapi.Update)

// Dispatcher раскладывает апдейты по воркерам по user ID: апдейты одного
// пользователя обрабатываются по порядку, разных: параллельно.
type Dispatcher struct {
	shards []chan tgbotapi.Update
	handle HandlerFunc
	wg     sync.WaitGroup

	mu     sync.RWMutex // closed и закрытие очередей
	closed bool
}

// NewDispatcher создаёт диспетчер на workers воркеров (BOT_MAX_INFLIGHT).
func NewDispatcher(workers int, handle HandlerFunc) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	shards := make([]chan tgbotapi.Update, workers)
	for i := range shards {
		shards[i] = make(chan tgbotapi.Update, shardQueue)
	}
	return &Dispatcher{shards: shards, handle: handle}
}

// Start запускает воркеры.
func (d *Dispatcher) Start(ctx context.Context) {
	for _, ch := range d.shards {
		d.wg.Add(1)
		go func(ch <-chan tgbotapi.Update) {
			defer d.wg.Done()
			for upd := range ch {
				d.handle(ctx, upd)
			}
		}(ch)
	}
}

// Dispatch ставит апдейт в очередь его воркера. Блокируется, пока очередь
// полна; false: ctx отменён раньше или диспетчер уже остановлен.
func (d *Dispatcher) Dispatch(ctx context.Context, upd tgbotapi.Update) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return false
	}

	ch := d.shards[d.shard(userKey(upd))]
	select {
	case ch <- upd:
		return true
	case <-ctx.Done():
		return false
	}
}

func (d *Dispatcher) shard(userID int64) int {
	return int(uint64(userID) % uint64(len(d.shards)))
}

// Stop закрывает очереди и ждёт, пока воркеры доработают.
// Dispatch после Stop возвращает false. Повторный Stop ничего не делает.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.shards {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}
