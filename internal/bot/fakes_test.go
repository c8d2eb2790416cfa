package bot

import (
	"context"
	"errors"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"serotonyl.ru/topup-bot/internal/features/shop"
)

// fakeAPI запоминает отправленное. Чатам из failFor отвечает ошибкой.
type fakeAPI struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	failFor  map[int64]bool
}

func chatOf(c tgbotapi.Chattable) int64 {
	switch v := c.(type) {
	case tgbotapi.MessageConfig:
		return v.ChatID
	case tgbotapi.PhotoConfig:
		return v.ChatID
	}
	return 0
}

func (a *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failFor[chatOf(c)] {
		return tgbotapi.Message{}, errors.New("Forbidden: bot was blocked by the user")
	}
	a.sent = append(a.sent, c)
	return tgbotapi.Message{}, nil
}

func (a *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests = append(a.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// recordingHandler запоминает события магазина.
type recordingHandler struct {
	mu     sync.Mutex
	events []shop.Event
	err    error
}

func (h *recordingHandler) Handle(ctx context.Context, ev shop.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, ev)
	return h.err
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.events)
}

func privateChat(id int64) *tgbotapi.Chat {
	return &tgbotapi.Chat{ID: id, Type: "private"}
}

func commandMessage(userID int64, text string, cmdLen int) *tgbotapi.Message {
	return &tgbotapi.Message{
		From:     &tgbotapi.User{ID: userID, UserName: "buyer", LanguageCode: "en-US"},
		Chat:     privateChat(userID),
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}},
	}
}

func textMessage(userID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID, UserName: "buyer"},
		Chat: privateChat(userID),
		Text: text,
	}
}
