package bot

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serotonyl.ru/topup-bot/internal/features/shop"
	"serotonyl.ru/topup-bot/internal/i18n"
)

func TestMessenger_ReplyWithKeyboard(t *testing.T) {
	api := &fakeAPI{}
	m := NewMessenger(api, nil)

	err := m.Reply(context.Background(), shop.Reply{
		UserID: 42,
		Lang:   i18n.English,
		Key:    i18n.Bonuses,
		Params: map[string]string{"bonuses": "7"},
		Options: []shop.Option{
			{Token: shop.TokenPay},
			{Token: "60uc", Label: "60 UC: 90.06 ₽"},
		},
	})
	require.NoError(t, err)
	require.Len(t, api.sent, 1)

	msg, ok := api.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, "Your bonuses: 7 UC", msg.Text)

	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard, 2)
	assert.Equal(t, "Pay", kb.InlineKeyboard[0][0].Text)
	require.NotNil(t, kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "pay", *kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "60 UC: 90.06 ₽", kb.InlineKeyboard[1][0].Text)
}

func TestMessenger_ReplyWithoutOptionsHasNoKeyboard(t *testing.T) {
	api := &fakeAPI{}
	m := NewMessenger(api, nil)

	require.NoError(t, m.Reply(context.Background(), shop.Reply{UserID: 1, Lang: i18n.Russian, Text: "готово"}))
	msg := api.sent[0].(tgbotapi.MessageConfig)
	assert.Equal(t, "готово", msg.Text)
	assert.Nil(t, msg.ReplyMarkup)
}

func TestMessenger_ReplyError(t *testing.T) {
	api := &fakeAPI{failFor: map[int64]bool{3: true}}
	m := NewMessenger(api, nil)

	err := m.Reply(context.Background(), shop.Reply{UserID: 3, Key: i18n.Welcome})
	assert.Error(t, err)
}

func TestMessenger_NotifyOperators(t *testing.T) {
	api := &fakeAPI{failFor: map[int64]bool{101: true}}
	m := NewMessenger(api, []int64{100, 101, 102})

	err := m.NotifyOperators(context.Background(), shop.Notice{
		Key:      i18n.NoticeScreenshot,
		Params:   map[string]string{"username": "@buyer", "user_id": "5"},
		MediaRef: "file-1",
	})
	// Один оператор недоступен, остальные получили фото
	assert.Error(t, err)
	require.Len(t, api.sent, 2)

	for i, want := range []int64{100, 102} {
		photo, ok := api.sent[i].(tgbotapi.PhotoConfig)
		require.True(t, ok)
		assert.Equal(t, want, photo.ChatID)
		assert.Equal(t, tgbotapi.FileID("file-1"), photo.File)
		assert.Equal(t, "Скриншот платежа от @buyer (5)", photo.Caption)
	}
}

func TestMessenger_NotifyOperatorsText(t *testing.T) {
	api := &fakeAPI{}
	m := NewMessenger(api, []int64{100})

	require.NoError(t, m.NotifyOperators(context.Background(), shop.Notice{
		Key:    i18n.NoticeScreenshot,
		Params: map[string]string{"username": "@buyer", "user_id": "5"},
	}))
	_, ok := api.sent[0].(tgbotapi.MessageConfig)
	assert.True(t, ok)
}

func TestMessenger_AnswerCallback(t *testing.T) {
	api := &fakeAPI{}
	NewMessenger(api, nil).AnswerCallback("cb1")

	require.Len(t, api.requests, 1)
	cb, ok := api.requests[0].(tgbotapi.CallbackConfig)
	require.True(t, ok)
	assert.Equal(t, "cb1", cb.CallbackQueryID)
}
