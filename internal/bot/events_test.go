package bot

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serotonyl.ru/topup-bot/internal/features/shop"
)

func TestToEvent_Command(t *testing.T) {
	ev, ok := toEvent(tgbotapi.Update{Message: commandMessage(5, "/Start@topup_bot ref10", 16)})
	require.True(t, ok)

	cmd, ok := ev.(shop.Command)
	require.True(t, ok)
	assert.Equal(t, "start", cmd.Name)
	assert.Equal(t, []string{"ref10"}, cmd.Args)
	assert.Equal(t, shop.Sender{ID: 5, Username: "buyer", LanguageCode: "en-US"}, cmd.Sender)
}

func TestToEvent_CommandWithoutArgs(t *testing.T) {
	ev, ok := toEvent(tgbotapi.Update{Message: commandMessage(5, "/buy", 4)})
	require.True(t, ok)
	assert.Equal(t, "buy", ev.(shop.Command).Name)
	assert.Empty(t, ev.(shop.Command).Args)
}

func TestToEvent_Callback(t *testing.T) {
	ev, ok := toEvent(tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb1",
		From:    &tgbotapi.User{ID: 6},
		Message: textMessage(6, "menu"),
		Data:    "660uc",
	}})
	require.True(t, ok)
	assert.Equal(t, shop.Selection{Sender: shop.Sender{ID: 6}, Token: "660uc"}, ev)
}

func TestToEvent_PhotoTakesLargestSize(t *testing.T) {
	m := textMessage(7, "")
	m.Caption = "оплатил"
	m.Photo = []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "large"}}

	ev, ok := toEvent(tgbotapi.Update{Message: m})
	require.True(t, ok)
	proof := ev.(shop.MediaProof)
	assert.Equal(t, "large", proof.MediaRef)
	assert.Equal(t, "оплатил", proof.Caption)
}

func TestToEvent_Text(t *testing.T) {
	ev, ok := toEvent(tgbotapi.Update{Message: textMessage(8, "12345678")})
	require.True(t, ok)
	assert.Equal(t, shop.Text{Sender: shop.Sender{ID: 8, Username: "buyer"}, Content: "12345678"}, ev)
}

func TestToEvent_Ignored(t *testing.T) {
	cases := map[string]tgbotapi.Update{
		"пусто":           {},
		"без отправителя": {Message: &tgbotapi.Message{Text: "hi", Chat: privateChat(1)}},
		"пустой текст":    {Message: textMessage(1, "   ")},
		"пустой callback": {CallbackQuery: &tgbotapi.CallbackQuery{From: &tgbotapi.User{ID: 1}}},
	}
	for name, upd := range cases {
		_, ok := toEvent(upd)
		assert.False(t, ok, name)
	}
}

func TestUserKey(t *testing.T) {
	assert.Equal(t, int64(9), userKey(tgbotapi.Update{Message: textMessage(9, "x")}))
	assert.Equal(t, int64(10), userKey(tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{From: &tgbotapi.User{ID: 10}}}))
	assert.Equal(t, int64(0), userKey(tgbotapi.Update{}))
}
