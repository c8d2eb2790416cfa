package bot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "s3cret_Token-1"

func newTestRouter(accept bool) (http.Handler, *[]tgbotapi.Update) {
	var got []tgbotapi.Update
	r := NewRouter("/webhook", testSecret, &tgbotapi.BotAPI{}, func(ctx context.Context, upd tgbotapi.Update) bool {
		got = append(got, upd)
		return accept
	})
	return r, &got
}

func postUpdate(body, secret string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	if secret != "" {
		req.Header.Set(SecretHeader, secret)
	}
	return req
}

func TestRouter_Healthz(t *testing.T) {
	r, _ := newTestRouter(true)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRouter_WebhookDispatchesUpdate(t *testing.T) {
	r, got := newTestRouter(true)

	body := `{"update_id": 77, "message": {"message_id": 1, "from": {"id": 5, "is_bot": false, "first_name": "A"}, "chat": {"id": 5, "type": "private"}, "date": 0, "text": "hi"}}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, postUpdate(body, testSecret))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, *got, 1)
	assert.Equal(t, 77, (*got)[0].UpdateID)
	assert.Equal(t, "hi", (*got)[0].Message.Text)
}

func TestRouter_WebhookRejectsGarbage(t *testing.T) {
	r, got := newTestRouter(true)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, postUpdate("{not json", testSecret))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, *got)
}

func TestRouter_WebhookBusy(t *testing.T) {
	r, _ := newTestRouter(false)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, postUpdate(`{"update_id": 1}`, testSecret))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_UnknownPath(t *testing.T) {
	r, _ := newTestRouter(true)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_WebhookRequiresSecret(t *testing.T) {
	r, got := newTestRouter(true)
	body := `{"update_id": 78, "message": {"message_id": 1, "from": {"id": 1000, "is_bot": false, "first_name": "Op"}, "chat": {"id": 1000, "type": "private"}, "date": 0, "text": "/admin"}}`

	for _, secret := range []string{"", "wrong", testSecret + "x"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, postUpdate(body, secret))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, secret)
	}
	assert.Empty(t, *got)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, postUpdate(body, testSecret))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, *got, 1)
}
