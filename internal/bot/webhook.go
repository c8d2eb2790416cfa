package bot

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// UpdateParser разбирает тело запроса Telegram (tgbotapi.BotAPI.HandleUpdate).
type UpdateParser interface {
	HandleUpdate(r *http.Request) (*tgbotapi.Update, error)
}

// SecretHeader: заголовок, в котором Telegram повторяет secret_token из setWebhook.
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// NewRouter собирает HTTP-роутер webhook-режима:
// POST path: апдейты Telegram, GET /healthz, проверка живости.
// Непустой secret: POST без совпадающего SecretHeader получает 401.
func NewRouter(path, secret string, parser UpdateParser, dispatch func(ctx context.Context, upd tgbotapi.Update) bool) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Post(path, func(w http.ResponseWriter, r *http.Request) {
		if !validSecret(secret, r.Header.Get(SecretHeader)) {
			log.WithField("remote", r.RemoteAddr).Warn("Webhook без верного секрета")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		upd, err := parser.HandleUpdate(r)
		if err != nil {
			log.WithError(err).Warn("Некорректный апдейт webhook")
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if !dispatch(r.Context(), *upd) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	return r
}

func validSecret(want, got string) bool {
	if want == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}
