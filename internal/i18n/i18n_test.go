package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ru", Russian},
		{"en", English},
		{"en-US", English},
		{"EN-gb", English},
		{"ru-RU", Russian},
		{"", ""},
		{"!!", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Match(tt.in), tt.in)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, English, Normalize("en-AU"))
	assert.Equal(t, Russian, Normalize(""))
	assert.Equal(t, Russian, Normalize("???"))
}

func TestText_Params(t *testing.T) {
	got := Text(Russian, PlayerIDSaved, map[string]string{"player_id": "12345678"})
	assert.Contains(t, got, "12345678")
	assert.NotContains(t, got, "{player_id}")

	got = Text(English, CustomQuote, map[string]string{"units": "100", "price": "150.00 ₽"})
	assert.Equal(t, "100 UC = 150.00 ₽", got)
}

func TestText_Fallbacks(t *testing.T) {
	// Операторских текстов на английском нет
	assert.NotContains(t, catalogs[English], AdminMenu)
	assert.Equal(t, Text(Russian, AdminMenu, nil), Text(English, AdminMenu, nil))

	assert.Equal(t, Text(Russian, Banned, nil), Text("de", Banned, nil))
	assert.Equal(t, "no_such_key", Text(Russian, Key("no_such_key"), nil))
}

func TestCatalogs_EnglishKeysExistInRussian(t *testing.T) {
	for key := range en {
		assert.Contains(t, catalogs[Russian], key)
	}
}

func TestButton(t *testing.T) {
	assert.Equal(t, "Оплатить", Button(Russian, "pay"))
	assert.Equal(t, "Pay", Button(English, "pay"))
	assert.Equal(t, "Статистика", Button(English, "admin_stats"))
}
