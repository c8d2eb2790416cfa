package common

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidPlayerID(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		valid bool
	}{
		{name: "8 digits", id: "12345678", valid: true},
		{name: "12 digits", id: "123456789012", valid: true},
		{name: "10 digits", id: "5123456789", valid: true},
		{name: "7 digits", id: "1234567", valid: false},
		{name: "13 digits", id: "1234567890123", valid: false},
		{name: "letters", id: "1234a678", valid: false},
		{name: "spaces", id: " 12345678", valid: false},
		{name: "trailing newline", id: "12345678\n", valid: false},
		{name: "empty", id: "", valid: false},
		{name: "unicode digits", id: "١٢٣٤٥٦٧٨", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidPlayerID(tt.id))
		})
	}
}

func TestParsePositiveInt(t *testing.T) {
	n, err := ParsePositiveInt(" 120 ")
	require.NoError(t, err)
	assert.Equal(t, int64(120), n)

	for _, in := range []string{"0", "-5", "abc", "1.5", ""} {
		_, err := ParsePositiveInt(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, in)
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "90.06 ₽", FormatMoney(decimal.RequireFromString("90.06"), "₽"))
	assert.Equal(t, "810.55 ₽", FormatMoney(decimal.RequireFromString("810.549"), "₽"))
	assert.Equal(t, "150.00", FormatMoney(decimal.NewFromInt(150), ""))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "10", FormatPercent(decimal.RequireFromString("0.1")))
	assert.Equal(t, "12.5", FormatPercent(decimal.RequireFromString("0.125")))
}

func TestPluralizeOrders(t *testing.T) {
	assert.Equal(t, "заказ", PluralizeOrders(1))
	assert.Equal(t, "заказ", PluralizeOrders(21))
	assert.Equal(t, "заказа", PluralizeOrders(3))
	assert.Equal(t, "заказов", PluralizeOrders(11))
	assert.Equal(t, "заказов", PluralizeOrders(0))
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-01-02 12:30:00", FormatDateTime(ts, "Europe/Moscow"))
}
