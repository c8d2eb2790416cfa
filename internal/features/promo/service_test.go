package promo

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serotonyl.ru/topup-bot/internal/common"
)

func TestApply_Summer10(t *testing.T) {
	quoted := Apply(decimal.RequireFromString("900.61"), decimal.RequireFromString("0.10"))

	// Полная точность сохраняется для расчёта бонусов
	assert.Equal(t, "810.549", quoted.String())
	assert.Equal(t, "810.55", common.RoundMoney(quoted).StringFixed(2))
}

func TestApply_ZeroDiscount(t *testing.T) {
	base := decimal.RequireFromString("90.06")
	assert.True(t, Apply(base, decimal.Zero).Equal(base))
}

func TestService_LookupCaseInsensitive(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	for _, code := range []string{"SUMMER10", "summer10", "  Summer10 "} {
		p, err := svc.Lookup(ctx, code)
		require.NoError(t, err, code)
		assert.Equal(t, "SUMMER10", p.Code)
		assert.Equal(t, "0.1", p.Discount.String())
	}

	p, err := svc.Lookup(ctx, "welcome")
	require.NoError(t, err)
	assert.Equal(t, "0.05", p.Discount.String())
}

func TestService_LookupUnknown(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	for _, code := range []string{"NOPE", "", "   "} {
		_, err := svc.Lookup(context.Background(), code)
		assert.ErrorIs(t, err, common.ErrPromoNotFound, code)
		assert.True(t, common.IsValidation(err))
	}
}

func TestService_Add(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "vip", decimal.RequireFromString("0.25")))
	p, err := svc.Lookup(ctx, "VIP")
	require.NoError(t, err)
	assert.Equal(t, "0.25", p.Discount.String())

	// Повторное добавление меняет скидку
	require.NoError(t, svc.Add(ctx, "VIP", decimal.RequireFromString("0.3")))
	p, err = svc.Lookup(ctx, "vip")
	require.NoError(t, err)
	assert.Equal(t, "0.3", p.Discount.String())

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "SUMMER10", list[0].Code)
	assert.Equal(t, "VIP", list[1].Code)
	assert.Equal(t, "WELCOME", list[2].Code)
}

func TestService_AddRejectsBadDiscount(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	for _, d := range []string{"1", "1.5", "-0.1", "0.12345", "0.00001"} {
		err := svc.Add(ctx, "BAD", decimal.RequireFromString(d))
		assert.ErrorIs(t, err, common.ErrInvalidDiscount, d)
	}
	_, err := svc.Lookup(ctx, "BAD")
	assert.ErrorIs(t, err, common.ErrPromoNotFound)
}

func TestService_AddKeepsColumnLimits(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "EXACT", decimal.RequireFromString("0.1234")))
	require.NoError(t, svc.Add(ctx, "PADDED", decimal.RequireFromString("0.150000")))

	long := strings.Repeat("A", MaxCodeLength)
	require.NoError(t, svc.Add(ctx, long, decimal.RequireFromString("0.1")))

	for _, code := range []string{"", "   ", long + "B", strings.Repeat("Ж", MaxCodeLength+1)} {
		err := svc.Add(ctx, code, decimal.RequireFromString("0.1"))
		assert.ErrorIs(t, err, common.ErrInvalidPromoCode, code)
		assert.True(t, common.IsValidation(err), code)
	}

	// 64 кириллических символа укладываются в VARCHAR(64)
	require.NoError(t, svc.Add(ctx, strings.Repeat("Ж", MaxCodeLength), decimal.RequireFromString("0.1")))
}
