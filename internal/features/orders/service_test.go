package orders

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_CreateAndList(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	o, err := svc.Create(ctx, 1, "660", decimal.RequireFromString("810.549"))
	require.NoError(t, err)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, "810.55", o.Price.StringFixed(2))
	assert.Nil(t, o.PlayerID)

	_, err = svc.Create(ctx, 2, "60", decimal.RequireFromString("90.06"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, "60", decimal.RequireFromString("90.06"))
	require.NoError(t, err)

	list, err := svc.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "660", list[0].Package)
	assert.Equal(t, "60", list[1].Package)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(1), all[0].UserID)
	assert.Equal(t, "60", all[0].Package)
}

func TestService_AttachPlayerIDTargetsLatestPending(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	ok, err := svc.AttachPlayerID(ctx, 1, "12345678")
	require.NoError(t, err)
	assert.False(t, ok)

	first, err := svc.Create(ctx, 1, "60", decimal.RequireFromString("90.06"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, 1, "325", decimal.RequireFromString("450.31"))
	require.NoError(t, err)

	ok, err = svc.AttachPlayerID(ctx, 1, "12345678")
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := svc.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, list[0].PlayerID)
	require.NotNil(t, list[1].PlayerID)
	assert.Equal(t, "12345678", *list[1].PlayerID)

	// Последний заказ закрыт: ID уходит в предыдущий pending
	repo.SetStatus(second.ID, StatusConfirmed)
	ok, err = svc.AttachPlayerID(ctx, 1, "87654321")
	require.NoError(t, err)
	assert.True(t, ok)

	latest, err := svc.LatestPending(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, first.ID, latest.ID)
	assert.Equal(t, "87654321", *latest.PlayerID)

	repo.SetStatus(first.ID, StatusCancelled)
	latest, err = svc.LatestPending(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestService_Aggregate(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	st, err := svc.Aggregate(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), st.Count)
	assert.True(t, st.Revenue.IsZero())
	assert.Empty(t, st.Popular)

	for _, p := range []struct{ pkg, price string }{
		{"325", "450.31"},
		{"60", "90.06"},
		{"60", "90.06"},
		{"325", "450.31"},
		{"1800", "2251.53"},
	} {
		_, err := svc.Create(ctx, 1, p.pkg, decimal.RequireFromString(p.price))
		require.NoError(t, err)
	}

	st, err = svc.Aggregate(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), st.Count)
	assert.Equal(t, "3332.27", st.Revenue.StringFixed(2))
	// Ничья 325 и 60: побеждает заказанный первым
	assert.Equal(t, "325", st.Popular)
	assert.Equal(t, int64(2), st.PopularCount)
}
