package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdolezal/czspot-go/hours"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func TestSpotPriceRoundTrip(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	rows := []SpotPriceRow{
		{When: hours.DateHour{Date: "2023-06-15", Hour: 10}, Price: decimal.RequireFromString("5.18414")},
		{When: hours.DateHour{Date: "2023-06-15", Hour: 11}, Price: decimal.RequireFromString("-0.001")},
	}
	require.NoError(t, db.SaveSpotPrices(ctx, ProductElectricity, rows))

	got, err := db.GetSpotPrice(ctx, ProductElectricity, hours.DateHour{Date: "2023-06-15", Hour: 10})
	require.NoError(t, err)
	assert.Equal(t, "2023-06-15", got.When.Date)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("5.18414")),
		"stored price must round trip without loss, got %s", got.Price)
}

func TestSaveSpotPricesUpserts(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	when := hours.DateHour{Date: "2023-06-15", Hour: 10}
	require.NoError(t, db.SaveSpotPrices(ctx, ProductElectricity, []SpotPriceRow{
		{When: when, Price: decimal.NewFromInt(10)},
	}))
	require.NoError(t, db.SaveSpotPrices(ctx, ProductElectricity, []SpotPriceRow{
		{When: when, Price: decimal.NewFromInt(20)},
	}))

	got, err := db.GetSpotPrice(ctx, ProductElectricity, when)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(20)), "a re-publish overwrites the earlier price")
}

func TestProductsAreKeyedSeparately(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	when := hours.DateHour{Date: "2023-06-15", Hour: 0}
	require.NoError(t, db.SaveSpotPrices(ctx, ProductElectricity, []SpotPriceRow{
		{When: when, Price: decimal.NewFromInt(1)},
	}))
	require.NoError(t, db.SaveSpotPrices(ctx, ProductGas, []SpotPriceRow{
		{When: when, Price: decimal.NewFromInt(2)},
	}))

	electricity, err := db.GetSpotPrice(ctx, ProductElectricity, when)
	require.NoError(t, err)
	gas, err := db.GetSpotPrice(ctx, ProductGas, when)
	require.NoError(t, err)

	assert.True(t, electricity.Price.Equal(decimal.NewFromInt(1)))
	assert.True(t, gas.Price.Equal(decimal.NewFromInt(2)))
}

func TestGetSpotPricesFromIsOrderedAndInclusive(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	var rows []SpotPriceRow
	when := hours.DateHour{Date: "2023-06-14", Hour: 20}
	for i := 0; i < 10; i++ {
		rows = append(rows, SpotPriceRow{When: when, Price: decimal.NewFromInt(int64(i))})
		when = when.Add(1)
	}
	require.NoError(t, db.SaveSpotPrices(ctx, ProductElectricity, rows))

	from := hours.DateHour{Date: "2023-06-14", Hour: 22}
	got, err := db.GetSpotPricesFrom(ctx, ProductElectricity, from)
	require.NoError(t, err)

	require.Len(t, got, 8, "rows before the from slot are excluded, the from slot itself included")
	assert.Equal(t, from, got[0].When)
	for i := 1; i < len(got); i++ {
		assert.Equal(t, -1, got[i-1].When.Compare(got[i].When), "rows must be in ascending slot order")
	}
	// The midnight boundary between 2023-06-14 and 2023-06-15 is crossed.
	assert.Equal(t, "2023-06-15", got[len(got)-1].When.Date)
}
