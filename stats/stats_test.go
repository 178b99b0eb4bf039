package stats

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdolezal/czspot-go/types"
)

// hourlySeries builds count consecutive hourly entries starting at start,
// priced by the given function of the slot index.
func hourlySeries(start time.Time, count int, price func(i int) decimal.Decimal) types.RateSeries {
	series := make(types.RateSeries, count)
	for i := 0; i < count; i++ {
		series[start.Add(time.Duration(i)*time.Hour)] = price(i)
	}
	return series
}

func TestCheapestAndMostExpensiveHour(t *testing.T) {
	start := time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC)
	series := hourlySeries(start, 24, func(i int) decimal.Decimal {
		switch i {
		case 3:
			return decimal.NewFromInt(1)
		case 18:
			return decimal.NewFromInt(900)
		default:
			return decimal.NewFromInt(100)
		}
	})

	now := start.Add(12 * time.Hour)
	s := NewHourlyStats(series, time.UTC, now)

	require.Len(t, s.Today.Hours, 24)
	assert.Nil(t, s.Tomorrow, "no entries for tomorrow were supplied")

	cheapest := s.Today.CheapestHour()
	require.NotNil(t, cheapest)
	assert.Equal(t, start.Add(3*time.Hour), cheapest.UTC)
	assert.True(t, cheapest.Price.Equal(decimal.NewFromInt(1)))

	dearest := s.Today.MostExpensiveHour()
	require.NotNil(t, dearest)
	assert.Equal(t, start.Add(18*time.Hour), dearest.UTC)
	assert.True(t, dearest.Price.Equal(decimal.NewFromInt(900)))
}

func TestConsecutiveWindowSums(t *testing.T) {
	start := time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC)
	// Prices 1, 2, 3, ... so window sums are easy to verify by hand.
	series := hourlySeries(start, 24, func(i int) decimal.Decimal {
		return decimal.NewFromInt(int64(i + 1))
	})

	s := NewHourlyStats(series, time.UTC, start)

	hour, err := s.HourFor(start.Add(7 * time.Hour)) // price 8
	require.NoError(t, err)

	// Trailing windows ending at hour index 7.
	want := map[int]int64{
		1: 8,  // 8
		2: 15, // 7+8
		3: 21, // 6+7+8
		4: 26, // 5..8
		6: 33, // 3..8
		8: 36, // 1..8
	}
	require.Len(t, hour.ConsecutiveSums, len(want))
	for window, sum := range want {
		require.Contains(t, hour.ConsecutiveSums, window)
		assert.True(t, hour.ConsecutiveSums[window].Equal(decimal.NewFromInt(sum)),
			"window %d: expected %d, got %s", window, sum, hour.ConsecutiveSums[window])
	}
}

func TestWindowsBeforeSeriesStartAreAbsent(t *testing.T) {
	start := time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC)
	series := hourlySeries(start, 24, func(i int) decimal.Decimal {
		return decimal.NewFromInt(int64(i + 1))
	})

	s := NewHourlyStats(series, time.UTC, start)

	first, err := s.HourFor(start)
	require.NoError(t, err)
	assert.Len(t, first.ConsecutiveSums, 1, "only the 1 hour window fits at the start of the series")

	third, err := s.HourFor(start.Add(2 * time.Hour))
	require.NoError(t, err)
	require.Contains(t, third.ConsecutiveSums, 3)
	assert.NotContains(t, third.ConsecutiveSums, 4)
}

func TestCheapestConsecutiveOrder(t *testing.T) {
	start := time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC)
	// Cheap block at hours 10..13, expensive everywhere else.
	series := hourlySeries(start, 24, func(i int) decimal.Decimal {
		if i >= 10 && i <= 13 {
			return decimal.NewFromInt(5)
		}
		return decimal.NewFromInt(200)
	})

	s := NewHourlyStats(series, time.UTC, start)

	// The cheapest 4 hour window ends at hour 13.
	endOfBlock, err := s.HourFor(start.Add(13 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, endOfBlock.CheapestConsecutiveOrder[4])

	// Every hour in the day is ranked for every window length.
	for _, hour := range s.Today.Hours {
		for _, window := range ConsecutiveHours {
			order := hour.CheapestConsecutiveOrder[window]
			assert.GreaterOrEqual(t, order, 1)
			assert.LessOrEqual(t, order, 24)
		}
	}
}

func TestTomorrowIsBucketedSeparately(t *testing.T) {
	today := time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	series := hourlySeries(today, 24, func(i int) decimal.Decimal { return decimal.NewFromInt(100) })
	for ts, price := range hourlySeries(tomorrow, 24, func(i int) decimal.Decimal { return decimal.NewFromInt(50) }) {
		series[ts] = price
	}

	s := NewHourlyStats(series, time.UTC, today.Add(15*time.Hour))

	require.NotNil(t, s.Tomorrow)
	assert.Len(t, s.Today.Hours, 24)
	assert.Len(t, s.Tomorrow.Hours, 24)
	assert.True(t, s.Tomorrow.CheapestHour().Price.Equal(decimal.NewFromInt(50)))
}

func TestBucketsFollowLocalCalendarDay(t *testing.T) {
	prague, err := time.LoadLocation("Europe/Prague")
	require.NoError(t, err)

	// 2023-06-15 00:00 CEST is 2023-06-14 22:00 UTC.
	localMidnightUTC := time.Date(2023, time.June, 14, 22, 0, 0, 0, time.UTC)
	series := hourlySeries(localMidnightUTC, 24, func(i int) decimal.Decimal { return decimal.NewFromInt(100) })

	now := time.Date(2023, time.June, 15, 12, 0, 0, 0, prague)
	s := NewHourlyStats(series, prague, now)

	assert.Len(t, s.Today.Hours, 24, "all 24 slots belong to the local day, not the UTC day")
	assert.Nil(t, s.Tomorrow)
}

func TestHourForTruncatesToSlot(t *testing.T) {
	start := time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC)
	series := hourlySeries(start, 24, func(i int) decimal.Decimal { return decimal.NewFromInt(int64(i)) })

	s := NewHourlyStats(series, time.UTC, start)

	hour, err := s.HourFor(start.Add(7*time.Hour + 42*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, start.Add(7*time.Hour), hour.UTC)

	_, err = s.HourFor(start.AddDate(0, 0, 3))
	assert.Error(t, err)
}

func TestDailyStats(t *testing.T) {
	prague, err := time.LoadLocation("Europe/Prague")
	require.NoError(t, err)
	now := time.Date(2023, time.June, 15, 12, 0, 0, 0, prague)

	midnightUTC := func(date string) time.Time {
		day, err := time.ParseInLocation("2006-01-02", date, prague)
		require.NoError(t, err)
		return day.UTC()
	}

	t.Run("all days present", func(t *testing.T) {
		series := types.RateSeries{
			midnightUTC("2023-06-14"): decimal.NewFromInt(30),
			midnightUTC("2023-06-15"): decimal.NewFromInt(31),
			midnightUTC("2023-06-16"): decimal.NewFromInt(32),
		}
		d := NewDailyStats(series, prague, now)

		today, err := d.Today()
		require.NoError(t, err)
		assert.True(t, today.Equal(decimal.NewFromInt(31)))

		tomorrow := d.Tomorrow()
		require.True(t, tomorrow.IsValid())
		assert.True(t, tomorrow.Value().Equal(decimal.NewFromInt(32)))
	})

	t.Run("today falls back to yesterday", func(t *testing.T) {
		series := types.RateSeries{
			midnightUTC("2023-06-14"): decimal.NewFromInt(30),
		}
		d := NewDailyStats(series, prague, now)

		today, err := d.Today()
		require.NoError(t, err)
		assert.True(t, today.Equal(decimal.NewFromInt(30)))

		assert.False(t, d.Tomorrow().IsValid())
	})

	t.Run("no data at all", func(t *testing.T) {
		d := NewDailyStats(types.RateSeries{}, prague, now)
		_, err := d.Today()
		assert.Error(t, err)
	})
}
