// Package stats post-processes a rate series into per-day figures: the
// cheapest and most expensive hour and the ordering of consecutive cheapest
// windows, bucketed by local calendar day.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdolezal/czspot-go/types"
	"github.com/mdolezal/czspot-go/types/maybe"
)

// ConsecutiveHours are the trailing window lengths ranked per day, e.g. for
// scheduling a 4 hour boiler run in the cheapest 4 hour block.
var ConsecutiveHours = []int{1, 2, 3, 4, 6, 8}

type Hour struct {
	UTC   time.Time
	Local time.Time
	Price decimal.Decimal

	// ConsecutiveSums holds the price sum of the trailing window ending at
	// this hour, keyed by window length. A window reaching before the start
	// of the series is absent.
	ConsecutiveSums map[int]decimal.Decimal

	// CheapestConsecutiveOrder ranks this hour within its day per window
	// length, 1 meaning the window ending here is the cheapest of the day.
	CheapestConsecutiveOrder map[int]int
}

type Day struct {
	Hours map[time.Time]*Hour
}

func newDay() *Day {
	return &Day{Hours: make(map[time.Time]*Hour)}
}

func (d *Day) CheapestHour() *Hour {
	var cheapest *Hour
	for _, hour := range d.Hours {
		if cheapest == nil || cheapest.Price.GreaterThan(hour.Price) {
			cheapest = hour
		}
	}
	return cheapest
}

func (d *Day) MostExpensiveHour() *Hour {
	var dearest *Hour
	for _, hour := range d.Hours {
		if dearest == nil || dearest.Price.LessThan(hour.Price) {
			dearest = hour
		}
	}
	return dearest
}

// HourlyStats buckets an hourly series into today and tomorrow relative to
// now in the given display time zone.
type HourlyStats struct {
	Today    *Day
	Tomorrow *Day // nil until tomorrow's prices are published

	hoursByUTC map[time.Time]*Hour
}

func NewHourlyStats(series types.RateSeries, loc *time.Location, now time.Time) *HourlyStats {
	localNow := now.In(loc)
	todayDate := localNow.Format("2006-01-02")
	tomorrowDate := localNow.AddDate(0, 0, 1).Format("2006-01-02")

	s := &HourlyStats{
		Today:      newDay(),
		hoursByUTC: make(map[time.Time]*Hour, len(series)),
	}

	for utc, price := range series {
		hour := &Hour{
			UTC:                      utc,
			Local:                    utc.In(loc),
			Price:                    price,
			ConsecutiveSums:          make(map[int]decimal.Decimal),
			CheapestConsecutiveOrder: make(map[int]int),
		}
		s.hoursByUTC[utc] = hour

		switch hour.Local.Format("2006-01-02") {
		case todayDate:
			s.Today.Hours[utc] = hour
		case tomorrowDate:
			if s.Tomorrow == nil {
				s.Tomorrow = newDay()
			}
			s.Tomorrow.Hours[utc] = hour
		}
	}

	s.sumConsecutiveWindows()
	s.rankDay(s.Today)
	if s.Tomorrow != nil {
		s.rankDay(s.Tomorrow)
	}

	return s
}

func (s *HourlyStats) sumConsecutiveWindows() {
	maxWindow := ConsecutiveHours[len(ConsecutiveHours)-1]
	windows := make(map[int]struct{}, len(ConsecutiveHours))
	for _, w := range ConsecutiveHours {
		windows[w] = struct{}{}
	}

	for base, hour := range s.hoursByUTC {
		sum := decimal.Zero
		for offset := 0; offset < maxWindow; offset++ {
			prev, ok := s.hoursByUTC[base.Add(-time.Duration(offset)*time.Hour)]
			if !ok {
				// Out of range, probably before the start of the series.
				continue
			}
			sum = sum.Add(prev.Price)
			if _, want := windows[offset+1]; want {
				hour.ConsecutiveSums[offset+1] = sum
			}
		}
	}
}

func (s *HourlyStats) rankDay(day *Day) {
	hours := make([]*Hour, 0, len(day.Hours))
	for _, hour := range day.Hours {
		hours = append(hours, hour)
	}

	for _, window := range ConsecutiveHours {
		sumOf := func(h *Hour) decimal.Decimal {
			if sum, ok := h.ConsecutiveSums[window]; ok {
				return sum
			}
			return decimal.Zero
		}
		sort.SliceStable(hours, func(i, j int) bool {
			return sumOf(hours[i]).LessThan(sumOf(hours[j]))
		})
		for i, hour := range hours {
			hour.CheapestConsecutiveOrder[window] = i + 1
		}
	}
}

// HourFor looks up the entry covering t, truncated down to its hour slot.
func (s *HourlyStats) HourFor(t time.Time) (*Hour, error) {
	utc := t.UTC().Truncate(time.Hour)
	hour, ok := s.hoursByUTC[utc]
	if !ok {
		return nil, fmt.Errorf("no hour found in data for %s", t.Format(time.RFC3339))
	}
	return hour, nil
}

// DailyStats holds the one-value-per-day gas series around now. The series
// is keyed by local midnight converted to UTC, same construction as the
// extractor uses.
type DailyStats struct {
	yesterday maybe.Maybe[decimal.Decimal]
	today     maybe.Maybe[decimal.Decimal]
	tomorrow  maybe.Maybe[decimal.Decimal]
}

func NewDailyStats(series types.RateSeries, loc *time.Location, now time.Time) *DailyStats {
	localNow := now.In(loc)

	lookup := func(dayOffset int) maybe.Maybe[decimal.Decimal] {
		day := localNow.AddDate(0, 0, dayOffset)
		midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc).UTC()
		if price, ok := series[midnight]; ok {
			return maybe.Some(price)
		}
		return maybe.None[decimal.Decimal]()
	}

	return &DailyStats{
		yesterday: lookup(-1),
		today:     lookup(0),
		tomorrow:  lookup(1),
	}
}

// Today falls back to yesterday's value while today's has not been
// published yet.
func (d *DailyStats) Today() (decimal.Decimal, error) {
	if d.today.IsValid() {
		return d.today.Value(), nil
	}
	if d.yesterday.IsValid() {
		return d.yesterday.Value(), nil
	}
	return decimal.Zero, fmt.Errorf("no data for today or yesterday")
}

func (d *DailyStats) Tomorrow() maybe.Maybe[decimal.Decimal] {
	return d.tomorrow
}
