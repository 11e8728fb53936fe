package rules

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	market "stock_notifier/internal/domain/entity"
	"stock_notifier/internal/feature/alerts/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func p(s string) decimal.NullDecimal { return market.Price(d(s)) }

func types(alerts []entity.Alert) []entity.AlertType {
	out := make([]entity.AlertType, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, a.Type())
	}
	return out
}

func TestEvaluate_OpenMarket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		current  market.Snapshot
		previous *market.Snapshot
		want     []entity.AlertType
	}{
		{
			name: "open only when nothing else applies",
			current: market.Snapshot{
				Symbol: "AAPL", CurrentPrice: d("150.00"),
				PreviousClosePrice: p("148.00"),
				FiftyDayAverage:    p("120.00"), TwoHundredDayAverage: p("110.00"),
				MarketState: market.MarketStateOpen,
			},
			want: []entity.AlertType{entity.RegularMarketOpen},
		},
		{
			name: "open without any optional field",
			current: market.Snapshot{
				Symbol: "AAPL", CurrentPrice: d("150.00"), MarketState: market.MarketStateOpen,
			},
			want: []entity.AlertType{entity.RegularMarketOpen},
		},
		{
			name: "sma50 crossed with five percent increase",
			current: market.Snapshot{
				Symbol: "AAPL", CurrentPrice: d("150.00"),
				PreviousClosePrice: p("140.00"), FiftyDayAverage: p("145.00"),
				MarketState: market.MarketStateOpen,
			},
			want: []entity.AlertType{entity.RegularMarketOpen, entity.SMA50Crossed, entity.FivePercentIncrease},
		},
		{
			name: "sma200 crossed with fifteen percent increase",
			current: market.Snapshot{
				Symbol: "AAPL", CurrentPrice: d("150.00"),
				PreviousClosePrice: p("130.00"), TwoHundredDayAverage: p("140.00"),
				MarketState: market.MarketStateOpen,
			},
			want: []entity.AlertType{entity.RegularMarketOpen, entity.SMA200Crossed, entity.FifteenPercentIncrease},
		},
		{
			name: "both averages crossed",
			current: market.Snapshot{
				Symbol: "AAPL", CurrentPrice: d("150.00"),
				PreviousClosePrice: p("130.00"),
				FiftyDayAverage:    p("145.00"), TwoHundredDayAverage: p("140.00"),
				MarketState: market.MarketStateOpen,
			},
			want: []entity.AlertType{
				entity.RegularMarketOpen, entity.SMA50Crossed, entity.SMA200Crossed, entity.FifteenPercentIncrease,
			},
		},
		{
			name: "close to both averages from above",
			current: market.Snapshot{
				Symbol: "AAPL", CurrentPrice: d("102.00"),
				PreviousClosePrice: p("103.00"),
				FiftyDayAverage:    p("100.00"), TwoHundredDayAverage: p("98.00"),
				MarketState: market.MarketStateOpen,
			},
			want: []entity.AlertType{entity.RegularMarketOpen, entity.CloseToSMA50, entity.CloseToSMA200},
		},
		{
			name: "close to sma50 from below",
			current: market.Snapshot{
				Symbol: "AAPL", CurrentPrice: d("96.00"),
				PreviousClosePrice: p("97.00"), FiftyDayAverage: p("100.00"),
				MarketState: market.MarketStateOpen,
			},
			want: []entity.AlertType{entity.RegularMarketOpen, entity.CloseToSMA50},
		},
		{
			name: "decrease buckets",
			current: market.Snapshot{
				Symbol: "AAPL", CurrentPrice: d("88.00"),
				PreviousClosePrice: p("100.00"),
				MarketState:        market.MarketStateOpen,
			},
			want: []entity.AlertType{entity.RegularMarketOpen, entity.TenPercentDecrease},
		},
		{
			name: "new 52 week high from previous snapshot",
			current: market.Snapshot{
				Symbol: "AAPL", CurrentPrice: d("230.00"), MarketState: market.MarketStateOpen,
			},
			previous: &market.Snapshot{Symbol: "AAPL", CurrentPrice: d("220.00"), FiftyTwoWeekHigh: p("225.50")},
			want:     []entity.AlertType{entity.RegularMarketOpen, entity.New52WeekHigh},
		},
		{
			name: "new 52 week low from previous snapshot",
			current: market.Snapshot{
				Symbol: "AAPL", CurrentPrice: d("100.00"), OpenPrice: p("105.00"),
				PreviousClosePrice: p("110.00"), MarketState: market.MarketStateOpen,
			},
			previous: &market.Snapshot{Symbol: "AAPL", CurrentPrice: d("120.00"), FiftyTwoWeekLow: p("110.00")},
			want:     []entity.AlertType{entity.RegularMarketOpen, entity.FivePercentDecrease, entity.New52WeekLow},
		},
		{
			name: "equal to 52 week extremes does not qualify",
			current: market.Snapshot{
				Symbol: "AAPL", CurrentPrice: d("110.00"), MarketState: market.MarketStateOpen,
			},
			previous: &market.Snapshot{
				Symbol: "AAPL", CurrentPrice: d("110.00"),
				FiftyTwoWeekHigh: p("110.00"), FiftyTwoWeekLow: p("110.00"),
			},
			want: []entity.AlertType{entity.RegularMarketOpen},
		},
		{
			name: "52 week fields on current snapshot are ignored",
			current: market.Snapshot{
				Symbol: "AAPL", CurrentPrice: d("300.00"),
				FiftyTwoWeekHigh: p("200.00"), MarketState: market.MarketStateOpen,
			},
			want: []entity.AlertType{entity.RegularMarketOpen},
		},
		{
			name: "fixed ordering with every rule firing",
			current: market.Snapshot{
				Symbol: "AAPL", CurrentPrice: d("126.00"),
				PreviousClosePrice: p("100.00"),
				FiftyDayAverage:    p("120.00"), TwoHundredDayAverage: p("125.00"),
				MarketState: market.MarketStateOpen,
			},
			previous: &market.Snapshot{
				Symbol: "AAPL", CurrentPrice: d("100.00"), FiftyTwoWeekHigh: p("125.00"),
			},
			want: []entity.AlertType{
				entity.RegularMarketOpen, entity.SMA50Crossed, entity.SMA200Crossed,
				entity.TwentyPercentIncrease, entity.New52WeekHigh,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Evaluate(tt.current, tt.previous)

			assert.Equal(t, tt.want, types(got))
		})
	}
}

func TestEvaluate_OpenWithAllIndicators(t *testing.T) {
	t.Parallel()

	current := market.Snapshot{
		Symbol: "AAPL", CurrentPrice: d("101"),
		PreviousClosePrice: p("99"), FiftyDayAverage: p("100"),
		MarketState: market.MarketStateOpen,
	}

	got := Evaluate(current, nil)

	assert.Equal(t, []entity.AlertType{entity.RegularMarketOpen, entity.SMA50Crossed}, types(got))
}

func TestEvaluate_MarketOpenUsesOpenPrice(t *testing.T) {
	t.Parallel()

	withOpen := market.Snapshot{
		Symbol: "AAPL", CurrentPrice: d("150.00"), OpenPrice: p("149.75"),
		PreviousClosePrice: p("149.50"), MarketState: market.MarketStateOpen,
	}
	withoutOpen := market.Snapshot{
		Symbol: "AAPL", CurrentPrice: d("150.00"), MarketState: market.MarketStateOpen,
	}

	got := Evaluate(withOpen, nil)
	require.NotEmpty(t, got)
	assert.Contains(t, got[0].Message(), "149.75")
	assert.Contains(t, got[0].Message(), "%")

	got = Evaluate(withoutOpen, nil)
	require.NotEmpty(t, got)
	assert.Contains(t, got[0].Message(), "150")
	assert.NotContains(t, got[0].Message(), "%")
}

func TestEvaluate_PostMarket(t *testing.T) {
	t.Parallel()

	current := market.Snapshot{
		Symbol: "AAPL", CurrentPrice: d("130.00"),
		PreviousClosePrice: p("100.00"), FiftyDayAverage: p("120.00"),
		MarketState: market.MarketStatePost,
	}
	previous := &market.Snapshot{Symbol: "AAPL", CurrentPrice: d("100"), FiftyTwoWeekHigh: p("110")}

	got := Evaluate(current, previous)

	assert.Equal(t, []entity.AlertType{entity.RegularMarketClosed}, types(got))
	assert.Contains(t, got[0].Message(), "+30.00%")
}

func TestEvaluate_OtherStatesYieldNothing(t *testing.T) {
	t.Parallel()

	for _, state := range []market.MarketState{market.MarketStatePre, market.MarketStateClosed, ""} {
		current := market.Snapshot{
			Symbol: "AAPL", CurrentPrice: d("150.00"),
			PreviousClosePrice: p("100.00"), FiftyDayAverage: p("120.00"),
			MarketState: state,
		}
		assert.Empty(t, Evaluate(current, nil), "state %q", state)
	}
}

func TestEvaluate_CrossingThresholdSymmetry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		prev, cur string
		avg       string
		want      bool
	}{
		{name: "crossed above", prev: "99", cur: "101", avg: "100", want: true},
		{name: "lands exactly on average from below", prev: "99", cur: "100", avg: "100", want: true},
		{name: "crossed below", prev: "101", cur: "99", avg: "100", want: true},
		{name: "lands exactly on average from above", prev: "101", cur: "100", avg: "100", want: true},
		{name: "starts on average going up", prev: "100", cur: "101", avg: "100", want: false},
		{name: "starts on average going down", prev: "100", cur: "99", avg: "100", want: false},
		{name: "both above", prev: "150", cur: "160", avg: "100", want: false},
		{name: "both below", prev: "50", cur: "60", avg: "100", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := market.Snapshot{
				Symbol: "AAPL", CurrentPrice: d(tt.cur), PreviousClosePrice: p(tt.prev),
				FiftyDayAverage: p(tt.avg), TwoHundredDayAverage: p(tt.avg),
			}

			_, got50 := crossedAverage(s, s.FiftyDayAverage, entity.NewFiftyDayAverageCrossed)
			_, got200 := crossedAverage(s, s.TwoHundredDayAverage, entity.NewTwoHundredDayAverageCrossed)

			assert.Equal(t, tt.want, got50)
			assert.Equal(t, tt.want, got200)
		})
	}
}

func TestEvaluate_CloseToAverageBand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		prev, cur string
		avg       string
		want      bool
	}{
		{name: "exactly plus five percent", prev: "106", cur: "105", avg: "100", want: true},
		{name: "exactly minus five percent", prev: "94", cur: "95", avg: "100", want: true},
		{name: "just outside band above", prev: "106", cur: "105.01", avg: "100", want: false},
		{name: "just outside band below", prev: "90", cur: "94.99", avg: "100", want: false},
		{name: "opposite sides is a crossing not closeness", prev: "99", cur: "101", avg: "100", want: false},
		{name: "previous close on the average", prev: "100", cur: "101", avg: "100", want: false},
		{name: "current price on the average", prev: "101", cur: "100", avg: "100", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := market.Snapshot{
				Symbol: "AAPL", CurrentPrice: d(tt.cur), PreviousClosePrice: p(tt.prev),
				FiftyDayAverage: p(tt.avg),
			}

			_, got := closeToAverage(s, s.FiftyDayAverage, entity.NewCloseToFiftyDayAverage)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_MissingFieldsAreNotZero(t *testing.T) {
	t.Parallel()

	// With a zero-valued average a present-but-zero reading would count as a
	// crossing; absent fields must not.
	current := market.Snapshot{
		Symbol: "AAPL", CurrentPrice: d("150.00"),
		PreviousClosePrice: p("-1"),
		MarketState:        market.MarketStateOpen,
	}

	got := Evaluate(current, &market.Snapshot{Symbol: "AAPL", CurrentPrice: d("1")})

	for _, a := range got {
		assert.NotEqual(t, entity.SMA50Crossed, a.Type())
		assert.NotEqual(t, entity.SMA200Crossed, a.Type())
		assert.NotEqual(t, entity.New52WeekHigh, a.Type())
		assert.NotEqual(t, entity.New52WeekLow, a.Type())
	}
}

func TestEvaluate_PercentageBucketExclusivity(t *testing.T) {
	t.Parallel()

	percentTypes := map[entity.AlertType]bool{
		entity.FivePercentIncrease: true, entity.TenPercentIncrease: true,
		entity.FifteenPercentIncrease: true, entity.TwentyPercentIncrease: true,
		entity.FivePercentDecrease: true, entity.TenPercentDecrease: true,
		entity.FifteenPercentDecrease: true, entity.TwentyPercentDecrease: true,
	}

	for price := 50; price <= 150; price++ {
		current := market.Snapshot{
			Symbol: "AAPL", CurrentPrice: decimal.NewFromInt(int64(price)),
			PreviousClosePrice: p("100"), MarketState: market.MarketStateOpen,
		}

		count := 0
		for _, a := range Evaluate(current, nil) {
			if percentTypes[a.Type()] {
				count++
			}
		}
		assert.LessOrEqual(t, count, 1, "price %d", price)
	}
}

func TestEvaluate_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	current := market.Snapshot{
		Symbol: "AAPL", CurrentPrice: d("150.00"),
		PreviousClosePrice: p("140.00"), FiftyDayAverage: p("145.00"),
		MarketState: market.MarketStateOpen,
	}
	previous := market.Snapshot{Symbol: "AAPL", CurrentPrice: d("140"), FiftyTwoWeekHigh: p("149")}
	currentCopy, previousCopy := current, previous

	first := Evaluate(current, &previous)
	second := Evaluate(current, &previous)

	assert.Equal(t, currentCopy, current)
	assert.Equal(t, previousCopy, previous)
	assert.Equal(t, types(first), types(second))
}
