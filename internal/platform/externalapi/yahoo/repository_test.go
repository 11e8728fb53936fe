package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_notifier/internal/domain"
	market "stock_notifier/internal/domain/entity"
)

type mockLimiter struct {
	calls int
	err   error
}

func (m *mockLimiter) Wait(ctx context.Context) error {
	m.calls++
	return m.err
}

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v7/finance/quote", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewYahooMarket_Defaults(t *testing.T) {
	t.Parallel()

	m := NewYahooMarket(Config{}, &http.Client{}, nil)

	assert.Equal(t, DefaultBaseURL, m.cfg.BaseURL)
	assert.Equal(t, 10*time.Second, m.cfg.Timeout)
	assert.NotEmpty(t, m.cfg.UserAgent)
	assert.NotNil(t, m.limiter)
}

func TestYahooMarket_FetchOne_Success(t *testing.T) {
	t.Parallel()

	var gotSymbol string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSymbol = r.URL.Query().Get("symbols")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"quoteResponse": {
				"result": [{
					"symbol": "AAPL",
					"shortName": "Apple",
					"longName": "Apple Inc.",
					"currency": "USD",
					"marketState": "REGULAR",
					"exchangeDataDelayedBy": 15,
					"regularMarketPrice": 150.25,
					"regularMarketPreviousClose": 148.5,
					"regularMarketOpen": 149,
					"regularMarketDayHigh": 151,
					"regularMarketDayLow": 147.75,
					"fiftyDayAverage": 145.1,
					"twoHundredDayAverage": 140.2,
					"fiftyTwoWeekHigh": 199.62,
					"fiftyTwoWeekLow": 124.17
				}],
				"error": null
			}
		}`))
	}))
	defer server.Close()

	limiter := &mockLimiter{}
	m := NewYahooMarket(Config{BaseURL: server.URL}, server.Client(), limiter)

	s, err := m.FetchOne(context.Background(), " aapl ")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", gotSymbol)
	assert.Equal(t, 1, limiter.calls)
	assert.Equal(t, "AAPL", s.Symbol)
	assert.Equal(t, "Apple Inc.", s.Name)
	assert.Equal(t, "USD", s.Currency)
	assert.Equal(t, market.MarketStateOpen, s.MarketState)
	assert.Equal(t, 15, s.PriceDelayInMinutes)
	assert.Equal(t, "150.25", s.CurrentPrice.String())
	require.True(t, s.PreviousClosePrice.Valid)
	assert.Equal(t, "148.5", s.PreviousClosePrice.Decimal.String())
	assert.True(t, s.OpenPrice.Valid)
	assert.True(t, s.FiftyDayAverage.Valid)
	assert.Equal(t, "140.2", s.TwoHundredDayAverage.Decimal.String())
	assert.Equal(t, "124.17", s.FiftyTwoWeekLow.Decimal.String())
}

func TestYahooMarket_FetchOne_PriceFallbackAndMissingFields(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, http.StatusOK, `{"quoteResponse":{"result":[{
		"symbol": "MSFT",
		"shortName": "Microsoft",
		"marketState": "CLOSED",
		"regularMarketPreviousClose": 410.5,
		"fiftyDayAverage": null
	}]}}`)

	m := NewYahooMarket(Config{BaseURL: server.URL}, server.Client(), &mockLimiter{})
	s, err := m.FetchOne(context.Background(), "MSFT")
	require.NoError(t, err)

	assert.Equal(t, "410.5", s.CurrentPrice.String(), "previous close stands in for the price")
	assert.Equal(t, "Microsoft", s.Name)
	assert.Equal(t, market.MarketStateClosed, s.MarketState)
	assert.False(t, s.FiftyDayAverage.Valid)
	assert.False(t, s.OpenPrice.Valid)
	assert.False(t, s.HasDelay())
}

func TestYahooMarket_FetchOne_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:    "empty result",
			status:  http.StatusOK,
			body:    `{"quoteResponse":{"result":[],"error":null}}`,
			wantErr: domain.ErrSymbolNotFound,
		},
		{
			name:    "http 404",
			status:  http.StatusNotFound,
			body:    `{}`,
			wantErr: domain.ErrSymbolNotFound,
		},
		{
			name:    "no price at all",
			status:  http.StatusOK,
			body:    `{"quoteResponse":{"result":[{"symbol":"XYZ","marketState":"REGULAR"}]}}`,
			wantErr: domain.ErrIncompleteQuote,
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `oops`,
		},
		{
			name:   "api error",
			status: http.StatusOK,
			body:   `{"quoteResponse":{"result":null,"error":{"code":"Bad Request","description":"Missing symbols"}}}`,
		},
		{
			name:   "invalid json",
			status: http.StatusOK,
			body:   `not json`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newTestServer(t, tt.status, tt.body)
			m := NewYahooMarket(Config{BaseURL: server.URL}, server.Client(), &mockLimiter{})

			_, err := m.FetchOne(context.Background(), "XYZ")
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestYahooMarket_FetchOne_LimiterError(t *testing.T) {
	t.Parallel()

	limitErr := errors.New("rate: context canceled")
	m := NewYahooMarket(Config{BaseURL: "http://127.0.0.1:0"}, &http.Client{}, &mockLimiter{err: limitErr})

	_, err := m.FetchOne(context.Background(), "AAPL")
	assert.ErrorIs(t, err, limitErr)
}

func TestMapMarketState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want market.MarketState
	}{
		{"REGULAR", market.MarketStateOpen},
		{"PRE", market.MarketStatePre},
		{"PREPRE", market.MarketStatePre},
		{"POST", market.MarketStatePost},
		{"POSTPOST", market.MarketStatePost},
		{"CLOSED", market.MarketStateClosed},
		{"", ""},
		{"HALTED", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, mapMarketState("AAPL", tt.in), tt.in)
	}
}
