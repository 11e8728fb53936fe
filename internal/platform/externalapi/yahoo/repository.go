package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"stock_notifier/internal/domain"
	market "stock_notifier/internal/domain/entity"
	"stock_notifier/internal/feature/alerts/usecase"
	"stock_notifier/internal/platform/externalapi/yahoo/dto"
	"stock_notifier/internal/shared/ratelimiter"
)

// YahooMarket はYahoo Finance外部APIから株価スナップショットを取得するPriceSource実装です。
type YahooMarket struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// YahooMarketがPriceSourceを実装していることをコンパイル時に検証します。
var _ usecase.PriceSource = (*YahooMarket)(nil)

// NewYahooMarket は指定された設定とHTTPクライアントでYahooMarketの新しいインスタンスを生成します。
// limiter が nil の場合は呼び出し頻度を制限しません。
func NewYahooMarket(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *YahooMarket {
	if limiter == nil {
		limiter = ratelimiter.NewRateLimiter(0, 0)
	}
	return &YahooMarket{cfg: cfg.withDefaults(), client: client, limiter: limiter}
}

// FetchOne はYahoo Finance APIから1銘柄のクォートを取得し、Snapshotとして返します。
func (y *YahooMarket) FetchOne(ctx context.Context, symbol string) (market.Snapshot, error) {
	symbol = market.NormalizeSymbol(symbol)
	if err := y.limiter.Wait(ctx); err != nil {
		return market.Snapshot{}, err
	}

	q := url.Values{}
	q.Set("symbols", symbol)
	u := fmt.Sprintf("%s/v7/finance/quote?%s", y.cfg.BaseURL, q.Encode())

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return market.Snapshot{}, err
	}
	req.Header.Set("User-Agent", y.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	// リクエストを実行
	res, err := y.client.Do(req)
	if err != nil {
		return market.Snapshot{}, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode == http.StatusNotFound {
		return market.Snapshot{}, fmt.Errorf("%w: %s", domain.ErrSymbolNotFound, symbol)
	}
	if res.StatusCode >= 400 {
		return market.Snapshot{}, fmt.Errorf("yahoo http %d", res.StatusCode)
	}

	// JSONレスポンスをDTOにデコード
	var body dto.QuoteResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return market.Snapshot{}, err
	}
	if e := body.QuoteResponse.Error; e != nil {
		return market.Snapshot{}, fmt.Errorf("yahoo: %s: %s", e.Code, e.Description)
	}
	if len(body.QuoteResponse.Result) == 0 {
		return market.Snapshot{}, fmt.Errorf("%w: %s", domain.ErrSymbolNotFound, symbol)
	}

	return toSnapshot(symbol, body.QuoteResponse.Result[0])
}

// toSnapshot はDTOをドメインエンティティに変換します。
func toSnapshot(requested string, q dto.Quote) (market.Snapshot, error) {
	symbol := market.NormalizeSymbol(q.Symbol)
	if symbol == "" {
		symbol = requested
	}

	var current decimal.Decimal
	switch {
	case q.RegularMarketPrice.Valid:
		current = q.RegularMarketPrice.Decimal
	case q.RegularMarketPreviousClose.Valid:
		current = q.RegularMarketPreviousClose.Decimal
	default:
		return market.Snapshot{}, fmt.Errorf("%w: %s has no price", domain.ErrIncompleteQuote, symbol)
	}

	name := q.LongName
	if name == "" {
		name = q.ShortName
	}

	return market.Snapshot{
		Symbol:               symbol,
		CurrentPrice:         current,
		Name:                 name,
		Currency:             q.Currency,
		PreviousClosePrice:   q.RegularMarketPreviousClose,
		OpenPrice:            q.RegularMarketOpen,
		DayHigh:              q.RegularMarketDayHigh,
		DayLow:               q.RegularMarketDayLow,
		FiftyDayAverage:      q.FiftyDayAverage,
		TwoHundredDayAverage: q.TwoHundredDayAverage,
		FiftyTwoWeekHigh:     q.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:      q.FiftyTwoWeekLow,
		MarketState:          mapMarketState(symbol, q.MarketState),
		PriceDelayInMinutes:  q.ExchangeDataDelayedBy,
	}, nil
}

// mapMarketState はYahooのmarketStateをドメインの状態に変換します。
// 不明な値は状態なしとして扱います。
func mapMarketState(symbol, state string) market.MarketState {
	switch state {
	case "REGULAR":
		return market.MarketStateOpen
	case "PRE", "PREPRE":
		return market.MarketStatePre
	case "POST", "POSTPOST":
		return market.MarketStatePost
	case "CLOSED":
		return market.MarketStateClosed
	case "":
		return ""
	default:
		slog.Warn("unknown market state", "symbol", symbol, "state", state)
		return ""
	}
}
