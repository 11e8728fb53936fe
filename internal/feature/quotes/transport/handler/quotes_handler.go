// Package handler はquotesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stock_notifier/internal/domain"
	market "stock_notifier/internal/domain/entity"
	"stock_notifier/internal/feature/quotes/transport/http/dto"
	"stock_notifier/internal/feature/quotes/usecase"
)

// QuotesUsecase は株価照会のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type QuotesUsecase interface {
	GetQuote(ctx context.Context, symbol string) (market.Snapshot, error)
	GetQuotes(ctx context.Context, symbols []string) ([]market.Snapshot, error)
}

// QuotesHandler は株価照会のHTTPリクエストを処理します。
type QuotesHandler struct {
	uc QuotesUsecase
}

// NewQuotesHandler は新しい QuotesHandler を作成します。
func NewQuotesHandler(uc QuotesUsecase) *QuotesHandler {
	return &QuotesHandler{uc: uc}
}

// GetQuote は1銘柄の現在値を返します。
//
// エンドポイント例:
// GET /quotes/AAPL
func (h *QuotesHandler) GetQuote(c *gin.Context) {
	s, err := h.uc.GetQuote(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		c.JSON(statusFor(err), dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, toQuoteItem(s))
}

// GetQuotes はカンマ区切りで指定された銘柄の現在値を返します。
// 取得できなかった銘柄は結果に含まれません。
//
// エンドポイント例:
// GET /quotes?symbols=AAPL,MSFT
func (h *QuotesHandler) GetQuotes(c *gin.Context) {
	symbols := strings.Split(c.Query("symbols"), ",")

	snapshots, err := h.uc.GetQuotes(c.Request.Context(), symbols)
	if err != nil {
		c.JSON(statusFor(err), dto.ErrorResponse{Error: err.Error()})
		return
	}

	out := make([]dto.QuoteItem, 0, len(snapshots))
	for _, s := range snapshots {
		out = append(out, toQuoteItem(s))
	}
	c.JSON(http.StatusOK, out)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidSymbol):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSymbolNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func toQuoteItem(s market.Snapshot) dto.QuoteItem {
	item := dto.QuoteItem{
		Symbol:               s.Symbol,
		Name:                 s.Name,
		Currency:             s.Currency,
		CurrentPrice:         s.CurrentPrice,
		PreviousClosePrice:   s.PreviousClosePrice,
		OpenPrice:            s.OpenPrice,
		DayHigh:              s.DayHigh,
		DayLow:               s.DayLow,
		FiftyDayAverage:      s.FiftyDayAverage,
		TwoHundredDayAverage: s.TwoHundredDayAverage,
		FiftyTwoWeekHigh:     s.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:      s.FiftyTwoWeekLow,
		MarketState:          string(s.MarketState),
		PriceDelayInMinutes:  s.PriceDelayInMinutes,
	}
	if pct, ok := s.ChangeFromPreviousClose(s.CurrentPrice); ok {
		item.ChangePercent = market.Price(pct.Round(2))
	}
	return item
}
