package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	market "stock_notifier/internal/domain/entity"
	"stock_notifier/internal/feature/alerts/transport/http/dto"
	"stock_notifier/internal/feature/alerts/usecase"
)

// StatusReader exposes what the running watch has observed.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type StatusReader interface {
	Status() usecase.PollStatus
	SymbolStatus(symbol string) (usecase.SymbolStatus, bool)
}

// StatusHandler serves the watch status endpoints.
type StatusHandler struct {
	reader StatusReader
}

func NewStatusHandler(reader StatusReader) *StatusHandler {
	return &StatusHandler{reader: reader}
}

// Watch returns the poll count, the last poll time and the observed symbols.
func (h *StatusHandler) Watch(c *gin.Context) {
	st := h.reader.Status()
	out := dto.WatchStatus{Polls: st.Polls, Symbols: st.Symbols}
	if out.Symbols == nil {
		out.Symbols = []string{}
	}
	if !st.LastPollAt.IsZero() {
		t := st.LastPollAt
		out.LastPollAt = &t
	}
	c.JSON(http.StatusOK, out)
}

// Symbol returns the last snapshot of one symbol and the alerts delivered for
// it during this watch. Unknown symbols get 404.
func (h *StatusHandler) Symbol(c *gin.Context) {
	st, ok := h.reader.SymbolStatus(c.Param("symbol"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "symbol not observed"})
		return
	}

	delivered := make([]dto.DeliveredAlertItem, 0, len(st.Delivered))
	for _, a := range st.Delivered {
		delivered = append(delivered, dto.DeliveredAlertItem{
			Type:        string(a.Type),
			Message:     a.Message,
			DeliveredAt: a.DeliveredAt,
		})
	}
	c.JSON(http.StatusOK, dto.SymbolStatus{
		Snapshot:   ToSnapshotItem(st.Snapshot),
		ObservedAt: st.ObservedAt,
		Delivered:  delivered,
	})
}

// ToSnapshotItem converts a snapshot to its response form.
func ToSnapshotItem(s market.Snapshot) dto.SnapshotItem {
	return dto.SnapshotItem{
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
}
