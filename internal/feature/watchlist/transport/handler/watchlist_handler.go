package handler

import (
	"context"
	"errors"
	"net/http"
	"stock_notifier/internal/feature/watchlist/domain/entity"
	"stock_notifier/internal/feature/watchlist/transport/http/dto"
	"stock_notifier/internal/feature/watchlist/usecase"

	"github.com/gin-gonic/gin"
)

// WatchlistUsecase はウォッチリストに関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type WatchlistUsecase interface {
	ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error)
	Watch(ctx context.Context, code, name string, sortKey int) (entity.Symbol, error)
	Unwatch(ctx context.Context, code string) error
}

// WatchlistHandler はウォッチリストに関するHTTPリクエストを処理します。
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler は新しい WatchlistHandler を作成します。
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

// List は監視中の銘柄の一覧を返すAPIです。
// Usecaseでエラーが発生した場合は500 Internal Server Errorを返します。
func (h *WatchlistHandler) List(c *gin.Context) {
	symbols, err := h.uc.ListActiveSymbols(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, dto.SymbolItem{Code: s.Code, Name: s.Name})
	}
	c.JSON(http.StatusOK, out)
}

// Watch は銘柄をウォッチリストに追加するAPIです。
func (h *WatchlistHandler) Watch(c *gin.Context) {
	var req dto.WatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, err := h.uc.Watch(c.Request.Context(), req.Code, req.Name, req.SortKey)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.SymbolItem{Code: s.Code, Name: s.Name})
}

// Unwatch は銘柄をウォッチリストから外すAPIです。
func (h *WatchlistHandler) Unwatch(c *gin.Context) {
	err := h.uc.Unwatch(c.Request.Context(), c.Param("code"))
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, usecase.ErrInvalidCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrNotWatched):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
