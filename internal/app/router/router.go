package router

import (
	"github.com/gin-gonic/gin"

	alertshandler "stock_notifier/internal/feature/alerts/transport/handler"
	quoteshandler "stock_notifier/internal/feature/quotes/transport/handler"
	watchlisthandler "stock_notifier/internal/feature/watchlist/transport/handler"
)

// Handlers are the route groups to mount. Nil groups are skipped, so the
// monitor's status server and the API server share one router.
type Handlers struct {
	Health    gin.HandlerFunc
	Quotes    *quoteshandler.QuotesHandler
	Watchlist *watchlisthandler.WatchlistHandler
	Status    *alertshandler.StatusHandler

	// WriteAuth guards the watchlist writes when set.
	WriteAuth gin.HandlerFunc
}

func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	if h.Health != nil {
		r.GET("/healthz", h.Health)
		r.HEAD("/healthz", h.Health)
		r.OPTIONS("/healthz", h.Health)
	}

	// その場での株価照会
	if h.Quotes != nil {
		r.GET("/quotes", h.Quotes.GetQuotes)
		r.GET("/quotes/:symbol", h.Quotes.GetQuote)
	}

	// 監視銘柄の管理
	if h.Watchlist != nil {
		r.GET("/watchlist", h.Watchlist.List)

		// 書き込みは認証必須（WriteAuth 設定時）
		write := r.Group("/watchlist")
		if h.WriteAuth != nil {
			write.Use(h.WriteAuth)
		}
		write.POST("", h.Watchlist.Watch)
		write.DELETE("/:code", h.Watchlist.Unwatch)
	}

	// 実行中の監視の状態
	if h.Status != nil {
		r.GET("/watch", h.Status.Watch)
		r.GET("/watch/:symbol", h.Status.Symbol)
	}

	return r
}
