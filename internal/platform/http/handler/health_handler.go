// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Check は依存先（DB、Redisなど）の疎通確認です。
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

// Health は /healthz エンドポイントのハンドラーを返します。
// いずれかの Check が失敗した場合は 503 を返し、キャッシュを防止します。
func Health(checks ...Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		status := http.StatusOK
		failed := gin.H{}
		for _, chk := range checks {
			if err := chk.Probe(c.Request.Context()); err != nil {
				status = http.StatusServiceUnavailable
				failed[chk.Name] = err.Error()
			}
		}

		if c.Request.Method == http.MethodHead {
			c.Status(status)
			return
		}
		if status != http.StatusOK {
			c.JSON(status, gin.H{"status": "unavailable", "checks": failed})
			return
		}
		c.JSON(status, gin.H{"status": "ok"})
	}
}
