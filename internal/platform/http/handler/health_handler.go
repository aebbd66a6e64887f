// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusFunc は現在のパネル状態（"loading", "failed" など）を返します。
type StatusFunc func() string

// NewHealth は /healthz エンドポイントのハンドラーを生成します。
// status が nil でなければ、その戻り値を "panel" としてレスポンスに含めます。
// キャッシュは常に無効化されます。
func NewHealth(status StatusFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		switch c.Request.Method {
		case http.MethodHead:
			c.Status(http.StatusOK)
		case http.MethodOptions:
			c.Status(http.StatusNoContent)
		default:
			body := gin.H{"status": "ok"}
			if status != nil {
				body["panel"] = status()
			}
			c.JSON(http.StatusOK, body)
		}
	}
}
