package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	quoteshandler "quotepanel/internal/feature/quotes/transport/handler"
	"quotepanel/internal/feature/quotes/transport/web"
)

// NewRouter registers the page, the JSON API and the health endpoint.
func NewRouter(panel *quoteshandler.PanelHandler, quotes *quoteshandler.QuoteHandler,
	activity *quoteshandler.ActivityHandler, health gin.HandlerFunc, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(web.Templates())

	corsCfg := cors.Config{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	if len(corsOrigins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
	}
	// プリフライトは未登録ルートにも届くようエンジン全体に適用
	r.Use(cors.New(corsCfg))

	// 導通確認用
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)

	// サーバー描画のパネル
	r.GET("/", panel.Page)
	r.POST("/symbol", panel.Commit)
	r.POST("/retry", panel.Retry)

	api := r.Group("/api")
	{
		api.GET("/panel", panel.GetPanel)
		api.POST("/panel/symbol", panel.CommitJSON)
		api.POST("/panel/retry", panel.RetryJSON)
		api.GET("/quotes/:symbol", quotes.GetQuotes)
		api.GET("/symbols/recent", activity.RecentSymbols)
		api.GET("/fetches", activity.Fetches)
	}

	return r
}
