package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"quotepanel/internal/feature/quotes/domain"
	"quotepanel/internal/feature/quotes/domain/entity"
	"quotepanel/internal/feature/quotes/transport/view"
)

// QuoteLookup はパネルの状態に影響しない単発のフェッチを行います。
type QuoteLookup interface {
	Intraday(ctx context.Context, symbol string) (entity.FetchState, error)
}

// QuoteHandler は単発のクォート取得を処理します。
type QuoteHandler struct {
	lookup QuoteLookup
}

// NewQuoteHandler は QuoteHandler を生成します。
func NewQuoteHandler(lookup QuoteLookup) *QuoteHandler {
	return &QuoteHandler{lookup: lookup}
}

// GetQuotes は指定シンボルの表示モデルをJSONで返します。
//
// エンドポイント例:
// GET /api/quotes/IBM
func (h *QuoteHandler) GetQuotes(c *gin.Context) {
	st, err := h.lookup.Intraday(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		if errors.Is(err, domain.ErrBlankSymbol) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view.Build(st))
}
