package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quotepanel/internal/feature/quotes/domain/entity"
	"quotepanel/internal/feature/quotes/transport/http/dto"
)

const (
	defaultRecentLimit  = 10
	defaultFetchesLimit = 50
)

// FetchLister はフェッチ履歴を新しい順に返します。
type FetchLister interface {
	List(ctx context.Context, limit int) ([]entity.FetchRecord, error)
}

// ActivityHandler は最近のシンボルとフェッチ履歴を処理します。
type ActivityHandler struct {
	history RecentSymbols
	journal FetchLister
}

// NewActivityHandler は ActivityHandler を生成します。
func NewActivityHandler(history RecentSymbols, journal FetchLister) *ActivityHandler {
	return &ActivityHandler{history: history, journal: journal}
}

// RecentSymbols は最近確定されたシンボルを返します。
//
// GET /api/symbols/recent?n=10
func (h *ActivityHandler) RecentSymbols(c *gin.Context) {
	n := queryInt(c, "n", defaultRecentLimit)
	symbols, err := h.history.Recent(c.Request.Context(), n)
	if err != nil {
		slog.Error("failed to load recent symbols", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load recent symbols"})
		return
	}
	if symbols == nil {
		symbols = []string{}
	}
	c.JSON(http.StatusOK, dto.RecentSymbolsResponse{Symbols: symbols})
}

// Fetches はフェッチ履歴を返します。
//
// GET /api/fetches?limit=50
func (h *ActivityHandler) Fetches(c *gin.Context) {
	limit := queryInt(c, "limit", defaultFetchesLimit)
	records, err := h.journal.List(c.Request.Context(), limit)
	if err != nil {
		slog.Error("failed to list fetch records", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list fetch records"})
		return
	}
	if records == nil {
		records = []entity.FetchRecord{}
	}
	c.JSON(http.StatusOK, dto.FetchesResponse{Fetches: records})
}

// queryInt は正の整数クエリを読み取り、不正または未指定なら def を返します。
func queryInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
