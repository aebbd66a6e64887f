// Package handler はquotesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"quotepanel/internal/feature/quotes/domain/entity"
	"quotepanel/internal/feature/quotes/transport/http/dto"
	"quotepanel/internal/feature/quotes/transport/view"
	"quotepanel/internal/feature/quotes/transport/web"
)

// pageRecentLimit はページに表示する最近のシンボル数です。
const pageRecentLimit = 5

// PanelController はパネルの状態と再試行を扱うインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PanelController interface {
	State() entity.FetchState
	Retry() bool
}

// DraftInput は入力欄の下書きと確定を扱うインターフェースです。
type DraftInput interface {
	SetDraft(s string)
	Draft() string
	Commit() bool
}

// RecentSymbols は最近確定されたシンボルを返します。
type RecentSymbols interface {
	Recent(ctx context.Context, n int) ([]string, error)
}

// PanelHandler はパネルのページとJSON APIを処理します。
type PanelHandler struct {
	panel   PanelController
	input   DraftInput
	history RecentSymbols
}

// NewPanelHandler は PanelHandler を生成します。history は nil でも構いません。
func NewPanelHandler(panel PanelController, input DraftInput, history RecentSymbols) *PanelHandler {
	return &PanelHandler{panel: panel, input: input, history: history}
}

// Page はパネルのHTMLページを返します。
//
// GET /
func (h *PanelHandler) Page(c *gin.Context) {
	// 読み込み中はメタリフレッシュで再描画するためキャッシュさせない
	c.Header("Cache-Control", "no-store")
	p := view.Build(h.panel.State())
	c.HTML(http.StatusOK, web.PageTemplate, web.NewPage(p, h.input.Draft(), h.recent(c.Request.Context(), pageRecentLimit)))
}

// Commit はフォームから送信されたシンボルを確定し、ページへリダイレクトします。
//
// POST /symbol
func (h *PanelHandler) Commit(c *gin.Context) {
	h.input.SetDraft(c.PostForm("symbol"))
	h.input.Commit()
	c.Redirect(http.StatusSeeOther, "/")
}

// Retry は失敗したフェッチを再試行し、ページへリダイレクトします。
//
// POST /retry
func (h *PanelHandler) Retry(c *gin.Context) {
	h.panel.Retry()
	c.Redirect(http.StatusSeeOther, "/")
}

// GetPanel は現在の表示モデルをJSONで返します。
//
// GET /api/panel
func (h *PanelHandler) GetPanel(c *gin.Context) {
	c.JSON(http.StatusOK, view.Build(h.panel.State()))
}

// CommitJSON はJSONで送信されたシンボルを確定します。
// 空のシンボルはエラーではなく accepted=false として返します。
//
// POST /api/panel/symbol
func (h *PanelHandler) CommitJSON(c *gin.Context) {
	var req dto.CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.input.SetDraft(req.Symbol)
	accepted := h.input.Commit()
	c.JSON(http.StatusOK, dto.CommitResponse{Accepted: accepted, Panel: view.Build(h.panel.State())})
}

// RetryJSON は失敗状態のパネルで再試行を開始します。
//
// POST /api/panel/retry
func (h *PanelHandler) RetryJSON(c *gin.Context) {
	if !h.panel.Retry() {
		c.JSON(http.StatusConflict, gin.H{"error": "panel is not in a failed state"})
		return
	}
	c.JSON(http.StatusAccepted, view.Build(h.panel.State()))
}

func (h *PanelHandler) recent(ctx context.Context, n int) []string {
	if h.history == nil {
		return nil
	}
	symbols, err := h.history.Recent(ctx, n)
	if err != nil {
		slog.Warn("failed to load recent symbols", "error", err)
		return nil
	}
	return symbols
}
