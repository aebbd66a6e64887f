package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotepanel/internal/app/router"
	"quotepanel/internal/feature/quotes/adapters"
	quoteshandler "quotepanel/internal/feature/quotes/transport/handler"
	"quotepanel/internal/feature/quotes/transport/http/dto"
	"quotepanel/internal/feature/quotes/transport/view"
	"quotepanel/internal/feature/quotes/usecase"
	"quotepanel/internal/platform/db"
	"quotepanel/internal/platform/externalapi/alphavantage"
	"quotepanel/internal/platform/http/handler"
)

const ibmBody = `{
	"Meta Data": {"2. Symbol": "IBM"},
	"Time Series (5min)": {
		"2024-01-05 19:55:00": {"1. open": "159.1500", "2. high": "159.2000", "3. low": "159.1000", "4. close": "159.1600", "5. volume": "2512"},
		"2024-01-05 19:50:00": {"1. open": "159.1200", "2. high": "159.1500", "3. low": "159.1000", "4. close": "159.1500", "5. volume": "121"},
		"2024-01-05 19:45:00": {"1. open": "159.1000", "2. high": "159.1300", "3. low": "159.0800", "4. close": "159.1200", "5. volume": "893"}
	}
}`

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type harness struct {
	engine *gin.Engine
	panel  *usecase.Panel
}

func setup(t *testing.T) *harness {
	t.Helper()

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("symbol") {
		case "IBM":
			_, _ = w.Write([]byte(ibmBody))
		default:
			_, _ = w.Write([]byte(`{"Error Message": "Invalid API call."}`))
		}
	}))
	t.Cleanup(provider.Close)

	gdb, err := db.Open(db.Config{})
	require.NoError(t, err)

	market := alphavantage.NewAlphaVantageMarket(alphavantage.Config{BaseURL: provider.URL}, provider.Client())
	journal := adapters.NewFetchJournal(gdb)
	history := adapters.NewMemoryHistory(5)
	panel := usecase.NewPanel(usecase.PanelConfig{FetchTimeout: 2 * time.Second}, market,
		usecase.WithJournal(journal), usecase.WithHistory(history))
	t.Cleanup(panel.Close)
	input := usecase.NewInput(panel)

	engine := router.NewRouter(
		quoteshandler.NewPanelHandler(panel, input, history),
		quoteshandler.NewQuoteHandler(usecase.NewLookup(market, time.Second)),
		quoteshandler.NewActivityHandler(history, journal),
		handler.NewHealth(func() string { return panel.State().Status.String() }),
		[]string{"http://localhost:3000"},
	)
	return &harness{engine: engine, panel: panel}
}

func (h *harness) do(t *testing.T, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)
	return w
}

func (h *harness) panelView(t *testing.T) view.Panel {
	t.Helper()
	w := h.do(t, http.MethodGet, "/api/panel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var p view.Panel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

func (h *harness) waitForBranch(t *testing.T, symbol string, branch view.Branch) view.Panel {
	t.Helper()
	var p view.Panel
	require.Eventually(t, func() bool {
		p = h.panelView(t)
		return p.Symbol == symbol && p.Branch == branch
	}, 3*time.Second, 10*time.Millisecond, "panel never showed %s for %s", branch, symbol)
	return p
}

func TestRouter_PanelScenario(t *testing.T) {
	h := setup(t)

	// 起動時は IBM を取得
	h.panel.Start()
	p := h.waitForBranch(t, "IBM", view.BranchTable)
	assert.Equal(t, view.Columns, p.Columns)
	require.Len(t, p.Rows, 3)
	assert.Equal(t, "2024-01-05 19:55:00", p.Rows[0].Time)
	assert.Equal(t, []string{"2024-01-05 19:55:00", "159.1500", "159.2000", "159.1000", "159.1600", "2512"}, p.Rows[0].Cells())
	assert.Equal(t, "2024-01-05 19:45:00", p.Rows[2].Time)

	// 空のシンボルは何も変えない
	w := h.do(t, http.MethodPost, "/api/panel/symbol", []byte(`{"symbol":""}`))
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.CommitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Accepted)
	assert.Equal(t, "IBM", resp.Panel.Symbol)
	assert.Equal(t, view.BranchTable, resp.Panel.Branch)

	// 未知のシンボルはデータなし
	w = h.do(t, http.MethodPost, "/api/panel/symbol", []byte(`{"symbol":"ZZZZ"}`))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Accepted)

	p = h.waitForBranch(t, "ZZZZ", view.BranchNoData)
	assert.Equal(t, usecase.NoDataNotice, p.Notice)
	assert.Empty(t, p.Rows)

	// 再試行は失敗状態でのみ受け付ける
	w = h.do(t, http.MethodPost, "/api/panel/retry", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// 履歴
	w = h.do(t, http.MethodGet, "/api/symbols/recent", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"symbols":["ZZZZ","IBM"]}`, w.Body.String())

	require.Eventually(t, func() bool {
		w := h.do(t, http.MethodGet, "/api/fetches", nil)
		var fr dto.FetchesResponse
		return json.Unmarshal(w.Body.Bytes(), &fr) == nil && len(fr.Fetches) == 2
	}, 3*time.Second, 10*time.Millisecond)

	// ヘルスチェックはパネル状態を含む
	w = h.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","panel":"empty"}`, w.Body.String())

	// HTML ページ
	w = h.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), view.Title)
	assert.Contains(t, w.Body.String(), `data-branch="no_data"`)
}

func TestRouter_QuoteLookup(t *testing.T) {
	h := setup(t)

	w := h.do(t, http.MethodGet, "/api/quotes/IBM", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var p view.Panel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, view.BranchTable, p.Branch)
	assert.Len(t, p.Rows, 3)

	// 単発取得はパネルに影響しない
	assert.Equal(t, "idle", h.panel.State().Status.String())
}

func TestRouter_CORS(t *testing.T) {
	h := setup(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/panel", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
