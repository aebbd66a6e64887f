package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotepanel/internal/feature/quotes/domain/entity"
	"quotepanel/internal/feature/quotes/transport/handler"
	"quotepanel/internal/feature/quotes/transport/http/dto"
)

// mockJournal はFetchListerのモック実装です。
type mockJournal struct {
	ListFunc func(ctx context.Context, limit int) ([]entity.FetchRecord, error)
}

func (m *mockJournal) List(ctx context.Context, limit int) ([]entity.FetchRecord, error) {
	return m.ListFunc(ctx, limit)
}

func setupActivityRouter(recent handler.RecentSymbols, journal handler.FetchLister) *gin.Engine {
	h := handler.NewActivityHandler(recent, journal)
	r := gin.New()
	r.GET("/api/symbols/recent", h.RecentSymbols)
	r.GET("/api/fetches", h.Fetches)
	return r
}

func TestActivityHandler_RecentSymbols(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		url            string
		wantN          int
		symbols        []string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{"default limit", "/api/symbols/recent", 10, []string{"MSFT", "IBM"}, nil, http.StatusOK, `{"symbols":["MSFT","IBM"]}`},
		{"explicit limit", "/api/symbols/recent?n=1", 1, []string{"MSFT"}, nil, http.StatusOK, `{"symbols":["MSFT"]}`},
		{"invalid limit uses default", "/api/symbols/recent?n=abc", 10, nil, nil, http.StatusOK, `{"symbols":[]}`},
		{"history error", "/api/symbols/recent", 10, nil, errors.New("redis down"), http.StatusInternalServerError, `{"error":"failed to load recent symbols"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			recent := &mockRecent{RecentFunc: func(ctx context.Context, n int) ([]string, error) {
				assert.Equal(t, tt.wantN, n)
				return tt.symbols, tt.err
			}}
			r := setupActivityRouter(recent, nil)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestActivityHandler_Fetches(t *testing.T) {
	t.Parallel()

	started := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		url            string
		wantLimit      int
		records        []entity.FetchRecord
		err            error
		expectedStatus int
		expectedLen    int
	}{
		{
			name:      "default limit",
			url:       "/api/fetches",
			wantLimit: 50,
			records: []entity.FetchRecord{
				{ID: "c2", Symbol: "ZZZZ", Outcome: "empty", StartedAt: started.Add(time.Minute)},
				{ID: "c1", Symbol: "IBM", Outcome: "populated", Records: 100, StartedAt: started},
			},
			expectedStatus: http.StatusOK,
			expectedLen:    2,
		},
		{
			name:           "explicit limit",
			url:            "/api/fetches?limit=5",
			wantLimit:      5,
			records:        nil,
			expectedStatus: http.StatusOK,
			expectedLen:    0,
		},
		{
			name:           "negative limit uses default",
			url:            "/api/fetches?limit=-3",
			wantLimit:      50,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "journal error",
			url:            "/api/fetches",
			wantLimit:      50,
			err:            errors.New("db locked"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			journal := &mockJournal{ListFunc: func(ctx context.Context, limit int) ([]entity.FetchRecord, error) {
				assert.Equal(t, tt.wantLimit, limit)
				return tt.records, tt.err
			}}
			r := setupActivityRouter(nil, journal)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}
			var resp dto.FetchesResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotNil(t, resp.Fetches)
			assert.Len(t, resp.Fetches, tt.expectedLen)
			if tt.expectedLen > 0 {
				assert.Equal(t, "c2", resp.Fetches[0].ID)
			}
		})
	}
}
