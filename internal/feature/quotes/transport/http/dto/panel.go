package dto

import (
	"quotepanel/internal/feature/quotes/domain/entity"
	"quotepanel/internal/feature/quotes/transport/view"
)

// CommitRequest はシンボル確定リクエストのDTOです。
type CommitRequest struct {
	Symbol string `json:"symbol"`
}

// CommitResponse はシンボル確定の結果です。Accepted が false の場合、パネルは変化していません。
type CommitResponse struct {
	Accepted bool       `json:"accepted"`
	Panel    view.Panel `json:"panel"`
}

// RecentSymbolsResponse は最近確定されたシンボルの一覧です。
type RecentSymbolsResponse struct {
	Symbols []string `json:"symbols"`
}

// FetchesResponse はフェッチ履歴の一覧です。
type FetchesResponse struct {
	Fetches []entity.FetchRecord `json:"fetches"`
}
