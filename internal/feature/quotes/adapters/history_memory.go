package adapters

import (
	"context"
	"sync"

	"quotepanel/internal/feature/quotes/usecase"
)

// DefaultHistorySize は記憶する最近のシンボル数の既定値です。
const DefaultHistorySize = 10

type memoryHistory struct {
	mu      sync.Mutex
	size    int
	symbols []string
}

var _ usecase.SymbolHistory = (*memoryHistory)(nil)

// NewMemoryHistory は Redis が使えない場合のプロセス内シンボル履歴を生成します。
func NewMemoryHistory(size int) *memoryHistory {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &memoryHistory{size: size}
}

// Push は symbol を先頭に移動し、上限を超えた古い要素を捨てます。
func (h *memoryHistory) Push(_ context.Context, symbol string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	next := make([]string, 0, h.size)
	next = append(next, symbol)
	for _, s := range h.symbols {
		if s == symbol {
			continue
		}
		if len(next) == h.size {
			break
		}
		next = append(next, s)
	}
	h.symbols = next
	return nil
}

// Recent は新しい順に最大 n 件を返します。n <= 0 なら全件です。
func (h *memoryHistory) Recent(_ context.Context, n int) ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n <= 0 || n > len(h.symbols) {
		n = len(h.symbols)
	}
	out := make([]string, n)
	copy(out, h.symbols[:n])
	return out, nil
}
