package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quotepanel/internal/feature/quotes/usecase"
)

// mockSetter はSymbolSetterのモック実装です。
type mockSetter struct {
	SetFunc   func(symbol string) bool
	Committed []string
}

func (m *mockSetter) SetActiveSymbol(symbol string) bool {
	m.Committed = append(m.Committed, symbol)
	if m.SetFunc != nil {
		return m.SetFunc(symbol)
	}
	return true
}

func TestInput_SetDraftDoesNotCommit(t *testing.T) {
	t.Parallel()

	setter := &mockSetter{}
	in := usecase.NewInput(setter)

	for _, s := range []string{"M", "MS", "MSF", "MSFT"} {
		in.SetDraft(s)
	}

	assert.Equal(t, "MSFT", in.Draft())
	assert.Empty(t, setter.Committed)
}

func TestInput_Commit(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		draft         string
		accept        bool
		wantResult    bool
		wantCommitted []string
	}{
		{"non-blank draft is committed", "IBM", true, true, []string{"IBM"}},
		{"draft is passed as typed", " ibm ", true, true, []string{" ibm "}},
		{"empty draft is ignored", "", true, false, nil},
		{"whitespace draft is ignored", "   ", true, false, nil},
		{"rejected by target", "IBM", false, false, []string{"IBM"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			setter := &mockSetter{SetFunc: func(string) bool { return tc.accept }}
			in := usecase.NewInput(setter)
			in.SetDraft(tc.draft)

			assert.Equal(t, tc.wantResult, in.Commit())
			assert.Equal(t, tc.wantCommitted, setter.Committed)
			assert.Equal(t, tc.draft, in.Draft(), "commit keeps the draft")
		})
	}
}

func TestInput_WithPanel(t *testing.T) {
	t.Parallel()

	market := &mockMarket{GetIntradayFunc: nil}
	p := newPanel(t, market)
	in := usecase.NewInput(p)

	in.SetDraft("")
	assert.False(t, in.Commit())
	assert.Empty(t, p.State().Symbol)

	in.SetDraft("IBM")
	assert.True(t, in.Commit())
	assert.Equal(t, "IBM", p.State().Symbol)
}
