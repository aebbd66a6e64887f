package usecase

import (
	"strings"
	"sync"
)

// SymbolSetter receives committed symbols.
type SymbolSetter interface {
	SetActiveSymbol(symbol string) bool
}

// Input holds the draft symbol typed into the panel's text field.
// Editing the draft never triggers a fetch; only Commit does.
type Input struct {
	target SymbolSetter

	mu    sync.Mutex
	draft string
}

// NewInput creates an Input that commits into target.
func NewInput(target SymbolSetter) *Input {
	return &Input{target: target}
}

// SetDraft replaces the draft. Called on every keystroke.
func (in *Input) SetDraft(s string) {
	in.mu.Lock()
	in.draft = s
	in.mu.Unlock()
}

// Draft returns the current draft as typed.
func (in *Input) Draft() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.draft
}

// Commit hands a non-blank draft to the target and reports whether it was accepted.
func (in *Input) Commit() bool {
	draft := in.Draft()
	if strings.TrimSpace(draft) == "" {
		return false
	}
	return in.target.SetActiveSymbol(draft)
}
