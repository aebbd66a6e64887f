package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"quotepanel/internal/feature/quotes/domain/entity"
)

const (
	// DefaultSymbol is committed by Start when no other default is configured.
	DefaultSymbol = "IBM"
	// DefaultFetchTimeout bounds one fetch cycle when PanelConfig leaves it unset.
	DefaultFetchTimeout = 15 * time.Second

	sideEffectTimeout = 2 * time.Second
)

// PanelConfig is the immutable configuration of a Panel.
type PanelConfig struct {
	DefaultSymbol string
	FetchTimeout  time.Duration
}

// PanelOption configures optional collaborators of a Panel.
type PanelOption func(*Panel)

// WithJournal records every fetch cycle outcome.
func WithJournal(j FetchJournal) PanelOption {
	return func(p *Panel) { p.journal = j }
}

// WithHistory remembers every accepted commit.
func WithHistory(h SymbolHistory) PanelOption {
	return func(p *Panel) { p.history = h }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) PanelOption {
	return func(p *Panel) { p.now = now }
}

// Panel owns the active symbol and its fetch state.
//
// Each commit bumps a generation counter and cancels the previous cycle's context.
// A cycle's result is applied only while its generation is still current, so a slow
// response for a superseded symbol can never overwrite newer state.
type Panel struct {
	cfg     PanelConfig
	market  MarketRepository
	journal FetchJournal
	history SymbolHistory
	now     func() time.Time

	base context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup

	mu      sync.Mutex
	state   entity.FetchState
	gen     uint64
	cancel  context.CancelFunc
	subs    map[int]chan entity.FetchState
	nextSub int
	closed  bool
}

// NewPanel creates an idle Panel backed by market.
func NewPanel(cfg PanelConfig, market MarketRepository, opts ...PanelOption) *Panel {
	if strings.TrimSpace(cfg.DefaultSymbol) == "" {
		cfg.DefaultSymbol = DefaultSymbol
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	base, stop := context.WithCancel(context.Background())
	p := &Panel{
		cfg:    cfg,
		market: market,
		now:    time.Now,
		base:   base,
		stop:   stop,
		state:  entity.FetchState{Status: entity.StatusIdle},
		subs:   map[int]chan entity.FetchState{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start commits the configured default symbol.
func (p *Panel) Start() {
	p.SetActiveSymbol(p.cfg.DefaultSymbol)
}

// SetActiveSymbol replaces the active symbol and starts a fetch cycle for it.
// It reports false without side effects when symbol is blank after trimming, when it
// equals the active symbol (unless the last cycle failed), or after Close.
func (p *Panel) SetActiveSymbol(symbol string) bool {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	if symbol == p.state.Symbol && p.state.Status != entity.StatusFailed {
		return false
	}
	p.launchLocked(symbol, true)
	return true
}

// Retry re-runs the fetch cycle for the active symbol after a failure.
func (p *Panel) Retry() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.state.Status != entity.StatusFailed {
		return false
	}
	p.launchLocked(p.state.Symbol, false)
	return true
}

// State returns the current snapshot.
func (p *Panel) State() entity.FetchState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Subscribe returns a feed of state changes, primed with the current state.
// Slow readers only ever see the latest state. The returned func unsubscribes.
func (p *Panel) Subscribe() (<-chan entity.FetchState, func()) {
	ch := make(chan entity.FetchState, 1)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		close(ch)
		return ch, func() {}
	}
	id := p.nextSub
	p.nextSub++
	p.subs[id] = ch
	ch <- p.state

	return ch, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if c, ok := p.subs[id]; ok {
			delete(p.subs, id)
			close(c)
		}
	}
}

// Close cancels the in-flight cycle, closes all subscriptions and waits for
// background work to finish.
func (p *Panel) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		p.stop()
		for id, ch := range p.subs {
			delete(p.subs, id)
			close(ch)
		}
	}
	p.mu.Unlock()
	p.wg.Wait()
}

// launchLocked must be called with p.mu held.
func (p *Panel) launchLocked(symbol string, remember bool) {
	if p.cancel != nil {
		p.cancel()
	}
	p.gen++
	ctx, cancel := context.WithTimeout(p.base, p.cfg.FetchTimeout)
	p.cancel = cancel
	p.setLocked(entity.FetchState{Symbol: symbol, Status: entity.StatusLoading, UpdatedAt: p.now()})

	p.wg.Add(1)
	go p.fetch(ctx, cancel, p.gen, symbol, remember)
}

func (p *Panel) fetch(ctx context.Context, cancel context.CancelFunc, gen uint64, symbol string, remember bool) {
	defer p.wg.Done()
	defer cancel()

	cycle := uuid.NewString()
	started := p.now()
	log := slog.With("cycle", cycle, "symbol", symbol)

	if remember && p.history != nil {
		hctx, hcancel := context.WithTimeout(context.Background(), sideEffectTimeout)
		if err := p.history.Push(hctx, symbol); err != nil {
			log.Warn("failed to remember symbol", "error", err)
		}
		hcancel()
	}

	series, err := p.market.GetIntraday(ctx, symbol)
	next := settle(symbol, series, err)
	next.UpdatedAt = p.now()
	applied := p.apply(gen, next)

	switch {
	case !applied:
		log.Debug("discarded superseded fetch result", "status", next.Status.String())
	case next.Status == entity.StatusFailed:
		if errors.Is(err, context.DeadlineExceeded) {
			log.Error("fetch timed out", "timeout", p.cfg.FetchTimeout, "error", err)
		} else {
			log.Error("failed to fetch quotes", "error", err)
		}
	case next.Status == entity.StatusEmpty:
		log.Info("provider returned no time series", "detail", err)
	default:
		log.Info("fetched quotes", "records", len(next.Series), "elapsed", p.now().Sub(started))
	}

	p.record(cycle, started, next, applied)
}

// apply installs next only if gen is still the current generation.
func (p *Panel) apply(gen uint64, next entity.FetchState) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || gen != p.gen {
		return false
	}
	p.setLocked(next)
	return true
}

func (p *Panel) setLocked(st entity.FetchState) {
	p.state = st
	for _, ch := range p.subs {
		// keep only the newest state in each buffer
		select {
		case <-ch:
		default:
		}
		ch <- st
	}
}

func (p *Panel) record(cycle string, started time.Time, st entity.FetchState, applied bool) {
	if p.journal == nil {
		return
	}
	outcome := st.Status.String()
	if !applied {
		outcome = entity.OutcomeSuperseded
	}
	rec := entity.FetchRecord{
		ID:        cycle,
		Symbol:    st.Symbol,
		Outcome:   outcome,
		Records:   len(st.Series),
		Error:     st.Err,
		StartedAt: started,
		Duration:  p.now().Sub(started),
	}
	ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()
	if err := p.journal.Record(ctx, rec); err != nil {
		slog.Warn("failed to journal fetch cycle", "cycle", cycle, "error", err)
	}
}
