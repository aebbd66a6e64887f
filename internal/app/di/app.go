package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"quotepanel/internal/feature/quotes/adapters"
	"quotepanel/internal/feature/quotes/usecase"
	"quotepanel/internal/platform/config"
	"quotepanel/internal/platform/db"
	infraredis "quotepanel/internal/platform/redis"
)

// App bundles the long-lived components shared by the serve and tui commands.
type App struct {
	Panel   *usecase.Panel
	Input   *usecase.Input
	Lookup  *usecase.Lookup
	History usecase.SymbolHistory
	Journal usecase.FetchJournal

	closers []func() error
}

// NewApp wires the panel with its provider, journal and history.
// Redis is optional: when it is not configured or unreachable the history stays in memory.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	gdb, err := db.Open(db.Config{Driver: cfg.Database.Driver, DSN: cfg.Database.DSN})
	if err != nil {
		return nil, fmt.Errorf("open journal database: %w", err)
	}
	app := &App{}
	if sqlDB, err := gdb.DB(); err == nil {
		app.closers = append(app.closers, sqlDB.Close)
	}

	var rdb *redis.Client
	rcfg := infraredis.Config{Host: cfg.Redis.Host, Port: cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
	if rcfg.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, rcfg); err != nil {
			slog.Warn("Redis unavailable. Keeping recent symbols in memory.", "error", err)
		} else {
			rdb = tmp
			app.closers = append(app.closers, rdb.Close)
		}
	}

	if cfg.UsesDemoKey() {
		slog.Warn("ALPHAVANTAGE_API_KEY is not set. The demo key only serves IBM.")
	}

	market := NewMarket(cfg)
	app.Journal = adapters.NewFetchJournal(gdb)
	app.History = NewSymbolHistory(rdb, cfg.Panel.HistorySize)
	app.Panel = usecase.NewPanel(usecase.PanelConfig{
		DefaultSymbol: cfg.Panel.DefaultSymbol,
		FetchTimeout:  cfg.Panel.FetchTimeout,
	}, market, usecase.WithJournal(app.Journal), usecase.WithHistory(app.History))
	app.Input = usecase.NewInput(app.Panel)
	app.Input.SetDraft(cfg.Panel.DefaultSymbol)
	app.Lookup = usecase.NewLookup(market, cfg.Panel.FetchTimeout)
	return app, nil
}

// Close stops the panel and releases connections.
func (a *App) Close() {
	a.Panel.Close()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Error("failed to close resource", "error", err)
		}
	}
}
