package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"quotepanel/internal/app/di"
	"quotepanel/internal/app/router"
	quoteshandler "quotepanel/internal/feature/quotes/transport/handler"
	"quotepanel/internal/platform/http/handler"
)

const shutdownTimeout = 10 * time.Second

// serveCmd runs the web page and JSON API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quote panel over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(os.Stderr)
		if cfg.Log.Level != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := di.NewApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		r := router.NewRouter(
			quoteshandler.NewPanelHandler(app.Panel, app.Input, app.History),
			quoteshandler.NewQuoteHandler(app.Lookup),
			quoteshandler.NewActivityHandler(app.History, app.Journal),
			handler.NewHealth(func() string { return app.Panel.State().Status.String() }),
			cfg.Server.CORSOrigins,
		)
		srv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		}

		app.Panel.Start()

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			slog.Info("listening", "addr", cfg.Server.Addr, "interval", cfg.Provider.Interval)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			slog.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}
