package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/damon-houk/ecb-exchange-rates/internal/application/service"
	domainservice "github.com/damon-houk/ecb-exchange-rates/internal/domain/service"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/api"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/db"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/handler"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/metrics"
	"github.com/dgraph-io/badger/v3"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rates API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port, _ := cmd.Flags().GetString("port"); port != "" {
				a.cfg.HTTPServer.Port = port
			}
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().String("port", "", "listen port (overrides HTTP_PORT)")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	badgerDB, err := openBadger(a.cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := badgerDB.Close(); err != nil {
			a.logger.Error("Error closing BadgerDB", map[string]interface{}{"error": err.Error()})
		}
	}()

	router := a.router(badgerDB)

	srv := &http.Server{
		Addr:         a.cfg.Addr(),
		Handler:      router,
		ReadTimeout:  a.cfg.HTTPServer.ReadTimeout,
		WriteTimeout: a.cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  a.cfg.HTTPServer.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("Server listening", map[string]interface{}{
			"addr":         srv.Addr,
			"ecb_base_url": a.cfg.ECB.BaseURL,
			"storage_path": a.cfg.Storage.Path,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Shutting down server", nil)

		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	return g.Wait()
}

// router wires the API on top of the quote journal stored in badgerDB
func (a *app) router(badgerDB *badger.DB) *mux.Router {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	fetcher := api.NewHTTPFetcher(&http.Client{Timeout: a.cfg.ECB.Timeout}, a.cfg.ECB.UserAgent, a.logger, m)
	source := api.NewECBClient(a.cfg.ECB.BaseURL, fetcher, a.logger, m)
	rates := db.NewECBRateRepository(source, domainservice.NewDateResolver(source, a.logger), a.logger)

	exchange := service.NewExchangeService(rates, a.logger)
	journal := service.NewQuoteJournal(db.NewBadgerQuoteRepository(badgerDB))

	return handler.NewRouter(handler.RouterConfig{
		Rates:    handler.NewRateHandler(exchange, journal, a.logger),
		Quotes:   handler.NewQuoteHandler(journal, a.logger),
		Logger:   a.logger,
		Metrics:  m,
		Gatherer: reg,
	})
}

func openBadger(path string) (*badger.DB, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable Badger's default logger

	badgerDB, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return badgerDB, nil
}
