package cli

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	adapthttp "glucolog/internal/adapter/http"
	"glucolog/internal/adapter/memory"
	"glucolog/internal/adapter/metrics"
	"glucolog/internal/app"
	"glucolog/internal/domain"
)

const shutdownTimeout = 10 * time.Second

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := cfg.NewLogger(os.Stderr)
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	store := memory.New()
	if cfg.SeedDays > 0 {
		today := domain.LocalDay(time.Now(), loc)
		n, err := app.Seed(store, today, cfg.SeedDays, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		log.Info("seeded demo readings", "count", n, "days", cfg.SeedDays)
	}

	reg := metrics.New(store)
	readings := app.NewReadingService(store, log).WithMetrics(reg)
	reports := app.NewReportService(store)

	h := adapthttp.New(readings, reports, adapthttp.Options{
		WebDir:   cfg.WebDir,
		Location: loc,
		Logger:   log,
		Metrics:  reg,
	}).Handler()

	// Event streams hold their request open; cancelling the base context on
	// shutdown lets them return.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancelBase)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Addr, "timezone", loc.String())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
