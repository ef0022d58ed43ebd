package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/adapters/http/api"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/adapters/repository"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/app"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/config"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/match"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/model"
	"github.com/CRRRAW-Holdings/magic-pill-admin/pkg/logger"
	"github.com/CRRRAW-Holdings/magic-pill-admin/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout            = 30 * time.Second
	writeTimeout           = 30 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	serviceMetricsInterval = 10 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store := seedStore()

	svc := app.New(store,
		app.WithLogger(log),
		app.WithMaxFileSizeMB(cfg.MaxFileSizeMB),
		app.WithMatchPolicy(matchPolicy(cfg.MatchPolicy)),
		app.WithDisableOnOmission(cfg.DisableOnOmission),
		app.WithUploadQueueSize(cfg.UploadQueueSize),
	)

	go startServiceMetricsUpdater(ctx, store)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// matchPolicy maps a configured policy name to its implementation. The
// config loader already rejected unknown names.
func matchPolicy(name string) match.Policy {
	if name == config.MatchPolicyUsernameExact {
		return match.UsernameExact
	}
	return match.EmailCompanyDOBOrName
}

// seedStore builds the in-memory enrollment store with the reference
// companies and plans the review console expects.
func seedStore() *repository.MemStore {
	gold, silver := 1, 2
	return repository.NewMemStore(
		repository.WithCompanies([]model.Company{
			{ID: 1, Name: "Acme Mutual"},
			{ID: 2, Name: "Globex Health"},
		}),
		repository.WithPlans([]model.Plan{
			{ID: gold, Name: "Gold", Details: "Full coverage"},
			{ID: silver, Name: "Silver", Details: "Standard coverage"},
			{ID: 3, Name: "Bronze", Details: "Catastrophic only"},
		}),
		repository.WithEmployees([]model.Employee{
			{
				Username: "jo.brown", Email: "jo.brown@acme.example", DOB: "1990-01-01",
				FirstName: "Jo", LastName: "Brown", CompanyID: 1, PlanID: &gold,
				IsActive: true, Address: "1 Main St", Phone: "555-0100",
			},
			{
				Username: "sam.reed", Email: "sam.reed@acme.example", DOB: "1985-05-05",
				FirstName: "Sam", LastName: "Reed", CompanyID: 1, PlanID: &silver,
				IsActive: true, Address: "2 Side St", Phone: "555-0200",
			},
		}),
	)
}

// startServiceMetricsUpdater periodically refreshes store-derived gauges.
func startServiceMetricsUpdater(ctx context.Context, store repository.Store) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.UpdateEmployeesTracked(store.CountEmployees(ctx))
		}
	}
}
