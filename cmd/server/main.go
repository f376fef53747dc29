package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bibliodesk/internal/console/aggregate"
	"bibliodesk/internal/console/handler"
	"bibliodesk/internal/console/lifecycle"
	"bibliodesk/internal/console/session"
	"bibliodesk/internal/console/view"
	"bibliodesk/internal/platform/config"
	"bibliodesk/internal/platform/health"
	"bibliodesk/internal/platform/logger"
	"bibliodesk/internal/platform/metrics"
	"bibliodesk/internal/stafftoken"
	httptransport "bibliodesk/internal/transport/http"
	"bibliodesk/internal/upstream"
	"bibliodesk/pkg/platform/circuit"
	"bibliodesk/pkg/platform/middleware/metadata"
	"bibliodesk/pkg/platform/tracer"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the console packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing bibliodesk console gateway",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
	)

	m := metrics.New()
	trc := tracer.NewOTel()
	httpClient := &http.Client{Timeout: cfg.UpstreamTimeout}
	token := func() string { return cfg.UpstreamToken }

	clientOpts := func(breaker *circuit.Breaker) []upstream.Option {
		return []upstream.Option{
			upstream.WithHTTPClient(httpClient),
			upstream.WithTokenSource(token),
			upstream.WithBreaker(breaker),
			upstream.WithMetrics(m),
			upstream.WithTracer(trc),
		}
	}

	users := upstream.NewUsersClient(cfg.UsersBaseURL, clientOpts(circuit.New("users"))...)
	books := upstream.NewBooksClient(cfg.BooksBaseURL, clientOpts(circuit.New("books"))...)
	borrows := upstream.NewBorrowsClient(cfg.BorrowsBaseURL, clientOpts(circuit.New("borrows"))...)
	fines := upstream.NewFinesClient(cfg.FinesBaseURL, clientOpts(circuit.New("fines"))...)

	aggregator := aggregate.New(users, books, borrows, fines, log,
		aggregate.WithTracer(trc), aggregate.WithMetrics(m))

	factory := func(operatorID string) *lifecycle.Controller {
		return lifecycle.New(aggregator, borrows, fines,
			view.NewBorrowView(cfg.PageSize), view.NewFineView(cfg.PageSize),
			log.With("operator_id", operatorID),
			lifecycle.WithMetrics(m))
	}
	sessions := session.NewRegistry(factory, log,
		session.WithTTL(cfg.SessionTTL), session.WithMetrics(m))

	healthHandler := health.New(cfg.Environment)
	healthHandler.RegisterCheck("users", users.Healthy)
	healthHandler.RegisterCheck("books", books.Healthy)
	healthHandler.RegisterCheck("borrows", borrows.Healthy)
	healthHandler.RegisterCheck("fines", fines.Healthy)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Console:  handler.New(sessions, log),
		Health:   healthHandler,
		Verifier: stafftoken.NewVerifier(cfg.JWTSigningKey),
		Metadata: metadata.NewMiddleware(&metadata.Config{TrustedProxies: cfg.TrustedProxies}),
		Metrics:  m,
		Logger:   log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	rootCtx, stopSessions := context.WithCancel(context.Background())
	go sessions.Run(rootCtx)

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server gracefully")
	stopSessions()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
