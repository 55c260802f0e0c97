package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/FabioF7/TheBooker/internal/booking"
	"github.com/FabioF7/TheBooker/internal/handlers"
	"github.com/FabioF7/TheBooker/internal/outbox"
	"github.com/FabioF7/TheBooker/internal/storage"
	"github.com/FabioF7/TheBooker/internal/sweeper"
	"github.com/FabioF7/TheBooker/libs/config"
	"github.com/FabioF7/TheBooker/libs/db"
	"github.com/FabioF7/TheBooker/libs/httpx"
	"github.com/FabioF7/TheBooker/libs/kafkax"
	otelx "github.com/FabioF7/TheBooker/libs/otel"
	"github.com/FabioF7/TheBooker/libs/runtime"
)

func main() {
	service := config.String("SERVICE_NAME", "booker")
	port, err := config.Port("PORT", "8080")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}
	pool, err := db.Open(ctx, dbURL)
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	if err := storage.EnsureSchema(ctx, pool); err != nil {
		logger.Error("schema setup failed", "err", err)
		panic(err)
	}

	outboxRepo := outbox.NewRepository(pool)
	tenantRepo := storage.NewTenantRepository(pool)
	serviceRepo := storage.NewServiceRepository(pool)
	providerRepo := storage.NewProviderRepository(pool, serviceRepo)
	overrideRepo := storage.NewOverrideRepository(pool)
	appointmentRepo := storage.NewAppointmentRepository(pool, outboxRepo)

	lockMinutes := config.Int("HOLD_LOCK_MINUTES", 10)
	bookingSvc := booking.NewService(tenantRepo, providerRepo, serviceRepo, overrideRepo, appointmentRepo, lockMinutes, logger)
	adminSvc := booking.NewAdmin(tenantRepo, providerRepo, serviceRepo, overrideRepo, logger)

	kafkaBrokers := config.String("KAFKA_BROKERS", "")
	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   kafkaBrokers,
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)

	holdSweeper := sweeper.New(appointmentRepo, logger, config.Minutes("SWEEP_INTERVAL_MINUTES", sweeper.DefaultInterval))
	go holdSweeper.Run(ctx)

	publicLimit := publicRateLimit(logger)

	readyChecks := []runtime.ReadyCheck{
		{Name: "db", Check: db.ReadyCheck(pool)},
	}
	if kafkaBrokers != "" {
		readyChecks = append(readyChecks, runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(kafkaBrokers)})
	}
	mux := runtime.NewBaseMux(readyChecks...)

	bookingHandler := handlers.NewBookingHandler(bookingSvc, logger)
	adminHandler := handlers.NewAdminHandler(adminSvc, logger)
	handlers.Register(mux, bookingHandler, adminHandler, publicLimit)

	httpHandler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithBodyLimit(1<<20),
	)
	httpHandler = otelhttp.NewHandler(httpHandler, service)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}

// publicRateLimit throttles the customer-facing endpoints. With REDIS_ADDR
// set the window is shared across instances; otherwise it falls back to a
// per-process limiter.
func publicRateLimit(logger *slog.Logger) httpx.Middleware {
	limit := config.Int("RATE_LIMIT_PER_MINUTE", 120)
	if addr := config.String("REDIS_ADDR", ""); addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.String("REDIS_PASSWORD", ""),
		})
		return httpx.NewRedisRateLimiter(rdb, limit, time.Minute, "booker").Middleware(logger, true)
	}
	return httpx.NewRateLimiter(limit, time.Minute).Middleware()
}
