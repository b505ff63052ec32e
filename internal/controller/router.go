package controller

import (
	"time"

	"github.com/finbridge/payments/internal/infrastructure/config"
	"github.com/finbridge/payments/internal/infrastructure/observability"
	redisinfra "github.com/finbridge/payments/internal/infrastructure/redis"
	customMW "github.com/finbridge/payments/internal/middleware"
	"github.com/finbridge/payments/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	Pool            *pgxpool.Pool
	RedisClient     *redis.Client
	LinkingService  *service.LinkingService
	MethodService   *service.MethodService
	PaymentService  *service.PaymentService
	StatusCache     *redisinfra.LinkStatusCache
	IdempotencyRepo customMW.IdempotencyStore
	IdempotencyTTL  time.Duration
	Metrics         *observability.Metrics
	CORSConfig      config.CORSConfig
	JWTSecret       string
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(customMW.Tracing())
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSConfig.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"Link", "X-Idempotency-Replayed"},
		AllowCredentials: deps.CORSConfig.AllowCredentials,
		MaxAge:           300,
	}))
	r.Use(customMW.Metrics(deps.Metrics))

	healthH := NewHealthController(deps.Pool, deps.RedisClient)
	accountH := NewAccountController(deps.LinkingService, deps.MethodService, deps.StatusCache, deps.Metrics)
	paymentH := NewPaymentController(deps.PaymentService, deps.LinkingService, deps.Metrics)

	r.Get("/health", healthH.Health)
	r.Get("/health/live", healthH.Liveness)
	r.Get("/health/ready", healthH.Readiness)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(customMW.RequireAuth(deps.JWTSecret))

		// Idempotency middleware for mutating endpoints.
		idempotencyMW := customMW.Idempotency(deps.IdempotencyRepo, deps.IdempotencyTTL)

		r.Get("/provider/publishable-key", paymentH.PublishableKey)

		r.Route("/companies/{companyId}", func(r chi.Router) {
			r.Route("/payment-account", func(r chi.Router) {
				r.Get("/link-url", accountH.GetLinkURL)
				r.Get("/status", accountH.GetStatus)
				r.With(idempotencyMW).Post("/authorize", accountH.Authorize)
				r.With(idempotencyMW).Post("/deauthorize", accountH.Deauthorize)
			})

			r.Get("/payment-methods", accountH.GetMethods)
			r.Put("/payment-methods", accountH.UpdateMethods)

			r.With(idempotencyMW).Post("/payments", paymentH.Pay)
		})
	})

	return r
}
