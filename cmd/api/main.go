package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finbridge/payments/internal/bootstrap"
	"github.com/finbridge/payments/internal/controller"
	infraRedis "github.com/finbridge/payments/internal/infrastructure/redis"
	"github.com/finbridge/payments/internal/provider"
	"github.com/finbridge/payments/internal/repository/postgres"
	"github.com/finbridge/payments/internal/service"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := bootstrap.New(ctx, "payments-api", "payments")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	// --- Repositories ---
	accountRepo := postgres.NewAccountRepository(app.Pool)
	transactionRepo := postgres.NewTransactionRepository(app.Pool)
	idempotencyRepo := postgres.NewIdempotencyRepository(app.Pool)

	// --- Provider gateway ---
	// The charge path runs behind a circuit breaker; its state is
	// exported as a gauge.
	stripeGateway := provider.NewStripeGateway(provider.StripeConfig{
		SecretKey:      app.Config.Stripe.SecretKey,
		PublishableKey: app.Config.Stripe.PublishableKey,
		ClientID:       app.Config.Stripe.ClientID,
		OAuthBaseLink:  app.Config.Stripe.OAuthBaseLink,
	}, app.Logger)
	gateway := provider.NewBreakerGateway(stripeGateway, func(name string, from, to gobreaker.State) {
		app.Metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		app.Logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state changed")
	})

	// --- Services ---
	redirectURI := app.Config.WebApps.LinkCallbackURL()
	linkingService := service.NewLinkingService(accountRepo, gateway, redirectURI, app.Logger)
	methodService := service.NewMethodService(accountRepo, app.Logger)
	paymentService := service.NewPaymentService(accountRepo, transactionRepo, gateway, app.Logger)

	statusCache := infraRedis.NewLinkStatusCache(app.Redis, app.Config.Redis.LinkStatusTTL)

	// --- Build router ---
	router := controller.NewRouter(controller.RouterDeps{
		Pool:            app.Pool,
		RedisClient:     app.Redis,
		LinkingService:  linkingService,
		MethodService:   methodService,
		PaymentService:  paymentService,
		StatusCache:     statusCache,
		IdempotencyRepo: idempotencyRepo,
		IdempotencyTTL:  app.Config.Idempotency.TTL,
		Metrics:         app.Metrics,
		CORSConfig:      app.Config.Server.CORS,
		JWTSecret:       app.Config.Auth.JWTSecret,
	})

	// --- HTTP server ---
	addr := fmt.Sprintf(":%d", app.Config.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
		IdleTimeout:  app.Config.Server.IdleTimeout,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.Logger.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	// Expired idempotency keys are swept in-process; the table stays
	// small enough that a dedicated job is not warranted.
	g.Go(func() error {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-gCtx.Done():
				return nil
			case <-ticker.C:
				removed, err := idempotencyRepo.Cleanup(gCtx)
				if err != nil {
					app.Logger.Warn().Err(err).Msg("Idempotency cleanup failed")
					continue
				}
				if removed > 0 {
					app.Logger.Debug().Int64("removed", removed).Msg("Idempotency keys expired")
				}
			}
		}
	})

	g.Go(func() error {
		select {
		case <-gCtx.Done():
			return nil
		case sig := <-quit:
			app.Logger.Info().Str("signal", sig.String()).Msg("Shutting down server...")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				app.Logger.Error().Err(err).Msg("Server forced to shutdown")
			}
			cancel()
			return nil
		}
	})

	if err := g.Wait(); err != nil {
		app.Logger.Fatal().Err(err).Msg("Server failed")
	}
	app.Logger.Info().Msg("Server exited")
}
