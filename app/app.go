// Package app wires configuration, storage, messaging, and services into a
// runnable backend.
package app

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"

	"github.com/mundo-prode/prode-backend/api"
	leaderboardservice "github.com/mundo-prode/prode-backend/app/modules/leaderboard/application"
	leaderboarddb "github.com/mundo-prode/prode-backend/app/modules/leaderboard/infrastructure/repositories"
	predictionservice "github.com/mundo-prode/prode-backend/app/modules/prediction/application"
	predictiondb "github.com/mundo-prode/prode-backend/app/modules/prediction/infrastructure/repositories"
	scoringservice "github.com/mundo-prode/prode-backend/app/modules/scoring/application"
	scoringdomain "github.com/mundo-prode/prode-backend/app/modules/scoring/domain"
	tournamentservice "github.com/mundo-prode/prode-backend/app/modules/tournament/application"
	matchqueue "github.com/mundo-prode/prode-backend/app/modules/tournament/infrastructure/queue"
	tournamentdb "github.com/mundo-prode/prode-backend/app/modules/tournament/infrastructure/repositories"
	userservice "github.com/mundo-prode/prode-backend/app/modules/user/application"
	userdb "github.com/mundo-prode/prode-backend/app/modules/user/infrastructure/repositories"
	"github.com/mundo-prode/prode-backend/config"
	"github.com/mundo-prode/prode-backend/internal/eventbus"
	"github.com/mundo-prode/prode-backend/internal/events"
	"github.com/mundo-prode/prode-backend/internal/observability/attr"
	"github.com/mundo-prode/prode-backend/internal/observability/metrics"
)

// App holds every long-lived component of the backend.
type App struct {
	Config *config.Config

	logger     *slog.Logger
	db         *bun.DB
	eventBus   *eventbus.NATSEventBus
	subscriber message.Subscriber
	wmRouter   *message.Router
	queue      *matchqueue.Service

	httpServer    *http.Server
	metricsServer *http.Server

	Leaderboard leaderboardservice.Service
	Scoring     scoringservice.Service
	Tournament  tournamentservice.Service
	Prediction  predictionservice.Service
	User        userservice.Service
}

// NewApp builds the full dependency graph.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		attr.String("service", "prode-backend"),
		attr.String("environment", cfg.Observability.Environment),
	)
	wmLogger := watermill.NewSlogLogger(logger)

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(sqldb, pgdialect.New())
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("app.NewApp: failed to ping database: %w", err)
	}

	bus, err := eventbus.New(cfg.NATS.URL, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("app.NewApp: %w", err)
	}
	subscriber, err := eventbus.NewSubscriber(cfg.NATS.URL, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("app.NewApp: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	scoringMetrics := metrics.NewScoringMetrics(registry)
	leaderboardMetrics := metrics.NewLeaderboardMetrics(registry)
	queueMetrics := metrics.NewQueueMetrics(registry)

	tracer := otel.Tracer("prode-backend")

	userRepo := userdb.NewRepository(db)
	tournamentRepo := tournamentdb.NewRepository(db)
	predictionRepo := predictiondb.NewRepository(db)
	leaderboardRepo := leaderboarddb.NewRepository(db)

	leaderboard := leaderboardservice.NewLeaderboardService(
		leaderboardRepo, userRepo, bus, logger, leaderboardMetrics, tracer, db)

	scoring := scoringservice.NewScoringService(
		tournamentRepo, predictionRepo, leaderboard, bus, logger, scoringMetrics, tracer, db,
		scoringdomain.PointsConfig{
			Exact:           cfg.Scoring.Exact,
			WinnerPlusScore: cfg.Scoring.WinnerPlusScore,
			WinnerOnly:      cfg.Scoring.WinnerOnly,
			OneScoreOnly:    cfg.Scoring.OneScoreOnly,
		})

	queue, err := matchqueue.NewService(ctx, cfg.Postgres.DSN, tournamentRepo, bus, logger, queueMetrics)
	if err != nil {
		return nil, fmt.Errorf("app.NewApp: %w", err)
	}

	tournament := tournamentservice.NewTournamentService(
		tournamentRepo, scoring, queue, bus, logger, tracer)
	prediction := predictionservice.NewPredictionService(
		predictionRepo, tournamentRepo, logger, tracer)
	user := userservice.NewUserService(userRepo, logger)

	wmRouter, err := newEventRouter(wmLogger, subscriber, leaderboard)
	if err != nil {
		return nil, fmt.Errorf("app.NewApp: %w", err)
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.HTTP.RateLimitRPS), cfg.HTTP.RateLimitBurst)
	httpServer := &http.Server{
		Addr: cfg.HTTP.Address,
		Handler: api.NewRouter(api.Services{
			Tournament:  tournament,
			Prediction:  prediction,
			Leaderboard: leaderboard,
			User:        user,
		}, logger, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var metricsServer *http.Server
	if cfg.Observability.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		metricsServer = &http.Server{
			Addr:              cfg.Observability.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	return &App{
		Config:        cfg,
		logger:        logger,
		db:            db,
		eventBus:      bus,
		subscriber:    subscriber,
		wmRouter:      wmRouter,
		queue:         queue,
		httpServer:    httpServer,
		metricsServer: metricsServer,
		Leaderboard:   leaderboard,
		Scoring:       scoring,
		Tournament:    tournament,
		Prediction:    prediction,
		User:          user,
	}, nil
}

// newEventRouter subscribes the handlers that react to published events.
func newEventRouter(wmLogger watermill.LoggerAdapter, subscriber message.Subscriber, leaderboard leaderboardservice.Service) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, wmLogger)
	if err != nil {
		return nil, err
	}
	router.AddMiddleware(middleware.Recoverer, middleware.CorrelationID)

	router.AddNoPublisherHandler(
		"leaderboard_refresh_requested",
		events.LeaderboardRefreshRequested,
		subscriber,
		func(msg *message.Message) error {
			var payload events.LeaderboardRefreshRequestedPayloadV1
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				// Poison message; drop it.
				return nil
			}
			ctx := msg.Context()
			if correlationID := middleware.MessageCorrelationID(msg); correlationID != "" {
				ctx = attr.WithCorrelationID(ctx, correlationID)
			}
			return leaderboard.RefreshAll(ctx)
		},
	)
	return router, nil
}

// Run starts every component and blocks until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := a.queue.Start(ctx); err != nil {
		return fmt.Errorf("app.Run: %w", err)
	}

	errCh := make(chan error, 3)
	go func() {
		if err := a.wmRouter.Run(ctx); err != nil {
			errCh <- fmt.Errorf("event router: %w", err)
		}
	}()
	go func() {
		a.logger.Info("HTTP server listening", attr.String("address", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	if a.metricsServer != nil {
		go func() {
			if err := a.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown stops every component, draining in-flight work.
func (a *App) Shutdown(ctx context.Context) {
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("Failed to shut down HTTP server", attr.Error(err))
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			a.logger.Error("Failed to shut down metrics server", attr.Error(err))
		}
	}
	if err := a.queue.Stop(ctx); err != nil {
		a.logger.Error("Failed to stop match queue", attr.Error(err))
	}
	if err := a.wmRouter.Close(); err != nil {
		a.logger.Error("Failed to close event router", attr.Error(err))
	}
	if err := a.subscriber.Close(); err != nil {
		a.logger.Error("Failed to close subscriber", attr.Error(err))
	}
	if err := a.eventBus.Close(); err != nil {
		a.logger.Error("Failed to close event bus", attr.Error(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("Failed to close database", attr.Error(err))
	}
}
