// Package api assembles the HTTP router.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/mundo-prode/prode-backend/api/handlers"
	leaderboardservice "github.com/mundo-prode/prode-backend/app/modules/leaderboard/application"
	predictionservice "github.com/mundo-prode/prode-backend/app/modules/prediction/application"
	tournamentservice "github.com/mundo-prode/prode-backend/app/modules/tournament/application"
	userservice "github.com/mundo-prode/prode-backend/app/modules/user/application"
	"github.com/mundo-prode/prode-backend/internal/observability/attr"
)

// Services bundles the application services the router exposes.
type Services struct {
	Tournament  tournamentservice.Service
	Prediction  predictionservice.Service
	Leaderboard leaderboardservice.Service
	User        userservice.Service
}

// NewRouter wires all HTTP endpoints.
func NewRouter(services Services, logger *slog.Logger, limiter *rate.Limiter) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(correlationID)
	r.Use(middleware.Recoverer)
	if limiter != nil {
		r.Use(rateLimit(limiter))
	}

	matchHandler := handlers.NewMatchHandler(services.Tournament, logger)
	predictionHandler := handlers.NewPredictionHandler(services.Prediction, logger)
	leaderboardHandler := handlers.NewLeaderboardHandler(services.Leaderboard, logger)
	userHandler := handlers.NewUserHandler(services.User, logger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.CreateUser)
		r.Get("/{userID}", userHandler.GetUser)
		r.Get("/{userID}/predictions", predictionHandler.GetPredictionsForUser)
		r.Get("/{userID}/leaderboard", leaderboardHandler.GetRowForUser)
		r.Get("/{userID}/ranking-chart", leaderboardHandler.RankingChart)
	})

	r.Route("/phases", func(r chi.Router) {
		r.Post("/", matchHandler.CreatePhase)
	})

	r.Route("/matches", func(r chi.Router) {
		r.Post("/", matchHandler.CreateMatch)
		r.Get("/", matchHandler.ListMatches)
		r.Get("/{matchID}", matchHandler.GetMatch)
		r.Post("/{matchID}/result", matchHandler.FinalizeResult)
		r.Post("/{matchID}/lock", matchHandler.LockMatch)
		r.Post("/{matchID}/predictions", predictionHandler.SubmitPrediction)
		r.Get("/{matchID}/predictions", predictionHandler.GetPredictionsForMatch)
	})

	r.Route("/leaderboard", func(r chi.Router) {
		r.Get("/", leaderboardHandler.GetStandings)
		r.Post("/refresh", leaderboardHandler.Refresh)
		r.Get("/export", leaderboardHandler.ExportStandings)
	})

	return r
}

// correlationID tags each request with a correlation ID, honoring one passed
// by an upstream proxy.
func correlationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Correlation-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Correlation-ID", id)
		next.ServeHTTP(w, r.WithContext(attr.WithCorrelationID(r.Context(), id)))
	})
}

func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
