// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/okian/duelboard/internal/domain/model"
	"github.com/okian/duelboard/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Submit(ctx context.Context, g model.NewGame) (model.GameRecord, error)
	Leaderboard(ctx context.Context, mode string, limit int) ([]model.LeaderboardEntry, error)
	Stats(ctx context.Context) (model.LeaderboardStats, error)
	Health(ctx context.Context) error

	DefaultLimit() int
	MaxLimit() int
}

// APIPrefix is the path prefix of the business routes.
const APIPrefix = "/api"

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	gamesHandler       *GamesHandler
	leaderboardHandler *LeaderboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	log := logger.Named("api")
	return &Server{
		healthHandler:      NewHealthHandler(deps),
		statsHandler:       NewStatsHandler(deps, log),
		gamesHandler:       NewGamesHandler(deps, log),
		leaderboardHandler: NewLeaderboardHandler(deps, log),
	}
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(_ context.Context, r *mux.Router) {
	if r == nil {
		panic("router is nil")
	}
	r.HandleFunc("/", MetricsMiddleware(s.healthHandler.HandleRoot, "root")).Methods(http.MethodGet)
	r.HandleFunc("/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health")).Methods(http.MethodGet)
	r.Handle("/metrics", s.healthHandler.MetricsHandler()).Methods(http.MethodGet)

	// full paths on r: a subrouter answers a method mismatch with 404, not 405
	r.HandleFunc(APIPrefix+"/games", MetricsMiddleware(s.gamesHandler.HandlePostGame, "games")).Methods(http.MethodPost)
	r.HandleFunc(APIPrefix+"/leaderboard/stats", MetricsMiddleware(s.statsHandler.HandleStats, "leaderboard_stats")).Methods(http.MethodGet)
	r.HandleFunc(APIPrefix+"/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard")).Methods(http.MethodGet)
}

type errorResponse struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Violations []model.Violation `json:"violations,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func writeViolations(w http.ResponseWriter, violations []model.Violation) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Code:       "validation_error",
		Message:    model.ErrValidation.Error(),
		Violations: violations,
	})
}
