package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/duelboard/internal/domain/model"
	"github.com/okian/duelboard/pkg/logger"
)

// LeaderboardDependencies defines the interface for leaderboard operations.
type LeaderboardDependencies interface {
	Leaderboard(ctx context.Context, mode string, limit int) ([]model.LeaderboardEntry, error)
	DefaultLimit() int
	MaxLimit() int
}

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps   LeaderboardDependencies
	logger logger.Logger
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps LeaderboardDependencies, log logger.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps, logger: log}
}

// HandleGetLeaderboard handles GET /api/leaderboard?mode=M&limit=N requests.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard"

	q := r.URL.Query()
	limit := h.deps.DefaultLimit()
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > h.deps.MaxLimit() {
			writeViolations(w, []model.Violation{{
				Field: "limit",
				Rule:  fmt.Sprintf("must be an integer between 1 and %d", h.deps.MaxLimit()),
			}})
			return
		}
		limit = n
	}

	entries, err := h.deps.Leaderboard(r.Context(), q.Get("mode"), limit)
	if err != nil {
		h.logger.Error(r.Context(), "failed to read leaderboard", logger.Error(Wrap(op, err)))
		writeError(w, http.StatusInternalServerError, "internal_error", NewKind(op, ErrInternal))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
