package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/duelboard/internal/domain/model"
	"github.com/okian/duelboard/pkg/logger"
)

const maxGameBodyBytes = 1 << 20

// GameDependencies defines the interface for game submission.
type GameDependencies interface {
	Submit(ctx context.Context, g model.NewGame) (model.GameRecord, error)
}

// GamesHandler handles game submissions.
type GamesHandler struct {
	deps   GameDependencies
	logger logger.Logger
}

// NewGamesHandler creates a new games handler.
func NewGamesHandler(deps GameDependencies, log logger.Logger) *GamesHandler {
	return &GamesHandler{deps: deps, logger: log}
}

// HandlePostGame handles POST /api/games requests.
func (h *GamesHandler) HandlePostGame(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_game"

	var req model.NewGame
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxGameBodyBytes)).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			writeViolations(w, []model.Violation{{Field: typeErr.Field, Rule: "must be a " + typeErr.Type.String()}})
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	rec, err := h.deps.Submit(r.Context(), req)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			writeViolations(w, verr.Violations)
			return
		}
		h.logger.Error(r.Context(), "failed to save game", logger.Error(Wrap(op, err)))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Code: "internal_error", Message: "failed to save game"})
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}
