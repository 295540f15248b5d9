package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/apperror"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
)

type gameService interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error
	MakeMove(ctx context.Context, id string, origin entity.Coord, dir entity.Direction) (*entity.Game, error)
	AvailableMoves(ctx context.Context, id string) (entity.MoveCounts, error)
}

type Handlers interface {
	CreateGame(w http.ResponseWriter, r *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
	DeleteGame(w http.ResponseWriter, r *http.Request)
	AvailableMoves(w http.ResponseWriter, r *http.Request)
	MakeMove(w http.ResponseWriter, r *http.Request)
}

type handlers struct {
	logger      *slog.Logger
	gameService gameService
}

func NewHandlers(logger *slog.Logger, gameService gameService) Handlers {
	return &handlers{
		logger:      logger,
		gameService: gameService,
	}
}

type moveRequest struct {
	From      *entity.Coord    `json:"from"`
	Direction entity.Direction `json:"direction"`
}

type movesResponse struct {
	Counts entity.MoveCounts `json:"counts"`
	Total  int               `json:"total"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameService.CreateGame(r.Context())
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameService.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gameService.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) AvailableMoves(w http.ResponseWriter, r *http.Request) {
	counts, err := that.gameService.AvailableMoves(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, movesResponse{Counts: counts, Total: counts.Total()})
}

func (that *handlers) MakeMove(w http.ResponseWriter, r *http.Request) {
	var request moveRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if request.From == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: entity.ErrInvalidInput.Error()})
		return
	}

	if !request.From.IsPlayable() {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: entity.ErrForbiddenCell.Error()})
		return
	}

	if !request.Direction.IsValid() {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: entity.ErrInvalidDirection.Error()})
		return
	}

	game, err := that.gameService.MakeMove(r.Context(), chi.URLParam(r, "id"), *request.From, request.Direction)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperror.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrGameFinished):
		status = http.StatusConflict
	case errors.Is(err, apperror.ErrIllegalMove):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, entity.ErrForbiddenCell),
		errors.Is(err, entity.ErrInvalidDirection):
		status = http.StatusBadRequest
	default:
		that.logger.Error("request failed", "error", err)
		that.writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
