package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/pkg"
)

type GameService interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error

	MakeMove(ctx context.Context, id string, origin entity.Coord, dir entity.Direction) (*entity.Game, error)
	AvailableMoves(ctx context.Context, id string) (entity.MoveCounts, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameService struct {
	logger   *slog.Logger
	gameRepo gameRepo

	// moves on one game are applied one at a time within this process
	locks *gameLocks
}

func NewGameService(logger *slog.Logger, gameRepo gameRepo) GameService {
	return &gameService{
		logger:   logger.With("component", "game_service"),
		gameRepo: gameRepo,
		locks:    newGameLocks(),
	}
}

func (that *gameService) CreateGame(ctx context.Context) (*entity.Game, error) {
	gameID, err := pkg.GenerateGameID()
	if err != nil {
		return nil, fmt.Errorf("error generating game ID: %w", err)
	}

	game := entity.NewGame(gameID)
	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game in storage: %w", err)
	}

	that.logger.Debug("game created", "gameID", game.ID)

	return game, nil
}

func (that *gameService) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return game, nil
}

func (that *gameService) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}
