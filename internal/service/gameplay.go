package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
)

// MakeMove loads the game, applies the jump and stores the result. Rejected
// moves return the unchanged game together with the reason. Concurrent moves
// on the same game are serialized so that none of them is lost.
func (that *gameService) MakeMove(ctx context.Context, id string, origin entity.Coord, dir entity.Direction) (*entity.Game, error) {
	log := that.logger.With("method", "MakeMove", "gameID", id)

	unlock := that.locks.Lock(id)
	defer unlock()

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = game.MakeMove(origin, dir); err != nil {
		log.Debug("move rejected", "from", origin.String(), "direction", dir.String(), "error", err)
		return game, fmt.Errorf("failed to make move: %w", err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		log.Info("game finished", "pegs", game.Pegs, "moves", game.Moves, "solved", game.IsSolved())
	}

	return game, nil
}

func (that *gameService) AvailableMoves(ctx context.Context, id string) (entity.MoveCounts, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return entity.MoveCounts{}, err
	}

	return game.Board.MoveCounts(), nil
}
