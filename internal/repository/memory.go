package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
)

type memoryGame struct {
	mu    sync.RWMutex
	games map[string]entity.Game
}

// NewMemoryGameRepository keeps games in process memory. It is used when no
// Redis address is configured.
func NewMemoryGameRepository() GameRepository {
	return &memoryGame{
		games: make(map[string]entity.Game),
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = cloneGame(game)

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	game, ok := that.games[id]
	if !ok {
		return &entity.Game{}, ErrGameNotFound
	}

	clone := cloneGame(&game)

	return &clone, nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[id]; !ok {
		return ErrGameNotFound
	}

	delete(that.games, id)

	return nil
}

// cloneGame copies the board so callers never share state with the store.
func cloneGame(game *entity.Game) entity.Game {
	clone := *game
	if game.Board != nil {
		board := *game.Board
		clone.Board = &board
	}

	return clone
}
