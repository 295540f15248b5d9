package repository

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores and returns a copy", func(t *testing.T) {
		// Given: a stored game
		gameRepo := NewMemoryGameRepository()
		game := entity.NewGame("123")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: the caller keeps mutating its own instance
		require.NoError(t, game.MakeMove(entity.Coord{Row: 3, Col: 1}, entity.Right))

		// Then: the stored game is untouched
		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, entity.NewGame("123"), stored)

		// When: the returned copy is mutated
		stored.Board.ApplyMove(entity.Coord{Row: 1, Col: 3}, entity.Down)

		// Then: the store still holds the original
		again, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, 32, again.Board.CountOccupied())
	})

	t.Run("Unknown game", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()

		_, err := gameRepo.GetByID(ctx, "missing")
		require.ErrorIs(t, err, ErrGameNotFound)

		err = gameRepo.DeleteByID(ctx, "missing")
		require.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("Delete removes the game", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, entity.NewGame("123")))

		require.NoError(t, gameRepo.DeleteByID(ctx, "123"))

		_, err := gameRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, ErrGameNotFound)
	})
}
