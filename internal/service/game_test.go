package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/apperror"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errRedisDown = errors.New("redis down")

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	return args.Get(0).(*entity.Game), args.Error(1)
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

func newTestService(t *testing.T) (GameService, *mockGameRepo) {
	t.Helper()

	repo := &mockGameRepo{}
	t.Cleanup(func() { repo.AssertExpectations(t) })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewGameService(logger, repo), repo
}

var d2 = entity.Coord{Row: 3, Col: 1}

func TestGameService_CreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates and stores a new game", func(t *testing.T) {
		// Given: a repository that accepts writes
		svc, repo := newTestService(t)
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Game")).Return(nil).Once()

		// When: creating a game
		game, err := svc.CreateGame(ctx)

		// Then: a fresh game with an ID is returned
		require.NoError(t, err)
		assert.NotEmpty(t, game.ID)
		assert.Equal(t, 32, game.Pegs)
		assert.True(t, game.IsOngoing())
	})

	t.Run("Returns error if storage fails", func(t *testing.T) {
		// Given: a repository that fails
		svc, repo := newTestService(t)
		repo.On("CreateOrUpdate", ctx, mock.Anything).Return(errRedisDown).Once()

		// When: creating a game
		game, err := svc.CreateGame(ctx)

		// Then: the storage error is returned
		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, game)
	})
}

func TestGameService_MakeMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies a legal move and saves the game", func(t *testing.T) {
		// Given: a stored game
		svc, repo := newTestService(t)
		repo.On("GetByID", ctx, "game1").Return(entity.NewGame("game1"), nil).Once()
		repo.On("CreateOrUpdate", ctx, mock.MatchedBy(func(game *entity.Game) bool {
			return game.ID == "game1" && game.Moves == 1 && game.Pegs == 31
		})).Return(nil).Once()

		// When: D2 jumps right
		game, err := svc.MakeMove(ctx, "game1", d2, entity.Right)

		// Then: the updated game is returned
		require.NoError(t, err)
		assert.Equal(t, entity.Occupied, game.Board.At(entity.Center))
	})

	t.Run("Illegal move is not saved", func(t *testing.T) {
		// Given: a stored game
		svc, repo := newTestService(t)
		repo.On("GetByID", ctx, "game1").Return(entity.NewGame("game1"), nil).Once()

		// When: jumping off the board
		game, err := svc.MakeMove(ctx, "game1", d2, entity.Left)

		// Then: the reason is returned with the unchanged game
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		require.ErrorIs(t, err, entity.ErrOffBoard)
		assert.Equal(t, 32, game.Pegs)
		repo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})

	t.Run("Finished game rejects moves", func(t *testing.T) {
		// Given: a finished game
		svc, repo := newTestService(t)
		finished := entity.NewGame("game1")
		finished.Status = entity.StatusFinished
		repo.On("GetByID", ctx, "game1").Return(finished, nil).Once()

		// When: trying to move
		_, err := svc.MakeMove(ctx, "game1", d2, entity.Right)

		// Then: ErrGameFinished is returned
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Unknown game", func(t *testing.T) {
		// Given: the game is not in storage
		svc, repo := newTestService(t)
		repo.On("GetByID", ctx, "nope").Return(&entity.Game{}, repository.ErrGameNotFound).Once()

		// When: trying to move
		game, err := svc.MakeMove(ctx, "nope", d2, entity.Right)

		// Then: the not-found error is propagated
		require.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Nil(t, game)
	})

	t.Run("Save failure", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.On("GetByID", ctx, "game1").Return(entity.NewGame("game1"), nil).Once()
		repo.On("CreateOrUpdate", ctx, mock.Anything).Return(errRedisDown).Once()

		game, err := svc.MakeMove(ctx, "game1", d2, entity.Right)

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, game)
	})
}

func TestGameService_AvailableMoves(t *testing.T) {
	ctx := context.Background()

	// Given: a fresh stored game
	svc, repo := newTestService(t)
	repo.On("GetByID", ctx, "game1").Return(entity.NewGame("game1"), nil).Once()

	// When: asking for a hint
	counts, err := svc.AvailableMoves(ctx, "game1")

	// Then: one jump per direction is available
	require.NoError(t, err)
	assert.Equal(t, entity.MoveCounts{Up: 1, Down: 1, Left: 1, Right: 1}, counts)
}

func TestGameService_DeleteGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes the game", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.On("DeleteByID", ctx, "game1").Return(nil).Once()

		require.NoError(t, svc.DeleteGame(ctx, "game1"))
	})

	t.Run("Propagates not found", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.On("DeleteByID", ctx, "game1").Return(repository.ErrGameNotFound).Once()

		require.ErrorIs(t, svc.DeleteGame(ctx, "game1"), repository.ErrGameNotFound)
	})
}

func TestGameService_WithMemoryRepository(t *testing.T) {
	ctx := context.Background()
	svc := NewGameService(slog.New(slog.NewTextHandler(io.Discard, nil)), repository.NewMemoryGameRepository())

	// Given: a created game
	game, err := svc.CreateGame(ctx)
	require.NoError(t, err)

	// When: playing the opening move
	_, err = svc.MakeMove(ctx, game.ID, d2, entity.Right)
	require.NoError(t, err)

	// Then: the stored game reflects the move
	stored, err := svc.GetGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Moves)
	assert.Equal(t, 31, stored.Pegs)
}

func TestGameService_ConcurrentMoves(t *testing.T) {
	ctx := context.Background()
	svc := NewGameService(slog.New(slog.NewTextHandler(io.Discard, nil)), repository.NewMemoryGameRepository()).(*gameService)

	// Given: a fresh game where all four opening jumps land on the centre
	game, err := svc.CreateGame(ctx)
	require.NoError(t, err)

	openings := []struct {
		origin entity.Coord
		dir    entity.Direction
	}{
		{origin: d2, dir: entity.Right},
		{origin: entity.Coord{Row: 3, Col: 5}, dir: entity.Left},
		{origin: entity.Coord{Row: 1, Col: 3}, dir: entity.Down},
		{origin: entity.Coord{Row: 5, Col: 3}, dir: entity.Up},
	}

	// When: many players send them at the same time
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)

	for range 8 {
		for _, opening := range openings {
			wg.Add(1)

			go func() {
				defer wg.Done()

				_, err := svc.MakeMove(ctx, game.ID, opening.origin, opening.dir)
				if err != nil {
					assert.ErrorIs(t, err, entity.ErrOccupiedDestination)
					return
				}

				mu.Lock()
				succeeded++
				mu.Unlock()
			}()
		}
	}

	wg.Wait()

	// Then: exactly one jump was accepted and it is the one that was stored
	assert.Equal(t, 1, succeeded)

	stored, err := svc.GetGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Moves)
	assert.Equal(t, 31, stored.Pegs)
	assert.Zero(t, svc.locks.len())
}
