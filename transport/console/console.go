package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
)

const prompt = "Enter peg position followed by move (L, R, U, or D): "

type gameService interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	MakeMove(ctx context.Context, id string, origin entity.Coord, dir entity.Direction) (*entity.Game, error)
	AvailableMoves(ctx context.Context, id string) (entity.MoveCounts, error)
}

// Console plays a single game over a line-oriented reader and writer.
type Console struct {
	logger   *slog.Logger
	service  gameService
	in       *bufio.Scanner
	out      io.Writer
	showHelp bool
}

func New(logger *slog.Logger, service gameService, in io.Reader, out io.Writer, showHelp bool) *Console {
	return &Console{
		logger:   logger.With("component", "console"),
		service:  service,
		in:       bufio.NewScanner(in),
		out:      out,
		showHelp: showHelp,
	}
}

// Play runs one game until no jump is left or the input ends, and returns the
// last state of the game.
func (that *Console) Play(ctx context.Context) (*entity.Game, error) {
	game, err := that.service.CreateGame(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	that.logger.Info("game started", "gameID", game.ID)
	that.printf("%s", game.Board)

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()

	lines, readErr := that.readLines(readCtx)

	for game.IsOngoing() {
		if err = ctx.Err(); err != nil {
			return game, err
		}

		if that.showHelp {
			if err = that.printHelp(ctx, game.ID); err != nil {
				return game, err
			}
		}

		that.printf("%s", prompt)

		var (
			line string
			ok   bool
		)

		select {
		case <-ctx.Done():
			return game, ctx.Err()
		case line, ok = <-lines:
		}

		// a line and the cancellation may arrive together
		if err = ctx.Err(); err != nil {
			return game, err
		}

		if !ok {
			if err = <-readErr; err != nil {
				return game, fmt.Errorf("failed to read input: %w", err)
			}

			that.logger.Info("input closed", "gameID", game.ID, "pegs", game.Pegs)
			return game, nil
		}

		origin, dir, err := entity.ParseMove(line)
		if err != nil {
			that.printf("%s\n", describe(err, origin, dir))
			continue
		}

		updated, err := that.service.MakeMove(ctx, game.ID, origin, dir)
		if err != nil {
			if !isRuleError(err) {
				return game, err
			}

			that.printf("%s\n", describe(err, origin, dir))
			continue
		}

		game = updated
		that.printf("%s", game.Board)
	}

	that.printf("No more moves. The number of remaining pegs is: %d\n", game.Pegs)

	return game, nil
}

// readLines scans input in the background so that a blocked read does not hold
// up cancellation. readErr receives exactly one value once lines is closed.
func (that *Console) readLines(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		for that.in.Scan() {
			select {
			case lines <- that.in.Text():
			case <-ctx.Done():
				readErr <- ctx.Err()
				return
			}
		}

		readErr <- that.in.Err()
	}()

	return lines, readErr
}

func (that *Console) printHelp(ctx context.Context, gameID string) error {
	counts, err := that.service.AvailableMoves(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to count moves: %w", err)
	}

	that.printf("\nAvailable moves:\n--------------------\n")
	that.printf("UP MOVEMENTS: %d\n", counts.Up)
	that.printf("DOWN MOVEMENTS: %d\n", counts.Down)
	that.printf("RIGHT MOVEMENTS: %d\n", counts.Right)
	that.printf("LEFT MOVEMENTS: %d\n", counts.Left)
	that.printf("--------------------\n")

	return nil
}

func (that *Console) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}

func isRuleError(err error) bool {
	return errors.Is(err, entity.ErrOffBoard) ||
		errors.Is(err, entity.ErrEmptyOrigin) ||
		errors.Is(err, entity.ErrEmptyMidpoint) ||
		errors.Is(err, entity.ErrOccupiedDestination)
}

var directionNames = map[entity.Direction]string{
	entity.Up:    "up",
	entity.Down:  "down",
	entity.Left:  "left",
	entity.Right: "right",
}

// describe turns a parse or rule error into the line shown to the player.
func describe(err error, origin entity.Coord, dir entity.Direction) string {
	switch {
	case errors.Is(err, entity.ErrForbiddenCell):
		return "Given peg position is out of board!"
	case errors.Is(err, entity.ErrInvalidDirection):
		return "Direction is not L or R or U or D!"
	case errors.Is(err, entity.ErrInvalidInput):
		return "Something wrong with your input!"
	case errors.Is(err, entity.ErrOffBoard):
		// jumping past the grid edge reads differently from landing on a corner
		if !origin.Shift(dir, 2).OnGrid() {
			return fmt.Sprintf("You cannot move %s from here!", directionNames[dir])
		}
		return "Moving peg will fall out of bounds!"
	case errors.Is(err, entity.ErrEmptyOrigin):
		return "Given peg position does not have a peg!"
	case errors.Is(err, entity.ErrEmptyMidpoint):
		return "No peg at next position to jump over!"
	case errors.Is(err, entity.ErrOccupiedDestination):
		return "Landing position is occupied!"
	default:
		return err.Error()
	}
}
