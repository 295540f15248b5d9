package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

type Game struct {
	ID     string `json:"id"`
	Board  *Board `json:"board"`
	Status string `json:"status"`
	Moves  int    `json:"moves"`
	Pegs   int    `json:"pegs"`
}

func NewGame(id string) *Game {
	board := NewBoard()

	return &Game{
		ID:     id,
		Board:  board,
		Status: StatusOngoing,
		Pegs:   board.CountOccupied(),
	}
}

// MakeMove validates and applies a jump, then finishes the game when no jump is left.
func (that *Game) MakeMove(origin Coord, dir Direction) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if err := that.Board.CheckMove(origin, dir); err != nil {
		return fmt.Errorf("%w: %s%s: %w", apperror.ErrIllegalMove, origin, dir, err)
	}

	that.Board.ApplyMove(origin, dir)
	that.Moves++

	that.UpdateGameState()

	return nil
}

func (that *Game) UpdateGameState() {
	that.Pegs = that.Board.CountOccupied()

	if that.Board.HasAnyLegalMove() {
		that.Status = StatusOngoing
		return
	}

	that.Status = StatusFinished
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

// IsSolved reports a finished game with a single peg left.
func (that *Game) IsSolved() bool {
	return that.IsFinished() && that.Pegs == 1
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
