package entity

import (
	"errors"
	"strings"
)

const BoardSize = 7

// Cell is the state of a single board position.
type Cell int

const (
	Forbidden Cell = iota
	Empty
	Occupied
)

var (
	ErrOffBoard            = errors.New("moving peg will fall out of bounds")
	ErrEmptyOrigin         = errors.New("given peg position does not have a peg")
	ErrEmptyMidpoint       = errors.New("no peg at next position to jump over")
	ErrOccupiedDestination = errors.New("landing position is occupied")
)

// Center is the only hole on a fresh board.
var Center = Coord{Row: 3, Col: 3}

// Board is the 7x7 English cross. The 16 corner cells stay Forbidden for the
// whole life of the board.
type Board struct {
	Cells [BoardSize][BoardSize]Cell `json:"cells"`
}

// Move is a single jump: a peg at From passes over Over and lands on To.
type Move struct {
	From      Coord     `json:"from"`
	Direction Direction `json:"direction"`
	Over      Coord     `json:"over"`
	To        Coord     `json:"to"`
}

// MoveCounts tallies the legal jumps per direction.
type MoveCounts struct {
	Up    int `json:"up"`
	Down  int `json:"down"`
	Left  int `json:"left"`
	Right int `json:"right"`
}

func (that MoveCounts) Total() int {
	return that.Up + that.Down + that.Left + that.Right
}

func NewBoard() *Board {
	board := &Board{}

	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			coord := Coord{Row: row, Col: col}
			switch {
			case !coord.IsPlayable():
				board.Cells[row][col] = Forbidden
			case coord == Center:
				board.Cells[row][col] = Empty
			default:
				board.Cells[row][col] = Occupied
			}
		}
	}

	return board
}

// NewEmptyBoard returns a board with every playable cell empty.
func NewEmptyBoard() *Board {
	board := &Board{}

	for _, coord := range PlayableCoords() {
		board.Cells[coord.Row][coord.Col] = Empty
	}

	return board
}

// At returns Forbidden for anything off the cross, including off-grid coordinates.
func (that *Board) At(coord Coord) Cell {
	if !coord.IsPlayable() {
		return Forbidden
	}

	return that.Cells[coord.Row][coord.Col]
}

// Set changes a playable cell. Forbidden coordinates are ignored.
func (that *Board) Set(coord Coord, cell Cell) {
	if !coord.IsPlayable() || cell == Forbidden {
		return
	}

	that.Cells[coord.Row][coord.Col] = cell
}

// CheckMove reports why a jump is illegal, or nil when it can be applied.
func (that *Board) CheckMove(origin Coord, dir Direction) error {
	if !origin.IsPlayable() || !dir.IsValid() {
		return ErrOffBoard
	}

	over := origin.Shift(dir, 1)
	to := origin.Shift(dir, 2)

	// the destination lies on the same line as the midpoint, so checking both
	// covers the corner cutouts as well as the grid edge
	if !over.IsPlayable() || !to.IsPlayable() {
		return ErrOffBoard
	}

	if that.At(origin) != Occupied {
		return ErrEmptyOrigin
	}

	if that.At(over) != Occupied {
		return ErrEmptyMidpoint
	}

	if that.At(to) != Empty {
		return ErrOccupiedDestination
	}

	return nil
}

func (that *Board) IsLegal(origin Coord, dir Direction) bool {
	return that.CheckMove(origin, dir) == nil
}

// ApplyMove performs the jump without validation; callers check IsLegal first.
func (that *Board) ApplyMove(origin Coord, dir Direction) {
	that.Set(origin, Empty)
	that.Set(origin.Shift(dir, 1), Empty)
	that.Set(origin.Shift(dir, 2), Occupied)
}

func (that *Board) HasAnyLegalMove() bool {
	for _, coord := range PlayableCoords() {
		for _, dir := range Directions {
			if that.IsLegal(coord, dir) {
				return true
			}
		}
	}

	return false
}

func (that *Board) CountOccupied() int {
	count := 0
	for _, coord := range PlayableCoords() {
		if that.At(coord) == Occupied {
			count++
		}
	}

	return count
}

// LegalMoves lists every jump available on the board, row by row.
func (that *Board) LegalMoves() []Move {
	var moves []Move

	for _, coord := range PlayableCoords() {
		for _, dir := range Directions {
			if that.IsLegal(coord, dir) {
				moves = append(moves, Move{
					From:      coord,
					Direction: dir,
					Over:      coord.Shift(dir, 1),
					To:        coord.Shift(dir, 2),
				})
			}
		}
	}

	return moves
}

func (that *Board) MoveCounts() MoveCounts {
	var counts MoveCounts

	for _, move := range that.LegalMoves() {
		switch move.Direction {
		case Up:
			counts.Up++
		case Down:
			counts.Down++
		case Left:
			counts.Left++
		case Right:
			counts.Right++
		}
	}

	return counts
}

// String draws the board with column numbers on top and row letters on the
// left. Pegs are 1, holes are 0 and the corners are left blank.
func (that *Board) String() string {
	var sb strings.Builder

	sb.WriteString(" ")
	for col := 0; col < BoardSize; col++ {
		sb.WriteString(" ")
		sb.WriteByte(byte('1' + col))
	}
	sb.WriteString("\n")

	for row := 0; row < BoardSize; row++ {
		sb.WriteByte(byte('A' + row))
		for col := 0; col < BoardSize; col++ {
			sb.WriteString(" ")
			switch that.Cells[row][col] {
			case Occupied:
				sb.WriteString("1")
			case Empty:
				sb.WriteString("0")
			default:
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
