package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput     = errors.New("something wrong with your input")
	ErrForbiddenCell    = errors.New("given peg position is out of board")
	ErrInvalidDirection = errors.New("direction is not L or R or U or D")
)

// Coord addresses a cell by zero-based row (A..G) and column (1..7).
type Coord struct {
	Row int
	Col int
}

// PlayableCoords returns the 33 cells of the cross in row-major order.
func PlayableCoords() []Coord {
	return playable[:]
}

var playable = func() [33]Coord {
	var coords [33]Coord

	i := 0
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			coord := Coord{Row: row, Col: col}
			if coord.IsPlayable() {
				coords[i] = coord
				i++
			}
		}
	}

	return coords
}()

func (that Coord) OnGrid() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

// IsPlayable is false for off-grid coordinates and for the 2x2 corner blocks.
func (that Coord) IsPlayable() bool {
	if !that.OnGrid() {
		return false
	}

	inCornerRows := that.Row < 2 || that.Row > 4
	inCornerCols := that.Col < 2 || that.Col > 4

	return !(inCornerRows && inCornerCols)
}

// Shift moves the coordinate steps cells towards dir. The result may be off the grid.
func (that Coord) Shift(dir Direction, steps int) Coord {
	dRow, dCol := dir.Delta()
	return Coord{Row: that.Row + dRow*steps, Col: that.Col + dCol*steps}
}

func (that Coord) String() string {
	if !that.OnGrid() {
		return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
	}

	return string([]byte{byte('A' + that.Row), byte('1' + that.Col)})
}

func (that Coord) MarshalText() ([]byte, error) {
	if !that.OnGrid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, that)
	}

	return []byte(that.String()), nil
}

func (that *Coord) UnmarshalText(text []byte) error {
	coord, err := ParseCoord(string(text))
	if err != nil {
		return err
	}

	*that = coord

	return nil
}

// ParseCoord reads labels like "D2" or "d2".
func ParseCoord(s string) (Coord, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 2 {
		return Coord{}, fmt.Errorf("%w: %q", ErrInvalidInput, s)
	}

	coord := Coord{Row: int(s[0]) - 'A', Col: int(s[1]) - '1'}
	if !coord.OnGrid() {
		return Coord{}, fmt.Errorf("%w: %q", ErrInvalidInput, s)
	}

	if !coord.IsPlayable() {
		return Coord{}, fmt.Errorf("%w: %s", ErrForbiddenCell, s)
	}

	return coord, nil
}

// Direction is one of the four orthogonal jumps. The zero value is invalid.
type Direction int

const (
	Up Direction = iota + 1
	Down
	Left
	Right
)

// Directions lists the valid directions in the order moves are scanned.
var Directions = [4]Direction{Up, Down, Right, Left}

func (that Direction) IsValid() bool {
	return that >= Up && that <= Right
}

// Delta is the single-step vector; rows grow downwards from A to G.
func (that Direction) Delta() (int, int) {
	switch that {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	default:
		return 0, 0
	}
}

func (that Direction) String() string {
	switch that {
	case Up:
		return "U"
	case Down:
		return "D"
	case Left:
		return "L"
	case Right:
		return "R"
	default:
		return "?"
	}
}

func (that Direction) MarshalText() ([]byte, error) {
	if !that.IsValid() {
		return nil, ErrInvalidDirection
	}

	return []byte(that.String()), nil
}

func (that *Direction) UnmarshalText(text []byte) error {
	dir, err := ParseDirection(string(text))
	if err != nil {
		return err
	}

	*that = dir

	return nil
}

// ParseDirection accepts the single letters U, D, L, R in either case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "U":
		return Up, nil
	case "D":
		return Down, nil
	case "L":
		return Left, nil
	case "R":
		return Right, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// ParseMove splits a three character command such as "D2R" into origin and direction.
func ParseMove(s string) (Coord, Direction, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 3 {
		return Coord{}, 0, fmt.Errorf("%w: %q", ErrInvalidInput, s)
	}

	origin, err := ParseCoord(s[:2])
	if err != nil {
		return Coord{}, 0, err
	}

	dir, err := ParseDirection(s[2:])
	if err != nil {
		return Coord{}, 0, err
	}

	return origin, dir, nil
}
