package apperror

import "errors"

var (
	ErrGameFinished = errors.New("game is already finished")
	ErrIllegalMove  = errors.New("illegal move")
	ErrNotFound     = errors.New("not found")
)
