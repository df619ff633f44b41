package engine

import (
	"github.com/pkg/errors"
)

var (
	ErrOutOfBounds     = errors.New("cell is out of the board")
	ErrOverlap         = errors.New("ship overlaps another ship")
	ErrQuotaExceeded   = errors.New("ship quota already reached")
	ErrWrongTurn       = errors.New("it's not this side's turn")
	ErrWrongPhase      = errors.New("action is not allowed in the current phase")
	ErrInvalidSide     = errors.New("invalid side")
	ErrInvalidRules    = errors.New("invalid rules")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)
