package computer

import (
	"github.com/pkg/errors"
)

var (
	ErrPlacementExhausted = errors.New("could not find a free spot for a ship")
	ErrNoTargets          = errors.New("every cell has already been attacked")
)
