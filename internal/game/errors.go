package game

import "errors"

// Precondition and state errors returned by the engine. Callers match them
// with errors.Is; most are wrapped with the offending coordinates or value.
var (
	ErrInvalidDimensions      = errors.New("board width and height must be equal and at least 4")
	ErrInvalidName            = errors.New("name must contain at least one non-whitespace character")
	ErrInvalidShotCount       = errors.New("shot count out of range")
	ErrOutOfBounds            = errors.New("coordinates are out of bounds")
	ErrAlreadyHit             = errors.New("position is already hit")
	ErrAlreadyShipped         = errors.New("position already contains a ship")
	ErrOccupied               = errors.New("position is occupied by another ship")
	ErrNoShotsLeft            = errors.New("no shots left this turn")
	ErrWrongPhase             = errors.New("action not allowed in the current phase")
	ErrMalformedRecord        = errors.New("malformed save record")
	ErrPlacementUnsatisfiable = errors.New("could not place all battleships")
	ErrPlayerMismatch         = errors.New("players do not belong to the same game")
)
