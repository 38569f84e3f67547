package montyhall

import "errors"

var (
	// ErrInvalidState is returned when an operation is not permitted in the
	// game's current phase. The game is left unchanged.
	ErrInvalidState = errors.New("montyhall: invalid state")

	// ErrInvalidArgument is returned for doors outside the game's door set
	// and for bad construction options. The game is left unchanged.
	ErrInvalidArgument = errors.New("montyhall: invalid argument")
)
