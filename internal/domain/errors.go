package domain

import "errors"

// Domain errors
var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomFull        = errors.New("room is full")
	ErrGameInProgress  = errors.New("game already in progress")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrNotHost         = errors.New("only host can perform this action")
	ErrInvalidPhase    = errors.New("invalid action for current phase")
	ErrInvalidMode     = errors.New("unknown game mode")
	ErrInvalidDuration = errors.New("game duration must be positive")
)
