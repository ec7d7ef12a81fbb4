package model

import "errors"

// Common errors used across the application. Command rejections inside the
// room engine are not errors: they are typed reject reasons (see
// internal/engine) that are deliberately never surfaced to clients.
var (
	// Identity errors
	ErrIdentityNotFound = errors.New("identity not found")

	// Room errors
	ErrRoomNotFound = errors.New("room not found")
)
