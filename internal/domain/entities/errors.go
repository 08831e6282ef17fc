package entities

import "errors"

// Domain errors
var (
	// User errors
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidPassword = errors.New("invalid password")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Organization errors
	ErrDepartmentNotFound = errors.New("department not found")
	ErrTeamNotFound       = errors.New("team not found")

	// Meeting and minutes errors
	ErrMeetingNotFound    = errors.New("meeting not found")
	ErrMinuteNotFound     = errors.New("minute not found")
	ErrMinuteItemNotFound = errors.New("minute item not found")
	ErrInvalidItemStatus  = errors.New("invalid item status")

	// ErrDuplicate is returned by repositories on a unique constraint violation
	ErrDuplicate = errors.New("duplicate record")
)
