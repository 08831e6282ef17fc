package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden access")
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInternalError = errors.New("internal server error")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrSessionNotFound    = errors.New("session not found")
	ErrUserInactive       = errors.New("user is inactive")
)

// Organization errors
var (
	ErrDepartmentNotEmpty = errors.New("department still has teams")
)

// Minutes errors
var (
	ErrInvalidMeetingDate = errors.New("meeting date must be YYYY-MM-DD")
	ErrEmptyRawText       = errors.New("raw text is empty")
	ErrItemNotInMinute    = errors.New("item does not belong to this minute")
	ErrTranscriptMissing  = errors.New("no archived transcript for this minute")
	ErrTranscriptStorage  = errors.New("transcript storage unavailable")
	ErrMeetingArchived    = errors.New("meeting is archived")
)
