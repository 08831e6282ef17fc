package formatter

import (
	"errors"
	"fmt"
)

// RemoteCallError is a network or HTTP failure calling the completion endpoint
type RemoteCallError struct {
	Model      string
	StatusCode int
	Err        error
}

func (e *RemoteCallError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("remote formatter call failed (model %s, status %d): %v", e.Model, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("remote formatter call failed (model %s): %v", e.Model, e.Err)
}

func (e *RemoteCallError) Unwrap() error { return e.Err }

// SchemaError means the model answered but not with an item array
type SchemaError struct {
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unexpected remote response shape: %s: %v", e.Reason, e.Err)
	}
	return "unexpected remote response shape: " + e.Reason
}

func (e *SchemaError) Unwrap() error { return e.Err }

// FormattingError is returned only when neither path produced items
type FormattingError struct {
	Remote error
	Local  error
}

func (e *FormattingError) Error() string {
	return fmt.Sprintf("minutes formatting failed: remote: %v; local: %v", e.Remote, e.Local)
}

func (e *FormattingError) Unwrap() []error {
	var errs []error
	if e.Remote != nil {
		errs = append(errs, e.Remote)
	}
	if e.Local != nil {
		errs = append(errs, e.Local)
	}
	return errs
}

// ErrRemoteDisabled is reported when no API key is configured
var ErrRemoteDisabled = errors.New("remote formatter is not configured")

// fallbackReason is the metric/metadata label for a remote failure
func fallbackReason(err error) string {
	var (
		callErr   *RemoteCallError
		schemaErr *SchemaError
	)
	switch {
	case errors.Is(err, ErrRemoteDisabled):
		return "disabled"
	case errors.As(err, &schemaErr):
		return "schema"
	case errors.As(err, &callErr):
		return "remote_call"
	default:
		return "unknown"
	}
}
