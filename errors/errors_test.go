package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := ErrNotFound("Minute")
	assert.Equal(t, "[NOT_FOUND] Minute not found", err.Error())
	assert.Equal(t, http.StatusNotFound, err.HTTPCode)

	raw := stdErrors.New("connection refused")
	wrapped := ErrStorageFailed("read transcript", raw)
	assert.Contains(t, wrapped.Error(), "connection refused")
	assert.True(t, stdErrors.Is(wrapped, raw))
}

func TestAppError_WithDetail(t *testing.T) {
	base := ErrInvalidArgument("bad date")
	withDetail := base.WithDetail("field", "meeting_date")

	assert.Nil(t, base.Details)
	assert.Equal(t, "meeting_date", withDetail.Details["field"])
}

func TestErrorCode_MarshalText(t *testing.T) {
	text, err := ErrorCode_DUPLICATE.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "DUPLICATE_ERROR", string(text))
	assert.Equal(t, "INTERNAL_ERROR", ErrorCode(99).String())
}
