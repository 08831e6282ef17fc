package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Date   string `validate:"required,isodate"`
	Status string `validate:"omitempty,itemstatus"`
}

func TestValidate(t *testing.T) {
	cv := New()

	assert.NoError(t, cv.Validate(sample{Date: "2026-01-15"}))
	assert.NoError(t, cv.Validate(sample{Date: "2026-01-15", Status: "in_progress"}))
	assert.NoError(t, cv.Validate(sample{Date: "2026-01-15", Status: "完了"}))

	assert.Error(t, cv.Validate(sample{}))
	assert.Error(t, cv.Validate(sample{Date: "2026/01/15"}))
	assert.Error(t, cv.Validate(sample{Date: "2026-02-30"}))
	assert.Error(t, cv.Validate(sample{Date: "2026-01-15", Status: "someday"}))
}
