package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/pkg/reldate"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance with the isodate and
// itemstatus tags registered
func New() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("isodate", isoDate)
	_ = v.RegisterValidation("itemstatus", itemStatus)
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// isoDate accepts YYYY-MM-DD; empty strings are left to `required`
func isoDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || reldate.IsDate(s)
}

func itemStatus(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, ok := entities.ParseItemStatus(s)
	return ok
}
