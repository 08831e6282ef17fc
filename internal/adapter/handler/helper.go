package handler

import (
	stdErrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	ucErrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/formatter"
)

// Response shapes
type success struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Success bool    `json:"success"`
	Error   errBody `json:"error"`
}

type errBody struct {
	Code    errors.ErrorCode  `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request or the response
// header set by the RequestID middleware
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized 200 response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusOK, "success", data)
}

// HandleCreated writes a standardized 201 response
func HandleCreated(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusCreated, "created", data)
}

func respond(logger *zap.Logger, c echo.Context, status int, message string, data interface{}) error {
	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Int("status", status),
		)
	}
	return c.JSON(status, success{Success: true, Message: message, Data: data})
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	appErr := mapError(err)

	if logger != nil {
		fields := []zap.Field{
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Stringer("app_code", appErr.Code),
			zap.Error(err),
		}
		if appErr.HTTPCode >= http.StatusInternalServerError {
			logger.Error("http.response.error", fields...)
		} else {
			logger.Warn("http.response.error", fields...)
		}
	}

	return c.JSON(appErr.HTTPCode, errs{
		Error: errBody{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		},
	})
}

// ErrorHandler renders errors that escape handlers and middleware (auth
// failures, unknown routes, panics) in the same envelope
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(mapError(err).HTTPCode)
			return
		}
		_ = HandleError(logger, c, err)
	}
}

// mapError translates use-case and domain errors into AppErrors
func mapError(err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var validationErrs validator.ValidationErrors
	if stdErrors.As(err, &validationErrs) {
		out := errors.ErrInvalidArgument("Validation failed")
		for _, fe := range validationErrs {
			out = out.WithDetail(fe.Field(), fe.Tag())
		}
		return out
	}

	var httpErr *echo.HTTPError
	if stdErrors.As(err, &httpErr) {
		return fromHTTPError(httpErr)
	}

	var fmtErr *formatter.FormattingError
	if stdErrors.As(err, &fmtErr) {
		return errors.ErrFormattingFailed(err)
	}

	switch {
	case stdErrors.Is(err, entities.ErrUserNotFound):
		return errors.ErrNotFound("User")
	case stdErrors.Is(err, entities.ErrDepartmentNotFound):
		return errors.ErrNotFound("Department")
	case stdErrors.Is(err, entities.ErrTeamNotFound):
		return errors.ErrNotFound("Team")
	case stdErrors.Is(err, entities.ErrMeetingNotFound):
		return errors.ErrNotFound("Meeting")
	case stdErrors.Is(err, entities.ErrMinuteNotFound):
		return errors.ErrNotFound("Minute")
	case stdErrors.Is(err, entities.ErrMinuteItemNotFound):
		return errors.ErrNotFound("Minute item")
	case stdErrors.Is(err, ucErrors.ErrTranscriptMissing):
		return errors.ErrNotFound("Transcript")
	case stdErrors.Is(err, ucErrors.ErrTranscriptStorage):
		return errors.ErrStorageFailed("read transcript", err)
	case stdErrors.Is(err, ucErrors.ErrNotFound):
		return errors.ErrNotFound("Resource")

	case stdErrors.Is(err, ucErrors.ErrAlreadyExists), stdErrors.Is(err, entities.ErrDuplicate):
		return errors.ErrDuplicate("Resource")

	case stdErrors.Is(err, ucErrors.ErrInvalidCredentials):
		return errors.ErrInvalidCredentials()
	case stdErrors.Is(err, ucErrors.ErrTokenInvalid):
		return errors.ErrInvalidToken()
	case stdErrors.Is(err, ucErrors.ErrSessionNotFound), stdErrors.Is(err, entities.ErrSessionNotFound):
		return errors.ErrInvalidRefreshToken()
	case stdErrors.Is(err, ucErrors.ErrUnauthorized):
		return errors.ErrUnauthorized("Unauthorized")
	case stdErrors.Is(err, ucErrors.ErrUserInactive):
		return errors.ErrForbidden("User is inactive")
	case stdErrors.Is(err, ucErrors.ErrForbidden):
		return errors.ErrForbidden("Forbidden")

	case stdErrors.Is(err, ucErrors.ErrInvalidInput),
		stdErrors.Is(err, ucErrors.ErrInvalidMeetingDate),
		stdErrors.Is(err, ucErrors.ErrEmptyRawText),
		stdErrors.Is(err, ucErrors.ErrItemNotInMinute),
		stdErrors.Is(err, ucErrors.ErrDepartmentNotEmpty),
		stdErrors.Is(err, ucErrors.ErrMeetingArchived),
		stdErrors.Is(err, entities.ErrInvalidItemStatus),
		stdErrors.Is(err, entities.ErrInvalidEmail),
		stdErrors.Is(err, entities.ErrInvalidName),
		stdErrors.Is(err, entities.ErrInvalidRole),
		stdErrors.Is(err, entities.ErrInvalidPassword):
		return errors.ErrInvalidArgument(rootMessage(err))
	}

	return errors.ErrInternal(err)
}

func fromHTTPError(he *echo.HTTPError) errors.AppError {
	message := http.StatusText(he.Code)
	if s, ok := he.Message.(string); ok && s != "" {
		message = s
	}
	switch he.Code {
	case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
		out := errors.ErrInvalidPayload(he)
		out.HTTPCode = he.Code
		return out
	case http.StatusUnauthorized:
		return errors.ErrUnauthorized(message)
	case http.StatusForbidden:
		return errors.ErrForbidden(message)
	case http.StatusNotFound:
		return errors.ErrNotFound("Route")
	}
	out := errors.ErrInternal(he)
	if he.Code < http.StatusInternalServerError {
		out = errors.ErrInvalidArgument(message)
	}
	out.HTTPCode = he.Code
	return out
}

// rootMessage returns the wrapped chain's message with the first letter
// upper-cased, e.g. "meeting is archived" -> "Meeting is archived"
func rootMessage(err error) string {
	msg := err.Error()
	if msg == "" {
		return "Invalid argument"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// bindAndValidate binds the request body into req and runs the registered
// validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload(err)
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}

// pathUUID parses a UUID path parameter
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument("Invalid " + name)
	}
	return id, nil
}

// queryUUID parses an optional UUID query parameter
func queryUUID(c echo.Context, name string) (*uuid.UUID, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errors.ErrInvalidArgument("Invalid " + name)
	}
	return &id, nil
}

// queryInt parses an optional integer query parameter, returning def when absent
func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.ErrInvalidArgument("Invalid " + name)
	}
	return n, nil
}
