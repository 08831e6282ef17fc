package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/auth"
)

type stubAuth struct {
	auth.Service
	user *entities.User
}

func (s *stubAuth) ValidateAccessToken(_ context.Context, token string) (*entities.User, error) {
	if token == "good" {
		return s.user, nil
	}
	return nil, errors.New("bad token")
}

func run(t *testing.T, header string, mw ...echo.MiddlewareFunc) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	h := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return c, h(c)
}

func TestEchoAuth(t *testing.T) {
	user := &entities.User{ID: uuid.New(), Role: entities.RoleMember}
	svc := &stubAuth{user: user}

	c, err := run(t, "Bearer good", EchoAuth(svc))
	require.NoError(t, err)
	got, ok := CurrentUser(c)
	require.True(t, ok)
	assert.Equal(t, user.ID, got.ID)
	id, ok := CurrentUserID(c)
	require.True(t, ok)
	assert.Equal(t, user.ID, id)

	for _, header := range []string{"", "Bearer bad", "Basic good"} {
		_, err := run(t, header, EchoAuth(svc))
		var appErr apperrors.AppError
		require.True(t, errors.As(err, &appErr), "header %q", header)
		assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode)
	}
}

func TestRequireRole(t *testing.T) {
	member := &stubAuth{user: &entities.User{ID: uuid.New(), Role: entities.RoleMember}}
	manager := &stubAuth{user: &entities.User{ID: uuid.New(), Role: entities.RoleManager}}
	writers := RequireRole(entities.RoleAdmin, entities.RoleManager)

	_, err := run(t, "Bearer good", EchoAuth(manager), writers)
	assert.NoError(t, err)

	_, err = run(t, "Bearer good", EchoAuth(member), writers)
	var appErr apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusForbidden, appErr.HTTPCode)

	_, err = run(t, "", writers)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode)
}
