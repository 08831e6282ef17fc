package handler

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/auth"
	ucErrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/formatter"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/formatter/heuristic"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/minutes"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/organization"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
	"github.com/johnquangdev/meeting-minutes/pkg/validator"
)

var (
	memberUser  = &entities.User{ID: uuid.New(), Email: "member@example.com", Name: "Member", Role: entities.RoleMember, IsActive: true}
	managerUser = &entities.User{ID: uuid.New(), Email: "manager@example.com", Name: "Manager", Role: entities.RoleManager, IsActive: true}
)

type stubAuth struct {
	auth.Service
}

func (stubAuth) ValidateAccessToken(_ context.Context, token string) (*entities.User, error) {
	switch token {
	case "member":
		return memberUser, nil
	case "manager":
		return managerUser, nil
	}
	return nil, ucErrors.ErrTokenInvalid
}

func (stubAuth) Login(_ context.Context, email, password string) (*auth.AuthResponse, error) {
	if email == memberUser.Email && password == "correct-horse" {
		return &auth.AuthResponse{User: memberUser, AccessToken: "member", RefreshToken: "refresh", ExpiresIn: 900}, nil
	}
	return nil, ucErrors.ErrInvalidCredentials
}

func (stubAuth) Me(_ context.Context, id uuid.UUID) (*entities.User, error) {
	if id == memberUser.ID {
		return memberUser, nil
	}
	return nil, entities.ErrUserNotFound
}

type stubOrganization struct {
	organization.Service
	created []organization.DepartmentInput
}

func (s *stubOrganization) Board(context.Context) ([]*entities.Department, error) {
	dept := &entities.Department{ID: uuid.New(), Name: "開発部"}
	dept.Teams = []entities.Team{{ID: uuid.New(), DepartmentID: dept.ID, Name: "基盤チーム"}}
	return []*entities.Department{dept}, nil
}

func (s *stubOrganization) CreateDepartment(_ context.Context, in organization.DepartmentInput) (*entities.Department, error) {
	if in.Name == "営業部" {
		return nil, fmt.Errorf("create department: %w", ucErrors.ErrAlreadyExists)
	}
	s.created = append(s.created, in)
	return &entities.Department{ID: uuid.New(), Name: in.Name, DisplayOrder: in.DisplayOrder}, nil
}

func (s *stubOrganization) DeleteDepartment(context.Context, uuid.UUID) error {
	return ucErrors.ErrDepartmentNotEmpty
}

type stubMeetings struct {
	meeting.Service
	lastList meeting.ListInput
}

func (s *stubMeetings) List(_ context.Context, in meeting.ListInput) ([]*entities.Meeting, int64, error) {
	s.lastList = in
	return []*entities.Meeting{{ID: uuid.New(), Name: "週次定例"}}, 45, nil
}

func (s *stubMeetings) Get(context.Context, uuid.UUID) (*entities.Meeting, error) {
	return nil, entities.ErrMeetingNotFound
}

type stubMinutes struct {
	minutes.Service
	rawInput minutes.RawTextInput
}

func (s *stubMinutes) CreateFromRawText(_ context.Context, in minutes.RawTextInput) (*entities.Minute, *formatter.FormatResult, error) {
	s.rawInput = in
	if in.RawText == "fail" {
		return nil, nil, &formatter.FormattingError{Remote: stdErrors.New("remote down"), Local: stdErrors.New("local broke")}
	}
	minuteID := uuid.New()
	deadline := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	return &entities.Minute{
			ID:          minuteID,
			MeetingID:   in.MeetingID,
			MeetingDate: in.MeetingDate,
			Title:       "週次定例 議事録 2026-01-15",
			CreatedBy:   in.CreatedBy,
			Items: []entities.MinuteItem{{
				ID: uuid.New(), MinuteID: minuteID, RowOrder: 1, Agenda: "Wise導入",
				Action: "Wiseを導入する", Assignee: "田中", Deadline: &deadline, Status: entities.StatusPending,
			}},
		}, &formatter.FormatResult{
			Source: entities.FormatSourceLocal, Fallback: true, FallbackReason: "remote_call",
		}, nil
}

func (s *stubMinutes) Transcript(context.Context, uuid.UUID) (string, error) {
	return "", ucErrors.ErrTranscriptMissing
}

type testServer struct {
	e        *echo.Echo
	org      *stubOrganization
	meetings *stubMeetings
	minutes  *stubMinutes
}

func newTestServer(t *testing.T, checks ...HealthCheck) *testServer {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = ErrorHandler(nil)

	org := &stubOrganization{}
	meetings := &stubMeetings{}
	stubMins := &stubMinutes{}

	// Preview runs the real local formatter through a minutes service
	fmtSvc := formatter.NewService(nil, heuristic.Default(), nil, formatter.Options{PreferRemote: true}, nil)
	preview := minutes.NewMinutesService(nil, nil, fmtSvc, nil, nil)

	mins := &minutesRouter{stub: stubMins, preview: preview}

	cfg := &config.Config{}
	cfg.Server.Environment = "test"

	NewRouter(cfg, stubAuth{}, Handlers{
		Auth:         NewAuth(stubAuth{}, nil),
		Organization: NewOrganization(org, nil),
		Meeting:      NewMeeting(meetings, nil),
		Minutes:      NewMinutes(mins, nil),
	}, checks...).Setup(e)

	return &testServer{e: e, org: org, meetings: meetings, minutes: stubMins}
}

// minutesRouter sends Preview to a real service and everything else to the stub
type minutesRouter struct {
	minutes.Service
	stub    *stubMinutes
	preview minutes.Service
}

func (m *minutesRouter) Preview(ctx context.Context, in minutes.RawTextInput) (*formatter.FormatResult, error) {
	return m.preview.Preview(ctx, in)
}

func (m *minutesRouter) CreateFromRawText(ctx context.Context, in minutes.RawTextInput) (*entities.Minute, *formatter.FormatResult, error) {
	return m.stub.CreateFromRawText(ctx, in)
}

func (m *minutesRouter) Transcript(ctx context.Context, id uuid.UUID) (string, error) {
	return m.stub.Transcript(ctx, id)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (int, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get(echo.HeaderContentType) != "" && rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodPost, "/v1/auth/login", "", `{"email":"member@example.com","password":"correct-horse"}`)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	var data struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		User        struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "member", data.AccessToken)
	assert.Equal(t, "Bearer", data.TokenType)
	assert.Equal(t, "member", data.User.Role)

	code, env = s.do(t, http.MethodPost, "/v1/auth/login", "", `{"email":"member@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	code, env = s.do(t, http.MethodPost, "/v1/auth/login", "", `{"email":"not-an-email","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "email", env.Error.Details["Email"])
}

func TestMeRequiresToken(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/v1/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	code, env = s.do(t, http.MethodGet, "/v1/auth/me", "member", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), memberUser.Email)
}

func TestOrganizationRoles(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodPost, "/v1/organization/departments", "member", `{"name":"開発部"}`)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)
	assert.Empty(t, s.org.created)

	code, env = s.do(t, http.MethodPost, "/v1/organization/departments", "manager", `{"name":"開発部","display_order":2}`)
	assert.Equal(t, http.StatusCreated, code)
	assert.True(t, env.Success)
	require.Len(t, s.org.created, 1)
	assert.Equal(t, 2, s.org.created[0].DisplayOrder)

	code, env = s.do(t, http.MethodPost, "/v1/organization/departments", "manager", `{"name":"営業部"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "DUPLICATE_ERROR", env.Error.Code)

	code, env = s.do(t, http.MethodDelete, "/v1/organization/departments/"+uuid.NewString(), "manager", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	code, env = s.do(t, http.MethodGet, "/v1/organization/board", "member", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "基盤チーム")
}

func TestMeetingList(t *testing.T) {
	s := newTestServer(t)
	teamID := uuid.New()

	code, env := s.do(t, http.MethodGet, "/v1/meetings?team_id="+teamID.String()+"&include_archived=true&page=2&limit=20", "member", "")
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, s.meetings.lastList.TeamID)
	assert.Equal(t, teamID, *s.meetings.lastList.TeamID)
	assert.True(t, s.meetings.lastList.IncludeArchived)

	var data struct {
		Pagination struct {
			Page       int   `json:"page"`
			PageSize   int   `json:"page_size"`
			TotalPages int   `json:"total_pages"`
			TotalItems int64 `json:"total_items"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 2, data.Pagination.Page)
	assert.Equal(t, 20, data.Pagination.PageSize)
	assert.Equal(t, 3, data.Pagination.TotalPages)
	assert.EqualValues(t, 45, data.Pagination.TotalItems)

	code, _ = s.do(t, http.MethodGet, "/v1/meetings?team_id=nope", "member", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(t, http.MethodGet, "/v1/meetings/"+uuid.NewString(), "member", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestFormatPreview(t *testing.T) {
	s := newTestServer(t)
	body := `{"meeting_date":"2026-01-15","raw_text":"田中：来週までにWiseの導入を検討して報告します。","local_only":true}`

	code, env := s.do(t, http.MethodPost, "/v1/minutes/format", "member", body)
	require.Equal(t, http.StatusOK, code, string(env.Data))

	var data struct {
		Items []struct {
			Agenda   string  `json:"agenda"`
			Assignee string  `json:"assignee"`
			Deadline *string `json:"deadline"`
			Status   string  `json:"status"`
		} `json:"items"`
		Meta struct {
			Source string `json:"source"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Items)
	assert.Equal(t, "local", data.Meta.Source)
	for _, it := range data.Items {
		assert.NotEmpty(t, it.Agenda)
		assert.NotEmpty(t, it.Assignee)
		if it.Deadline != nil {
			assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, *it.Deadline)
		}
	}

	code, env = s.do(t, http.MethodPost, "/v1/minutes/format", "member", `{"meeting_date":"15/01/2026","raw_text":"x"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "isodate", env.Error.Details["MeetingDate"])
}

func TestFormatRejectsUnknownModel(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodPost, "/v1/minutes/format", "member",
		`{"meeting_date":"2026-01-15","raw_text":"予算の件","model_preference":"model-x-1"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "oneof", env.Error.Details["ModelPreference"])

	code, env = s.do(t, http.MethodPost, "/v1/minutes/format", "member",
		`{"meeting_date":"2026-01-15","raw_text":"`+strings.Repeat("あ", 200001)+`"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "max", env.Error.Details["RawText"])
}

func TestCreateFromText(t *testing.T) {
	s := newTestServer(t)
	meetingID := uuid.New()

	code, env := s.do(t, http.MethodPost, "/v1/minutes/ai", "member",
		`{"meeting_id":"`+meetingID.String()+`","meeting_date":"2026-01-15","raw_text":"Wise導入の件","model_preference":"gpt-5-mini"}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, meetingID, s.minutes.rawInput.MeetingID)
	assert.Equal(t, memberUser.ID, s.minutes.rawInput.CreatedBy)
	assert.Equal(t, "gpt-5-mini", s.minutes.rawInput.ModelPreference)

	var data struct {
		Minute struct {
			MeetingDate string `json:"meeting_date"`
			Items       []struct {
				RowOrder int     `json:"row_order"`
				Deadline *string `json:"deadline"`
			} `json:"items"`
		} `json:"minute"`
		Meta struct {
			Source         string `json:"source"`
			Fallback       bool   `json:"fallback"`
			FallbackReason string `json:"fallback_reason"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "2026-01-15", data.Minute.MeetingDate)
	require.Len(t, data.Minute.Items, 1)
	assert.Equal(t, 1, data.Minute.Items[0].RowOrder)
	require.NotNil(t, data.Minute.Items[0].Deadline)
	assert.Equal(t, "2026-02-28", *data.Minute.Items[0].Deadline)
	assert.True(t, data.Meta.Fallback)
	assert.Equal(t, "remote_call", data.Meta.FallbackReason)

	code, env = s.do(t, http.MethodPost, "/v1/minutes/ai", "member", `{"meeting_date":"2026-01-15","raw_text":"x"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "required", env.Error.Details["meeting_id"])

	code, env = s.do(t, http.MethodPost, "/v1/minutes/ai", "member",
		`{"meeting_id":"`+meetingID.String()+`","meeting_date":"2026-01-15","raw_text":"fail"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "FORMATTING_ERROR", env.Error.Code)
}

func TestTranscriptMissing(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/v1/minutes/"+uuid.NewString()+"/transcript", "member", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	code, _ = s.do(t, http.MethodGet, "/v1/minutes/not-a-uuid/transcript", "member", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t,
		HealthCheck{Name: "database", Ping: func(context.Context) error { return nil }},
		HealthCheck{Name: "cache", Ping: func(context.Context) error { return stdErrors.New("connection refused") }},
	)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body struct {
		Status       string            `json:"status"`
		Dependencies map[string]string `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "ok", body.Dependencies["database"])
	assert.Contains(t, body.Dependencies["cache"], "connection refused")
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/v1/nope", "", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestMapError(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{entities.ErrMinuteNotFound, http.StatusNotFound},
		{fmt.Errorf("wrap: %w", entities.ErrDuplicate), http.StatusConflict},
		{ucErrors.ErrSessionNotFound, http.StatusUnauthorized},
		{ucErrors.ErrUserInactive, http.StatusForbidden},
		{ucErrors.ErrMeetingArchived, http.StatusBadRequest},
		{ucErrors.ErrEmptyRawText, http.StatusBadRequest},
		{ucErrors.ErrInvalidMeetingDate, http.StatusBadRequest},
		{fmt.Errorf("%w: %w", ucErrors.ErrTranscriptStorage, stdErrors.New("connection refused")), http.StatusInternalServerError},
		{&formatter.FormattingError{}, http.StatusUnprocessableEntity},
		{stdErrors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, mapError(tt.err).HTTPCode, tt.err.Error())
	}

	storageErr := mapError(fmt.Errorf("%w: %w", ucErrors.ErrTranscriptStorage, stdErrors.New("timeout")))
	assert.Equal(t, "STORAGE_ERROR", storageErr.Code.String())
}
