package handler

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/common"
	meetingDTO "github.com/johnquangdev/meeting-minutes/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/meeting"
)

// Meeting handles meeting HTTP requests
type Meeting struct {
	service meeting.Service
	logger  *zap.Logger
}

// NewMeeting creates a new meeting handler
func NewMeeting(service meeting.Service, logger *zap.Logger) *Meeting {
	return &Meeting{service: service, logger: logger}
}

// List godoc
// @Summary      List meetings
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        team_id           query     string  false  "Filter by team"
// @Param        include_archived  query     bool    false  "Include archived meetings"
// @Param        page              query     int     false  "Page number (default: 1)"
// @Param        limit             query     int     false  "Items per page (default: 20, max: 100)"
// @Success      200               {object}  common.ListResponse
// @Router       /meetings [get]
func (h *Meeting) List(c echo.Context) error {
	teamID, err := queryUUID(c, "team_id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	includeArchived, _ := strconv.ParseBool(c.QueryParam("include_archived"))

	meetings, total, err := h.service.List(c.Request().Context(), meeting.ListInput{
		TeamID:          teamID,
		IncludeArchived: includeArchived,
		Page:            page,
		Limit:           limit,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	pageSize, _ := meeting.Paginate(page, limit)
	return HandleSuccess(h.logger, c, common.ListResponse{
		Items:      presenter.ToMeetingList(meetings),
		Pagination: common.NewPagination(page, pageSize, total),
	})
}

// Get godoc
// @Summary      Get meeting
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  meeting.MeetingResponse
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id} [get]
func (h *Meeting) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	m, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// Create godoc
// @Summary      Create meeting
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      meeting.CreateMeetingRequest  true  "Meeting"
// @Success      201      {object}  meeting.MeetingResponse
// @Failure      404      {object}  map[string]interface{}  "Team not found"
// @Router       /meetings [post]
func (h *Meeting) Create(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthorized("User not authenticated"))
	}
	var req meetingDTO.CreateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.service.Create(c.Request().Context(), meeting.CreateInput{
		TeamID:      uuid.MustParse(req.TeamID),
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   userID,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToMeetingResponse(m))
}

// Update godoc
// @Summary      Update meeting
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "Meeting ID (UUID)"
// @Param        request  body      meeting.UpdateMeetingRequest  true  "Fields to change"
// @Success      200      {object}  meeting.MeetingResponse
// @Router       /meetings/{id} [put]
func (h *Meeting) Update(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req meetingDTO.UpdateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	in := meeting.UpdateInput{Name: req.Name, Description: req.Description}
	if req.TeamID != nil {
		teamID := uuid.MustParse(*req.TeamID)
		in.TeamID = &teamID
	}

	m, err := h.service.Update(c.Request().Context(), id, in)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// Delete godoc
// @Summary      Delete meeting
// @Tags         Meetings
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  map[string]interface{}
// @Router       /meetings/{id} [delete]
func (h *Meeting) Delete(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, nil)
}

// Archive godoc
// @Summary      Archive meeting
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  meeting.MeetingResponse
// @Router       /meetings/{id}/archive [post]
func (h *Meeting) Archive(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	m, err := h.service.Archive(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// Restore godoc
// @Summary      Restore archived meeting
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  meeting.MeetingResponse
// @Router       /meetings/{id}/restore [post]
func (h *Meeting) Restore(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	m, err := h.service.Restore(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}
