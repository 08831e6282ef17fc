package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/common"
	minutesDTO "github.com/johnquangdev/meeting-minutes/internal/adapter/dto/minutes"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/minutes"
	"github.com/johnquangdev/meeting-minutes/pkg/reldate"
)

// Minutes handles minute and minute-item HTTP requests
type Minutes struct {
	service minutes.Service
	logger  *zap.Logger
}

// NewMinutes creates a new minutes handler
func NewMinutes(service minutes.Service, logger *zap.Logger) *Minutes {
	return &Minutes{service: service, logger: logger}
}

// List godoc
// @Summary      List minutes
// @Description  Minutes without items, newest meeting date first
// @Tags         Minutes
// @Produce      json
// @Security     BearerAuth
// @Param        meeting_id  query     string  false  "Filter by meeting"
// @Param        from        query     string  false  "Earliest meeting date (YYYY-MM-DD)"
// @Param        to          query     string  false  "Latest meeting date (YYYY-MM-DD)"
// @Param        page        query     int     false  "Page number (default: 1)"
// @Param        limit       query     int     false  "Items per page (default: 20, max: 100)"
// @Success      200         {object}  common.ListResponse
// @Router       /minutes [get]
func (h *Minutes) List(c echo.Context) error {
	meetingID, err := queryUUID(c, "meeting_id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	from, err := queryDate(c, "from")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	to, err := queryDate(c, "to")
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

	list, total, err := h.service.List(c.Request().Context(), minutes.ListInput{
		MeetingID: meetingID,
		From:      from,
		To:        to,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	pageSize, _ := meeting.Paginate(page, limit)
	return HandleSuccess(h.logger, c, common.ListResponse{
		Items:      presenter.ToMinuteList(list),
		Pagination: common.NewPagination(page, pageSize, total),
	})
}

// Get godoc
// @Summary      Get minute
// @Description  Minute with items ordered by row_order
// @Tags         Minutes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Minute ID (UUID)"
// @Success      200  {object}  minutes.MinuteResponse
// @Failure      404  {object}  map[string]interface{}  "Minute not found"
// @Router       /minutes/{id} [get]
func (h *Minutes) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	m, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMinuteResponse(m))
}

// Create godoc
// @Summary      Create minute manually
// @Tags         Minutes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      minutes.CreateMinuteRequest  true  "Minute with items"
// @Success      201      {object}  minutes.MinuteResponse
// @Failure      400      {object}  map[string]interface{}  "Validation failed or meeting archived"
// @Failure      404      {object}  map[string]interface{}  "Meeting not found"
// @Router       /minutes [post]
func (h *Minutes) Create(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthorized("User not authenticated"))
	}
	var req minutesDTO.CreateMinuteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	items, err := itemInputs(req.Items)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.service.Create(c.Request().Context(), minutes.CreateInput{
		MeetingID:   uuid.MustParse(req.MeetingID),
		MeetingDate: mustDate(req.MeetingDate),
		Title:       req.Title,
		Items:       items,
		CreatedBy:   userID,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToMinuteResponse(m))
}

// CreateFromText godoc
// @Summary      Create minute from raw text
// @Description  Formats raw meeting notes into items (remote model with local fallback) and saves the minute
// @Tags         Minutes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      minutes.FormatRequest  true  "Raw notes; meeting_id is required"
// @Success      201      {object}  minutes.CreateFromTextResponse
// @Failure      404      {object}  map[string]interface{}  "Meeting not found"
// @Failure      422      {object}  map[string]interface{}  "Formatting failed"
// @Router       /minutes/ai [post]
func (h *Minutes) CreateFromText(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthorized("User not authenticated"))
	}
	var req minutesDTO.FormatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	if req.MeetingID == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("meeting_id is required").WithDetail("meeting_id", "required"))
	}

	in := rawTextInput(req)
	in.MeetingID = uuid.MustParse(req.MeetingID)
	in.CreatedBy = userID

	m, result, err := h.service.CreateFromRawText(c.Request().Context(), in)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, minutesDTO.CreateFromTextResponse{
		Minute: presenter.ToMinuteResponse(m),
		Meta:   presenter.ToFormatMeta(result),
	})
}

// Format godoc
// @Summary      Preview formatting
// @Description  Runs the formatter without saving anything
// @Tags         Minutes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      minutes.FormatRequest  true  "Raw notes"
// @Success      200      {object}  minutes.FormatResponse
// @Failure      422      {object}  map[string]interface{}  "Formatting failed"
// @Router       /minutes/format [post]
func (h *Minutes) Format(c echo.Context) error {
	var req minutesDTO.FormatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.service.Preview(c.Request().Context(), rawTextInput(req))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToFormatResponse(result))
}

// Update godoc
// @Summary      Update minute
// @Description  Replaces header fields and diffs the item list (update by id, create new, delete missing)
// @Tags         Minutes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                       true  "Minute ID (UUID)"
// @Param        request  body      minutes.UpdateMinuteRequest  true  "Minute"
// @Success      200      {object}  minutes.MinuteResponse
// @Router       /minutes/{id} [put]
func (h *Minutes) Update(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req minutesDTO.UpdateMinuteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	in := minutes.UpdateInput{Title: req.Title}
	if req.MeetingDate != nil {
		d := mustDate(*req.MeetingDate)
		in.MeetingDate = &d
	}
	if req.Items != nil {
		if in.Items, err = itemInputs(req.Items); err != nil {
			return HandleError(h.logger, c, err)
		}
	}

	m, err := h.service.Update(c.Request().Context(), id, in)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMinuteResponse(m))
}

// Delete godoc
// @Summary      Delete minute
// @Tags         Minutes
// @Security     BearerAuth
// @Param        id   path      string  true  "Minute ID (UUID)"
// @Success      200  {object}  map[string]interface{}
// @Router       /minutes/{id} [delete]
func (h *Minutes) Delete(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, nil)
}

// PatchItem godoc
// @Summary      Update one item
// @Description  Partial update; an empty deadline clears it
// @Tags         Minutes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        itemId   path      string                    true  "Item ID (UUID)"
// @Param        request  body      minutes.PatchItemRequest  true  "Fields to change"
// @Success      200      {object}  minutes.ItemResponse
// @Failure      404      {object}  map[string]interface{}  "Item not found"
// @Router       /minutes/items/{itemId} [patch]
func (h *Minutes) PatchItem(c echo.Context) error {
	itemID, err := pathUUID(c, "itemId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req minutesDTO.PatchItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	item, err := h.service.PatchItem(c.Request().Context(), itemID, minutes.ItemPatch{
		Agenda:   req.Agenda,
		Decision: req.Decision,
		Issue:    req.Issue,
		Action:   req.Action,
		Assignee: req.Assignee,
		Deadline: req.Deadline,
		Purpose:  req.Purpose,
		Status:   req.Status,
		Notes1:   req.Notes1,
		Notes2:   req.Notes2,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToItemResponse(item))
}

// Transcript godoc
// @Summary      Archived transcript
// @Tags         Minutes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Minute ID (UUID)"
// @Success      200  {object}  minutes.TranscriptResponse
// @Failure      404  {object}  map[string]interface{}  "No transcript archived"
// @Router       /minutes/{id}/transcript [get]
func (h *Minutes) Transcript(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	text, err := h.service.Transcript(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, minutesDTO.TranscriptResponse{MinuteID: id.String(), RawText: text})
}

func rawTextInput(req minutesDTO.FormatRequest) minutes.RawTextInput {
	return minutes.RawTextInput{
		MeetingDate:     mustDate(req.MeetingDate),
		Title:           req.Title,
		RawText:         req.RawText,
		ModelPreference: req.ModelPreference,
		LocalOnly:       req.LocalOnly,
	}
}

func itemInputs(reqs []minutesDTO.ItemRequest) ([]minutes.ItemInput, error) {
	items := make([]minutes.ItemInput, 0, len(reqs))
	for _, r := range reqs {
		in := minutes.ItemInput{
			Agenda:   r.Agenda,
			Decision: r.Decision,
			Issue:    r.Issue,
			Action:   r.Action,
			Assignee: r.Assignee,
			Deadline: r.Deadline,
			Purpose:  r.Purpose,
			Status:   r.Status,
			Notes1:   r.Notes1,
			Notes2:   r.Notes2,
		}
		if r.ID != nil {
			id, err := uuid.Parse(*r.ID)
			if err != nil {
				return nil, errors.ErrInvalidArgument("Invalid item id")
			}
			in.ID = &id
		}
		items = append(items, in)
	}
	return items, nil
}

// mustDate parses a date that already passed the isodate validator
func mustDate(s string) time.Time {
	return reldate.MustParse(s)
}

func queryDate(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	if !reldate.IsDate(raw) {
		return nil, errors.ErrInvalidArgument("Invalid " + name + ", expected YYYY-MM-DD")
	}
	t := reldate.MustParse(raw)
	return &t, nil
}
