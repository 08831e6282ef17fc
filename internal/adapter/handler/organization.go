package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	orgDTO "github.com/johnquangdev/meeting-minutes/internal/adapter/dto/organization"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/organization"
)

// Organization handles the department/team board
type Organization struct {
	service organization.Service
	logger  *zap.Logger
}

// NewOrganization creates a new organization handler
func NewOrganization(service organization.Service, logger *zap.Logger) *Organization {
	return &Organization{service: service, logger: logger}
}

// Board godoc
// @Summary      Organization board
// @Description  Departments with their teams, ordered by display_order
// @Tags         Organization
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   organization.DepartmentResponse
// @Router       /organization/board [get]
func (h *Organization) Board(c echo.Context) error {
	departments, err := h.service.Board(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToDepartmentList(departments))
}

// ListDepartments godoc
// @Summary      List departments
// @Tags         Organization
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   organization.DepartmentResponse
// @Router       /organization/departments [get]
func (h *Organization) ListDepartments(c echo.Context) error {
	departments, err := h.service.ListDepartments(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToDepartmentList(departments))
}

// GetDepartment godoc
// @Summary      Get department
// @Tags         Organization
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Department ID (UUID)"
// @Success      200  {object}  organization.DepartmentResponse
// @Failure      404  {object}  map[string]interface{}  "Department not found"
// @Router       /organization/departments/{id} [get]
func (h *Organization) GetDepartment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	department, err := h.service.GetDepartment(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToDepartmentResponse(department))
}

// CreateDepartment godoc
// @Summary      Create department
// @Tags         Organization
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      organization.DepartmentRequest  true  "Department"
// @Success      201      {object}  organization.DepartmentResponse
// @Failure      409      {object}  map[string]interface{}  "Duplicate name"
// @Router       /organization/departments [post]
func (h *Organization) CreateDepartment(c echo.Context) error {
	var req orgDTO.DepartmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	department, err := h.service.CreateDepartment(c.Request().Context(), departmentInput(req))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToDepartmentResponse(department))
}

// UpdateDepartment godoc
// @Summary      Update department
// @Tags         Organization
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true  "Department ID (UUID)"
// @Param        request  body      organization.DepartmentRequest  true  "Department"
// @Success      200      {object}  organization.DepartmentResponse
// @Router       /organization/departments/{id} [put]
func (h *Organization) UpdateDepartment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req orgDTO.DepartmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	department, err := h.service.UpdateDepartment(c.Request().Context(), id, departmentInput(req))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToDepartmentResponse(department))
}

// DeleteDepartment godoc
// @Summary      Delete department
// @Description  Fails while the department still has teams
// @Tags         Organization
// @Security     BearerAuth
// @Param        id   path      string  true  "Department ID (UUID)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}  "Department still has teams"
// @Router       /organization/departments/{id} [delete]
func (h *Organization) DeleteDepartment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.service.DeleteDepartment(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, nil)
}

// ListTeams godoc
// @Summary      List teams
// @Tags         Organization
// @Produce      json
// @Security     BearerAuth
// @Param        department_id  query     string  false  "Filter by department"
// @Success      200            {array}   organization.TeamResponse
// @Router       /organization/teams [get]
func (h *Organization) ListTeams(c echo.Context) error {
	departmentID, err := queryUUID(c, "department_id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	teams, err := h.service.ListTeams(c.Request().Context(), departmentID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTeamList(teams))
}

// GetTeam godoc
// @Summary      Get team
// @Tags         Organization
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Team ID (UUID)"
// @Success      200  {object}  organization.TeamResponse
// @Failure      404  {object}  map[string]interface{}  "Team not found"
// @Router       /organization/teams/{id} [get]
func (h *Organization) GetTeam(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	team, err := h.service.GetTeam(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTeamResponse(team))
}

// CreateTeam godoc
// @Summary      Create team
// @Tags         Organization
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      organization.TeamRequest  true  "Team"
// @Success      201      {object}  organization.TeamResponse
// @Failure      409      {object}  map[string]interface{}  "Duplicate name within department"
// @Router       /organization/teams [post]
func (h *Organization) CreateTeam(c echo.Context) error {
	var req orgDTO.TeamRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	team, err := h.service.CreateTeam(c.Request().Context(), teamInput(req))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToTeamResponse(team))
}

// UpdateTeam godoc
// @Summary      Update team
// @Tags         Organization
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                    true  "Team ID (UUID)"
// @Param        request  body      organization.TeamRequest  true  "Team"
// @Success      200      {object}  organization.TeamResponse
// @Router       /organization/teams/{id} [put]
func (h *Organization) UpdateTeam(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req orgDTO.TeamRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	team, err := h.service.UpdateTeam(c.Request().Context(), id, teamInput(req))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTeamResponse(team))
}

// DeleteTeam godoc
// @Summary      Delete team
// @Tags         Organization
// @Security     BearerAuth
// @Param        id   path      string  true  "Team ID (UUID)"
// @Success      200  {object}  map[string]interface{}
// @Router       /organization/teams/{id} [delete]
func (h *Organization) DeleteTeam(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.service.DeleteTeam(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, nil)
}

func departmentInput(req orgDTO.DepartmentRequest) organization.DepartmentInput {
	return organization.DepartmentInput{
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	}
}

// teamInput assumes DepartmentID already passed the uuid validator
func teamInput(req orgDTO.TeamRequest) organization.TeamInput {
	return organization.TeamInput{
		DepartmentID: uuid.MustParse(req.DepartmentID),
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	}
}
