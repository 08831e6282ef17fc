package presenter

import (
	orgDTO "github.com/johnquangdev/meeting-minutes/internal/adapter/dto/organization"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// ToDepartmentResponse converts a department, including any preloaded teams
func ToDepartmentResponse(d *entities.Department) *orgDTO.DepartmentResponse {
	if d == nil {
		return nil
	}
	resp := &orgDTO.DepartmentResponse{
		ID:           d.ID.String(),
		Name:         d.Name,
		Description:  d.Description,
		DisplayOrder: d.DisplayOrder,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	for i := range d.Teams {
		resp.Teams = append(resp.Teams, ToTeamResponse(&d.Teams[i]))
	}
	return resp
}

// ToDepartmentList converts a slice of departments
func ToDepartmentList(departments []*entities.Department) []*orgDTO.DepartmentResponse {
	out := make([]*orgDTO.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		out = append(out, ToDepartmentResponse(d))
	}
	return out
}

// ToTeamResponse converts a team
func ToTeamResponse(t *entities.Team) *orgDTO.TeamResponse {
	if t == nil {
		return nil
	}
	return &orgDTO.TeamResponse{
		ID:           t.ID.String(),
		DepartmentID: t.DepartmentID.String(),
		Name:         t.Name,
		Description:  t.Description,
		DisplayOrder: t.DisplayOrder,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// ToTeamList converts a slice of teams
func ToTeamList(teams []*entities.Team) []*orgDTO.TeamResponse {
	out := make([]*orgDTO.TeamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, ToTeamResponse(t))
	}
	return out
}
