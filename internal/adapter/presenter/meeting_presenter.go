package presenter

import (
	meetingDTO "github.com/johnquangdev/meeting-minutes/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// ToMeetingResponse converts a meeting
func ToMeetingResponse(m *entities.Meeting) *meetingDTO.MeetingResponse {
	if m == nil {
		return nil
	}
	return &meetingDTO.MeetingResponse{
		ID:          m.ID.String(),
		TeamID:      m.TeamID.String(),
		Name:        m.Name,
		Description: m.Description,
		IsArchived:  m.IsArchived,
		ArchivedAt:  m.ArchivedAt,
		CreatedBy:   m.CreatedBy.String(),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToMeetingList converts a slice of meetings
func ToMeetingList(meetings []*entities.Meeting) []*meetingDTO.MeetingResponse {
	out := make([]*meetingDTO.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, ToMeetingResponse(m))
	}
	return out
}
