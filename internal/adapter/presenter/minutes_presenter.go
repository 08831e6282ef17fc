package presenter

import (
	minutesDTO "github.com/johnquangdev/meeting-minutes/internal/adapter/dto/minutes"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/formatter"
	"github.com/johnquangdev/meeting-minutes/pkg/reldate"
)

// ToMinuteResponse converts a minute and its items
func ToMinuteResponse(m *entities.Minute) *minutesDTO.MinuteResponse {
	if m == nil {
		return nil
	}
	resp := &minutesDTO.MinuteResponse{
		ID:            m.ID.String(),
		MeetingID:     m.MeetingID.String(),
		MeetingDate:   m.MeetingDate.Format(reldate.Layout),
		Title:         m.Title,
		HasTranscript: m.TranscriptKey != nil || m.RawText != nil,
		CreatedBy:     m.CreatedBy.String(),
		Items:         make([]minutesDTO.ItemResponse, 0, len(m.Items)),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if meta := m.FormatMeta.Data(); meta.Source != "" {
		out := toMetaResponse(meta)
		resp.FormatMeta = &out
	}
	for i := range m.Items {
		resp.Items = append(resp.Items, ToItemResponse(&m.Items[i]))
	}
	return resp
}

// ToMinuteList converts a slice of minutes
func ToMinuteList(minutes []*entities.Minute) []*minutesDTO.MinuteResponse {
	out := make([]*minutesDTO.MinuteResponse, 0, len(minutes))
	for _, m := range minutes {
		out = append(out, ToMinuteResponse(m))
	}
	return out
}

// ToItemResponse converts a persisted item row
func ToItemResponse(it *entities.MinuteItem) minutesDTO.ItemResponse {
	resp := minutesDTO.ItemResponse{
		ID:       it.ID.String(),
		RowOrder: it.RowOrder,
		Agenda:   it.Agenda,
		Decision: it.Decision,
		Issue:    it.Issue,
		Action:   it.Action,
		Assignee: it.Assignee,
		Purpose:  it.Purpose,
		Status:   string(it.Status),
		Notes1:   it.Notes1,
		Notes2:   it.Notes2,
	}
	if it.Deadline != nil {
		d := it.Deadline.Format(reldate.Layout)
		resp.Deadline = &d
	}
	return resp
}

// ToFormatResponse converts a formatter result for the preview endpoint
func ToFormatResponse(res *formatter.FormatResult) *minutesDTO.FormatResponse {
	if res == nil {
		return nil
	}
	resp := &minutesDTO.FormatResponse{
		Items: make([]minutesDTO.ExtractedItemResponse, 0, len(res.Items)),
		Meta:  ToFormatMeta(res),
	}
	for _, it := range res.Items {
		resp.Items = append(resp.Items, minutesDTO.ExtractedItemResponse{
			Agenda:   it.Agenda,
			Decision: it.Decision,
			Issue:    it.Issue,
			Action:   it.Action,
			Assignee: it.Assignee,
			Deadline: it.Deadline,
			Purpose:  it.Purpose,
			Status:   string(it.Status),
			Notes1:   it.Notes1,
			Notes2:   it.Notes2,
		})
	}
	return resp
}

// ToFormatMeta converts the provenance of a formatter result
func ToFormatMeta(res *formatter.FormatResult) minutesDTO.FormatMetaResponse {
	if res == nil {
		return minutesDTO.FormatMetaResponse{}
	}
	return toMetaResponse(res.Meta())
}

func toMetaResponse(meta entities.FormatMeta) minutesDTO.FormatMetaResponse {
	return minutesDTO.FormatMetaResponse{
		Source:         string(meta.Source),
		Model:          meta.Model,
		Fallback:       meta.Fallback,
		FallbackReason: meta.FallbackReason,
		Cached:         meta.Cached,
	}
}
