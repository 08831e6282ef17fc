package minutes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/storage"
	ucerrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/formatter"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/formatter/heuristic"
	"github.com/johnquangdev/meeting-minutes/pkg/reldate"
)

var meetingDate = reldate.MustParse("2026-01-15")

type stubMinutes struct {
	rows  map[uuid.UUID]*entities.Minute
	items map[uuid.UUID]*entities.MinuteItem
}

func newStubMinutes() *stubMinutes {
	return &stubMinutes{rows: map[uuid.UUID]*entities.Minute{}, items: map[uuid.UUID]*entities.MinuteItem{}}
}

func (r *stubMinutes) Create(_ context.Context, m *entities.Minute) error {
	r.rows[m.ID] = m
	for i := range m.Items {
		r.items[m.Items[i].ID] = &m.Items[i]
	}
	return nil
}

func (r *stubMinutes) FindByID(_ context.Context, id uuid.UUID) (*entities.Minute, error) {
	m, ok := r.rows[id]
	if !ok {
		return nil, entities.ErrMinuteNotFound
	}
	cp := *m
	cp.Items = append([]entities.MinuteItem(nil), m.Items...)
	return &cp, nil
}

func (r *stubMinutes) List(context.Context, repositories.MinuteFilter) ([]*entities.Minute, int64, error) {
	return nil, 0, nil
}

func (r *stubMinutes) Update(_ context.Context, m *entities.Minute) error {
	r.rows[m.ID] = m
	return nil
}

func (r *stubMinutes) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

func (r *stubMinutes) FindItem(_ context.Context, id uuid.UUID) (*entities.MinuteItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, entities.ErrMinuteItemNotFound
	}
	cp := *it
	return &cp, nil
}

func (r *stubMinutes) UpdateItem(_ context.Context, it *entities.MinuteItem) error {
	r.items[it.ID] = it
	return nil
}

func (r *stubMinutes) SetTranscriptKey(_ context.Context, id uuid.UUID, key string) error {
	r.rows[id].TranscriptKey = &key
	return nil
}

type stubMeetings struct {
	repositories.MeetingRepository
	rows map[uuid.UUID]*entities.Meeting
}

func (r *stubMeetings) FindByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	if m, ok := r.rows[id]; ok {
		return m, nil
	}
	return nil, entities.ErrMeetingNotFound
}

type stubTranscripts struct {
	data    map[string]string
	putErr  error
	getErr  error
	deleted []string
}

func (s *stubTranscripts) PutTranscript(_ context.Context, id uuid.UUID, text string) (string, error) {
	if s.putErr != nil {
		return "", s.putErr
	}
	key := storage.TranscriptKey(id)
	s.data[key] = text
	return key, nil
}

func (s *stubTranscripts) GetTranscript(_ context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	if v, ok := s.data[key]; ok {
		return v, nil
	}
	return "", storage.ErrObjectNotFound
}

func (s *stubTranscripts) DeleteTranscript(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	delete(s.data, key)
	return nil
}

type fixture struct {
	svc         Service
	minutes     *stubMinutes
	transcripts *stubTranscripts
	meetingID   uuid.UUID
	archivedID  uuid.UUID
}

func newFixture() *fixture {
	meetingID, archivedID := uuid.New(), uuid.New()
	meetings := &stubMeetings{rows: map[uuid.UUID]*entities.Meeting{
		meetingID:  {ID: meetingID, Name: "週次定例"},
		archivedID: {ID: archivedID, Name: "旧定例", IsArchived: true},
	}}
	mins := newStubMinutes()
	transcripts := &stubTranscripts{data: map[string]string{}}
	fmtSvc := formatter.NewService(nil, heuristic.Default(), nil, formatter.Options{PreferRemote: true}, nil)

	return &fixture{
		svc:         NewMinutesService(mins, meetings, fmtSvc, transcripts, nil),
		minutes:     mins,
		transcripts: transcripts,
		meetingID:   meetingID,
		archivedID:  archivedID,
	}
}

const transcript = "田中: 予算の見直しについて検討する。来週までに資料を作成する。\n鈴木: 採用計画は完了した。"

func TestCreateFromRawText(t *testing.T) {
	f := newFixture()

	minute, res, err := f.svc.CreateFromRawText(context.Background(), RawTextInput{
		MeetingID:   f.meetingID,
		MeetingDate: meetingDate.Add(15 * time.Hour),
		RawText:     transcript,
		CreatedBy:   uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, entities.FormatSourceLocal, res.Source)
	assert.Equal(t, "週次定例 議事録 2026-01-15", minute.Title)
	assert.Equal(t, meetingDate, minute.MeetingDate)
	assert.Equal(t, entities.FormatSourceLocal, minute.FormatMeta.Data().Source)

	require.NotEmpty(t, minute.Items)
	for i, it := range minute.Items {
		assert.Equal(t, i+1, it.RowOrder)
		assert.Equal(t, minute.ID, it.MinuteID)
	}

	require.NotNil(t, minute.TranscriptKey)
	assert.Equal(t, transcript, f.transcripts.data[*minute.TranscriptKey])

	text, err := f.svc.Transcript(context.Background(), minute.ID)
	require.NoError(t, err)
	assert.Equal(t, transcript, text)
}

func TestCreateFromRawText_ArchiveFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.transcripts.putErr = errors.New("minio down")

	minute, _, err := f.svc.CreateFromRawText(context.Background(), RawTextInput{
		MeetingID: f.meetingID, MeetingDate: meetingDate, RawText: transcript,
	})
	require.NoError(t, err)
	assert.Nil(t, minute.TranscriptKey)

	text, err := f.svc.Transcript(context.Background(), minute.ID)
	require.NoError(t, err)
	assert.Equal(t, transcript, text)
}

func TestCreateFromRawText_Rejections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, _, err := f.svc.CreateFromRawText(ctx, RawTextInput{MeetingID: f.meetingID, MeetingDate: meetingDate, RawText: "  "})
	assert.ErrorIs(t, err, ucerrors.ErrEmptyRawText)

	_, _, err = f.svc.CreateFromRawText(ctx, RawTextInput{MeetingID: uuid.New(), MeetingDate: meetingDate, RawText: transcript})
	assert.ErrorIs(t, err, entities.ErrMeetingNotFound)

	_, _, err = f.svc.CreateFromRawText(ctx, RawTextInput{MeetingID: f.archivedID, MeetingDate: meetingDate, RawText: transcript})
	assert.ErrorIs(t, err, ucerrors.ErrMeetingArchived)

	_, _, err = f.svc.CreateFromRawText(ctx, RawTextInput{MeetingID: f.meetingID, RawText: transcript})
	assert.ErrorIs(t, err, ucerrors.ErrInvalidMeetingDate)
}

func TestMissingMeetingDate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Create(ctx, CreateInput{MeetingID: f.meetingID})
	assert.ErrorIs(t, err, ucerrors.ErrInvalidMeetingDate)

	_, err = f.svc.Preview(ctx, RawTextInput{RawText: transcript})
	assert.ErrorIs(t, err, ucerrors.ErrInvalidMeetingDate)

	minute, err := f.svc.Create(ctx, CreateInput{MeetingID: f.meetingID, MeetingDate: meetingDate})
	require.NoError(t, err)
	var zero time.Time
	_, err = f.svc.Update(ctx, minute.ID, UpdateInput{MeetingDate: &zero})
	assert.ErrorIs(t, err, ucerrors.ErrInvalidMeetingDate)
	assert.Equal(t, "2026-01-15", f.minutes.rows[minute.ID].MeetingDate.Format(reldate.Layout))
}

func TestCreateManual(t *testing.T) {
	f := newFixture()
	deadline := "来週"

	minute, err := f.svc.Create(context.Background(), CreateInput{
		MeetingID:   f.meetingID,
		MeetingDate: meetingDate,
		Title:       "臨時会議",
		Items: []ItemInput{
			{Agenda: "予算", Action: "見積を取る", Deadline: &deadline, Status: "done"},
			{Agenda: "採用"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "臨時会議", minute.Title)
	assert.Equal(t, entities.FormatSourceManual, minute.FormatMeta.Data().Source)
	require.Len(t, minute.Items, 2)
	assert.Equal(t, entities.StatusCompleted, minute.Items[0].Status)
	assert.Equal(t, "2026-01-22", minute.Items[0].Deadline.Format(reldate.Layout))
	assert.Equal(t, entities.DefaultAssignee, minute.Items[1].Assignee)
	assert.Equal(t, 2, minute.Items[1].RowOrder)
}

func TestUpdate_RejectsForeignItems(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	minute, err := f.svc.Create(ctx, CreateInput{MeetingID: f.meetingID, MeetingDate: meetingDate, Items: []ItemInput{{Agenda: "A"}}})
	require.NoError(t, err)

	foreign := uuid.New()
	_, err = f.svc.Update(ctx, minute.ID, UpdateInput{Items: []ItemInput{{ID: &foreign, Agenda: "B"}}})
	assert.ErrorIs(t, err, ucerrors.ErrItemNotInMinute)

	existing := minute.Items[0].ID
	title := "改題"
	updated, err := f.svc.Update(ctx, minute.ID, UpdateInput{
		Title: &title,
		Items: []ItemInput{{Agenda: "新規"}, {ID: &existing, Agenda: "A改"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "改題", updated.Title)
	require.Len(t, updated.Items, 2)
	assert.Equal(t, existing, updated.Items[1].ID)
	assert.Equal(t, 2, updated.Items[1].RowOrder)
}

func TestPatchItem(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	minute, err := f.svc.Create(ctx, CreateInput{MeetingID: f.meetingID, MeetingDate: meetingDate, Items: []ItemInput{{Agenda: "A"}}})
	require.NoError(t, err)
	itemID := minute.Items[0].ID

	status, assignee, deadline := "progress", " 佐藤 ", "2026-02-01"
	item, err := f.svc.PatchItem(ctx, itemID, ItemPatch{Status: &status, Assignee: &assignee, Deadline: &deadline})
	require.NoError(t, err)
	assert.Equal(t, entities.StatusInProgress, item.Status)
	assert.Equal(t, "佐藤", item.Assignee)
	assert.Equal(t, "2026-02-01", item.Deadline.Format(reldate.Layout))

	empty := ""
	item, err = f.svc.PatchItem(ctx, itemID, ItemPatch{Deadline: &empty})
	require.NoError(t, err)
	assert.Nil(t, item.Deadline)

	bad := "someday"
	_, err = f.svc.PatchItem(ctx, itemID, ItemPatch{Status: &bad})
	assert.ErrorIs(t, err, entities.ErrInvalidItemStatus)

	_, err = f.svc.PatchItem(ctx, itemID, ItemPatch{Deadline: &bad})
	assert.ErrorIs(t, err, ucerrors.ErrInvalidInput)
}

func TestDeleteRemovesTranscript(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	minute, _, err := f.svc.CreateFromRawText(ctx, RawTextInput{MeetingID: f.meetingID, MeetingDate: meetingDate, RawText: transcript})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, minute.ID))
	assert.Equal(t, []string{storage.TranscriptKey(minute.ID)}, f.transcripts.deleted)

	_, err = f.svc.Get(ctx, minute.ID)
	assert.ErrorIs(t, err, entities.ErrMinuteNotFound)
}

func TestTranscript_Missing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	minute, err := f.svc.Create(ctx, CreateInput{MeetingID: f.meetingID, MeetingDate: meetingDate})
	require.NoError(t, err)

	_, err = f.svc.Transcript(ctx, minute.ID)
	assert.ErrorIs(t, err, ucerrors.ErrTranscriptMissing)
}

func TestTranscript_StorageFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	minute, _, err := f.svc.CreateFromRawText(ctx, RawTextInput{MeetingID: f.meetingID, MeetingDate: meetingDate, RawText: transcript})
	require.NoError(t, err)
	require.NotNil(t, minute.TranscriptKey)

	f.transcripts.getErr = errors.New("connection refused")
	_, err = f.svc.Transcript(ctx, minute.ID)
	assert.ErrorIs(t, err, ucerrors.ErrTranscriptStorage)
}

func TestPreview(t *testing.T) {
	f := newFixture()

	res, err := f.svc.Preview(context.Background(), RawTextInput{MeetingDate: meetingDate, RawText: transcript})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Items)
	assert.Empty(t, f.minutes.rows)
}
