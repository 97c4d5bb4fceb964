package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prikkr/modules/event/dto"
	"prikkr/modules/event/entity"
)

type fakeEventRepo struct {
	metas     map[string]*entity.EventMeta
	saveCount int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{metas: make(map[string]*entity.EventMeta)}
}

func (f *fakeEventRepo) SaveMeta(_ context.Context, meta *entity.EventMeta) error {
	f.saveCount++
	cp := *meta
	f.metas[meta.ID] = &cp
	return nil
}

func (f *fakeEventRepo) GetMeta(_ context.Context, id string) (*entity.EventMeta, error) {
	meta, ok := f.metas[id]
	if !ok {
		return nil, nil
	}
	cp := *meta
	return &cp, nil
}

func (f *fakeEventRepo) ListEventIDs(_ context.Context) ([]string, error) {
	ids := make([]string, 0, len(f.metas))
	for id := range f.metas {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeEventRepo) DeleteEvent(_ context.Context, id string) error {
	delete(f.metas, id)
	return nil
}

type fakeMailer struct {
	created   []string // share URLs
	finalized [][]string
}

func (f *fakeMailer) DispatchEventCreated(_ context.Context, _ *entity.EventMeta, shareURL string) error {
	f.created = append(f.created, shareURL)
	return nil
}

func (f *fakeMailer) DispatchFinalDate(_ context.Context, _ *entity.EventMeta, recipients []string) error {
	f.finalized = append(f.finalized, recipients)
	return nil
}

type fakeResponders struct {
	emails []string
}

func (f *fakeResponders) ResponderEmails(_ context.Context, _ string) ([]string, error) {
	return f.emails, nil
}

func newTestEventService() (EventServiceInterface, *fakeEventRepo, *fakeMailer, *fakeResponders) {
	repo := newFakeEventRepo()
	mail := &fakeMailer{}
	responders := &fakeResponders{}
	svc := NewEventService(repo, mail, responders, time.UTC, "https://prikkr.example.com/")
	return svc, repo, mail, responders
}

func validCreateRequest() *dto.CreateEventRequest {
	return &dto.CreateEventRequest{
		Name:         "Team Offsite",
		CreatorName:  "Alice",
		CreatorEmail: "Alice@Example.com",
		DateFrom:     "2024-06-01",
		DateTo:       "2024-06-05",
		SlotDuration: 30,
	}
}

func TestCreateEvent(t *testing.T) {
	svc, repo, mail, _ := newTestEventService()

	resp, appErr := svc.CreateEvent(context.Background(), validCreateRequest())
	require.Nil(t, appErr)

	assert.True(t, strings.HasPrefix(resp.ID, "team-offsite-"), "id %q", resp.ID)
	assert.Equal(t, "alice@example.com", resp.CreatorEmail)
	assert.Len(t, resp.Dates, 5)
	assert.Len(t, resp.Labels, 16)
	assert.NotNil(t, repo.metas[resp.ID])

	require.Len(t, mail.created, 1)
	assert.Equal(t, "https://prikkr.example.com/"+resp.ID, mail.created[0])
}

func TestCreateEvent_DefaultsDuration(t *testing.T) {
	svc, _, _, _ := newTestEventService()

	req := validCreateRequest()
	req.SlotDuration = 0
	resp, appErr := svc.CreateEvent(context.Background(), req)
	require.Nil(t, appErr)
	assert.Equal(t, 60, resp.SlotDuration)
}

func TestCreateEvent_Validation(t *testing.T) {
	svc, _, _, _ := newTestEventService()

	tests := []struct {
		name   string
		mutate func(*dto.CreateEventRequest)
	}{
		{"empty name", func(r *dto.CreateEventRequest) { r.Name = "  " }},
		{"bad email", func(r *dto.CreateEventRequest) { r.CreatorEmail = "nope" }},
		{"negative duration", func(r *dto.CreateEventRequest) { r.SlotDuration = -15 }},
		{"bad date", func(r *dto.CreateEventRequest) { r.DateFrom = "01-06-2024" }},
		{"reversed range", func(r *dto.CreateEventRequest) { r.DateFrom, r.DateTo = r.DateTo, r.DateFrom }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)
			_, appErr := svc.CreateEvent(context.Background(), req)
			assert.NotNil(t, appErr)
		})
	}
}

func TestGetEvent_TouchThrottle(t *testing.T) {
	svc, repo, _, _ := newTestEventService()

	resp, appErr := svc.CreateEvent(context.Background(), validCreateRequest())
	require.Nil(t, appErr)

	// Fresh TouchedAt: a read must not rewrite meta.
	saves := repo.saveCount
	_, appErr = svc.GetEvent(context.Background(), resp.ID)
	require.Nil(t, appErr)
	assert.Equal(t, saves, repo.saveCount)

	// Stale TouchedAt: the read refreshes it.
	repo.metas[resp.ID].TouchedAt = time.Now().Add(-time.Hour)
	_, appErr = svc.GetEvent(context.Background(), resp.ID)
	require.Nil(t, appErr)
	assert.Equal(t, saves+1, repo.saveCount)
	assert.WithinDuration(t, time.Now(), repo.metas[resp.ID].TouchedAt, time.Minute)
}

func TestGetEvent_NotFound(t *testing.T) {
	svc, _, _, _ := newTestEventService()
	_, appErr := svc.GetEvent(context.Background(), "nope")
	require.NotNil(t, appErr)
}

func TestFinalizeEvent(t *testing.T) {
	svc, _, mail, responders := newTestEventService()
	responders.emails = []string{"a@example.com", "b@example.com"}

	created, appErr := svc.CreateEvent(context.Background(), validCreateRequest())
	require.Nil(t, appErr)

	// Wrong creator.
	_, appErr = svc.FinalizeEvent(context.Background(), created.ID, &dto.FinalizeEventRequest{
		CreatorEmail: "intruder@example.com", Date: "2024-06-03",
	})
	require.NotNil(t, appErr)

	// Date outside the range.
	_, appErr = svc.FinalizeEvent(context.Background(), created.ID, &dto.FinalizeEventRequest{
		CreatorEmail: "alice@example.com", Date: "2024-07-01",
	})
	require.NotNil(t, appErr)

	resp, appErr := svc.FinalizeEvent(context.Background(), created.ID, &dto.FinalizeEventRequest{
		CreatorEmail: "Alice@Example.com", Date: "2024-06-03", Slot: "10:30",
	})
	require.Nil(t, appErr)
	assert.Equal(t, "2024-06-03", resp.FinalDate)
	assert.Equal(t, "10:30", resp.FinalSlot)

	require.Len(t, mail.finalized, 1)
	assert.Equal(t, responders.emails, mail.finalized[0])

	// Finalizing twice conflicts.
	_, appErr = svc.FinalizeEvent(context.Background(), created.ID, &dto.FinalizeEventRequest{
		CreatorEmail: "alice@example.com", Date: "2024-06-04",
	})
	require.NotNil(t, appErr)
}

func TestDeleteEvent_CreatorOnly(t *testing.T) {
	svc, repo, _, _ := newTestEventService()

	created, appErr := svc.CreateEvent(context.Background(), validCreateRequest())
	require.Nil(t, appErr)

	appErr = svc.DeleteEvent(context.Background(), created.ID, "stranger@example.com")
	require.NotNil(t, appErr)
	assert.NotNil(t, repo.metas[created.ID])

	appErr = svc.DeleteEvent(context.Background(), created.ID, "alice@example.com")
	require.Nil(t, appErr)
	assert.Nil(t, repo.metas[created.ID])
}

func TestCleanupExpired(t *testing.T) {
	svc, repo, _, _ := newTestEventService()

	fresh, appErr := svc.CreateEvent(context.Background(), validCreateRequest())
	require.Nil(t, appErr)

	stale, appErr := svc.CreateEvent(context.Background(), validCreateRequest())
	require.Nil(t, appErr)
	repo.metas[stale.ID].TouchedAt = time.Now().Add(-400 * 24 * time.Hour)

	result, cleanupErr := svc.CleanupExpired(context.Background())
	require.Nil(t, cleanupErr)

	assert.Equal(t, 2, result.Scanned)
	assert.Equal(t, 1, result.Removed)
	assert.NotNil(t, repo.metas[fresh.ID])
	assert.Nil(t, repo.metas[stale.ID])
}
