package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	evententity "prikkr/modules/event/entity"
	"prikkr/modules/rsvp/dto"
	"prikkr/modules/rsvp/entity"
)

type fakeRsvpRepo struct {
	responses map[string]map[string]entity.Response
	failLoad  bool
}

func newFakeRsvpRepo() *fakeRsvpRepo {
	return &fakeRsvpRepo{responses: make(map[string]map[string]entity.Response)}
}

func (f *fakeRsvpRepo) GetResponses(_ context.Context, eventID string) (map[string]entity.Response, error) {
	if f.failLoad {
		return nil, assert.AnError
	}
	out := make(map[string]entity.Response)
	for k, v := range f.responses[eventID] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeRsvpRepo) SaveResponses(_ context.Context, eventID string, responses map[string]entity.Response) error {
	f.responses[eventID] = responses
	return nil
}

type fakeMetaSource struct {
	meta *evententity.EventMeta
}

func (f *fakeMetaSource) GetMeta(_ context.Context, id string) (*evententity.EventMeta, error) {
	if f.meta == nil || f.meta.ID != id {
		return nil, nil
	}
	return f.meta, nil
}

type recordingDispatcher struct {
	confirmations []string
}

func (r *recordingDispatcher) DispatchRsvpConfirmation(_ context.Context, _, _, email, _ string) error {
	r.confirmations = append(r.confirmations, email)
	return nil
}

func timedMeta() *evententity.EventMeta {
	return &evententity.EventMeta{
		ID:           "pizza-night-Xq3fTz9aKp",
		Name:         "Pizza Night",
		CreatorEmail: "host@example.com",
		DateFrom:     "2024-01-01",
		DateTo:       "2024-01-03",
		SlotDuration: 60,
	}
}

func dailyMeta() *evententity.EventMeta {
	m := timedMeta()
	m.SlotDuration = 1440
	return m
}

func newTestService(meta *evententity.EventMeta) (RsvpServiceInterface, *fakeRsvpRepo, *recordingDispatcher) {
	repo := newFakeRsvpRepo()
	mail := &recordingDispatcher{}
	svc := NewRsvpService(repo, &fakeMetaSource{meta: meta}, mail, time.UTC)
	return svc, repo, mail
}

func TestSaveResponse_NormalizesAndStores(t *testing.T) {
	meta := timedMeta()
	svc, repo, mail := newTestService(meta)

	view, appErr := svc.SaveResponse(context.Background(), meta.ID, &dto.SaveResponseRequest{
		Name:  "Alice",
		Email: "  Alice@Example.COM ",
		Selections: map[string][]string{
			"2024-01-01": {"10:00", "09:00", "10:00", "25:00"}, // dup and junk dropped
			"2024-01-09": {"09:00"},                            // outside the range
		},
	})
	require.Nil(t, appErr)

	assert.Equal(t, "alice@example.com", view.Email)
	// Grid order, deduplicated, junk removed.
	assert.Equal(t, []string{"09:00", "10:00"}, view.Selections["2024-01-01"])
	assert.NotContains(t, view.Selections, "2024-01-09")

	stored := repo.responses[meta.ID]
	require.Len(t, stored, 1)
	assert.Contains(t, stored, "alice@example.com")
	assert.Equal(t, []string{"alice@example.com"}, mail.confirmations)
}

func TestSaveResponse_LastWriteWinsPerEmail(t *testing.T) {
	meta := timedMeta()
	svc, repo, _ := newTestService(meta)

	_, appErr := svc.SaveResponse(context.Background(), meta.ID, &dto.SaveResponseRequest{
		Email:      "bob@example.com",
		Selections: map[string][]string{"2024-01-01": {"09:00"}},
	})
	require.Nil(t, appErr)

	// Same mailbox, different casing: replaces, never duplicates.
	_, appErr = svc.SaveResponse(context.Background(), meta.ID, &dto.SaveResponseRequest{
		Email:      "BOB@example.com",
		Selections: map[string][]string{"2024-01-02": {"14:00"}},
	})
	require.Nil(t, appErr)

	stored := repo.responses[meta.ID]
	require.Len(t, stored, 1)
	resp := stored["bob@example.com"]
	assert.NotContains(t, resp.Selections, "2024-01-01")
	assert.Equal(t, []string{"14:00"}, resp.Selections["2024-01-02"])
}

func TestSaveResponse_DailyGridNormalizesLegacyMarker(t *testing.T) {
	meta := dailyMeta()
	svc, repo, _ := newTestService(meta)

	_, appErr := svc.SaveResponse(context.Background(), meta.ID, &dto.SaveResponseRequest{
		Email: "carol@example.com",
		Selections: map[string][]string{
			"2024-01-01": {"~All Day"},
			"2024-01-02": {"All Day", "~All Day"},
		},
	})
	require.Nil(t, appErr)

	resp := repo.responses[meta.ID]["carol@example.com"]
	assert.Equal(t, []string{"All Day"}, resp.Selections["2024-01-01"])
	assert.Equal(t, []string{"All Day"}, resp.Selections["2024-01-02"])
}

func TestSaveResponse_Validation(t *testing.T) {
	meta := timedMeta()
	svc, _, _ := newTestService(meta)

	_, appErr := svc.SaveResponse(context.Background(), meta.ID, &dto.SaveResponseRequest{Email: "not-an-email"})
	require.NotNil(t, appErr)

	_, appErr = svc.SaveResponse(context.Background(), "missing-event", &dto.SaveResponseRequest{Email: "a@b.com"})
	require.NotNil(t, appErr)
}

func TestApplySyncSelections_RespectsCustomFreeze(t *testing.T) {
	meta := timedMeta()
	svc, repo, _ := newTestService(meta)

	// Hand-edited response.
	_, appErr := svc.SaveResponse(context.Background(), meta.ID, &dto.SaveResponseRequest{
		Email:      "dave@example.com",
		Custom:     true,
		Selections: map[string][]string{"2024-01-01": {"09:00"}},
	})
	require.Nil(t, appErr)

	written, appErr := svc.ApplySyncSelections(context.Background(), meta.ID, "dave@example.com", "Dave",
		map[string][]string{"2024-01-02": {"10:00"}})
	require.Nil(t, appErr)
	assert.False(t, written)

	// Untouched.
	resp := repo.responses[meta.ID]["dave@example.com"]
	assert.True(t, resp.Custom)
	assert.Equal(t, []string{"09:00"}, resp.Selections["2024-01-01"])

	// Switching back to sync mode un-freezes.
	_, appErr = svc.SaveResponse(context.Background(), meta.ID, &dto.SaveResponseRequest{
		Email:      "dave@example.com",
		Custom:     false,
		Selections: map[string][]string{"2024-01-01": {"09:00"}},
	})
	require.Nil(t, appErr)

	written, appErr = svc.ApplySyncSelections(context.Background(), meta.ID, "dave@example.com", "Dave",
		map[string][]string{"2024-01-02": {"10:00"}})
	require.Nil(t, appErr)
	assert.True(t, written)

	resp = repo.responses[meta.ID]["dave@example.com"]
	assert.False(t, resp.Custom)
	assert.Equal(t, []string{"10:00"}, resp.Selections["2024-01-02"])
}

func TestApplySyncSelections_KeepsExistingName(t *testing.T) {
	meta := timedMeta()
	svc, repo, _ := newTestService(meta)

	_, appErr := svc.SaveResponse(context.Background(), meta.ID, &dto.SaveResponseRequest{
		Name:       "Erin",
		Email:      "erin@example.com",
		Selections: map[string][]string{"2024-01-01": {"09:00"}},
	})
	require.Nil(t, appErr)

	_, appErr = svc.ApplySyncSelections(context.Background(), meta.ID, "erin@example.com", "",
		map[string][]string{"2024-01-02": {"11:00"}})
	require.Nil(t, appErr)

	assert.Equal(t, "Erin", repo.responses[meta.ID]["erin@example.com"].Name)
}

func TestGetResults_Percentages(t *testing.T) {
	meta := timedMeta()
	svc, _, _ := newTestService(meta)

	// A misses 09:00 and 10:00 on day one; B is free all day.
	_, appErr := svc.SaveResponse(context.Background(), meta.ID, &dto.SaveResponseRequest{
		Email:      "a@example.com",
		Selections: map[string][]string{"2024-01-01": {"11:00", "12:00", "13:00", "14:00", "15:00", "16:00"}},
	})
	require.Nil(t, appErr)
	_, appErr = svc.SaveResponse(context.Background(), meta.ID, &dto.SaveResponseRequest{
		Email:      "b@example.com",
		Selections: map[string][]string{"2024-01-01": {"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00"}},
	})
	require.Nil(t, appErr)

	results, appErr := svc.GetResults(context.Background(), meta.ID)
	require.Nil(t, appErr)

	assert.Equal(t, 2, results.Total)
	assert.Equal(t, 1, results.Heatmap["2024-01-01"]["09:00"])
	assert.Equal(t, 2, results.Heatmap["2024-01-01"]["11:00"])

	require.NotEmpty(t, results.Ranked)
	assert.Equal(t, 100, results.Ranked[0].Percent)
	assert.Equal(t, "11:00", results.Ranked[0].Label)
	require.Len(t, results.TopDates, 1)
	assert.Equal(t, 100, results.TopDates[0].Percent)
}

func TestGetResults_EmptyEvent(t *testing.T) {
	meta := timedMeta()
	svc, _, _ := newTestService(meta)

	results, appErr := svc.GetResults(context.Background(), meta.ID)
	require.Nil(t, appErr)
	assert.Equal(t, 0, results.Total)
	assert.Empty(t, results.Ranked)
}

func TestResponderEmails_Sorted(t *testing.T) {
	meta := timedMeta()
	svc, _, _ := newTestService(meta)

	for _, email := range []string{"zoe@example.com", "amy@example.com", "mia@example.com"} {
		_, appErr := svc.SaveResponse(context.Background(), meta.ID, &dto.SaveResponseRequest{
			Email:      email,
			Selections: map[string][]string{"2024-01-01": {"09:00"}},
		})
		require.Nil(t, appErr)
	}

	emails, err := svc.ResponderEmails(context.Background(), meta.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"amy@example.com", "mia@example.com", "zoe@example.com"}, emails)
}
