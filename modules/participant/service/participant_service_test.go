package service

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prikkr/core/utils"
	"prikkr/modules/participant/dto"
	"prikkr/modules/participant/entity"
)

type fakeParticipantRepo struct {
	participants map[string]map[string]entity.Participant
	lastSync     map[string]time.Time
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{
		participants: make(map[string]map[string]entity.Participant),
		lastSync:     make(map[string]time.Time),
	}
}

func (f *fakeParticipantRepo) GetParticipants(_ context.Context, eventID string) (map[string]entity.Participant, error) {
	out := make(map[string]entity.Participant)
	for k, v := range f.participants[eventID] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeParticipantRepo) SaveParticipants(_ context.Context, eventID string, participants map[string]entity.Participant) error {
	f.participants[eventID] = participants
	return nil
}

func (f *fakeParticipantRepo) GetLastSync(_ context.Context, eventID string) (time.Time, error) {
	return f.lastSync[eventID], nil
}

func (f *fakeParticipantRepo) SetLastSync(_ context.Context, eventID string, at time.Time) error {
	f.lastSync[eventID] = at
	return nil
}

func newTestParticipantService(t *testing.T) (ParticipantServiceInterface, *fakeParticipantRepo) {
	t.Helper()
	sealer, err := utils.NewTokenSealer(hex.EncodeToString([]byte("0123456789abcdef0123456789abcdef")))
	require.NoError(t, err)
	repo := newFakeParticipantRepo()
	return NewParticipantService(repo, sealer), repo
}

func connectReq() *dto.ConnectParticipantRequest {
	return &dto.ConnectParticipantRequest{
		Email:        "Alice@Example.com",
		Name:         "Alice",
		Provider:     entity.ProviderGoogle,
		RefreshToken: "1//0refresh",
	}
}

func TestConnectParticipant_SealsToken(t *testing.T) {
	svc, repo := newTestParticipantService(t)

	view, appErr := svc.ConnectParticipant(context.Background(), "ev1", connectReq())
	require.Nil(t, appErr)

	assert.Equal(t, "alice@example.com", view.Email)
	assert.True(t, view.SyncEnabled)

	stored := repo.participants["ev1"]["alice@example.com"]
	assert.NotEmpty(t, stored.SealedRefreshToken)
	assert.NotContains(t, stored.SealedRefreshToken, "refresh")
}

func TestConnectParticipant_Validation(t *testing.T) {
	svc, _ := newTestParticipantService(t)

	req := connectReq()
	req.Email = "nope"
	_, appErr := svc.ConnectParticipant(context.Background(), "ev1", req)
	assert.NotNil(t, appErr)

	req = connectReq()
	req.Provider = "caldav"
	_, appErr = svc.ConnectParticipant(context.Background(), "ev1", req)
	assert.NotNil(t, appErr)

	req = connectReq()
	req.RefreshToken = ""
	_, appErr = svc.ConnectParticipant(context.Background(), "ev1", req)
	assert.NotNil(t, appErr)
}

func TestConnectParticipant_ReconnectReenablesSync(t *testing.T) {
	svc, _ := newTestParticipantService(t)

	_, appErr := svc.ConnectParticipant(context.Background(), "ev1", connectReq())
	require.Nil(t, appErr)

	_, appErr = svc.SetSyncEnabled(context.Background(), "ev1", "alice@example.com", false)
	require.Nil(t, appErr)

	view, appErr := svc.ConnectParticipant(context.Background(), "ev1", connectReq())
	require.Nil(t, appErr)
	assert.True(t, view.SyncEnabled)
}

func TestConnectedParticipants_UnsealsAndFilters(t *testing.T) {
	svc, _ := newTestParticipantService(t)

	_, appErr := svc.ConnectParticipant(context.Background(), "ev1", connectReq())
	require.Nil(t, appErr)

	second := connectReq()
	second.Email = "bob@example.com"
	second.Provider = entity.ProviderMicrosoft
	second.RefreshToken = "ms-refresh"
	_, appErr = svc.ConnectParticipant(context.Background(), "ev1", second)
	require.Nil(t, appErr)

	// Disable one: it disappears from the sync set.
	_, appErr = svc.SetSyncEnabled(context.Background(), "ev1", "bob@example.com", false)
	require.Nil(t, appErr)

	connected, err := svc.ConnectedParticipants(context.Background(), "ev1")
	require.NoError(t, err)
	require.Len(t, connected, 1)
	assert.Equal(t, "alice@example.com", connected[0].Email)
	assert.Equal(t, "1//0refresh", connected[0].RefreshToken)
}

func TestRemoveParticipant(t *testing.T) {
	svc, repo := newTestParticipantService(t)

	_, appErr := svc.ConnectParticipant(context.Background(), "ev1", connectReq())
	require.Nil(t, appErr)

	appErr = svc.RemoveParticipant(context.Background(), "ev1", "ALICE@example.com")
	require.Nil(t, appErr)
	assert.Empty(t, repo.participants["ev1"])

	appErr = svc.RemoveParticipant(context.Background(), "ev1", "alice@example.com")
	assert.NotNil(t, appErr)
}

func TestListParticipants_HidesTokens(t *testing.T) {
	svc, repo := newTestParticipantService(t)

	_, appErr := svc.ConnectParticipant(context.Background(), "ev1", connectReq())
	require.Nil(t, appErr)
	repo.lastSync["ev1"] = time.Now()

	list, appErr := svc.ListParticipants(context.Background(), "ev1")
	require.Nil(t, appErr)
	require.Len(t, list.Participants, 1)
	assert.NotNil(t, list.LastSync)
	assert.Equal(t, entity.ProviderGoogle, list.Participants[0].Provider)
}

func TestMarkSynced(t *testing.T) {
	svc, _ := newTestParticipantService(t)

	at := time.Now().Truncate(time.Second)
	require.NoError(t, svc.MarkSynced(context.Background(), "ev1", at))

	got, err := svc.LastSync(context.Background(), "ev1")
	require.NoError(t, err)
	assert.Equal(t, at, got)
}
