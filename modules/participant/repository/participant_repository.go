package repository

import (
	"context"
	"errors"
	"time"

	"prikkr/core/cache"
	"prikkr/core/constants"
	"prikkr/core/logger"
	"prikkr/modules/participant/entity"
)

// ParticipantRepository persists the participant map and the per-event sync
// marker
type ParticipantRepository struct {
	Cache cache.Cache
}

// NewParticipantRepository creates a new repository instance
func NewParticipantRepository(c cache.Cache) *ParticipantRepository {
	return &ParticipantRepository{Cache: c}
}

// ParticipantRepositoryInterface defines the repository contract
type ParticipantRepositoryInterface interface {
	GetParticipants(ctx context.Context, eventID string) (map[string]entity.Participant, error)
	SaveParticipants(ctx context.Context, eventID string, participants map[string]entity.Participant) error
	GetLastSync(ctx context.Context, eventID string) (time.Time, error)
	SetLastSync(ctx context.Context, eventID string, at time.Time) error
}

// GetParticipants returns an empty map when nobody has connected a calendar.
func (r *ParticipantRepository) GetParticipants(ctx context.Context, eventID string) (map[string]entity.Participant, error) {
	participants := make(map[string]entity.Participant)
	err := r.Cache.GetJSON(ctx, constants.KeyPrefixParticipants+eventID, &participants)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return participants, nil
		}
		logger.Error("ParticipantRepository:GetParticipants", "eventId", eventID, "error", err)
		return nil, err
	}
	return participants, nil
}

func (r *ParticipantRepository) SaveParticipants(ctx context.Context, eventID string, participants map[string]entity.Participant) error {
	err := r.Cache.SetJSON(ctx, constants.KeyPrefixParticipants+eventID, participants, 0)
	if err != nil {
		logger.Error("ParticipantRepository:SaveParticipants", "eventId", eventID, "error", err)
	}
	return err
}

// GetLastSync returns the zero time when the event has never been synced.
func (r *ParticipantRepository) GetLastSync(ctx context.Context, eventID string) (time.Time, error) {
	raw, err := r.Cache.GetString(ctx, constants.KeyPrefixLastSync+eventID)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}

	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		logger.Warn("ParticipantRepository:GetLastSync:badValue", "eventId", eventID, "value", raw)
		return time.Time{}, nil
	}
	return at, nil
}

func (r *ParticipantRepository) SetLastSync(ctx context.Context, eventID string, at time.Time) error {
	return r.Cache.SetString(ctx, constants.KeyPrefixLastSync+eventID, at.Format(time.RFC3339), 0)
}
