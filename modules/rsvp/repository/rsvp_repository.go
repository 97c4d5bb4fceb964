package repository

import (
	"context"
	"errors"

	"prikkr/core/cache"
	"prikkr/core/constants"
	"prikkr/core/logger"
	"prikkr/modules/rsvp/entity"
)

// RsvpRepository persists the response map of each event
type RsvpRepository struct {
	Cache cache.Cache
}

// NewRsvpRepository creates a new repository instance
func NewRsvpRepository(c cache.Cache) *RsvpRepository {
	return &RsvpRepository{Cache: c}
}

// RsvpRepositoryInterface defines the repository contract
type RsvpRepositoryInterface interface {
	GetResponses(ctx context.Context, eventID string) (map[string]entity.Response, error)
	SaveResponses(ctx context.Context, eventID string, responses map[string]entity.Response) error
}

// GetResponses returns an empty map when no one has responded yet.
func (r *RsvpRepository) GetResponses(ctx context.Context, eventID string) (map[string]entity.Response, error) {
	responses := make(map[string]entity.Response)
	err := r.Cache.GetJSON(ctx, constants.KeyPrefixResponses+eventID, &responses)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return responses, nil
		}
		logger.Error("RsvpRepository:GetResponses", "eventId", eventID, "error", err)
		return nil, err
	}
	return responses, nil
}

func (r *RsvpRepository) SaveResponses(ctx context.Context, eventID string, responses map[string]entity.Response) error {
	err := r.Cache.SetJSON(ctx, constants.KeyPrefixResponses+eventID, responses, 0)
	if err != nil {
		logger.Error("RsvpRepository:SaveResponses", "eventId", eventID, "error", err)
	}
	return err
}
