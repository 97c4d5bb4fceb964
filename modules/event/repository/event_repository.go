package repository

import (
	"context"
	"errors"
	"strings"

	"prikkr/core/cache"
	"prikkr/core/constants"
	"prikkr/core/logger"
	"prikkr/modules/event/entity"
)

// EventRepository persists event meta records in the KV store
type EventRepository struct {
	Cache cache.Cache
}

// NewEventRepository creates a new repository instance
func NewEventRepository(c cache.Cache) *EventRepository {
	return &EventRepository{Cache: c}
}

// EventRepositoryInterface defines the repository contract
type EventRepositoryInterface interface {
	SaveMeta(ctx context.Context, meta *entity.EventMeta) error
	GetMeta(ctx context.Context, id string) (*entity.EventMeta, error)
	ListEventIDs(ctx context.Context) ([]string, error)
	DeleteEvent(ctx context.Context, id string) error
}

func (r *EventRepository) SaveMeta(ctx context.Context, meta *entity.EventMeta) error {
	err := r.Cache.SetJSON(ctx, constants.KeyPrefixMeta+meta.ID, meta, 0)
	if err != nil {
		logger.Error("EventRepository:SaveMeta", "id", meta.ID, "error", err)
	}
	return err
}

// GetMeta returns nil without an error when the event does not exist.
func (r *EventRepository) GetMeta(ctx context.Context, id string) (*entity.EventMeta, error) {
	var meta entity.EventMeta
	err := r.Cache.GetJSON(ctx, constants.KeyPrefixMeta+id, &meta)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, nil
		}
		logger.Error("EventRepository:GetMeta", "id", id, "error", err)
		return nil, err
	}
	return &meta, nil
}

func (r *EventRepository) ListEventIDs(ctx context.Context) ([]string, error) {
	keys, err := r.Cache.Keys(ctx, constants.KeyPrefixMeta+"*")
	if err != nil {
		logger.Error("EventRepository:ListEventIDs", "error", err)
		return nil, err
	}

	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, constants.KeyPrefixMeta))
	}
	return ids, nil
}

// DeleteEvent removes the meta record together with the event's responses,
// participants and sync marker.
func (r *EventRepository) DeleteEvent(ctx context.Context, id string) error {
	err := r.Cache.Del(ctx,
		constants.KeyPrefixMeta+id,
		constants.KeyPrefixResponses+id,
		constants.KeyPrefixParticipants+id,
		constants.KeyPrefixLastSync+id,
	)
	if err != nil {
		logger.Error("EventRepository:DeleteEvent", "id", id, "error", err)
	}
	return err
}
