package repository

import (
	"context"
	"errors"
	"time"

	"prikkr/core/cache"
	"prikkr/core/logger"
	"prikkr/modules/auth/entity"
)

const (
	keyPrefixOAuthState = "oauthstate:"
	stateTTL            = 10 * time.Minute
)

// AuthRepository stores one-time OAuth state tokens with a short TTL
type AuthRepository struct {
	Cache cache.Cache
}

// NewAuthRepository creates a new repository instance
func NewAuthRepository(c cache.Cache) *AuthRepository {
	return &AuthRepository{Cache: c}
}

// AuthRepositoryInterface defines the repository contract
type AuthRepositoryInterface interface {
	SaveState(ctx context.Context, state string, data *entity.OAuthState) error
	ConsumeState(ctx context.Context, state string) (*entity.OAuthState, error)
}

func (r *AuthRepository) SaveState(ctx context.Context, state string, data *entity.OAuthState) error {
	err := r.Cache.SetJSON(ctx, keyPrefixOAuthState+state, data, stateTTL)
	if err != nil {
		logger.Error("AuthRepository:SaveState", "error", err)
	}
	return err
}

// ConsumeState validates and deletes a state token in one step; states are
// single use. Unknown or expired states return nil without an error.
func (r *AuthRepository) ConsumeState(ctx context.Context, state string) (*entity.OAuthState, error) {
	var data entity.OAuthState
	err := r.Cache.GetJSON(ctx, keyPrefixOAuthState+state, &data)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, nil
		}
		logger.Error("AuthRepository:ConsumeState", "error", err)
		return nil, err
	}

	if err := r.Cache.Del(ctx, keyPrefixOAuthState+state); err != nil {
		logger.Warn("AuthRepository:ConsumeState:delete", "error", err)
	}
	return &data, nil
}
