// Package profiles implements the per-user profile record.
package profiles

import (
	"context"
	"errors"

	"github.com/scholarai/scholarai/internal/app/domain/profile"
	"github.com/scholarai/scholarai/internal/app/storage"
	"github.com/scholarai/scholarai/internal/errs"
	"github.com/scholarai/scholarai/pkg/logger"
)

// Service manages student profiles.
type Service struct {
	store storage.ProfileStore
	log   *logger.Logger
}

// New constructs a profile service.
func New(store storage.ProfileStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("profiles")
	}
	return &Service{store: store, log: log}
}

// Get returns the user's profile, creating an empty one on first read.
func (s *Service) Get(ctx context.Context, userID string) (profile.Profile, error) {
	p, err := s.store.GetProfileByUser(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return profile.Profile{}, err
	}

	created, err := s.store.CreateProfile(ctx, profile.Profile{UserID: userID})
	if err != nil {
		// Lost a create race with a concurrent first read; the winner's row
		// is the profile.
		if errors.Is(err, errs.ErrAlreadyExists) {
			return s.store.GetProfileByUser(ctx, userID)
		}
		return profile.Profile{}, err
	}
	s.log.WithField("user_id", userID).Info("profile created")
	return created, nil
}

// Upsert replaces all four profile sections in one write, creating the
// profile if absent.
func (s *Service) Upsert(ctx context.Context, userID string, fields profile.Fields) (profile.Profile, error) {
	return s.store.UpsertProfile(ctx, userID, fields)
}
