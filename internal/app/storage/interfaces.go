package storage

import (
	"context"

	"github.com/scholarai/scholarai/internal/app/domain/application"
	"github.com/scholarai/scholarai/internal/app/domain/profile"
	"github.com/scholarai/scholarai/internal/app/domain/scholarship"
	"github.com/scholarai/scholarai/internal/app/domain/user"
)

// UserStore persists identity records. Email uniqueness is enforced by the
// store; CreateUser returns errs.ErrAlreadyExists on a duplicate email.
type UserStore interface {
	CreateUser(ctx context.Context, u user.User) (user.User, error)
	GetUser(ctx context.Context, id string) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
}

// ProfileStore persists student profiles, one per user.
type ProfileStore interface {
	CreateProfile(ctx context.Context, p profile.Profile) (profile.Profile, error)
	GetProfileByUser(ctx context.Context, userID string) (profile.Profile, error)
	UpsertProfile(ctx context.Context, userID string, fields profile.Fields) (profile.Profile, error)
}

// ScholarshipStore persists the reference catalog. UpsertScholarship is an
// insert-if-absent keyed by scholarship name, so seeding stays idempotent
// under concurrent first readers.
type ScholarshipStore interface {
	UpsertScholarship(ctx context.Context, s scholarship.Scholarship) error
	ListScholarships(ctx context.Context) ([]scholarship.Scholarship, error)
	CountScholarships(ctx context.Context) (int, error)
}

// ApplicationStore persists tracked applications. CreateApplication enforces
// the (userID, scholarship name) uniqueness invariant and returns
// errs.ErrAlreadyExists when violated; the targeted updates match on
// (id, userID) and return errs.ErrNotFound on zero matches, deliberately
// conflating "missing" and "not owned".
type ApplicationStore interface {
	CreateApplication(ctx context.Context, app application.Application) (application.Application, error)
	ListApplications(ctx context.Context, userID string) ([]application.Application, error)
	UpdateApplicationStatus(ctx context.Context, userID, applicationID string, status application.Status) error
	UpdateChecklistItem(ctx context.Context, userID, applicationID, itemID string, completed bool) error
}
