// Package app wires domain services to their persistence and generation
// dependencies.
package app

import (
	"time"

	"github.com/scholarai/scholarai/internal/app/services/applications"
	"github.com/scholarai/scholarai/internal/app/services/assistant"
	authsvc "github.com/scholarai/scholarai/internal/app/services/auth"
	"github.com/scholarai/scholarai/internal/app/services/profiles"
	"github.com/scholarai/scholarai/internal/app/services/scholarships"
	"github.com/scholarai/scholarai/internal/app/storage"
	"github.com/scholarai/scholarai/internal/app/storage/memory"
	"github.com/scholarai/scholarai/internal/generator"
	"github.com/scholarai/scholarai/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to the
// in-memory implementation.
type Stores struct {
	Users        storage.UserStore
	Profiles     storage.ProfileStore
	Scholarships storage.ScholarshipStore
	Applications storage.ApplicationStore
}

// Options carries the non-store dependencies.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	Generator generator.Generator
}

// Application ties the domain services together.
type Application struct {
	log *logger.Logger

	Auth         *authsvc.Service
	Profiles     *profiles.Service
	Scholarships *scholarships.Service
	Applications *applications.Service
	Assistant    *assistant.Service
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, opts Options, log *logger.Logger) (*Application, error) {
	if log == nil {
		log = logger.NewDefault("app")
	}

	mem := memory.New()
	if stores.Users == nil {
		stores.Users = mem
	}
	if stores.Profiles == nil {
		stores.Profiles = mem
	}
	if stores.Scholarships == nil {
		stores.Scholarships = mem
	}
	if stores.Applications == nil {
		stores.Applications = mem
	}

	tokens, err := authsvc.NewTokenService(opts.JWTSecret, opts.TokenTTL)
	if err != nil {
		return nil, err
	}

	authService := authsvc.New(stores.Users, tokens, log)
	profileService := profiles.New(stores.Profiles, log)
	scholarshipService := scholarships.New(stores.Scholarships, profileService, opts.Generator, log)
	applicationService := applications.New(stores.Applications, opts.Generator, log)
	assistantService := assistant.New(opts.Generator, log)

	return &Application{
		log:          log,
		Auth:         authService,
		Profiles:     profileService,
		Scholarships: scholarshipService,
		Applications: applicationService,
		Assistant:    assistantService,
	}, nil
}
