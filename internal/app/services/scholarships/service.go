// Package scholarships manages the reference catalog and the recommendation
// flow.
package scholarships

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/scholarai/scholarai/internal/app/domain/profile"
	"github.com/scholarai/scholarai/internal/app/domain/scholarship"
	"github.com/scholarai/scholarai/internal/app/storage"
	"github.com/scholarai/scholarai/internal/generator"
	"github.com/scholarai/scholarai/pkg/logger"
)

//go:embed seed.yaml
var seedYAML []byte

// SeedCatalog returns the static reference dataset.
func SeedCatalog() ([]scholarship.Scholarship, error) {
	var catalog []scholarship.Scholarship
	if err := yaml.Unmarshal(seedYAML, &catalog); err != nil {
		return nil, fmt.Errorf("parse seed catalog: %w", err)
	}
	return catalog, nil
}

// Profiles is the slice of the profile service the recommendation flow needs.
type Profiles interface {
	Get(ctx context.Context, userID string) (profile.Profile, error)
}

// Service manages the scholarship catalog.
type Service struct {
	store    storage.ScholarshipStore
	profiles Profiles
	gen      generator.Generator
	log      *logger.Logger

	seedMu sync.Mutex // per-process fast path; the store upserts stay idempotent without it
	seeded bool
}

// New constructs a scholarship service.
func New(store storage.ScholarshipStore, profiles Profiles, gen generator.Generator, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("scholarships")
	}
	return &Service{store: store, profiles: profiles, gen: gen, log: log}
}

// EnsureSeeded populates the catalog from the static dataset when the
// collection is empty. Each entry is an insert-if-absent keyed by name, so
// concurrent first readers cannot produce duplicates; a non-empty catalog
// short-circuits.
func (s *Service) EnsureSeeded(ctx context.Context) error {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	if s.seeded {
		return nil
	}
	if err := s.seed(ctx); err != nil {
		return err
	}
	s.seeded = true
	return nil
}

func (s *Service) seed(ctx context.Context) error {
	count, err := s.store.CountScholarships(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	catalog, err := SeedCatalog()
	if err != nil {
		return err
	}
	for _, sch := range catalog {
		if err := s.store.UpsertScholarship(ctx, sch); err != nil {
			return fmt.Errorf("seed %q: %w", sch.Name, err)
		}
	}
	s.log.WithField("count", len(catalog)).Info("scholarship catalog seeded")
	return nil
}

// List returns the full catalog, seeding it first if empty.
func (s *Service) List(ctx context.Context) ([]scholarship.Scholarship, error) {
	if err := s.EnsureSeeded(ctx); err != nil {
		return nil, err
	}
	return s.store.ListScholarships(ctx)
}

// Recommend delegates scoring of the full catalog against the student's
// profile to the generator. The generator's filtering (score >= 50) and
// descending sort are contractual, not re-validated here; its output
// propagates as-is.
func (s *Service) Recommend(ctx context.Context, userID string) ([]scholarship.Recommendation, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	recs, err := s.gen.Recommendations(ctx, p, catalog)
	if err != nil {
		return nil, fmt.Errorf("generate recommendations: %w", err)
	}
	s.log.WithField("user_id", userID).WithField("count", len(recs)).Info("recommendations generated")
	return recs, nil
}
