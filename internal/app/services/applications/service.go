// Package applications implements tracking of a user's scholarship
// applications, including status updates and checklist item toggles.
package applications

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/scholarai/scholarai/internal/app/domain/application"
	"github.com/scholarai/scholarai/internal/app/domain/scholarship"
	"github.com/scholarai/scholarai/internal/app/storage"
	"github.com/scholarai/scholarai/internal/errs"
	"github.com/scholarai/scholarai/internal/generator"
	"github.com/scholarai/scholarai/pkg/logger"
)

// Service manages tracked applications.
type Service struct {
	store storage.ApplicationStore
	gen   generator.Generator
	log   *logger.Logger
}

// New constructs an application tracking service.
func New(store storage.ApplicationStore, gen generator.Generator, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("applications")
	}
	return &Service{store: store, gen: gen, log: log}
}

// List returns all applications owned by the user in insertion order.
func (s *Service) List(ctx context.Context, userID string) ([]application.Application, error) {
	return s.store.ListApplications(ctx, userID)
}

// Track starts tracking a scholarship for the user. The checklist is
// generated synchronously before the application is persisted; an empty task
// list is valid. Duplicate tracking of the same scholarship surfaces as
// errs.ErrAlreadyExists from the store's uniqueness constraint; there is no
// advisory pre-check.
func (s *Service) Track(ctx context.Context, userID string, sch scholarship.Scholarship) (application.Application, error) {
	if strings.TrimSpace(sch.Name) == "" {
		return application.Application{}, fmt.Errorf("%w: scholarship name is required", errs.ErrValidation)
	}

	tasks, err := s.gen.Checklist(ctx, sch.Name, sch.Description)
	if err != nil {
		return application.Application{}, fmt.Errorf("generate checklist: %w", err)
	}

	checklist := make([]application.ChecklistItem, 0, len(tasks))
	for _, task := range tasks {
		checklist = append(checklist, application.ChecklistItem{
			ID:   uuid.NewString(),
			Task: task,
		})
	}

	created, err := s.store.CreateApplication(ctx, application.Application{
		UserID:      userID,
		Scholarship: sch,
		Status:      application.StatusInterested,
		Checklist:   checklist,
	})
	if err != nil {
		return application.Application{}, err
	}

	s.log.WithField("user_id", userID).
		WithField("application_id", created.ID).
		WithField("scholarship", sch.Name).
		WithField("tasks", len(checklist)).
		Info("application tracked")
	return created, nil
}

// UpdateStatus sets the application's status. Any status may move to any
// other; only unknown values are rejected. A missing or foreign application
// is errs.ErrNotFound either way.
func (s *Service) UpdateStatus(ctx context.Context, userID, applicationID string, status application.Status) error {
	if applicationID == "" || status == "" {
		return fmt.Errorf("%w: application id and status are required", errs.ErrValidation)
	}
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", errs.ErrValidation, status)
	}
	if err := s.store.UpdateApplicationStatus(ctx, userID, applicationID, status); err != nil {
		return err
	}
	s.log.WithField("application_id", applicationID).
		WithField("status", string(status)).
		Info("application status updated")
	return nil
}

// UpdateChecklistItem flips one checklist item's completed flag. The item
// must be nested in an application owned by the caller.
func (s *Service) UpdateChecklistItem(ctx context.Context, userID, applicationID, itemID string, completed bool) error {
	if applicationID == "" || itemID == "" {
		return fmt.Errorf("%w: application id and checklist item id are required", errs.ErrValidation)
	}
	return s.store.UpdateChecklistItem(ctx, userID, applicationID, itemID, completed)
}
