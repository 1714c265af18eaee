package applications

import (
	"context"
	"errors"
	"testing"

	"github.com/scholarai/scholarai/internal/app/domain/application"
	"github.com/scholarai/scholarai/internal/app/domain/profile"
	"github.com/scholarai/scholarai/internal/app/domain/scholarship"
	"github.com/scholarai/scholarai/internal/app/storage/memory"
	"github.com/scholarai/scholarai/internal/errs"
)

type stubGenerator struct {
	tasks []string
	err   error
}

func (g *stubGenerator) Checklist(context.Context, string, string) ([]string, error) {
	return g.tasks, g.err
}

func (g *stubGenerator) Recommendations(context.Context, profile.Profile, []scholarship.Scholarship) ([]scholarship.Recommendation, error) {
	return nil, nil
}

func (g *stubGenerator) Answer(context.Context, string) (string, error) {
	return "", nil
}

func TestTrackCreatesApplicationWithChecklist(t *testing.T) {
	gen := &stubGenerator{tasks: []string{"Write essay", "Request transcript"}}
	svc := New(memory.New(), gen, nil)
	ctx := context.Background()

	created, err := svc.Track(ctx, "user-1", scholarship.Scholarship{Name: "STEM Grant", Amount: "$5,000"})
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if created.Status != application.StatusInterested {
		t.Fatalf("status = %q, want %q", created.Status, application.StatusInterested)
	}
	if len(created.Checklist) != 2 {
		t.Fatalf("expected 2 checklist items, got %d", len(created.Checklist))
	}
	for i, item := range created.Checklist {
		if item.ID == "" {
			t.Fatalf("item %d has no id", i)
		}
		if item.Completed {
			t.Fatalf("item %d starts completed", i)
		}
	}
	if created.Checklist[0].Task != "Write essay" {
		t.Fatalf("task order lost: %+v", created.Checklist)
	}
}

func TestTrackEmptyChecklistIsValid(t *testing.T) {
	svc := New(memory.New(), &stubGenerator{}, nil)

	created, err := svc.Track(context.Background(), "user-1", scholarship.Scholarship{Name: "STEM Grant"})
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if len(created.Checklist) != 0 {
		t.Fatalf("expected empty checklist, got %+v", created.Checklist)
	}
}

func TestTrackRequiresScholarshipName(t *testing.T) {
	svc := New(memory.New(), &stubGenerator{}, nil)

	if _, err := svc.Track(context.Background(), "user-1", scholarship.Scholarship{Name: "   "}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestTrackGeneratorFailureLeavesNoApplication(t *testing.T) {
	gen := &stubGenerator{err: errors.New("model unavailable")}
	store := memory.New()
	svc := New(store, gen, nil)
	ctx := context.Background()

	if _, err := svc.Track(ctx, "user-1", scholarship.Scholarship{Name: "STEM Grant"}); err == nil {
		t.Fatal("expected error")
	}
	apps, err := store.ListApplications(ctx, "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(apps) != 0 {
		t.Fatalf("failed track persisted an application: %+v", apps)
	}
}

func TestTrackDuplicateScholarship(t *testing.T) {
	svc := New(memory.New(), &stubGenerator{tasks: []string{"Apply"}}, nil)
	ctx := context.Background()
	sch := scholarship.Scholarship{Name: "STEM Grant"}

	if _, err := svc.Track(ctx, "user-1", sch); err != nil {
		t.Fatalf("track: %v", err)
	}
	if _, err := svc.Track(ctx, "user-1", sch); !errors.Is(err, errs.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUpdateStatusValidation(t *testing.T) {
	svc := New(memory.New(), &stubGenerator{}, nil)
	ctx := context.Background()

	if err := svc.UpdateStatus(ctx, "user-1", "", application.StatusApplied); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("empty id: expected ErrValidation, got %v", err)
	}
	if err := svc.UpdateStatus(ctx, "user-1", "app-1", ""); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("empty status: expected ErrValidation, got %v", err)
	}
	if err := svc.UpdateStatus(ctx, "user-1", "app-1", application.Status("Pending")); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("unknown status: expected ErrValidation, got %v", err)
	}
}

func TestUpdateStatusAllowsAnyTransition(t *testing.T) {
	store := memory.New()
	svc := New(store, &stubGenerator{}, nil)
	ctx := context.Background()

	created, err := svc.Track(ctx, "user-1", scholarship.Scholarship{Name: "STEM Grant"})
	if err != nil {
		t.Fatalf("track: %v", err)
	}

	// No transition graph: Accepted may move back to Interested.
	for _, status := range []application.Status{
		application.StatusAccepted,
		application.StatusInterested,
		application.StatusNotAFit,
	} {
		if err := svc.UpdateStatus(ctx, "user-1", created.ID, status); err != nil {
			t.Fatalf("update to %q: %v", status, err)
		}
	}

	apps, _ := svc.List(ctx, "user-1")
	if apps[0].Status != application.StatusNotAFit {
		t.Fatalf("status = %q, want %q", apps[0].Status, application.StatusNotAFit)
	}
}

func TestUpdateChecklistItemValidation(t *testing.T) {
	svc := New(memory.New(), &stubGenerator{}, nil)
	ctx := context.Background()

	if err := svc.UpdateChecklistItem(ctx, "user-1", "", "item-1", true); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("empty application id: expected ErrValidation, got %v", err)
	}
	if err := svc.UpdateChecklistItem(ctx, "user-1", "app-1", "", true); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("empty item id: expected ErrValidation, got %v", err)
	}
	if err := svc.UpdateChecklistItem(ctx, "user-1", "app-1", "item-1", true); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("missing application: expected ErrNotFound, got %v", err)
	}
}
