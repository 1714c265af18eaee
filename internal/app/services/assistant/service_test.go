package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/scholarai/scholarai/internal/app/domain/profile"
	"github.com/scholarai/scholarai/internal/app/domain/scholarship"
	"github.com/scholarai/scholarai/internal/errs"
)

type stubGenerator struct {
	answer      string
	err         error
	gotQuestion string
}

func (g *stubGenerator) Checklist(context.Context, string, string) ([]string, error) {
	return nil, nil
}

func (g *stubGenerator) Recommendations(context.Context, profile.Profile, []scholarship.Scholarship) ([]scholarship.Recommendation, error) {
	return nil, nil
}

func (g *stubGenerator) Answer(_ context.Context, question string) (string, error) {
	g.gotQuestion = question
	return g.answer, g.err
}

func TestAnswerTrimsAndForwardsQuestion(t *testing.T) {
	gen := &stubGenerator{answer: "Apply before the deadline."}
	svc := New(gen, nil)

	answer, err := svc.Answer(context.Background(), "  When should I apply?  ")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if answer != "Apply before the deadline." {
		t.Fatalf("answer = %q", answer)
	}
	if gen.gotQuestion != "When should I apply?" {
		t.Fatalf("question not trimmed: %q", gen.gotQuestion)
	}
}

func TestAnswerRequiresQuestion(t *testing.T) {
	svc := New(&stubGenerator{}, nil)

	if _, err := svc.Answer(context.Background(), "   "); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAnswerPropagatesGeneratorError(t *testing.T) {
	genErr := errors.New("model unavailable")
	svc := New(&stubGenerator{err: genErr}, nil)

	if _, err := svc.Answer(context.Background(), "question"); !errors.Is(err, genErr) {
		t.Fatalf("expected generator error, got %v", err)
	}
}
