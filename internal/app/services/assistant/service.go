// Package assistant answers single-turn scholarship questions through the
// generation service.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/scholarai/scholarai/internal/errs"
	"github.com/scholarai/scholarai/internal/generator"
	"github.com/scholarai/scholarai/pkg/logger"
)

// Service is the chat assistant.
type Service struct {
	gen generator.Generator
	log *logger.Logger
}

// New constructs an assistant service.
func New(gen generator.Generator, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("assistant")
	}
	return &Service{gen: gen, log: log}
}

// Answer responds to one scholarship question. The call is awaited inline and
// never retried.
func (s *Service) Answer(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: question is required", errs.ErrValidation)
	}

	answer, err := s.gen.Answer(ctx, question)
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return answer, nil
}
