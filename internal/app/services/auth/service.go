// Package auth implements registration, login, and token issuance.
package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/scholarai/scholarai/internal/app/domain/user"
	"github.com/scholarai/scholarai/internal/app/storage"
	"github.com/scholarai/scholarai/internal/errs"
	"github.com/scholarai/scholarai/pkg/logger"
)

const bcryptCost = 10

// Service manages user credentials and sessions.
type Service struct {
	users  storage.UserStore
	tokens *TokenService
	log    *logger.Logger
}

// New constructs an auth service.
func New(users storage.UserStore, tokens *TokenService, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("auth")
	}
	return &Service{users: users, tokens: tokens, log: log}
}

// Register creates a user with a salted password digest. Duplicate emails
// surface as errs.ErrAlreadyExists from the store.
func (s *Service) Register(ctx context.Context, name, email, password string) (user.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return user.User{}, fmt.Errorf("%w: name, email and password are required", errs.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return user.User{}, err
	}

	created, err := s.users.CreateUser(ctx, user.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		return user.User{}, err
	}
	s.log.WithField("user_id", created.ID).Info("user registered")
	return created, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, user.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", user.User{}, fmt.Errorf("%w: email and password are required", errs.ErrValidation)
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", user.User{}, errs.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return "", user.User{}, errs.ErrUnauthorized
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return "", user.User{}, err
	}
	s.log.WithField("user_id", u.ID).Info("user logged in")
	return token, u, nil
}

// Tokens exposes the token service for the auth gate.
func (s *Service) Tokens() *TokenService {
	return s.tokens
}
