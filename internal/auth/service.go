// Package auth is the credential gate: password hashing, signed token
// issue/verify, and the login/registration flows behind them.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"linkdrop/internal/domain"
	"linkdrop/internal/storage"
)

var (
	// ErrInvalidCredentials covers both unknown email and a failed
	// password comparison so a caller cannot probe which emails exist.
	ErrInvalidCredentials = errors.New("the credentials you provided are incorrect")

	// ErrValidation is returned when login/registration input is
	// missing or malformed.
	ErrValidation = errors.New("invalid input")

	// ErrEmailTaken is returned when registering an email that already
	// has an account.
	ErrEmailTaken = errors.New("email already registered")
)

// Service implements login and registration against the user store.
type Service struct {
	users         storage.UserRepository
	secret        []byte
	tokenValidity time.Duration
	log           logrus.FieldLogger
	now           func() time.Time
}

// NewService creates the credential service. A zero tokenValidity
// falls back to DefaultTokenValidity.
func NewService(users storage.UserRepository, secret []byte, tokenValidity time.Duration, logger logrus.FieldLogger) *Service {
	if tokenValidity <= 0 {
		tokenValidity = DefaultTokenValidity
	}
	return &Service{
		users:         users,
		secret:        secret,
		tokenValidity: tokenValidity,
		log:           logger.WithField("component", "auth"),
		now:           time.Now,
	}
}

// Login verifies the credentials and issues a signed token. Unknown
// email and wrong password both come back as ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, Identity, error) {
	if email == "" || password == "" {
		return "", Identity{}, fmt.Errorf("%w: some values are missing", ErrValidation)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.log.WithField("email", email).Warn("Login failed: unknown email")
			return "", Identity{}, ErrInvalidCredentials
		}
		return "", Identity{}, err
	}

	if !ComparePassword(user.Password, password) {
		s.log.WithField("email", email).Warn("Login failed: password mismatch")
		return "", Identity{}, ErrInvalidCredentials
	}

	identity := Identity{Email: user.Email, ID: user.ID}
	token, err := GenerateToken(identity, s.secret, s.tokenValidity)
	if err != nil {
		return "", Identity{}, err
	}

	s.log.WithField("email", email).Info("Login succeeded")
	return token, identity, nil
}

// Register validates the input, hashes the password and creates the
// account, returning a signed token for the fresh identity.
func (s *Service) Register(ctx context.Context, email, password string) (string, Identity, error) {
	if email == "" || password == "" {
		return "", Identity{}, fmt.Errorf("%w: some values are missing", ErrValidation)
	}
	if !IsValidEmail(email) {
		return "", Identity{}, fmt.Errorf("%w: please enter a valid email address", ErrValidation)
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return "", Identity{}, ErrEmailTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		return "", Identity{}, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", Identity{}, err
	}

	now := s.now().UTC()
	user := &domain.User{
		Email:     email,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.InsertUser(ctx, user); err != nil {
		return "", Identity{}, err
	}

	identity := Identity{Email: user.Email, ID: user.ID}
	token, err := GenerateToken(identity, s.secret, s.tokenValidity)
	if err != nil {
		return "", Identity{}, err
	}

	s.log.WithField("email", email).Info("User registered")
	return token, identity, nil
}
