package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dkolesnikov/taskvault/internal/common"
	"github.com/dkolesnikov/taskvault/internal/server/auth"
	"github.com/dkolesnikov/taskvault/internal/server/config"
	"github.com/google/uuid"
)

const minPasswordLength = 6

// ProfileUpdate is a partial-update payload: nil means "leave unchanged".
type ProfileUpdate struct {
	Name     *string
	Email    *string
	Password *string
}

// Service implements registration, authentication and profile management on
// top of a Repository. Tokens are issued here so handlers never touch the
// signing secret.
type Service struct {
	repo                  Repository
	hasher                *auth.PasswordHasher
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                  repo,
		hasher:                auth.NewPasswordHasher(cfg.BcryptCost),
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a user with a freshly computed password digest and issues
// a token for it. Fails with common.ErrEmailTaken when the normalized email
// already exists.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, string, error) {

	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	var fields []string
	if name == "" {
		fields = append(fields, "Name is required")
	}
	if !emailValid(email) {
		fields = append(fields, "Valid email is required")
	}
	if len(password) < minPasswordLength {
		fields = append(fields, fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}
	if len(fields) > 0 {
		return nil, "", common.NewValidationError(fields...)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("error hashing password: %w", err)
	}

	now := time.Now()
	user := &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: digest,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, "", common.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	return user, token, nil
}

// Login verifies credentials and issues a token. The failure signal does not
// distinguish an unknown email from a wrong password.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {

	user, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrInvalidCredentials
		}
		return nil, "", common.ErrInternal
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", common.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	return user, token, nil
}

// Get resolves a user by id.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile applies only the provided fields, re-validating uniqueness
// when the email changes and re-hashing when the password changes.
func (s *Service) UpdateProfile(ctx context.Context, id string, patch ProfileUpdate) (*User, error) {

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var fields []string
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			fields = append(fields, "Name cannot be empty")
		} else {
			user.Name = name
		}
	}
	if patch.Email != nil {
		email := NormalizeEmail(*patch.Email)
		if !emailValid(email) {
			fields = append(fields, "Valid email is required")
		} else {
			user.Email = email
		}
	}
	if patch.Password != nil {
		if len(*patch.Password) < minPasswordLength {
			fields = append(fields, fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
		} else {
			digest, err := s.hasher.Hash(*patch.Password)
			if err != nil {
				return nil, fmt.Errorf("error hashing password: %w", err)
			}
			user.PasswordHash = digest
		}
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError(fields...)
	}

	user.UpdatedAt = time.Now()

	return s.repo.Update(ctx, user)
}

func (s *Service) issueToken(user *User) (string, error) {
	return auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
}

func emailValid(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
