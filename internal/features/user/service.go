package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/y0usad/lyoki-site/internal/auth"
	"github.com/y0usad/lyoki-site/internal/servererrors"
)

type storer interface {
	createOne(ctx context.Context, newUser *User) (*User, error)
	findByEmail(ctx context.Context, email string) (*User, error)
	findByID(ctx context.Context, userID uuid.UUID) (*User, error)
	updateProfile(ctx context.Context, update *UpdateProfileRequest) (*User, error)
}

type tokenManager interface {
	GenerateAccessToken(entityID uuid.UUID, entityType string) (string, error)
}

type googleVerifier interface {
	VerifyIDToken(ctx context.Context, credential string) (*auth.GoogleIdentity, error)
}

type service struct {
	store          storer
	tokenManager   tokenManager
	googleVerifier googleVerifier
}

func NewService(store storer, tokenManager tokenManager, googleVerifier googleVerifier) *service {
	return &service{
		store:          store,
		tokenManager:   tokenManager,
		googleVerifier: googleVerifier,
	}
}

func (s *service) register(ctx context.Context, newUser *RegisterUserRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(newUser.Email))

	existing, err := s.store.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing.UserID != uuid.Nil {
		return nil, servererrors.ErrEmailAlreadyRegistered
	}

	hashedPassword, err := auth.HashPassword(newUser.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.store.createOne(ctx, &User{
		Email:    email,
		Password: hashedPassword,
		Name:     strings.TrimSpace(newUser.Name),
		LastName: strings.TrimSpace(newUser.LastName),
	})
	if err != nil {
		return nil, err
	}

	return s.authResponseFor(created)
}

func (s *service) login(ctx context.Context, credentials *LoginUserRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(credentials.Email))

	existing, err := s.store.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	// Compare even when the account does not exist so both failure paths
	// cost about the same.
	if existing.UserID == uuid.Nil {
		auth.ComparePassword(
			"$2a$12$invalidinvalidinvalidinvalidinvalidinvalidinvalidinva",
			credentials.Password,
		)
		return nil, servererrors.ErrInvalidCredentials
	}

	if !auth.ComparePassword(existing.Password, credentials.Password) {
		return nil, servererrors.ErrInvalidCredentials
	}

	if existing.Status != StatusActive {
		return nil, servererrors.ErrAccountInactive
	}

	return s.authResponseFor(existing)
}

// loginWithGoogle verifies the ID token and signs the user in, creating the
// account on first sight. Google accounts get a random placeholder password
// so the password login path can never match them by guessing.
func (s *service) loginWithGoogle(ctx context.Context, request *GoogleLoginRequest) (*AuthResponse, error) {
	identity, err := s.googleVerifier.VerifyIDToken(ctx, request.Credential)
	if err != nil {
		return nil, fmt.Errorf(
			"%w: %w",
			servererrors.ErrInvalidGoogleToken,
			err,
		)
	}

	email := strings.ToLower(identity.Email)

	existing, err := s.store.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if existing.UserID == uuid.Nil {
		placeholderPassword, err := auth.HashPassword(uuid.NewString())
		if err != nil {
			return nil, err
		}

		name := identity.GivenName
		if name == "" {
			name = identity.Name
		}

		existing, err = s.store.createOne(ctx, &User{
			Email:    email,
			Password: placeholderPassword,
			Name:     name,
		})
		if err != nil {
			return nil, err
		}
	}

	if existing.Status != StatusActive {
		return nil, servererrors.ErrAccountInactive
	}

	return s.authResponseFor(existing)
}

func (s *service) updateProfile(ctx context.Context, callerID uuid.UUID, update *UpdateProfileRequest) (*User, error) {
	if callerID != update.UserID {
		return nil, servererrors.ErrForbidden
	}

	return s.store.updateProfile(ctx, update)
}

func (s *service) authResponseFor(u *User) (*AuthResponse, error) {
	token, err := s.tokenManager.GenerateAccessToken(
		u.UserID,
		auth.EntityTypeUser,
	)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token: token,
		User:  u,
	}, nil
}
