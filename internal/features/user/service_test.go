package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/y0usad/lyoki-site/internal/auth"
	"github.com/y0usad/lyoki-site/internal/servererrors"
)

type fakeUserStore struct {
	byEmail map[string]*User
	created []*User
	updated *UpdateProfileRequest
}

func newFakeUserStore(users ...*User) *fakeUserStore {
	store := &fakeUserStore{
		byEmail: make(map[string]*User),
	}
	for _, u := range users {
		store.byEmail[u.Email] = u
	}
	return store
}

func (f *fakeUserStore) createOne(ctx context.Context, newUser *User) (*User, error) {
	created := *newUser
	created.UserID = uuid.New()
	created.Status = StatusActive

	f.byEmail[created.Email] = &created
	f.created = append(f.created, &created)
	return &created, nil
}

func (f *fakeUserStore) findByEmail(ctx context.Context, email string) (*User, error) {
	if existing, ok := f.byEmail[email]; ok {
		return existing, nil
	}
	return &User{}, nil
}

func (f *fakeUserStore) findByID(ctx context.Context, userID uuid.UUID) (*User, error) {
	for _, u := range f.byEmail {
		if u.UserID == userID {
			return u, nil
		}
	}
	return nil, servererrors.ErrUserNotFound
}

func (f *fakeUserStore) updateProfile(ctx context.Context, update *UpdateProfileRequest) (*User, error) {
	f.updated = update
	return f.findByID(ctx, update.UserID)
}

type fakeTokenManager struct{}

func (f *fakeTokenManager) GenerateAccessToken(entityID uuid.UUID, entityType string) (string, error) {
	return "token-" + entityType + "-" + entityID.String(), nil
}

type fakeGoogleVerifier struct {
	identity *auth.GoogleIdentity
	err      error
}

func (f *fakeGoogleVerifier) VerifyIDToken(ctx context.Context, credential string) (*auth.GoogleIdentity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

func activeUser(email, password string) *User {
	hashed, _ := auth.HashPassword(password)
	return &User{
		UserID:   uuid.New(),
		Email:    email,
		Password: hashed,
		Name:     "Maria",
		Status:   StatusActive,
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	store := newFakeUserStore()
	userService := NewService(store, &fakeTokenManager{}, &fakeGoogleVerifier{})

	authResponse, err := userService.register(ctx, &RegisterUserRequest{
		Email:    "  Maria@Example.COM ",
		Password: "correct-horse-battery",
		Name:     "Maria",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, authResponse.Token)
	assert.Equal(t, "maria@example.com", authResponse.User.Email)
	assert.NotEqual(t, "correct-horse-battery", authResponse.User.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := newFakeUserStore(
		activeUser("maria@example.com", "correct-horse-battery"),
	)
	userService := NewService(store, &fakeTokenManager{}, &fakeGoogleVerifier{})

	_, err := userService.register(ctx, &RegisterUserRequest{
		Email:    "maria@example.com",
		Password: "another-password",
		Name:     "Maria",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, servererrors.ErrEmailAlreadyRegistered)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	existing := activeUser("maria@example.com", "correct-horse-battery")
	store := newFakeUserStore(existing)
	userService := NewService(store, &fakeTokenManager{}, &fakeGoogleVerifier{})

	authResponse, err := userService.login(ctx, &LoginUserRequest{
		Email:    "maria@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	assert.Equal(t, existing.UserID, authResponse.User.UserID)
	assert.NotEmpty(t, authResponse.Token)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	store := newFakeUserStore(
		activeUser("maria@example.com", "correct-horse-battery"),
	)
	userService := NewService(store, &fakeTokenManager{}, &fakeGoogleVerifier{})

	_, err := userService.login(ctx, &LoginUserRequest{
		Email:    "maria@example.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, servererrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	ctx := context.Background()
	store := newFakeUserStore()
	userService := NewService(store, &fakeTokenManager{}, &fakeGoogleVerifier{})

	_, err := userService.login(ctx, &LoginUserRequest{
		Email:    "nobody@example.com",
		Password: "whatever-password",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, servererrors.ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	ctx := context.Background()
	inactive := activeUser("maria@example.com", "correct-horse-battery")
	inactive.Status = StatusInactive
	store := newFakeUserStore(inactive)
	userService := NewService(store, &fakeTokenManager{}, &fakeGoogleVerifier{})

	_, err := userService.login(ctx, &LoginUserRequest{
		Email:    "maria@example.com",
		Password: "correct-horse-battery",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, servererrors.ErrAccountInactive)
}

func TestLoginWithGoogleCreatesAccountOnFirstSight(t *testing.T) {
	ctx := context.Background()
	store := newFakeUserStore()
	verifier := &fakeGoogleVerifier{
		identity: &auth.GoogleIdentity{
			Email:     "Joao@example.com",
			GivenName: "Joao",
		},
	}
	userService := NewService(store, &fakeTokenManager{}, verifier)

	authResponse, err := userService.loginWithGoogle(ctx, &GoogleLoginRequest{
		Credential: "google-credential",
	})
	require.NoError(t, err)

	require.Len(t, store.created, 1)
	assert.Equal(t, "joao@example.com", authResponse.User.Email)
	assert.Equal(t, "Joao", authResponse.User.Name)
	assert.NotEmpty(t, store.created[0].Password)

	// second sign-in reuses the account
	again, err := userService.loginWithGoogle(ctx, &GoogleLoginRequest{
		Credential: "google-credential",
	})
	require.NoError(t, err)
	assert.Len(t, store.created, 1)
	assert.Equal(t, authResponse.User.UserID, again.User.UserID)
}

func TestLoginWithGoogleRejectsBadToken(t *testing.T) {
	ctx := context.Background()
	store := newFakeUserStore()
	verifier := &fakeGoogleVerifier{
		err: errors.New("signature mismatch"),
	}
	userService := NewService(store, &fakeTokenManager{}, verifier)

	_, err := userService.loginWithGoogle(ctx, &GoogleLoginRequest{
		Credential: "tampered",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, servererrors.ErrInvalidGoogleToken)
	assert.Empty(t, store.created)
}

func TestUpdateProfileForbiddenForOtherUsers(t *testing.T) {
	ctx := context.Background()
	existing := activeUser("maria@example.com", "correct-horse-battery")
	store := newFakeUserStore(existing)
	userService := NewService(store, &fakeTokenManager{}, &fakeGoogleVerifier{})

	_, err := userService.updateProfile(ctx, uuid.New(), &UpdateProfileRequest{
		UserID: existing.UserID,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, servererrors.ErrForbidden)
	assert.Nil(t, store.updated)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	existing := activeUser("maria@example.com", "correct-horse-battery")
	store := newFakeUserStore(existing)
	userService := NewService(store, &fakeTokenManager{}, &fakeGoogleVerifier{})

	city := "Sao Paulo"
	updated, err := userService.updateProfile(ctx, existing.UserID, &UpdateProfileRequest{
		UserID: existing.UserID,
		City:   &city,
	})
	require.NoError(t, err)
	assert.Equal(t, existing.UserID, updated.UserID)
	require.NotNil(t, store.updated)
	assert.Equal(t, &city, store.updated.City)
}
