package admin

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/y0usad/lyoki-site/internal/auth"
	"github.com/y0usad/lyoki-site/internal/features/order"
	"github.com/y0usad/lyoki-site/internal/features/user"
	"github.com/y0usad/lyoki-site/internal/servererrors"
)

type storer interface {
	createAdmin(ctx context.Context, newAdmin *Admin) (*Admin, error)
	findAdminByUsername(ctx context.Context, username string) (*Admin, error)
	findAllAdmins(ctx context.Context) ([]*Admin, error)
	updateAdminPassword(ctx context.Context, adminID uuid.UUID, hashedPassword string) (*Admin, error)
	deleteAdmin(ctx context.Context, adminID uuid.UUID) error

	createUser(ctx context.Context, newUser *user.User) (*user.User, error)
	findUserByEmail(ctx context.Context, email string) (*user.User, error)
	findAllUsers(ctx context.Context) ([]*user.User, error)
	updateUser(ctx context.Context, update *UpdateUserRequest) (*user.User, error)
	deleteUser(ctx context.Context, userID uuid.UUID) error
}

type tokenManager interface {
	GenerateAccessToken(entityID uuid.UUID, entityType string) (string, error)
}

// transactionsLister is satisfied by the order service; the back-office
// reads orders through it instead of owning its own order queries.
type transactionsLister interface {
	ListTransactions(ctx context.Context) ([]*order.Order, error)
}

type service struct {
	store        storer
	tokenManager tokenManager
	transactions transactionsLister
}

func NewService(store storer, tokenManager tokenManager, transactions transactionsLister) *service {
	return &service{
		store:        store,
		tokenManager: tokenManager,
		transactions: transactions,
	}
}

func (s *service) login(ctx context.Context, credentials *LoginAdminRequest) (*AuthResponse, error) {
	existing, err := s.store.findAdminByUsername(
		ctx,
		strings.TrimSpace(credentials.Username),
	)
	if err != nil {
		return nil, err
	}

	if existing.AdminID == uuid.Nil {
		auth.ComparePassword(
			"$2a$12$invalidinvalidinvalidinvalidinvalidinvalidinvalidinva",
			credentials.Password,
		)
		return nil, servererrors.ErrInvalidCredentials
	}

	if !auth.ComparePassword(existing.Password, credentials.Password) {
		return nil, servererrors.ErrInvalidCredentials
	}

	token, err := s.tokenManager.GenerateAccessToken(
		existing.AdminID,
		auth.EntityTypeAdmin,
	)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token: token,
		Admin: existing,
	}, nil
}

func (s *service) createAdmin(ctx context.Context, newAdmin *CreateAdminRequest) (*Admin, error) {
	username := strings.TrimSpace(newAdmin.Username)

	existing, err := s.store.findAdminByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing.AdminID != uuid.Nil {
		return nil, servererrors.ErrUsernameAlreadyTaken
	}

	hashedPassword, err := auth.HashPassword(newAdmin.Password)
	if err != nil {
		return nil, err
	}

	return s.store.createAdmin(ctx, &Admin{
		Username: username,
		Password: hashedPassword,
	})
}

func (s *service) listAdmins(ctx context.Context) ([]*Admin, error) {
	return s.store.findAllAdmins(ctx)
}

func (s *service) updateAdmin(ctx context.Context, update *UpdateAdminRequest) (*Admin, error) {
	hashedPassword, err := auth.HashPassword(update.Password)
	if err != nil {
		return nil, err
	}

	return s.store.updateAdminPassword(ctx, update.AdminID, hashedPassword)
}

func (s *service) deleteAdmin(ctx context.Context, callerID, adminID uuid.UUID) error {
	// An admin deleting itself would lock the caller out mid-session.
	if callerID == adminID {
		return servererrors.ErrForbidden
	}

	return s.store.deleteAdmin(ctx, adminID)
}

func (s *service) createUser(ctx context.Context, newUser *CreateUserRequest) (*user.User, error) {
	email := strings.ToLower(strings.TrimSpace(newUser.Email))

	existing, err := s.store.findUserByEmail(ctx, email)
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

	status := newUser.Status
	if status == "" {
		status = user.StatusActive
	}

	return s.store.createUser(ctx, &user.User{
		Email:    email,
		Password: hashedPassword,
		Name:     strings.TrimSpace(newUser.Name),
		LastName: strings.TrimSpace(newUser.LastName),
		Status:   status,
	})
}

func (s *service) listUsers(ctx context.Context) ([]*user.User, error) {
	return s.store.findAllUsers(ctx)
}

func (s *service) updateUser(ctx context.Context, update *UpdateUserRequest) (*user.User, error) {
	return s.store.updateUser(ctx, update)
}

func (s *service) deleteUser(ctx context.Context, userID uuid.UUID) error {
	return s.store.deleteUser(ctx, userID)
}

func (s *service) listTransactions(ctx context.Context) ([]*order.Order, error) {
	return s.transactions.ListTransactions(ctx)
}
