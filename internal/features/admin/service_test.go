package admin

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/y0usad/lyoki-site/internal/auth"
	"github.com/y0usad/lyoki-site/internal/features/order"
	"github.com/y0usad/lyoki-site/internal/features/user"
	"github.com/y0usad/lyoki-site/internal/servererrors"
)

type fakeAdminStore struct {
	adminsByUsername map[string]*Admin
	usersByEmail     map[string]*user.User
	createdUsers     []*user.User
	deletedAdmins    []uuid.UUID
	deletedUsers     []uuid.UUID
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{
		adminsByUsername: make(map[string]*Admin),
		usersByEmail:     make(map[string]*user.User),
	}
}

func (f *fakeAdminStore) createAdmin(ctx context.Context, newAdmin *Admin) (*Admin, error) {
	created := *newAdmin
	created.AdminID = uuid.New()
	f.adminsByUsername[created.Username] = &created
	return &created, nil
}

func (f *fakeAdminStore) findAdminByUsername(ctx context.Context, username string) (*Admin, error) {
	if existing, ok := f.adminsByUsername[username]; ok {
		return existing, nil
	}
	return &Admin{}, nil
}

func (f *fakeAdminStore) findAllAdmins(ctx context.Context) ([]*Admin, error) {
	var admins []*Admin
	for _, a := range f.adminsByUsername {
		admins = append(admins, a)
	}
	return admins, nil
}

func (f *fakeAdminStore) updateAdminPassword(ctx context.Context, adminID uuid.UUID, hashedPassword string) (*Admin, error) {
	for _, a := range f.adminsByUsername {
		if a.AdminID == adminID {
			a.Password = hashedPassword
			return a, nil
		}
	}
	return nil, servererrors.ErrAdminNotFound
}

func (f *fakeAdminStore) deleteAdmin(ctx context.Context, adminID uuid.UUID) error {
	for username, a := range f.adminsByUsername {
		if a.AdminID == adminID {
			delete(f.adminsByUsername, username)
			f.deletedAdmins = append(f.deletedAdmins, adminID)
			return nil
		}
	}
	return servererrors.ErrAdminNotFound
}

func (f *fakeAdminStore) createUser(ctx context.Context, newUser *user.User) (*user.User, error) {
	created := *newUser
	created.UserID = uuid.New()
	f.usersByEmail[created.Email] = &created
	f.createdUsers = append(f.createdUsers, &created)
	return &created, nil
}

func (f *fakeAdminStore) findUserByEmail(ctx context.Context, email string) (*user.User, error) {
	if existing, ok := f.usersByEmail[email]; ok {
		return existing, nil
	}
	return &user.User{}, nil
}

func (f *fakeAdminStore) findAllUsers(ctx context.Context) ([]*user.User, error) {
	var users []*user.User
	for _, u := range f.usersByEmail {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeAdminStore) updateUser(ctx context.Context, update *UpdateUserRequest) (*user.User, error) {
	for _, u := range f.usersByEmail {
		if u.UserID == update.UserID {
			if update.Status != nil {
				u.Status = *update.Status
			}
			if update.Name != nil {
				u.Name = *update.Name
			}
			return u, nil
		}
	}
	return nil, servererrors.ErrUserNotFound
}

func (f *fakeAdminStore) deleteUser(ctx context.Context, userID uuid.UUID) error {
	for email, u := range f.usersByEmail {
		if u.UserID == userID {
			delete(f.usersByEmail, email)
			f.deletedUsers = append(f.deletedUsers, userID)
			return nil
		}
	}
	return servererrors.ErrUserNotFound
}

type fakeTokenManager struct{}

func (f *fakeTokenManager) GenerateAccessToken(entityID uuid.UUID, entityType string) (string, error) {
	return "token-" + entityType + "-" + entityID.String(), nil
}

type fakeTransactionsLister struct {
	orders []*order.Order
}

func (f *fakeTransactionsLister) ListTransactions(ctx context.Context) ([]*order.Order, error) {
	return f.orders, nil
}

func seededAdmin(t *testing.T, store *fakeAdminStore, username, password string) *Admin {
	t.Helper()

	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)

	existing := &Admin{
		AdminID:  uuid.New(),
		Username: username,
		Password: hashed,
	}
	store.adminsByUsername[username] = existing
	return existing
}

func TestAdminLogin(t *testing.T) {
	ctx := context.Background()
	store := newFakeAdminStore()
	existing := seededAdmin(t, store, "root", "correct-horse-battery")
	adminService := NewService(store, &fakeTokenManager{}, &fakeTransactionsLister{})

	authResponse, err := adminService.login(ctx, &LoginAdminRequest{
		Username: "root",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	assert.Equal(t, existing.AdminID, authResponse.Admin.AdminID)
	assert.Contains(t, authResponse.Token, auth.EntityTypeAdmin)
}

func TestAdminLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	store := newFakeAdminStore()
	seededAdmin(t, store, "root", "correct-horse-battery")
	adminService := NewService(store, &fakeTokenManager{}, &fakeTransactionsLister{})

	_, err := adminService.login(ctx, &LoginAdminRequest{
		Username: "root",
		Password: "wrong-password",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, servererrors.ErrInvalidCredentials)
}

func TestAdminLoginUnknownUsername(t *testing.T) {
	ctx := context.Background()
	store := newFakeAdminStore()
	adminService := NewService(store, &fakeTokenManager{}, &fakeTransactionsLister{})

	_, err := adminService.login(ctx, &LoginAdminRequest{
		Username: "nobody",
		Password: "whatever-password",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, servererrors.ErrInvalidCredentials)
}

func TestCreateAdmin(t *testing.T) {
	ctx := context.Background()
	store := newFakeAdminStore()
	adminService := NewService(store, &fakeTokenManager{}, &fakeTransactionsLister{})

	created, err := adminService.createAdmin(ctx, &CreateAdminRequest{
		Username: " root ",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "root", created.Username)
	assert.NotEqual(t, "correct-horse-battery", created.Password)
}

func TestCreateAdminDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	store := newFakeAdminStore()
	seededAdmin(t, store, "root", "correct-horse-battery")
	adminService := NewService(store, &fakeTokenManager{}, &fakeTransactionsLister{})

	_, err := adminService.createAdmin(ctx, &CreateAdminRequest{
		Username: "root",
		Password: "another-password",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, servererrors.ErrUsernameAlreadyTaken)
}

func TestDeleteAdminSelfForbidden(t *testing.T) {
	ctx := context.Background()
	store := newFakeAdminStore()
	existing := seededAdmin(t, store, "root", "correct-horse-battery")
	adminService := NewService(store, &fakeTokenManager{}, &fakeTransactionsLister{})

	err := adminService.deleteAdmin(ctx, existing.AdminID, existing.AdminID)
	require.Error(t, err)
	assert.ErrorIs(t, err, servererrors.ErrForbidden)
	assert.Empty(t, store.deletedAdmins)
}

func TestDeleteAdmin(t *testing.T) {
	ctx := context.Background()
	store := newFakeAdminStore()
	caller := seededAdmin(t, store, "root", "correct-horse-battery")
	target := seededAdmin(t, store, "backup", "another-password")
	adminService := NewService(store, &fakeTokenManager{}, &fakeTransactionsLister{})

	err := adminService.deleteAdmin(ctx, caller.AdminID, target.AdminID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{target.AdminID}, store.deletedAdmins)
}

func TestCreateUserHashesPasswordAndDefaultsStatus(t *testing.T) {
	ctx := context.Background()
	store := newFakeAdminStore()
	adminService := NewService(store, &fakeTokenManager{}, &fakeTransactionsLister{})

	created, err := adminService.createUser(ctx, &CreateUserRequest{
		Email:    "Maria@Example.com",
		Password: "correct-horse-battery",
		Name:     "Maria",
	})
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", created.Email)
	assert.Equal(t, user.StatusActive, created.Status)
	assert.NotEqual(t, "correct-horse-battery", created.Password)
	assert.True(t, auth.ComparePassword(created.Password, "correct-horse-battery"))
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := newFakeAdminStore()
	adminService := NewService(store, &fakeTokenManager{}, &fakeTransactionsLister{})

	_, err := adminService.createUser(ctx, &CreateUserRequest{
		Email:    "maria@example.com",
		Password: "correct-horse-battery",
		Name:     "Maria",
	})
	require.NoError(t, err)

	_, err = adminService.createUser(ctx, &CreateUserRequest{
		Email:    "maria@example.com",
		Password: "another-password",
		Name:     "Maria",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, servererrors.ErrEmailAlreadyRegistered)
}

func TestListTransactionsDelegatesToOrderService(t *testing.T) {
	ctx := context.Background()
	store := newFakeAdminStore()
	lister := &fakeTransactionsLister{
		orders: []*order.Order{
			{OrderID: uuid.New(), Total: 99.9},
		},
	}
	adminService := NewService(store, &fakeTokenManager{}, lister)

	transactions, err := adminService.listTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, 99.9, transactions[0].Total)
}
