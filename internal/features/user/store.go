package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/y0usad/lyoki-site/internal/servererrors"
)

const userColumns = `user_id, email, password, name, last_name, phone, cpf, address, city, postal_code, status, created_at`

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) createOne(ctx context.Context, newUser *User) (*User, error) {
	query := `INSERT INTO users(email, password, name, last_name)
		VALUES($1, $2, $3, $4)
		RETURNING ` + userColumns

	row := s.db.QueryRowContext(
		ctx,
		query,
		newUser.Email,
		newUser.Password,
		newUser.Name,
		newUser.LastName,
	)

	created, err := scanRowIntoUser(row)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to create new user in user store: %w",
			err,
		)
	}

	return created, nil
}

// findByEmail returns a zero value user when no row matches, mirroring how
// duplicate checks consume it.
func (s *Store) findByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE email = $1`

	row := s.db.QueryRowContext(
		ctx,
		query,
		email,
	)

	existing, err := scanRowIntoUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &User{}, nil
		}

		return nil, fmt.Errorf(
			"failed to get user by email from user store: %w",
			err,
		)
	}

	return existing, nil
}

func (s *Store) findByID(ctx context.Context, userID uuid.UUID) (*User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE user_id = $1`

	row := s.db.QueryRowContext(
		ctx,
		query,
		userID,
	)

	existing, err := scanRowIntoUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, servererrors.ErrUserNotFound
		}

		return nil, fmt.Errorf(
			"failed to get user by id from user store: %w",
			err,
		)
	}

	return existing, nil
}

func (s *Store) updateProfile(ctx context.Context, update *UpdateProfileRequest) (*User, error) {
	params := make([]any, 0, 8)
	setClause := ""

	appendSet := func(column string, value any) {
		params = append(params, value)
		if setClause != "" {
			setClause += ", "
		}
		setClause += fmt.Sprintf("%s = $%d", column, len(params))
	}

	if update.Name != nil {
		appendSet("name", *update.Name)
	}
	if update.LastName != nil {
		appendSet("last_name", *update.LastName)
	}
	if update.Phone != nil {
		appendSet("phone", *update.Phone)
	}
	if update.CPF != nil {
		appendSet("cpf", *update.CPF)
	}
	if update.Address != nil {
		appendSet("address", *update.Address)
	}
	if update.City != nil {
		appendSet("city", *update.City)
	}

	if update.PostalCode != nil {
		appendSet("postal_code", *update.PostalCode)
	}

	if len(params) == 0 {
		return s.findByID(ctx, update.UserID)
	}

	params = append(params, update.UserID)
	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE user_id = $%d RETURNING `+userColumns,
		setClause,
		len(params),
	)

	row := s.db.QueryRowContext(
		ctx,
		query,
		params...,
	)

	updated, err := scanRowIntoUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, servererrors.ErrUserNotFound
		}

		return nil, fmt.Errorf(
			"failed to update user profile in user store: %w",
			err,
		)
	}

	return updated, nil
}

func scanRowIntoUser(row *sql.Row) (*User, error) {
	u := new(User)

	err := row.Scan(
		&u.UserID,
		&u.Email,
		&u.Password,
		&u.Name,
		&u.LastName,
		&u.Phone,
		&u.CPF,
		&u.Address,
		&u.City,
		&u.PostalCode,
		&u.Status,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return u, nil
}
