package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/y0usad/lyoki-site/internal/features/user"
	"github.com/y0usad/lyoki-site/internal/servererrors"
)

const adminColumns = `admin_id, username, password, created_at`

const managedUserColumns = `user_id, email, password, name, last_name, phone, cpf, address, city, postal_code, status, created_at`

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

// admins

func (s *Store) createAdmin(ctx context.Context, newAdmin *Admin) (*Admin, error) {
	query := `INSERT INTO admins(username, password)
		VALUES($1, $2)
		RETURNING ` + adminColumns

	row := s.db.QueryRowContext(
		ctx,
		query,
		newAdmin.Username,
		newAdmin.Password,
	)

	created, err := scanRowIntoAdmin(row)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to create new admin in admin store: %w",
			err,
		)
	}

	return created, nil
}

// findAdminByUsername returns a zero value admin when no row matches.
func (s *Store) findAdminByUsername(ctx context.Context, username string) (*Admin, error) {
	query := `SELECT ` + adminColumns + `
		FROM admins
		WHERE username = $1`

	row := s.db.QueryRowContext(
		ctx,
		query,
		username,
	)

	existing, err := scanRowIntoAdmin(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &Admin{}, nil
		}

		return nil, fmt.Errorf(
			"failed to get admin by username from admin store: %w",
			err,
		)
	}

	return existing, nil
}

func (s *Store) findAllAdmins(ctx context.Context) ([]*Admin, error) {
	query := `SELECT ` + adminColumns + `
		FROM admins
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get all admins from admin store: %w",
			err,
		)
	}
	defer rows.Close()

	var admins []*Admin
	for rows.Next() {
		a := new(Admin)
		err := rows.Scan(
			&a.AdminID,
			&a.Username,
			&a.Password,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan admin in admin store: %w",
				err,
			)
		}
		admins = append(admins, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(
			"failed to complete admin rows iteration: %w",
			err,
		)
	}

	return admins, nil
}

func (s *Store) updateAdminPassword(ctx context.Context, adminID uuid.UUID, hashedPassword string) (*Admin, error) {
	query := `UPDATE admins
		SET password = $1
		WHERE admin_id = $2
		RETURNING ` + adminColumns

	row := s.db.QueryRowContext(
		ctx,
		query,
		hashedPassword,
		adminID,
	)

	updated, err := scanRowIntoAdmin(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, servererrors.ErrAdminNotFound
		}

		return nil, fmt.Errorf(
			"failed to update admin password in admin store: %w",
			err,
		)
	}

	return updated, nil
}

func (s *Store) deleteAdmin(ctx context.Context, adminID uuid.UUID) error {
	query := `DELETE FROM admins
		WHERE admin_id = $1`

	result, err := s.db.ExecContext(
		ctx,
		query,
		adminID,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to delete admin from admin store: %w",
			err,
		)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf(
			"failed to read delete admin result: %w",
			err,
		)
	}
	if affected == 0 {
		return servererrors.ErrAdminNotFound
	}

	return nil
}

// managed users

func (s *Store) createUser(ctx context.Context, newUser *user.User) (*user.User, error) {
	query := `INSERT INTO users(email, password, name, last_name, status)
		VALUES($1, $2, $3, $4, $5)
		RETURNING ` + managedUserColumns

	row := s.db.QueryRowContext(
		ctx,
		query,
		newUser.Email,
		newUser.Password,
		newUser.Name,
		newUser.LastName,
		newUser.Status,
	)

	created, err := scanRowIntoManagedUser(row)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to create managed user in admin store: %w",
			err,
		)
	}

	return created, nil
}

func (s *Store) findUserByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + managedUserColumns + `
		FROM users
		WHERE email = $1`

	row := s.db.QueryRowContext(
		ctx,
		query,
		email,
	)

	existing, err := scanRowIntoManagedUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &user.User{}, nil
		}

		return nil, fmt.Errorf(
			"failed to get managed user by email from admin store: %w",
			err,
		)
	}

	return existing, nil
}

func (s *Store) findAllUsers(ctx context.Context) ([]*user.User, error) {
	query := `SELECT ` + managedUserColumns + `
		FROM users
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get all users from admin store: %w",
			err,
		)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		u := new(user.User)
		err := rows.Scan(
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
			return nil, fmt.Errorf(
				"failed to scan managed user in admin store: %w",
				err,
			)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(
			"failed to complete managed user rows iteration: %w",
			err,
		)
	}

	return users, nil
}

func (s *Store) updateUser(ctx context.Context, update *UpdateUserRequest) (*user.User, error) {
	params := make([]any, 0, 4)
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
	if update.Status != nil {
		appendSet("status", *update.Status)
	}

	if len(params) == 0 {
		return s.findUserByID(ctx, update.UserID)
	}

	params = append(params, update.UserID)
	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE user_id = $%d RETURNING `+managedUserColumns,
		setClause,
		len(params),
	)

	row := s.db.QueryRowContext(
		ctx,
		query,
		params...,
	)

	updated, err := scanRowIntoManagedUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, servererrors.ErrUserNotFound
		}

		return nil, fmt.Errorf(
			"failed to update managed user in admin store: %w",
			err,
		)
	}

	return updated, nil
}

func (s *Store) findUserByID(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	query := `SELECT ` + managedUserColumns + `
		FROM users
		WHERE user_id = $1`

	row := s.db.QueryRowContext(
		ctx,
		query,
		userID,
	)

	existing, err := scanRowIntoManagedUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, servererrors.ErrUserNotFound
		}

		return nil, fmt.Errorf(
			"failed to get managed user by id from admin store: %w",
			err,
		)
	}

	return existing, nil
}

func (s *Store) deleteUser(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM users
		WHERE user_id = $1`

	result, err := s.db.ExecContext(
		ctx,
		query,
		userID,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to delete managed user from admin store: %w",
			err,
		)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf(
			"failed to read delete user result: %w",
			err,
		)
	}
	if affected == 0 {
		return servererrors.ErrUserNotFound
	}

	return nil
}

func scanRowIntoAdmin(row *sql.Row) (*Admin, error) {
	a := new(Admin)

	err := row.Scan(
		&a.AdminID,
		&a.Username,
		&a.Password,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return a, nil
}

func scanRowIntoManagedUser(row *sql.Row) (*user.User, error) {
	u := new(user.User)

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
