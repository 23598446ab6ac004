package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/asadalimcj/zearsports/internal/domain"
	"github.com/asadalimcj/zearsports/internal/port"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const emailUniqueConstraint = "users_email_key"

const userColumns = `id, first_name, last_name, email, phone,
	street, city, state, zip_code, country, password_hash, is_admin, created_at, updated_at`

type userRepository struct {
	db DBTX
}

func NewUser(db DBTX) port.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	user.Email = domain.NormalizeEmail(user.Email)
	if user.Email == "" {
		return domain.User{}, fmt.Errorf("email is empty")
	}
	if len(user.PasswordHash) == 0 {
		return domain.User{}, fmt.Errorf("password hash is empty")
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	err := r.db.QueryRow(ctx, `
INSERT INTO users (id, first_name, last_name, email, phone, street, city, state, zip_code, country, password_hash, is_admin)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING created_at, updated_at`,
		user.ID, user.FirstName, user.LastName, user.Email, user.Phone,
		user.Address.Street, user.Address.City, user.Address.State, user.Address.ZipCode, user.Address.Country,
		user.PasswordHash, user.IsAdmin,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == emailUniqueConstraint {
			return domain.User{}, fmt.Errorf("user[%s]: %w", user.Email, domain.ErrEmailTaken)
		}
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	if id == uuid.Nil {
		return domain.User{}, fmt.Errorf("userID is empty")
	}
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.User{}, fmt.Errorf("email is empty")
	}
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// UpdateProfile overwrites the user's names, phone and address.
func (r *userRepository) UpdateProfile(ctx context.Context, user domain.User) (domain.User, error) {
	row := r.db.QueryRow(ctx, `
UPDATE users
SET first_name = $2, last_name = $3, phone = $4,
    street = $5, city = $6, state = $7, zip_code = $8, country = $9,
    updated_at = NOW()
WHERE id = $1
RETURNING `+userColumns,
		user.ID, user.FirstName, user.LastName, user.Phone,
		user.Address.Street, user.Address.City, user.Address.State, user.Address.ZipCode, user.Address.Country,
	)

	updated, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, fmt.Errorf("user[%s]: %w", user.ID, domain.ErrUserNotFound)
		}
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}

	return updated, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash []byte) error {
	if len(hash) == 0 {
		return fmt.Errorf("password hash is empty")
	}

	tag, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user[%s]: %w", id, domain.ErrUserNotFound)
	}

	return nil
}

func (r *userRepository) getUser(ctx context.Context, query string, arg any) (domain.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, fmt.Errorf("user[%v]: %w", arg, domain.ErrUserNotFound)
		}
		return domain.User{}, fmt.Errorf("scanUser: %w", err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone,
		&u.Address.Street, &u.Address.City, &u.Address.State, &u.Address.ZipCode, &u.Address.Country,
		&u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
