package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dlalic/unpacking/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create inserts the user and its password row in one transaction. A user
// always has exactly one password row once created.
func (r *UserRepository) Create(ctx context.Context, user model.User, passwordHash string) (uuid.UUID, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO users (id, name, email, role, is_deleted, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			user.ID, user.Name, user.Email, string(user.Role), user.IsDeleted, user.CreatedAt, user.UpdatedAt,
		)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO passwords (user_id, password, created_at, updated_at)
			 VALUES ($1, $2, $3, $4)`,
			user.ID, passwordHash, user.CreatedAt, user.UpdatedAt,
		)
		return err
	})
	if err != nil {
		return uuid.Nil, mapError("failed to create user", err)
	}

	return user.ID, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var user model.User
	var role string
	query := `SELECT id, name, email, role, is_deleted, created_at, updated_at
			  FROM users WHERE id = $1 AND is_deleted = FALSE`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &role, &user.IsDeleted,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return model.User{}, mapError("failed to get user by id", err)
	}
	user.Role = model.Role(role)

	return user, nil
}

// GetCredentialsByEmail returns the live user's id and role together with the
// stored password hash. Soft-deleted users cannot authenticate.
func (r *UserRepository) GetCredentialsByEmail(ctx context.Context, email string) (model.Credentials, error) {
	var creds model.Credentials
	var role string
	query := `SELECT u.id, u.role, p.password
			  FROM users u
			  JOIN passwords p ON p.user_id = u.id
			  WHERE u.email = $1 AND u.is_deleted = FALSE`

	err := r.db.QueryRow(ctx, query, email).Scan(&creds.UserID, &role, &creds.PasswordHash)
	if err != nil {
		return model.Credentials{}, mapError("failed to get credentials by email", err)
	}
	creds.Role = model.Role(role)

	return creds, nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT id, name, email, role, is_deleted, created_at, updated_at
			  FROM users WHERE is_deleted = FALSE ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, mapError("failed to list users", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var user model.User
		var role string
		err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &role, &user.IsDeleted,
			&user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, mapError("failed to scan user", err)
		}
		user.Role = model.Role(role)
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError("failed to list users", err)
	}

	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, name, email string, role model.Role) error {
	query := `UPDATE users SET name = $2, email = $3, role = $4, updated_at = NOW() WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id, name, email, string(role)); err != nil {
		return mapError("failed to update user", err)
	}
	return nil
}

// Delete is logical: the row stays, flagged, and the password row is left
// untouched.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `UPDATE users SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return 0, mapError("failed to delete user", err)
	}
	return cmd.RowsAffected(), nil
}
