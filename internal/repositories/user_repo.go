package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"reservaplus/internal/common"
	"reservaplus/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByAuth0ID(ctx context.Context, auth0UserID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ListByOrganization(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.User, error)
	CountByOrganization(ctx context.Context, organizationID uuid.UUID) (int, error)
}

type userRepo struct {
	db DB
}

func NewUserRepository(db DB) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, auth0_user_id, email, first_name, last_name, avatar_url, is_active, last_login_at, created_at, updated_at`

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, auth0_user_id, email, first_name, last_name, avatar_url, is_active, last_login_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, user.ID, user.Auth0UserID, user.Email, user.FirstName, user.LastName, user.AvatarURL, user.IsActive, user.LastLoginAt)
	if err != nil {
		// The check-then-insert race resolves here: a unique violation on
		// auth0_user_id or email means a concurrent insert won.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("user %s: %w", user.Auth0UserID, common.ErrConflict)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *userRepo) GetByAuth0ID(ctx context.Context, auth0UserID string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE auth0_user_id = $1 AND deleted_at IS NULL
	`
	return r.scanOne(r.db.QueryRow(ctx, query, auth0UserID))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1 AND deleted_at IS NULL
	`
	return r.scanOne(r.db.QueryRow(ctx, query, email))
}

func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET email = $1, first_name = $2, last_name = $3, avatar_url = $4, is_active = $5, last_login_at = $6, updated_at = NOW()
		WHERE id = $7 AND deleted_at IS NULL
	`
	tag, err := r.db.Exec(ctx, query, user.Email, user.FirstName, user.LastName, user.AvatarURL, user.IsActive, user.LastLoginAt, user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", user.ID, common.ErrNotFound)
	}
	return nil
}

func (r *userRepo) ListByOrganization(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.User, error) {
	query := `
		SELECT u.id, u.auth0_user_id, u.email, u.first_name, u.last_name, u.avatar_url, u.is_active, u.last_login_at, u.created_at, u.updated_at
		FROM users u
		JOIN organization_memberships om ON om.user_id = u.id
		WHERE om.organization_id = $1 AND om.is_active = TRUE AND u.deleted_at IS NULL
		ORDER BY u.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Auth0UserID, &user.Email, &user.FirstName, &user.LastName, &user.AvatarURL, &user.IsActive, &user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepo) CountByOrganization(ctx context.Context, organizationID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM users u
		JOIN organization_memberships om ON om.user_id = u.id
		WHERE om.organization_id = $1 AND om.is_active = TRUE AND u.deleted_at IS NULL
	`
	var count int
	if err := r.db.QueryRow(ctx, query, organizationID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *userRepo) scanOne(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Auth0UserID, &user.Email, &user.FirstName, &user.LastName, &user.AvatarURL, &user.IsActive, &user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
