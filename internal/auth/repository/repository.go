package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already in use")
	ErrSlugTaken  = errors.New("tenant slug already in use")
)

const uniqueViolation = "23505"

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	TenantID     uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const getUserByEmailQuery = `
	SELECT id, email, password_hash, role, tenant_id, created_at, updated_at
	FROM users WHERE email = $1
`

const getUserByIDQuery = `
	SELECT id, email, password_hash, role, tenant_id, created_at, updated_at
	FROM users WHERE id = $1
`

// CreateTenantWithAdmin provisions a tenant and its first user in a single
// transaction. The first user always gets the ADMIN role; the tenant starts
// on the FREE plan.
func (r *Repository) CreateTenantWithAdmin(ctx context.Context, tenantName, tenantSlug, email, passwordHash string) (User, error) {
	var user User
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return User{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var tenantID uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO tenants (name, slug, plan)
		VALUES ($1, $2, 'FREE')
		RETURNING id
	`, tenantName, tenantSlug).Scan(&tenantID)
	if err != nil {
		return User{}, mapUniqueViolation(err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, role, tenant_id)
		VALUES ($1, $2, 'ADMIN', $3)
		RETURNING id, email, password_hash, role, tenant_id, created_at, updated_at
	`, email, passwordHash, tenantID).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.TenantID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return User{}, mapUniqueViolation(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return User{}, err
	}

	return user, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := r.pool.QueryRow(ctx, getUserByEmailQuery, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.TenantID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return user, err
}

func (r *Repository) GetUserByID(ctx context.Context, userID uuid.UUID) (User, error) {
	var user User
	err := r.pool.QueryRow(ctx, getUserByIDQuery, userID).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.TenantID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return user, err
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case "users_email_key":
			return ErrEmailTaken
		case "tenants_slug_key":
			return ErrSlugTaken
		}
	}
	return err
}

// Profile is a user row joined with its tenant slug, for the profile endpoint.
type Profile struct {
	ID         uuid.UUID
	Email      string
	Role       string
	TenantID   uuid.UUID
	TenantSlug string
}

const getProfileByIDQuery = `
	SELECT u.id, u.email, u.role, u.tenant_id, t.slug
	FROM users u
	JOIN tenants t ON t.id = u.tenant_id
	WHERE u.id = $1
`

func (r *Repository) GetProfileByID(ctx context.Context, userID uuid.UUID) (Profile, error) {
	var p Profile
	err := r.pool.QueryRow(ctx, getProfileByIDQuery, userID).Scan(
		&p.ID,
		&p.Email,
		&p.Role,
		&p.TenantID,
		&p.TenantSlug,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return p, err
}
