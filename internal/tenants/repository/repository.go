package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Tenant struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	Plan      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

const findBySlugQuery = `
	SELECT id, name, slug, plan, created_at, updated_at
	FROM tenants WHERE slug = $1
`

const findByIDQuery = `
	SELECT id, name, slug, plan, created_at, updated_at
	FROM tenants WHERE id = $1
`

const updatePlanQuery = `
	UPDATE tenants SET plan = $2, updated_at = now()
	WHERE id = $1
	RETURNING id, name, slug, plan, created_at, updated_at
`

func (r *Repository) FindBySlug(ctx context.Context, slug string) (Tenant, error) {
	return r.scanOne(r.pool.QueryRow(ctx, findBySlugQuery, slug))
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (Tenant, error) {
	return r.scanOne(r.pool.QueryRow(ctx, findByIDQuery, id))
}

// UpdatePlan sets the tenant's plan. Callers are responsible for the
// authorization checks; this is plain data access.
func (r *Repository) UpdatePlan(ctx context.Context, id uuid.UUID, plan string) (Tenant, error) {
	return r.scanOne(r.pool.QueryRow(ctx, updatePlanQuery, id, plan))
}

func (r *Repository) scanOne(row pgx.Row) (Tenant, error) {
	var t Tenant
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.Plan, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Tenant{}, ErrNotFound
	}
	return t, err
}
