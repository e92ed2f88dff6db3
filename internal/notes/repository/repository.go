package repository

import (
	"context"
	"errors"
	"time"

	"notes_portal_backend/internal/authz"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrQuotaExceeded = errors.New("note quota exceeded")
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Note struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Title     string
	Content   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Every query below that touches notes is parameterized by tenant id. A note
// outside the caller's tenant is indistinguishable from one that does not
// exist.

const listByTenantQuery = `
	SELECT id, tenant_id, title, content, created_at, updated_at
	FROM notes
	WHERE tenant_id = $1
	ORDER BY created_at DESC
`

const getByIDQuery = `
	SELECT id, tenant_id, title, content, created_at, updated_at
	FROM notes
	WHERE id = $1 AND tenant_id = $2
`

// updateQuery never touches tenant_id: a note's tenant is fixed at insert.
const updateQuery = `
	UPDATE notes SET title = $3, content = $4, updated_at = now()
	WHERE id = $1 AND tenant_id = $2
	RETURNING id, tenant_id, title, content, created_at, updated_at
`

const deleteQuery = `
	DELETE FROM notes
	WHERE id = $1 AND tenant_id = $2
`

const countByTenantQuery = `
	SELECT count(*) FROM notes WHERE tenant_id = $1
`

const lockTenantPlanQuery = `
	SELECT plan FROM tenants WHERE id = $1 FOR UPDATE
`

const insertNoteQuery = `
	INSERT INTO notes (tenant_id, title, content)
	VALUES ($1, $2, $3)
	RETURNING id, tenant_id, title, content, created_at, updated_at
`

func (r *Repository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]Note, error) {
	rows, err := r.pool.Query(ctx, listByTenantQuery, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.TenantID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id, tenantID uuid.UUID) (Note, error) {
	return scanNote(r.pool.QueryRow(ctx, getByIDQuery, id, tenantID))
}

func (r *Repository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, countByTenantQuery, tenantID).Scan(&count)
	return count, err
}

// Create inserts a note after enforcing the FREE-plan quota inside one
// transaction. The tenant row is locked first, so two concurrent creates for
// the same tenant serialize on the lock and the count they read is exact:
// the limit is a hard limit, not a best-effort one.
func (r *Repository) Create(ctx context.Context, tenantID uuid.UUID, title string, content *string, freeLimit int) (Note, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Note{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var plan string
	err = tx.QueryRow(ctx, lockTenantPlanQuery, tenantID).Scan(&plan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = ErrNotFound
		}
		return Note{}, err
	}

	if plan == authz.PlanFree {
		var count int
		if err = tx.QueryRow(ctx, countByTenantQuery, tenantID).Scan(&count); err != nil {
			return Note{}, err
		}
		if count >= freeLimit {
			err = ErrQuotaExceeded
			return Note{}, err
		}
	}

	var note Note
	note, err = scanNote(tx.QueryRow(ctx, insertNoteQuery, tenantID, title, content))
	if err != nil {
		return Note{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return Note{}, err
	}

	return note, nil
}

func (r *Repository) Update(ctx context.Context, id, tenantID uuid.UUID, title string, content *string) (Note, error) {
	return scanNote(r.pool.QueryRow(ctx, updateQuery, id, tenantID, title, content))
}

func (r *Repository) Delete(ctx context.Context, id, tenantID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, deleteQuery, id, tenantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanNote(row pgx.Row) (Note, error) {
	var n Note
	err := row.Scan(&n.ID, &n.TenantID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Note{}, ErrNotFound
	}
	return n, err
}
