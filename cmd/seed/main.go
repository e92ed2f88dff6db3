// Command seed provisions two demo tenants (acme, globex), each with an
// admin and a member user. All seeded accounts use the password "password".
// Intended for local development and manual testing only.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"notes_portal_backend/internal/auth/password"
	"notes_portal_backend/platform/config"
	"notes_portal_backend/platform/db"
	"notes_portal_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

type seedTenant struct {
	name  string
	slug  string
	users []seedUser
}

type seedUser struct {
	email string
	role  string
}

var seedData = []seedTenant{
	{
		name: "Acme",
		slug: "acme",
		users: []seedUser{
			{email: "admin@acme.test", role: "ADMIN"},
			{email: "user@acme.test", role: "MEMBER"},
		},
	},
	{
		name: "Globex",
		slug: "globex",
		users: []seedUser{
			{email: "admin@globex.test", role: "ADMIN"},
			{email: "user@globex.test", role: "MEMBER"},
		},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	hash, err := password.Hash("password")
	if err != nil {
		log.Error("failed to hash seed password", "error", err)
		os.Exit(1)
	}

	for _, tenant := range seedData {
		if err := seedOne(ctx, pool, tenant, hash); err != nil {
			log.Error("seeding failed", "tenant", tenant.slug, "error", err)
			os.Exit(1)
		}
		log.Info("tenant seeded", "tenant", tenant.slug)
	}

	log.Info("seeding finished")
}

func seedOne(ctx context.Context, pool *pgxpool.Pool, tenant seedTenant, passwordHash string) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var tenantID string
	err = tx.QueryRow(ctx, `
		INSERT INTO tenants (name, slug, plan)
		VALUES ($1, $2, 'FREE')
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, tenant.name, tenant.slug).Scan(&tenantID)
	if err != nil {
		return err
	}

	for _, user := range tenant.users {
		if _, err = tx.Exec(ctx, `
			INSERT INTO users (email, password_hash, role, tenant_id)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (email) DO NOTHING
		`, user.email, passwordHash, user.role, tenantID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
