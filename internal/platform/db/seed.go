package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"peoplehub/internal/domain/auth"
	"peoplehub/internal/platform/config"
)

func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureLeaveTypes(ctx, pool); err != nil {
		return err
	}
	return ensureAdminUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
}

func ensureLeaveTypes(ctx context.Context, pool *pgxpool.Pool) error {
	defaults := []struct {
		Name   string
		Code   string
		IsPaid bool
	}{
		{"Annual Leave", "annual", true},
		{"Sick Leave", "sick", true},
		{"Unpaid Leave", "unpaid", false},
	}
	for _, lt := range defaults {
		if _, err := pool.Exec(ctx, `
      INSERT INTO leave_types (name, code, is_paid)
      VALUES ($1,$2,$3)
      ON CONFLICT (code) DO NOTHING
    `, lt.Name, lt.Code, lt.IsPaid); err != nil {
			return err
		}
	}
	return nil
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	return pool.QueryRow(ctx, `
    INSERT INTO users (email, password_hash, role, status)
    VALUES ($1, $2, $3, $4)
    RETURNING id
  `, email, hash, auth.RoleHR, auth.UserStatusActive).Scan(&id)
}
