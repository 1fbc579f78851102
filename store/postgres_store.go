package store

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/mkraev/neurocontent-bot/types"
	"github.com/pressly/goose/v3"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		dsn = buildPostgresDSNFromEnv()
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s := &PostgresStore{pool: pool}
	if err := s.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func buildPostgresDSNFromEnv() string {
	host := strings.TrimSpace(os.Getenv("POSTGRES_HOST"))
	if host == "" {
		host = "localhost"
	}
	port := strings.TrimSpace(os.Getenv("POSTGRES_PORT"))
	if port == "" {
		port = "5432"
	}
	db := strings.TrimSpace(os.Getenv("POSTGRES_DB"))
	if db == "" {
		db = "neurocontent"
	}
	user := strings.TrimSpace(os.Getenv("POSTGRES_USER"))
	if user == "" {
		user = "neurocontent"
	}
	pass := os.Getenv("POSTGRES_PASSWORD")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", urlEscape(user), urlEscape(pass), host, port, db)
}

func urlEscape(s string) string {
	r := strings.NewReplacer(
		"%", "%25",
		":", "%3A",
		"/", "%2F",
		"@", "%40",
		"?", "%3F",
		"#", "%23",
		"[", "%5B",
		"]", "%5D",
	)
	return r.Replace(s)
}

func (s *PostgresStore) runMigrations(ctx context.Context) error {
	db := stdlib.OpenDB(*s.pool.Config().ConnConfig)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, "migrations")
}

// EnsureUser creates a default free-tier account when none exists and
// returns the stored row. Safe to call from concurrent first-time updates:
// the insert is ON CONFLICT DO NOTHING, so exactly one row survives.
func (s *PostgresStore) EnsureUser(userID int64) (*types.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := s.pool.Exec(ctx, `
INSERT INTO users (user_id)
VALUES ($1)
ON CONFLICT (user_id) DO NOTHING
`, userID)
	if err != nil {
		return nil, err
	}
	var u types.User
	err = s.pool.QueryRow(ctx, `
SELECT user_id, is_pro, requests_used, request_limit, tariff, created_at, updated_at
FROM users
WHERE user_id = $1
`, userID).Scan(&u.UserID, &u.IsPro, &u.RequestsUsed, &u.RequestLimit, &u.Tariff, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PostgresStore) GetUsage(userID int64) (used, limit int, err error) {
	u, err := s.EnsureUser(userID)
	if err != nil {
		return 0, 0, err
	}
	return u.RequestsUsed, u.RequestLimit, nil
}

// TryConsume reserves one generation unit: inside a single transaction the
// row is locked, the counter is compared against the limit and incremented
// while the lock is held. Two near-simultaneous confirms from one user
// cannot both spend the last unit.
func (s *PostgresStore) TryConsume(userID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
INSERT INTO users (user_id)
VALUES ($1)
ON CONFLICT (user_id) DO NOTHING
`, userID)
	if err != nil {
		return false, err
	}

	var used, limit int
	err = tx.QueryRow(ctx, `
SELECT requests_used, request_limit
FROM users
WHERE user_id = $1
FOR UPDATE
`, userID).Scan(&used, &limit)
	if err != nil {
		return false, err
	}

	if used >= limit {
		return false, tx.Commit(ctx)
	}

	_, err = tx.Exec(ctx, `
UPDATE users
SET requests_used = requests_used + 1, updated_at = NOW()
WHERE user_id = $1
`, userID)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// RefundRequest releases a reserved unit after a failed provider call.
func (s *PostgresStore) RefundRequest(userID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := s.pool.Exec(ctx, `
UPDATE users
SET requests_used = GREATEST(requests_used - 1, 0), updated_at = NOW()
WHERE user_id = $1
`, userID)
	return err
}

// ApplyTariff upgrades the account and appends the payment fact in one
// transaction: either both are visible or neither.
func (s *PostgresStore) ApplyTariff(userID int64, tariff types.Tariff) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
INSERT INTO users (user_id)
VALUES ($1)
ON CONFLICT (user_id) DO NOTHING
`, userID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
UPDATE users
SET is_pro = TRUE, request_limit = $2, tariff = $3, updated_at = NOW()
WHERE user_id = $1
`, userID, tariff.Limit, tariff.Key)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
INSERT INTO payments (user_id, tariff, amount)
VALUES ($1, $2, $3)
`, userID, tariff.Key, tariff.Price)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) SaveGeneration(userID int64, content string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := s.pool.Exec(ctx, `
INSERT INTO history (user_id, content)
VALUES ($1, $2)
`, userID, content)
	return err
}

func (s *PostgresStore) RecentHistory(userID int64, limit int) ([]types.HistoryEntry, error) {
	if limit <= 0 {
		limit = 5
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rows, err := s.pool.Query(ctx, `
SELECT id, user_id, content, created_at
FROM history
WHERE user_id = $1
ORDER BY id DESC
LIMIT $2
`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []types.HistoryEntry
	for rows.Next() {
		var e types.HistoryEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Content, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) CountUsers() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var n int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (s *PostgresStore) CountGenerations() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var n int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM history`).Scan(&n)
	return n, err
}

func (s *PostgresStore) SumPayments() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var total int64
	err := s.pool.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments`).Scan(&total)
	return total, err
}
