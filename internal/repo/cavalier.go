// Package repo contains all database access logic for the horse-calendar
// API. Each resource has its own file with an interface and a Postgres
// implementation. No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/adeline-t/horse-calendar/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CavalierRepo defines the persistence operations for the roster.
// The service layer depends on this interface, not the Postgres
// implementation, which allows it to be unit-tested with a mock.
//
// Roster order is the position column, ascending. The API addresses
// cavaliers by list index, so List order must be deterministic.
type CavalierRepo interface {
	// Create inserts a cavalier at the end of the roster and returns the
	// persisted record with id, position, and created_at populated.
	Create(ctx context.Context, c domain.Cavalier) (domain.Cavalier, error)

	// List returns the full roster in position order.
	List(ctx context.Context) ([]domain.Cavalier, error)

	// Update overwrites the mutable fields (name, color, dates) of the row
	// identified by c.ID. Returns domain.ErrNotFound for an unknown id.
	Update(ctx context.Context, c domain.Cavalier) (domain.Cavalier, error)

	// Delete removes a cavalier by id. Positions of the remaining rows are
	// left untouched; gaps do not affect ordering.
	// Returns domain.ErrNotFound for an unknown id.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgCavalierRepo is the Postgres implementation of CavalierRepo.
type pgCavalierRepo struct {
	db db
}

// NewCavalierRepo constructs a CavalierRepo backed by the provided db.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewCavalierRepo(db db) CavalierRepo {
	return &pgCavalierRepo{db: db}
}

// Create appends a cavalier to the roster. The position is computed inside
// the insert so concurrent creates cannot produce duplicates (the unique
// index on position makes the loser retry at the API level).
func (r *pgCavalierRepo) Create(ctx context.Context, c domain.Cavalier) (domain.Cavalier, error) {
	const q = `
		INSERT INTO cavaliers (name, color, start_date, end_date, position)
		VALUES (@name, @color, @start_date, @end_date,
		        (SELECT COALESCE(MAX(position) + 1, 0) FROM cavaliers))
		RETURNING id, name, color, start_date, end_date, position, created_at`

	args := pgx.NamedArgs{
		"name":       c.Name,
		"color":      c.Color,
		"start_date": dateArg(c.StartDate), // empty key becomes NULL
		"end_date":   dateArg(c.EndDate),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanCavalier(row)
	if err != nil {
		return domain.Cavalier{}, fmt.Errorf("repo.CavalierRepo.Create: %w", err)
	}
	return result, nil
}

// List returns the roster in position order (insertion order).
func (r *pgCavalierRepo) List(ctx context.Context) ([]domain.Cavalier, error) {
	const q = `
		SELECT id, name, color, start_date, end_date, position, created_at
		FROM cavaliers
		ORDER BY position ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.CavalierRepo.List: %w", err)
	}
	defer rows.Close()

	var cavaliers []domain.Cavalier
	for rows.Next() {
		c, err := scanCavalier(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CavalierRepo.List: scan: %w", err)
		}
		cavaliers = append(cavaliers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CavalierRepo.List: rows: %w", err)
	}

	return cavaliers, nil
}

// Update overwrites name, color, and the active window of an existing row.
func (r *pgCavalierRepo) Update(ctx context.Context, c domain.Cavalier) (domain.Cavalier, error) {
	const q = `
		UPDATE cavaliers
		SET name       = @name,
		    color      = @color,
		    start_date = @start_date,
		    end_date   = @end_date
		WHERE id = @id
		RETURNING id, name, color, start_date, end_date, position, created_at`

	args := pgx.NamedArgs{
		"id":         c.ID,
		"name":       c.Name,
		"color":      c.Color,
		"start_date": dateArg(c.StartDate),
		"end_date":   dateArg(c.EndDate),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanCavalier(row)
	if err != nil {
		return domain.Cavalier{}, fmt.Errorf("repo.CavalierRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a cavalier by primary key.
func (r *pgCavalierRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM cavaliers WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.CavalierRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CavalierRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanCavalier
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanCavalier maps a database row into a domain.Cavalier, converting the
// nullable date columns to DateKey strings ("" when NULL).
func scanCavalier(s scanner) (domain.Cavalier, error) {
	var (
		c     domain.Cavalier
		id    pgtype.UUID
		start pgtype.Date
		end   pgtype.Date
	)

	err := s.Scan(&id, &c.Name, &c.Color, &start, &end, &c.Position, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Cavalier{}, domain.ErrNotFound
		}
		return domain.Cavalier{}, err
	}

	c.ID = uuid.UUID(id.Bytes)
	c.StartDate = dateKey(start)
	c.EndDate = dateKey(end)

	return c, nil
}

// dateArg converts a DateKey to a value pgx can bind to a date column:
// nil for the empty key, otherwise a midnight-UTC time.Time.
// Keys are validated by the service layer; a malformed key maps to NULL.
func dateArg(k domain.DateKey) any {
	if k == "" {
		return nil
	}
	t, err := k.Time()
	if err != nil {
		return nil
	}
	return t
}

// dateKey converts a nullable date column back to a DateKey string.
func dateKey(d pgtype.Date) domain.DateKey {
	if !d.Valid {
		return ""
	}
	return domain.DateKeyOf(d.Time)
}
