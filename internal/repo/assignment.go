package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/adeline-t/horse-calendar/internal/domain"
)

// AssignmentRepo defines the persistence operations for day records.
// The store is a mapping from calendar day to the full record triple;
// absence of a row means the day is untouched.
type AssignmentRepo interface {
	// GetAll returns every stored day record keyed by date. The result is
	// never nil, so it marshals as {} rather than null.
	GetAll(ctx context.Context) (domain.Snapshot, error)

	// Upsert replaces the full record for a day. There is no partial
	// update — every save rewrites the whole triple.
	Upsert(ctx context.Context, key domain.DateKey, rec domain.DayRecord) error

	// Delete removes the record for a day. Deleting an absent day is a
	// no-op, matching the original backend.
	Delete(ctx context.Context, key domain.DateKey) error
}

// pgAssignmentRepo is the Postgres implementation of AssignmentRepo.
type pgAssignmentRepo struct {
	db db
}

// NewAssignmentRepo constructs an AssignmentRepo backed by the provided db.
func NewAssignmentRepo(db db) AssignmentRepo {
	return &pgAssignmentRepo{db: db}
}

// GetAll loads the complete assignment snapshot.
func (r *pgAssignmentRepo) GetAll(ctx context.Context) (domain.Snapshot, error) {
	const q = `
		SELECT day, cavaliers, comment, work_type
		FROM assignments
		ORDER BY day ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.AssignmentRepo.GetAll: %w", err)
	}
	defer rows.Close()

	snapshot := domain.Snapshot{}
	for rows.Next() {
		var (
			day pgtype.Date
			rec domain.DayRecord
		)
		if err := rows.Scan(&day, &rec.Cavaliers, &rec.Comment, &rec.WorkType); err != nil {
			return nil, fmt.Errorf("repo.AssignmentRepo.GetAll: scan: %w", err)
		}
		snapshot[domain.DateKeyOf(day.Time)] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.AssignmentRepo.GetAll: rows: %w", err)
	}

	return snapshot, nil
}

// Upsert writes the full triple for a day, inserting or replacing as needed.
func (r *pgAssignmentRepo) Upsert(ctx context.Context, key domain.DateKey, rec domain.DayRecord) error {
	const q = `
		INSERT INTO assignments (day, cavaliers, comment, work_type)
		VALUES (@day, @cavaliers, @comment, @work_type)
		ON CONFLICT (day) DO UPDATE
		SET cavaliers  = EXCLUDED.cavaliers,
		    comment    = EXCLUDED.comment,
		    work_type  = EXCLUDED.work_type,
		    updated_at = now()`

	day, err := key.Time()
	if err != nil {
		return fmt.Errorf("repo.AssignmentRepo.Upsert: %w", err)
	}

	cavaliers := rec.Cavaliers
	if cavaliers == nil {
		cavaliers = []string{}
	}

	args := pgx.NamedArgs{
		"day":       day,
		"cavaliers": cavaliers,
		"comment":   rec.Comment,
		"work_type": string(rec.WorkType),
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.AssignmentRepo.Upsert: %w", err)
	}
	return nil
}

// Delete removes the record for a day, if any.
func (r *pgAssignmentRepo) Delete(ctx context.Context, key domain.DateKey) error {
	const q = `DELETE FROM assignments WHERE day = @day`

	day, err := key.Time()
	if err != nil {
		return fmt.Errorf("repo.AssignmentRepo.Delete: %w", err)
	}

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"day": day}); err != nil {
		return fmt.Errorf("repo.AssignmentRepo.Delete: %w", err)
	}
	return nil
}
