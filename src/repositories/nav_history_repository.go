package repositories

import (
	"context"

	"fundtrack/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NavHistoryRepository interface {
	InsertIfAbsent(ctx context.Context, entry *models.NavHistoryEntry) (bool, error)
	GetBySchemeCodes(ctx context.Context, schemeCodes []int, limit int) ([]models.NavHistoryEntry, error)
	GetBySchemeCode(ctx context.Context, schemeCode, limit int) ([]models.NavHistoryEntry, error)
}

type navHistoryRepo struct {
	db *pgxpool.Pool
}

func NewNavHistoryRepository(db *pgxpool.Pool) NavHistoryRepository {
	return &navHistoryRepo{db: db}
}

// InsertIfAbsent appends a history row unless one already exists for the
// (scheme, date) pair. The unique constraint makes the insert idempotent
// under concurrent sync runs; an existing row is never updated even when
// the price differs.
func (r *navHistoryRepo) InsertIfAbsent(ctx context.Context, entry *models.NavHistoryEntry) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO nav_histories (scheme_code, nav, date)
		VALUES ($1, $2, $3)
		ON CONFLICT (scheme_code, date) DO NOTHING`,
		entry.SchemeCode, entry.Nav, entry.Date)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// GetBySchemeCodes loads history rows for a set of schemes in insertion
// order, oldest first, capped at limit rows.
func (r *navHistoryRepo) GetBySchemeCodes(ctx context.Context, schemeCodes []int, limit int) ([]models.NavHistoryEntry, error) {
	if len(schemeCodes) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, scheme_code, nav, date, created_at
		FROM nav_histories
		WHERE scheme_code = ANY($1)
		ORDER BY created_at ASC
		LIMIT $2`, schemeCodes, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHistoryRows(rows)
}

// GetBySchemeCode returns the most recent rows for one scheme, newest
// first, for the fund history fallback path.
func (r *navHistoryRepo) GetBySchemeCode(ctx context.Context, schemeCode, limit int) ([]models.NavHistoryEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, scheme_code, nav, date, created_at
		FROM nav_histories
		WHERE scheme_code = $1
		ORDER BY created_at DESC
		LIMIT $2`, schemeCode, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHistoryRows(rows)
}

func scanHistoryRows(rows pgx.Rows) ([]models.NavHistoryEntry, error) {
	var entries []models.NavHistoryEntry
	for rows.Next() {
		var e models.NavHistoryEntry
		if err := rows.Scan(&e.ID, &e.SchemeCode, &e.Nav, &e.Date, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
