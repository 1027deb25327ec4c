package repositories

import (
	"context"
	"errors"

	"fundtrack/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LatestNavRepository interface {
	Upsert(ctx context.Context, nav *models.LatestNav) error
	GetBySchemeCode(ctx context.Context, schemeCode int) (*models.LatestNav, error)
	GetBySchemeCodes(ctx context.Context, schemeCodes []int) ([]models.LatestNav, error)
}

type latestNavRepo struct {
	db *pgxpool.Pool
}

func NewLatestNavRepository(db *pgxpool.Pool) LatestNavRepository {
	return &latestNavRepo{db: db}
}

// Upsert replaces the latest record unconditionally: last write wins,
// with no staleness check against the stored date.
func (r *latestNavRepo) Upsert(ctx context.Context, nav *models.LatestNav) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO latest_navs (scheme_code, nav, date, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (scheme_code) DO UPDATE SET
			nav = EXCLUDED.nav,
			date = EXCLUDED.date,
			updated_at = EXCLUDED.updated_at
		RETURNING updated_at`,
		nav.SchemeCode, nav.Nav, nav.Date,
	).Scan(&nav.UpdatedAt)
}

func (r *latestNavRepo) GetBySchemeCode(ctx context.Context, schemeCode int) (*models.LatestNav, error) {
	var n models.LatestNav
	err := r.db.QueryRow(ctx,
		`SELECT scheme_code, nav, date, updated_at
		FROM latest_navs WHERE scheme_code = $1`, schemeCode).
		Scan(&n.SchemeCode, &n.Nav, &n.Date, &n.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// GetBySchemeCodes batch-loads latest records, most recently updated
// first; the valuation read path reports the head row's date as "as on".
func (r *latestNavRepo) GetBySchemeCodes(ctx context.Context, schemeCodes []int) ([]models.LatestNav, error) {
	if len(schemeCodes) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT scheme_code, nav, date, updated_at
		FROM latest_navs
		WHERE scheme_code = ANY($1)
		ORDER BY updated_at DESC`, schemeCodes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var navs []models.LatestNav
	for rows.Next() {
		var n models.LatestNav
		if err := rows.Scan(&n.SchemeCode, &n.Nav, &n.Date, &n.UpdatedAt); err != nil {
			return nil, err
		}
		navs = append(navs, n)
	}
	return navs, rows.Err()
}
