package repositories

import (
	"context"
	"errors"

	"fundtrack/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FundRepository interface {
	GetBySchemeCode(ctx context.Context, schemeCode int) (*models.Fund, error)
	Upsert(ctx context.Context, f *models.Fund) error
	Count(ctx context.Context) (int, error)
}

type fundRepo struct {
	db *pgxpool.Pool
}

func NewFundRepository(db *pgxpool.Pool) FundRepository {
	return &fundRepo{db: db}
}

func (r *fundRepo) GetBySchemeCode(ctx context.Context, schemeCode int) (*models.Fund, error) {
	var f models.Fund
	err := r.db.QueryRow(ctx,
		`SELECT scheme_code, scheme_name, fund_house, scheme_type, scheme_category, created_at
		FROM funds WHERE scheme_code = $1`, schemeCode).
		Scan(&f.SchemeCode, &f.SchemeName, &f.FundHouse, &f.SchemeType, &f.SchemeCategory, &f.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fundRepo) Upsert(ctx context.Context, f *models.Fund) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO funds (scheme_code, scheme_name, fund_house, scheme_type, scheme_category)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (scheme_code) DO UPDATE SET
			scheme_name = EXCLUDED.scheme_name,
			fund_house = EXCLUDED.fund_house,
			scheme_type = EXCLUDED.scheme_type,
			scheme_category = EXCLUDED.scheme_category`,
		f.SchemeCode, f.SchemeName, f.FundHouse, f.SchemeType, f.SchemeCategory)
	return err
}

func (r *fundRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM funds`).Scan(&count)
	return count, err
}
