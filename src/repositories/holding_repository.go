package repositories

import (
	"context"

	"fundtrack/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type HoldingRepository interface {
	Create(ctx context.Context, h *models.Holding) error
	GetByUserID(ctx context.Context, userID int) ([]models.Holding, error)
	DeleteByUserAndScheme(ctx context.Context, userID, schemeCode int) (int64, error)
	DistinctSchemeCodes(ctx context.Context) ([]int, error)
	ListWithUsers(ctx context.Context) ([]models.HoldingWithUser, error)
	PopularFunds(ctx context.Context, limit int) ([]models.FundPopularity, error)
	Count(ctx context.Context) (int, error)
}

type holdingRepo struct {
	db *pgxpool.Pool
}

func NewHoldingRepository(db *pgxpool.Pool) HoldingRepository {
	return &holdingRepo{db: db}
}

func (r *holdingRepo) Create(ctx context.Context, h *models.Holding) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO holdings (user_id, scheme_code, units, purchase_date, purchase_nav, invested_amount)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		h.UserID, h.SchemeCode, h.Units, h.PurchaseDate, h.PurchaseNav, h.InvestedAmount,
	).Scan(&h.ID, &h.CreatedAt)
}

func (r *holdingRepo) GetByUserID(ctx context.Context, userID int) ([]models.Holding, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, scheme_code, units, purchase_date, purchase_nav, invested_amount, created_at
		FROM holdings
		WHERE user_id = $1
		ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holdings []models.Holding
	for rows.Next() {
		var h models.Holding
		if err := rows.Scan(&h.ID, &h.UserID, &h.SchemeCode, &h.Units, &h.PurchaseDate, &h.PurchaseNav, &h.InvestedAmount, &h.CreatedAt); err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

func (r *holdingRepo) DeleteByUserAndScheme(ctx context.Context, userID, schemeCode int) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM holdings WHERE user_id = $1 AND scheme_code = $2`,
		userID, schemeCode)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DistinctSchemeCodes enumerates every scheme referenced by at least one
// holding; this is the work list for the NAV sync job.
func (r *holdingRepo) DistinctSchemeCodes(ctx context.Context) ([]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT scheme_code FROM holdings ORDER BY scheme_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []int
	for rows.Next() {
		var code int
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

func (r *holdingRepo) ListWithUsers(ctx context.Context) ([]models.HoldingWithUser, error) {
	rows, err := r.db.Query(ctx,
		`SELECT h.id, h.user_id, h.scheme_code, h.units, h.purchase_date, h.purchase_nav, h.invested_amount, h.created_at,
			u.name, u.email
		FROM holdings h
		JOIN users u ON u.id = h.user_id
		ORDER BY h.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holdings []models.HoldingWithUser
	for rows.Next() {
		var h models.HoldingWithUser
		if err := rows.Scan(&h.ID, &h.UserID, &h.SchemeCode, &h.Units, &h.PurchaseDate, &h.PurchaseNav, &h.InvestedAmount, &h.CreatedAt,
			&h.UserName, &h.UserEmail); err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

func (r *holdingRepo) PopularFunds(ctx context.Context, limit int) ([]models.FundPopularity, error) {
	rows, err := r.db.Query(ctx,
		`SELECT scheme_code, SUM(units) AS total_units, COUNT(*) AS count
		FROM holdings
		GROUP BY scheme_code
		ORDER BY total_units DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var funds []models.FundPopularity
	for rows.Next() {
		var f models.FundPopularity
		if err := rows.Scan(&f.SchemeCode, &f.TotalUnits, &f.Count); err != nil {
			return nil, err
		}
		funds = append(funds, f)
	}
	return funds, rows.Err()
}

func (r *holdingRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM holdings`).Scan(&count)
	return count, err
}
