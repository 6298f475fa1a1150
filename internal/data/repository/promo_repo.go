package repository

import (
	"context"
	"fmt"

	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/entity"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PromoRepository interface {
	Create(ctx context.Context, promo *entity.PromoCode) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PromoCode, error)
	FindByCode(ctx context.Context, code string) (*entity.PromoCode, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.PromoCode, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, promo *entity.PromoCode) error
	IncrementUsage(ctx context.Context, id uuid.UUID) error
	DecrementUsageByCode(ctx context.Context, code string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type promoRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPromoRepository(db database.PgxIface, log *zap.Logger) PromoRepository {
	return &promoRepository{
		db:  db,
		log: log.With(zap.String("repository", "promo")),
	}
}

const promoColumns = `id, code, discount_percent, discount_flat, valid_from, valid_until, usage_limit, usage_count, active, created_at, updated_at`

func scanPromo(row pgx.Row) (*entity.PromoCode, error) {
	var promo entity.PromoCode
	err := row.Scan(
		&promo.ID,
		&promo.Code,
		&promo.DiscountPercent,
		&promo.DiscountFlat,
		&promo.ValidFrom,
		&promo.ValidUntil,
		&promo.UsageLimit,
		&promo.UsageCount,
		&promo.Active,
		&promo.CreatedAt,
		&promo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *promoRepository) Create(ctx context.Context, promo *entity.PromoCode) error {
	query := `
		INSERT INTO promo_codes (id, code, discount_percent, discount_flat, valid_from, valid_until, usage_limit, usage_count, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		promo.ID,
		promo.Code,
		promo.DiscountPercent,
		promo.DiscountFlat,
		promo.ValidFrom,
		promo.ValidUntil,
		promo.UsageLimit,
		promo.UsageCount,
		promo.Active,
		promo.CreatedAt,
		promo.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create promo code",
			zap.Error(err),
			zap.String("code", promo.Code),
		)
		return fmt.Errorf("create promo code %s: %w", promo.Code, err)
	}

	return nil
}

func (r *promoRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PromoCode, error) {
	query := `SELECT ` + promoColumns + ` FROM promo_codes WHERE id = $1`

	promo, err := scanPromo(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find promo code by ID",
			zap.Error(err),
			zap.String("promo_id", id.String()),
		)
		return nil, fmt.Errorf("find promo code by ID %s: %w", id.String(), err)
	}

	return promo, nil
}

func (r *promoRepository) FindByCode(ctx context.Context, code string) (*entity.PromoCode, error) {
	query := `SELECT ` + promoColumns + ` FROM promo_codes WHERE code = $1`

	promo, err := scanPromo(r.db.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find promo code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find promo code %s: %w", code, err)
	}

	return promo, nil
}

func (r *promoRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.PromoCode, error) {
	query := `
		SELECT ` + promoColumns + `
		FROM promo_codes
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to query promo codes", zap.Error(err))
		return nil, fmt.Errorf("query promo codes: %w", err)
	}
	defer rows.Close()

	var promos []*entity.PromoCode
	for rows.Next() {
		promo, err := scanPromo(rows)
		if err != nil {
			r.log.Error("Failed to scan promo code row", zap.Error(err))
			return nil, fmt.Errorf("scan promo code row: %w", err)
		}
		promos = append(promos, promo)
	}

	return promos, nil
}

func (r *promoRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM promo_codes`).Scan(&count); err != nil {
		r.log.Error("Failed to count promo codes", zap.Error(err))
		return 0, fmt.Errorf("count promo codes: %w", err)
	}

	return count, nil
}

func (r *promoRepository) Update(ctx context.Context, promo *entity.PromoCode) error {
	query := `
		UPDATE promo_codes
		SET code = $2, discount_percent = $3, discount_flat = $4, valid_from = $5, valid_until = $6,
		    usage_limit = $7, usage_count = $8, active = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		promo.ID,
		promo.Code,
		promo.DiscountPercent,
		promo.DiscountFlat,
		promo.ValidFrom,
		promo.ValidUntil,
		promo.UsageLimit,
		promo.UsageCount,
		promo.Active,
		promo.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update promo code",
			zap.Error(err),
			zap.String("promo_id", promo.ID.String()),
		)
		return fmt.Errorf("update promo code %s: %w", promo.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("promo code %s not found", promo.ID.String())
	}

	return nil
}

func (r *promoRepository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE promo_codes SET usage_count = usage_count + 1, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to increment promo usage",
			zap.Error(err),
			zap.String("promo_id", id.String()),
		)
		return fmt.Errorf("increment promo %s usage: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("promo code %s not found", id.String())
	}

	return nil
}

// DecrementUsageByCode returns a consumed use to the code, for bookings
// abandoned before any money moved. A missing row is not an error here;
// the code may have been deleted since the hold was placed.
func (r *promoRepository) DecrementUsageByCode(ctx context.Context, code string) error {
	query := `UPDATE promo_codes SET usage_count = GREATEST(usage_count - 1, 0), updated_at = NOW() WHERE code = $1`

	if _, err := r.db.Exec(ctx, query, code); err != nil {
		r.log.Error("Failed to decrement promo usage",
			zap.Error(err),
			zap.String("code", code),
		)
		return fmt.Errorf("decrement promo %s usage: %w", code, err)
	}

	return nil
}

func (r *promoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM promo_codes WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete promo code",
			zap.Error(err),
			zap.String("promo_id", id.String()),
		)
		return fmt.Errorf("delete promo code %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("promo code %s not found", id.String())
	}

	r.log.Info("Promo code deleted", zap.String("promo_id", id.String()))
	return nil
}
