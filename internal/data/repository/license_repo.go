package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/entity"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type LicenseRepository interface {
	Create(ctx context.Context, license *entity.License) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.License, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.License, error)
	FindByStatus(ctx context.Context, status entity.LicenseStatus, limit, offset int) ([]*entity.License, error)
	CountByStatus(ctx context.Context, status entity.LicenseStatus) (int64, error)
	Review(ctx context.Context, id uuid.UUID, status entity.LicenseStatus, reviewerID uuid.UUID, reason *string) error
}

type licenseRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLicenseRepository(db database.PgxIface, log *zap.Logger) LicenseRepository {
	return &licenseRepository{
		db:  db,
		log: log.With(zap.String("repository", "license")),
	}
}

const licenseColumns = `id, user_id, number, image_url, expires_on, status, reject_reason, reviewed_by, reviewed_at, created_at, updated_at`

func scanLicense(row pgx.Row) (*entity.License, error) {
	var license entity.License
	err := row.Scan(
		&license.ID,
		&license.UserID,
		&license.Number,
		&license.ImageURL,
		&license.ExpiresOn,
		&license.Status,
		&license.RejectReason,
		&license.ReviewedBy,
		&license.ReviewedAt,
		&license.CreatedAt,
		&license.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &license, nil
}

func (r *licenseRepository) Create(ctx context.Context, license *entity.License) error {
	query := `
		INSERT INTO licenses (id, user_id, number, image_url, expires_on, status, reject_reason, reviewed_by, reviewed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		license.ID,
		license.UserID,
		license.Number,
		license.ImageURL,
		license.ExpiresOn,
		license.Status,
		license.RejectReason,
		license.ReviewedBy,
		license.ReviewedAt,
		license.CreatedAt,
		license.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create license",
			zap.Error(err),
			zap.String("user_id", license.UserID.String()),
		)
		return fmt.Errorf("create license for user %s: %w", license.UserID.String(), err)
	}

	return nil
}

func (r *licenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.License, error) {
	query := `SELECT ` + licenseColumns + ` FROM licenses WHERE id = $1`

	license, err := scanLicense(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find license by ID",
			zap.Error(err),
			zap.String("license_id", id.String()),
		)
		return nil, fmt.Errorf("find license by ID %s: %w", id.String(), err)
	}

	return license, nil
}

func (r *licenseRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.License, error) {
	query := `
		SELECT ` + licenseColumns + `
		FROM licenses
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find licenses by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find licenses for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var licenses []*entity.License
	for rows.Next() {
		license, err := scanLicense(rows)
		if err != nil {
			r.log.Error("Failed to scan license row", zap.Error(err))
			return nil, fmt.Errorf("scan license row: %w", err)
		}
		licenses = append(licenses, license)
	}

	return licenses, nil
}

func (r *licenseRepository) FindByStatus(ctx context.Context, status entity.LicenseStatus, limit, offset int) ([]*entity.License, error) {
	query := `
		SELECT ` + licenseColumns + `
		FROM licenses
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		r.log.Error("Failed to find licenses by status",
			zap.Error(err),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("find licenses by status %s: %w", string(status), err)
	}
	defer rows.Close()

	var licenses []*entity.License
	for rows.Next() {
		license, err := scanLicense(rows)
		if err != nil {
			r.log.Error("Failed to scan license row", zap.Error(err))
			return nil, fmt.Errorf("scan license row: %w", err)
		}
		licenses = append(licenses, license)
	}

	return licenses, nil
}

func (r *licenseRepository) CountByStatus(ctx context.Context, status entity.LicenseStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM licenses WHERE status = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, status).Scan(&count); err != nil {
		r.log.Error("Failed to count licenses by status", zap.Error(err))
		return 0, fmt.Errorf("count licenses by status %s: %w", string(status), err)
	}

	return count, nil
}

func (r *licenseRepository) Review(ctx context.Context, id uuid.UUID, status entity.LicenseStatus, reviewerID uuid.UUID, reason *string) error {
	query := `
		UPDATE licenses
		SET status = $2, reviewed_by = $3, reject_reason = $4, reviewed_at = $5, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, status, reviewerID, reason, time.Now())
	if err != nil {
		r.log.Error("Failed to review license",
			zap.Error(err),
			zap.String("license_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("review license %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("license %s not found", id.String())
	}

	return nil
}
