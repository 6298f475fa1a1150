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

type MaintenanceRepository interface {
	Create(ctx context.Context, record *entity.Maintenance) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Maintenance, error)
	FindByCarID(ctx context.Context, carID uuid.UUID) ([]*entity.Maintenance, error)
	FindOpen(ctx context.Context, limit, offset int) ([]*entity.Maintenance, error)
	MarkDone(ctx context.Context, id uuid.UUID) error
}

type maintenanceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMaintenanceRepository(db database.PgxIface, log *zap.Logger) MaintenanceRepository {
	return &maintenanceRepository{
		db:  db,
		log: log.With(zap.String("repository", "maintenance")),
	}
}

const maintenanceColumns = `id, car_id, note, start_at, end_at, done, created_at, updated_at`

func scanMaintenance(row pgx.Row) (*entity.Maintenance, error) {
	var record entity.Maintenance
	err := row.Scan(
		&record.ID,
		&record.CarID,
		&record.Note,
		&record.StartAt,
		&record.EndAt,
		&record.Done,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *maintenanceRepository) Create(ctx context.Context, record *entity.Maintenance) error {
	query := `
		INSERT INTO maintenance (id, car_id, note, start_at, end_at, done, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.CarID,
		record.Note,
		record.StartAt,
		record.EndAt,
		record.Done,
		record.CreatedAt,
		record.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create maintenance record",
			zap.Error(err),
			zap.String("car_id", record.CarID.String()),
		)
		return fmt.Errorf("create maintenance for car %s: %w", record.CarID.String(), err)
	}

	return nil
}

func (r *maintenanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance WHERE id = $1`

	record, err := scanMaintenance(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find maintenance by ID",
			zap.Error(err),
			zap.String("maintenance_id", id.String()),
		)
		return nil, fmt.Errorf("find maintenance by ID %s: %w", id.String(), err)
	}

	return record, nil
}

func (r *maintenanceRepository) FindByCarID(ctx context.Context, carID uuid.UUID) ([]*entity.Maintenance, error) {
	query := `
		SELECT ` + maintenanceColumns + `
		FROM maintenance
		WHERE car_id = $1
		ORDER BY start_at DESC
	`

	rows, err := r.db.Query(ctx, query, carID)
	if err != nil {
		r.log.Error("Failed to find maintenance by car",
			zap.Error(err),
			zap.String("car_id", carID.String()),
		)
		return nil, fmt.Errorf("find maintenance for car %s: %w", carID.String(), err)
	}
	defer rows.Close()

	var records []*entity.Maintenance
	for rows.Next() {
		record, err := scanMaintenance(rows)
		if err != nil {
			r.log.Error("Failed to scan maintenance row", zap.Error(err))
			return nil, fmt.Errorf("scan maintenance row: %w", err)
		}
		records = append(records, record)
	}

	return records, nil
}

func (r *maintenanceRepository) FindOpen(ctx context.Context, limit, offset int) ([]*entity.Maintenance, error) {
	query := `
		SELECT ` + maintenanceColumns + `
		FROM maintenance
		WHERE done = false
		ORDER BY start_at ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find open maintenance", zap.Error(err))
		return nil, fmt.Errorf("find open maintenance: %w", err)
	}
	defer rows.Close()

	var records []*entity.Maintenance
	for rows.Next() {
		record, err := scanMaintenance(rows)
		if err != nil {
			r.log.Error("Failed to scan maintenance row", zap.Error(err))
			return nil, fmt.Errorf("scan maintenance row: %w", err)
		}
		records = append(records, record)
	}

	return records, nil
}

func (r *maintenanceRepository) MarkDone(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE maintenance SET done = true, end_at = NOW(), updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark maintenance done",
			zap.Error(err),
			zap.String("maintenance_id", id.String()),
		)
		return fmt.Errorf("mark maintenance %s done: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("maintenance %s not found", id.String())
	}

	return nil
}
