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

type CarRepository interface {
	Create(ctx context.Context, car *entity.Car) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error)
	FindPublished(ctx context.Context, limit, offset int) ([]*entity.Car, error)
	CountPublished(ctx context.Context) (int64, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Car, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, car *entity.Car) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.CarStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type carRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCarRepository(db database.PgxIface, log *zap.Logger) CarRepository {
	return &carRepository{
		db:  db,
		log: log.With(zap.String("repository", "car")),
	}
}

const carColumns = `id, make, model, year, seats, fuel, transmission, price_per_day, price_per_hour, status, image_urls, created_at, updated_at`

func scanCar(row pgx.Row) (*entity.Car, error) {
	var car entity.Car
	err := row.Scan(
		&car.ID,
		&car.Make,
		&car.Model,
		&car.Year,
		&car.Seats,
		&car.Fuel,
		&car.Transmission,
		&car.PricePerDay,
		&car.PricePerHour,
		&car.Status,
		&car.ImageURLs,
		&car.CreatedAt,
		&car.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *carRepository) Create(ctx context.Context, car *entity.Car) error {
	query := `
		INSERT INTO cars (id, make, model, year, seats, fuel, transmission, price_per_day, price_per_hour, status, image_urls, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		car.ID,
		car.Make,
		car.Model,
		car.Year,
		car.Seats,
		car.Fuel,
		car.Transmission,
		car.PricePerDay,
		car.PricePerHour,
		car.Status,
		car.ImageURLs,
		car.CreatedAt,
		car.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create car",
			zap.Error(err),
			zap.String("make", car.Make),
			zap.String("model", car.Model),
		)
		return fmt.Errorf("create car %s %s: %w", car.Make, car.Model, err)
	}

	return nil
}

func (r *carRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`

	car, err := scanCar(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find car by ID",
			zap.Error(err),
			zap.String("car_id", id.String()),
		)
		return nil, fmt.Errorf("find car by ID %s: %w", id.String(), err)
	}

	return car, nil
}

func (r *carRepository) FindPublished(ctx context.Context, limit, offset int) ([]*entity.Car, error) {
	query := `
		SELECT ` + carColumns + `
		FROM cars
		WHERE status IN ('active', 'published')
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	return r.queryCars(ctx, query, limit, offset)
}

func (r *carRepository) CountPublished(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM cars WHERE status IN ('active', 'published')`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count published cars", zap.Error(err))
		return 0, fmt.Errorf("count published cars: %w", err)
	}

	return count, nil
}

func (r *carRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Car, error) {
	query := `
		SELECT ` + carColumns + `
		FROM cars
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	return r.queryCars(ctx, query, limit, offset)
}

func (r *carRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM cars`).Scan(&count); err != nil {
		r.log.Error("Failed to count cars", zap.Error(err))
		return 0, fmt.Errorf("count cars: %w", err)
	}

	return count, nil
}

func (r *carRepository) queryCars(ctx context.Context, query string, args ...any) ([]*entity.Car, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query cars", zap.Error(err))
		return nil, fmt.Errorf("query cars: %w", err)
	}
	defer rows.Close()

	var cars []*entity.Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			r.log.Error("Failed to scan car row", zap.Error(err))
			return nil, fmt.Errorf("scan car row: %w", err)
		}
		cars = append(cars, car)
	}

	return cars, nil
}

func (r *carRepository) Update(ctx context.Context, car *entity.Car) error {
	query := `
		UPDATE cars
		SET make = $2, model = $3, year = $4, seats = $5, fuel = $6, transmission = $7,
		    price_per_day = $8, price_per_hour = $9, status = $10, image_urls = $11, updated_at = $12
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		car.ID,
		car.Make,
		car.Model,
		car.Year,
		car.Seats,
		car.Fuel,
		car.Transmission,
		car.PricePerDay,
		car.PricePerHour,
		car.Status,
		car.ImageURLs,
		car.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update car",
			zap.Error(err),
			zap.String("car_id", car.ID.String()),
		)
		return fmt.Errorf("update car %s: %w", car.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("car %s not found", car.ID.String())
	}

	return nil
}

func (r *carRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.CarStatus) error {
	query := `UPDATE cars SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update car status",
			zap.Error(err),
			zap.String("car_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update car %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("car %s not found", id.String())
	}

	return nil
}

func (r *carRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete car",
			zap.Error(err),
			zap.String("car_id", id.String()),
		)
		return fmt.Errorf("delete car %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("car %s not found", id.String())
	}

	r.log.Info("Car deleted", zap.String("car_id", id.String()))
	return nil
}
