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

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByRef(ctx context.Context, ref string) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, booking *entity.Booking) error
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus, paymentState entity.PaymentState) error

	// Business queries
	HasOverlap(ctx context.Context, carID uuid.UUID, startAt, endAt time.Time) (bool, error)
	CreateAtomic(ctx context.Context, booking *entity.Booking) error
	ExpireUnpaidHolds(ctx context.Context, deadline time.Time) ([]*entity.Booking, error)
	CountByStatus(ctx context.Context) (map[entity.BookingStatus]int64, error)
	SumPaidBetween(ctx context.Context, from, to time.Time) (int64, error)
	SumOutstandingHolds(ctx context.Context) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, booking_ref, user_id, car_id, start_at, end_at, status, payment_state,
	total_amount, hold_amount, hold_expires_at, license_id, promo_code, created_at, updated_at`

// statuses that block other bookings on the same car and window
const blockingStatuses = `('pending', 'held', 'confirmed')`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.BookingRef,
		&booking.UserID,
		&booking.CarID,
		&booking.StartAt,
		&booking.EndAt,
		&booking.Status,
		&booking.PaymentState,
		&booking.TotalAmount,
		&booking.HoldAmount,
		&booking.HoldExpiresAt,
		&booking.LicenseID,
		&booking.PromoCode,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, booking_ref, user_id, car_id, start_at, end_at, status, payment_state,
			total_amount, hold_amount, hold_expires_at, license_id, promo_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.BookingRef,
		booking.UserID,
		booking.CarID,
		booking.StartAt,
		booking.EndAt,
		booking.Status,
		booking.PaymentState,
		booking.TotalAmount,
		booking.HoldAmount,
		booking.HoldExpiresAt,
		booking.LicenseID,
		booking.PromoCode,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_ref", booking.BookingRef),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.BookingRef, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByRef(ctx context.Context, ref string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_ref = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, ref))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ref",
			zap.Error(err),
			zap.String("booking_ref", ref),
		)
		return nil, fmt.Errorf("find booking by ref %s: %w", ref, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryBookings(ctx, query, userID, limit, offset)
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	return r.queryBookings(ctx, query, limit, offset)
}

func (r *bookingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query bookings", zap.Error(err))
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET start_at = $2, end_at = $3, status = $4, payment_state = $5, total_amount = $6,
		    hold_amount = $7, hold_expires_at = $8, license_id = $9, promo_code = $10, updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.StartAt,
		booking.EndAt,
		booking.Status,
		booking.PaymentState,
		booking.TotalAmount,
		booking.HoldAmount,
		booking.HoldExpiresAt,
		booking.LicenseID,
		booking.PromoCode,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus, paymentState entity.PaymentState) error {
	query := `UPDATE bookings SET status = $2, payment_state = $3, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status, paymentState)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

// HasOverlap runs the advisory range-overlap check. Two clients can both
// pass it before either commits; CreateAtomic is the race-free path.
func (r *bookingRepository) HasOverlap(ctx context.Context, carID uuid.UUID, startAt, endAt time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE car_id = $1
			  AND status IN ` + blockingStatuses + `
			  AND start_at < $3 AND end_at > $2
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, carID, startAt, endAt).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check booking overlap",
			zap.Error(err),
			zap.String("car_id", carID.String()),
		)
		return false, fmt.Errorf("check booking overlap for car %s: %w", carID.String(), err)
	}

	return exists, nil
}

// CreateAtomic locks the car row, re-checks the window and inserts the
// booking in one transaction. Callers translate ErrCarUnavailable into the
// {success:false, message} result.
func (r *bookingRepository) CreateAtomic(ctx context.Context, booking *entity.Booking) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin atomic booking: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the car row so concurrent attempts serialize here.
	var carStatus entity.CarStatus
	err = tx.QueryRow(ctx, `SELECT status FROM cars WHERE id = $1 FOR UPDATE`, booking.CarID).Scan(&carStatus)
	if err == pgx.ErrNoRows {
		return ErrCarNotFound
	}
	if err != nil {
		return fmt.Errorf("lock car %s: %w", booking.CarID.String(), err)
	}

	if carStatus != entity.CarStatusActive && carStatus != entity.CarStatusPublished {
		return ErrCarUnavailable
	}

	var exists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE car_id = $1
			  AND status IN `+blockingStatuses+`
			  AND start_at < $3 AND end_at > $2
		)
	`, booking.CarID, booking.StartAt, booking.EndAt).Scan(&exists)
	if err != nil {
		return fmt.Errorf("atomic overlap check for car %s: %w", booking.CarID.String(), err)
	}
	if exists {
		return ErrCarUnavailable
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO bookings (id, booking_ref, user_id, car_id, start_at, end_at, status, payment_state,
			total_amount, hold_amount, hold_expires_at, license_id, promo_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`,
		booking.ID,
		booking.BookingRef,
		booking.UserID,
		booking.CarID,
		booking.StartAt,
		booking.EndAt,
		booking.Status,
		booking.PaymentState,
		booking.TotalAmount,
		booking.HoldAmount,
		booking.HoldExpiresAt,
		booking.LicenseID,
		booking.PromoCode,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert atomic booking",
			zap.Error(err),
			zap.String("booking_ref", booking.BookingRef),
		)
		return fmt.Errorf("insert atomic booking %s: %w", booking.BookingRef, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit atomic booking %s: %w", booking.BookingRef, err)
	}

	return nil
}

// ExpireUnpaidHolds moves unpaid pending bookings whose hold deadline has
// passed to expired and returns them so the caller can release locks and
// publish events. Partially paid holds are left alone.
func (r *bookingRepository) ExpireUnpaidHolds(ctx context.Context, deadline time.Time) ([]*entity.Booking, error) {
	query := `
		UPDATE bookings
		SET status = 'expired', payment_state = 'cancelled', updated_at = NOW()
		WHERE status = 'pending'
		  AND payment_state = 'unpaid'
		  AND hold_expires_at IS NOT NULL
		  AND hold_expires_at <= $1
		RETURNING ` + bookingColumns + `
	`

	rows, err := r.db.Query(ctx, query, deadline)
	if err != nil {
		r.log.Error("Failed to expire unpaid holds", zap.Error(err))
		return nil, fmt.Errorf("expire unpaid holds: %w", err)
	}
	defer rows.Close()

	var expired []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan expired booking row", zap.Error(err))
			return nil, fmt.Errorf("scan expired booking row: %w", err)
		}
		expired = append(expired, booking)
	}

	return expired, nil
}

func (r *bookingRepository) CountByStatus(ctx context.Context) (map[entity.BookingStatus]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM bookings GROUP BY status`)
	if err != nil {
		r.log.Error("Failed to count bookings by status", zap.Error(err))
		return nil, fmt.Errorf("count bookings by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[entity.BookingStatus]int64)
	for rows.Next() {
		var status entity.BookingStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count row: %w", err)
		}
		counts[status] = count
	}

	return counts, nil
}

func (r *bookingRepository) SumPaidBetween(ctx context.Context, from, to time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM bookings
		WHERE payment_state = 'paid' AND created_at >= $1 AND created_at < $2
	`

	var total int64
	if err := r.db.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		r.log.Error("Failed to sum paid bookings", zap.Error(err))
		return 0, fmt.Errorf("sum paid bookings: %w", err)
	}

	return total, nil
}

func (r *bookingRepository) SumOutstandingHolds(ctx context.Context) (int64, error) {
	query := `
		SELECT COALESCE(SUM(total_amount - COALESCE(hold_amount, 0)), 0)
		FROM bookings
		WHERE payment_state = 'partial_hold'
	`

	var total int64
	if err := r.db.QueryRow(ctx, query).Scan(&total); err != nil {
		r.log.Error("Failed to sum outstanding holds", zap.Error(err))
		return 0, fmt.Errorf("sum outstanding holds: %w", err)
	}

	return total, nil
}
