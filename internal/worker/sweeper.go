package worker

import (
	"context"
	"time"

	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/repository"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CarLockReleaser frees the short-lived reservation lock on a car.
type CarLockReleaser interface {
	ReleaseCarLock(ctx context.Context, carID uuid.UUID) error
}

// EventPublisher emits change events onto the feed.
type EventPublisher interface {
	Publish(ctx context.Context, event events.ChangeEvent) error
}

// HoldSweeper expires unpaid booking holds whose deadline has passed.
// It runs on a short ticker so the countdown shown to clients and the
// actual release of the car stay within one sweep of each other.
type HoldSweeper struct {
	bookings repository.BookingRepository
	promos   repository.PromoRepository
	cache    CarLockReleaser
	producer EventPublisher
	interval time.Duration
	log      *zap.Logger
}

func NewHoldSweeper(
	bookings repository.BookingRepository,
	promos repository.PromoRepository,
	locks CarLockReleaser,
	producer EventPublisher,
	interval time.Duration,
	log *zap.Logger,
) *HoldSweeper {
	return &HoldSweeper{
		bookings: bookings,
		promos:   promos,
		cache:    locks,
		producer: producer,
		interval: interval,
		log:      log.With(zap.String("worker", "hold_sweeper")),
	}
}

// Run blocks until the context is cancelled.
func (s *HoldSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("Hold sweeper started", zap.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Hold sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *HoldSweeper) sweep(ctx context.Context) {
	expired, err := s.bookings.ExpireUnpaidHolds(ctx, time.Now())
	if err != nil {
		s.log.Error("Sweep failed", zap.Error(err))
		return
	}

	for _, booking := range expired {
		// Nothing was collected on an expired hold, so its promo use
		// goes back to the pool.
		if booking.PromoCode != nil {
			if err := s.promos.DecrementUsageByCode(ctx, *booking.PromoCode); err != nil {
				s.log.Warn("Failed to return promo use for expired hold",
					zap.Error(err),
					zap.String("booking_id", booking.ID.String()),
					zap.String("code", *booking.PromoCode),
				)
			}
		}

		if err := s.cache.ReleaseCarLock(ctx, booking.CarID); err != nil {
			s.log.Warn("Failed to release car lock for expired hold",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
				zap.String("car_id", booking.CarID.String()),
			)
		}

		event := events.ChangeEvent{
			Table:    events.TableBookings,
			Action:   events.ActionUpdate,
			EntityID: booking.ID.String(),
			Payload: map[string]any{
				"booking_ref":   booking.BookingRef,
				"status":        string(booking.Status),
				"payment_state": string(booking.PaymentState),
			},
		}
		if err := s.producer.Publish(ctx, event); err != nil {
			s.log.Warn("Failed to publish hold expiry event",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
		}

		s.log.Info("Booking hold expired",
			zap.String("booking_id", booking.ID.String()),
			zap.String("booking_ref", booking.BookingRef),
			zap.String("car_id", booking.CarID.String()),
		)
	}
}
