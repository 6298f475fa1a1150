package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusHeld      BookingStatus = "held"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusExpired   BookingStatus = "expired"
	BookingStatusRefunded  BookingStatus = "refunded"
)

type PaymentState string

const (
	PaymentStateUnpaid      PaymentState = "unpaid"
	PaymentStatePartialHold PaymentState = "partial_hold"
	PaymentStatePaid        PaymentState = "paid"
	PaymentStateCancelled   PaymentState = "cancelled"
)

// Booking holds one rental of a car for a time window. All amounts are
// in paise. A pending or held booking with money still owed carries a
// non-nil HoldExpiresAt.
type Booking struct {
	Base
	BookingRef    string        `db:"booking_ref"`
	UserID        uuid.UUID     `db:"user_id"`
	CarID         uuid.UUID     `db:"car_id"`
	StartAt       time.Time     `db:"start_at"`
	EndAt         time.Time     `db:"end_at"`
	Status        BookingStatus `db:"status"`
	PaymentState  PaymentState  `db:"payment_state"`
	TotalAmount   int64         `db:"total_amount"`
	HoldAmount    *int64        `db:"hold_amount"`
	HoldExpiresAt *time.Time    `db:"hold_expires_at"`
	LicenseID     *uuid.UUID    `db:"license_id"`
	PromoCode     *string       `db:"promo_code"`
}

// allowed status transitions
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusHeld, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusExpired},
	BookingStatusHeld:      {BookingStatusConfirmed, BookingStatusCancelled, BookingStatusExpired},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCancelled: {BookingStatusRefunded},
}

// CanTransitionTo reports whether the booking may move to the target status.
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range bookingTransitions[b.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further status change is possible.
func (b *Booking) IsTerminal() bool {
	return len(bookingTransitions[b.Status]) == 0
}

// HoldActive reports whether the booking still holds the car at the given time.
func (b *Booking) HoldActive(now time.Time) bool {
	if b.Status != BookingStatusPending && b.Status != BookingStatusHeld {
		return false
	}
	if b.HoldExpiresAt == nil {
		return false
	}
	return now.Before(*b.HoldExpiresAt)
}

// HoldRemaining returns the time left on the hold, never negative.
// The server clock is authoritative; clients display this value.
func (b *Booking) HoldRemaining(now time.Time) time.Duration {
	if b.HoldExpiresAt == nil {
		return 0
	}
	remaining := b.HoldExpiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Validate checks booking window invariants.
func (b *Booking) Validate() error {
	if !b.EndAt.After(b.StartAt) {
		return ErrInvalidDateRange
	}
	return nil
}
