package entity

import (
	"github.com/google/uuid"
)

type PaymentMode string

const (
	PaymentModeHold10 PaymentMode = "hold10"
	PaymentModeFull   PaymentMode = "full"
)

type PaymentStatus string

const (
	PaymentStatusCreated   PaymentStatus = "created"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Payment records one gateway charge attempt against a booking.
// Amount is in paise; IntentID is the gateway's reference.
type Payment struct {
	Base
	BookingID uuid.UUID     `db:"booking_id"`
	IntentID  string        `db:"intent_id"`
	Mode      PaymentMode   `db:"mode"`
	Amount    int64         `db:"amount"`
	Status    PaymentStatus `db:"status"`
}
