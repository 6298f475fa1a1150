package events

import (
	"time"
)

const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

const (
	TableBookings = "bookings"
	TableCars     = "cars"
	TablePromos   = "promo_codes"
	TableLicenses = "licenses"
	TableUsers    = "users"
)

// ChangeEvent is one row-level change published to the changes topic.
// Admin panels and the notifier consume these instead of polling.
type ChangeEvent struct {
	Table      string         `json:"table"`
	Action     string         `json:"action"`
	EntityID   string         `json:"entity_id"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}
