package entity

import (
	"time"

	"github.com/google/uuid"
)

type Maintenance struct {
	Base
	CarID   uuid.UUID  `db:"car_id"`
	Note    string     `db:"note"`
	StartAt time.Time  `db:"start_at"`
	EndAt   *time.Time `db:"end_at"`
	Done    bool       `db:"done"`
}
