package request

import "time"

type QuoteRequest struct {
	CarID         string    `json:"car_id" validate:"required,uuid4"`
	StartAt       time.Time `json:"start_at" validate:"required"`
	EndAt         time.Time `json:"end_at" validate:"required"`
	WithDriver    bool      `json:"with_driver"`
	WithInsurance bool      `json:"with_insurance"`
	PromoCode     *string   `json:"promo_code,omitempty" validate:"omitempty,min=2,max=50"`
}

type CreateHoldRequest struct {
	CarID         string    `json:"car_id" validate:"required,uuid4"`
	StartAt       time.Time `json:"start_at" validate:"required"`
	EndAt         time.Time `json:"end_at" validate:"required"`
	WithDriver    bool      `json:"with_driver"`
	WithInsurance bool      `json:"with_insurance"`
	PromoCode     *string   `json:"promo_code,omitempty" validate:"omitempty,min=2,max=50"`
	LicenseID     *string   `json:"license_id,omitempty" validate:"omitempty,uuid4"`
}

type BookCarAtomicRequest struct {
	CarID   string    `json:"car_id" validate:"required,uuid4"`
	StartAt time.Time `json:"start_at" validate:"required"`
	EndAt   time.Time `json:"end_at" validate:"required"`
}
