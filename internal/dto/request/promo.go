package request

import "time"

type ValidatePromoRequest struct {
	Code   string `json:"code" validate:"required,min=2,max=50"`
	Amount int64  `json:"amount" validate:"required,min=1"`
}

type CreatePromoRequest struct {
	Code            string     `json:"code" validate:"required,min=2,max=50"`
	DiscountPercent *int       `json:"discount_percent,omitempty" validate:"omitempty,min=1,max=100"`
	DiscountFlat    *int64     `json:"discount_flat,omitempty" validate:"omitempty,min=1"`
	ValidFrom       *time.Time `json:"valid_from,omitempty"`
	ValidUntil      *time.Time `json:"valid_until,omitempty"`
	UsageLimit      *int       `json:"usage_limit,omitempty" validate:"omitempty,min=1"`
	Active          bool       `json:"active"`
}

type UpdatePromoRequest struct {
	DiscountPercent *int       `json:"discount_percent,omitempty" validate:"omitempty,min=1,max=100"`
	DiscountFlat    *int64     `json:"discount_flat,omitempty" validate:"omitempty,min=1"`
	ValidFrom       *time.Time `json:"valid_from,omitempty"`
	ValidUntil      *time.Time `json:"valid_until,omitempty"`
	UsageLimit      *int       `json:"usage_limit,omitempty" validate:"omitempty,min=1"`
	Active          *bool      `json:"active,omitempty"`
}
