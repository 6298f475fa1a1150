package entity

import "errors"

var (
	ErrInvalidDateRange   = errors.New("end must be after start")
	ErrDiscountModeUnset  = errors.New("promo code must set exactly one discount mode")
	ErrPromoInactive      = errors.New("promo code is not active")
	ErrPromoExpired       = errors.New("promo code is outside its validity window")
	ErrPromoUsageExceeded = errors.New("promo code usage limit reached")
)
