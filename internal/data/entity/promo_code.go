package entity

import (
	"time"
)

// PromoCode discounts are percent XOR flat paise. Exactly one mode is set.
type PromoCode struct {
	Base
	Code            string     `db:"code"`
	DiscountPercent *int       `db:"discount_percent"`
	DiscountFlat    *int64     `db:"discount_flat"`
	ValidFrom       *time.Time `db:"valid_from"`
	ValidUntil      *time.Time `db:"valid_until"`
	UsageLimit      *int       `db:"usage_limit"`
	UsageCount      int        `db:"usage_count"`
	Active          bool       `db:"active"`
}

// ValidateModes enforces the one-discount-mode invariant.
func (p *PromoCode) ValidateModes() error {
	hasPercent := p.DiscountPercent != nil
	hasFlat := p.DiscountFlat != nil
	if hasPercent == hasFlat {
		return ErrDiscountModeUnset
	}
	return nil
}

// Usable checks activity, validity window and usage limit at the given time.
func (p *PromoCode) Usable(now time.Time) error {
	if !p.Active {
		return ErrPromoInactive
	}
	if p.ValidFrom != nil && now.Before(*p.ValidFrom) {
		return ErrPromoExpired
	}
	if p.ValidUntil != nil && now.After(*p.ValidUntil) {
		return ErrPromoExpired
	}
	if p.UsageLimit != nil && p.UsageCount >= *p.UsageLimit {
		return ErrPromoUsageExceeded
	}
	return nil
}

// DiscountFor computes the discount in paise for a total in paise.
// Percent discounts truncate toward zero; flat discounts cap at the total.
func (p *PromoCode) DiscountFor(total int64) int64 {
	if total <= 0 {
		return 0
	}
	if p.DiscountPercent != nil {
		return total * int64(*p.DiscountPercent) / 100
	}
	if p.DiscountFlat != nil {
		if *p.DiscountFlat > total {
			return total
		}
		return *p.DiscountFlat
	}
	return 0
}
