package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func int64Ptr(v int64) *int64 { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func TestPromoCode_DiscountFor(t *testing.T) {
	t.Run("percent discount truncates toward zero", func(t *testing.T) {
		p := &PromoCode{DiscountPercent: intPtr(20)}
		assert.Equal(t, int64(20000), p.DiscountFor(100000))

		// 15% of 99999 paise = 14999.85, truncated
		p = &PromoCode{DiscountPercent: intPtr(15)}
		assert.Equal(t, int64(14999), p.DiscountFor(99999))
	})

	t.Run("flat discount caps at total", func(t *testing.T) {
		p := &PromoCode{DiscountFlat: int64Ptr(50000)}
		assert.Equal(t, int64(50000), p.DiscountFor(100000))
		assert.Equal(t, int64(30000), p.DiscountFor(30000))
		assert.Equal(t, int64(20000), p.DiscountFor(20000))
	})

	t.Run("non-positive total gets no discount", func(t *testing.T) {
		p := &PromoCode{DiscountPercent: intPtr(50)}
		assert.Equal(t, int64(0), p.DiscountFor(0))
		assert.Equal(t, int64(0), p.DiscountFor(-100))
	})

	t.Run("no mode set gets no discount", func(t *testing.T) {
		p := &PromoCode{}
		assert.Equal(t, int64(0), p.DiscountFor(100000))
	})
}

func TestPromoCode_ValidateModes(t *testing.T) {
	t.Run("percent only is valid", func(t *testing.T) {
		p := &PromoCode{DiscountPercent: intPtr(10)}
		assert.NoError(t, p.ValidateModes())
	})

	t.Run("flat only is valid", func(t *testing.T) {
		p := &PromoCode{DiscountFlat: int64Ptr(5000)}
		assert.NoError(t, p.ValidateModes())
	})

	t.Run("both modes set is invalid", func(t *testing.T) {
		p := &PromoCode{DiscountPercent: intPtr(10), DiscountFlat: int64Ptr(5000)}
		assert.ErrorIs(t, p.ValidateModes(), ErrDiscountModeUnset)
	})

	t.Run("neither mode set is invalid", func(t *testing.T) {
		p := &PromoCode{}
		assert.ErrorIs(t, p.ValidateModes(), ErrDiscountModeUnset)
	})
}

func TestPromoCode_Usable(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("active code inside window is usable", func(t *testing.T) {
		p := &PromoCode{
			Active:     true,
			ValidFrom:  timePtr(now.Add(-24 * time.Hour)),
			ValidUntil: timePtr(now.Add(24 * time.Hour)),
			UsageLimit: intPtr(10),
			UsageCount: 5,
		}
		assert.NoError(t, p.Usable(now))
	})

	t.Run("inactive code is rejected", func(t *testing.T) {
		p := &PromoCode{Active: false}
		assert.ErrorIs(t, p.Usable(now), ErrPromoInactive)
	})

	t.Run("not yet valid is rejected", func(t *testing.T) {
		p := &PromoCode{Active: true, ValidFrom: timePtr(now.Add(time.Hour))}
		assert.ErrorIs(t, p.Usable(now), ErrPromoExpired)
	})

	t.Run("past validity window is rejected", func(t *testing.T) {
		p := &PromoCode{Active: true, ValidUntil: timePtr(now.Add(-time.Hour))}
		assert.ErrorIs(t, p.Usable(now), ErrPromoExpired)
	})

	t.Run("usage limit reached is rejected", func(t *testing.T) {
		p := &PromoCode{Active: true, UsageLimit: intPtr(3), UsageCount: 3}
		assert.ErrorIs(t, p.Usable(now), ErrPromoUsageExceeded)
	})

	t.Run("no window and no limit is usable", func(t *testing.T) {
		p := &PromoCode{Active: true}
		assert.NoError(t, p.Usable(now))
	})
}
