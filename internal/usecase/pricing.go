package usecase

import (
	"time"

	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/entity"
)

// Per-day extras, in paise.
const (
	driverChargePerDay    int64 = 50000
	insuranceChargePerDay int64 = 30000
)

// Payment split: a hold charges 10% up front, paying in full earns a 5%
// discount on the total.
const (
	holdPercent        int64 = 10
	fullPayDiscountPct int64 = 5
)

type quote struct {
	BaseAmount      int64
	DriverAmount    int64
	InsuranceAmount int64
	DiscountAmount  int64
	TotalAmount     int64
}

// computeQuote prices a rental window. Exact multiples of 24 hours bill
// at the daily rate; anything else bills started hours at the hourly
// rate. Extras bill per started day either way.
func computeQuote(car *entity.Car, startAt, endAt time.Time, withDriver, withInsurance bool) quote {
	duration := endAt.Sub(startAt)

	days := int64(duration / (24 * time.Hour))
	wholeDays := duration%(24*time.Hour) == 0 && days > 0

	var base int64
	if wholeDays {
		base = days * car.PricePerDay
	} else {
		hours := int64(duration / time.Hour)
		if duration%time.Hour != 0 {
			hours++
		}
		base = hours * car.PricePerHour
	}

	chargedDays := days
	if !wholeDays {
		chargedDays++
	}

	q := quote{BaseAmount: base}
	if withDriver {
		q.DriverAmount = chargedDays * driverChargePerDay
	}
	if withInsurance {
		q.InsuranceAmount = chargedDays * insuranceChargePerDay
	}

	q.TotalAmount = q.BaseAmount + q.DriverAmount + q.InsuranceAmount
	return q
}

// holdAmountFor is the up-front charge that keeps a hold alive.
func holdAmountFor(total int64) int64 {
	return total * holdPercent / 100
}

// fullPayAmountFor is the discounted amount when paying everything now.
func fullPayAmountFor(total int64) int64 {
	return total - total*fullPayDiscountPct/100
}
