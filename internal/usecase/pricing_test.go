package usecase

import (
	"testing"
	"time"

	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/entity"

	"github.com/stretchr/testify/assert"
)

func testCar() *entity.Car {
	return &entity.Car{
		PricePerDay:  100000,
		PricePerHour: 6000,
		Status:       entity.CarStatusPublished,
	}
}

func TestComputeQuote_WholeDays(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	q := computeQuote(testCar(), start, end, false, false)

	assert.Equal(t, int64(200000), q.BaseAmount)
	assert.Equal(t, int64(0), q.DriverAmount)
	assert.Equal(t, int64(0), q.InsuranceAmount)
	assert.Equal(t, int64(200000), q.TotalAmount)
}

func TestComputeQuote_PartialDayBillsHourly(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("25 hours bills 25 hourly units", func(t *testing.T) {
		q := computeQuote(testCar(), start, start.Add(25*time.Hour), false, false)
		assert.Equal(t, int64(25*6000), q.BaseAmount)
	})

	t.Run("started hour rounds up", func(t *testing.T) {
		q := computeQuote(testCar(), start, start.Add(24*time.Hour+30*time.Minute), false, false)
		assert.Equal(t, int64(25*6000), q.BaseAmount)
	})

	t.Run("90 minutes bills 2 hours", func(t *testing.T) {
		q := computeQuote(testCar(), start, start.Add(90*time.Minute), false, false)
		assert.Equal(t, int64(2*6000), q.BaseAmount)
	})
}

func TestComputeQuote_ExtrasBillPerStartedDay(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("two whole days", func(t *testing.T) {
		q := computeQuote(testCar(), start, start.Add(48*time.Hour), true, true)

		assert.Equal(t, int64(200000), q.BaseAmount)
		assert.Equal(t, int64(100000), q.DriverAmount)
		assert.Equal(t, int64(60000), q.InsuranceAmount)
		assert.Equal(t, int64(360000), q.TotalAmount)
	})

	t.Run("25 hours charges extras for two days", func(t *testing.T) {
		q := computeQuote(testCar(), start, start.Add(25*time.Hour), true, true)

		assert.Equal(t, int64(2*50000), q.DriverAmount)
		assert.Equal(t, int64(2*30000), q.InsuranceAmount)
	})

	t.Run("three hours charges extras for one day", func(t *testing.T) {
		q := computeQuote(testCar(), start, start.Add(3*time.Hour), true, false)

		assert.Equal(t, int64(50000), q.DriverAmount)
		assert.Equal(t, int64(0), q.InsuranceAmount)
	})
}

func TestHoldAmountFor(t *testing.T) {
	assert.Equal(t, int64(36000), holdAmountFor(360000))
	assert.Equal(t, int64(10000), holdAmountFor(100000))
	// truncates, never rounds up
	assert.Equal(t, int64(999), holdAmountFor(9999))
	assert.Equal(t, int64(0), holdAmountFor(0))
}

func TestFullPayAmountFor(t *testing.T) {
	assert.Equal(t, int64(95000), fullPayAmountFor(100000))
	assert.Equal(t, int64(342000), fullPayAmountFor(360000))
	assert.Equal(t, int64(0), fullPayAmountFor(0))
}
