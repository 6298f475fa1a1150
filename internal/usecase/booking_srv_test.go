package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/entity"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/repository"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/dto/request"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/gateway"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		Hold:    utils.HoldConfig{ExpiryMinutes: 10, SweepSeconds: 1},
		Session: utils.SessionConfig{ExpiryHours: 24},
	}
}

func bookableCar(id uuid.UUID) *entity.Car {
	return &entity.Car{
		Base:         entity.Base{ID: id},
		Make:         "Maruti",
		Model:        "Swift",
		PricePerDay:  100000,
		PricePerHour: 6000,
		Status:       entity.CarStatusPublished,
	}
}

func newBookingServiceForTest(
	carRepo *MockCarRepository,
	bookingRepo *MockBookingRepository,
	promoRepo *MockPromoRepository,
	licenseRepo *MockLicenseRepository,
	cache *MockCache,
	producer *MockPublisher,
) BookingService {
	repo := &repository.Repository{
		Car:     carRepo,
		Booking: bookingRepo,
		Promo:   promoRepo,
		License: licenseRepo,
		Payment: &MockPaymentRepository{},
	}
	return NewBookingService(repo, testConfig(), cache, producer, &MockPaymentGateway{}, zap.NewNop())
}

func TestBookingService_CreateHold_Success(t *testing.T) {
	carRepo := &MockCarRepository{}
	bookingRepo := &MockBookingRepository{}
	promoRepo := &MockPromoRepository{}
	licenseRepo := &MockLicenseRepository{}
	cache := &MockCache{}
	producer := &MockPublisher{}

	carID := uuid.New()
	carRepo.On("FindByID", mock.Anything, carID).Return(bookableCar(carID), nil)
	cache.On("AcquireCarLock", mock.Anything, carID, mock.Anything, 10*time.Minute).Return(true, nil)
	bookingRepo.On("CreateAtomic", mock.Anything, mock.AnythingOfType("*entity.Booking")).Return(nil)
	producer.On("Publish", mock.Anything, mock.Anything).Return(nil)

	svc := newBookingServiceForTest(carRepo, bookingRepo, promoRepo, licenseRepo, cache, producer)

	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	req := &request.CreateHoldRequest{
		CarID:   carID.String(),
		StartAt: start,
		EndAt:   start.Add(48 * time.Hour),
	}

	resp, err := svc.CreateHold(context.Background(), uuid.New().String(), req)

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, entity.BookingStatusPending, resp.Status)
	assert.Equal(t, entity.PaymentStateUnpaid, resp.PaymentState)
	assert.Equal(t, int64(200000), resp.TotalAmount)
	// 10% of the total keeps the hold alive
	assert.NotNil(t, resp.HoldAmount)
	assert.Equal(t, int64(20000), *resp.HoldAmount)
	assert.Greater(t, resp.HoldRemainingSec, int64(0))

	bookingRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestBookingService_CreateHold_CarLockedByAnotherHold(t *testing.T) {
	carRepo := &MockCarRepository{}
	bookingRepo := &MockBookingRepository{}
	cache := &MockCache{}
	producer := &MockPublisher{}

	carID := uuid.New()
	carRepo.On("FindByID", mock.Anything, carID).Return(bookableCar(carID), nil)
	cache.On("AcquireCarLock", mock.Anything, carID, mock.Anything, mock.Anything).Return(false, nil)

	svc := newBookingServiceForTest(carRepo, bookingRepo, &MockPromoRepository{}, &MockLicenseRepository{}, cache, producer)

	start := time.Now().Add(24 * time.Hour)
	req := &request.CreateHoldRequest{
		CarID:   carID.String(),
		StartAt: start,
		EndAt:   start.Add(24 * time.Hour),
	}

	resp, err := svc.CreateHold(context.Background(), uuid.New().String(), req)

	assert.Nil(t, resp)
	assert.EqualError(t, err, "car not available for selected dates")
	bookingRepo.AssertNotCalled(t, "CreateAtomic", mock.Anything, mock.Anything)
}

func TestBookingService_CreateHold_OverlapReleasesLock(t *testing.T) {
	carRepo := &MockCarRepository{}
	bookingRepo := &MockBookingRepository{}
	cache := &MockCache{}
	producer := &MockPublisher{}

	carID := uuid.New()
	carRepo.On("FindByID", mock.Anything, carID).Return(bookableCar(carID), nil)
	cache.On("AcquireCarLock", mock.Anything, carID, mock.Anything, mock.Anything).Return(true, nil)
	bookingRepo.On("CreateAtomic", mock.Anything, mock.Anything).Return(repository.ErrCarUnavailable)
	cache.On("ReleaseCarLock", mock.Anything, carID).Return(nil)

	svc := newBookingServiceForTest(carRepo, bookingRepo, &MockPromoRepository{}, &MockLicenseRepository{}, cache, producer)

	start := time.Now().Add(24 * time.Hour)
	req := &request.CreateHoldRequest{
		CarID:   carID.String(),
		StartAt: start,
		EndAt:   start.Add(24 * time.Hour),
	}

	resp, err := svc.CreateHold(context.Background(), uuid.New().String(), req)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, repository.ErrCarUnavailable)
	cache.AssertCalled(t, "ReleaseCarLock", mock.Anything, carID)
	producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestBookingService_CreateHold_PromoApplied(t *testing.T) {
	carRepo := &MockCarRepository{}
	bookingRepo := &MockBookingRepository{}
	promoRepo := &MockPromoRepository{}
	cache := &MockCache{}
	producer := &MockPublisher{}

	carID := uuid.New()
	percent := 20
	promo := &entity.PromoCode{
		Base:            entity.Base{ID: uuid.New()},
		Code:            "SAVE20",
		DiscountPercent: &percent,
		Active:          true,
	}

	carRepo.On("FindByID", mock.Anything, carID).Return(bookableCar(carID), nil)
	promoRepo.On("FindByCode", mock.Anything, "SAVE20").Return(promo, nil)
	promoRepo.On("IncrementUsage", mock.Anything, promo.ID).Return(nil)
	cache.On("AcquireCarLock", mock.Anything, carID, mock.Anything, mock.Anything).Return(true, nil)
	bookingRepo.On("CreateAtomic", mock.Anything, mock.Anything).Return(nil)
	producer.On("Publish", mock.Anything, mock.Anything).Return(nil)

	svc := newBookingServiceForTest(carRepo, bookingRepo, promoRepo, &MockLicenseRepository{}, cache, producer)

	code := "SAVE20"
	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	req := &request.CreateHoldRequest{
		CarID:     carID.String(),
		StartAt:   start,
		EndAt:     start.Add(48 * time.Hour),
		PromoCode: &code,
	}

	resp, err := svc.CreateHold(context.Background(), uuid.New().String(), req)

	assert.NoError(t, err)
	// 200000 minus 20 percent
	assert.Equal(t, int64(160000), resp.TotalAmount)
	promoRepo.AssertCalled(t, "IncrementUsage", mock.Anything, promo.ID)
}

func TestBookingService_CreateHold_InvalidDates(t *testing.T) {
	svc := newBookingServiceForTest(&MockCarRepository{}, &MockBookingRepository{}, &MockPromoRepository{}, &MockLicenseRepository{}, &MockCache{}, &MockPublisher{})

	start := time.Now().Add(24 * time.Hour)
	req := &request.CreateHoldRequest{
		CarID:   uuid.New().String(),
		StartAt: start,
		EndAt:   start.Add(-time.Hour),
	}

	resp, err := svc.CreateHold(context.Background(), uuid.New().String(), req)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, entity.ErrInvalidDateRange)
}

func TestBookingService_BookCarAtomic_Success(t *testing.T) {
	carRepo := &MockCarRepository{}
	bookingRepo := &MockBookingRepository{}
	producer := &MockPublisher{}

	carID := uuid.New()
	carRepo.On("FindByID", mock.Anything, carID).Return(bookableCar(carID), nil)
	bookingRepo.On("CreateAtomic", mock.Anything, mock.AnythingOfType("*entity.Booking")).Return(nil)
	producer.On("Publish", mock.Anything, mock.Anything).Return(nil)

	svc := newBookingServiceForTest(carRepo, bookingRepo, &MockPromoRepository{}, &MockLicenseRepository{}, &MockCache{}, producer)

	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	req := &request.BookCarAtomicRequest{
		CarID:   carID.String(),
		StartAt: start,
		EndAt:   start.Add(24 * time.Hour),
	}

	result, err := svc.BookCarAtomic(context.Background(), uuid.New().String(), req)

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.NotNil(t, result.Booking)
	assert.Equal(t, entity.BookingStatusConfirmed, result.Booking.Status)
}

func TestBookingService_BookCarAtomic_UnavailableIsRejectionNotError(t *testing.T) {
	carRepo := &MockCarRepository{}
	bookingRepo := &MockBookingRepository{}

	carID := uuid.New()
	carRepo.On("FindByID", mock.Anything, carID).Return(bookableCar(carID), nil)
	bookingRepo.On("CreateAtomic", mock.Anything, mock.Anything).Return(repository.ErrCarUnavailable)

	svc := newBookingServiceForTest(carRepo, bookingRepo, &MockPromoRepository{}, &MockLicenseRepository{}, &MockCache{}, &MockPublisher{})

	start := time.Now().Add(24 * time.Hour)
	req := &request.BookCarAtomicRequest{
		CarID:   carID.String(),
		StartAt: start,
		EndAt:   start.Add(24 * time.Hour),
	}

	result, err := svc.BookCarAtomic(context.Background(), uuid.New().String(), req)

	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, repository.ErrCarUnavailable.Error(), result.Message)
	assert.Nil(t, result.Booking)
}

func TestBookingService_BookCarAtomic_UnknownCar(t *testing.T) {
	carRepo := &MockCarRepository{}

	carID := uuid.New()
	carRepo.On("FindByID", mock.Anything, carID).Return(nil, nil)

	svc := newBookingServiceForTest(carRepo, &MockBookingRepository{}, &MockPromoRepository{}, &MockLicenseRepository{}, &MockCache{}, &MockPublisher{})

	start := time.Now().Add(24 * time.Hour)
	req := &request.BookCarAtomicRequest{
		CarID:   carID.String(),
		StartAt: start,
		EndAt:   start.Add(24 * time.Hour),
	}

	result, err := svc.BookCarAtomic(context.Background(), uuid.New().String(), req)

	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "car not found", result.Message)
}

func TestBookingService_BookCarAtomic_InfrastructureFailureIsError(t *testing.T) {
	carRepo := &MockCarRepository{}
	bookingRepo := &MockBookingRepository{}

	carID := uuid.New()
	carRepo.On("FindByID", mock.Anything, carID).Return(bookableCar(carID), nil)
	bookingRepo.On("CreateAtomic", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	svc := newBookingServiceForTest(carRepo, bookingRepo, &MockPromoRepository{}, &MockLicenseRepository{}, &MockCache{}, &MockPublisher{})

	start := time.Now().Add(24 * time.Hour)
	req := &request.BookCarAtomicRequest{
		CarID:   carID.String(),
		StartAt: start,
		EndAt:   start.Add(24 * time.Hour),
	}

	result, err := svc.BookCarAtomic(context.Background(), uuid.New().String(), req)

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestBookingService_Cancel(t *testing.T) {
	userID := uuid.New()
	carID := uuid.New()

	t.Run("owner cancels pending booking", func(t *testing.T) {
		bookingRepo := &MockBookingRepository{}
		cache := &MockCache{}
		producer := &MockPublisher{}

		booking := &entity.Booking{
			Base:         entity.Base{ID: uuid.New()},
			UserID:       userID,
			CarID:        carID,
			Status:       entity.BookingStatusPending,
			PaymentState: entity.PaymentStateUnpaid,
		}
		bookingRepo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
		bookingRepo.On("UpdateStatus", mock.Anything, booking.ID, entity.BookingStatusCancelled, entity.PaymentStateCancelled).Return(nil)
		cache.On("ReleaseCarLock", mock.Anything, carID).Return(nil)
		producer.On("Publish", mock.Anything, mock.Anything).Return(nil)

		svc := newBookingServiceForTest(&MockCarRepository{}, bookingRepo, &MockPromoRepository{}, &MockLicenseRepository{}, cache, producer)

		err := svc.Cancel(context.Background(), userID.String(), booking.ID.String(), false)

		assert.NoError(t, err)
		bookingRepo.AssertExpectations(t)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		bookingRepo := &MockBookingRepository{}

		booking := &entity.Booking{
			Base:   entity.Base{ID: uuid.New()},
			UserID: userID,
			Status: entity.BookingStatusPending,
		}
		bookingRepo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

		svc := newBookingServiceForTest(&MockCarRepository{}, bookingRepo, &MockPromoRepository{}, &MockLicenseRepository{}, &MockCache{}, &MockPublisher{})

		err := svc.Cancel(context.Background(), uuid.New().String(), booking.ID.String(), false)

		assert.EqualError(t, err, "unauthorized to cancel this booking")
		bookingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("admin cancelling a paid booking refunds it", func(t *testing.T) {
		bookingRepo := &MockBookingRepository{}
		paymentRepo := &MockPaymentRepository{}
		gw := &MockPaymentGateway{}
		cache := &MockCache{}
		producer := &MockPublisher{}

		booking := &entity.Booking{
			Base:         entity.Base{ID: uuid.New()},
			BookingRef:   "BK-PAID01",
			UserID:       userID,
			CarID:        carID,
			Status:       entity.BookingStatusConfirmed,
			PaymentState: entity.PaymentStatePaid,
			TotalAmount:  200000,
		}
		payment := &entity.Payment{
			Base:      entity.Base{ID: uuid.New()},
			BookingID: booking.ID,
			IntentID:  "pi_paid",
			Mode:      entity.PaymentModeFull,
			Amount:    190000,
			Status:    entity.PaymentStatusSucceeded,
		}

		bookingRepo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
		// the paid state stays visible until the refund lands
		bookingRepo.On("UpdateStatus", mock.Anything, booking.ID, entity.BookingStatusCancelled, entity.PaymentStatePaid).Return(nil)
		cache.On("ReleaseCarLock", mock.Anything, carID).Return(nil)
		producer.On("Publish", mock.Anything, mock.Anything).Return(nil)
		paymentRepo.On("FindByBookingID", mock.Anything, booking.ID).Return([]*entity.Payment{payment}, nil)
		gw.On("Refund", mock.Anything, "pi_paid", int64(190000)).Return(&gateway.Intent{ID: "pi_paid", Status: "refunded"}, nil)
		paymentRepo.On("UpdateStatus", mock.Anything, payment.ID, entity.PaymentStatusRefunded).Return(nil)
		bookingRepo.On("UpdateStatus", mock.Anything, booking.ID, entity.BookingStatusRefunded, entity.PaymentStateCancelled).Return(nil)

		repo := &repository.Repository{Booking: bookingRepo, Payment: paymentRepo}
		svc := NewBookingService(repo, testConfig(), cache, producer, gw, zap.NewNop())

		err := svc.Cancel(context.Background(), uuid.New().String(), booking.ID.String(), true)

		assert.NoError(t, err)
		gw.AssertExpectations(t)
		bookingRepo.AssertExpectations(t)
		paymentRepo.AssertExpectations(t)
	})

	t.Run("cancelling a held booking refunds the hold charge", func(t *testing.T) {
		bookingRepo := &MockBookingRepository{}
		paymentRepo := &MockPaymentRepository{}
		gw := &MockPaymentGateway{}
		cache := &MockCache{}
		producer := &MockPublisher{}

		holdAmount := int64(20000)
		booking := &entity.Booking{
			Base:         entity.Base{ID: uuid.New()},
			BookingRef:   "BK-HELD01",
			UserID:       userID,
			CarID:        carID,
			Status:       entity.BookingStatusHeld,
			PaymentState: entity.PaymentStatePartialHold,
			TotalAmount:  200000,
			HoldAmount:   &holdAmount,
		}
		holdCharge := &entity.Payment{
			Base:      entity.Base{ID: uuid.New()},
			BookingID: booking.ID,
			IntentID:  "pi_hold",
			Mode:      entity.PaymentModeHold10,
			Amount:    20000,
			Status:    entity.PaymentStatusSucceeded,
		}

		bookingRepo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
		bookingRepo.On("UpdateStatus", mock.Anything, booking.ID, entity.BookingStatusCancelled, entity.PaymentStatePartialHold).Return(nil)
		cache.On("ReleaseCarLock", mock.Anything, carID).Return(nil)
		producer.On("Publish", mock.Anything, mock.Anything).Return(nil)
		paymentRepo.On("FindByBookingID", mock.Anything, booking.ID).Return([]*entity.Payment{holdCharge}, nil)
		gw.On("Refund", mock.Anything, "pi_hold", int64(20000)).Return(&gateway.Intent{ID: "pi_hold", Status: "refunded"}, nil)
		paymentRepo.On("UpdateStatus", mock.Anything, holdCharge.ID, entity.PaymentStatusRefunded).Return(nil)
		bookingRepo.On("UpdateStatus", mock.Anything, booking.ID, entity.BookingStatusRefunded, entity.PaymentStateCancelled).Return(nil)

		repo := &repository.Repository{Booking: bookingRepo, Payment: paymentRepo}
		svc := NewBookingService(repo, testConfig(), cache, producer, gw, zap.NewNop())

		err := svc.Cancel(context.Background(), userID.String(), booking.ID.String(), false)

		assert.NoError(t, err)
		gw.AssertCalled(t, "Refund", mock.Anything, "pi_hold", int64(20000))
		bookingRepo.AssertExpectations(t)
	})

	t.Run("refund failure leaves the booking cancelled", func(t *testing.T) {
		bookingRepo := &MockBookingRepository{}
		paymentRepo := &MockPaymentRepository{}
		gw := &MockPaymentGateway{}
		cache := &MockCache{}
		producer := &MockPublisher{}

		booking := &entity.Booking{
			Base:         entity.Base{ID: uuid.New()},
			UserID:       userID,
			CarID:        carID,
			Status:       entity.BookingStatusConfirmed,
			PaymentState: entity.PaymentStatePaid,
		}
		payment := &entity.Payment{
			Base:      entity.Base{ID: uuid.New()},
			BookingID: booking.ID,
			IntentID:  "pi_stuck",
			Amount:    190000,
			Status:    entity.PaymentStatusSucceeded,
		}

		bookingRepo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
		bookingRepo.On("UpdateStatus", mock.Anything, booking.ID, entity.BookingStatusCancelled, entity.PaymentStatePaid).Return(nil)
		cache.On("ReleaseCarLock", mock.Anything, carID).Return(nil)
		producer.On("Publish", mock.Anything, mock.Anything).Return(nil)
		paymentRepo.On("FindByBookingID", mock.Anything, booking.ID).Return([]*entity.Payment{payment}, nil)
		gw.On("Refund", mock.Anything, "pi_stuck", int64(190000)).Return(nil, errors.New("gateway timeout"))

		repo := &repository.Repository{Booking: bookingRepo, Payment: paymentRepo}
		svc := NewBookingService(repo, testConfig(), cache, producer, gw, zap.NewNop())

		err := svc.Cancel(context.Background(), userID.String(), booking.ID.String(), false)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "refund payment pi_stuck")
		bookingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, booking.ID, entity.BookingStatusRefunded, entity.PaymentStateCancelled)
	})

	t.Run("cancelling an unpaid hold returns the promo use", func(t *testing.T) {
		bookingRepo := &MockBookingRepository{}
		promoRepo := &MockPromoRepository{}
		cache := &MockCache{}
		producer := &MockPublisher{}

		code := "SAVE20"
		booking := &entity.Booking{
			Base:         entity.Base{ID: uuid.New()},
			UserID:       userID,
			CarID:        carID,
			Status:       entity.BookingStatusPending,
			PaymentState: entity.PaymentStateUnpaid,
			PromoCode:    &code,
		}
		bookingRepo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
		bookingRepo.On("UpdateStatus", mock.Anything, booking.ID, entity.BookingStatusCancelled, entity.PaymentStateCancelled).Return(nil)
		cache.On("ReleaseCarLock", mock.Anything, carID).Return(nil)
		producer.On("Publish", mock.Anything, mock.Anything).Return(nil)
		promoRepo.On("DecrementUsageByCode", mock.Anything, "SAVE20").Return(nil)

		svc := newBookingServiceForTest(&MockCarRepository{}, bookingRepo, promoRepo, &MockLicenseRepository{}, cache, producer)

		err := svc.Cancel(context.Background(), userID.String(), booking.ID.String(), false)

		assert.NoError(t, err)
		promoRepo.AssertCalled(t, "DecrementUsageByCode", mock.Anything, "SAVE20")
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		bookingRepo := &MockBookingRepository{}

		booking := &entity.Booking{
			Base:   entity.Base{ID: uuid.New()},
			UserID: userID,
			Status: entity.BookingStatusCompleted,
		}
		bookingRepo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

		svc := newBookingServiceForTest(&MockCarRepository{}, bookingRepo, &MockPromoRepository{}, &MockLicenseRepository{}, &MockCache{}, &MockPublisher{})

		err := svc.Cancel(context.Background(), userID.String(), booking.ID.String(), false)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot cancel")
	})
}

func TestBookingService_Quote_WithPromo(t *testing.T) {
	carRepo := &MockCarRepository{}
	promoRepo := &MockPromoRepository{}

	carID := uuid.New()
	flat := int64(30000)
	promo := &entity.PromoCode{
		Base:         entity.Base{ID: uuid.New()},
		Code:         "FLAT300",
		DiscountFlat: &flat,
		Active:       true,
	}

	carRepo.On("FindByID", mock.Anything, carID).Return(bookableCar(carID), nil)
	promoRepo.On("FindByCode", mock.Anything, "FLAT300").Return(promo, nil)

	svc := newBookingServiceForTest(carRepo, &MockBookingRepository{}, promoRepo, &MockLicenseRepository{}, &MockCache{}, &MockPublisher{})

	code := "FLAT300"
	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	req := &request.QuoteRequest{
		CarID:     carID.String(),
		StartAt:   start,
		EndAt:     start.Add(48 * time.Hour),
		PromoCode: &code,
	}

	quote, err := svc.Quote(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, int64(200000), quote.BaseAmount)
	assert.Equal(t, int64(30000), quote.DiscountAmount)
	assert.Equal(t, int64(170000), quote.TotalAmount)
	assert.Equal(t, int64(17000), quote.HoldAmount)
	assert.Equal(t, int64(161500), quote.FullPayAmount)
}

func TestBookingService_Quote_CarInMaintenance(t *testing.T) {
	carRepo := &MockCarRepository{}

	carID := uuid.New()
	car := bookableCar(carID)
	car.Status = entity.CarStatusMaintenance
	carRepo.On("FindByID", mock.Anything, carID).Return(car, nil)

	svc := newBookingServiceForTest(carRepo, &MockBookingRepository{}, &MockPromoRepository{}, &MockLicenseRepository{}, &MockCache{}, &MockPublisher{})

	start := time.Now().Add(24 * time.Hour)
	req := &request.QuoteRequest{
		CarID:   carID.String(),
		StartAt: start,
		EndAt:   start.Add(24 * time.Hour),
	}

	quote, err := svc.Quote(context.Background(), req)

	assert.Nil(t, quote)
	assert.EqualError(t, err, "car not available for selected dates")
}
