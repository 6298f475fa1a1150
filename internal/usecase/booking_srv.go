package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/entity"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/repository"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/dto/request"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/dto/response"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/events"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/gateway"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Public endpoints (auth required)
	Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error)
	CreateHold(ctx context.Context, userID string, req *request.CreateHoldRequest) (*response.BookingResponse, error)
	BookCarAtomic(ctx context.Context, userID string, req *request.BookCarAtomicRequest) (*response.BookCarAtomicResponse, error)
	GetBooking(ctx context.Context, userID, bookingID string, isAdmin bool) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	Cancel(ctx context.Context, userID, bookingID string, isAdmin bool) error

	// Admin endpoints
	ListAll(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	Complete(ctx context.Context, bookingID string) error
}

type bookingService struct {
	repo     *repository.Repository
	config   *utils.Config
	cache    Cache
	producer Publisher
	gateway  gateway.PaymentGateway
	log      *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	config *utils.Config,
	redisCache Cache,
	producer Publisher,
	paymentGateway gateway.PaymentGateway,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:     repo,
		config:   config,
		cache:    redisCache,
		producer: producer,
		gateway:  paymentGateway,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Quote validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if !req.EndAt.After(req.StartAt) {
		return nil, entity.ErrInvalidDateRange
	}

	carID, err := utils.ParseUUID(req.CarID)
	if err != nil {
		return nil, fmt.Errorf("invalid car ID format %s: %w", req.CarID, err)
	}

	car, err := s.repo.Car.FindByID(ctx, carID)
	if err != nil {
		s.log.Error("Failed to load car for quote", zap.Error(err), zap.String("car_id", req.CarID))
		return nil, fmt.Errorf("load car: %w", err)
	}
	if car == nil {
		return nil, fmt.Errorf("car %s not found", req.CarID)
	}
	if !car.Bookable() {
		return nil, fmt.Errorf("car not available for selected dates")
	}

	q := computeQuote(car, req.StartAt, req.EndAt, req.WithDriver, req.WithInsurance)

	var discount int64
	if req.PromoCode != nil && *req.PromoCode != "" {
		promo, err := s.repo.Promo.FindByCode(ctx, *req.PromoCode)
		if err != nil {
			return nil, fmt.Errorf("load promo code: %w", err)
		}
		if promo == nil {
			return nil, fmt.Errorf("promo code %s not found", *req.PromoCode)
		}
		if err := promo.Usable(time.Now()); err != nil {
			return nil, err
		}
		discount = promo.DiscountFor(q.TotalAmount)
	}

	total := q.TotalAmount - discount

	return &response.QuoteResponse{
		CarID:           req.CarID,
		BaseAmount:      q.BaseAmount,
		DriverAmount:    q.DriverAmount,
		InsuranceAmount: q.InsuranceAmount,
		DiscountAmount:  discount,
		TotalAmount:     total,
		HoldAmount:      holdAmountFor(total),
		FullPayAmount:   fullPayAmountFor(total),
	}, nil
}

func (s *bookingService) CreateHold(ctx context.Context, userID string, req *request.CreateHoldRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create hold validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if !req.EndAt.After(req.StartAt) {
		return nil, entity.ErrInvalidDateRange
	}

	userUUID, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	carID, err := utils.ParseUUID(req.CarID)
	if err != nil {
		return nil, fmt.Errorf("invalid car ID format %s: %w", req.CarID, err)
	}

	car, err := s.repo.Car.FindByID(ctx, carID)
	if err != nil {
		s.log.Error("Failed to load car for hold", zap.Error(err), zap.String("car_id", req.CarID))
		return nil, fmt.Errorf("load car: %w", err)
	}
	if car == nil {
		return nil, fmt.Errorf("car %s not found", req.CarID)
	}
	if !car.Bookable() {
		return nil, fmt.Errorf("car not available for selected dates")
	}

	var licenseID *uuid.UUID
	if req.LicenseID != nil {
		parsed, err := utils.ParseUUID(*req.LicenseID)
		if err != nil {
			return nil, fmt.Errorf("invalid license ID format %s: %w", *req.LicenseID, err)
		}
		license, err := s.repo.License.FindByID(ctx, parsed)
		if err != nil || license == nil {
			return nil, fmt.Errorf("license %s not found", *req.LicenseID)
		}
		if license.UserID != userUUID {
			return nil, fmt.Errorf("unauthorized to use this license")
		}
		licenseID = &parsed
	}

	q := computeQuote(car, req.StartAt, req.EndAt, req.WithDriver, req.WithInsurance)
	total := q.TotalAmount

	var promo *entity.PromoCode
	if req.PromoCode != nil && *req.PromoCode != "" {
		promo, err = s.repo.Promo.FindByCode(ctx, *req.PromoCode)
		if err != nil {
			return nil, fmt.Errorf("load promo code: %w", err)
		}
		if promo == nil {
			return nil, fmt.Errorf("promo code %s not found", *req.PromoCode)
		}
		if err := promo.Usable(time.Now()); err != nil {
			return nil, err
		}
		total -= promo.DiscountFor(total)
	}

	now := time.Now()
	holdExpiry := now.Add(time.Duration(s.config.Hold.ExpiryMinutes) * time.Minute)
	holdAmount := holdAmountFor(total)

	booking := &entity.Booking{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingRef:    utils.GenerateBookingRef(),
		UserID:        userUUID,
		CarID:         carID,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		Status:        entity.BookingStatusPending,
		PaymentState:  entity.PaymentStateUnpaid,
		TotalAmount:   total,
		HoldAmount:    &holdAmount,
		HoldExpiresAt: &holdExpiry,
		LicenseID:     licenseID,
		PromoCode:     req.PromoCode,
	}

	// The redis lock keeps two holds on the same car from racing between
	// the overlap check and the insert.
	locked, err := s.cache.AcquireCarLock(ctx, carID, booking.ID, time.Duration(s.config.Hold.ExpiryMinutes)*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("acquire car lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("car not available for selected dates")
	}

	if err := s.repo.Booking.CreateAtomic(ctx, booking); err != nil {
		if releaseErr := s.cache.ReleaseCarLock(ctx, carID); releaseErr != nil {
			s.log.Warn("Failed to release car lock after hold failure",
				zap.Error(releaseErr), zap.String("car_id", req.CarID))
		}
		if errors.Is(err, repository.ErrCarUnavailable) || errors.Is(err, repository.ErrCarNotFound) {
			return nil, err
		}
		s.log.Error("Failed to create hold", zap.Error(err), zap.String("car_id", req.CarID))
		return nil, fmt.Errorf("create hold: %w", err)
	}

	if promo != nil {
		if err := s.repo.Promo.IncrementUsage(ctx, promo.ID); err != nil {
			s.log.Warn("Failed to increment promo usage",
				zap.Error(err), zap.String("code", promo.Code))
		}
	}

	s.publishBookingChange(ctx, events.ActionInsert, booking)

	s.log.Info("Hold created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_ref", booking.BookingRef),
		zap.String("car_id", req.CarID),
		zap.Int64("total_amount", total),
		zap.Time("hold_expires_at", holdExpiry))

	resp := response.BookingToResponse(booking, now)
	return &resp, nil
}

// BookCarAtomic places a confirmed full-window booking in one shot. It
// never leaves a partial hold behind: either the booking lands or the
// caller gets a message naming why.
func (s *bookingService) BookCarAtomic(ctx context.Context, userID string, req *request.BookCarAtomicRequest) (*response.BookCarAtomicResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &response.BookCarAtomicResponse{
			Success: false,
			Message: fmt.Sprintf("validation failed: %s", utils.FormatValidationErrors(errs)),
		}, nil
	}

	if !req.EndAt.After(req.StartAt) {
		return &response.BookCarAtomicResponse{
			Success: false,
			Message: entity.ErrInvalidDateRange.Error(),
		}, nil
	}

	userUUID, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	carID, err := utils.ParseUUID(req.CarID)
	if err != nil {
		return &response.BookCarAtomicResponse{
			Success: false,
			Message: "invalid car id",
		}, nil
	}

	car, err := s.repo.Car.FindByID(ctx, carID)
	if err != nil {
		s.log.Error("Failed to load car for atomic booking", zap.Error(err), zap.String("car_id", req.CarID))
		return nil, fmt.Errorf("load car: %w", err)
	}
	if car == nil {
		return &response.BookCarAtomicResponse{
			Success: false,
			Message: "car not found",
		}, nil
	}

	q := computeQuote(car, req.StartAt, req.EndAt, false, false)

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingRef:   utils.GenerateBookingRef(),
		UserID:       userUUID,
		CarID:        carID,
		StartAt:      req.StartAt,
		EndAt:        req.EndAt,
		Status:       entity.BookingStatusConfirmed,
		PaymentState: entity.PaymentStateUnpaid,
		TotalAmount:  q.TotalAmount,
	}

	if err := s.repo.Booking.CreateAtomic(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrCarUnavailable) || errors.Is(err, repository.ErrCarNotFound) {
			return &response.BookCarAtomicResponse{
				Success: false,
				Message: err.Error(),
			}, nil
		}
		s.log.Error("Atomic booking failed", zap.Error(err), zap.String("car_id", req.CarID))
		return nil, fmt.Errorf("book car: %w", err)
	}

	s.publishBookingChange(ctx, events.ActionInsert, booking)

	s.log.Info("Car booked atomically",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_ref", booking.BookingRef),
		zap.String("car_id", req.CarID))

	bookingResp := response.BookingToResponse(booking, now)
	return &response.BookCarAtomicResponse{
		Success: true,
		Message: "booking confirmed",
		Booking: &bookingResp,
	}, nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID string, isAdmin bool) (*response.BookingResponse, error) {
	id, err := utils.ParseUUID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	if !isAdmin && booking.UserID.String() != userID {
		return nil, fmt.Errorf("unauthorized to view this booking")
	}

	resp := response.BookingToResponse(booking, time.Now())
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	return response.NewPaginatedResponse(response.BookingsToResponse(bookings, time.Now()), req.Page, req.PerPage, total), nil
}

func (s *bookingService) Cancel(ctx context.Context, userID, bookingID string, isAdmin bool) error {
	id, err := utils.ParseUUID(bookingID)
	if err != nil {
		return fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil || booking == nil {
		return fmt.Errorf("booking %s not found", bookingID)
	}

	if !isAdmin && booking.UserID.String() != userID {
		return fmt.Errorf("unauthorized to cancel this booking")
	}

	if !booking.CanTransitionTo(entity.BookingStatusCancelled) {
		return fmt.Errorf("booking status is %s, cannot cancel", booking.Status)
	}

	collected := booking.PaymentState == entity.PaymentStatePartialHold ||
		booking.PaymentState == entity.PaymentStatePaid

	paymentState := booking.PaymentState
	if !collected {
		paymentState = entity.PaymentStateCancelled
	}

	if err := s.repo.Booking.UpdateStatus(ctx, id, entity.BookingStatusCancelled, paymentState); err != nil {
		s.log.Error("Failed to cancel booking", zap.Error(err), zap.String("booking_id", bookingID))
		return fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}

	if err := s.cache.ReleaseCarLock(ctx, booking.CarID); err != nil {
		s.log.Warn("Failed to release car lock on cancel",
			zap.Error(err), zap.String("car_id", booking.CarID.String()))
	}

	if booking.PromoCode != nil && !collected {
		if err := s.repo.Promo.DecrementUsageByCode(ctx, *booking.PromoCode); err != nil {
			s.log.Warn("Failed to return promo use on cancel",
				zap.Error(err), zap.String("code", *booking.PromoCode))
		}
	}

	booking.Status = entity.BookingStatusCancelled
	booking.PaymentState = paymentState
	s.publishBookingChange(ctx, events.ActionUpdate, booking)

	// Collected money goes back through the gateway. A refund failure
	// leaves the booking cancelled with its payment state intact so the
	// refund endpoint can finish the job.
	if collected {
		if err := s.refundCollectedPayments(ctx, id); err != nil {
			return err
		}

		if err := s.repo.Booking.UpdateStatus(ctx, id, entity.BookingStatusRefunded, entity.PaymentStateCancelled); err != nil {
			s.log.Error("Failed to mark booking refunded", zap.Error(err), zap.String("booking_id", bookingID))
			return fmt.Errorf("mark booking refunded: %w", err)
		}

		booking.Status = entity.BookingStatusRefunded
		booking.PaymentState = entity.PaymentStateCancelled
		s.publishBookingChange(ctx, events.ActionUpdate, booking)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("booking_ref", booking.BookingRef),
		zap.Bool("refunded", collected))

	return nil
}

func (s *bookingService) refundCollectedPayments(ctx context.Context, bookingID uuid.UUID) error {
	payments, err := s.repo.Payment.FindByBookingID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("list booking payments: %w", err)
	}

	for _, payment := range payments {
		if payment.Status != entity.PaymentStatusSucceeded {
			continue
		}

		if _, err := s.gateway.Refund(ctx, payment.IntentID, payment.Amount); err != nil {
			s.log.Error("Gateway refund failed on cancel",
				zap.Error(err),
				zap.String("intent_id", payment.IntentID),
				zap.String("booking_id", bookingID.String()))
			return fmt.Errorf("refund payment %s: %w", payment.IntentID, err)
		}

		if err := s.repo.Payment.UpdateStatus(ctx, payment.ID, entity.PaymentStatusRefunded); err != nil {
			s.log.Error("Failed to mark payment refunded",
				zap.Error(err), zap.String("payment_id", payment.ID.String()))
			return fmt.Errorf("mark payment refunded: %w", err)
		}
	}

	return nil
}

// ==================== ADMIN METHODS ====================

func (s *bookingService) ListAll(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.Count(ctx)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err))
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	return response.NewPaginatedResponse(response.BookingsToResponse(bookings, time.Now()), req.Page, req.PerPage, total), nil
}

func (s *bookingService) Complete(ctx context.Context, bookingID string) error {
	id, err := utils.ParseUUID(bookingID)
	if err != nil {
		return fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil || booking == nil {
		return fmt.Errorf("booking %s not found", bookingID)
	}

	if !booking.CanTransitionTo(entity.BookingStatusCompleted) {
		return fmt.Errorf("booking status is %s, cannot complete", booking.Status)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, id, entity.BookingStatusCompleted, booking.PaymentState); err != nil {
		s.log.Error("Failed to complete booking", zap.Error(err), zap.String("booking_id", bookingID))
		return fmt.Errorf("complete booking %s: %w", bookingID, err)
	}

	booking.Status = entity.BookingStatusCompleted
	s.publishBookingChange(ctx, events.ActionUpdate, booking)

	s.log.Info("Booking completed",
		zap.String("booking_id", bookingID),
		zap.String("booking_ref", booking.BookingRef))

	return nil
}

func (s *bookingService) publishBookingChange(ctx context.Context, action string, booking *entity.Booking) {
	event := events.ChangeEvent{
		Table:    events.TableBookings,
		Action:   action,
		EntityID: booking.ID.String(),
		Payload: map[string]any{
			"booking_ref":   booking.BookingRef,
			"status":        string(booking.Status),
			"payment_state": string(booking.PaymentState),
		},
	}
	if err := s.producer.Publish(ctx, event); err != nil {
		s.log.Warn("Failed to publish booking change event",
			zap.Error(err), zap.String("booking_id", booking.ID.String()))
	}
}
