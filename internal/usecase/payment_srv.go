package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/entity"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/repository"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/dto/request"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/dto/response"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/events"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/gateway"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/pkg/utils"

	"go.uber.org/zap"
)

type PaymentService interface {
	CreateIntent(ctx context.Context, userID string, req *request.CreateIntentRequest) (*response.PaymentResponse, error)
	Confirm(ctx context.Context, userID string, req *request.ConfirmPaymentRequest) (*response.BookingResponse, error)
	GetBookingPayments(ctx context.Context, userID, bookingID string, isAdmin bool) ([]response.PaymentResponse, error)

	// Admin endpoint
	Refund(ctx context.Context, req *request.RefundRequest) error
}

type paymentService struct {
	repo     *repository.Repository
	gateway  gateway.PaymentGateway
	producer Publisher
	log      *zap.Logger
}

func NewPaymentService(
	repo *repository.Repository,
	paymentGateway gateway.PaymentGateway,
	producer Publisher,
	log *zap.Logger,
) PaymentService {
	return &paymentService{
		repo:     repo,
		gateway:  paymentGateway,
		producer: producer,
		log:      log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) CreateIntent(ctx context.Context, userID string, req *request.CreateIntentRequest) (*response.PaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create intent validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookingID, err := utils.ParseUUID(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", req.BookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil || booking == nil {
		return nil, fmt.Errorf("booking %s not found", req.BookingID)
	}

	if booking.UserID != userUUID {
		return nil, fmt.Errorf("unauthorized to pay for this booking")
	}

	mode := entity.PaymentMode(req.Mode)
	now := time.Now()

	var amount int64
	switch mode {
	case entity.PaymentModeHold10:
		if booking.Status != entity.BookingStatusPending {
			return nil, fmt.Errorf("booking status is %s, cannot place a hold payment", booking.Status)
		}
		if !booking.HoldActive(now) {
			return nil, fmt.Errorf("booking hold has expired")
		}
		if booking.HoldAmount == nil {
			return nil, fmt.Errorf("booking has no hold amount")
		}
		amount = *booking.HoldAmount
	case entity.PaymentModeFull:
		// An atomic booking lands confirmed before any money moves; a
		// full payment is how its total gets collected.
		payable := booking.Status == entity.BookingStatusPending ||
			booking.Status == entity.BookingStatusHeld ||
			(booking.Status == entity.BookingStatusConfirmed && booking.PaymentState == entity.PaymentStateUnpaid)
		if !payable {
			return nil, fmt.Errorf("booking status is %s, cannot pay", booking.Status)
		}
		if booking.Status == entity.BookingStatusPending && !booking.HoldActive(now) {
			return nil, fmt.Errorf("booking hold has expired")
		}
		amount = fullPayAmountFor(booking.TotalAmount)
		if booking.PaymentState == entity.PaymentStatePartialHold && booking.HoldAmount != nil {
			// The hold charge already collected counts toward the total.
			amount = booking.TotalAmount - *booking.HoldAmount
		}
	default:
		return nil, fmt.Errorf("unknown payment mode %s", req.Mode)
	}

	intent, err := s.gateway.CreateIntent(ctx, gateway.CreateIntentRequest{
		Reference:   booking.BookingRef,
		Amount:      amount,
		Description: fmt.Sprintf("Booking %s (%s)", booking.BookingRef, req.Mode),
	})
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	payment := &entity.Payment{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID: bookingID,
		IntentID:  intent.ID,
		Mode:      mode,
		Amount:    amount,
		Status:    entity.PaymentStatusCreated,
	}

	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		s.log.Error("Failed to record payment intent",
			zap.Error(err), zap.String("booking_id", req.BookingID))
		return nil, fmt.Errorf("record payment intent: %w", err)
	}

	s.log.Info("Payment intent created",
		zap.String("payment_id", payment.ID.String()),
		zap.String("intent_id", intent.ID),
		zap.String("booking_ref", booking.BookingRef),
		zap.String("mode", req.Mode),
		zap.Int64("amount", amount))

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *paymentService) Confirm(ctx context.Context, userID string, req *request.ConfirmPaymentRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	payment, err := s.repo.Payment.FindByIntentID(ctx, req.IntentID)
	if err != nil {
		return nil, fmt.Errorf("load payment: %w", err)
	}
	if payment == nil {
		return nil, fmt.Errorf("payment intent %s not found", req.IntentID)
	}
	if payment.Status != entity.PaymentStatusCreated {
		return nil, fmt.Errorf("payment intent %s already %s", req.IntentID, payment.Status)
	}

	booking, err := s.repo.Booking.FindByID(ctx, payment.BookingID)
	if err != nil || booking == nil {
		return nil, fmt.Errorf("booking %s not found", payment.BookingID.String())
	}
	if booking.UserID != userUUID {
		return nil, fmt.Errorf("unauthorized to confirm this payment")
	}

	intent, err := s.gateway.ConfirmIntent(ctx, req.IntentID)
	if err != nil {
		if updateErr := s.repo.Payment.UpdateStatus(ctx, payment.ID, entity.PaymentStatusFailed); updateErr != nil {
			s.log.Warn("Failed to mark payment failed", zap.Error(updateErr))
		}
		return nil, fmt.Errorf("confirm payment: %w", err)
	}

	if err := s.repo.Payment.UpdateStatus(ctx, payment.ID, entity.PaymentStatusSucceeded); err != nil {
		s.log.Error("Failed to mark payment succeeded",
			zap.Error(err), zap.String("payment_id", payment.ID.String()))
		return nil, fmt.Errorf("mark payment succeeded: %w", err)
	}

	// A successful hold charge moves the booking to held and keeps it
	// there past the unpaid deadline. A full payment confirms it.
	var status entity.BookingStatus
	var paymentState entity.PaymentState
	switch payment.Mode {
	case entity.PaymentModeHold10:
		status = entity.BookingStatusHeld
		paymentState = entity.PaymentStatePartialHold
	case entity.PaymentModeFull:
		status = entity.BookingStatusConfirmed
		paymentState = entity.PaymentStatePaid
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, status, paymentState); err != nil {
		s.log.Error("Failed to advance booking after payment",
			zap.Error(err), zap.String("booking_id", booking.ID.String()))
		return nil, fmt.Errorf("advance booking: %w", err)
	}

	booking.Status = status
	booking.PaymentState = paymentState

	event := events.ChangeEvent{
		Table:    events.TableBookings,
		Action:   events.ActionUpdate,
		EntityID: booking.ID.String(),
		Payload: map[string]any{
			"booking_ref":   booking.BookingRef,
			"status":        string(status),
			"payment_state": string(paymentState),
		},
	}
	if err := s.producer.Publish(ctx, event); err != nil {
		s.log.Warn("Failed to publish payment change event",
			zap.Error(err), zap.String("booking_id", booking.ID.String()))
	}

	s.log.Info("Payment confirmed",
		zap.String("intent_id", intent.ID),
		zap.String("booking_ref", booking.BookingRef),
		zap.String("status", string(status)))

	resp := response.BookingToResponse(booking, time.Now())
	return &resp, nil
}

func (s *paymentService) GetBookingPayments(ctx context.Context, userID, bookingID string, isAdmin bool) ([]response.PaymentResponse, error) {
	id, err := utils.ParseUUID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil || booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}
	if !isAdmin && booking.UserID.String() != userID {
		return nil, fmt.Errorf("unauthorized to view these payments")
	}

	payments, err := s.repo.Payment.FindByBookingID(ctx, id)
	if err != nil {
		s.log.Error("Failed to list booking payments", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("list booking payments: %w", err)
	}

	return response.PaymentsToResponse(payments), nil
}

// ==================== ADMIN METHODS ====================

func (s *paymentService) Refund(ctx context.Context, req *request.RefundRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	bookingID, err := utils.ParseUUID(req.BookingID)
	if err != nil {
		return fmt.Errorf("invalid booking ID format %s: %w", req.BookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil || booking == nil {
		return fmt.Errorf("booking %s not found", req.BookingID)
	}

	if !booking.CanTransitionTo(entity.BookingStatusRefunded) {
		return fmt.Errorf("booking status is %s, cannot refund", booking.Status)
	}

	payments, err := s.repo.Payment.FindByBookingID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("list booking payments: %w", err)
	}

	refunded := false
	for _, payment := range payments {
		if payment.Status != entity.PaymentStatusSucceeded {
			continue
		}

		if _, err := s.gateway.Refund(ctx, payment.IntentID, payment.Amount); err != nil {
			s.log.Error("Gateway refund failed",
				zap.Error(err),
				zap.String("intent_id", payment.IntentID),
				zap.String("booking_id", req.BookingID))
			return fmt.Errorf("refund payment %s: %w", payment.IntentID, err)
		}

		if err := s.repo.Payment.UpdateStatus(ctx, payment.ID, entity.PaymentStatusRefunded); err != nil {
			s.log.Error("Failed to mark payment refunded",
				zap.Error(err), zap.String("payment_id", payment.ID.String()))
			return fmt.Errorf("mark payment refunded: %w", err)
		}
		refunded = true
	}

	if !refunded {
		return fmt.Errorf("booking %s has no refundable payments", req.BookingID)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, bookingID, entity.BookingStatusRefunded, entity.PaymentStateCancelled); err != nil {
		s.log.Error("Failed to mark booking refunded",
			zap.Error(err), zap.String("booking_id", req.BookingID))
		return fmt.Errorf("mark booking refunded: %w", err)
	}

	event := events.ChangeEvent{
		Table:    events.TableBookings,
		Action:   events.ActionUpdate,
		EntityID: booking.ID.String(),
		Payload: map[string]any{
			"booking_ref": booking.BookingRef,
			"status":      string(entity.BookingStatusRefunded),
			"reason":      req.Reason,
		},
	}
	if err := s.producer.Publish(ctx, event); err != nil {
		s.log.Warn("Failed to publish refund event",
			zap.Error(err), zap.String("booking_id", req.BookingID))
	}

	s.log.Info("Booking refunded",
		zap.String("booking_id", req.BookingID),
		zap.String("booking_ref", booking.BookingRef),
		zap.String("reason", req.Reason))

	return nil
}
