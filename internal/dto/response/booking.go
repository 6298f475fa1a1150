package response

import (
	"time"

	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/entity"
)

type QuoteResponse struct {
	CarID           string `json:"car_id"`
	BaseAmount      int64  `json:"base_amount"`
	DriverAmount    int64  `json:"driver_amount"`
	InsuranceAmount int64  `json:"insurance_amount"`
	DiscountAmount  int64  `json:"discount_amount"`
	TotalAmount     int64  `json:"total_amount"`
	HoldAmount      int64  `json:"hold_amount"`
	FullPayAmount   int64  `json:"full_pay_amount"`
}

type BookingResponse struct {
	ID               string               `json:"id"`
	BookingRef       string               `json:"booking_ref"`
	UserID           string               `json:"user_id"`
	CarID            string               `json:"car_id"`
	StartAt          time.Time            `json:"start_at"`
	EndAt            time.Time            `json:"end_at"`
	Status           entity.BookingStatus `json:"status"`
	PaymentState     entity.PaymentState  `json:"payment_state"`
	TotalAmount      int64                `json:"total_amount"`
	HoldAmount       *int64               `json:"hold_amount,omitempty"`
	HoldExpiresAt    *time.Time           `json:"hold_expires_at,omitempty"`
	HoldRemainingSec int64                `json:"hold_remaining_sec"`
	PromoCode        *string              `json:"promo_code,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
}

type BookCarAtomicResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Booking *BookingResponse `json:"booking,omitempty"`
}

// Helper converters
func BookingToResponse(booking *entity.Booking, now time.Time) BookingResponse {
	return BookingResponse{
		ID:               booking.ID.String(),
		BookingRef:       booking.BookingRef,
		UserID:           booking.UserID.String(),
		CarID:            booking.CarID.String(),
		StartAt:          booking.StartAt,
		EndAt:            booking.EndAt,
		Status:           booking.Status,
		PaymentState:     booking.PaymentState,
		TotalAmount:      booking.TotalAmount,
		HoldAmount:       booking.HoldAmount,
		HoldExpiresAt:    booking.HoldExpiresAt,
		HoldRemainingSec: int64(booking.HoldRemaining(now).Seconds()),
		PromoCode:        booking.PromoCode,
		CreatedAt:        booking.CreatedAt,
	}
}

func BookingsToResponse(bookings []*entity.Booking, now time.Time) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		out = append(out, BookingToResponse(booking, now))
	}
	return out
}
