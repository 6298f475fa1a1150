package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/entity"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/dto/request"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/usecase"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	admin   usecase.AdminService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, admin usecase.AdminService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		admin:   admin,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// CreateIntent handles POST /api/payments/intent (protected)
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	payment, err := h.service.CreateIntent(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create payment intent")
		return
	}

	utils.ResponseCreated(w, "success", payment)
}

// Confirm handles POST /api/payments/confirm (protected)
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.Confirm(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "confirm payment")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetBookingPayments handles GET /api/bookings/{id}/payments (protected)
func (h *PaymentHandler) GetBookingPayments(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	role, _ := utils.GetRoleFromContext(r.Context())
	isAdmin := role == string(entity.RoleAdmin) || role == string(entity.RoleStaff)

	payments, err := h.service.GetBookingPayments(r.Context(), userID.String(), bookingID, isAdmin)
	if err != nil {
		handleServiceError(h.log, w, err, "list booking payments")
		return
	}

	utils.ResponseSuccess(w, "success", payments)
}

// ==================== ADMIN METHODS ====================

// Refund handles POST /api/admin/payments/refund (admin only)
func (h *PaymentHandler) Refund(w http.ResponseWriter, r *http.Request) {
	var req request.RefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.Refund(r.Context(), &req); err != nil {
		handleServiceError(h.log, w, err, "refund booking")
		return
	}

	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		if id, err := utils.ParseUUID(req.BookingID); err == nil {
			actorID := userID
			h.admin.RecordAudit(r.Context(), &actorID, "payment.refund", "booking", &id, req.Reason, r.RemoteAddr)
		}
	}

	utils.ResponseSuccess(w, "success", nil)
}
