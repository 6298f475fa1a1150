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

type BookingHandler struct {
	service usecase.BookingService
	admin   usecase.AdminService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, admin usecase.AdminService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		admin:   admin,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// Quote handles POST /api/bookings/quote (protected)
func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req request.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	quote, err := h.service.Quote(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "quote booking")
		return
	}

	utils.ResponseSuccess(w, "success", quote)
}

// CreateHold handles POST /api/bookings/hold (protected)
func (h *BookingHandler) CreateHold(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateHoldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.CreateHold(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create hold")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// BookCarAtomic handles POST /api/bookings/atomic (protected)
func (h *BookingHandler) BookCarAtomic(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.BookCarAtomicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.BookCarAtomic(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "book car")
		return
	}

	// Rejections ride the same envelope with success=false.
	utils.ResponseSuccess(w, "success", result)
}

// GetBooking handles GET /api/bookings/{id} (protected)
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
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

	booking, err := h.service.GetBooking(r.Context(), userID.String(), bookingID, h.isAdmin(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetUserBookings handles GET /api/user/bookings (protected)
func (h *BookingHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookings, err := h.service.GetUserBookings(r.Context(), userID.String(), paginationFrom(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// Cancel handles PUT /api/bookings/{id}/cancel (protected)
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.Cancel(r.Context(), userID.String(), bookingID, h.isAdmin(r)); err != nil {
		handleServiceError(h.log, w, err, "cancel booking")
		return
	}

	if h.isAdmin(r) {
		if id, err := utils.ParseUUID(bookingID); err == nil {
			actorID := userID
			h.admin.RecordAudit(r.Context(), &actorID, "booking.cancel", "booking", &id, "cancelled by admin", r.RemoteAddr)
		}
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ==================== ADMIN METHODS ====================

// ListAll handles GET /api/admin/bookings (admin only)
func (h *BookingHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.ListAll(r.Context(), paginationFrom(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// Complete handles PUT /api/admin/bookings/{id}/complete (admin only)
func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	if err := h.service.Complete(r.Context(), bookingID); err != nil {
		handleServiceError(h.log, w, err, "complete booking")
		return
	}

	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		if id, err := utils.ParseUUID(bookingID); err == nil {
			actorID := userID
			h.admin.RecordAudit(r.Context(), &actorID, "booking.complete", "booking", &id, "marked completed", r.RemoteAddr)
		}
	}

	utils.ResponseSuccess(w, "success", nil)
}

func (h *BookingHandler) isAdmin(r *http.Request) bool {
	role, ok := utils.GetRoleFromContext(r.Context())
	return ok && (role == string(entity.RoleAdmin) || role == string(entity.RoleStaff))
}
