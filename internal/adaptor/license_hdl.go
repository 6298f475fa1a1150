package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/dto/request"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/usecase"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type LicenseHandler struct {
	service usecase.LicenseService
	log     *zap.Logger
}

func NewLicenseHandler(service usecase.LicenseService, log *zap.Logger) *LicenseHandler {
	return &LicenseHandler{
		service: service,
		log:     log.With(zap.String("handler", "license")),
	}
}

// Submit handles POST /api/licenses (protected)
func (h *LicenseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.SubmitLicenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	license, err := h.service.Submit(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "submit license")
		return
	}

	utils.ResponseCreated(w, "success", license)
}

// MyLicenses handles GET /api/licenses (protected)
func (h *LicenseHandler) MyLicenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	licenses, err := h.service.MyLicenses(r.Context(), userID.String())
	if err != nil {
		handleServiceError(h.log, w, err, "list licenses")
		return
	}

	utils.ResponseSuccess(w, "success", licenses)
}

// ==================== ADMIN METHODS ====================

// ListPending handles GET /api/admin/licenses (admin only)
func (h *LicenseHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	licenses, err := h.service.ListPending(r.Context(), paginationFrom(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list pending licenses")
		return
	}

	utils.ResponseSuccess(w, "success", licenses)
}

// Review handles PUT /api/admin/licenses/{id}/review (admin only)
func (h *LicenseHandler) Review(w http.ResponseWriter, r *http.Request) {
	reviewerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	licenseID := chi.URLParam(r, "id")
	if licenseID == "" {
		utils.ResponseBadRequest(w, "License ID is required", nil)
		return
	}

	var req request.ReviewLicenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.Review(r.Context(), reviewerID.String(), licenseID, &req); err != nil {
		handleServiceError(h.log, w, err, "review license")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
