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

type PromoHandler struct {
	service usecase.PromoService
	log     *zap.Logger
}

func NewPromoHandler(service usecase.PromoService, log *zap.Logger) *PromoHandler {
	return &PromoHandler{
		service: service,
		log:     log.With(zap.String("handler", "promo")),
	}
}

// Validate handles POST /api/promos/validate (public)
func (h *PromoHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req request.ValidatePromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.Validate(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "validate promo")
		return
	}

	// Unknown or unusable codes ride the same envelope with valid=false.
	utils.ResponseSuccess(w, "success", result)
}

// ==================== ADMIN METHODS ====================

// ListAll handles GET /api/admin/promos (admin only)
func (h *PromoHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	promos, err := h.service.ListAll(r.Context(), paginationFrom(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list promos")
		return
	}

	utils.ResponseSuccess(w, "success", promos)
}

// Create handles POST /api/admin/promos (admin only)
func (h *PromoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	promo, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create promo")
		return
	}

	utils.ResponseCreated(w, "success", promo)
}

// Update handles PUT /api/admin/promos/{id} (admin only)
func (h *PromoHandler) Update(w http.ResponseWriter, r *http.Request) {
	promoID := chi.URLParam(r, "id")
	if promoID == "" {
		utils.ResponseBadRequest(w, "Promo ID is required", nil)
		return
	}

	var req request.UpdatePromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	promo, err := h.service.Update(r.Context(), promoID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update promo")
		return
	}

	utils.ResponseSuccess(w, "success", promo)
}

// Delete handles DELETE /api/admin/promos/{id} (admin only)
func (h *PromoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	promoID := chi.URLParam(r, "id")
	if promoID == "" {
		utils.ResponseBadRequest(w, "Promo ID is required", nil)
		return
	}

	if err := h.service.Delete(r.Context(), promoID); err != nil {
		handleServiceError(h.log, w, err, "delete promo")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
