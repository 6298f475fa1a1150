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

type CarHandler struct {
	service usecase.CarService
	log     *zap.Logger
}

func NewCarHandler(service usecase.CarService, log *zap.Logger) *CarHandler {
	return &CarHandler{
		service: service,
		log:     log.With(zap.String("handler", "car")),
	}
}

// ListPublished handles GET /api/cars (public)
func (h *CarHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	cars, err := h.service.ListPublished(r.Context(), paginationFrom(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list cars")
		return
	}

	utils.ResponseSuccess(w, "success", cars)
}

// GetCar handles GET /api/cars/{id} (public)
func (h *CarHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	carID := chi.URLParam(r, "id")
	if carID == "" {
		utils.ResponseBadRequest(w, "Car ID is required", nil)
		return
	}

	car, err := h.service.GetCar(r.Context(), carID)
	if err != nil {
		handleServiceError(h.log, w, err, "get car")
		return
	}

	utils.ResponseSuccess(w, "success", car)
}

// ==================== ADMIN METHODS ====================

// ListAll handles GET /api/admin/cars (admin only)
func (h *CarHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	cars, err := h.service.ListAll(r.Context(), paginationFrom(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list all cars")
		return
	}

	utils.ResponseSuccess(w, "success", cars)
}

// CreateCar handles POST /api/admin/cars (admin only)
func (h *CarHandler) CreateCar(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	car, err := h.service.CreateCar(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create car")
		return
	}

	utils.ResponseCreated(w, "success", car)
}

// UpdateCar handles PUT /api/admin/cars/{id} (admin only)
func (h *CarHandler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	carID := chi.URLParam(r, "id")
	if carID == "" {
		utils.ResponseBadRequest(w, "Car ID is required", nil)
		return
	}

	var req request.UpdateCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	car, err := h.service.UpdateCar(r.Context(), carID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update car")
		return
	}

	utils.ResponseSuccess(w, "success", car)
}

// DeleteCar handles DELETE /api/admin/cars/{id} (admin only)
func (h *CarHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	carID := chi.URLParam(r, "id")
	if carID == "" {
		utils.ResponseBadRequest(w, "Car ID is required", nil)
		return
	}

	if err := h.service.DeleteCar(r.Context(), carID); err != nil {
		handleServiceError(h.log, w, err, "delete car")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ScheduleMaintenance handles POST /api/admin/maintenance (admin only)
func (h *CarHandler) ScheduleMaintenance(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	record, err := h.service.ScheduleMaintenance(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "schedule maintenance")
		return
	}

	utils.ResponseCreated(w, "success", record)
}

// CompleteMaintenance handles PUT /api/admin/maintenance/{id}/done (admin only)
func (h *CarHandler) CompleteMaintenance(w http.ResponseWriter, r *http.Request) {
	maintenanceID := chi.URLParam(r, "id")
	if maintenanceID == "" {
		utils.ResponseBadRequest(w, "Maintenance ID is required", nil)
		return
	}

	if err := h.service.CompleteMaintenance(r.Context(), maintenanceID); err != nil {
		handleServiceError(h.log, w, err, "complete maintenance")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ListOpenMaintenance handles GET /api/admin/maintenance (admin only)
func (h *CarHandler) ListOpenMaintenance(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListOpenMaintenance(r.Context(), paginationFrom(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list open maintenance")
		return
	}

	utils.ResponseSuccess(w, "success", records)
}
