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

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// CreateStaff handles POST /api/admin/users (admin only)
func (h *AdminHandler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req request.CreateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	user, err := h.service.CreateStaff(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create staff")
		return
	}

	h.recordAudit(r, "user.create", "user", user.ID, "staff account created")

	utils.ResponseCreated(w, "success", user)
}

// ListUsers handles GET /api/admin/users?role=customer (admin only)
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	if role == "" {
		role = "customer"
	}

	users, err := h.service.ListUsersByRole(r.Context(), role, paginationFrom(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "success", users)
}

// UpdateUser handles PUT /api/admin/users/{id} (admin only)
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return
	}

	var req request.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	user, err := h.service.UpdateUser(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update user")
		return
	}

	h.recordAudit(r, "user.update", "user", userID, "user updated")

	utils.ResponseSuccess(w, "success", user)
}

// SuspendUser handles PUT /api/admin/users/{id}/suspend (admin only)
func (h *AdminHandler) SuspendUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return
	}

	var req request.SuspendUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.SuspendUser(r.Context(), userID, *req.Suspended); err != nil {
		handleServiceError(h.log, w, err, "suspend user")
		return
	}

	action := "user.suspend"
	detail := "account suspended"
	if !*req.Suspended {
		action = "user.unsuspend"
		detail = "account reinstated"
	}
	h.recordAudit(r, action, "user", userID, detail)

	utils.ResponseSuccess(w, "success", nil)
}

// FinanceSummary handles GET /api/admin/finance?from=2026-01-01&to=2026-01-31 (admin only)
func (h *AdminHandler) FinanceSummary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.FinanceReportRequest{
		From: query.Get("from"),
		To:   query.Get("to"),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	summary, err := h.service.FinanceSummary(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "finance summary")
		return
	}

	utils.ResponseSuccess(w, "success", summary)
}

// RecentAudit handles GET /api/admin/audit (admin only)
func (h *AdminHandler) RecentAudit(w http.ResponseWriter, r *http.Request) {
	logs, err := h.service.RecentAudit(r.Context(), paginationFrom(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list audit logs")
		return
	}

	utils.ResponseSuccess(w, "success", logs)
}

func (h *AdminHandler) recordAudit(r *http.Request, action, entityType, entityID, detail string) {
	actorID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return
	}

	id, err := utils.ParseUUID(entityID)
	if err != nil {
		return
	}

	h.service.RecordAudit(r.Context(), &actorID, action, entityType, &id, detail, r.RemoteAddr)
}
