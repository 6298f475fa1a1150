package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/entity"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/repository"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/dto/request"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/dto/response"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminService interface {
	// Staff management
	CreateStaff(ctx context.Context, req *request.CreateStaffRequest) (*response.UserResponse, error)
	ListUsersByRole(ctx context.Context, role string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	UpdateUser(ctx context.Context, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	SuspendUser(ctx context.Context, userID string, suspended bool) error

	// Finance
	FinanceSummary(ctx context.Context, req *request.FinanceReportRequest) (*response.FinanceSummaryResponse, error)

	// Security and audit
	RecordAudit(ctx context.Context, actorID *uuid.UUID, action, entityType string, entityID *uuid.UUID, detail, ip string)
	RecentAudit(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AuditLogResponse], error)
}

type adminService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAdminService(repo *repository.Repository, log *zap.Logger) AdminService {
	return &adminService{
		repo: repo,
		log:  log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) CreateStaff(ctx context.Context, req *request.CreateStaffRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create staff validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hashedPassword,
		Role:         entity.UserRole(req.Role),
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create staff account", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("create staff account: %w", err)
	}

	s.log.Info("Staff account created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", req.Role))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *adminService) ListUsersByRole(ctx context.Context, role string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	userRole := entity.UserRole(role)
	switch userRole {
	case entity.RoleCustomer, entity.RoleStaff, entity.RoleAdmin:
	default:
		return nil, fmt.Errorf("unknown role %s", role)
	}

	users, err := s.repo.User.FindByRole(ctx, userRole, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list users", zap.Error(err), zap.String("role", role))
		return nil, fmt.Errorf("list users by role %s: %w", role, err)
	}

	total, err := s.repo.User.CountByRole(ctx, userRole)
	if err != nil {
		s.log.Error("Failed to count users", zap.Error(err), zap.String("role", role))
		return nil, fmt.Errorf("count users by role %s: %w", role, err)
	}

	out := make([]response.UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, response.UserToResponse(user))
	}

	return response.NewPaginatedResponse(out, req.Page, req.PerPage, total), nil
}

func (s *adminService) UpdateUser(ctx context.Context, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil || user == nil {
		return nil, fmt.Errorf("user %s not found", userID)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Role != nil {
		user.Role = entity.UserRole(*req.Role)
	}
	if req.Suspended != nil {
		user.Suspended = *req.Suspended
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("update user %s: %w", userID, err)
	}

	s.log.Info("User updated", zap.String("user_id", userID))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *adminService) SuspendUser(ctx context.Context, userID string, suspended bool) error {
	id, err := utils.ParseUUID(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	if err := s.repo.User.SetSuspended(ctx, id, suspended); err != nil {
		s.log.Error("Failed to set user suspension",
			zap.Error(err), zap.String("user_id", userID), zap.Bool("suspended", suspended))
		return fmt.Errorf("set user %s suspension: %w", userID, err)
	}

	// Suspension kills live sessions; lifting it does not restore them.
	if suspended {
		if err := s.repo.Session.DeleteByUserID(ctx, id); err != nil {
			s.log.Warn("Failed to revoke sessions of suspended user",
				zap.Error(err), zap.String("user_id", userID))
		}
	}

	s.log.Info("User suspension changed",
		zap.String("user_id", userID),
		zap.Bool("suspended", suspended))

	return nil
}

// ==================== FINANCE ====================

func (s *adminService) FinanceSummary(ctx context.Context, req *request.FinanceReportRequest) (*response.FinanceSummaryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		return nil, fmt.Errorf("invalid from date %s: %w", req.From, err)
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		return nil, fmt.Errorf("invalid to date %s: %w", req.To, err)
	}
	// Make the range inclusive of the end date.
	to = to.Add(24 * time.Hour)

	if !to.After(from) {
		return nil, entity.ErrInvalidDateRange
	}

	revenue, err := s.repo.Booking.SumPaidBetween(ctx, from, to)
	if err != nil {
		s.log.Error("Failed to sum revenue", zap.Error(err))
		return nil, fmt.Errorf("sum revenue: %w", err)
	}

	outstanding, err := s.repo.Booking.SumOutstandingHolds(ctx)
	if err != nil {
		s.log.Error("Failed to sum outstanding holds", zap.Error(err))
		return nil, fmt.Errorf("sum outstanding holds: %w", err)
	}

	byStatus, err := s.repo.Booking.CountByStatus(ctx)
	if err != nil {
		s.log.Error("Failed to count bookings by status", zap.Error(err))
		return nil, fmt.Errorf("count bookings by status: %w", err)
	}

	return &response.FinanceSummaryResponse{
		From:             from,
		To:               to,
		Revenue:          revenue,
		OutstandingHolds: outstanding,
		BookingsByStatus: byStatus,
	}, nil
}

// ==================== SECURITY & AUDIT ====================

// RecordAudit writes one audit row. Failures are logged, never surfaced,
// so audit trouble cannot fail the action being audited.
func (s *adminService) RecordAudit(ctx context.Context, actorID *uuid.UUID, action, entityType string, entityID *uuid.UUID, detail, ip string) {
	record := &entity.AuditLog{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now(),
		},
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
		IPAddress:  ip,
	}

	if err := s.repo.Audit.Create(ctx, record); err != nil {
		s.log.Error("Failed to record audit entry",
			zap.Error(err), zap.String("action", action))
	}
}

func (s *adminService) RecentAudit(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AuditLogResponse], error) {
	records, err := s.repo.Audit.FindRecent(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list audit logs", zap.Error(err))
		return nil, fmt.Errorf("list audit logs: %w", err)
	}

	total, err := s.repo.Audit.Count(ctx)
	if err != nil {
		s.log.Error("Failed to count audit logs", zap.Error(err))
		return nil, fmt.Errorf("count audit logs: %w", err)
	}

	return response.NewPaginatedResponse(response.AuditLogsToResponse(records), req.Page, req.PerPage, total), nil
}
