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
	"github.com/vinaykumaredara/azure-drive-hub-sub001/pkg/utils"

	"go.uber.org/zap"
)

type LicenseService interface {
	Submit(ctx context.Context, userID string, req *request.SubmitLicenseRequest) (*response.LicenseResponse, error)
	MyLicenses(ctx context.Context, userID string) ([]response.LicenseResponse, error)

	// Admin endpoints
	ListPending(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.LicenseResponse], error)
	Review(ctx context.Context, reviewerID, licenseID string, req *request.ReviewLicenseRequest) error
}

type licenseService struct {
	repo     *repository.Repository
	producer Publisher
	log      *zap.Logger
}

func NewLicenseService(repo *repository.Repository, producer Publisher, log *zap.Logger) LicenseService {
	return &licenseService{
		repo:     repo,
		producer: producer,
		log:      log.With(zap.String("service", "license")),
	}
}

func (s *licenseService) Submit(ctx context.Context, userID string, req *request.SubmitLicenseRequest) (*response.LicenseResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Submit license validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	if !req.ExpiresOn.After(time.Now()) {
		return nil, fmt.Errorf("license is already expired")
	}

	now := time.Now()
	license := &entity.License{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:    userUUID,
		Number:    req.Number,
		ImageURL:  req.ImageURL,
		ExpiresOn: req.ExpiresOn,
		Status:    entity.LicenseStatusPending,
	}

	if err := s.repo.License.Create(ctx, license); err != nil {
		s.log.Error("Failed to submit license", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("submit license: %w", err)
	}

	s.publishLicenseChange(ctx, events.ActionInsert, license)

	s.log.Info("License submitted",
		zap.String("license_id", license.ID.String()),
		zap.String("user_id", userID))

	resp := response.LicenseToResponse(license)
	return &resp, nil
}

func (s *licenseService) MyLicenses(ctx context.Context, userID string) ([]response.LicenseResponse, error) {
	userUUID, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	licenses, err := s.repo.License.FindByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to list user licenses", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("list user licenses: %w", err)
	}

	return response.LicensesToResponse(licenses), nil
}

// ==================== ADMIN METHODS ====================

func (s *licenseService) ListPending(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.LicenseResponse], error) {
	licenses, err := s.repo.License.FindByStatus(ctx, entity.LicenseStatusPending, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list pending licenses", zap.Error(err))
		return nil, fmt.Errorf("list pending licenses: %w", err)
	}

	total, err := s.repo.License.CountByStatus(ctx, entity.LicenseStatusPending)
	if err != nil {
		s.log.Error("Failed to count pending licenses", zap.Error(err))
		return nil, fmt.Errorf("count pending licenses: %w", err)
	}

	return response.NewPaginatedResponse(response.LicensesToResponse(licenses), req.Page, req.PerPage, total), nil
}

func (s *licenseService) Review(ctx context.Context, reviewerID, licenseID string, req *request.ReviewLicenseRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	reviewerUUID, err := utils.ParseUUID(reviewerID)
	if err != nil {
		return fmt.Errorf("invalid reviewer ID format %s: %w", reviewerID, err)
	}

	id, err := utils.ParseUUID(licenseID)
	if err != nil {
		return fmt.Errorf("invalid license ID format %s: %w", licenseID, err)
	}

	license, err := s.repo.License.FindByID(ctx, id)
	if err != nil || license == nil {
		return fmt.Errorf("license %s not found", licenseID)
	}
	if license.Status != entity.LicenseStatusPending {
		return fmt.Errorf("license %s already reviewed", licenseID)
	}

	status := entity.LicenseStatus(req.Status)
	if status == entity.LicenseStatusRejected && (req.RejectReason == nil || *req.RejectReason == "") {
		return fmt.Errorf("reject reason is required")
	}

	if err := s.repo.License.Review(ctx, id, status, reviewerUUID, req.RejectReason); err != nil {
		s.log.Error("Failed to review license",
			zap.Error(err), zap.String("license_id", licenseID))
		return fmt.Errorf("review license %s: %w", licenseID, err)
	}

	license.Status = status
	s.publishLicenseChange(ctx, events.ActionUpdate, license)

	s.log.Info("License reviewed",
		zap.String("license_id", licenseID),
		zap.String("status", req.Status),
		zap.String("reviewer_id", reviewerID))

	return nil
}

func (s *licenseService) publishLicenseChange(ctx context.Context, action string, license *entity.License) {
	event := events.ChangeEvent{
		Table:    events.TableLicenses,
		Action:   action,
		EntityID: license.ID.String(),
		Payload: map[string]any{
			"user_id": license.UserID.String(),
			"status":  string(license.Status),
		},
	}
	if err := s.producer.Publish(ctx, event); err != nil {
		s.log.Warn("Failed to publish license change event",
			zap.Error(err), zap.String("license_id", license.ID.String()))
	}
}
