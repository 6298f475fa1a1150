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

type PromoService interface {
	// Public endpoint
	Validate(ctx context.Context, req *request.ValidatePromoRequest) (*response.ValidatePromoResponse, error)

	// Admin endpoints
	ListAll(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PromoResponse], error)
	Create(ctx context.Context, req *request.CreatePromoRequest) (*response.PromoResponse, error)
	Update(ctx context.Context, promoID string, req *request.UpdatePromoRequest) (*response.PromoResponse, error)
	Delete(ctx context.Context, promoID string) error
}

type promoService struct {
	repo     *repository.Repository
	producer Publisher
	log      *zap.Logger
}

func NewPromoService(repo *repository.Repository, producer Publisher, log *zap.Logger) PromoService {
	return &promoService{
		repo:     repo,
		producer: producer,
		log:      log.With(zap.String("service", "promo")),
	}
}

// Validate checks a code against an amount without consuming a use.
// Invalid codes come back as a rejection, not an error.
func (s *promoService) Validate(ctx context.Context, req *request.ValidatePromoRequest) (*response.ValidatePromoResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	promo, err := s.repo.Promo.FindByCode(ctx, req.Code)
	if err != nil {
		s.log.Error("Failed to look up promo code", zap.Error(err), zap.String("code", req.Code))
		return nil, fmt.Errorf("look up promo code: %w", err)
	}
	if promo == nil {
		return &response.ValidatePromoResponse{
			Valid:       false,
			Code:        req.Code,
			FinalAmount: req.Amount,
			Reason:      "promo code not found",
		}, nil
	}

	if err := promo.Usable(time.Now()); err != nil {
		return &response.ValidatePromoResponse{
			Valid:       false,
			Code:        req.Code,
			FinalAmount: req.Amount,
			Reason:      err.Error(),
		}, nil
	}

	discount := promo.DiscountFor(req.Amount)

	return &response.ValidatePromoResponse{
		Valid:          true,
		Code:           promo.Code,
		DiscountAmount: discount,
		FinalAmount:    req.Amount - discount,
	}, nil
}

// ==================== ADMIN METHODS ====================

func (s *promoService) ListAll(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PromoResponse], error) {
	promos, err := s.repo.Promo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list promo codes", zap.Error(err))
		return nil, fmt.Errorf("list promo codes: %w", err)
	}

	total, err := s.repo.Promo.Count(ctx)
	if err != nil {
		s.log.Error("Failed to count promo codes", zap.Error(err))
		return nil, fmt.Errorf("count promo codes: %w", err)
	}

	return response.NewPaginatedResponse(response.PromosToResponse(promos), req.Page, req.PerPage, total), nil
}

func (s *promoService) Create(ctx context.Context, req *request.CreatePromoRequest) (*response.PromoResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create promo validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Promo.FindByCode(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("check promo code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("promo code %s already exists", req.Code)
	}

	now := time.Now()
	promo := &entity.PromoCode{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Code:            req.Code,
		DiscountPercent: req.DiscountPercent,
		DiscountFlat:    req.DiscountFlat,
		ValidFrom:       req.ValidFrom,
		ValidUntil:      req.ValidUntil,
		UsageLimit:      req.UsageLimit,
		Active:          req.Active,
	}

	if err := promo.ValidateModes(); err != nil {
		return nil, err
	}

	if err := s.repo.Promo.Create(ctx, promo); err != nil {
		s.log.Error("Failed to create promo code", zap.Error(err), zap.String("code", req.Code))
		return nil, fmt.Errorf("create promo code: %w", err)
	}

	s.publishPromoChange(ctx, events.ActionInsert, promo)

	s.log.Info("Promo code created",
		zap.String("promo_id", promo.ID.String()),
		zap.String("code", promo.Code))

	resp := response.PromoToResponse(promo)
	return &resp, nil
}

func (s *promoService) Update(ctx context.Context, promoID string, req *request.UpdatePromoRequest) (*response.PromoResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := utils.ParseUUID(promoID)
	if err != nil {
		return nil, fmt.Errorf("invalid promo ID format %s: %w", promoID, err)
	}

	promo, err := s.repo.Promo.FindByID(ctx, id)
	if err != nil || promo == nil {
		return nil, fmt.Errorf("promo code %s not found", promoID)
	}

	// Setting one discount mode clears the other.
	if req.DiscountPercent != nil {
		promo.DiscountPercent = req.DiscountPercent
		promo.DiscountFlat = nil
	}
	if req.DiscountFlat != nil {
		promo.DiscountFlat = req.DiscountFlat
		promo.DiscountPercent = nil
	}
	if req.ValidFrom != nil {
		promo.ValidFrom = req.ValidFrom
	}
	if req.ValidUntil != nil {
		promo.ValidUntil = req.ValidUntil
	}
	if req.UsageLimit != nil {
		promo.UsageLimit = req.UsageLimit
	}
	if req.Active != nil {
		promo.Active = *req.Active
	}
	promo.UpdatedAt = time.Now()

	if err := promo.ValidateModes(); err != nil {
		return nil, err
	}

	if err := s.repo.Promo.Update(ctx, promo); err != nil {
		s.log.Error("Failed to update promo code", zap.Error(err), zap.String("promo_id", promoID))
		return nil, fmt.Errorf("update promo code %s: %w", promoID, err)
	}

	s.publishPromoChange(ctx, events.ActionUpdate, promo)

	s.log.Info("Promo code updated", zap.String("promo_id", promoID))

	resp := response.PromoToResponse(promo)
	return &resp, nil
}

func (s *promoService) Delete(ctx context.Context, promoID string) error {
	id, err := utils.ParseUUID(promoID)
	if err != nil {
		return fmt.Errorf("invalid promo ID format %s: %w", promoID, err)
	}

	promo, err := s.repo.Promo.FindByID(ctx, id)
	if err != nil || promo == nil {
		return fmt.Errorf("promo code %s not found", promoID)
	}

	if err := s.repo.Promo.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete promo code", zap.Error(err), zap.String("promo_id", promoID))
		return fmt.Errorf("delete promo code %s: %w", promoID, err)
	}

	s.publishPromoChange(ctx, events.ActionDelete, promo)

	s.log.Info("Promo code deleted", zap.String("promo_id", promoID))
	return nil
}

func (s *promoService) publishPromoChange(ctx context.Context, action string, promo *entity.PromoCode) {
	event := events.ChangeEvent{
		Table:    events.TablePromos,
		Action:   action,
		EntityID: promo.ID.String(),
		Payload: map[string]any{
			"code":   promo.Code,
			"active": promo.Active,
		},
	}
	if err := s.producer.Publish(ctx, event); err != nil {
		s.log.Warn("Failed to publish promo change event",
			zap.Error(err), zap.String("promo_id", promo.ID.String()))
	}
}
