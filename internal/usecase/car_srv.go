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

type CarService interface {
	// Public endpoints
	ListPublished(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CarResponse], error)
	GetCar(ctx context.Context, carID string) (*response.CarResponse, error)

	// Admin endpoints
	ListAll(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CarResponse], error)
	CreateCar(ctx context.Context, req *request.CreateCarRequest) (*response.CarResponse, error)
	UpdateCar(ctx context.Context, carID string, req *request.UpdateCarRequest) (*response.CarResponse, error)
	DeleteCar(ctx context.Context, carID string) error

	// Maintenance
	ScheduleMaintenance(ctx context.Context, req *request.CreateMaintenanceRequest) (*response.MaintenanceResponse, error)
	CompleteMaintenance(ctx context.Context, maintenanceID string) error
	ListOpenMaintenance(ctx context.Context, req *request.PaginatedRequest) ([]response.MaintenanceResponse, error)
}

type carService struct {
	repo     *repository.Repository
	cache    Cache
	producer Publisher
	log      *zap.Logger
}

func NewCarService(
	repo *repository.Repository,
	redisCache Cache,
	producer Publisher,
	log *zap.Logger,
) CarService {
	return &carService{
		repo:     repo,
		cache:    redisCache,
		producer: producer,
		log:      log.With(zap.String("service", "car")),
	}
}

func (s *carService) ListPublished(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CarResponse], error) {
	// First page comes from cache when warm; deeper pages always hit the DB.
	if req.Page <= 1 {
		cached, err := s.cache.GetPublishedCars(ctx)
		if err != nil {
			s.log.Warn("Published cars cache read failed", zap.Error(err))
		}
		if len(cached) > 0 && len(cached) <= req.Limit() {
			total, err := s.repo.Car.CountPublished(ctx)
			if err == nil {
				return response.NewPaginatedResponse(response.CarsToResponse(cached), 1, req.Limit(), total), nil
			}
		}
	}

	cars, err := s.repo.Car.FindPublished(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list published cars", zap.Error(err))
		return nil, fmt.Errorf("list published cars: %w", err)
	}

	total, err := s.repo.Car.CountPublished(ctx)
	if err != nil {
		s.log.Error("Failed to count published cars", zap.Error(err))
		return nil, fmt.Errorf("count published cars: %w", err)
	}

	if req.Page <= 1 {
		if err := s.cache.SetPublishedCars(ctx, cars); err != nil {
			s.log.Warn("Published cars cache write failed", zap.Error(err))
		}
	}

	return response.NewPaginatedResponse(response.CarsToResponse(cars), req.Page, req.PerPage, total), nil
}

func (s *carService) GetCar(ctx context.Context, carID string) (*response.CarResponse, error) {
	id, err := utils.ParseUUID(carID)
	if err != nil {
		return nil, fmt.Errorf("invalid car ID format %s: %w", carID, err)
	}

	car, err := s.repo.Car.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get car", zap.Error(err), zap.String("car_id", carID))
		return nil, fmt.Errorf("get car: %w", err)
	}
	if car == nil {
		return nil, fmt.Errorf("car %s not found", carID)
	}

	resp := response.CarToResponse(car)
	return &resp, nil
}

// ==================== ADMIN METHODS ====================

func (s *carService) ListAll(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CarResponse], error) {
	cars, err := s.repo.Car.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list cars", zap.Error(err))
		return nil, fmt.Errorf("list cars: %w", err)
	}

	total, err := s.repo.Car.Count(ctx)
	if err != nil {
		s.log.Error("Failed to count cars", zap.Error(err))
		return nil, fmt.Errorf("count cars: %w", err)
	}

	return response.NewPaginatedResponse(response.CarsToResponse(cars), req.Page, req.PerPage, total), nil
}

func (s *carService) CreateCar(ctx context.Context, req *request.CreateCarRequest) (*response.CarResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create car validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	car := &entity.Car{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		Seats:        req.Seats,
		Fuel:         req.Fuel,
		Transmission: req.Transmission,
		PricePerDay:  req.PricePerDay,
		PricePerHour: req.PricePerHour,
		Status:       entity.CarStatusActive,
		ImageURLs:    req.ImageURLs,
	}

	if err := s.repo.Car.Create(ctx, car); err != nil {
		s.log.Error("Failed to create car", zap.Error(err))
		return nil, fmt.Errorf("create car: %w", err)
	}

	s.invalidateAndPublish(ctx, events.ActionInsert, car)

	s.log.Info("Car created",
		zap.String("car_id", car.ID.String()),
		zap.String("make", car.Make),
		zap.String("model", car.Model))

	resp := response.CarToResponse(car)
	return &resp, nil
}

func (s *carService) UpdateCar(ctx context.Context, carID string, req *request.UpdateCarRequest) (*response.CarResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update car validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := utils.ParseUUID(carID)
	if err != nil {
		return nil, fmt.Errorf("invalid car ID format %s: %w", carID, err)
	}

	car, err := s.repo.Car.FindByID(ctx, id)
	if err != nil || car == nil {
		return nil, fmt.Errorf("car %s not found", carID)
	}

	if req.Make != nil {
		car.Make = *req.Make
	}
	if req.Model != nil {
		car.Model = *req.Model
	}
	if req.Year != nil {
		car.Year = *req.Year
	}
	if req.Seats != nil {
		car.Seats = *req.Seats
	}
	if req.Fuel != nil {
		car.Fuel = *req.Fuel
	}
	if req.Transmission != nil {
		car.Transmission = *req.Transmission
	}
	if req.PricePerDay != nil {
		car.PricePerDay = *req.PricePerDay
	}
	if req.PricePerHour != nil {
		car.PricePerHour = *req.PricePerHour
	}
	if req.Status != nil {
		car.Status = entity.CarStatus(*req.Status)
	}
	if req.ImageURLs != nil {
		car.ImageURLs = req.ImageURLs
	}
	car.UpdatedAt = time.Now()

	if err := s.repo.Car.Update(ctx, car); err != nil {
		s.log.Error("Failed to update car", zap.Error(err), zap.String("car_id", carID))
		return nil, fmt.Errorf("update car %s: %w", carID, err)
	}

	s.invalidateAndPublish(ctx, events.ActionUpdate, car)

	s.log.Info("Car updated", zap.String("car_id", carID))

	resp := response.CarToResponse(car)
	return &resp, nil
}

func (s *carService) DeleteCar(ctx context.Context, carID string) error {
	id, err := utils.ParseUUID(carID)
	if err != nil {
		return fmt.Errorf("invalid car ID format %s: %w", carID, err)
	}

	car, err := s.repo.Car.FindByID(ctx, id)
	if err != nil || car == nil {
		return fmt.Errorf("car %s not found", carID)
	}

	if err := s.repo.Car.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete car", zap.Error(err), zap.String("car_id", carID))
		return fmt.Errorf("delete car %s: %w", carID, err)
	}

	s.invalidateAndPublish(ctx, events.ActionDelete, car)

	s.log.Info("Car deleted", zap.String("car_id", carID))
	return nil
}

// ==================== MAINTENANCE ====================

func (s *carService) ScheduleMaintenance(ctx context.Context, req *request.CreateMaintenanceRequest) (*response.MaintenanceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	carID, err := utils.ParseUUID(req.CarID)
	if err != nil {
		return nil, fmt.Errorf("invalid car ID format %s: %w", req.CarID, err)
	}

	car, err := s.repo.Car.FindByID(ctx, carID)
	if err != nil || car == nil {
		return nil, fmt.Errorf("car %s not found", req.CarID)
	}

	now := time.Now()
	record := &entity.Maintenance{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CarID:   carID,
		Note:    req.Note,
		StartAt: now,
	}

	if err := s.repo.Maintenance.Create(ctx, record); err != nil {
		s.log.Error("Failed to create maintenance", zap.Error(err), zap.String("car_id", req.CarID))
		return nil, fmt.Errorf("create maintenance: %w", err)
	}

	// Take the car out of circulation while it is in the shop.
	if err := s.repo.Car.UpdateStatus(ctx, carID, entity.CarStatusMaintenance); err != nil {
		s.log.Error("Failed to move car into maintenance",
			zap.Error(err), zap.String("car_id", req.CarID))
		return nil, fmt.Errorf("set car %s maintenance status: %w", req.CarID, err)
	}

	car.Status = entity.CarStatusMaintenance
	s.invalidateAndPublish(ctx, events.ActionUpdate, car)

	s.log.Info("Maintenance scheduled",
		zap.String("maintenance_id", record.ID.String()),
		zap.String("car_id", req.CarID))

	resp := response.MaintenanceToResponse(record)
	return &resp, nil
}

func (s *carService) CompleteMaintenance(ctx context.Context, maintenanceID string) error {
	id, err := utils.ParseUUID(maintenanceID)
	if err != nil {
		return fmt.Errorf("invalid maintenance ID format %s: %w", maintenanceID, err)
	}

	record, err := s.repo.Maintenance.FindByID(ctx, id)
	if err != nil || record == nil {
		return fmt.Errorf("maintenance %s not found", maintenanceID)
	}
	if record.Done {
		return fmt.Errorf("maintenance %s already done", maintenanceID)
	}

	if err := s.repo.Maintenance.MarkDone(ctx, id); err != nil {
		s.log.Error("Failed to complete maintenance", zap.Error(err), zap.String("maintenance_id", maintenanceID))
		return fmt.Errorf("complete maintenance %s: %w", maintenanceID, err)
	}

	// The car only goes back into circulation once nothing else is open on it.
	history, err := s.repo.Maintenance.FindByCarID(ctx, record.CarID)
	if err == nil {
		stillOpen := false
		for _, rec := range history {
			if !rec.Done && rec.ID != record.ID {
				stillOpen = true
				break
			}
		}
		if !stillOpen {
			if err := s.repo.Car.UpdateStatus(ctx, record.CarID, entity.CarStatusActive); err != nil {
				s.log.Warn("Failed to reactivate car after maintenance",
					zap.Error(err), zap.String("car_id", record.CarID.String()))
			} else if car, err := s.repo.Car.FindByID(ctx, record.CarID); err == nil && car != nil {
				s.invalidateAndPublish(ctx, events.ActionUpdate, car)
			}
		}
	}

	s.log.Info("Maintenance completed", zap.String("maintenance_id", maintenanceID))
	return nil
}

func (s *carService) ListOpenMaintenance(ctx context.Context, req *request.PaginatedRequest) ([]response.MaintenanceResponse, error) {
	records, err := s.repo.Maintenance.FindOpen(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list open maintenance", zap.Error(err))
		return nil, fmt.Errorf("list open maintenance: %w", err)
	}

	out := make([]response.MaintenanceResponse, 0, len(records))
	for _, record := range records {
		out = append(out, response.MaintenanceToResponse(record))
	}
	return out, nil
}

func (s *carService) invalidateAndPublish(ctx context.Context, action string, car *entity.Car) {
	if err := s.cache.InvalidatePublishedCars(ctx); err != nil {
		s.log.Warn("Failed to invalidate published cars cache", zap.Error(err))
	}

	event := events.ChangeEvent{
		Table:    events.TableCars,
		Action:   action,
		EntityID: car.ID.String(),
		Payload: map[string]any{
			"make":   car.Make,
			"model":  car.Model,
			"status": string(car.Status),
		},
	}
	if err := s.producer.Publish(ctx, event); err != nil {
		s.log.Warn("Failed to publish car change event",
			zap.Error(err), zap.String("car_id", car.ID.String()))
	}
}
