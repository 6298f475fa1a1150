package usecase

import (
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/cache"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/repository"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/events"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/gateway"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Car     CarService
	Booking BookingService
	Payment PaymentService
	Promo   PromoService
	License LicenseService
	Admin   AdminService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	redisCache *cache.RedisCache,
	producer *events.Producer,
	paymentGateway gateway.PaymentGateway,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		Car:     NewCarService(repo, redisCache, producer, log),
		Booking: NewBookingService(repo, config, redisCache, producer, paymentGateway, log),
		Payment: NewPaymentService(repo, paymentGateway, producer, log),
		Promo:   NewPromoService(repo, producer, log),
		License: NewLicenseService(repo, producer, log),
		Admin:   NewAdminService(repo, log),
	}
}
