package repository

import (
	"github.com/vinaykumaredara/azure-drive-hub-sub001/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Session     SessionRepository
	Car         CarRepository
	Booking     BookingRepository
	Payment     PaymentRepository
	Promo       PromoRepository
	License     LicenseRepository
	Maintenance MaintenanceRepository
	Audit       AuditRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Session:     NewSessionRepository(db, log),
		Car:         NewCarRepository(db, log),
		Booking:     NewBookingRepository(db, log),
		Payment:     NewPaymentRepository(db, log),
		Promo:       NewPromoRepository(db, log),
		License:     NewLicenseRepository(db, log),
		Maintenance: NewMaintenanceRepository(db, log),
		Audit:       NewAuditRepository(db, log),
	}
}
