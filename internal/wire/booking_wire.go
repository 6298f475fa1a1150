package wire

import (
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/adaptor"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/repository"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	paymentHandler *adaptor.PaymentHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/bookings/quote - Price a rental without committing
		r.Post("/api/bookings/quote", bookingHandler.Quote)

		// POST /api/bookings/hold - Place a hold on a car
		r.Post("/api/bookings/hold", bookingHandler.CreateHold)

		// POST /api/bookings/atomic - Single-shot availability check plus booking
		r.Post("/api/bookings/atomic", bookingHandler.BookCarAtomic)

		// GET /api/bookings/{id} - Booking details (owner or admin)
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)

		// GET /api/bookings/{id}/payments - Payments for a booking
		r.Get("/api/bookings/{id}/payments", paymentHandler.GetBookingPayments)

		// GET /api/user/bookings - Booking history
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)

		// PUT /api/bookings/{id}/cancel - Cancel own booking (admin may cancel any)
		r.Put("/api/bookings/{id}/cancel", bookingHandler.Cancel)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/bookings - All bookings
		r.Get("/", bookingHandler.ListAll)

		// PUT /api/admin/bookings/{id}/complete - Close out a finished rental
		r.Put("/{id}/complete", bookingHandler.Complete)
	})
}
