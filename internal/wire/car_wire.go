package wire

import (
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/adaptor"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/repository"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCar(
	r chi.Router,
	carHandler *adaptor.CarHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/cars - Browse published cars
	r.Get("/api/cars", carHandler.ListPublished)

	// GET /api/cars/{id} - Car details
	r.Get("/api/cars/{id}", carHandler.GetCar)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/cars", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/cars - Full fleet, any status
		r.Get("/", carHandler.ListAll)

		// POST /api/admin/cars - Add a car to the fleet
		r.Post("/", carHandler.CreateCar)

		// PUT /api/admin/cars/{id} - Update car details or status
		r.Put("/{id}", carHandler.UpdateCar)

		// DELETE /api/admin/cars/{id} - Retire a car
		r.Delete("/{id}", carHandler.DeleteCar)
	})

	r.Route("/api/admin/maintenance", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/maintenance - Open maintenance records
		r.Get("/", carHandler.ListOpenMaintenance)

		// POST /api/admin/maintenance - Take a car off the road
		r.Post("/", carHandler.ScheduleMaintenance)

		// PUT /api/admin/maintenance/{id}/done - Close a maintenance record
		r.Put("/{id}/done", carHandler.CompleteMaintenance)
	})
}
