package wire

import (
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/adaptor"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/repository"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePromo(
	r chi.Router,
	promoHandler *adaptor.PromoHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/promos/validate - Check a code against an amount
	r.Post("/api/promos/validate", promoHandler.Validate)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/promos", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/promos - All promo codes
		r.Get("/", promoHandler.ListAll)

		// POST /api/admin/promos - Create a promo code
		r.Post("/", promoHandler.Create)

		// PUT /api/admin/promos/{id} - Update a promo code
		r.Put("/{id}", promoHandler.Update)

		// DELETE /api/admin/promos/{id} - Remove a promo code
		r.Delete("/{id}", promoHandler.Delete)
	})
}
