package wire

import (
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/adaptor"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/repository"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireLicense(
	r chi.Router,
	licenseHandler *adaptor.LicenseHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/licenses - Submit a driving license for verification
		r.Post("/api/licenses", licenseHandler.Submit)

		// GET /api/licenses - Own submitted licenses
		r.Get("/api/licenses", licenseHandler.MyLicenses)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/licenses", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/licenses - Pending verification queue
		r.Get("/", licenseHandler.ListPending)

		// PUT /api/admin/licenses/{id}/review - Verify or reject a license
		r.Put("/{id}/review", licenseHandler.Review)
	})
}
