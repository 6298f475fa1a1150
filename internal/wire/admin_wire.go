package wire

import (
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/adaptor"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/repository"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== ADMIN-ONLY ROUTES ====================
	// Staff management and finance are off limits to staff accounts.
	r.Route("/api/admin/users", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.AdminOnly(log))

		// GET /api/admin/users?role=customer - Users by role
		r.Get("/", adminHandler.ListUsers)

		// POST /api/admin/users - Create a staff or admin account
		r.Post("/", adminHandler.CreateStaff)

		// PUT /api/admin/users/{id} - Update user details or role
		r.Put("/{id}", adminHandler.UpdateUser)

		// PUT /api/admin/users/{id}/suspend - Suspend or reinstate an account
		r.Put("/{id}/suspend", adminHandler.SuspendUser)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.AdminOnly(log))

		// GET /api/admin/finance?from=2026-01-01&to=2026-01-31 - Revenue summary
		r.Get("/api/admin/finance", adminHandler.FinanceSummary)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/audit - Recent audit trail
		r.Get("/api/admin/audit", adminHandler.RecentAudit)
	})
}
