package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/jobcard-management/internal/auth"
	"github.com/frahmantamala/jobcard-management/internal/exporter"
	"github.com/frahmantamala/jobcard-management/internal/jobcard"
	"github.com/frahmantamala/jobcard-management/internal/pricing"
	"github.com/frahmantamala/jobcard-management/internal/transport/middleware"
	"github.com/frahmantamala/jobcard-management/internal/transport/swagger"
	"github.com/frahmantamala/jobcard-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	Auth     *auth.Handler
	User     *user.Handler
	JobCard  *jobcard.Handler
	Pricing  *pricing.Handler
	Exporter *exporter.Handler
}

// RegisterAllRoutes declares the route table. Protected routes state
// policy through the composer (entity type + roles) or a permission key;
// the mechanism lives in the middleware package.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	handlers Handlers,
	composer *middleware.Composer,
	permissions *auth.PermissionValidator,
	allowedOrigins string,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORSWithOrigins(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", handlers.Auth.Login)
			sr.Post("/logout", handlers.Auth.Logout)
		})

		// Public price board (no auth required)
		r.Get("/prices", handlers.Pricing.GetPrices)

		// Protected routes: authenticated by the guard, mutations audited.
		r.Group(func(pr chi.Router) {
			pr.Use(composer.Guard.RequireAuth())

			pr.Get("/users/me", handlers.User.GetCurrentUser)

			pr.Route("/jobcards", func(jr chi.Router) {
				jr.Get("/", handlers.JobCard.GetJobCards)
				jr.Get("/{id}", handlers.JobCard.GetJobCard)

				jr.Group(func(cr chi.Router) {
					cr.Use(composer.Trail.RecordAudit("jobcard"))
					cr.Post("/", handlers.JobCard.CreateJobCard)
					cr.Patch("/{id}", handlers.JobCard.UpdateJobCard)
					cr.Patch("/{id}/submit", handlers.JobCard.SubmitJobCard)
				})

				// Approval queue and decisions are permission-gated.
				jr.Group(func(mr chi.Router) {
					mr.Use(middleware.RequirePermission(permissions, auth.PermissionPendingApprovals))
					mr.Get("/pending-approvals", handlers.JobCard.GetPendingApprovals)
				})

				jr.Group(func(mr chi.Router) {
					mr.Use(middleware.RequirePermission(permissions, auth.PermissionJobCardApprove))
					mr.Use(composer.Trail.RecordAudit("jobcard"))
					mr.Patch("/{id}/approve", handlers.JobCard.ApproveJobCard)
					mr.Patch("/{id}/reject", handlers.JobCard.RejectJobCard)
				})
			})
		})

		// Exporter management: policy declared through the composer.
		r.Route("/exporters", func(er chi.Router) {
			er.With(composer.Guard.RequireAuth()).Get("/", handlers.Exporter.GetExporters)
			er.With(composer.Guard.RequireAuth()).Get("/{id}", handlers.Exporter.GetExporter)

			er.Group(func(mr chi.Router) {
				mr.Use(composer.Protect("exporter", auth.RoleAdmin, auth.RoleManager))
				mr.Post("/", handlers.Exporter.CreateExporter)
				mr.Patch("/{id}", handlers.Exporter.UpdateExporter)
			})
		})

		// Price uploads require the price-upload permission and are audited.
		r.Group(func(mr chi.Router) {
			mr.Use(middleware.RequirePermission(permissions, auth.PermissionPriceUpload))
			mr.Use(composer.Trail.RecordAudit("price"))
			mr.Post("/prices", handlers.Pricing.UpsertPrice)
		})
	})
}
