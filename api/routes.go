package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the REST surface under /api. Listing and settings
// reads are public; every mutation requires an authenticated admin.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/api", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/health", handlers.healthHandler.health())

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", handlers.authHandler.login())
			r.Post("/refresh", handlers.authHandler.refresh())
			r.Post("/logout", handlers.authHandler.logout())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)
				r.Get("/me", handlers.authHandler.me())
				r.Get("/verify", handlers.authHandler.verify())
			})
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", handlers.projectHandler.listProjects())
			r.Get("/categories", handlers.projectHandler.getCategories())
			r.Get("/{projectID}", handlers.projectHandler.getProject())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)
				r.Use(authMiddleware.requireAdmin)
				r.Get("/admin/all", handlers.projectHandler.listAllProjects())
				r.Post("/", handlers.projectHandler.createProject())
				r.Put("/{projectID}", handlers.projectHandler.updateProject())
				r.Delete("/{projectID}", handlers.projectHandler.deleteProject())
			})
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", handlers.settingsHandler.getSettings())
			r.Get("/studio", handlers.settingsHandler.getStudio())
			r.Get("/contact", handlers.settingsHandler.getContact())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)
				r.Use(authMiddleware.requireAdmin)
				r.Put("/", handlers.settingsHandler.updateSettings())
				r.Put("/studio", handlers.settingsHandler.updateStudio())
				r.Put("/contact", handlers.settingsHandler.updateContact())
			})
		})

		r.Route("/uploads", func(r chi.Router) {
			r.Get("/url/{filename}", handlers.uploadHandler.getFileURL())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)
				r.Use(authMiddleware.requireAdmin)
				r.Post("/image", handlers.uploadHandler.uploadImage())
				r.Post("/video", handlers.uploadHandler.uploadVideo())
				r.Post("/document", handlers.uploadHandler.uploadDocument())
				r.Post("/multiple", handlers.uploadHandler.uploadMultiple())
				r.Delete("/{filename}", handlers.uploadHandler.deleteFile())
				r.Get("/info/{filename}", handlers.uploadHandler.getFileInfo())
			})
		})

		r.Route("/media", func(r chi.Router) {
			r.Use(authMiddleware.authenticate)
			r.Use(authMiddleware.requireAdmin)
			r.Get("/file/{folder}/{filename}", handlers.mediaHandler.statFile())
			r.Get("/list/{folder}", handlers.mediaHandler.listFolder())
		})
	})
}
