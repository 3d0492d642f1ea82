package api

import (
	"time"

	"github.com/rpupo63/portfolio-site-backend/auth"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/storage"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(cfg *config.Config, db database.Database, files *storage.Gateway, startupTime time.Time) *routeHandlers {
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTokenExpiry, cfg.RefreshTokenExpiry)
	development := cfg.IsDevelopment()

	return &routeHandlers{
		tokens:          tokens,
		authHandler:     newAuthHandler(tokens, db.UserRepo(), development),
		projectHandler:  newProjectHandler(db.ProjectRepo(), files, development),
		settingsHandler: newSettingsHandler(db.SettingsRepo(), development),
		uploadHandler:   newUploadHandler(files, development),
		mediaHandler:    newMediaHandler(files, development),
		healthHandler:   newHealthHandler(cfg, startupTime, development),
	}
}
