package api

import (
	"github.com/rpupo63/portfolio-site-backend/auth"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	tokens          *auth.TokenService
	authHandler     authHandler
	projectHandler  projectHandler
	settingsHandler settingsHandler
	uploadHandler   uploadHandler
	mediaHandler    mediaHandler
	healthHandler   healthHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
	Cause   string `json:"cause,omitempty"`
}

// MessageResponse is a simple acknowledgement payload.
type MessageResponse struct {
	Message string `json:"message"`
}
