package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/config"
)

type healthHandler struct {
	responder   Responder
	environment string
	port        string
	startupTime time.Time
}

func newHealthHandler(cfg *config.Config, startupTime time.Time, development bool) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger, development),
		environment: cfg.Environment,
		port:        cfg.Port,
		startupTime: startupTime,
	}
}

func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]any{
			"status":      "ok",
			"environment": h.environment,
			"port":        h.port,
			"uptime":      time.Since(h.startupTime).Round(time.Second).String(),
		})
	}
}
