package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

type settingsHandler struct {
	responder    Responder
	logger       zerolog.Logger
	settingsRepo *database.SettingsRepo
}

func newSettingsHandler(settingsRepo *database.SettingsRepo, development bool) settingsHandler {
	logger := log.With().Str("handlerName", "settingsHandler").Logger()

	return settingsHandler{
		responder:    NewResponder(logger, development),
		logger:       logger,
		settingsRepo: settingsRepo,
	}
}

func (h settingsHandler) getSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := h.settingsRepo.Get()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("read", "settings", err))
			return
		}
		h.responder.WriteJSON(w, settings)
	}
}

func (h settingsHandler) getStudio() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := h.settingsRepo.Get()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("read", "settings", err))
			return
		}
		h.responder.WriteJSON(w, settings.Studio)
	}
}

func (h settingsHandler) getContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := h.settingsRepo.Get()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("read", "settings", err))
			return
		}
		h.responder.WriteJSON(w, settings.Contact)
	}
}

// updateSettings applies a shallow merge: a supplied sub-document
// replaces the stored one wholesale, an absent one is retained.
func (h settingsHandler) updateSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch database.SettingsPatch
		if err := decodeAndValidate(r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		settings, err := h.settingsRepo.Update(patch)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update", "settings", err))
			return
		}

		h.logger.Info().Msg("settings updated")
		h.responder.WriteJSON(w, settings)
	}
}

func (h settingsHandler) updateStudio() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var studio models.StudioSettings
		if err := decodeAndValidate(r, &studio); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		settings, err := h.settingsRepo.UpdateStudio(studio)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update", "studio settings", err))
			return
		}

		h.responder.WriteJSON(w, settings.Studio)
	}
}

func (h settingsHandler) updateContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var contact models.ContactSettings
		if err := decodeAndValidate(r, &contact); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		settings, err := h.settingsRepo.UpdateContact(contact)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update", "contact settings", err))
			return
		}

		h.responder.WriteJSON(w, settings.Contact)
	}
}
