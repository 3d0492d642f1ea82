package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/storage"
)

// mediaHandler exposes read-only introspection of the object store:
// per-file stat and per-folder listing for the admin console.
type mediaHandler struct {
	responder Responder
	logger    zerolog.Logger
	files     *storage.Gateway
}

func newMediaHandler(files *storage.Gateway, development bool) mediaHandler {
	logger := log.With().Str("handlerName", "mediaHandler").Logger()

	return mediaHandler{
		responder: NewResponder(logger, development),
		logger:    logger,
		files:     files,
	}
}

func validFolder(folder string) bool {
	for _, f := range storage.CandidateFolders {
		if f == folder {
			return true
		}
	}
	return false
}

func (h mediaHandler) statFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		folder := chi.URLParam(r, "folder")
		filename := chi.URLParam(r, "filename")
		if !validFolder(folder) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("folder", "unknown folder"))
			return
		}
		if filename == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing filename"))
			return
		}

		info, err := h.files.Stat(r.Context(), folder+"/"+filename)
		if err != nil {
			if errs.IsObjectNotFoundError(err) {
				h.responder.WriteError(w, errs.NewObjectNotFoundError(filename))
			} else {
				h.responder.WriteError(w, errs.NewStorageError("stat", err))
			}
			return
		}

		h.responder.WriteJSON(w, info)
	}
}

func (h mediaHandler) listFolder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		folder := chi.URLParam(r, "folder")
		if !validFolder(folder) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("folder", "unknown folder"))
			return
		}

		objects, err := h.files.List(r.Context(), folder)
		if err != nil {
			h.responder.WriteError(w, errs.NewStorageError("list", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"folder": folder,
			"files":  objects,
			"count":  len(objects),
		})
	}
}
