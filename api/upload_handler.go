package api

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/storage"
)

const maxMultipleFiles = 10

// uploadKind fixes the folder, size ceiling and permitted MIME types
// for one upload endpoint. The MIME check runs against sniffed content,
// not the client-supplied header.
type uploadKind struct {
	folder  string
	maxSize int64
	allowed []string
}

var (
	imageUpload = uploadKind{
		folder:  storage.FolderImages,
		maxSize: 10 << 20,
		allowed: []string{"image/jpeg", "image/png", "image/webp", "image/gif", "image/svg+xml"},
	}
	videoUpload = uploadKind{
		folder:  storage.FolderVideos,
		maxSize: 100 << 20,
		allowed: []string{"video/mp4", "video/webm", "video/quicktime"},
	}
	documentUpload = uploadKind{
		folder:  storage.FolderDocuments,
		maxSize: 25 << 20,
		allowed: []string{"application/pdf", "application/zip", "text/plain"},
	}
)

// UploadedFile is the API view of a freshly stored object, shaped so
// the admin console can turn it straight into a project media entry.
type UploadedFile struct {
	URL          string `json:"url"`
	StorageKey   string `json:"storageKey"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	ContentType  string `json:"contentType"`
	MediaType    string `json:"mediaType"`
}

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	files     *storage.Gateway
}

func newUploadHandler(files *storage.Gateway, development bool) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger, development),
		logger:    logger,
		files:     files,
	}
}

func (h uploadHandler) uploadImage() http.HandlerFunc {
	return h.uploadSingle(imageUpload)
}

func (h uploadHandler) uploadVideo() http.HandlerFunc {
	return h.uploadSingle(videoUpload)
}

func (h uploadHandler) uploadDocument() http.HandlerFunc {
	return h.uploadSingle(documentUpload)
}

func (h uploadHandler) uploadSingle(kind uploadKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, header, apiErr := readUploadedFile(w, r, "file", kind.maxSize)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		contentType, ok := sniffAllowed(content, kind.allowed)
		if !ok {
			h.responder.WriteError(w, errs.NewBadRequestError("Invalid file type"))
			return
		}

		result, err := h.files.Upload(r.Context(), content, header.Filename, contentType, kind.folder)
		if err != nil {
			h.responder.WriteError(w, errs.NewStorageError("upload", err))
			return
		}

		h.logger.Info().Str("key", result.Key).Int64("size", result.Size).Msg("file uploaded")
		h.responder.WriteJSONStatus(w, http.StatusCreated, map[string]any{
			"message": "File uploaded",
			"file":    toUploadedFile(result),
		})
	}
}

// uploadMultiple accepts up to ten files, routing each to its folder
// by sniffed MIME type. Every file is validated before any is stored,
// so a single bad file rejects the whole batch without orphan writes.
func (h uploadHandler) uploadMultiple() http.HandlerFunc {
	allAllowed := append(append(append([]string{}, imageUpload.allowed...), videoUpload.allowed...), documentUpload.allowed...)

	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, videoUpload.maxSize*maxMultipleFiles)
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			h.responder.WriteError(w, multipartParseError(err, videoUpload.maxSize*maxMultipleFiles))
			return
		}

		fileHeaders := r.MultipartForm.File["files"]
		if len(fileHeaders) == 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("files"))
			return
		}
		if len(fileHeaders) > maxMultipleFiles {
			h.responder.WriteError(w, errs.NewInvalidFieldError("files", "at most 10 files per request"))
			return
		}

		type pendingUpload struct {
			content     []byte
			name        string
			contentType string
			kind        uploadKind
		}

		pending := make([]pendingUpload, 0, len(fileHeaders))
		for _, header := range fileHeaders {
			content, apiErr := readMultipartFile(header)
			if apiErr != nil {
				h.responder.WriteError(w, apiErr)
				return
			}

			contentType, ok := sniffAllowed(content, allAllowed)
			if !ok {
				h.responder.WriteError(w, errs.NewBadRequestError("Invalid file type"))
				return
			}

			kind := kindForContentType(contentType)
			if int64(len(content)) > kind.maxSize {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(kind.maxSize))
				return
			}

			pending = append(pending, pendingUpload{content, header.Filename, contentType, kind})
		}

		uploaded := make([]UploadedFile, 0, len(pending))
		for _, p := range pending {
			result, err := h.files.Upload(r.Context(), p.content, p.name, p.contentType, p.kind.folder)
			if err != nil {
				h.responder.WriteError(w, errs.NewStorageError("upload", err))
				return
			}
			uploaded = append(uploaded, toUploadedFile(result))
		}

		h.logger.Info().Int("count", len(uploaded)).Msg("files uploaded")
		h.responder.WriteJSONStatus(w, http.StatusCreated, map[string]any{
			"message": "Files uploaded",
			"files":   uploaded,
		})
	}
}

func (h uploadHandler) deleteFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename := chi.URLParam(r, "filename")
		if filename == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing filename"))
			return
		}

		key, err := h.files.DeleteByFilename(r.Context(), filename)
		if err != nil {
			if errs.IsObjectNotFoundError(err) {
				h.responder.WriteError(w, errs.NewObjectNotFoundError(filename))
			} else {
				h.responder.WriteError(w, errs.NewStorageError("delete", err))
			}
			return
		}

		h.logger.Info().Str("key", key).Msg("file deleted")
		h.responder.WriteJSON(w, map[string]string{
			"message": "File deleted",
			"key":     key,
		})
	}
}

func (h uploadHandler) getFileURL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename := chi.URLParam(r, "filename")
		if filename == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing filename"))
			return
		}

		info, apiErr := h.statAcrossFolders(r, filename)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"filename": filename,
			"url":      h.files.PublicURL(info.Key),
		})
	}
}

func (h uploadHandler) getFileInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename := chi.URLParam(r, "filename")
		if filename == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing filename"))
			return
		}

		info, apiErr := h.statAcrossFolders(r, filename)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		h.responder.WriteJSON(w, info)
	}
}

// statAcrossFolders probes each candidate folder for a bare filename.
// Files uploaded through this API are addressed by their recorded
// storage key; this path exists for legacy names only.
func (h uploadHandler) statAcrossFolders(r *http.Request, filename string) (storage.ObjectInfo, *errs.ApiErr) {
	for _, folder := range storage.CandidateFolders {
		info, err := h.files.Stat(r.Context(), folder+"/"+filename)
		if err == nil {
			return info, nil
		}
		if !errs.IsObjectNotFoundError(err) {
			return storage.ObjectInfo{}, errs.NewStorageError("stat", err)
		}
	}
	return storage.ObjectInfo{}, errs.NewObjectNotFoundError(filename)
}

// readUploadedFile parses a single-file multipart form with a hard
// size ceiling, returning 413 when the body exceeds it.
func readUploadedFile(w http.ResponseWriter, r *http.Request, field string, maxSize int64) ([]byte, *multipart.FileHeader, *errs.ApiErr) {
	// Leave headroom for the multipart framing around the payload.
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+(1<<20))
	if err := r.ParseMultipartForm(maxSize); err != nil {
		return nil, nil, multipartParseError(err, maxSize)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil, errs.NewMissingRequiredFieldError(field)
	}
	defer file.Close()

	if header.Size > maxSize {
		return nil, nil, errs.NewMaxBodySizeExceededError(maxSize)
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, errs.NewMalformedPayloadError("multipart", err)
	}
	return content, header, nil
}

func readMultipartFile(header *multipart.FileHeader) ([]byte, *errs.ApiErr) {
	file, err := header.Open()
	if err != nil {
		return nil, errs.NewMalformedPayloadError("multipart", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, errs.NewMalformedPayloadError("multipart", err)
	}
	return content, nil
}

func multipartParseError(err error, maxSize int64) *errs.ApiErr {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return errs.NewMaxBodySizeExceededError(maxSize)
	}
	return errs.NewMalformedPayloadError("multipart", err)
}

// sniffAllowed detects the content type from the bytes themselves and
// reports whether it is in the permitted set.
func sniffAllowed(content []byte, allowed []string) (string, bool) {
	detected := mimetype.Detect(content)
	for _, a := range allowed {
		if detected.Is(a) {
			return a, true
		}
	}
	return detected.String(), false
}

func kindForContentType(contentType string) uploadKind {
	switch {
	case hasAllowed(imageUpload, contentType):
		return imageUpload
	case hasAllowed(videoUpload, contentType):
		return videoUpload
	default:
		return documentUpload
	}
}

func hasAllowed(kind uploadKind, contentType string) bool {
	for _, a := range kind.allowed {
		if a == contentType {
			return true
		}
	}
	return false
}

func toUploadedFile(result storage.UploadResult) UploadedFile {
	return UploadedFile{
		URL:          result.URL,
		StorageKey:   result.Key,
		OriginalName: result.OriginalName,
		Size:         result.Size,
		ContentType:  result.ContentType,
		MediaType:    mediaTypeFor(result.ContentType),
	}
}

// mediaTypeFor maps a MIME type onto the media-entry type used by
// project records.
func mediaTypeFor(contentType string) string {
	switch {
	case contentType == "image/gif":
		return models.MediaTypeGif
	case hasAllowed(videoUpload, contentType):
		return models.MediaTypeVideo
	case hasAllowed(imageUpload, contentType):
		return models.MediaTypeImage
	default:
		return ""
	}
}
