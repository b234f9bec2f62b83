package upload

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/layers/service/internal/middleware"
	"github.com/layers/service/internal/response"
)

// Handler holds HTTP handlers for the upload endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new upload Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// UploadFile godoc
//
//	@Summary		Upload a file
//	@Description	Accepts a single multipart file and stores it unmodified under a random key. The original filename is preserved in the object's Content-Disposition header.
//	@Tags			upload
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			file	formData	file	true	"File to upload (request body capped at 12 MB)"
//	@Success		200		{object}	response.Envelope
//	@Failure		400		{object}	response.Envelope	"NoFilePassed"
//	@Failure		403		{object}	response.Envelope	"TokenNotProvided / InvalidToken"
//	@Failure		500		{object}	response.Envelope
//	@Router			/upload/file [post]
func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		response.Fail(w, http.StatusForbidden, "TokenNotProvided")
		return
	}

	part, err := firstFilePart(r)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, "NoFilePassed")
		return
	}
	defer part.Close()

	id, err := h.svc.StoreFile(r.Context(), claims.Subject, part.FileName(), partMimetype(part), part)
	if err != nil {
		log.Printf("upload file: %v", err)
		response.InternalError(w)
		return
	}

	response.OK(w, id)
}

// UploadAvatar godoc
//
//	@Summary		Upload an avatar image
//	@Description	Accepts a single multipart image, resizes it to 500×500, re-encodes it as JPEG, and stores it under a random key. Missing or non-image parts are reported in a 200 body. AVIF and APNG pass the type gate but cannot currently be decoded and fail with a server error.
//	@Tags			upload
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			file	formData	file	true	"Image to upload (apng, avif, gif, jpeg, png, or webp; request body capped at 12 MB)"
//	@Success		200		{object}	response.Envelope	"ok:false carries NoImagePassed or InvalidMimetype"
//	@Failure		403		{object}	response.Envelope	"TokenNotProvided / InvalidToken"
//	@Failure		500		{object}	response.Envelope
//	@Router			/upload/avatar [post]
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		response.Fail(w, http.StatusForbidden, "TokenNotProvided")
		return
	}

	part, err := firstFilePart(r)
	if err != nil {
		// The avatar endpoint reports a missing part in a 200 body,
		// unlike the file endpoint's 400.
		response.Fail(w, http.StatusOK, "NoImagePassed")
		return
	}
	defer part.Close()

	id, err := h.svc.StoreAvatar(r.Context(), claims.Subject, partMimetype(part), part)
	if errors.Is(err, ErrInvalidMimetype) {
		response.Fail(w, http.StatusOK, "InvalidMimetype")
		return
	}
	if err != nil {
		log.Printf("upload avatar: %v", err)
		response.InternalError(w)
		return
	}

	response.OK(w, id)
}

// firstFilePart streams through the multipart body and returns the first
// part carrying a filename. Later parts are never read.
func firstFilePart(r *http.Request) (*multipart.Part, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, err
	}
	for {
		part, err := mr.NextPart()
		if err != nil {
			// io.EOF: the body held no file part.
			return nil, err
		}
		if part.FileName() != "" {
			return part, nil
		}
	}
}

// partMimetype returns the part's declared content type.
func partMimetype(part *multipart.Part) string {
	if ct := part.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
