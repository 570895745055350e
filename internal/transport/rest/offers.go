package rest

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
)

// uploadField is the multipart field staged files arrive in.
const uploadField = "files"

// multipartMemory is how much of a form is buffered in memory before
// spilling to temporary files.
const multipartMemory = 8 << 20

// OffersHandler serves the offers step.
type OffersHandler struct {
	store          sessionGetter
	maxUploadBytes int64
	log            *slog.Logger
}

// NewOffersHandler creates an OffersHandler. maxUploadBytes caps a single
// upload request.
func NewOffersHandler(store sessionGetter, maxUploadBytes int64, logger *slog.Logger) *OffersHandler {
	return &OffersHandler{store: store, maxUploadBytes: maxUploadBytes, log: logger.With("handler", "offers")}
}

type uploadResponse struct {
	Accepted int            `json:"accepted"`
	Rejected int            `json:"rejected"`
	Files    []fileResponse `json:"files"`
}

// List handles GET /api/offers.
func (h *OffersHandler) List(w http.ResponseWriter, r *http.Request) {
	s, err := currentSession(h.store, r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	snap := s.Snapshot()
	writeJSON(w, http.StatusOK, toOffersResponse(snap.Offers, snap.Files))
}

// Toggle handles POST /api/offers/{offerID}/toggle.
func (h *OffersHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	s, err := currentSession(h.store, r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	sel, err := s.ToggleOffer(domain.OfferID(r.PathValue("offerID")))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOffersResponse(sel, s.Files()))
}

// Upload handles POST /api/offers/files. Non-PDF parts are counted as
// rejected and dropped.
func (h *OffersHandler) Upload(w http.ResponseWriter, r *http.Request) {
	s, err := currentSession(h.store, r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if h.maxUploadBytes > 0 {
		if r.ContentLength > h.maxUploadBytes {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", h.maxUploadBytes))
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit))
			return
		}
		handleError(h.log, w, r, domain.NewValidationError(uploadField, "invalid multipart form"))
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	headers := r.MultipartForm.File[uploadField]
	if len(headers) == 0 {
		handleError(h.log, w, r, domain.NewValidationError(uploadField, "required"))
		return
	}

	files := make([]domain.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		f, err := readUpload(fh)
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}
		files = append(files, f)
	}

	accepted, rejected, err := s.AddFiles(files)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	h.log.InfoContext(r.Context(), "files staged",
		slog.Int("accepted", accepted),
		slog.Int("rejected", rejected),
	)

	writeJSON(w, http.StatusOK, uploadResponse{
		Accepted: accepted,
		Rejected: rejected,
		Files:    toFilesResponse(s.Files()),
	})
}

func readUpload(fh *multipart.FileHeader) (domain.UploadedFile, error) {
	src, err := fh.Open()
	if err != nil {
		return domain.UploadedFile{}, fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return domain.UploadedFile{}, fmt.Errorf("read upload %q: %w", fh.Filename, err)
	}

	return domain.UploadedFile{
		ID:          uuid.New(),
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: strings.TrimSpace(fh.Header.Get("Content-Type")),
		Data:        data,
	}, nil
}

// RemoveFile handles DELETE /api/offers/files/{index}.
func (h *OffersHandler) RemoveFile(w http.ResponseWriter, r *http.Request) {
	s, err := currentSession(h.store, r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	i, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		handleError(h.log, w, r, domain.NewValidationError("index", "must be an integer"))
		return
	}

	if err := s.RemoveFile(i); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOffersResponse(s.Snapshot().Offers, s.Files()))
}

// Continue handles POST /api/offers/continue.
func (h *OffersHandler) Continue(w http.ResponseWriter, r *http.Request) {
	s, err := currentSession(h.store, r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if _, err := s.ContinueToTopics(); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stepResponse{Step: s.Step().String()})
}
