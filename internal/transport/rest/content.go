package rest

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
	"github.com/heartmarshall/creatorcompass-backend/internal/service/studio"
)

// ContentHandler serves the content step and its thumbnail sub-flow.
type ContentHandler struct {
	store sessionGetter
	log   *slog.Logger
}

// NewContentHandler creates a ContentHandler.
func NewContentHandler(store sessionGetter, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{store: store, log: logger.With("handler", "content")}
}

type tabRequest struct {
	Tab string `json:"tab"`
}

type exportResponse struct {
	Tab  string `json:"tab"`
	Text string `json:"text"`
}

func (h *ContentHandler) flow(w http.ResponseWriter, r *http.Request) (*studio.ContentFlow, bool) {
	s, err := currentSession(h.store, r)
	if err != nil {
		handleError(h.log, w, r, err)
		return nil, false
	}
	f, err := s.Content()
	if err != nil {
		handleError(h.log, w, r, err)
		return nil, false
	}
	return f, true
}

// Enter handles POST /api/content/{topicID}/enter.
func (h *ContentHandler) Enter(w http.ResponseWriter, r *http.Request) {
	s, err := currentSession(h.store, r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	f, err := s.EnterContent(r.PathValue("topicID"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toContentResponse(f.View()))
}

// View handles GET /api/content.
func (h *ContentHandler) View(w http.ResponseWriter, r *http.Request) {
	f, ok := h.flow(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toContentResponse(f.View()))
}

// SelectTab handles PUT /api/content/tab.
func (h *ContentHandler) SelectTab(w http.ResponseWriter, r *http.Request) {
	f, ok := h.flow(w, r)
	if !ok {
		return
	}

	var req tabRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := f.SelectTab(domain.Tab(req.Tab)); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toContentResponse(f.View()))
}

// RegenerateThumbnail handles POST /api/content/thumbnail/regenerate.
func (h *ContentHandler) RegenerateThumbnail(w http.ResponseWriter, r *http.Request) {
	f, ok := h.flow(w, r)
	if !ok {
		return
	}
	if err := f.RegenerateThumbnail(); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, toContentResponse(f.View()))
}

// Export handles GET /api/content/export?action=copy|download. Downloading
// the thumbnail tab redirects to the image.
func (h *ContentHandler) Export(w http.ResponseWriter, r *http.Request) {
	f, ok := h.flow(w, r)
	if !ok {
		return
	}

	res, err := f.Export(studio.ExportInput{Action: studio.ExportAction(r.URL.Query().Get("action"))})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	switch {
	case res.RedirectURL != "":
		http.Redirect(w, r, res.RedirectURL, http.StatusFound)
	case res.Filename != "":
		w.Header().Set("Content-Type", res.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(res.Text)) //nolint:errcheck
	default:
		writeJSON(w, http.StatusOK, exportResponse{Tab: res.Tab.String(), Text: res.Text})
	}
}
