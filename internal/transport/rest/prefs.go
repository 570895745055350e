package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
	"github.com/heartmarshall/creatorcompass-backend/internal/service/prefs"
)

type prefsService interface {
	Find(ctx context.Context, in prefs.GetInput) (*domain.Preference, error)
	Set(ctx context.Context, in prefs.SetInput) (*domain.Preference, error)
}

// PrefsHandler serves the per-client preference store that the thumbnail
// flow reads from.
type PrefsHandler struct {
	svc prefsService
	log *slog.Logger
}

// NewPrefsHandler creates a PrefsHandler.
func NewPrefsHandler(svc prefsService, logger *slog.Logger) *PrefsHandler {
	return &PrefsHandler{svc: svc, log: logger.With("handler", "prefs")}
}

type prefRequest struct {
	Value string `json:"value"`
}

type prefResponse struct {
	ClientID  string    `json:"clientId"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toPrefResponse(p *domain.Preference) prefResponse {
	return prefResponse{ClientID: p.ClientID, Key: p.Key, Value: p.Value, UpdatedAt: p.UpdatedAt}
}

// Get handles GET /api/clients/{clientID}/prefs/{key}.
func (h *PrefsHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Find(r.Context(), prefs.GetInput{
		ClientID: r.PathValue("clientID"),
		Key:      r.PathValue("key"),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPrefResponse(p))
}

// Put handles PUT /api/clients/{clientID}/prefs/{key}.
func (h *PrefsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req prefRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	p, err := h.svc.Set(r.Context(), prefs.SetInput{
		ClientID: r.PathValue("clientID"),
		Key:      r.PathValue("key"),
		Value:    req.Value,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPrefResponse(p))
}
