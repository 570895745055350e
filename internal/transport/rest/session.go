package rest

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
	"github.com/heartmarshall/creatorcompass-backend/internal/service/wizard"
	"github.com/heartmarshall/creatorcompass-backend/pkg/ctxutil"
)

type sessionStore interface {
	Create(clientID string) *wizard.Session
	Get(id uuid.UUID) (*wizard.Session, error)
	Delete(id uuid.UUID) error
}

type sessionGetter interface {
	Get(id uuid.UUID) (*wizard.Session, error)
}

type tokenIssuer interface {
	Issue(sessionID uuid.UUID, clientID string) (string, error)
}

// currentSession resolves the session authenticated by the session
// middleware.
func currentSession(store sessionGetter, r *http.Request) (*wizard.Session, error) {
	id, ok := ctxutil.SessionIDFromCtx(r.Context())
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return store.Get(id)
}

// SessionHandler serves session lifecycle endpoints.
type SessionHandler struct {
	store  sessionStore
	tokens tokenIssuer
	log    *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(store sessionStore, tokens tokenIssuer, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{store: store, tokens: tokens, log: logger.With("handler", "session")}
}

type createSessionRequest struct {
	ClientID string `json:"clientId"`
}

type createSessionResponse struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
	ClientID  string `json:"clientId"`
	Step      string `json:"step"`
}

const maxClientIDLength = 128

// Create handles POST /api/sessions. The body is optional.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeOptionalJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if len(req.ClientID) > maxClientIDLength {
		handleError(h.log, w, r, domain.NewValidationError("clientId", "too long"))
		return
	}

	s := h.store.Create(req.ClientID)
	token, err := h.tokens.Issue(s.ID, s.ClientID)
	if err != nil {
		h.store.Delete(s.ID) //nolint:errcheck
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createSessionResponse{
		SessionID: s.ID.String(),
		Token:     token,
		ClientID:  s.ClientID,
		Step:      s.Step().String(),
	})
}

// Current handles GET /api/sessions/current.
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	s, err := currentSession(h.store, r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(s.Snapshot()))
}

// Delete handles DELETE /api/sessions/current.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ctxutil.SessionIDFromCtx(r.Context())
	if !ok {
		handleError(h.log, w, r, domain.ErrUnauthorized)
		return
	}
	if err := h.store.Delete(id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type refreshTokenResponse struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
}

// RefreshToken handles POST /api/sessions/current/token. It re-issues the
// token while the session is live so an active tab outlives the first one.
func (h *SessionHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	s, err := currentSession(h.store, r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	token, err := h.tokens.Issue(s.ID, s.ClientID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, refreshTokenResponse{SessionID: s.ID.String(), Token: token})
}

// Back handles POST /api/sessions/current/back.
func (h *SessionHandler) Back(w http.ResponseWriter, r *http.Request) {
	s, err := currentSession(h.store, r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stepResponse{Step: s.Back().String()})
}
