package middleware

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/creatorcompass-backend/pkg/ctxutil"
)

// SessionTokenHeader is the alternative to an Authorization bearer token.
const SessionTokenHeader = "X-Session-Token"

type tokenValidator interface {
	Validate(token string) (uuid.UUID, error)
}

// SessionAuth requires a valid session token and stores the session id in
// the request context. Requests without one are rejected with 401.
func SessionAuth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractSessionToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "session token required")
				return
			}

			sessionID, err := validator.Validate(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid session token")
				return
			}

			if h := sessionHolderFromCtx(r.Context()); h != nil {
				h.set(sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctxutil.WithSessionID(r.Context(), sessionID)))
		})
	}
}

func extractSessionToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return strings.TrimSpace(r.Header.Get(SessionTokenHeader))
}

// sessionHolder lets the outer Logger see the session id resolved further in.
type sessionHolder struct {
	mu sync.Mutex
	id uuid.UUID
}

func (h *sessionHolder) set(id uuid.UUID) {
	h.mu.Lock()
	h.id = id
	h.mu.Unlock()
}

func (h *sessionHolder) get() (uuid.UUID, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.id, h.id != uuid.Nil
}

type holderKey struct{}

func withSessionHolder(ctx context.Context, h *sessionHolder) context.Context {
	return context.WithValue(ctx, holderKey{}, h)
}

func sessionHolderFromCtx(ctx context.Context) *sessionHolder {
	h, _ := ctx.Value(holderKey{}).(*sessionHolder)
	return h
}
