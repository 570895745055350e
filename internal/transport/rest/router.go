package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/creatorcompass-backend/internal/config"
	"github.com/heartmarshall/creatorcompass-backend/internal/transport/middleware"
)

// Rate limit scopes.
const (
	scopeAPI      = "api"
	scopeSessions = "sessions"
)

type tokenValidator interface {
	Validate(token string) (uuid.UUID, error)
}

type httpObserver interface {
	ObserveHTTP(method, route string, status int, d time.Duration)
	InFlight(delta int)
}

// Handlers groups the endpoint handlers the router mounts.
type Handlers struct {
	Health     *HealthHandler
	Session    *SessionHandler
	Onboarding *OnboardingHandler
	Offers     *OffersHandler
	Topics     *TopicsHandler
	Content    *ContentHandler
	Prefs      *PrefsHandler
}

// RouterConfig holds the cross-cutting pieces of the router.
type RouterConfig struct {
	Logger    *slog.Logger
	CORS      config.CORSConfig
	RateLimit config.RateLimitConfig
	// Limiter is nil when rate limiting is disabled.
	Limiter *middleware.RateLimiter
	Tokens  tokenValidator
	// Observer and MetricsHandler are nil when metrics are disabled.
	Observer       httpObserver
	MetricsPath    string
	MetricsHandler http.Handler
}

// NewRouter mounts every endpoint on a ServeMux and wraps it in the global
// middleware chain.
func NewRouter(cfg RouterConfig, h Handlers) http.Handler {
	mux := http.NewServeMux()

	limit := func(scope string, perMinute int) middleware.Middleware {
		if cfg.Limiter == nil || perMinute <= 0 {
			return nil
		}
		return cfg.Limiter.Limit(scope, perMinute)
	}
	public := middleware.Chain(limit(scopeAPI, cfg.RateLimit.PerMinute))
	session := middleware.Chain(
		limit(scopeAPI, cfg.RateLimit.PerMinute),
		middleware.SessionAuth(cfg.Tokens),
	)
	handle := func(pattern string, mw middleware.Middleware, fn http.HandlerFunc) {
		mux.Handle(pattern, mw(fn))
	}

	// Probes
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	if cfg.MetricsHandler != nil {
		mux.Handle("GET "+cfg.MetricsPath, cfg.MetricsHandler)
	}

	// Sessions
	handle("POST /api/sessions", middleware.Chain(
		limit(scopeSessions, cfg.RateLimit.SessionsPerMin),
		limit(scopeAPI, cfg.RateLimit.PerMinute),
	), h.Session.Create)
	handle("GET /api/sessions/current", session, h.Session.Current)
	handle("DELETE /api/sessions/current", session, h.Session.Delete)
	handle("POST /api/sessions/current/back", session, h.Session.Back)
	handle("POST /api/sessions/current/token", session, h.Session.RefreshToken)

	// Onboarding
	handle("GET /api/onboarding", session, h.Onboarding.Get)
	handle("PUT /api/onboarding", session, h.Onboarding.Replace)
	handle("POST /api/onboarding/socials/{platform}", session, h.Onboarding.ToggleSocial)
	handle("PUT /api/onboarding/website", session, h.Onboarding.SetWebsite)
	handle("PUT /api/onboarding/objective", session, h.Onboarding.SetObjective)
	handle("POST /api/onboarding/submit", session, h.Onboarding.Submit)

	// Offers
	handle("GET /api/offers", session, h.Offers.List)
	handle("POST /api/offers/{offerID}/toggle", session, h.Offers.Toggle)
	handle("POST /api/offers/files", session, h.Offers.Upload)
	handle("DELETE /api/offers/files/{index}", session, h.Offers.RemoveFile)
	handle("POST /api/offers/continue", session, h.Offers.Continue)

	// Topics
	handle("POST /api/topics/enter", session, h.Topics.Enter)
	handle("GET /api/topics", session, h.Topics.View)
	handle("POST /api/topics/prompt", session, h.Topics.SubmitPrompt)
	handle("POST /api/topics/clear", session, h.Topics.Clear)
	handle("POST /api/topics/content/{contentID}/copy", session, h.Topics.Copy)
	handle("POST /api/topics/{topicID}/select", session, h.Topics.Select)

	// Content
	handle("POST /api/content/{topicID}/enter", session, h.Content.Enter)
	handle("GET /api/content", session, h.Content.View)
	handle("PUT /api/content/tab", session, h.Content.SelectTab)
	handle("POST /api/content/thumbnail/regenerate", session, h.Content.RegenerateThumbnail)
	handle("GET /api/content/export", session, h.Content.Export)

	// Preferences
	handle("GET /api/clients/{clientID}/prefs/{key}", public, h.Prefs.Get)
	handle("PUT /api/clients/{clientID}/prefs/{key}", public, h.Prefs.Put)

	var metrics middleware.Middleware
	if cfg.Observer != nil {
		metrics = middleware.Metrics(cfg.Observer)
	}

	// Metrics sits directly in front of the mux so it sees the matched pattern.
	return middleware.Chain(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.Logger(cfg.Logger),
		middleware.CORS(cfg.CORS),
		metrics,
	)(mux)
}
