package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/creatorcompass-backend/internal/adapter/memory"
	"github.com/heartmarshall/creatorcompass-backend/internal/auth"
	"github.com/heartmarshall/creatorcompass-backend/internal/config"
	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
	"github.com/heartmarshall/creatorcompass-backend/internal/metrics"
	"github.com/heartmarshall/creatorcompass-backend/internal/service/prefs"
	"github.com/heartmarshall/creatorcompass-backend/internal/service/studio"
	"github.com/heartmarshall/creatorcompass-backend/internal/service/wizard"
)

const (
	topicsDelay  = 2 * time.Second
	contentDelay = 1500 * time.Millisecond
	copyTTL      = 2 * time.Second
)

// generatorStub answers both text and thumbnail calls. Errors are returned
// when the matching err field is set.
type generatorStub struct {
	mu       sync.Mutex
	textErr  error
	thumbErr error
	thumbReq []domain.ThumbnailRequest
}

func (g *generatorStub) Generate(_ context.Context, req domain.GenerationRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.textErr != nil {
		return "", g.textErr
	}
	return "generated: " + req.Query, nil
}

func (g *generatorStub) GenerateThumbnail(_ context.Context, req domain.ThumbnailRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.thumbReq = append(g.thumbReq, req)
	if g.thumbErr != nil {
		return "", g.thumbErr
	}
	return "https://img.example.com/thumb.png", nil
}

type testEnv struct {
	t       *testing.T
	clock   *clockwork.FakeClock
	store   *wizard.Store
	gen     *generatorStub
	metrics *metrics.Metrics
	handler http.Handler
}

type envOption func(*RouterConfig)

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := clockwork.NewFakeClock()
	gen := &generatorStub{}
	m := metrics.New("test")

	prefsSvc := prefs.NewService(log, clock, memory.NewPrefsRepo())
	studioSvc := studio.NewService(log, clock, studio.Config{
		TopicsDelay:       topicsDelay,
		ContentDelay:      contentDelay,
		CopyIndicatorTTL:  copyTTL,
		GenerationTimeout: time.Minute,
		SilentFallback:    true,
	}, gen, gen, prefsSvc, m)
	store := wizard.NewStore(log, clock, wizard.StoreConfig{TTL: time.Hour}, studioSvc, m)
	t.Cleanup(store.Stop)

	tokens := auth.NewTokenManager("test-secret-at-least-32-bytes-long!", "creatorcompass", time.Hour, clock)

	cfg := RouterConfig{
		Logger: log,
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PUT,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type,X-Session-Token",
			MaxAge:         60,
		},
		RateLimit:      config.RateLimitConfig{PerMinute: 1000, SessionsPerMin: 1000},
		Tokens:         tokens,
		Observer:       m,
		MetricsPath:    "/metrics",
		MetricsHandler: m.Handler(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	h := Handlers{
		Health:     NewHealthHandler(memory.NewPrefsRepo(), store, "test", clock),
		Session:    NewSessionHandler(store, tokens, log),
		Onboarding: NewOnboardingHandler(store, log),
		Offers:     NewOffersHandler(store, 1<<20, log),
		Topics:     NewTopicsHandler(store, log),
		Content:    NewContentHandler(store, log),
		Prefs:      NewPrefsHandler(prefsSvc, log),
	}

	return &testEnv{
		t:       t,
		clock:   clock,
		store:   store,
		gen:     gen,
		metrics: m,
		handler: NewRouter(cfg, h),
	}
}

func (e *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	e.t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(e.t, err)
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.send(req)
}

func (e *testEnv) send(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) createSession(clientID string) createSessionResponse {
	e.t.Helper()

	rec := e.do(http.MethodPost, "/api/sessions", createSessionRequest{ClientID: clientID}, "")
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp createSessionResponse
	decodeBody(e.t, rec, &resp)
	return resp
}

func (e *testEnv) session(id string) *wizard.Session {
	e.t.Helper()
	s, err := e.store.Get(uuid.MustParse(id))
	require.NoError(e.t, err)
	return s
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v), rec.Body.String())
}

// advanceToTopics walks a fresh session through onboarding and offers.
func (e *testEnv) advanceToTopics(token string) {
	e.t.Helper()

	require.Equal(e.t, http.StatusOK, e.do(http.MethodPost, "/api/onboarding/submit", nil, token).Code)
	require.Equal(e.t, http.StatusOK, e.do(http.MethodPost, "/api/offers/contentSuggestions/toggle", nil, token).Code)
	require.Equal(e.t, http.StatusOK, e.do(http.MethodPost, "/api/offers/continue", nil, token).Code)
}
