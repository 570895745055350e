package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/creatorcompass-backend/internal/adapter/generator"
	"github.com/heartmarshall/creatorcompass-backend/internal/adapter/generator/anthropicgen"
	"github.com/heartmarshall/creatorcompass-backend/internal/adapter/generator/httpgen"
	"github.com/heartmarshall/creatorcompass-backend/internal/adapter/generator/openaigen"
	"github.com/heartmarshall/creatorcompass-backend/internal/adapter/memory"
	"github.com/heartmarshall/creatorcompass-backend/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		CORS: config.CORSConfig{AllowedOrigins: "*"},
		Session: config.SessionConfig{
			TTL:            time.Hour,
			MaxUploadBytes: 1 << 20,
			TokenSecret:    "test-secret-at-least-32-bytes-long!",
			TokenIssuer:    "creatorcompass",
		},
		Generator: config.GeneratorConfig{Provider: config.ProviderMock, SilentFallback: true},
		Prefs:     config.PrefsConfig{Driver: config.DriverMemory},
		RateLimit: config.RateLimitConfig{Enabled: true, PerMinute: 100, SessionsPerMin: 10, CleanupInterval: time.Minute},
		Metrics:   config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

func TestNewGenerators(t *testing.T) {
	t.Parallel()

	base := config.GeneratorConfig{BaseURL: "http://localhost:5000", Timeout: time.Second, BreakerDelay: time.Second}

	tests := []struct {
		provider  string
		wantText  any
		wantThumb any
	}{
		{config.ProviderHTTP, &httpgen.Client{}, &httpgen.Client{}},
		{config.ProviderAnthropic, &anthropicgen.Client{}, &httpgen.Client{}},
		{config.ProviderOpenAI, &openaigen.Client{}, &openaigen.Client{}},
		{config.ProviderMock, generator.Offline{}, generator.Offline{}},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			t.Parallel()

			cfg := base
			cfg.Provider = tt.provider
			text, thumbs, err := newGenerators(discardLogger(), cfg)
			require.NoError(t, err)
			assert.IsType(t, tt.wantText, text)
			assert.IsType(t, tt.wantThumb, thumbs)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()

		cfg := base
		cfg.Provider = "carrier-pigeon"
		_, _, err := newGenerators(discardLogger(), cfg)
		assert.Error(t, err)
	})
}

func TestNewPrefsBackend(t *testing.T) {
	t.Parallel()

	repo, closeFn, err := newPrefsBackend(context.Background(), discardLogger(), config.PrefsConfig{Driver: config.DriverMemory})
	require.NoError(t, err)
	require.NotNil(t, closeFn)
	defer closeFn()
	assert.IsType(t, &memory.PrefsRepo{}, repo)

	_, closeFn, err = newPrefsBackend(context.Background(), discardLogger(), config.PrefsConfig{Driver: "sqlite"})
	assert.Error(t, err)
	assert.NotNil(t, closeFn)
}

func TestBuild_ServesWizard(t *testing.T) {
	t.Parallel()

	a, err := build(context.Background(), testConfig(), discardLogger(), clockwork.NewFakeClock())
	require.NoError(t, err)
	defer a.close()

	srv := httptest.NewServer(a.handler)
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/live")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = srv.Client().Post(srv.URL+"/api/sessions", "application/json", strings.NewReader(`{"clientId":"abc"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Token string `json:"token"`
		Step  string `json:"step"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "onboarding", created.Step)
	assert.Equal(t, 1, a.store.Len())

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/sessions/current", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+created.Token)
	resp2, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)

	resp3, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp3.Body.Close()
	assert.Equal(t, http.StatusOK, resp3.StatusCode)
}

func TestBuild_UnknownProvider(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Generator.Provider = "nope"

	_, err := build(context.Background(), cfg, discardLogger(), clockwork.NewFakeClock())
	assert.Error(t, err)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, discardLogger(), srv, lis, time.Second) }()

	resp, err := http.Get("http://" + lis.Addr().String())
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}
