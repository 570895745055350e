package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doFrom(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.RemoteAddr = remoteAddr
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	rl := NewRateLimiter(clockwork.NewFakeClock(), time.Minute)
	defer rl.Stop()

	handler := rl.Limit("api", 10)(okHandler())

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, doFrom(handler, "1.2.3.4:1234").Code, "request %d should be allowed", i)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	rl := NewRateLimiter(clockwork.NewFakeClock(), time.Minute)
	defer rl.Stop()

	handler := rl.Limit("api", 5)(okHandler())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doFrom(handler, "1.2.3.4:1234").Code)
	}

	rec := doFrom(handler, "1.2.3.4:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())
}

func TestRateLimiter_KeysByHostNotPort(t *testing.T) {
	rl := NewRateLimiter(clockwork.NewFakeClock(), time.Minute)
	defer rl.Stop()

	handler := rl.Limit("api", 1)(okHandler())

	assert.Equal(t, http.StatusOK, doFrom(handler, "1.2.3.4:1000").Code)
	assert.Equal(t, http.StatusTooManyRequests, doFrom(handler, "1.2.3.4:2000").Code)
}

func TestRateLimiter_DifferentIPsIndependent(t *testing.T) {
	rl := NewRateLimiter(clockwork.NewFakeClock(), time.Minute)
	defer rl.Stop()

	handler := rl.Limit("api", 2)(okHandler())

	for i := 0; i < 2; i++ {
		doFrom(handler, "1.1.1.1:1234")
	}

	assert.Equal(t, http.StatusOK, doFrom(handler, "2.2.2.2:5678").Code)
}

func TestRateLimiter_ScopesIndependent(t *testing.T) {
	rl := NewRateLimiter(clockwork.NewFakeClock(), time.Minute)
	defer rl.Stop()

	api := rl.Limit("api", 1)(okHandler())
	sessions := rl.Limit("sessions", 1)(okHandler())

	assert.Equal(t, http.StatusOK, doFrom(api, "1.1.1.1:1").Code)
	assert.Equal(t, http.StatusOK, doFrom(sessions, "1.1.1.1:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, doFrom(sessions, "1.1.1.1:1").Code)
}

func TestRateLimiter_TokenRefill(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rl := NewRateLimiter(clock, time.Minute)
	defer rl.Stop()

	// 60 per minute = 1 per second
	handler := rl.Limit("api", 60)(okHandler())

	for i := 0; i < 60; i++ {
		doFrom(handler, "3.3.3.3:1234")
	}
	assert.Equal(t, http.StatusTooManyRequests, doFrom(handler, "3.3.3.3:1234").Code)

	clock.Advance(1100 * time.Millisecond)

	assert.Equal(t, http.StatusOK, doFrom(handler, "3.3.3.3:1234").Code)
}

func TestRateLimiter_SweepDropsIdleBuckets(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rl := NewRateLimiter(clock, time.Hour)
	defer rl.Stop()

	doFrom(rl.Limit("api", 5)(okHandler()), "4.4.4.4:1")

	rl.sweep(clock.Now().Add(idleBucketTTL + time.Second))

	count := 0
	rl.buckets.Range(func(_, _ any) bool { count++; return true })
	assert.Zero(t, count)
}
