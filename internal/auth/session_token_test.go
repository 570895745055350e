package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

const testSecret = "test-secret-at-least-32-chars-long-for-security"

func newTestManager(clock clockwork.Clock) *TokenManager {
	return NewTokenManager(testSecret, "creatorcompass-test", 2*time.Hour, clock)
}

func TestTokenManager_IssueAndValidate(t *testing.T) {
	m := newTestManager(clockwork.NewRealClock())
	sessionID := uuid.New()

	token, err := m.Issue(sessionID, "client-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	got, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if got != sessionID {
		t.Errorf("expected sessionID %s, got %s", sessionID, got)
	}
}

func TestTokenManager_Expired(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := newTestManager(clock)

	token, err := m.Issue(uuid.New(), "")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	clock.Advance(2*time.Hour + time.Second)

	if _, err := m.Validate(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	clock := clockwork.NewRealClock()
	token, err := newTestManager(clock).Issue(uuid.New(), "")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	other := NewTokenManager("another-secret-that-is-also-32-chars-long", "creatorcompass-test", time.Hour, clock)
	if _, err := other.Validate(token); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}

func TestTokenManager_WrongIssuer(t *testing.T) {
	clock := clockwork.NewRealClock()
	token, err := NewTokenManager(testSecret, "someone-else", time.Hour, clock).Issue(uuid.New(), "")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := newTestManager(clock).Validate(token); err == nil {
		t.Fatal("expected error for wrong issuer")
	}
}

func TestTokenManager_RejectsNoneAlg(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		Issuer:    "creatorcompass-test",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	if _, err := newTestManager(clockwork.NewRealClock()).Validate(token); err == nil {
		t.Fatal("expected error for alg=none token")
	}
}

func TestTokenManager_BadSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		Issuer:    "creatorcompass-test",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	_, err = newTestManager(clockwork.NewRealClock()).Validate(token)
	if err == nil || !strings.Contains(err.Error(), "subject") {
		t.Fatalf("expected subject error, got %v", err)
	}
}

func TestTokenManager_Empty(t *testing.T) {
	if _, err := newTestManager(clockwork.NewRealClock()).Validate(""); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestTokenManager_Garbage(t *testing.T) {
	if _, err := newTestManager(clockwork.NewRealClock()).Validate("a.b.c"); err == nil {
		t.Fatal("expected error for garbage token")
	}
}
