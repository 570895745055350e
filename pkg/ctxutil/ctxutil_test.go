package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestWithSessionID_And_SessionIDFromCtx(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	ctx := WithSessionID(context.Background(), id)

	got, ok := SessionIDFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true for valid UUID")
	}
	if got != id {
		t.Fatalf("expected %s, got %s", id, got)
	}
}

func TestSessionIDFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	got, ok := SessionIDFromCtx(context.Background())
	if ok {
		t.Fatal("expected ok=false for empty context")
	}
	if got != uuid.Nil {
		t.Fatalf("expected uuid.Nil, got %s", got)
	}
}

func TestSessionIDFromCtx_NilUUID(t *testing.T) {
	t.Parallel()

	ctx := WithSessionID(context.Background(), uuid.Nil)

	if _, ok := SessionIDFromCtx(ctx); ok {
		t.Fatal("expected ok=false for uuid.Nil")
	}
}

func TestSessionIDFromCtx_WrongType(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), sessionIDKey, "not-a-uuid")

	if _, ok := SessionIDFromCtx(ctx); ok {
		t.Fatal("expected ok=false for wrong value type")
	}
}

func TestRequestID_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-42")
	if got := RequestIDFromCtx(ctx); got != "req-42" {
		t.Fatalf("expected req-42, got %q", got)
	}
	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Fatalf("expected empty request id, got %q", got)
	}
}
