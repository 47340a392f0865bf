package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusByKind(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{"validation", Validation("bad input"), http.StatusBadRequest},
		{"invalid transition", InvalidTransition("draft to shipped"), http.StatusBadRequest},
		{"not found", NotFound("transfer %s", "x"), http.StatusNotFound},
		{"conflict", Conflict("insufficient stock"), http.StatusConflict},
		{"authorization", Authorization("not an approver"), http.StatusForbidden},
		{"system", System(errors.New("db down")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.HTTPStatus(); got != tt.want {
				t.Fatalf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSystemHidesCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	e := System(cause)
	if e.Message() != "internal error" {
		t.Fatalf("Message() = %q, want generic", e.Message())
	}
	if !errors.Is(e, cause) {
		t.Fatalf("cause should still unwrap for logging")
	}
}

func TestIsKindThroughWrapping(t *testing.T) {
	e := Conflict("already pending")
	wrapped := fmt.Errorf("submit: %w", e)
	if !IsKind(wrapped, KindConflict) {
		t.Fatalf("IsKind should see through wrapping")
	}
	if IsKind(wrapped, KindNotFound) {
		t.Fatalf("IsKind matched the wrong kind")
	}
	if IsKind(errors.New("plain"), KindConflict) {
		t.Fatalf("IsKind matched a plain error")
	}
}

func TestFrom(t *testing.T) {
	e := NotFound("rule")
	if got := From(fmt.Errorf("outer: %w", e)); got.Kind() != KindNotFound {
		t.Fatalf("From kept kind %s, want %s", got.Kind(), KindNotFound)
	}
	if got := From(errors.New("unknown")); got.Kind() != KindSystem {
		t.Fatalf("From(plain) kind = %s, want %s", got.Kind(), KindSystem)
	}
}
