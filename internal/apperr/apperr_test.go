package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", InvalidInput("param is required"), http.StatusBadRequest},
		{"missing context", MissingContext("parentId required"), http.StatusBadRequest},
		{"not found", NotFound("Subject not found"), http.StatusNotFound},
		{"store failure", StoreFailure(errors.New("connection refused")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("resolve: %w", NotFound("Unit not found")), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.err); got != tt.want {
				t.Errorf("Status(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestStoreFailurePassesMessageThrough(t *testing.T) {
	cause := errors.New("server selection timeout")
	err := StoreFailure(cause)

	if err.Error() != "server selection timeout" {
		t.Errorf("message: got %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected StoreFailure to unwrap to its cause")
	}
	if StoreFailure(nil) != nil {
		t.Error("StoreFailure(nil) should be nil")
	}
}

func TestIs(t *testing.T) {
	if !Is(MissingContext("x"), KindMissingContext) {
		t.Error("expected MissingContext kind")
	}
	if Is(nil, KindStoreFailure) {
		t.Error("nil error must not match any kind")
	}
	if Is(NotFound("x"), KindInvalidInput) {
		t.Error("NotFound must not match InvalidInput")
	}
}
