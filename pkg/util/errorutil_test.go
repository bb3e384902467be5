package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"passthrough", NewForbidden("Admin is not allowed to vote"), "FORBIDDEN", http.StatusForbidden},
		{"wrapped domain error", fmt.Errorf("cast vote: %w", NewInvalidState("You have already voted")), "INVALID_STATE", http.StatusBadRequest},
		{"no rows becomes not found", pgx.ErrNoRows, "NOT_FOUND", http.StatusNotFound},
		{"unknown becomes internal", errors.New("connection reset"), "INTERNAL_ERROR", http.StatusInternalServerError},
		{"validation", NewValidationError("name required", map[string]any{"name": "required"}), "VALIDATION_FAILED", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			if de.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", de.Code, tt.wantCode)
			}
			if de.HTTPStatus != tt.wantStatus {
				t.Errorf("status = %d, want %d", de.HTTPStatus, tt.wantStatus)
			}
		})
	}

	if ToDomainError(nil) != nil {
		t.Error("nil error should map to nil")
	}
}

func TestInternalErrorHidesDetail(t *testing.T) {
	de := ToDomainError(errors.New("password for db is hunter2"))
	if de.Message != "internal server error" {
		t.Errorf("internal detail leaked: %q", de.Message)
	}
}
