package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	crewdomain "github.com/ghuser/fieldops/services/crew/domain"
	invdomain "github.com/ghuser/fieldops/services/inventory/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrItemNotFound", invdomain.ErrItemNotFound, http.StatusNotFound},
		{"ErrInstanceNotFound", invdomain.ErrInstanceNotFound, http.StatusNotFound},
		{"ErrBatchNotFound", invdomain.ErrBatchNotFound, http.StatusNotFound},
		{"ErrCrewNotFound", crewdomain.ErrCrewNotFound, http.StatusNotFound},
		{"ErrItemAlreadyExists", invdomain.ErrItemAlreadyExists, http.StatusConflict},
		{"ErrDuplicateInstance", invdomain.ErrDuplicateInstance, http.StatusConflict},
		{"ErrInvalidItemCode", invdomain.ErrInvalidItemCode, http.StatusUnprocessableEntity},
		{"ErrInsufficientStock", invdomain.ErrInsufficientStock, http.StatusBadRequest},
		{"ErrInvalidTransition", invdomain.ErrInvalidTransition, http.StatusBadRequest},
		{"ErrNotEquipment", invdomain.ErrNotEquipment, http.StatusBadRequest},
		{"ErrInstanceNotDeletable", invdomain.ErrInstanceNotDeletable, http.StatusBadRequest},
		{"wrapped ErrItemNotFound", fmt.Errorf("get item: %w", invdomain.ErrItemNotFound), http.StatusNotFound},
		{"wrapped ErrInsufficientStock", fmt.Errorf("assign: %w", invdomain.ErrInsufficientStock), http.StatusBadRequest},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, invdomain.ErrItemNotFound)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if _, ok := body["error"]; !ok {
		t.Fatal("response body missing 'error' key")
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, invdomain.ErrItemNotFound)

	ct := w.Header().Get("Content-Type")
	if ct == "" {
		t.Fatal("Content-Type header not set")
	}
}
