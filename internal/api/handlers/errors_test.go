package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/card-inventory/backend/internal/models"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"not found", &models.NotFoundError{Resource: "Inventory", ID: 3}, http.StatusNotFound, "Inventory not found"},
		{"wrapped not found", fmt.Errorf("lookup: %w", &models.NotFoundError{Resource: "Card", ID: 1}), http.StatusNotFound, "Card not found"},
		{"validation", &models.ValidationError{Fields: map[string]string{"quantity": "must be no less than 0"}}, http.StatusUnprocessableEntity, "validation failed"},
		{"bad upload", fmt.Errorf("%w: %q", models.ErrBadUploadFormat, "a.txt"), http.StatusBadRequest, "File must be a CSV"},
		{"unknown", errors.New("disk full"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON body: %v", err)
			}
			if body["error"] != tt.wantError {
				t.Errorf("expected error %q, got %v", tt.wantError, body["error"])
			}
		})
	}
}

func TestQueryInt(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query  string
		want   int
		ok     bool
		status int
	}{
		{"", 100, true, 0},
		{"limit=5", 5, true, 0},
		{"limit=0", 0, false, http.StatusUnprocessableEntity},
		{"limit=1001", 0, false, http.StatusUnprocessableEntity},
		{"limit=x", 0, false, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)

			got, ok := queryInt(c, "limit", defaultPageLimit, 1, maxPageLimit)
			if ok != tt.ok || got != tt.want {
				t.Errorf("queryInt(%q) = %d, %v; want %d, %v", tt.query, got, ok, tt.want, tt.ok)
			}
			if !tt.ok && w.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, w.Code)
			}
		})
	}
}
