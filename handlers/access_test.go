package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"madebread/backend/models"
)

func TestGetAccessContext(t *testing.T) {
	resolver := setupTestResolver(t)
	handler := NewAccessHandler(resolver)

	req := withAccess(httptest.NewRequest("GET", "/access/context", nil),
		testMemberAccess("member-1", "owner-1", models.RoleCollector))
	rr := httptest.NewRecorder()
	handler.GetAccessContext(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var response struct {
		DataOwnerID string                  `json:"dataOwnerId"`
		Role        models.Role             `json:"role"`
		Permissions models.PermissionVector `json:"permissions"`
		Warning     string                  `json:"warning"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.DataOwnerID != "owner-1" || response.Role != models.RoleCollector {
		t.Errorf("unexpected context: %+v", response)
	}
	if response.Warning != "" {
		t.Errorf("expected no warning on a clean resolution, got %q", response.Warning)
	}
}

func TestGetAccessContextDegradedWarning(t *testing.T) {
	resolver := setupTestResolver(t)
	handler := NewAccessHandler(resolver)

	degraded := testOwnerAccess("owner-1")
	degraded.Degraded = true

	req := withAccess(httptest.NewRequest("GET", "/access/context", nil), degraded)
	rr := httptest.NewRecorder()
	handler.GetAccessContext(rr, req)

	var response struct {
		Warning string `json:"warning"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Warning == "" {
		t.Error("expected a degradation warning")
	}
}

func TestGetAccessContextUnauthorized(t *testing.T) {
	resolver := setupTestResolver(t)
	handler := NewAccessHandler(resolver)

	rr := httptest.NewRecorder()
	handler.GetAccessContext(rr, httptest.NewRequest("GET", "/access/context", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a context, got %d", rr.Code)
	}
}
