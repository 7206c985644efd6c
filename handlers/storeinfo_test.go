package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"madebread/backend/models"
)

func TestStoreInfoRoundTrip(t *testing.T) {
	setupTestResolver(t)
	owner := testOwnerAccess("owner-1")

	body := bytes.NewBufferString(`{"name": "Made Bread", "location": "Marikina", "owner": "Mike"}`)
	rr := httptest.NewRecorder()
	SaveStoreInfo(rr, withAccess(httptest.NewRequest("PUT", "/store-info", body), owner))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	// Team members read the owner's profile.
	member := testMemberAccess("member-1", "owner-1", models.RoleCollector)
	rr = httptest.NewRecorder()
	GetStoreInfo(rr, withAccess(httptest.NewRequest("GET", "/store-info", nil), member))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var info models.StoreInfo
	if err := json.NewDecoder(rr.Body).Decode(&info); err != nil {
		t.Fatalf("failed to decode store info: %v", err)
	}
	if info.Name != "Made Bread" || info.Location != "Marikina" {
		t.Errorf("unexpected store info: %+v", info)
	}
}

func TestGetStoreInfoNotConfigured(t *testing.T) {
	setupTestResolver(t)

	rr := httptest.NewRecorder()
	GetStoreInfo(rr, withAccess(httptest.NewRequest("GET", "/store-info", nil), testOwnerAccess("owner-1")))
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 with no profile saved, got %d", rr.Code)
	}
}
