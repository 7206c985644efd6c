package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"madebread/backend/models"
)

func TestAddTeamMember(t *testing.T) {
	resolver := setupTestResolver(t)
	handler := NewTeamHandler(resolver)

	body := bytes.NewBufferString(`{"email": "Ana@MadeBread.ph", "role": "collector", "name": "Ana"}`)
	req := withAccess(httptest.NewRequest("POST", "/team", body), testOwnerAccess("owner-1"))
	rr := httptest.NewRecorder()
	handler.AddTeamMember(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var response struct {
		Member   models.TeamMember `json:"member"`
		Password string            `json:"password"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Member.Email != "ana@madebread.ph" {
		t.Errorf("expected lowercased email, got %s", response.Member.Email)
	}
	if response.Member.Role != models.RoleCollector {
		t.Errorf("expected collector, got %s", response.Member.Role)
	}
	if len(response.Password) != 10 {
		t.Errorf("expected a 10 character one-time password, got %q", response.Password)
	}
}

func TestAddTeamMemberForbiddenForNonOwner(t *testing.T) {
	resolver := setupTestResolver(t)
	handler := NewTeamHandler(resolver)

	body := bytes.NewBufferString(`{"email": "x@madebread.ph", "role": "member", "name": "X"}`)
	req := withAccess(httptest.NewRequest("POST", "/team", body),
		testMemberAccess("member-1", "owner-1", models.RoleCollector))
	rr := httptest.NewRecorder()
	handler.AddTeamMember(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rr.Code)
	}
}

func TestAddTeamMemberDuplicateConflict(t *testing.T) {
	resolver := setupTestResolver(t)
	handler := NewTeamHandler(resolver)
	owner := testOwnerAccess("owner-1")

	first := bytes.NewBufferString(`{"email": "ana@madebread.ph", "role": "collector", "name": "Ana"}`)
	rr := httptest.NewRecorder()
	handler.AddTeamMember(rr, withAccess(httptest.NewRequest("POST", "/team", first), owner))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	// Same email with different casing is still a duplicate.
	second := bytes.NewBufferString(`{"email": "ANA@madebread.ph", "role": "member", "name": "Ana"}`)
	rr = httptest.NewRecorder()
	handler.AddTeamMember(rr, withAccess(httptest.NewRequest("POST", "/team", second), owner))
	if rr.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestGetTeamMembersEmptyRoster(t *testing.T) {
	resolver := setupTestResolver(t)
	handler := NewTeamHandler(resolver)

	req := withAccess(httptest.NewRequest("GET", "/team", nil), testOwnerAccess("owner-1"))
	rr := httptest.NewRecorder()
	handler.GetTeamMembers(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	// An empty roster encodes as [], not null.
	if got := rr.Body.String(); got != "[]\n" {
		t.Errorf("expected an empty JSON array, got %q", got)
	}
}

func TestRemoveTeamMemberHandler(t *testing.T) {
	resolver := setupTestResolver(t)
	handler := NewTeamHandler(resolver)
	owner := testOwnerAccess("owner-1")

	body := bytes.NewBufferString(`{"email": "ana@madebread.ph", "role": "collector", "name": "Ana"}`)
	rr := httptest.NewRecorder()
	handler.AddTeamMember(rr, withAccess(httptest.NewRequest("POST", "/team", body), owner))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	var created struct {
		Member models.TeamMember `json:"member"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	router := mux.NewRouter()
	router.HandleFunc("/team/{memberId}", handler.RemoveTeamMember).Methods("DELETE")

	req := withAccess(httptest.NewRequest("DELETE", "/team/"+created.Member.ID, nil), owner)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	handler.GetTeamMembers(rr, withAccess(httptest.NewRequest("GET", "/team", nil), owner))
	var members []models.TeamMember
	if err := json.NewDecoder(rr.Body).Decode(&members); err != nil {
		t.Fatalf("failed to decode roster: %v", err)
	}
	if len(members) != 0 {
		t.Errorf("expected an empty roster after removal, got %+v", members)
	}
}
