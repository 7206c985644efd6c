package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"madebread/backend/middleware"
	"madebread/backend/models"
	"madebread/backend/services"
)

// TeamHandler manages the owner's team roster.
type TeamHandler struct {
	Resolver *services.AccessResolver
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(resolver *services.AccessResolver) *TeamHandler {
	return &TeamHandler{Resolver: resolver}
}

// GetTeamMembers returns the owner's roster.
func (h *TeamHandler) GetTeamMembers(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)

	members, err := h.Resolver.ListTeamMembers(r.Context(), access)
	if err != nil {
		writeTeamError(w, err)
		return
	}
	if members == nil {
		members = []models.TeamMember{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(members)
}

type provisionResponse struct {
	Member *models.TeamMember `json:"member"`
	// Password is shown exactly once; it is not stored anywhere and cannot
	// be retrieved again.
	Password string `json:"password"`
}

// AddTeamMember provisions a new team member: auth account, linked account
// record, roster entry. The response carries the one-time password.
func (h *TeamHandler) AddTeamMember(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)

	var request struct {
		Email string `json:"email"`
		Role  string `json:"role"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	member, password, err := h.Resolver.ProvisionTeamMember(r.Context(), access, request.Email, models.Role(request.Role), request.Name)
	if err != nil {
		writeTeamError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(provisionResponse{Member: member, Password: password})
}

// RemoveTeamMember deletes a member from the roster and unlinks their
// account record.
func (h *TeamHandler) RemoveTeamMember(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)
	memberID := mux.Vars(r)["memberId"]

	if err := h.Resolver.RemoveTeamMember(r.Context(), access, memberID); err != nil {
		writeTeamError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeTeamError maps the provisioning error taxonomy onto HTTP statuses.
// A provisioning inconsistency gets its own message so the operator knows
// an orphaned auth account needs manual cleanup.
func writeTeamError(w http.ResponseWriter, err error) {
	var inconsistency *services.ProvisioningInconsistencyError
	switch {
	case errors.Is(err, services.ErrPermissionDenied):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, services.ErrDuplicateMember):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &inconsistency):
		http.Error(w, inconsistency.Error(), http.StatusInternalServerError)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
