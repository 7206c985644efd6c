package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"madebread/backend/middleware"
	"madebread/backend/models"
	"madebread/backend/services"
)

// PermissionsHandler serves the permissions matrix. Reads are open to any
// authenticated principal; edits are owner-only, enforced by the RequireOwner
// middleware on the routes plus the checks below.
type PermissionsHandler struct {
	Resolver *services.AccessResolver
}

// NewPermissionsHandler creates a new permissions handler
func NewPermissionsHandler(resolver *services.AccessResolver) *PermissionsHandler {
	return &PermissionsHandler{Resolver: resolver}
}

// GetPermissionsMatrix returns the effective vector for every role under the
// caller's data owner, for the matrix UI.
func (h *PermissionsHandler) GetPermissionsMatrix(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)
	if access == nil {
		http.Error(w, "Unauthorized: No access context", http.StatusUnauthorized)
		return
	}

	matrix := make(map[models.Role]models.PermissionVector, len(models.Roles))
	for _, role := range models.Roles {
		matrix[role] = h.Resolver.EffectivePermissions(r.Context(), access.DataOwnerID, role)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(matrix)
}

// UpdateRolePermission flips one capability for one role and persists the
// owner's overrides.
func (h *PermissionsHandler) UpdateRolePermission(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)
	if access == nil || !access.IsOwner() {
		http.Error(w, services.ErrPermissionDenied.Error(), http.StatusForbidden)
		return
	}

	role, ok := models.ParseRole(mux.Vars(r)["role"])
	if !ok {
		http.Error(w, "Unknown role", http.StatusBadRequest)
		return
	}

	var request struct {
		Capability string `json:"capability"`
		Granted    bool   `json:"granted"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	capability, ok := models.ParseCapability(request.Capability)
	if !ok {
		http.Error(w, "Unknown capability", http.StatusBadRequest)
		return
	}

	ownerID := access.Principal.ID
	if err := h.Resolver.UpdateRolePermission(r.Context(), ownerID, role, capability, request.Granted); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Resolver.SaveCustomPermissions(r.Context(), ownerID); err != nil {
		http.Error(w, "Failed to save permissions: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Resolver.EffectivePermissions(r.Context(), ownerID, role))
}

// ResetPermissions clears every override; the default matrix applies again.
func (h *PermissionsHandler) ResetPermissions(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)
	if access == nil || !access.IsOwner() {
		http.Error(w, services.ErrPermissionDenied.Error(), http.StatusForbidden)
		return
	}

	ownerID := access.Principal.ID
	h.Resolver.ResetPermissionsToDefault(r.Context(), ownerID)

	if err := h.Resolver.SaveCustomPermissions(r.Context(), ownerID); err != nil {
		http.Error(w, "Failed to save permissions: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
