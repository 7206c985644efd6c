package handlers

import (
	"encoding/json"
	"net/http"

	"madebread/backend/middleware"
	"madebread/backend/models"
	"madebread/backend/services"
)

// AccessHandler serves the resolved access context to the frontend.
type AccessHandler struct {
	Resolver *services.AccessResolver
}

// NewAccessHandler creates a new access handler
func NewAccessHandler(resolver *services.AccessResolver) *AccessHandler {
	return &AccessHandler{Resolver: resolver}
}

type accessContextResponse struct {
	*models.ResolvedAccessContext
	// Warning is set when resolution degraded to owner-of-self because the
	// account record could not be read. The session continues.
	Warning string `json:"warning,omitempty"`
}

// GetAccessContext returns the caller's resolved access context: whose data
// they operate on, their role, and the capability vector in force.
func (h *AccessHandler) GetAccessContext(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccessContext(r)
	if access == nil {
		http.Error(w, "Unauthorized: No access context", http.StatusUnauthorized)
		return
	}

	resp := accessContextResponse{ResolvedAccessContext: access}
	if access.Degraded {
		resp.Warning = "account record unavailable; operating on your own data with owner role"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
