package middleware

import (
	"context"
	"log"
	"net/http"

	"madebread/backend/models"
	"madebread/backend/services"
)

const AccessContextKey contextKey = "access_context"

// ResolveAccess resolves the authenticated principal into an access context
// once per request and stores it for downstream handlers. Resolution
// degradation is logged, never blocking: the principal still gets an
// owner-of-self context.
func ResolveAccess(resolver *services.AccessResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := GetPrincipalFromContext(r)
			if principal.ID == "" {
				http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
				return
			}

			access, err := resolver.ResolveAccess(r.Context(), principal)
			if err != nil {
				log.Printf("Warning: %v", err)
			}

			ctx := context.WithValue(r.Context(), AccessContextKey, access)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireCapability gates a route on one capability. A request arriving
// while team-member provisioning is in flight gets 503 (context not ready),
// not 403: the identity state is mid transition and a denial would be wrong.
func RequireCapability(resolver *services.AccessResolver, capability models.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if resolver.ProvisioningInProgress() {
				http.Error(w, services.ErrProvisioningInProgress.Error(), http.StatusServiceUnavailable)
				return
			}

			access := GetAccessContext(r)
			if access == nil {
				http.Error(w, "Unauthorized: No access context", http.StatusUnauthorized)
				return
			}

			if !resolver.HasPermission(access, capability) {
				http.Error(w, "Forbidden: Insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireOwner gates a route on the owner role, for team management and
// permission editing.
func RequireOwner() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			access := GetAccessContext(r)
			if access == nil {
				http.Error(w, "Unauthorized: No access context", http.StatusUnauthorized)
				return
			}

			if !access.IsOwner() {
				http.Error(w, services.ErrPermissionDenied.Error(), http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetAccessContext retrieves the resolved access context from the request.
func GetAccessContext(r *http.Request) *models.ResolvedAccessContext {
	access, ok := r.Context().Value(AccessContextKey).(*models.ResolvedAccessContext)
	if !ok {
		return nil
	}
	return access
}
