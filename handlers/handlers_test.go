package handlers

import (
	"context"
	"net/http"
	"testing"

	"madebread/backend/database"
	"madebread/backend/middleware"
	"madebread/backend/migrations"
	"madebread/backend/models"
	"madebread/backend/services"
	"madebread/backend/store"
)

// setupTestResolver opens an in-memory database, runs migrations, and builds
// a resolver over the local store and identity, the same wiring main uses
// when Firebase is not configured.
func setupTestResolver(t *testing.T) *services.AccessResolver {
	t.Helper()
	t.Setenv("TEST_DB", "1")
	if err := database.InitDB(); err != nil {
		t.Fatalf("failed to init test database: %v", err)
	}
	t.Cleanup(func() { database.DB.Close() })
	if err := migrations.RunMigrations(database.DB); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return services.NewAccessResolver(store.NewLocalStore(database.DB), store.NewLocalIdentity(database.DB))
}

// withAccess attaches a resolved access context to the request, standing in
// for the auth and resolution middleware.
func withAccess(r *http.Request, access *models.ResolvedAccessContext) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.PrincipalIDKey, access.Principal.ID)
	ctx = context.WithValue(ctx, middleware.PrincipalEmailKey, access.Principal.Email)
	ctx = context.WithValue(ctx, middleware.AccessContextKey, access)
	return r.WithContext(ctx)
}

func testOwnerAccess(id string) *models.ResolvedAccessContext {
	return &models.ResolvedAccessContext{
		Principal:   models.Principal{ID: id, Email: id + "@madebread.ph"},
		DataOwnerID: id,
		Role:        models.RoleOwner,
	}
}

func testMemberAccess(id, ownerID string, role models.Role) *models.ResolvedAccessContext {
	return &models.ResolvedAccessContext{
		Principal:   models.Principal{ID: id, Email: id + "@madebread.ph"},
		DataOwnerID: ownerID,
		Role:        role,
		Permissions: models.DefaultPermissionVector(role),
	}
}
