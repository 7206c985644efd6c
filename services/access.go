package services

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"madebread/backend/models"
	"madebread/backend/store"
)

// AccessResolver translates an authenticated principal into a resolved
// access context and answers capability queries against it. One resolver
// serves the whole process; per-owner permission tables are loaded from the
// store on first use and edited only through the owner-only operations.
type AccessResolver struct {
	store    store.AccountStore
	identity store.Identity

	mu     sync.Mutex
	tables map[string]*models.PermissionTable

	// provisioning marks the window between creating a team member's auth
	// account and finishing the roster write. Capability checks in that
	// window are answered "not ready", never "denied".
	provisioning atomic.Bool
}

// NewAccessResolver builds a resolver over the given store and identity
// provider.
func NewAccessResolver(accounts store.AccountStore, identity store.Identity) *AccessResolver {
	return &AccessResolver{
		store:    accounts,
		identity: identity,
		tables:   make(map[string]*models.PermissionTable),
	}
}

// ResolveAccess determines whose data the principal operates on and with
// which role, then snapshots the effective permission vector into the
// returned context.
//
// A missing account record means a fresh owner. A store read failure does
// not block sign-in: the principal degrades to owner of their own data and
// the failure comes back as a *AccessResolutionError alongside the usable
// context, for the caller to surface as a warning.
func (r *AccessResolver) ResolveAccess(ctx context.Context, principal models.Principal) (*models.ResolvedAccessContext, error) {
	rec, err := r.store.GetAccountRecord(ctx, principal.ID)
	if err != nil {
		log.Printf("Warning: could not read account record for %s: %v", principal.ID, err)
		return &models.ResolvedAccessContext{
			Principal:   principal,
			DataOwnerID: principal.ID,
			Role:        models.RoleOwner,
			Permissions: models.DefaultPermissionVector(models.RoleOwner),
			Degraded:    true,
		}, &AccessResolutionError{PrincipalID: principal.ID, Err: err}
	}

	access := &models.ResolvedAccessContext{
		Principal:   principal,
		DataOwnerID: principal.ID,
		Role:        models.RoleOwner,
	}

	if rec != nil && rec.IsTeamMember && rec.OwnerID != "" {
		role, ok := models.ParseRole(rec.Role)
		if !ok || role == models.RoleOwner {
			// A team member with a bad role is a data-integrity signal;
			// flag it and fall back to the least-privileged ledger role.
			log.Printf("Warning: account %s has unrecognized role %q, treating as member", principal.ID, rec.Role)
			role = models.RoleMember
		}
		access.DataOwnerID = rec.OwnerID
		access.Role = role
	}

	access.Permissions = r.permissionsFor(ctx, access.DataOwnerID).Effective(access.Role)
	return access, nil
}

// HasPermission reports whether the resolved context may use a capability.
// Owner contexts are granted everything; everyone else is checked against
// the vector snapshotted at resolution time. Unknown capabilities are
// denied. Pure: no error path.
func (r *AccessResolver) HasPermission(access *models.ResolvedAccessContext, capability models.Capability) bool {
	if access == nil {
		return false
	}
	if access.Role == models.RoleOwner {
		return true
	}
	return access.Permissions[capability]
}

// UpdateRolePermission flips one capability for a role in the owner's
// table. The owner-only contract is enforced at the HTTP boundary; this
// method still rejects edits to the owner row, whose vector is constant.
// The change is in-memory until SaveCustomPermissions persists it.
func (r *AccessResolver) UpdateRolePermission(ctx context.Context, ownerID string, role models.Role, capability models.Capability, granted bool) error {
	return r.permissionsFor(ctx, ownerID).Set(role, capability, granted)
}

// ResetPermissionsToDefault clears every override for the owner; the
// built-in matrix applies again for all roles.
func (r *AccessResolver) ResetPermissionsToDefault(ctx context.Context, ownerID string) {
	r.permissionsFor(ctx, ownerID).Reset()
}

// SaveCustomPermissions writes the owner's current overrides to the store.
// Last write wins; concurrent owner sessions can overwrite each other.
func (r *AccessResolver) SaveCustomPermissions(ctx context.Context, ownerID string) error {
	return r.store.SetCustomPermissions(ctx, ownerID, r.permissionsFor(ctx, ownerID).Overrides())
}

// EffectivePermissions returns the vector currently in force for a role
// under the given owner, for the permissions matrix UI.
func (r *AccessResolver) EffectivePermissions(ctx context.Context, ownerID string, role models.Role) models.PermissionVector {
	return r.permissionsFor(ctx, ownerID).Effective(role)
}

// ProvisioningInProgress reports whether a team-member provision is mid
// flight. Capability-gated callers must treat this as context-not-ready.
func (r *AccessResolver) ProvisioningInProgress() bool {
	return r.provisioning.Load()
}

// permissionsFor returns the cached permission table for an owner, loading
// stored overrides on first touch. A failed load falls back to defaults
// with a warning; it never blocks resolution.
func (r *AccessResolver) permissionsFor(ctx context.Context, ownerID string) *models.PermissionTable {
	r.mu.Lock()
	defer r.mu.Unlock()

	if table, ok := r.tables[ownerID]; ok {
		return table
	}

	table := models.NewPermissionTable()
	overrides, err := r.store.GetCustomPermissions(ctx, ownerID)
	if err != nil {
		log.Printf("Warning: could not load custom permissions for %s, using defaults: %v", ownerID, err)
	} else if overrides != nil {
		table.ReplaceOverrides(overrides)
	}
	r.tables[ownerID] = table
	return table
}
