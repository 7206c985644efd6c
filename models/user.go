package models

import "time"

// Principal is an authenticated identity as reported by Firebase Auth.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AccountRecord is the per-user document at users/{id}. Owners get one
// lazily on first sign-in; team members get one when the owner provisions
// them, with OwnerID linking their data access back to the owner.
type AccountRecord struct {
	Email        string    `json:"email" firestore:"email"`
	Name         string    `json:"name" firestore:"name"`
	Role         string    `json:"role" firestore:"role"`
	OwnerID      string    `json:"ownerId" firestore:"ownerId"`
	OwnerEmail   string    `json:"ownerEmail" firestore:"ownerEmail"`
	IsTeamMember bool      `json:"isTeamMember" firestore:"isTeamMember"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt"`
}

// TeamMember is a roster entry at users/{ownerId}/teamMembers/{memberId}.
type TeamMember struct {
	ID         string    `json:"id" firestore:"id"`
	Email      string    `json:"email" firestore:"email"`
	Name       string    `json:"name" firestore:"name"`
	Role       Role      `json:"role" firestore:"role"`
	OwnerID    string    `json:"ownerId" firestore:"ownerId"`
	OwnerEmail string    `json:"ownerEmail" firestore:"ownerEmail"`
	CreatedAt  time.Time `json:"createdAt" firestore:"createdAt"`
}

// ResolvedAccessContext is the outcome of access resolution for one sign-in.
// It is derived, never persisted: a pure function of the account record and
// the owner's permission table at resolution time.
//
// Invariant: DataOwnerID == Principal.ID exactly when Role == RoleOwner.
type ResolvedAccessContext struct {
	Principal   Principal        `json:"principal"`
	DataOwnerID string           `json:"dataOwnerId"`
	Role        Role             `json:"role"`
	Permissions PermissionVector `json:"permissions"`
	// Degraded is set when the account record could not be read and the
	// context fell back to owner-of-self. Callers should warn, not block.
	Degraded bool `json:"degraded,omitempty"`
}

// IsOwner reports whether the context operates on its own data.
func (c *ResolvedAccessContext) IsOwner() bool {
	return c.Role == RoleOwner
}
