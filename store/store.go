// Package store holds the document-store and identity-provider collaborators
// behind the access resolver. The cloud implementation is Firestore; a SQLite
// implementation backs local development and tests.
package store

import (
	"context"
	"errors"

	"madebread/backend/models"
)

// ErrUserNotFound is returned by Identity lookups for unknown emails.
var ErrUserNotFound = errors.New("user not found")

// AccountStore is the keyed document store the resolver reads and the
// provisioning flow writes. Account records live at users/{id}; the team
// roster at users/{ownerId}/teamMembers/{memberId}; permission overrides as
// the customPermissions field on the owner's users/{ownerId} document.
type AccountStore interface {
	// GetAccountRecord returns nil with no error when the record does not
	// exist; the resolver treats that as a fresh owner.
	GetAccountRecord(ctx context.Context, id string) (*models.AccountRecord, error)
	SetAccountRecord(ctx context.Context, id string, rec *models.AccountRecord) error

	ListTeamMembers(ctx context.Context, ownerID string) ([]models.TeamMember, error)
	SetTeamMember(ctx context.Context, ownerID string, member *models.TeamMember) error
	// DeleteTeamMember removes both the roster entry and the member's own
	// account record in one operation.
	DeleteTeamMember(ctx context.Context, ownerID, memberID string) error

	GetCustomPermissions(ctx context.Context, ownerID string) (map[models.Role]models.PermissionVector, error)
	SetCustomPermissions(ctx context.Context, ownerID string, overrides map[models.Role]models.PermissionVector) error
}

// Identity is the account-creation side of the identity provider. The admin
// API creates accounts server-side, so provisioning a team member never
// disturbs the owner's live session.
type Identity interface {
	// CreateUser registers a new account and returns its uid.
	CreateUser(ctx context.Context, email, password string) (string, error)
	// GetUserByEmail returns the uid for an email, or ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (string, error)
}
