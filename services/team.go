package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"madebread/backend/models"
	"madebread/backend/security"
)

const generatedPasswordLength = 10

// ProvisionTeamMember creates a team member under the calling owner: a new
// auth account, an account record linking the member to the owner's data,
// and a roster entry. The generated password is returned exactly once and
// not retained; only a downstream reset flow can recover access.
//
// The steps run in order with no rollback. A failure after the auth account
// exists returns *ProvisioningInconsistencyError naming the stage reached,
// so the operator knows manual cleanup is needed.
func (r *AccessResolver) ProvisionTeamMember(ctx context.Context, ownerAccess *models.ResolvedAccessContext, email string, role models.Role, name string) (*models.TeamMember, string, error) {
	if ownerAccess == nil || ownerAccess.Role != models.RoleOwner {
		return nil, "", ErrPermissionDenied
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || name == "" {
		return nil, "", fmt.Errorf("email and name are required")
	}
	if parsed, ok := models.ParseRole(string(role)); !ok || parsed == models.RoleOwner {
		return nil, "", fmt.Errorf("invalid team member role: %s", role)
	}

	ownerID := ownerAccess.Principal.ID

	// Duplicate guard against the current roster, case-insensitive.
	members, err := r.store.ListTeamMembers(ctx, ownerID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing team members: %w", err)
	}
	for _, m := range members {
		if strings.EqualFold(m.Email, email) {
			return nil, "", ErrDuplicateMember
		}
	}

	r.provisioning.Store(true)
	defer r.provisioning.Store(false)

	password, err := security.GeneratePassword(generatedPasswordLength)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate password: %w", err)
	}

	memberID, err := r.identity.CreateUser(ctx, email, password)
	if err != nil {
		// Nothing was created yet; this is a clean failure.
		return nil, "", fmt.Errorf("failed to create team member account: %w", err)
	}
	log.Printf("Provisioning %s: stage %s (uid %s)", email, StageCreatedIdentity, memberID)

	record := &models.AccountRecord{
		Email:        email,
		Name:         name,
		Role:         string(role),
		OwnerID:      ownerID,
		OwnerEmail:   ownerAccess.Principal.Email,
		IsTeamMember: true,
		CreatedAt:    time.Now(),
	}
	if err := r.store.SetAccountRecord(ctx, memberID, record); err != nil {
		return nil, "", &ProvisioningInconsistencyError{
			Stage:    StageCreatedIdentity,
			MemberID: memberID,
			Email:    email,
			Err:      err,
		}
	}
	log.Printf("Provisioning %s: stage %s", email, StageLinkedRecord)

	member := &models.TeamMember{
		ID:         memberID,
		Email:      email,
		Name:       name,
		Role:       role,
		OwnerID:    ownerID,
		OwnerEmail: ownerAccess.Principal.Email,
		CreatedAt:  record.CreatedAt,
	}
	if err := r.store.SetTeamMember(ctx, ownerID, member); err != nil {
		return nil, "", &ProvisioningInconsistencyError{
			Stage:    StageLinkedRecord,
			MemberID: memberID,
			Email:    email,
			Err:      err,
		}
	}
	log.Printf("Provisioning %s: stage %s", email, StageRostered)

	return member, password, nil
}

// ListTeamMembers returns the owner's roster.
func (r *AccessResolver) ListTeamMembers(ctx context.Context, ownerAccess *models.ResolvedAccessContext) ([]models.TeamMember, error) {
	if ownerAccess == nil || ownerAccess.Role != models.RoleOwner {
		return nil, ErrPermissionDenied
	}
	return r.store.ListTeamMembers(ctx, ownerAccess.Principal.ID)
}

// RemoveTeamMember deletes a member's roster entry and account record.
// The auth account itself is left to the identity provider's console,
// matching the original behavior.
func (r *AccessResolver) RemoveTeamMember(ctx context.Context, ownerAccess *models.ResolvedAccessContext, memberID string) error {
	if ownerAccess == nil || ownerAccess.Role != models.RoleOwner {
		return ErrPermissionDenied
	}
	return r.store.DeleteTeamMember(ctx, ownerAccess.Principal.ID, memberID)
}
