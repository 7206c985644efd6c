package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"madebread/backend/models"
)

// LocalStore implements AccountStore on SQLite. It is the local fallback
// used when Firebase is not configured (development and tests), mirroring
// the cloud document layout with plain tables.
type LocalStore struct {
	db *sql.DB
}

// NewLocalStore wraps an open database handle. The schema is created by the
// migrations package.
func NewLocalStore(db *sql.DB) *LocalStore {
	return &LocalStore{db: db}
}

func (s *LocalStore) GetAccountRecord(ctx context.Context, id string) (*models.AccountRecord, error) {
	var rec models.AccountRecord
	var role, ownerID, ownerEmail sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT email, name, role, owner_id, owner_email, is_team_member, created_at
		FROM users WHERE id = ?
	`, id).Scan(&rec.Email, &rec.Name, &role, &ownerID, &ownerEmail, &rec.IsTeamMember, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read account record %s: %w", id, err)
	}

	rec.Role = role.String
	rec.OwnerID = ownerID.String
	rec.OwnerEmail = ownerEmail.String
	return &rec, nil
}

func (s *LocalStore) SetAccountRecord(ctx context.Context, id string, rec *models.AccountRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, role, owner_id, owner_email, is_team_member, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			name = excluded.name,
			role = excluded.role,
			owner_id = excluded.owner_id,
			owner_email = excluded.owner_email,
			is_team_member = excluded.is_team_member
	`, id, rec.Email, rec.Name, rec.Role, rec.OwnerID, rec.OwnerEmail, rec.IsTeamMember, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to write account record %s: %w", id, err)
	}
	return nil
}

func (s *LocalStore) ListTeamMembers(ctx context.Context, ownerID string) ([]models.TeamMember, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT member_id, email, name, role, owner_email, created_at
		FROM team_members WHERE owner_id = ?
		ORDER BY created_at
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members for %s: %w", ownerID, err)
	}
	defer rows.Close()

	var members []models.TeamMember
	for rows.Next() {
		m := models.TeamMember{OwnerID: ownerID}
		var role string
		if err := rows.Scan(&m.ID, &m.Email, &m.Name, &role, &m.OwnerEmail, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		m.Role = models.Role(role)
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *LocalStore) SetTeamMember(ctx context.Context, ownerID string, member *models.TeamMember) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO team_members (owner_id, member_id, email, name, role, owner_email, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner_id, member_id) DO UPDATE SET
			email = excluded.email,
			name = excluded.name,
			role = excluded.role
	`, ownerID, member.ID, member.Email, member.Name, string(member.Role), member.OwnerEmail, member.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to write team member %s: %w", member.ID, err)
	}
	return nil
}

func (s *LocalStore) DeleteTeamMember(ctx context.Context, ownerID, memberID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to remove team member %s: %w", memberID, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM team_members WHERE owner_id = ? AND member_id = ?", ownerID, memberID); err != nil {
		return fmt.Errorf("failed to remove roster entry %s: %w", memberID, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", memberID); err != nil {
		return fmt.Errorf("failed to remove account record %s: %w", memberID, err)
	}
	return tx.Commit()
}

func (s *LocalStore) GetCustomPermissions(ctx context.Context, ownerID string) (map[models.Role]models.PermissionVector, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT role, permissions FROM custom_permissions WHERE owner_id = ?", ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to read custom permissions for %s: %w", ownerID, err)
	}
	defer rows.Close()

	overrides := make(map[models.Role]models.PermissionVector)
	for rows.Next() {
		var role, encoded string
		if err := rows.Scan(&role, &encoded); err != nil {
			return nil, fmt.Errorf("failed to scan custom permissions: %w", err)
		}
		var vector models.PermissionVector
		if err := json.Unmarshal([]byte(encoded), &vector); err != nil {
			return nil, fmt.Errorf("failed to decode custom permissions for role %s: %w", role, err)
		}
		overrides[models.Role(role)] = vector
	}
	if len(overrides) == 0 {
		return nil, rows.Err()
	}
	return overrides, rows.Err()
}

func (s *LocalStore) SetCustomPermissions(ctx context.Context, ownerID string, overrides map[models.Role]models.PermissionVector) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to save custom permissions for %s: %w", ownerID, err)
	}
	defer tx.Rollback()

	// Replace wholesale; last write wins, same as the cloud store.
	if _, err := tx.ExecContext(ctx, "DELETE FROM custom_permissions WHERE owner_id = ?", ownerID); err != nil {
		return fmt.Errorf("failed to clear custom permissions for %s: %w", ownerID, err)
	}
	for role, vector := range overrides {
		encoded, err := json.Marshal(vector)
		if err != nil {
			return fmt.Errorf("failed to encode custom permissions for role %s: %w", role, err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO custom_permissions (owner_id, role, permissions) VALUES (?, ?, ?)",
			ownerID, string(role), string(encoded)); err != nil {
			return fmt.Errorf("failed to save custom permissions for role %s: %w", role, err)
		}
	}
	return tx.Commit()
}

// LocalIdentity implements Identity on SQLite for development and tests.
// Generated passwords are deliberately not stored: the credential is shown
// once at provisioning time and is not recoverable afterward.
type LocalIdentity struct {
	db *sql.DB
}

// NewLocalIdentity wraps an open database handle.
func NewLocalIdentity(db *sql.DB) *LocalIdentity {
	return &LocalIdentity{db: db}
}

func (i *LocalIdentity) CreateUser(ctx context.Context, email, _ string) (string, error) {
	email = strings.ToLower(email)
	if _, err := i.GetUserByEmail(ctx, email); err == nil {
		return "", fmt.Errorf("email already in use: %s", email)
	}

	uid := uuid.NewString()
	if _, err := i.db.ExecContext(ctx, "INSERT INTO identities (uid, email) VALUES (?, ?)", uid, email); err != nil {
		return "", fmt.Errorf("failed to create local identity for %s: %w", email, err)
	}
	return uid, nil
}

func (i *LocalIdentity) GetUserByEmail(ctx context.Context, email string) (string, error) {
	var uid string
	err := i.db.QueryRowContext(ctx, "SELECT uid FROM identities WHERE email = ?", strings.ToLower(email)).Scan(&uid)
	if err == sql.ErrNoRows {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up %s: %w", email, err)
	}
	return uid, nil
}
