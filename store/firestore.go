package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"madebread/backend/models"
)

const (
	usersCollection       = "users"
	teamMembersCollection = "teamMembers"
	customPermissionsKey  = "customPermissions"
)

// FirestoreStore implements AccountStore on Cloud Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore wraps an initialized Firestore client.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) userDoc(id string) *firestore.DocumentRef {
	return s.client.Collection(usersCollection).Doc(id)
}

func (s *FirestoreStore) GetAccountRecord(ctx context.Context, id string) (*models.AccountRecord, error) {
	snap, err := s.userDoc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read account record %s: %w", id, err)
	}

	var rec models.AccountRecord
	if err := snap.DataTo(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode account record %s: %w", id, err)
	}
	return &rec, nil
}

func (s *FirestoreStore) SetAccountRecord(ctx context.Context, id string, rec *models.AccountRecord) error {
	if _, err := s.userDoc(id).Set(ctx, rec); err != nil {
		return fmt.Errorf("failed to write account record %s: %w", id, err)
	}
	return nil
}

func (s *FirestoreStore) ListTeamMembers(ctx context.Context, ownerID string) ([]models.TeamMember, error) {
	iter := s.userDoc(ownerID).Collection(teamMembersCollection).Documents(ctx)
	defer iter.Stop()

	var members []models.TeamMember
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list team members for %s: %w", ownerID, err)
		}

		var m models.TeamMember
		if err := snap.DataTo(&m); err != nil {
			return nil, fmt.Errorf("failed to decode team member %s: %w", snap.Ref.ID, err)
		}
		members = append(members, m)
	}
	return members, nil
}

func (s *FirestoreStore) SetTeamMember(ctx context.Context, ownerID string, member *models.TeamMember) error {
	ref := s.userDoc(ownerID).Collection(teamMembersCollection).Doc(member.ID)
	if _, err := ref.Set(ctx, member); err != nil {
		return fmt.Errorf("failed to write team member %s: %w", member.ID, err)
	}
	return nil
}

// DeleteTeamMember removes the roster entry and the member's account record
// in a single batched write, so a half-removed member can't linger.
func (s *FirestoreStore) DeleteTeamMember(ctx context.Context, ownerID, memberID string) error {
	batch := s.client.Batch()
	batch.Delete(s.userDoc(ownerID).Collection(teamMembersCollection).Doc(memberID))
	batch.Delete(s.userDoc(memberID))
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to remove team member %s: %w", memberID, err)
	}
	return nil
}

func (s *FirestoreStore) GetCustomPermissions(ctx context.Context, ownerID string) (map[models.Role]models.PermissionVector, error) {
	snap, err := s.userDoc(ownerID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read custom permissions for %s: %w", ownerID, err)
	}

	raw, ok := snap.Data()[customPermissionsKey].(map[string]interface{})
	if !ok {
		return nil, nil
	}

	overrides := make(map[models.Role]models.PermissionVector, len(raw))
	for roleKey, value := range raw {
		vectorData, ok := value.(map[string]interface{})
		if !ok {
			continue
		}
		vector := make(models.PermissionVector, len(vectorData))
		for capKey, granted := range vectorData {
			b, ok := granted.(bool)
			if !ok {
				continue
			}
			vector[models.Capability(capKey)] = b
		}
		overrides[models.Role(roleKey)] = vector
	}
	return overrides, nil
}

func (s *FirestoreStore) SetCustomPermissions(ctx context.Context, ownerID string, overrides map[models.Role]models.PermissionVector) error {
	// Stored as a plain nested map field on the owner document. Last write
	// wins: two owner sessions saving at once overwrite each other.
	data := make(map[string]map[string]bool, len(overrides))
	for role, vector := range overrides {
		entry := make(map[string]bool, len(vector))
		for capability, granted := range vector {
			entry[string(capability)] = granted
		}
		data[string(role)] = entry
	}

	_, err := s.userDoc(ownerID).Set(ctx, map[string]interface{}{
		customPermissionsKey: data,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to save custom permissions for %s: %w", ownerID, err)
	}
	return nil
}

// FirebaseIdentity implements Identity over the Firebase Auth admin client.
// Admin account creation runs server-side and does not touch any session.
type FirebaseIdentity struct {
	client *auth.Client
}

// NewFirebaseIdentity wraps an initialized Firebase Auth client.
func NewFirebaseIdentity(client *auth.Client) *FirebaseIdentity {
	return &FirebaseIdentity{client: client}
}

func (i *FirebaseIdentity) CreateUser(ctx context.Context, email, password string) (string, error) {
	params := (&auth.UserToCreate{}).Email(email).Password(password)
	user, err := i.client.CreateUser(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to create auth account for %s: %w", email, err)
	}
	return user.UID, nil
}

func (i *FirebaseIdentity) GetUserByEmail(ctx context.Context, email string) (string, error) {
	user, err := i.client.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to look up %s: %w", email, err)
	}
	return user.UID, nil
}
