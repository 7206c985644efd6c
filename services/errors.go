package services

import (
	"errors"
	"fmt"
)

// ErrPermissionDenied is returned when a non-owner calls an owner-only
// operation. It is surfaced to the caller and never retried.
var ErrPermissionDenied = errors.New("only owners can perform this action")

// ErrDuplicateMember is returned when provisioning is attempted for an email
// already on this owner's team.
var ErrDuplicateMember = errors.New("this person is already a team member")

// ErrProvisioningInProgress is returned for capability checks attempted while
// a team member is being provisioned. The context is not ready yet; this is
// not a denial.
var ErrProvisioningInProgress = errors.New("team member provisioning in progress")

// AccessResolutionError reports that the account record could not be read
// during access resolution. The resolver degrades to an owner-of-self
// context instead of blocking; callers should surface this as a warning.
type AccessResolutionError struct {
	PrincipalID string
	Err         error
}

func (e *AccessResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve access for %s, falling back to owner-of-self: %v", e.PrincipalID, e.Err)
}

func (e *AccessResolutionError) Unwrap() error { return e.Err }

// ProvisionStage names how far a team-member provision got before failing.
type ProvisionStage string

const (
	StageCreatedIdentity ProvisionStage = "created-identity"
	StageLinkedRecord    ProvisionStage = "linked-record"
	StageRostered        ProvisionStage = "rostered"
)

// ProvisioningInconsistencyError reports a provision that failed after the
// auth account was already created. There is no rollback: the orphaned
// identity needs manual cleanup, so this error names it explicitly instead
// of hiding behind a generic failure.
type ProvisioningInconsistencyError struct {
	Stage    ProvisionStage
	MemberID string
	Email    string
	Err      error
}

func (e *ProvisioningInconsistencyError) Error() string {
	return fmt.Sprintf("provisioning of %s stopped after stage %s; auth account %s exists without a complete team link and needs manual cleanup: %v",
		e.Email, e.Stage, e.MemberID, e.Err)
}

func (e *ProvisioningInconsistencyError) Unwrap() error { return e.Err }
