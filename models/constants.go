package models

// Role identifies the job a team member performs. The set is closed;
// anything else parses to RoleUnknown.
type Role string

const (
	RoleOwner            Role = "owner"
	RolePurchaser        Role = "purchaser"
	RoleCollector        Role = "collector"
	RolePettyCashManager Role = "pettycash-manager"
	RoleMember           Role = "member"
	RoleUnknown          Role = "unknown"
)

// Roles lists every assignable role, owner first.
var Roles = []Role{
	RoleOwner,
	RolePurchaser,
	RoleCollector,
	RolePettyCashManager,
	RoleMember,
}

// ParseRole maps a stored role string onto the closed enumeration.
// The second return value reports whether the string was recognized.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleOwner, RolePurchaser, RoleCollector, RolePettyCashManager, RoleMember:
		return Role(s), true
	}
	return RoleUnknown, false
}

// Capability names one guarded feature area of the tracker.
type Capability string

const (
	CapabilityExpenses      Capability = "expenses"
	CapabilityIncome        Capability = "income"
	CapabilityPettyCash     Capability = "pettycash"
	CapabilityCheckPrinting Capability = "checkprinting"
	CapabilityTeam          Capability = "team"
	CapabilityAnalytics     Capability = "analytics"
)

// Capabilities lists every capability in matrix display order.
var Capabilities = []Capability{
	CapabilityExpenses,
	CapabilityIncome,
	CapabilityPettyCash,
	CapabilityCheckPrinting,
	CapabilityTeam,
	CapabilityAnalytics,
}

// ParseCapability maps a capability string onto the closed enumeration.
func ParseCapability(s string) (Capability, bool) {
	switch Capability(s) {
	case CapabilityExpenses, CapabilityIncome, CapabilityPettyCash,
		CapabilityCheckPrinting, CapabilityTeam, CapabilityAnalytics:
		return Capability(s), true
	}
	return "", false
}
