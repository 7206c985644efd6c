package models

import (
	"fmt"
	"sync"
)

// PermissionVector maps every capability to whether the role may use it.
// Vectors are always complete: all six capabilities carry an explicit value.
type PermissionVector map[Capability]bool

// Clone returns an independent copy of the vector.
func (v PermissionVector) Clone() PermissionVector {
	out := make(PermissionVector, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// defaultPermissions is the built-in role/capability matrix. Other components
// treat this table as a fixed contract; do not edit entries without updating
// every caller that renders or checks it.
var defaultPermissions = map[Role]PermissionVector{
	RoleOwner: {
		CapabilityExpenses:      true,
		CapabilityIncome:        true,
		CapabilityPettyCash:     true,
		CapabilityCheckPrinting: true,
		CapabilityTeam:          true,
		CapabilityAnalytics:     true,
	},
	RolePurchaser: {
		CapabilityExpenses:      true,
		CapabilityIncome:        true,
		CapabilityPettyCash:     true,
		CapabilityCheckPrinting: true,
		CapabilityTeam:          false,
		CapabilityAnalytics:     true,
	},
	RoleCollector: {
		CapabilityExpenses:      false,
		CapabilityIncome:        true,
		CapabilityPettyCash:     false,
		CapabilityCheckPrinting: false,
		CapabilityTeam:          false,
		CapabilityAnalytics:     true,
	},
	RolePettyCashManager: {
		CapabilityExpenses:      false,
		CapabilityIncome:        false,
		CapabilityPettyCash:     true,
		CapabilityCheckPrinting: false,
		CapabilityTeam:          false,
		CapabilityAnalytics:     true,
	},
	RoleMember: {
		CapabilityExpenses:      true,
		CapabilityIncome:        false,
		CapabilityPettyCash:     false,
		CapabilityCheckPrinting: false,
		CapabilityTeam:          false,
		CapabilityAnalytics:     true,
	},
}

// DefaultPermissionVector returns a copy of the built-in vector for a role.
// Unknown roles get an all-false vector.
func DefaultPermissionVector(role Role) PermissionVector {
	defaults, ok := defaultPermissions[role]
	if !ok {
		v := make(PermissionVector, len(Capabilities))
		for _, c := range Capabilities {
			v[c] = false
		}
		return v
	}
	return defaults.Clone()
}

// PermissionTable holds one owner account's permission state: the built-in
// defaults plus the owner-edited overrides, keyed by role. Tables are passed
// to the resolver explicitly; there is no package-level mutable table.
type PermissionTable struct {
	mu        sync.RWMutex
	overrides map[Role]PermissionVector
}

// NewPermissionTable returns a table with no overrides.
func NewPermissionTable() *PermissionTable {
	return &PermissionTable{overrides: make(map[Role]PermissionVector)}
}

// Has reports whether a role may use a capability. Owner is granted
// everything unconditionally and bypasses both tables. A role-keyed override
// wins over the default; unknown roles or capabilities resolve to false.
func (t *PermissionTable) Has(role Role, capability Capability) bool {
	if role == RoleOwner {
		return true
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	if vector, ok := t.overrides[role]; ok {
		if granted, ok := vector[capability]; ok {
			return granted
		}
		return false
	}

	defaults, ok := defaultPermissions[role]
	if !ok {
		return false
	}
	return defaults[capability]
}

// Effective returns the vector currently in force for a role: the override
// if one exists, the default otherwise. The result is a copy.
func (t *PermissionTable) Effective(role Role) PermissionVector {
	if role == RoleOwner {
		return DefaultPermissionVector(RoleOwner)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	if vector, ok := t.overrides[role]; ok {
		return vector.Clone()
	}
	return DefaultPermissionVector(role)
}

// Set updates one capability for a role. The first edit to a role seeds the
// override with a full copy of the default vector, so overrides are never
// partial and "unset" can't be confused with "explicitly false". Editing the
// owner row is rejected: the owner vector is constant.
func (t *PermissionTable) Set(role Role, capability Capability, granted bool) error {
	if role == RoleOwner {
		return fmt.Errorf("owner permissions are fixed and cannot be edited")
	}
	if _, ok := defaultPermissions[role]; !ok {
		return fmt.Errorf("unknown role: %s", role)
	}
	if _, ok := ParseCapability(string(capability)); !ok {
		return fmt.Errorf("unknown capability: %s", capability)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.overrides[role]; !ok {
		t.overrides[role] = defaultPermissions[role].Clone()
	}
	t.overrides[role][capability] = granted
	return nil
}

// Reset discards every override; defaults apply again for all roles.
func (t *PermissionTable) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.overrides = make(map[Role]PermissionVector)
}

// Overrides returns a deep copy of the override map, for persistence.
func (t *PermissionTable) Overrides() map[Role]PermissionVector {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[Role]PermissionVector, len(t.overrides))
	for role, vector := range t.overrides {
		out[role] = vector.Clone()
	}
	return out
}

// ReplaceOverrides installs a loaded override map wholesale, dropping any
// owner entry and any unknown role so bad stored data can't widen access.
func (t *PermissionTable) ReplaceOverrides(overrides map[Role]PermissionVector) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.overrides = make(map[Role]PermissionVector, len(overrides))
	for role, vector := range overrides {
		if role == RoleOwner {
			continue
		}
		if _, ok := defaultPermissions[role]; !ok {
			continue
		}
		t.overrides[role] = vector.Clone()
	}
}
