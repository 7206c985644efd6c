package models

import "testing"

// expectedDefaults mirrors the built-in role/capability matrix. Kept as a
// separate literal so a typo in the production table can't hide.
var expectedDefaults = map[Role]map[Capability]bool{
	RoleOwner: {
		CapabilityExpenses: true, CapabilityIncome: true, CapabilityPettyCash: true,
		CapabilityCheckPrinting: true, CapabilityTeam: true, CapabilityAnalytics: true,
	},
	RolePurchaser: {
		CapabilityExpenses: true, CapabilityIncome: true, CapabilityPettyCash: true,
		CapabilityCheckPrinting: true, CapabilityTeam: false, CapabilityAnalytics: true,
	},
	RoleCollector: {
		CapabilityExpenses: false, CapabilityIncome: true, CapabilityPettyCash: false,
		CapabilityCheckPrinting: false, CapabilityTeam: false, CapabilityAnalytics: true,
	},
	RolePettyCashManager: {
		CapabilityExpenses: false, CapabilityIncome: false, CapabilityPettyCash: true,
		CapabilityCheckPrinting: false, CapabilityTeam: false, CapabilityAnalytics: true,
	},
	RoleMember: {
		CapabilityExpenses: true, CapabilityIncome: false, CapabilityPettyCash: false,
		CapabilityCheckPrinting: false, CapabilityTeam: false, CapabilityAnalytics: true,
	},
}

func TestDefaultPermissionMatrix(t *testing.T) {
	table := NewPermissionTable()

	for role, vector := range expectedDefaults {
		for capability, want := range vector {
			if got := table.Has(role, capability); got != want {
				t.Errorf("Has(%s, %s) = %v, want %v", role, capability, got, want)
			}
		}
	}
}

func TestAnalyticsGrantedForEveryRole(t *testing.T) {
	table := NewPermissionTable()

	for _, role := range Roles {
		if !table.Has(role, CapabilityAnalytics) {
			t.Errorf("expected analytics granted for role %s", role)
		}
	}
}

func TestOwnerAlwaysGranted(t *testing.T) {
	table := NewPermissionTable()

	// Even a hostile override map must not be able to restrict the owner.
	table.ReplaceOverrides(map[Role]PermissionVector{
		RoleOwner: {CapabilityTeam: false, CapabilityExpenses: false},
	})

	for _, capability := range Capabilities {
		if !table.Has(RoleOwner, capability) {
			t.Errorf("expected owner granted for %s regardless of overrides", capability)
		}
	}
}

func TestUnknownRoleDenied(t *testing.T) {
	table := NewPermissionTable()

	for _, capability := range Capabilities {
		if table.Has(RoleUnknown, capability) {
			t.Errorf("expected unknown role denied for %s", capability)
		}
		if table.Has(Role("superadmin"), capability) {
			t.Errorf("expected unrecognized role denied for %s", capability)
		}
	}
}

func TestUnknownCapabilityDenied(t *testing.T) {
	table := NewPermissionTable()

	if table.Has(RolePurchaser, Capability("payroll")) {
		t.Error("expected unknown capability denied")
	}

	// Also with an override in place: overrides are closed-world too.
	if err := table.Set(RolePurchaser, CapabilityTeam, true); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if table.Has(RolePurchaser, Capability("payroll")) {
		t.Error("expected unknown capability denied after override")
	}
}

func TestSetSeedsCompleteVector(t *testing.T) {
	table := NewPermissionTable()

	if err := table.Set(RoleCollector, CapabilityCheckPrinting, true); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	overrides := table.Overrides()
	vector, ok := overrides[RoleCollector]
	if !ok {
		t.Fatal("expected an override vector for collector")
	}
	if len(vector) != len(Capabilities) {
		t.Errorf("expected a complete vector of %d capabilities, got %d", len(Capabilities), len(vector))
	}

	// The edited key changed; everything else kept its default.
	if !table.Has(RoleCollector, CapabilityCheckPrinting) {
		t.Error("expected checkprinting granted after override")
	}
	if !table.Has(RoleCollector, CapabilityIncome) {
		t.Error("expected income to keep its default grant")
	}
	if table.Has(RoleCollector, CapabilityExpenses) {
		t.Error("expected expenses to keep its default denial")
	}
}

func TestSetIdempotent(t *testing.T) {
	once := NewPermissionTable()
	twice := NewPermissionTable()

	if err := once.Set(RoleMember, CapabilityIncome, true); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := twice.Set(RoleMember, CapabilityIncome, true); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	a, b := once.Effective(RoleMember), twice.Effective(RoleMember)
	for _, capability := range Capabilities {
		if a[capability] != b[capability] {
			t.Errorf("vectors differ at %s: %v vs %v", capability, a[capability], b[capability])
		}
	}
}

func TestSetRejectsOwnerAndUnknown(t *testing.T) {
	table := NewPermissionTable()

	if err := table.Set(RoleOwner, CapabilityTeam, false); err == nil {
		t.Error("expected an error editing the owner row")
	}
	if err := table.Set(Role("superadmin"), CapabilityTeam, true); err == nil {
		t.Error("expected an error for an unknown role")
	}
	if err := table.Set(RoleMember, Capability("payroll"), true); err == nil {
		t.Error("expected an error for an unknown capability")
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	table := NewPermissionTable()

	if err := table.Set(RoleCollector, CapabilityCheckPrinting, true); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := table.Set(RoleMember, CapabilityExpenses, false); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	table.Reset()

	if len(table.Overrides()) != 0 {
		t.Error("expected no overrides after reset")
	}
	for role, vector := range expectedDefaults {
		for capability, want := range vector {
			if got := table.Has(role, capability); got != want {
				t.Errorf("after reset Has(%s, %s) = %v, want %v", role, capability, got, want)
			}
		}
	}
}

func TestReplaceOverridesDropsBadRoles(t *testing.T) {
	table := NewPermissionTable()

	table.ReplaceOverrides(map[Role]PermissionVector{
		RoleCollector:       {CapabilityExpenses: true, CapabilityIncome: true, CapabilityPettyCash: false, CapabilityCheckPrinting: false, CapabilityTeam: false, CapabilityAnalytics: true},
		Role("superadmin"):  {CapabilityTeam: true},
		RoleOwner:           {CapabilityTeam: false},
	})

	overrides := table.Overrides()
	if len(overrides) != 1 {
		t.Errorf("expected only the collector override to survive, got %d entries", len(overrides))
	}
	if !table.Has(RoleCollector, CapabilityExpenses) {
		t.Error("expected the loaded collector override to apply")
	}
}
