package domain

import (
	"reflect"
	"testing"
)

func TestBuildNavigation_AllRolesNonEmpty(t *testing.T) {
	for _, role := range Roles {
		menu := BuildNavigation(role)
		if len(menu) == 0 {
			t.Fatalf("role %q: expected non-empty menu", role)
		}
	}
}

func TestBuildNavigation_Deterministic(t *testing.T) {
	for _, role := range Roles {
		first := BuildNavigation(role)
		second := BuildNavigation(role)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("role %q: repeated calls returned different menus", role)
		}
	}
}

func TestBuildNavigation_UnknownRoleEmpty(t *testing.T) {
	if menu := BuildNavigation(Role("guest")); len(menu) != 0 {
		t.Fatalf("expected empty menu for unknown role, got %d entries", len(menu))
	}
}

func TestBuildNavigation_ReturnsCopies(t *testing.T) {
	menu := BuildNavigation(RoleSuperAdmin)
	menu[0].Title = "mutated"
	if again := BuildNavigation(RoleSuperAdmin); again[0].Title == "mutated" {
		t.Fatalf("mutating a returned menu leaked into the table")
	}
}

func TestBuildNavigation_RoleSpecificEntries(t *testing.T) {
	hasEntry := func(entries []NavigationEntry, title string) bool {
		var found bool
		var walk func([]NavigationEntry)
		walk = func(es []NavigationEntry) {
			for _, e := range es {
				if e.Title == title {
					found = true
				}
				walk(e.Children)
			}
		}
		walk(entries)
		return found
	}

	teacher := BuildNavigation(RoleTeacher)
	if !hasEntry(teacher, "Start Learning") {
		t.Fatalf("teacher menu missing Start Learning")
	}
	if hasEntry(teacher, "Schools") {
		t.Fatalf("teacher menu must not expose Schools")
	}

	super := BuildNavigation(RoleSuperAdmin)
	if !hasEntry(super, "Schools") {
		t.Fatalf("super admin menu missing Schools")
	}
	if !hasEntry(super, "Series") {
		t.Fatalf("super admin menu missing nested Series entry")
	}
}

func TestRoleMayAccess(t *testing.T) {
	if !RoleMayAccess(RoleSuperAdmin, "/homepage/schools/42/edit") {
		t.Fatalf("super admin should reach schools subtree")
	}
	if RoleMayAccess(RoleTeacher, "/homepage/schools") {
		t.Fatalf("teacher must not hold a schools capability")
	}
	if RoleMayAccess(RoleTeacher, "/homepage/schoolsX") {
		t.Fatalf("prefix match must respect path segment boundaries")
	}
	if !RoleMayAccess(RoleStudent, "/homepage/learning") {
		t.Fatalf("student should reach the learning page")
	}
}

func TestIconString(t *testing.T) {
	if IconLearning.String() != "learning" {
		t.Fatalf("unexpected icon name: %s", IconLearning)
	}
	if Icon(999).String() != "none" {
		t.Fatalf("out-of-range icon should render as none")
	}
}
