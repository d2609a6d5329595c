package models

import (
	"sort"
	"testing"
)

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		role string
		want string
		ok   bool
	}{
		{RoleAdmin, RoleSurveyor, true},
		{RoleSurveyor, RoleSurveyor, true},
		{RoleUser, RoleSurveyor, false},
		{RoleProUser, RoleUser, true},
		{RoleGuest, RoleUser, false},
		{"superuser", RoleGuest, false},
		{RoleAdmin, "superuser", false},
	}

	for _, tt := range tests {
		if got := RoleAtLeast(tt.role, tt.want); got != tt.ok {
			t.Errorf("RoleAtLeast(%q, %q) = %v, want %v", tt.role, tt.want, got, tt.ok)
		}
	}
}

func TestRolesBelow(t *testing.T) {
	below := RolesBelow(RoleProUser)
	sort.Strings(below)

	want := []string{RoleGuest, RoleSurveyor, RoleUser}
	if len(below) != len(want) {
		t.Fatalf("expected %v, got %v", want, below)
	}
	for i := range want {
		if below[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, below)
		}
	}

	if got := RolesBelow("superuser"); got != nil {
		t.Errorf("unknown role should yield nil, got %v", got)
	}
	if got := RolesBelow(RoleGuest); len(got) != 0 {
		t.Errorf("nothing ranks below guest, got %v", got)
	}
}
