package permissions

import "testing"

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{RoleCitizen, false},
		{RoleDepartmentAdmin, true},
		{RoleSuperAdmin, true},
		{"", false},
		{"unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			if got := IsAdmin(tt.role); got != tt.want {
				t.Errorf("IsAdmin(%q) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestCanViewGrievance(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		userID  string
		ownerID string
		want    bool
	}{
		{"owner citizen", RoleCitizen, "u1", "u1", true},
		{"non-owner citizen", RoleCitizen, "u1", "u2", false},
		{"department admin non-owner", RoleDepartmentAdmin, "a1", "u2", true},
		{"super admin non-owner", RoleSuperAdmin, "a1", "u2", true},
		{"empty user never owner", RoleCitizen, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanViewGrievance(tt.role, tt.userID, tt.ownerID); got != tt.want {
				t.Errorf("CanViewGrievance(%q, %q, %q) = %v, want %v",
					tt.role, tt.userID, tt.ownerID, got, tt.want)
			}
		})
	}
}
