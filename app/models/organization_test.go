package models

import "testing"

func TestMakeSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme Construction", "acme-construction"},
		{"  Müller & Söhne GmbH  ", "müller-söhne-gmbh"},
		{"---", "workspace"},
		{"", "workspace"},
		{"Already-Slugged", "already-slugged"},
		{"Dots.and/slashes", "dots-and-slashes"},
	}

	for _, tt := range tests {
		if got := MakeSlug(tt.in); got != tt.want {
			t.Errorf("MakeSlug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOrganizationMemberCanManage(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{ORG_ROLE_OWNER, true},
		{ORG_ROLE_ADMIN, true},
		{ORG_ROLE_MEMBER, false},
		{"", false},
	}

	for _, tt := range tests {
		m := OrganizationMember{Role: tt.role}
		if got := m.CanManage(); got != tt.want {
			t.Errorf("CanManage() with role %q = %v, want %v", tt.role, got, tt.want)
		}
	}
}
