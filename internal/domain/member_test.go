package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNewMember(t *testing.T) {
	cases := []struct {
		name    string
		user    string
		role    Role
		wantErr error
	}{
		{"ok sign", "beom", RoleSign, nil},
		{"ok spoken", "yuna", RoleSpoken, nil},
		{"empty name", "", RoleSign, ErrNameEmpty},
		{"long name", strings.Repeat("a", MaxMemberNameLen+1), RoleSign, ErrNameTooLong},
		{"empty role", "beom", "", ErrRoleEmpty},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := NewMember("c1", tc.user, tc.role)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if tc.wantErr == nil && (m.Name != tc.user || m.Role != tc.role || m.ID != "c1") {
				t.Fatalf("member mismatch: %+v", m)
			}
		})
	}
}
