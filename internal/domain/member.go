// Package domain contains entities without logic, just meta-data.
package domain

// ConnID identifies one participant for the lifetime of one connection.
// Assigned at connect time, never persisted.
type ConnID string

// Role tags a participant for display and message attribution.
// The relay never interprets it beyond validation.
type Role string

const (
	RoleSign   Role = "signUser"
	RoleSpoken Role = "koreanUser"
)

const MaxMemberNameLen = 36

// Member is one participant's presence record within a room.
type Member struct {
	ID   ConnID `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// NewMember is a tiny helper to avoid ad-hoc struct literals in adapters.
func NewMember(id ConnID, name string, role Role) (*Member, error) {
	if len(name) == 0 {
		return nil, ErrNameEmpty
	}
	if len(name) > MaxMemberNameLen {
		return nil, ErrNameTooLong
	}
	if len(role) == 0 {
		return nil, ErrRoleEmpty
	}
	return &Member{ID: id, Name: name, Role: role}, nil
}
