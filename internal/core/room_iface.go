package core

import (
	"github.com/pion/webrtc/v4"

	"github.com/signtalk/signtalk/internal/domain"
)

// MemberDTO is a read-only view for member-list events (no transport fields).
type MemberDTO struct {
	ID   domain.ConnID `json:"id"`
	Name string        `json:"name"`
	Role domain.Role   `json:"role"`
}

// MemberSnap pairs a connection id with its session for fanout.
type MemberSnap struct {
	ID      domain.ConnID
	Session MemberSession
}

// CachedOffer is a member's most recent negotiation offer, kept so late
// joiners can be bootstrapped without a renegotiation broadcast.
type CachedOffer struct {
	Owner domain.ConnID
	SDP   webrtc.SessionDescription
}

// RoomService is the core-facing API of one room. It owns the membership
// set and the last-offer cache but never touches transport resources.
type RoomService interface {
	Room() *domain.Room
	MemberCount() int
	MembersSnapshot() []MemberDTO
	SessionsSnapshot() []MemberSnap

	AddMember(id domain.ConnID, ms MemberSession)
	RemoveMember(id domain.ConnID) (MemberSession, bool)
	Member(id domain.ConnID) (MemberSession, bool)

	SetLastOffer(id domain.ConnID, sdp webrtc.SessionDescription)
	LastOffers(exclude domain.ConnID) []CachedOffer
}

type RoomInfo struct {
	Code        domain.RoomCode `json:"code"`
	Name        domain.RoomName `json:"name"`
	MemberCount int             `json:"userCount"`
}

// RoomRegistry owns the code→room map. Rooms are created explicitly,
// never implicitly by a join, and destroyed only via RemoveIfEmpty.
type RoomRegistry interface {
	Create(code domain.RoomCode, name domain.RoomName) error
	Get(code domain.RoomCode) (RoomService, bool)
	// AddMember resolves the code and inserts the member in one step
	// under the registry lock; a plain Get-then-AddMember pair would let
	// RemoveIfEmpty delete the room in between.
	AddMember(code domain.RoomCode, id domain.ConnID, ms MemberSession) (RoomService, bool)
	List() []RoomInfo
	All() []RoomService
	RemoveIfEmpty(code domain.RoomCode)
}
