package app

import (
	"github.com/signtalk/signtalk/internal/core"
	"github.com/signtalk/signtalk/internal/domain"
)

type BackpressureAction int

const (
	DropFrame BackpressureAction = iota
	KickMember
)

// Policy decides what happens to a member whose send buffer is full.
// Broadcasts never block on a slow recipient either way.
type Policy interface {
	OnBackpressure(room core.RoomService, id domain.ConnID) BackpressureAction
}

type DropPolicy struct{}

func (DropPolicy) OnBackpressure(core.RoomService, domain.ConnID) BackpressureAction {
	return DropFrame
}
