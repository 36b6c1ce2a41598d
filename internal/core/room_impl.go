package core

import (
	"sync"

	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/signtalk/signtalk/internal/domain"
)

// roomImpl is a threadsafe in-memory room.
// It never closes adapter-owned resources.
type roomImpl struct {
	room    *domain.Room
	mu      sync.RWMutex
	members map[domain.ConnID]MemberSession
	offers  map[domain.ConnID]webrtc.SessionDescription
}

func NewRoomService(room *domain.Room) RoomService {
	return &roomImpl{
		room:    room,
		members: make(map[domain.ConnID]MemberSession),
		offers:  make(map[domain.ConnID]webrtc.SessionDescription),
	}
}

func (r *roomImpl) Room() *domain.Room { return r.room }

func (r *roomImpl) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

func (r *roomImpl) AddMember(id domain.ConnID, ms MemberSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[id] = ms
	log.Info().Str("module", "core.room").Str("room", string(r.room.Code)).Str("conn", string(id)).Msg("member added")
}

func (r *roomImpl) RemoveMember(id domain.ConnID) (MemberSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ms, ok := r.members[id]
	if !ok {
		return nil, false
	}
	delete(r.members, id)
	// A cached offer is useless once its owner is gone.
	delete(r.offers, id)
	log.Info().Str("module", "core.room").Str("room", string(r.room.Code)).Str("conn", string(id)).Msg("member removed")
	return ms, true
}

func (r *roomImpl) Member(id domain.ConnID) (MemberSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ms, ok := r.members[id]
	return ms, ok
}

func (r *roomImpl) MembersSnapshot() []MemberDTO {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]MemberDTO, 0, len(r.members))
	for _, ms := range r.members {
		m := ms.Meta()
		out = append(out, MemberDTO{ID: m.ID, Name: m.Name, Role: m.Role})
	}
	return out
}

func (r *roomImpl) SessionsSnapshot() []MemberSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]MemberSnap, 0, len(r.members))
	for id, ms := range r.members {
		out = append(out, MemberSnap{ID: id, Session: ms})
	}
	return out
}

// SetLastOffer overwrites any prior cached offer from the same sender;
// only the most recent one is ever replayed.
func (r *roomImpl) SetLastOffer(id domain.ConnID, sdp webrtc.SessionDescription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[id]; !ok {
		return
	}
	r.offers[id] = sdp
}

func (r *roomImpl) LastOffers(exclude domain.ConnID) []CachedOffer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]CachedOffer, 0, len(r.offers))
	for id, sdp := range r.offers {
		if id == exclude {
			continue
		}
		out = append(out, CachedOffer{Owner: id, SDP: sdp})
	}
	return out
}
