package core

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/signtalk/signtalk/internal/domain"
)

type registryImpl struct {
	mu    sync.RWMutex
	rooms map[domain.RoomCode]RoomService
}

func NewRoomRegistry() RoomRegistry {
	return &registryImpl{rooms: make(map[domain.RoomCode]RoomService)}
}

func (f *registryImpl) Create(code domain.RoomCode, name domain.RoomName) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rooms[code]; ok {
		return domain.ErrRoomExists
	}
	f.rooms[code] = NewRoomService(&domain.Room{Code: code, Name: name})
	log.Info().Str("module", "core.registry").Str("room", string(code)).Str("name", string(name)).Msg("room created")
	return nil
}

// AddMember holds the registry lock across the lookup and the insert so
// a concurrent RemoveIfEmpty cannot delete the room in the gap.
func (f *registryImpl) AddMember(code domain.RoomCode, id domain.ConnID, ms MemberSession) (RoomService, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	room, ok := f.rooms[code]
	if !ok {
		return nil, false
	}
	room.AddMember(id, ms)
	return room, true
}

func (f *registryImpl) Get(code domain.RoomCode) (RoomService, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	room, ok := f.rooms[code]
	return room, ok
}

func (f *registryImpl) List() []RoomInfo {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]RoomInfo, 0, len(f.rooms))
	for code, r := range f.rooms {
		out = append(out, RoomInfo{Code: code, Name: r.Room().Name, MemberCount: r.MemberCount()})
	}
	return out
}

func (f *registryImpl) All() []RoomService {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]RoomService, 0, len(f.rooms))
	for _, r := range f.rooms {
		out = append(out, r)
	}
	return out
}

// RemoveIfEmpty is the sole destruction path for a room.
func (f *registryImpl) RemoveIfEmpty(code domain.RoomCode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[code]
	if !ok || room.MemberCount() > 0 {
		return
	}
	delete(f.rooms, code)
	log.Info().Str("module", "core.registry").Str("room", string(code)).Msg("empty room removed")
}
