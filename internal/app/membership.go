package app

import (
	"github.com/rs/zerolog/log"

	"github.com/signtalk/signtalk/internal/core"
	"github.com/signtalk/signtalk/internal/domain"
)

// Join puts a connection into a room. A missing room is reported to the
// requester only and never created implicitly.
func (o *Orchestrator) Join(id domain.ConnID, code domain.RoomCode, name string, role domain.Role) error {
	conn, ok := o.Sessions.Conn(id)
	if !ok {
		return ErrSessionUnknown
	}

	if _, ok := o.Rooms.Get(code); !ok {
		o.send(conn, RoomErrorEvent{Type: evRoomError, Error: "Room does not exist"})
		return domain.ErrRoomNotFound
	}

	member, err := domain.NewMember(id, name, role)
	if err != nil {
		o.send(conn, RoomErrorEvent{Type: evRoomError, Error: err.Error()})
		return err
	}

	// One membership per connection: drop any previous one first.
	o.Leave(id)

	// The insert goes through the registry so the room cannot be deleted
	// between the lookup and the add by its last member disconnecting.
	room, ok := o.Rooms.AddMember(code, id, core.NewMemberSession(member, conn))
	if !ok {
		o.send(conn, RoomErrorEvent{Type: evRoomError, Error: "Room does not exist"})
		return domain.ErrRoomNotFound
	}
	log.Info().Str("module", "app.membership").Str("conn", string(id)).Str("room", string(code)).Str("role", string(role)).Msg("joined room")

	o.broadcast(room, MemberListEvent{Type: evMemberList, Members: room.MembersSnapshot()})
	o.broadcastExcept(room, id, SystemMessageEvent{Type: evSystemMessage, Text: name + " has joined the room."})

	// Replay each existing member's most recent offer so the late joiner
	// can answer in-progress peer connections without a renegotiation storm.
	for _, cached := range room.LastOffers(id) {
		o.send(conn, OfferEvent{Type: evOffer, SDP: cached.SDP, SenderID: cached.Owner})
	}
	return nil
}

// Leave removes the connection from every room it appears in. The join
// path only ever grants one membership, but disconnect cleanup scans all
// rooms regardless.
func (o *Orchestrator) Leave(id domain.ConnID) {
	for _, room := range o.Rooms.All() {
		ms, ok := room.RemoveMember(id)
		if !ok {
			continue
		}
		name := ms.Meta().Name
		log.Info().Str("module", "app.membership").Str("conn", string(id)).Str("room", string(room.Room().Code)).Msg("left room")

		o.broadcast(room, MemberListEvent{Type: evMemberList, Members: room.MembersSnapshot()})
		o.broadcast(room, SystemMessageEvent{Type: evSystemMessage, Text: name + " has left the room."})
		// Remote peers tear down their negotiation state on this notice;
		// there is no relay-side timer for stale connections.
		o.broadcast(room, PeerDisconnectedEvent{Type: evPeerDisconnected, ConnID: id})

		o.Rooms.RemoveIfEmpty(room.Room().Code)
	}
}

// OnDisconnect is the transport-level cancellation signal.
func (o *Orchestrator) OnDisconnect(id domain.ConnID) {
	o.Leave(id)
	o.Sessions.Unbind(id)
}
