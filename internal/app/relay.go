package app

import (
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/signtalk/signtalk/internal/domain"
)

// The relay forwards opaque negotiation payloads between two specific
// peers. It never inspects SDP or candidate contents; ICE semantics are
// the peers' own responsibility.

// RelayOffer caches the sender's most recent offer in the room (for
// late-joiner replay) and forwards it to the target only.
func (o *Orchestrator) RelayOffer(code domain.RoomCode, sender, target domain.ConnID, sdp webrtc.SessionDescription) {
	room, ok := o.Rooms.Get(code)
	if !ok {
		log.Warn().Str("module", "app.relay").Str("room", string(code)).Msg("offer for unknown room")
		return
	}
	room.SetLastOffer(sender, sdp)
	if _, ok := room.Member(target); !ok {
		log.Debug().Str("module", "app.relay").Str("target", string(target)).Msg("offer target not in room")
		return
	}
	o.deliver(target, OfferEvent{Type: evOffer, SDP: sdp, SenderID: sender})
}

// RelayAnswer is one-shot: answers are never cached or replayed.
func (o *Orchestrator) RelayAnswer(sender, target domain.ConnID, sdp webrtc.SessionDescription) {
	o.deliver(target, AnswerEvent{Type: evAnswer, SDP: sdp, SenderID: sender})
}

func (o *Orchestrator) RelayCandidate(sender, target domain.ConnID, cand webrtc.ICECandidateInit) {
	o.deliver(target, CandidateEvent{Type: evCandidate, Candidate: cand, SenderID: sender})
}
