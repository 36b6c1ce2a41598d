package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/signtalk/signtalk/internal/core"
	"github.com/signtalk/signtalk/internal/domain"
)

var ErrSessionUnknown = errors.New("no session for connection")

// TranslationService is the external text/sign translation engine.
// Invocation latency is unbounded; callers must not hold room locks.
type TranslationService interface {
	Translate(ctx context.Context, text string) (string, error)
	Recognize(ctx context.Context, videoURL string) (string, error)
}

// VideoResolver maps an underscore-joined word key to a playable path.
type VideoResolver interface {
	Resolve(ctx context.Context, folder string) (string, error)
}

// Orchestrator glues the session registry, the room registry and the
// external services. All room logic lives here; the ws adapter only
// decodes envelopes and calls in.
type Orchestrator struct {
	Sessions   *SessionRegistry
	Rooms      core.RoomRegistry
	Policy     Policy
	Translator TranslationService
	Videos     VideoResolver
}

// Hello tells a freshly bound connection its identity; peers address
// each other by these ids when negotiating.
func (o *Orchestrator) Hello(id domain.ConnID) {
	if conn, ok := o.Sessions.Conn(id); ok {
		o.send(conn, ConnectedEvent{Type: evConnected, ID: id})
	}
}

func (o *Orchestrator) send(conn core.SignalConnection, v any) {
	frame, ok := encode(v)
	if !ok {
		return
	}
	if err := conn.TrySend(frame); err != nil {
		log.Warn().Err(err).Str("module", "app.orch").Msg("direct send dropped")
	}
}

// deliver is fire-and-forget: an unknown or stalled target means the
// frame is dropped without notifying the sender.
func (o *Orchestrator) deliver(target domain.ConnID, v any) {
	conn, ok := o.Sessions.Conn(target)
	if !ok {
		log.Debug().Str("module", "app.orch").Str("target", string(target)).Msg("deliver: target gone")
		return
	}
	o.send(conn, v)
}

func (o *Orchestrator) broadcast(room core.RoomService, v any) {
	o.broadcastExcept(room, "", v)
}

func (o *Orchestrator) broadcastExcept(room core.RoomService, skip domain.ConnID, v any) {
	frame, ok := encode(v)
	if !ok {
		return
	}
	var kicks []domain.ConnID
	for _, snap := range room.SessionsSnapshot() {
		if snap.ID == skip {
			continue
		}
		if err := snap.Session.Signal().TrySend(frame); err != nil {
			log.Warn().Err(err).Str("module", "app.orch").Str("room", string(room.Room().Code)).Str("conn", string(snap.ID)).Msg("broadcast frame dropped")
			if o.Policy != nil && o.Policy.OnBackpressure(room, snap.ID) == KickMember {
				kicks = append(kicks, snap.ID)
			}
		}
	}
	// Applied after the fanout so a kick's own broadcasts don't interleave.
	for _, id := range kicks {
		o.Sessions.Cancel(id)
	}
}
