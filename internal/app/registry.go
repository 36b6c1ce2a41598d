package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/signtalk/signtalk/internal/core"
	"github.com/signtalk/signtalk/internal/domain"
)

type sessionEntry struct {
	conn   core.SignalConnection
	cancel context.CancelFunc
}

// SessionRegistry tracks every live connection by its identity,
// independent of room membership. It is the relay's routing table.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[domain.ConnID]*sessionEntry
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[domain.ConnID]*sessionEntry)}
}

func (r *SessionRegistry) Bind(id domain.ConnID, conn core.SignalConnection, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = &sessionEntry{conn: conn, cancel: cancel}
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("bound session")
}

func (r *SessionRegistry) Conn(id domain.ConnID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sessions[id]; ok {
		return e.conn, true
	}
	return nil, false
}

func (r *SessionRegistry) Unbind(id domain.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("unbound session")
}

// Cancel tears the connection down through its context; the transport's
// own close path then runs the normal disconnect cleanup.
func (r *SessionRegistry) Cancel(id domain.ConnID) bool {
	r.mu.RLock()
	e, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.cancel != nil {
		e.cancel()
	}
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("canceled session")
	return true
}
