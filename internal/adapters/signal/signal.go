// Package signal is the per-connection session gateway: one websocket,
// one identity, one ingress loop dispatching into the orchestrator.
package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/signtalk/signtalk/internal/app"
	"github.com/signtalk/signtalk/internal/config"
	"github.com/signtalk/signtalk/internal/core"
	"github.com/signtalk/signtalk/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

type Controller struct {
	Orch         *app.Orchestrator
	readLimit    int64
	pingPeriod   time.Duration
	translations *TranslationLimiter
}

func NewController(orch *app.Orchestrator, cfg *config.Config) *Controller {
	return &Controller{
		Orch:         orch,
		readLimit:    cfg.ReadLimit,
		pingPeriod:   cfg.PingPeriod,
		translations: NewTranslationLimiter(10, time.Minute),
	}
}

type wsConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *wsConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal upgrades the request and runs the connection until the
// transport drops. The identity minted here lives exactly as long as
// the connection.
func (ctl *Controller) HandleSignal(ctx context.Context, c *gin.Context) {
	sid := domain.ConnID(uuid.NewString())
	log.Info().Str("module", "signal").Str("conn", string(sid)).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade")
		return
	}

	conn := &wsConn{
		conn: ws,
		send: make(chan core.Frame, 32),
	}

	ctx, cancel := context.WithCancel(ctx)
	ctl.Orch.Sessions.Bind(sid, conn, cancel)
	ctl.Orch.Hello(sid)

	go ctl.writePump(ctx, conn)
	go func() {
		// Closing the conn aborts a blocked ReadMessage, so a canceled
		// session tears down now instead of at the pong deadline.
		<-ctx.Done()
		conn.Close()
	}()
	go func() {
		ctl.readPump(ctx, sid, conn)
		cancel()
	}()
}
