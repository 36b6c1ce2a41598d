package app

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/signtalk/signtalk/internal/core"
	"github.com/signtalk/signtalk/internal/domain"
)

var errBufferFull = errors.New("send buffer full")

// fakeConn records every frame a participant would have received.
type fakeConn struct {
	mu     sync.Mutex
	frames []core.Frame
	full   bool
}

func (f *fakeConn) TrySend(fr core.Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.full {
		return errBufferFull
	}
	f.frames = append(f.frames, fr)
	return nil
}

func (f *fakeConn) Close() {}

func (f *fakeConn) events(t *testing.T) []map[string]any {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]map[string]any, 0, len(f.frames))
	for _, fr := range f.frames {
		var m map[string]any
		if err := json.Unmarshal(fr, &m); err != nil {
			t.Fatalf("bad frame %q: %v", fr, err)
		}
		out = append(out, m)
	}
	return out
}

func (f *fakeConn) eventsOfType(t *testing.T, typ string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, ev := range f.events(t) {
		if ev["type"] == typ {
			out = append(out, ev)
		}
	}
	return out
}

func (f *fakeConn) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = nil
}

type fakeTranslator struct {
	translated   string
	translateErr error
	recognized   string
	recognizeErr error
}

func (f fakeTranslator) Translate(context.Context, string) (string, error) {
	return f.translated, f.translateErr
}

func (f fakeTranslator) Recognize(context.Context, string) (string, error) {
	return f.recognized, f.recognizeErr
}

type fakeResolver struct {
	path string
	err  error
}

func (f fakeResolver) Resolve(context.Context, string) (string, error) {
	return f.path, f.err
}

type fixture struct {
	orch  *Orchestrator
	conns map[domain.ConnID]*fakeConn
}

func newFixture() *fixture {
	return &fixture{
		orch: &Orchestrator{
			Sessions: NewSessionRegistry(),
			Rooms:    core.NewRoomRegistry(),
			Policy:   DropPolicy{},
		},
		conns: make(map[domain.ConnID]*fakeConn),
	}
}

func (fx *fixture) connect(id domain.ConnID) *fakeConn {
	conn := &fakeConn{}
	fx.conns[id] = conn
	fx.orch.Sessions.Bind(id, conn, nil)
	return conn
}

func (fx *fixture) join(t *testing.T, id domain.ConnID, code domain.RoomCode, name string, role domain.Role) {
	t.Helper()
	if err := fx.orch.Join(id, code, name, role); err != nil {
		t.Fatalf("Join(%s, %s): %v", id, code, err)
	}
}

// memberIDs extracts the ids from the last member-list-update a conn saw.
func memberIDs(t *testing.T, conn *fakeConn) map[string]bool {
	t.Helper()
	lists := conn.eventsOfType(t, "member-list-update")
	if len(lists) == 0 {
		t.Fatal("no member-list-update received")
	}
	last := lists[len(lists)-1]
	raw, ok := last["members"].([]any)
	if !ok {
		t.Fatalf("members field missing: %v", last)
	}
	ids := make(map[string]bool, len(raw))
	for _, m := range raw {
		entry := m.(map[string]any)
		id := entry["id"].(string)
		if ids[id] {
			t.Fatalf("duplicate member %s in list", id)
		}
		ids[id] = true
	}
	return ids
}

type kickPolicy struct{}

func (kickPolicy) OnBackpressure(core.RoomService, domain.ConnID) BackpressureAction {
	return KickMember
}

func TestBackpressureDropDoesNotStallOthers(t *testing.T) {
	fx := newFixture()
	_ = fx.orch.Rooms.Create("ABC", "Demo")
	fx.connect("u1").full = true
	u2 := fx.connect("u2")
	fx.join(t, "u1", "ABC", "beom", domain.RoleSign)
	fx.join(t, "u2", "ABC", "yuna", domain.RoleSpoken)

	if _, err := fx.orch.BroadcastMessage("ABC", "yuna", domain.RoleSpoken, "hi"); err != nil {
		t.Fatalf("BroadcastMessage: %v", err)
	}
	if got := len(u2.eventsOfType(t, "message")); got != 1 {
		t.Fatalf("u2 message events = %d, want 1", got)
	}
}

func TestBackpressureKickCancelsSession(t *testing.T) {
	fx := newFixture()
	fx.orch.Policy = kickPolicy{}
	_ = fx.orch.Rooms.Create("ABC", "Demo")

	canceled := false
	stalled := &fakeConn{full: true}
	fx.orch.Sessions.Bind("u1", stalled, func() { canceled = true })
	fx.connect("u2")
	fx.join(t, "u1", "ABC", "beom", domain.RoleSign)
	fx.join(t, "u2", "ABC", "yuna", domain.RoleSpoken)

	if _, err := fx.orch.BroadcastMessage("ABC", "yuna", domain.RoleSpoken, "hi"); err != nil {
		t.Fatalf("BroadcastMessage: %v", err)
	}
	if !canceled {
		t.Fatal("stalled member's session was not canceled")
	}
}
