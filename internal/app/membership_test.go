package app

import (
	"errors"
	"sync"
	"testing"

	"github.com/signtalk/signtalk/internal/domain"
)

func TestJoinBroadcastsMembershipAndAnnouncement(t *testing.T) {
	fx := newFixture()
	_ = fx.orch.Rooms.Create("ABC", "Demo")
	u1 := fx.connect("u1")
	u2 := fx.connect("u2")

	fx.join(t, "u1", "ABC", "beom", domain.RoleSign)
	fx.join(t, "u2", "ABC", "yuna", domain.RoleSpoken)

	ids := memberIDs(t, u1)
	if len(ids) != 2 || !ids["u1"] || !ids["u2"] {
		t.Fatalf("u1 member list = %v, want {u1, u2}", ids)
	}

	joins := u1.eventsOfType(t, "system-message")
	if len(joins) != 1 || joins[0]["text"] != "yuna has joined the room." {
		t.Fatalf("u1 join announcements = %v", joins)
	}
	// The joiner gets the list but not their own announcement.
	if got := u2.eventsOfType(t, "system-message"); len(got) != 0 {
		t.Fatalf("joiner received own announcement: %v", got)
	}
	if ids := memberIDs(t, u2); len(ids) != 2 {
		t.Fatalf("joiner member list = %v", ids)
	}
}

func TestJoinUnknownRoomNeverCreatesIt(t *testing.T) {
	fx := newFixture()
	_ = fx.orch.Rooms.Create("ABC", "Demo")
	u1 := fx.connect("u1")
	bystander := fx.connect("u2")
	fx.join(t, "u2", "ABC", "yuna", domain.RoleSpoken)
	bystander.reset()

	err := fx.orch.Join("u1", "NOPE", "beom", domain.RoleSign)
	if !errors.Is(err, domain.ErrRoomNotFound) {
		t.Fatalf("err = %v, want ErrRoomNotFound", err)
	}
	if _, ok := fx.orch.Rooms.Get("NOPE"); ok {
		t.Fatal("joining created the room")
	}

	errs := u1.eventsOfType(t, "room-error")
	if len(errs) != 1 {
		t.Fatalf("requester room-error events = %d, want 1", len(errs))
	}
	if got := len(bystander.events(t)); got != 0 {
		t.Fatalf("bystander received %d events for a failed join", got)
	}
}

func TestMemberListTracksEveryOperation(t *testing.T) {
	fx := newFixture()
	_ = fx.orch.Rooms.Create("ABC", "Demo")
	observer := fx.connect("obs")
	fx.join(t, "obs", "ABC", "observer", domain.RoleSpoken)

	steps := []struct {
		op   string
		id   domain.ConnID
		want []string
	}{
		{"join", "u1", []string{"obs", "u1"}},
		{"join", "u2", []string{"obs", "u1", "u2"}},
		{"leave", "u1", []string{"obs", "u2"}},
		{"join", "u3", []string{"obs", "u2", "u3"}},
		{"leave", "u2", []string{"obs", "u3"}},
		{"leave", "u3", []string{"obs"}},
	}
	for _, step := range steps {
		switch step.op {
		case "join":
			fx.connect(step.id)
			fx.join(t, step.id, "ABC", string(step.id), domain.RoleSign)
		case "leave":
			fx.orch.OnDisconnect(step.id)
		}
		ids := memberIDs(t, observer)
		if len(ids) != len(step.want) {
			t.Fatalf("after %s %s: list %v, want %v", step.op, step.id, ids, step.want)
		}
		for _, want := range step.want {
			if !ids[want] {
				t.Fatalf("after %s %s: %s missing from %v", step.op, step.id, want, ids)
			}
		}
	}
}

func TestDisconnectNotifiesPeersOnce(t *testing.T) {
	fx := newFixture()
	_ = fx.orch.Rooms.Create("ABC", "Demo")
	fx.connect("u1")
	u2 := fx.connect("u2")
	u3 := fx.connect("u3")
	fx.join(t, "u1", "ABC", "beom", domain.RoleSign)
	fx.join(t, "u2", "ABC", "yuna", domain.RoleSpoken)
	fx.join(t, "u3", "ABC", "min", domain.RoleSpoken)

	fx.orch.OnDisconnect("u1")

	for name, conn := range map[string]*fakeConn{"u2": u2, "u3": u3} {
		notices := conn.eventsOfType(t, "peer-disconnected")
		if len(notices) != 1 {
			t.Fatalf("%s peer-disconnected events = %d, want 1", name, len(notices))
		}
		if notices[0]["connectionId"] != "u1" {
			t.Fatalf("%s notice carries %v, want u1", name, notices[0]["connectionId"])
		}
	}

	if _, ok := fx.orch.Rooms.Get("ABC"); !ok {
		t.Fatal("room deleted while still occupied")
	}
	fx.orch.OnDisconnect("u2")
	fx.orch.OnDisconnect("u3")
	if _, ok := fx.orch.Rooms.Get("ABC"); ok {
		t.Fatal("room survived its last member leaving")
	}
}

// A join racing the last member's disconnect must either land in the
// registered room or fail with room-error; it must never insert into a
// room object the registry has already deleted, which would leave the
// joiner unreachable by broadcasts and by their own disconnect cleanup.
func TestJoinRacingLastDisconnect(t *testing.T) {
	for i := 0; i < 200; i++ {
		fx := newFixture()
		_ = fx.orch.Rooms.Create("ABC", "Demo")
		fx.connect("u1")
		fx.connect("u2")
		fx.join(t, "u2", "ABC", "yuna", domain.RoleSpoken)

		var joinErr error
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			joinErr = fx.orch.Join("u1", "ABC", "beom", domain.RoleSign)
		}()
		go func() {
			defer wg.Done()
			fx.orch.OnDisconnect("u2")
		}()
		wg.Wait()

		room, exists := fx.orch.Rooms.Get("ABC")
		switch {
		case joinErr == nil:
			if !exists {
				t.Fatalf("iteration %d: join succeeded but room is gone", i)
			}
			if _, ok := room.Member("u1"); !ok {
				t.Fatalf("iteration %d: join succeeded but u1 is not a member", i)
			}
		case !errors.Is(joinErr, domain.ErrRoomNotFound):
			t.Fatalf("iteration %d: join err = %v", i, joinErr)
		}
	}
}

func TestRejoinMovesMembership(t *testing.T) {
	fx := newFixture()
	_ = fx.orch.Rooms.Create("ABC", "Demo")
	_ = fx.orch.Rooms.Create("XYZ", "Other")
	fx.connect("u1")
	anchor := fx.connect("u2")
	fx.join(t, "u2", "ABC", "yuna", domain.RoleSpoken)

	fx.join(t, "u1", "ABC", "beom", domain.RoleSign)
	fx.join(t, "u1", "XYZ", "beom", domain.RoleSign)

	ids := memberIDs(t, anchor)
	if ids["u1"] {
		t.Fatalf("u1 still listed in ABC after moving: %v", ids)
	}
	room, _ := fx.orch.Rooms.Get("XYZ")
	if room.MemberCount() != 1 {
		t.Fatalf("XYZ member count = %d, want 1", room.MemberCount())
	}
}

func TestFullSessionScenario(t *testing.T) {
	fx := newFixture()
	if err := fx.orch.Rooms.Create("ABC", "Demo"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	u1 := fx.connect("u1")
	u2 := fx.connect("u2")

	fx.join(t, "u1", "ABC", "beom", domain.RoleSign)
	fx.join(t, "u2", "ABC", "yuna", domain.RoleSpoken)

	ids := memberIDs(t, u1)
	if len(ids) != 2 || !ids["u1"] || !ids["u2"] {
		t.Fatalf("u1 member list = %v", ids)
	}
	if anns := u1.eventsOfType(t, "system-message"); len(anns) != 1 {
		t.Fatalf("u1 announcements = %v", anns)
	}

	fx.orch.RelayOffer("ABC", "u2", "u1", offerSDP("sdp1"))
	offers := u1.eventsOfType(t, "offer")
	if len(offers) != 1 || offers[0]["senderId"] != "u2" {
		t.Fatalf("u1 offers = %v", offers)
	}
	if sdp := offers[0]["sdp"].(map[string]any); sdp["sdp"] != "sdp1" {
		t.Fatalf("offer payload = %v", sdp)
	}
	if got := u2.eventsOfType(t, "offer"); len(got) != 0 {
		t.Fatalf("offer leaked to sender: %v", got)
	}

	fx.orch.OnDisconnect("u1")
	notices := u2.eventsOfType(t, "peer-disconnected")
	if len(notices) != 1 || notices[0]["connectionId"] != "u1" {
		t.Fatalf("u2 notices = %v", notices)
	}
	if _, ok := fx.orch.Rooms.Get("ABC"); !ok {
		t.Fatal("ABC deleted while u2 still present")
	}

	fx.orch.OnDisconnect("u2")
	if _, ok := fx.orch.Rooms.Get("ABC"); ok {
		t.Fatal("ABC still exists after both members left")
	}
}
