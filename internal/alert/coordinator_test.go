package alert

import (
	"testing"
	"time"

	"fremen-sim/internal/world"
)

func newTestCoordinator() (*Coordinator, *time.Time) {
	clock := time.Unix(1000, 0)
	c := NewCoordinator(func() time.Time { return clock })
	return c, &clock
}

func TestBroadcastCooldown(t *testing.T) {
	c, clock := newTestCoordinator()

	if _, ok := c.Broadcast("t1", "raider-1", world.Vec3{}, "o1"); !ok {
		t.Fatalf("first broadcast rejected")
	}
	if _, ok := c.Broadcast("t1", "raider-1", world.Vec3{}, "o1"); ok {
		t.Fatalf("broadcast during cooldown accepted")
	}

	*clock = clock.Add(Cooldown - time.Millisecond)
	if _, ok := c.Broadcast("t1", "raider-1", world.Vec3{}, "o1"); ok {
		t.Fatalf("broadcast just inside cooldown accepted")
	}

	*clock = clock.Add(time.Millisecond)
	if _, ok := c.Broadcast("t1", "raider-1", world.Vec3{}, "o1"); !ok {
		t.Fatalf("broadcast at cooldown boundary rejected")
	}
}

func TestBroadcastCooldownPerReporter(t *testing.T) {
	c, _ := newTestCoordinator()

	c.Broadcast("t1", "raider-1", world.Vec3{}, "o1")
	if _, ok := c.Broadcast("t2", "raider-1", world.Vec3{}, "o1"); !ok {
		t.Fatalf("cooldown must be per reporter")
	}
}

func TestAlertsForExcludesReporter(t *testing.T) {
	c, _ := newTestCoordinator()

	c.Broadcast("t1", "raider-1", world.Vec3{}, "o1")
	if got := c.AlertsFor("t1", world.Vec3{}, "o1"); len(got) != 0 {
		t.Fatalf("reporter received own alert")
	}
	if got := c.AlertsFor("t2", world.Vec3{}, "o1"); len(got) != 1 {
		t.Fatalf("expected 1 alert for squad mate, got %d", len(got))
	}
}

func TestAlertsForExpiry(t *testing.T) {
	c, clock := newTestCoordinator()

	c.Broadcast("t1", "raider-1", world.Vec3{}, "o1")

	*clock = clock.Add(Lifetime)
	if got := c.AlertsFor("t2", world.Vec3{}, "o1"); len(got) != 1 {
		t.Fatalf("alert at exactly lifetime should still be visible")
	}

	*clock = clock.Add(time.Millisecond)
	if got := c.AlertsFor("t2", world.Vec3{}, "o1"); len(got) != 0 {
		t.Fatalf("expired alert still visible")
	}
}

func TestAlertsForRadii(t *testing.T) {
	c, _ := newTestCoordinator()

	c.Broadcast("t1", "raider-1", world.Vec3{}, "o1")

	// Same outpost listens on the short net.
	if got := c.AlertsFor("t2", world.Vec3{X: SameOutpostRadiusM + 1}, "o1"); len(got) != 0 {
		t.Fatalf("same-outpost listener beyond 300m received alert")
	}
	if got := c.AlertsFor("t2", world.Vec3{X: SameOutpostRadiusM - 1}, "o1"); len(got) != 1 {
		t.Fatalf("same-outpost listener within 300m missed alert")
	}

	// Different outpost listens on the long net.
	if got := c.AlertsFor("t3", world.Vec3{X: 400}, "o2"); len(got) != 1 {
		t.Fatalf("cross-outpost listener within 500m missed alert")
	}
	if got := c.AlertsFor("t3", world.Vec3{X: CrossOutpostRadiusM + 1}, "o2"); len(got) != 0 {
		t.Fatalf("cross-outpost listener beyond 500m received alert")
	}
}

func TestCleanup(t *testing.T) {
	c, clock := newTestCoordinator()

	c.Broadcast("t1", "raider-1", world.Vec3{}, "o1")
	*clock = clock.Add(Lifetime + time.Second)
	c.Cleanup()

	st := c.Stats()
	if st.Total != 0 {
		t.Fatalf("expected alert pruned, total = %d", st.Total)
	}
	if st.CoolingDown != 0 {
		t.Fatalf("expected cooldown pruned, cooling = %d", st.CoolingDown)
	}
}

func TestDrainJournal(t *testing.T) {
	c, _ := newTestCoordinator()

	c.Broadcast("t1", "raider-1", world.Vec3{}, "o1")
	c.Broadcast("t2", "raider-1", world.Vec3{}, "o1")

	drained := c.DrainJournal()
	if len(drained) != 2 {
		t.Fatalf("expected 2 journal entries, got %d", len(drained))
	}
	if got := c.DrainJournal(); len(got) != 0 {
		t.Fatalf("journal not reset after drain")
	}
}

func TestStats(t *testing.T) {
	c, _ := newTestCoordinator()

	c.Broadcast("t1", "raider-1", world.Vec3{}, "o1")
	st := c.Stats()
	if st.Total != 1 || st.Active != 1 || st.CoolingDown != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}
