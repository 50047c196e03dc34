// Garrison population management: trooper spawning, outpost
// assignment, minimum-garrison backfill, and the aggregated per-tick
// update of the roster.
package garrison

import (
	"time"

	"fremen-sim/internal/combat"
	"fremen-sim/internal/trooper"
	"fremen-sim/internal/world"
)

// Faction identifies which side holds an outpost.
type Faction string

const (
	FactionHarkonnen Faction = "harkonnen"
	FactionFremen    Faction = "fremen"
)

const (
	// BackfillDelay between replacement attempts per outpost.
	BackfillDelay = 10 * time.Second
	// PatrolMarginM added to the capture radius for the garrison's
	// patrol square.
	PatrolMarginM = 5.0
)

// Outpost is the manager's view of one garrisoned location. Capture
// progress itself is external; only the resulting control changes are
// consumed here.
type Outpost struct {
	ID            string
	Position      world.Vec3
	CaptureRadius float64
	Controlling   Faction
	MinGarrison   int
}

// Status is a read-only outpost summary for observability surfaces.
type Status struct {
	ID           string     `json:"id"`
	Position     world.Vec3 `json:"position"`
	Controlling  Faction    `json:"controlling"`
	MinGarrison  int        `json:"min_garrison"`
	LiveGarrison int        `json:"live_garrison"`
	Jammed       bool       `json:"jammed"`
}

// Manager owns the trooper roster. It is a single-writer-per-tick
// structure: exactly one Tick call mutates it, in insertion order, so
// an alert raised by an early trooper is visible to later ones within
// the same tick.
type Manager struct {
	machine *trooper.Machine

	troopers map[string]*trooper.Trooper
	order    []string

	outposts     map[string]*Outpost
	outpostOrder []string
	assigned     map[string]map[string]struct{}
	lastBackfill map[string]time.Time

	isJammed func(outpostID string) bool
	now      func() time.Time
}

// NewManager creates a manager and spawns the initial garrisons: one
// trooper per unit of minimum garrison at every Harkonnen outpost,
// placed on a patrol square around the outpost center. jammedFn and
// nowFn may be nil.
func NewManager(machine *trooper.Machine, outposts []Outpost, jammedFn func(string) bool, nowFn func() time.Time) *Manager {
	if jammedFn == nil {
		jammedFn = func(string) bool { return false }
	}
	if nowFn == nil {
		nowFn = time.Now
	}
	m := &Manager{
		machine:      machine,
		troopers:     make(map[string]*trooper.Trooper),
		outposts:     make(map[string]*Outpost),
		assigned:     make(map[string]map[string]struct{}),
		lastBackfill: make(map[string]time.Time),
		isJammed:     jammedFn,
		now:          nowFn,
	}
	for i := range outposts {
		op := outposts[i]
		m.outposts[op.ID] = &op
		m.outpostOrder = append(m.outpostOrder, op.ID)
		m.assigned[op.ID] = make(map[string]struct{})
		if op.Controlling != FactionHarkonnen {
			continue
		}
		for n := 0; n < op.MinGarrison; n++ {
			m.spawn(&op, n)
		}
	}
	return m
}

// patrolSquare returns the four corners of the garrison patrol route
// around an outpost.
func patrolSquare(op *Outpost) []world.Vec3 {
	r := op.CaptureRadius + PatrolMarginM
	c := op.Position
	return []world.Vec3{
		{X: c.X + r, Y: c.Y, Z: c.Z + r},
		{X: c.X + r, Y: c.Y, Z: c.Z - r},
		{X: c.X - r, Y: c.Y, Z: c.Z - r},
		{X: c.X - r, Y: c.Y, Z: c.Z + r},
	}
}

func (m *Manager) spawn(op *Outpost, slot int) *trooper.Trooper {
	square := patrolSquare(op)
	start := square[slot%len(square)]
	// Rotate the route so each trooper begins at its own corner.
	route := make([]world.Vec3, len(square))
	for i := range square {
		route[i] = square[(slot+i)%len(square)]
	}
	tr := trooper.New(op.ID, start, route)
	m.troopers[tr.ID] = tr
	m.order = append(m.order, tr.ID)
	m.assigned[op.ID][tr.ID] = struct{}{}
	return tr
}

// remove deletes a trooper and its outpost assignment in one step so
// the secondary index never dangles.
func (m *Manager) remove(id string) {
	tr, ok := m.troopers[id]
	if !ok {
		return
	}
	delete(m.troopers, id)
	if idx, ok := m.assigned[tr.OutpostID]; ok {
		delete(idx, id)
	}
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Engagement is a shot outcome attributed to the trooper that fired
// it.
type Engagement struct {
	TrooperID string
	OutpostID string
	combat.ShotOutcome
}

// Tick runs one simulation step: updates every trooper against the
// snapshot in insertion order, prunes expired corpses, and evaluates
// backfill per outpost. Returns all shots fired this tick.
func (m *Manager) Tick(in trooper.TickInput) []Engagement {
	var shots []Engagement
	for _, id := range m.order {
		tr := m.troopers[id]
		if tr == nil || !tr.Alive() {
			continue
		}
		for _, out := range m.machine.Update(tr, in) {
			shots = append(shots, Engagement{TrooperID: tr.ID, OutpostID: tr.OutpostID, ShotOutcome: out})
		}
	}
	m.pruneCorpses()
	m.backfill()
	return shots
}

func (m *Manager) pruneCorpses() {
	now := m.now()
	for _, id := range append([]string(nil), m.order...) {
		tr := m.troopers[id]
		if tr == nil || tr.State != trooper.StateDead {
			continue
		}
		// A corpse stamps its outpost's backfill timer every tick it
		// exists, so the delay effectively counts from removal.
		if tr.OutpostID != "" {
			m.lastBackfill[tr.OutpostID] = now
		}
		if now.Sub(tr.AlertedAt) > trooper.CorpseDuration {
			m.remove(id)
		}
	}
}

func (m *Manager) backfill() {
	now := m.now()
	for _, oid := range m.outpostOrder {
		op := m.outposts[oid]
		if op.Controlling != FactionHarkonnen {
			continue
		}
		if m.isJammed(oid) {
			continue
		}
		live := m.liveCount(oid)
		if live >= op.MinGarrison {
			continue
		}
		if last, ok := m.lastBackfill[oid]; ok && now.Sub(last) < BackfillDelay {
			continue
		}
		// Exactly one replacement per outpost per eligible tick.
		m.spawn(op, live)
		m.lastBackfill[oid] = now
	}
}

func (m *Manager) liveCount(outpostID string) int {
	count := 0
	for id := range m.assigned[outpostID] {
		if tr := m.troopers[id]; tr != nil && tr.Alive() {
			count++
		}
	}
	return count
}

// ApplyDamage routes external damage into a trooper's health pool. The
// lethal transition to DEAD happens atomically inside TakeDamage.
// Unknown ids report ok=false and a zero result.
func (m *Manager) ApplyDamage(trooperID string, damage int) (combat.DamageResult, bool) {
	tr, ok := m.troopers[trooperID]
	if !ok {
		return combat.DamageResult{}, false
	}
	return tr.TakeDamage(damage, m.now()), true
}

// MarkDefeated evicts a trooper outside the normal tick (for external
// damage-resolution callers) and stamps the owning outpost's backfill
// timer. Unknown ids are a no-op.
func (m *Manager) MarkDefeated(trooperID string) bool {
	tr, ok := m.troopers[trooperID]
	if !ok {
		return false
	}
	outpostID := tr.OutpostID
	m.remove(trooperID)
	if outpostID != "" {
		m.lastBackfill[outpostID] = m.now()
	}
	return true
}

// NotifyCaptured handles an outpost falling to the Fremen: every
// assigned trooper is removed immediately and backfill stays suspended
// while control is lost.
func (m *Manager) NotifyCaptured(outpostID string) {
	op, ok := m.outposts[outpostID]
	if !ok {
		return
	}
	op.Controlling = FactionFremen
	for id := range m.assigned[outpostID] {
		m.remove(id)
	}
}

// NotifyRecaptured restores Harkonnen control and resets the backfill
// timer to now so the garrison can refill after the delay.
func (m *Manager) NotifyRecaptured(outpostID string) {
	op, ok := m.outposts[outpostID]
	if !ok {
		return
	}
	op.Controlling = FactionHarkonnen
	m.lastBackfill[outpostID] = m.now()
}

// Roster returns the live (non-DEAD) troopers assigned to an outpost,
// in insertion order.
func (m *Manager) Roster(outpostID string) []*trooper.Trooper {
	var out []*trooper.Trooper
	for _, id := range m.order {
		tr := m.troopers[id]
		if tr == nil || tr.OutpostID != outpostID || !tr.Alive() {
			continue
		}
		out = append(out, tr)
	}
	return out
}

// All returns every trooper in insertion order, corpses included.
func (m *Manager) All() []*trooper.Trooper {
	out := make([]*trooper.Trooper, 0, len(m.order))
	for _, id := range m.order {
		if tr := m.troopers[id]; tr != nil {
			out = append(out, tr)
		}
	}
	return out
}

// Outposts returns per-outpost status summaries in configuration
// order.
func (m *Manager) Outposts() []Status {
	out := make([]Status, 0, len(m.outpostOrder))
	for _, oid := range m.outpostOrder {
		op := m.outposts[oid]
		out = append(out, Status{
			ID:           op.ID,
			Position:     op.Position,
			Controlling:  op.Controlling,
			MinGarrison:  op.MinGarrison,
			LiveGarrison: m.liveCount(oid),
			Jammed:       m.isJammed(oid),
		})
	}
	return out
}
