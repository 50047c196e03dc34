package trooper

import (
	"time"

	"fremen-sim/internal/alert"
	"fremen-sim/internal/combat"
	"fremen-sim/internal/perception"
	"fremen-sim/internal/steering"
	"fremen-sim/internal/world"
)

// TickInput is the per-tick snapshot of the outside world fed to every
// trooper, supplied by the surrounding game loop.
type TickInput struct {
	Players  []world.PlayerSnapshot
	Thumpers []world.ThumperSnapshot
	// DT is the tick duration in seconds.
	DT float64
}

// Machine evaluates the trooper state machine. One Machine is shared by
// the whole roster; all per-agent memory lives on the Trooper.
type Machine struct {
	alerts   *alert.Coordinator
	los      world.LineOfSight
	weapon   combat.WeaponProfile
	resolver *combat.Resolver
	now      func() time.Time
}

// NewMachine creates a Machine firing the defender rifle. los may be
// nil (everything visible), nowFn may be nil to use time.Now.
func NewMachine(alerts *alert.Coordinator, los world.LineOfSight, resolver *combat.Resolver, nowFn func() time.Time) *Machine {
	if resolver == nil {
		resolver = combat.NewResolver(nil)
	}
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Machine{
		alerts:   alerts,
		los:      los,
		weapon:   combat.DefenderRifle,
		resolver: resolver,
		now:      nowFn,
	}
}

// Update runs one tick of the state machine for a single trooper and
// returns any shots fired. DEAD troopers are never evaluated.
func (m *Machine) Update(tr *Trooper, in TickInput) []combat.ShotOutcome {
	switch tr.State {
	case StatePatrol:
		m.updatePatrol(tr, in)
	case StateInvestigate:
		m.updateInvestigate(tr, in)
	case StateCombat:
		return m.updateCombat(tr, in)
	case StateRetreat:
		m.updateRetreat(tr, in)
	}
	return nil
}

func (m *Machine) updatePatrol(tr *Trooper, in TickInput) {
	// Incoming squad alerts take priority over own senses.
	if m.alerts != nil {
		if alerts := m.alerts.AlertsFor(tr.ID, tr.Position, tr.OutpostID); len(alerts) > 0 {
			pos := alerts[0].Position
			tr.LastKnown = &pos
			tr.State = StateInvestigate
			tr.InvestigateUntil = m.now().Add(InvestigateDuration)
			return
		}
	}
	if p, ok := perception.DetectPlayer(tr.Position, tr.Facing, in.Players, m.los); ok {
		m.engagePlayer(tr, p)
		return
	}
	if th, ok := perception.DetectThumper(tr.Position, in.Thumpers); ok {
		// Thumpers are lower priority and never trigger a broadcast.
		tr.TargetThumperID = th.ID
		tr.State = StateCombat
		return
	}
	m.advancePatrol(tr, in.DT)
}

func (m *Machine) updateInvestigate(tr *Trooper, in TickInput) {
	now := m.now()
	if !tr.InvestigateUntil.IsZero() && now.After(tr.InvestigateUntil) {
		tr.ClearTargets()
		tr.State = StatePatrol
		return
	}
	if p, ok := perception.DetectPlayer(tr.Position, tr.Facing, in.Players, m.los); ok {
		m.engagePlayer(tr, p)
		return
	}
	if tr.LastKnown == nil {
		if tr.InvestigateUntil.IsZero() {
			tr.InvestigateUntil = now.Add(InvestigateDuration)
		}
		return
	}
	tr.Facing = steering.Bearing(tr.Position, *tr.LastKnown)
	tr.Position = steering.Seek(tr.Position, *tr.LastKnown, MoveSpeedMPS, in.DT)
	if world.Distance(tr.Position, *tr.LastKnown) <= WaypointArriveM {
		// Arriving starts the search countdown if nothing did before.
		if tr.InvestigateUntil.IsZero() {
			tr.InvestigateUntil = now.Add(InvestigateDuration)
		}
	}
}

func (m *Machine) updateCombat(tr *Trooper, in TickInput) []combat.ShotOutcome {
	if float64(tr.Health) < RetreatHealthFrac*float64(tr.MaxHealth) {
		dest := tr.Position
		if len(tr.Patrol) > 0 {
			dest = tr.Patrol[0]
		}
		tr.RetreatTo = &dest
		tr.State = StateRetreat
		return nil
	}
	if tr.TargetThumperID != "" {
		return m.fightThumper(tr, in)
	}
	return m.fightPlayer(tr, in)
}

func (m *Machine) fightThumper(tr *Trooper, in TickInput) []combat.ShotOutcome {
	var target world.ThumperSnapshot
	found := false
	for _, th := range in.Thumpers {
		if th.ID == tr.TargetThumperID && th.Active {
			target = th
			found = true
			break
		}
	}
	if !found {
		tr.ClearTargets()
		tr.State = StatePatrol
		return nil
	}
	if world.Distance(tr.Position, target.Position) > CombatMaxDistM {
		tr.Position = steering.Seek(tr.Position, target.Position, MoveSpeedMPS, in.DT)
	}
	var shots []combat.ShotOutcome
	now := m.now()
	dist := world.Distance(tr.Position, target.Position)
	if dist <= m.weapon.RangeM && combat.CanFire(m.weapon, tr.LastFired, now) {
		out := m.resolver.ResolveShot(tr.Position, target.Position, m.weapon, true, target.ID, combat.TargetThumper)
		tr.LastFired = now
		shots = append(shots, out)
	}
	tr.Facing = steering.Bearing(tr.Position, target.Position)
	return shots
}

func (m *Machine) fightPlayer(tr *Trooper, in TickInput) []combat.ShotOutcome {
	var target world.PlayerSnapshot
	found := false
	for _, p := range in.Players {
		if p.ID == tr.TargetPlayerID && p.Alive() {
			target = p
			found = true
			break
		}
	}
	if !found {
		// Target vanished; fall back to searching its last position.
		tr.TargetPlayerID = ""
		tr.State = StateInvestigate
		tr.InvestigateUntil = m.now().Add(InvestigateDuration)
		return nil
	}
	visible := m.los == nil || m.los(tr.Position, target.Position)
	if visible {
		pos := target.Position
		tr.LastKnown = &pos
	}
	tr.Position = steering.MaintainSpacing(tr.Position, target.Position, CombatMinDistM, CombatMaxDistM, MoveSpeedMPS, in.DT)
	var shots []combat.ShotOutcome
	now := m.now()
	if visible && combat.CanFire(m.weapon, tr.LastFired, now) {
		out := m.resolver.ResolveShot(tr.Position, target.Position, m.weapon, visible, target.ID, combat.TargetPlayer)
		tr.LastFired = now
		shots = append(shots, out)
	}
	tr.Facing = steering.Bearing(tr.Position, target.Position)
	return shots
}

func (m *Machine) updateRetreat(tr *Trooper, in TickInput) {
	if tr.RetreatTo == nil {
		dest := tr.Position
		if len(tr.Patrol) > 0 {
			dest = tr.Patrol[0]
		}
		tr.RetreatTo = &dest
	}
	dest := *tr.RetreatTo
	tr.Facing = steering.Bearing(tr.Position, dest)
	tr.Position = steering.Seek(tr.Position, dest, MoveSpeedMPS, in.DT)
	if world.Distance(tr.Position, dest) <= RetreatArriveM {
		tr.ClearTargets()
		tr.State = StatePatrol
	}
}

// engagePlayer flips the trooper into COMBAT against a player and
// raises a squad alert, subject to the reporter's own cooldown.
func (m *Machine) engagePlayer(tr *Trooper, p world.PlayerSnapshot) {
	pos := p.Position
	tr.TargetPlayerID = p.ID
	tr.LastKnown = &pos
	tr.State = StateCombat
	tr.AlertedAt = m.now()
	if m.alerts != nil {
		m.alerts.Broadcast(tr.ID, p.ID, p.Position, tr.OutpostID)
	}
}

func (m *Machine) advancePatrol(tr *Trooper, dt float64) {
	if len(tr.Patrol) == 0 {
		return
	}
	if tr.WaypointIndex >= len(tr.Patrol) {
		tr.WaypointIndex = 0
	}
	wp := tr.Patrol[tr.WaypointIndex]
	tr.Facing = steering.Bearing(tr.Position, wp)
	tr.Position = steering.Seek(tr.Position, wp, MoveSpeedMPS, dt)
	if world.Distance(tr.Position, wp) <= WaypointArriveM {
		tr.WaypointIndex = (tr.WaypointIndex + 1) % len(tr.Patrol)
	}
}
