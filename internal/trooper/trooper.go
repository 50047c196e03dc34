// Trooper agents: the autonomous outpost garrison units and their
// patrol/combat state machine.
package trooper

import (
	"time"

	"github.com/google/uuid"

	"fremen-sim/internal/combat"
	"fremen-sim/internal/world"
)

// State is the trooper lifecycle state. DEAD is terminal; the garrison
// manager removes the corpse after CorpseDuration.
type State string

const (
	StatePatrol      State = "patrol"
	StateInvestigate State = "investigate"
	StateCombat      State = "combat"
	StateRetreat     State = "retreat"
	StateDead        State = "dead"
)

// Behavior tuning. Values are fixed for parity with the live servers.
const (
	MaxHealth           = 100
	MoveSpeedMPS        = 5.0
	WaypointArriveM     = 2.0
	RetreatArriveM      = 5.0
	CombatMinDistM      = 20.0
	CombatMaxDistM      = 40.0
	InvestigateDuration = 10 * time.Second
	CorpseDuration      = 30 * time.Second
	// RetreatHealthFrac of max health triggers the break-off.
	RetreatHealthFrac = 0.30
)

// Trooper is one enemy agent. All fields are mutated only by the single
// per-tick update pass.
type Trooper struct {
	ID        string
	OutpostID string

	Position world.Vec3
	Facing   float64

	State     State
	Health    int
	MaxHealth int

	Patrol        []world.Vec3
	WaypointIndex int

	TargetPlayerID  string
	TargetThumperID string
	LastKnown       *world.Vec3
	RetreatTo       *world.Vec3

	// InvestigateUntil is the search-expiry timestamp; zero means the
	// countdown has not started.
	InvestigateUntil time.Time
	// AlertedAt doubles as the death timestamp once State is DEAD.
	AlertedAt time.Time
	LastFired time.Time
}

// New creates a patrol-state trooper assigned to an outpost.
func New(outpostID string, pos world.Vec3, patrol []world.Vec3) *Trooper {
	return &Trooper{
		ID:        uuid.New().String(),
		OutpostID: outpostID,
		Position:  pos,
		State:     StatePatrol,
		Health:    MaxHealth,
		MaxHealth: MaxHealth,
		Patrol:    patrol,
	}
}

// Alive reports whether the trooper still takes part in the update
// pass.
func (t *Trooper) Alive() bool {
	return t.State != StateDead
}

// TakeDamage applies damage to the trooper's health pool. A lethal
// result flips the state to DEAD and stamps the death timestamp in the
// same step, so no later logic can observe a zero-health live trooper.
// Damage against an already-dead trooper is a no-op that still reports
// Killed.
func (t *Trooper) TakeDamage(damage int, now time.Time) combat.DamageResult {
	if t.State == StateDead {
		return combat.ApplyDamage(0, 0, t.ID)
	}
	res := combat.ApplyDamage(t.Health, damage, t.ID)
	t.Health = res.HealthRemaining
	if res.Killed {
		t.State = StateDead
		t.AlertedAt = now
	}
	return res
}

// ClearTargets drops all engagement memory.
func (t *Trooper) ClearTargets() {
	t.TargetPlayerID = ""
	t.TargetThumperID = ""
	t.LastKnown = nil
	t.RetreatTo = nil
	t.InvestigateUntil = time.Time{}
}
