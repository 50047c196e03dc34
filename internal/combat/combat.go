// Weapon stats and hit resolution used by both factions.
package combat

import (
	"math"
	"math/rand"
	"time"

	"fremen-sim/internal/world"
)

func defaultRandFloat() float64 { return rand.Float64() }

// TargetKind distinguishes what a shot connected with.
type TargetKind string

const (
	TargetPlayer  TargetKind = "player"
	TargetThumper TargetKind = "thumper"
	TargetTrooper TargetKind = "trooper"
)

// WeaponProfile is immutable lookup data; profiles are shared across
// all resolver calls.
type WeaponProfile struct {
	Name         string
	DamagePerHit int
	FireInterval time.Duration
	RangeM       float64
	Accuracy     float64
}

// The two rifle profiles in play. Values are fixed for behavioral
// parity with the live game servers.
var (
	AttackerRifle = WeaponProfile{
		Name:         "attacker-rifle",
		DamagePerHit: 25,
		FireInterval: 500 * time.Millisecond,
		RangeM:       100,
		Accuracy:     0.90,
	}
	DefenderRifle = WeaponProfile{
		Name:         "defender-rifle",
		DamagePerHit: 20,
		FireInterval: 1000 * time.Millisecond,
		RangeM:       80,
		Accuracy:     0.85,
	}
)

// ShotOutcome is the per-shot record handed back to the owning loop,
// which applies it to the target's health pool. TargetID and TargetKind
// are set only on a hit.
type ShotOutcome struct {
	Hit        bool       `json:"hit"`
	Damage     int        `json:"damage"`
	DistanceM  float64    `json:"distance_m"`
	TargetID   string     `json:"target_id,omitempty"`
	TargetKind TargetKind `json:"target_kind,omitempty"`
}

// DamageResult reports the effect of applying damage to a health pool.
type DamageResult struct {
	TargetID        string `json:"target_id"`
	DamageTaken     int    `json:"damage_taken"`
	HealthRemaining int    `json:"health_remaining"`
	Killed          bool   `json:"killed"`
}

// HitChance returns the probability of a hit at the given distance.
// 1.0 at point blank, exactly accuracy at max range, 0 beyond it, and
// monotonically non-increasing in between.
func HitChance(distance, rangeM, accuracy float64) float64 {
	if distance > rangeM {
		return 0
	}
	return clamp01(1 - (distance/rangeM)*(1-accuracy))
}

// CanFire reports whether the inter-shot interval has elapsed. Equality
// permits firing exactly on the boundary.
func CanFire(w WeaponProfile, lastFire, now time.Time) bool {
	return now.Sub(lastFire) >= w.FireInterval
}

// ApplyDamage clamps damage into the available health pool. Killed is
// true whenever no health remains, including when the target was
// already at zero.
func ApplyDamage(currentHealth, damage int, targetID string) DamageResult {
	taken := damage
	if taken < 0 {
		taken = 0
	}
	if taken > currentHealth {
		taken = currentHealth
	}
	remaining := currentHealth - damage
	if remaining < 0 {
		remaining = 0
	}
	return DamageResult{
		TargetID:        targetID,
		DamageTaken:     taken,
		HealthRemaining: remaining,
		Killed:          remaining <= 0,
	}
}

// ScaledDamage applies a multiplier to a base damage value, floored and
// never negative.
func ScaledDamage(base int, modifier float64) int {
	scaled := math.Floor(float64(base) * modifier)
	if scaled < 0 {
		return 0
	}
	return int(scaled)
}

// ShootDirection returns the unit vector from shooter to target, or the
// zero vector when the points coincide.
func ShootDirection(from, to world.Vec3) world.Vec3 {
	return world.Normalize(to.Sub(from))
}

// Resolver draws hit rolls from an injectable source so tests can pin
// outcomes.
type Resolver struct {
	randFloat func() float64
}

// NewResolver creates a Resolver. randFloat may be nil to use the
// default source.
func NewResolver(randFloat func() float64) *Resolver {
	if randFloat == nil {
		randFloat = defaultRandFloat
	}
	return &Resolver{randFloat: randFloat}
}

// ResolveShot fires one shot from shooter at target. Out-of-range or
// occluded shots miss with the distance recorded; otherwise a single
// uniform roll is compared against HitChance. A NaN distance compares
// false against the range and therefore misses.
func (r *Resolver) ResolveShot(shooter, target world.Vec3, w WeaponProfile, hasLineOfSight bool, targetID string, kind TargetKind) ShotOutcome {
	dist := world.Distance(shooter, target)
	out := ShotOutcome{DistanceM: dist}
	if !(dist <= w.RangeM) || !hasLineOfSight {
		return out
	}
	if r.randFloat() < HitChance(dist, w.RangeM, w.Accuracy) {
		out.Hit = true
		out.Damage = w.DamagePerHit
		out.TargetID = targetID
		out.TargetKind = kind
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
