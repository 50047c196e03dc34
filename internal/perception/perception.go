// Detection queries for trooper agents: vision cone, hearing, and
// thumper proximity.
package perception

import (
	"math"

	"fremen-sim/internal/steering"
	"fremen-sim/internal/world"
)

// Detection tuning. Hearing deliberately ignores both the vision cone
// and the line-of-sight oracle: any live player inside the hearing
// radius is detected, walls or not. This matches the live servers.
const (
	VisionRadiusM  = 50.0
	VisionConeRad  = math.Pi / 2 // 45 degrees each side of facing
	HearingRadiusM = 100.0
	ThumperRadiusM = 100.0
)

// DetectPlayer returns the first live player the agent perceives, by
// hearing or by vision. Iteration order of the snapshot decides ties;
// results are not sorted by distance.
func DetectPlayer(pos world.Vec3, facing float64, players []world.PlayerSnapshot, los world.LineOfSight) (world.PlayerSnapshot, bool) {
	for _, p := range players {
		if !p.Alive() {
			continue
		}
		dist := world.Distance(pos, p.Position)
		if dist <= HearingRadiusM {
			return p, true
		}
		if dist > VisionRadiusM {
			continue
		}
		offset := steering.AngleDiff(steering.Bearing(pos, p.Position), facing)
		if math.Abs(offset) > VisionConeRad/2 {
			continue
		}
		if los != nil && !los(pos, p.Position) {
			continue
		}
		return p, true
	}
	return world.PlayerSnapshot{}, false
}

// DetectThumper returns the first active thumper within detection
// range. Thumpers are loud enough that facing and occlusion never
// matter. Callers must only consult this after player detection came up
// empty this tick; players always take priority.
func DetectThumper(pos world.Vec3, thumpers []world.ThumperSnapshot) (world.ThumperSnapshot, bool) {
	for _, th := range thumpers {
		if !th.Active {
			continue
		}
		if world.Distance(pos, th.Position) <= ThumperRadiusM {
			return th, true
		}
	}
	return world.ThumperSnapshot{}, false
}
