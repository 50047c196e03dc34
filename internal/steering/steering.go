// Straight-line movement helpers shared by the trooper state machine.
// There is no pathfinding here; agents steer directly at their goal.
package steering

import (
	"math"

	"fremen-sim/internal/world"
)

// Seek moves pos toward target by at most speed*dt along the straight
// line between them. Returns pos unchanged when already coincident.
func Seek(pos, target world.Vec3, speed, dt float64) world.Vec3 {
	delta := target.Sub(pos)
	dist := delta.Length()
	if dist == 0 {
		return pos
	}
	step := speed * dt
	if step >= dist {
		return target
	}
	return pos.Add(delta.Scale(step / dist))
}

// Bearing returns the ground-plane angle from `from` to `to` in
// radians. Every facing computation in the core goes through this
// single atan2(dz, dx) convention.
func Bearing(from, to world.Vec3) float64 {
	return math.Atan2(to.Z-from.Z, to.X-from.X)
}

// AngleDiff returns the signed smallest difference between two angles,
// normalized into (-pi, pi].
func AngleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// MaintainSpacing keeps pos inside the [minDist, maxDist] band around
// target: backs off when too close, closes in when too far, holds
// otherwise.
func MaintainSpacing(pos, target world.Vec3, minDist, maxDist, speed, dt float64) world.Vec3 {
	dist := world.Distance(pos, target)
	if dist < minDist {
		away := world.Normalize(pos.Sub(target))
		goal := pos.Add(away.Scale(minDist - dist))
		return Seek(pos, goal, speed, dt)
	}
	if dist > maxDist {
		return Seek(pos, target, speed, dt)
	}
	return pos
}

// RetreatVector returns the point bufferDistance away from origin along
// the direction away from threat. When origin and threat coincide the
// origin is returned unchanged.
func RetreatVector(origin, threat world.Vec3, bufferDistance float64) world.Vec3 {
	away := world.Normalize(origin.Sub(threat))
	if away == (world.Vec3{}) {
		return origin
	}
	return origin.Add(away.Scale(bufferDistance))
}
