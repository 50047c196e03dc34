// Shared geometry and boundary types consumed by the combat/AI core.
package world

import "math"

// Vec3 is a position or direction in world space. The ground plane is
// X/Z; Y is elevation.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec3) float64 {
	return b.Sub(a).Length()
}

// Normalize returns the unit vector of v, or the zero vector when v has
// zero length. Never produces NaN components.
func Normalize(v Vec3) Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// PlayerState mirrors the lifecycle state reported by the session layer.
type PlayerState string

const (
	PlayerAlive PlayerState = "alive"
	PlayerDown  PlayerState = "down"
	PlayerDead  PlayerState = "dead"
)

// PlayerSnapshot is the per-tick view of one connected player, supplied
// by the surrounding game loop.
type PlayerSnapshot struct {
	ID       string      `json:"id"`
	Position Vec3        `json:"position"`
	State    PlayerState `json:"state"`
}

// Alive reports whether the player is a valid detection target.
func (p PlayerSnapshot) Alive() bool {
	return p.State != PlayerDead
}

// ThumperSnapshot is the per-tick view of one deployed thumper.
type ThumperSnapshot struct {
	ID       string `json:"id"`
	Position Vec3   `json:"position"`
	Active   bool   `json:"active"`
}

// LineOfSight is the external occlusion oracle. Implementations must be
// pure with respect to a single tick.
type LineOfSight func(from, to Vec3) bool
