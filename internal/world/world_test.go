package world

import (
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: 5, Z: 6}

	if got := a.Add(b); got != (Vec3{X: 5, Y: 7, Z: 9}) {
		t.Fatalf("Add = %+v", got)
	}
	if got := b.Sub(a); got != (Vec3{X: 3, Y: 3, Z: 3}) {
		t.Fatalf("Sub = %+v", got)
	}
	if got := a.Scale(2); got != (Vec3{X: 2, Y: 4, Z: 6}) {
		t.Fatalf("Scale = %+v", got)
	}
}

func TestLengthAndDistance(t *testing.T) {
	if got := (Vec3{X: 3, Z: 4}).Length(); got != 5 {
		t.Fatalf("Length = %v, want 5", got)
	}
	if got := Distance(Vec3{X: 1}, Vec3{X: 1, Z: 2}); got != 2 {
		t.Fatalf("Distance = %v, want 2", got)
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize(Vec3{X: 0, Y: 0, Z: 10})
	if math.Abs(got.Length()-1) > 1e-12 || got.Z != 1 {
		t.Fatalf("Normalize = %+v", got)
	}
	// Zero vectors normalize to zero, never NaN.
	z := Normalize(Vec3{})
	if z != (Vec3{}) || math.IsNaN(z.X) {
		t.Fatalf("Normalize zero = %+v", z)
	}
}

func TestPlayerSnapshotAlive(t *testing.T) {
	if !(PlayerSnapshot{State: PlayerAlive}).Alive() {
		t.Fatalf("alive player reported not alive")
	}
	// Downed players remain valid targets.
	if !(PlayerSnapshot{State: PlayerDown}).Alive() {
		t.Fatalf("downed player reported not alive")
	}
	if (PlayerSnapshot{State: PlayerDead}).Alive() {
		t.Fatalf("dead player reported alive")
	}
}
