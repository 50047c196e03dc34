package telemetry

import (
	"testing"
	"time"

	"fremen-sim/internal/combat"
	"fremen-sim/internal/trooper"
	"fremen-sim/internal/world"
)

func TestNewEngagementRow(t *testing.T) {
	ts := time.Unix(100, 0)
	shot := combat.ShotOutcome{
		TargetID:   "raider-1",
		TargetKind: combat.TargetPlayer,
		Hit:        true,
		Damage:     20,
		DistanceM:  31.5,
	}

	row := NewEngagementRow("sector-01", "tr-1", "outpost-west", shot, ts)
	if row.ClusterID != "sector-01" || row.TrooperID != "tr-1" || row.OutpostID != "outpost-west" {
		t.Fatalf("attribution tags wrong: %+v", row)
	}
	if row.TargetID != "raider-1" || row.TargetKind != "player" || !row.Hit {
		t.Fatalf("shot fields wrong: %+v", row)
	}
	if row.Damage != 20 || row.DistanceM != 31.5 || !row.Timestamp.Equal(ts) {
		t.Fatalf("shot fields wrong: %+v", row)
	}
}

func TestNewTrooperStateRow(t *testing.T) {
	ts := time.Unix(200, 0)
	tr := trooper.New("outpost-west", world.Vec3{X: 3, Z: 4}, nil)
	tr.Health = 55
	tr.Facing = 1.25

	row := NewTrooperStateRow("sector-01", tr, ts)
	if row.TrooperID != tr.ID || row.OutpostID != "outpost-west" {
		t.Fatalf("identity fields wrong: %+v", row)
	}
	if row.State != string(trooper.StatePatrol) || row.Health != 55 {
		t.Fatalf("state fields wrong: %+v", row)
	}
	if row.Position != tr.Position || row.Facing != 1.25 || !row.Timestamp.Equal(ts) {
		t.Fatalf("pose fields wrong: %+v", row)
	}
}

func TestTableNameOverride(t *testing.T) {
	t.Setenv("ENGAGEMENT_TABLE", "custom_engagements")
	if got := tableName("ENGAGEMENT_TABLE", "trooper_engagements"); got != "custom_engagements" {
		t.Fatalf("override ignored: %q", got)
	}
	if got := tableName("UNSET_TABLE_ENV", "fallback"); got != "fallback" {
		t.Fatalf("fallback = %q", got)
	}
}
