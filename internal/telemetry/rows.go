// Combat-event rows with greptime tags
package telemetry

import (
	"os"
	"time"

	"fremen-sim/internal/combat"
	"fremen-sim/internal/trooper"
	"fremen-sim/internal/world"
)

// EngagementRow records one resolved shot for GreptimeDB.
type EngagementRow struct {
	ClusterID  string    `json:"cluster_id"`  // TAG
	TrooperID  string    `json:"trooper_id"`  // TAG
	OutpostID  string    `json:"outpost_id"`  // TAG
	TargetID   string    `json:"target_id"`   // FIELD
	TargetKind string    `json:"target_kind"` // FIELD
	Hit        bool      `json:"hit"`         // FIELD
	Damage     int       `json:"damage"`      // FIELD
	DistanceM  float64   `json:"distance_m"`  // FIELD
	Timestamp  time.Time `json:"ts"`          // TIME INDEX
}

// TrooperStateRow captures one trooper's state at a tick.
type TrooperStateRow struct {
	ClusterID string     `json:"cluster_id"` // TAG
	TrooperID string     `json:"trooper_id"` // TAG
	OutpostID string     `json:"outpost_id"` // TAG
	State     string     `json:"state"`      // FIELD
	Health    int        `json:"health"`     // FIELD
	Position  world.Vec3 `json:"position"`   // FIELD (flattened on write)
	Facing    float64    `json:"facing"`     // FIELD
	Timestamp time.Time  `json:"ts"`         // TIME INDEX
}

// AlertRow records one accepted squad alert broadcast.
type AlertRow struct {
	ClusterID  string     `json:"cluster_id"`  // TAG
	AlertID    string     `json:"alert_id"`    // TAG
	ReporterID string     `json:"reporter_id"` // FIELD
	SpottedID  string     `json:"spotted_id"`  // FIELD
	OutpostID  string     `json:"outpost_id"`  // FIELD
	Position   world.Vec3 `json:"position"`    // FIELD (flattened on write)
	Timestamp  time.Time  `json:"ts"`          // TIME INDEX
}

// Table names used when writing to GreptimeDB, overridable via
// environment for shared clusters.
var (
	EngagementTableName = tableName("ENGAGEMENT_TABLE", "trooper_engagements")
	StateTableName      = tableName("TROOPER_STATE_TABLE", "trooper_state")
	AlertTableName      = tableName("SQUAD_ALERT_TABLE", "squad_alerts")
)

func tableName(env, fallback string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	return fallback
}

// NewEngagementRow converts a shot outcome into a writable row.
func NewEngagementRow(clusterID, trooperID, outpostID string, shot combat.ShotOutcome, ts time.Time) EngagementRow {
	return EngagementRow{
		ClusterID:  clusterID,
		TrooperID:  trooperID,
		OutpostID:  outpostID,
		TargetID:   shot.TargetID,
		TargetKind: string(shot.TargetKind),
		Hit:        shot.Hit,
		Damage:     shot.Damage,
		DistanceM:  shot.DistanceM,
		Timestamp:  ts,
	}
}

// NewTrooperStateRow snapshots a trooper for the state log.
func NewTrooperStateRow(clusterID string, tr *trooper.Trooper, ts time.Time) TrooperStateRow {
	return TrooperStateRow{
		ClusterID: clusterID,
		TrooperID: tr.ID,
		OutpostID: tr.OutpostID,
		State:     string(tr.State),
		Health:    tr.Health,
		Position:  tr.Position,
		Facing:    tr.Facing,
		Timestamp: ts,
	}
}
