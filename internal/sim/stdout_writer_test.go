package sim

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"fremen-sim/internal/config"
	"fremen-sim/internal/telemetry"
)

func TestJSONStdoutWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &JSONStdoutWriter{out: &buf}

	row := telemetry.EngagementRow{
		ClusterID: "c1",
		TrooperID: "t1",
		TargetID:  "raider-1",
		Hit:       true,
		Damage:    20,
		Timestamp: time.Unix(0, 0).UTC(),
	}
	if err := w.WriteEngagement(row); err != nil {
		t.Fatalf("WriteEngagement: %v", err)
	}

	var got telemetry.EngagementRow
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.TrooperID != row.TrooperID || got.Damage != row.Damage {
		t.Fatalf("unexpected row: %#v", got)
	}
}

func TestColorStdoutWriterOverviewOnce(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.SimulationConfig{Outposts: []config.OutpostConfig{
		{ID: "outpost-west", X: -60, CaptureRadius: 30, MinGarrison: 3},
	}}
	w := &ColorStdoutWriter{cfg: cfg, out: &buf, outpostColors: make(map[string]string)}

	row := telemetry.EngagementRow{TrooperID: "t1", OutpostID: "outpost-west", Hit: true, Damage: 20}
	if err := w.WriteEngagement(row); err != nil {
		t.Fatalf("WriteEngagement: %v", err)
	}
	if err := w.WriteEngagement(row); err != nil {
		t.Fatalf("WriteEngagement: %v", err)
	}

	out := buf.String()
	if got := strings.Count(out, "Garrison Configuration:"); got != 1 {
		t.Fatalf("overview printed %d times, want 1", got)
	}
	if !strings.Contains(out, "HIT dmg=20") {
		t.Fatalf("missing hit marker in output: %s", out)
	}
}

func TestColorStdoutWriterMiss(t *testing.T) {
	var buf bytes.Buffer
	w := &ColorStdoutWriter{out: &buf, outpostColors: make(map[string]string)}

	row := telemetry.EngagementRow{TrooperID: "t1", OutpostID: "o1", Hit: false, DistanceM: 90}
	if err := w.WriteEngagement(row); err != nil {
		t.Fatalf("WriteEngagement: %v", err)
	}
	if !strings.Contains(buf.String(), "MISS") {
		t.Fatalf("missing MISS marker: %s", buf.String())
	}
}
