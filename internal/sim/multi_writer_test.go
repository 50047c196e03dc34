package sim

import (
	"testing"

	"fremen-sim/internal/telemetry"
)

type countingWriter struct {
	single int
	batch  int
}

func (c *countingWriter) WriteEngagement(telemetry.EngagementRow) error {
	c.single++
	return nil
}

type countingBatchWriter struct{ countingWriter }

func (c *countingBatchWriter) WriteEngagements(rows []telemetry.EngagementRow) error {
	c.batch += len(rows)
	return nil
}

func TestMultiWriterFanOut(t *testing.T) {
	plain := &countingWriter{}
	batch := &countingBatchWriter{}
	mw := NewMultiWriter([]EngagementWriter{plain, batch}, nil, nil)

	rows := []telemetry.EngagementRow{{TrooperID: "t1"}, {TrooperID: "t2"}}
	if err := mw.WriteEngagements(rows); err != nil {
		t.Fatalf("WriteEngagements: %v", err)
	}
	if plain.single != 2 {
		t.Fatalf("plain writer got %d single writes, want 2", plain.single)
	}
	if batch.batch != 2 {
		t.Fatalf("batch writer got %d batched rows, want 2", batch.batch)
	}
	if batch.single != 0 {
		t.Fatalf("batch writer got %d single writes, want 0", batch.single)
	}
}

type countingAlertWriter struct{ count int }

func (c *countingAlertWriter) WriteAlert(telemetry.AlertRow) error {
	c.count++
	return nil
}

func TestMultiWriterAlerts(t *testing.T) {
	a := &countingAlertWriter{}
	mw := NewMultiWriter(nil, []AlertWriter{a}, nil)
	if err := mw.WriteAlerts([]telemetry.AlertRow{{AlertID: "a1"}}); err != nil {
		t.Fatalf("WriteAlerts: %v", err)
	}
	if a.count != 1 {
		t.Fatalf("alert writer got %d writes, want 1", a.count)
	}
}
