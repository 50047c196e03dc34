package sim

import "fremen-sim/internal/telemetry"

// EngagementWriter is an interface to support different output writers
// for resolved shots.
type EngagementWriter interface {
	WriteEngagement(telemetry.EngagementRow) error
}

// Optional: engagement writers may support batch mode.
type batchEngagementWriter interface {
	WriteEngagements([]telemetry.EngagementRow) error
}

// StateWriter handles per-tick trooper state rows.
type StateWriter interface {
	WriteState(telemetry.TrooperStateRow) error
}

// Optional: state writers may support batch mode.
type batchStateWriter interface {
	WriteStates([]telemetry.TrooperStateRow) error
}

// AlertWriter handles accepted squad-alert broadcasts.
type AlertWriter interface {
	WriteAlert(telemetry.AlertRow) error
}

// Optional: alert writers may support batch mode.
type batchAlertWriter interface {
	WriteAlerts([]telemetry.AlertRow) error
}
