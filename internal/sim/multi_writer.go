package sim

import "fremen-sim/internal/telemetry"

// MultiWriter fans combat events out to multiple writers.
type MultiWriter struct {
	engwriters   []EngagementWriter
	alertwriters []AlertWriter
	statewriters []StateWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(ews []EngagementWriter, aws []AlertWriter, sws []StateWriter) *MultiWriter {
	return &MultiWriter{engwriters: ews, alertwriters: aws, statewriters: sws}
}

// WriteEngagement sends an engagement row to all writers.
func (mw *MultiWriter) WriteEngagement(row telemetry.EngagementRow) error {
	for _, w := range mw.engwriters {
		if err := w.WriteEngagement(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteEngagements sends multiple engagement rows to all writers,
// using batch mode if supported.
func (mw *MultiWriter) WriteEngagements(rows []telemetry.EngagementRow) error {
	for _, w := range mw.engwriters {
		if bw, ok := w.(batchEngagementWriter); ok {
			if err := bw.WriteEngagements(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteEngagement(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteAlert sends an alert row to all alert writers.
func (mw *MultiWriter) WriteAlert(row telemetry.AlertRow) error {
	for _, w := range mw.alertwriters {
		if err := w.WriteAlert(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteAlerts sends multiple alert rows to all alert writers, using
// batch mode if supported.
func (mw *MultiWriter) WriteAlerts(rows []telemetry.AlertRow) error {
	for _, w := range mw.alertwriters {
		if bw, ok := w.(batchAlertWriter); ok {
			if err := bw.WriteAlerts(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteAlert(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteState sends a state row to all state writers.
func (mw *MultiWriter) WriteState(row telemetry.TrooperStateRow) error {
	for _, w := range mw.statewriters {
		if err := w.WriteState(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteStates sends multiple state rows to all state writers, using
// batch mode if supported.
func (mw *MultiWriter) WriteStates(rows []telemetry.TrooperStateRow) error {
	for _, w := range mw.statewriters {
		if bw, ok := w.(batchStateWriter); ok {
			if err := bw.WriteStates(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteState(r); err != nil {
				return err
			}
		}
	}
	return nil
}
