// Writer implementation printing combat events to STDOUT
package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"fremen-sim/internal/telemetry"
)

// JSONStdoutWriter prints engagement, alert, and state rows as JSON
// lines.
type JSONStdoutWriter struct {
	out io.Writer
}

// NewJSONStdoutWriter creates a JSONStdoutWriter writing to os.Stdout.
func NewJSONStdoutWriter() *JSONStdoutWriter {
	return &JSONStdoutWriter{out: os.Stdout}
}

// WriteEngagement outputs a single engagement row.
func (w *JSONStdoutWriter) WriteEngagement(row telemetry.EngagementRow) error {
	data, _ := json.Marshal(row)
	fmt.Fprintln(w.out, string(data))
	return nil
}

// WriteEngagements outputs multiple engagement rows.
func (w *JSONStdoutWriter) WriteEngagements(rows []telemetry.EngagementRow) error {
	for _, r := range rows {
		_ = w.WriteEngagement(r)
	}
	return nil
}

// WriteAlert outputs a squad alert row.
func (w *JSONStdoutWriter) WriteAlert(row telemetry.AlertRow) error {
	data, _ := json.Marshal(row)
	fmt.Fprintln(w.out, string(data))
	return nil
}

// WriteAlerts outputs multiple squad alert rows.
func (w *JSONStdoutWriter) WriteAlerts(rows []telemetry.AlertRow) error {
	for _, r := range rows {
		_ = w.WriteAlert(r)
	}
	return nil
}

// WriteState outputs a trooper state row.
func (w *JSONStdoutWriter) WriteState(row telemetry.TrooperStateRow) error {
	data, _ := json.Marshal(row)
	fmt.Fprintln(w.out, string(data))
	return nil
}

// WriteStates outputs multiple trooper state rows.
func (w *JSONStdoutWriter) WriteStates(rows []telemetry.TrooperStateRow) error {
	for _, r := range rows {
		_ = w.WriteState(r)
	}
	return nil
}
