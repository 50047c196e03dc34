// ColorStdoutWriter prints human-friendly, colorized combat events to STDOUT.
package sim

import (
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"fremen-sim/internal/config"
	"fremen-sim/internal/telemetry"
	"fremen-sim/internal/trooper"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"
)

var outpostPalette = []string{colorGreen, colorBlue, colorMagenta, colorCyan, colorYellow}

// ColorStdoutWriter prints combat events using ANSI colors.
type ColorStdoutWriter struct {
	cfg           *config.SimulationConfig
	out           io.Writer
	once          sync.Once
	outpostColors map[string]string
	colorIdx      int
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter(cfg *config.SimulationConfig) *ColorStdoutWriter {
	return &ColorStdoutWriter{
		cfg:           cfg,
		out:           os.Stdout,
		outpostColors: make(map[string]string),
	}
}

func (w *ColorStdoutWriter) getOutpostColor(id string) string {
	if c, ok := w.outpostColors[id]; ok {
		return c
	}
	c := outpostPalette[w.colorIdx%len(outpostPalette)]
	w.outpostColors[id] = c
	w.colorIdx++
	return c
}

func (w *ColorStdoutWriter) printOverview() {
	if w.cfg == nil {
		return
	}
	fmt.Fprintln(w.out, "Garrison Configuration:")
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Outpost\tPosition\tCapture Radius (m)\tMin Garrison\n")
	for _, op := range w.cfg.Outposts {
		col := w.getOutpostColor(op.ID)
		fmt.Fprintf(tw, "%s%s%s\t(%.0f, %.0f)\t%.0f\t%d\n", col, op.ID, colorReset, op.X, op.Z, op.CaptureRadius, op.MinGarrison)
	}
	tw.Flush()
	fmt.Fprintln(w.out)
}

// WriteEngagement outputs a single engagement in colorized format.
func (w *ColorStdoutWriter) WriteEngagement(row telemetry.EngagementRow) error {
	w.once.Do(w.printOverview)

	result := fmt.Sprintf("%sMISS%s", colorGray, colorReset)
	if row.Hit {
		result = fmt.Sprintf("%sHIT dmg=%d%s", colorRed, row.Damage, colorReset)
	}
	fmt.Fprintf(w.out, "%s[%s]%s %soutpost=%s%s trooper=%s target=%s/%s dist=%.1fm %s\n",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		w.getOutpostColor(row.OutpostID), row.OutpostID, colorReset,
		row.TrooperID, row.TargetKind, row.TargetID, row.DistanceM, result)
	return nil
}

// WriteAlert outputs a squad alert in colorized format.
func (w *ColorStdoutWriter) WriteAlert(row telemetry.AlertRow) error {
	w.once.Do(w.printOverview)
	fmt.Fprintf(w.out, "%s[%s]%s %sALERT%s reporter=%s spotted=%s outpost=%s at=(%.1f, %.1f)\n",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		colorYellow, colorReset,
		row.ReporterID, row.SpottedID, row.OutpostID, row.Position.X, row.Position.Z)
	return nil
}

// WriteState outputs a trooper state row in colorized format.
func (w *ColorStdoutWriter) WriteState(row telemetry.TrooperStateRow) error {
	w.once.Do(w.printOverview)
	stateColor := colorGreen
	switch trooper.State(row.State) {
	case trooper.StateCombat:
		stateColor = colorRed
	case trooper.StateInvestigate:
		stateColor = colorYellow
	case trooper.StateRetreat:
		stateColor = colorMagenta
	case trooper.StateDead:
		stateColor = colorGray
	}
	fmt.Fprintf(w.out, "%s[%s]%s trooper=%s outpost=%s %s%s%s hp=%d pos=(%.1f, %.1f)\n",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		row.TrooperID, row.OutpostID,
		stateColor, row.State, colorReset,
		row.Health, row.Position.X, row.Position.Z)
	return nil
}
