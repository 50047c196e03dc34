package main

import (
	"fmt"
	"os"

	"fremen-sim/internal/config"
	"fremen-sim/internal/sim"
)

// newWriters sets up the engagement, alert, and state writers based on
// flags and env vars. It returns the writers and a cleanup function to
// close any resources.
func newWriters(cfg *config.SimulationConfig, output string, printOnly bool, logFile string, enableAlerts, enableState bool) (sim.EngagementWriter, sim.AlertWriter, sim.StateWriter, func(), error) {
	cleanup := func() {}

	ew, aw, sw, baseCleanup, err := baseWriters(cfg, output, printOnly)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	cleanup = baseCleanup
	if !enableAlerts {
		aw = nil
	}
	if !enableState {
		sw = nil
	}
	if logFile == "" {
		return ew, aw, sw, cleanup, nil
	}

	alertPath := ""
	if enableAlerts {
		alertPath = logFile + ".alerts"
	}
	statePath := ""
	if enableState {
		statePath = logFile + ".state"
	}
	fw, err := sim.NewFileWriter(logFile, alertPath, statePath)
	if err != nil {
		cleanup()
		return nil, nil, nil, nil, err
	}

	ews := []sim.EngagementWriter{ew, fw}
	var aws []sim.AlertWriter
	if aw != nil {
		aws = append(aws, aw)
	}
	if enableAlerts {
		aws = append(aws, fw)
	}
	var sws []sim.StateWriter
	if sw != nil {
		sws = append(sws, sw)
	}
	if enableState {
		sws = append(sws, fw)
	}
	mw := sim.NewMultiWriter(ews, aws, sws)
	fileCleanup := func() {
		fw.Close()
		baseCleanup()
	}
	var outAlert sim.AlertWriter
	if len(aws) > 0 {
		outAlert = mw
	}
	var outState sim.StateWriter
	if len(sws) > 0 {
		outState = mw
	}
	return mw, outAlert, outState, fileCleanup, nil
}

// baseWriters chooses the underlying writers based on the output mode,
// printOnly flag, and env vars.
func baseWriters(cfg *config.SimulationConfig, output string, printOnly bool) (sim.EngagementWriter, sim.AlertWriter, sim.StateWriter, func(), error) {
	cleanup := func() {}

	if !printOnly && os.Getenv("GREPTIMEDB_ENDPOINT") != "" {
		endpoint := os.Getenv("GREPTIMEDB_ENDPOINT")
		database := os.Getenv("GREPTIMEDB_DATABASE")
		if database == "" {
			database = "public"
		}
		w, err := sim.NewGreptimeDBWriter(endpoint, database)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return w, w, w, cleanup, nil
	}

	switch output {
	case "json":
		w := sim.NewJSONStdoutWriter()
		return w, w, w, cleanup, nil
	case "color":
		w := sim.NewColorStdoutWriter(cfg)
		return w, w, w, cleanup, nil
	case "tui":
		w := sim.NewTUIWriter(cfg)
		return w, w, w, func() { w.Close() }, nil
	default:
		return nil, nil, nil, nil, fmt.Errorf("unknown output mode %q", output)
	}
}

// newReplayWriter creates an engagement writer for replay without
// alert or state handling.
func newReplayWriter(cfg *config.SimulationConfig, output string, printOnly bool) (sim.EngagementWriter, func(), error) {
	w, _, _, cleanup, err := baseWriters(cfg, output, printOnly)
	return w, cleanup, err
}
