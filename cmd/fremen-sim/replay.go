package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fremen-sim/internal/sim"
)

var (
	replayInput     string
	replaySpeed     float64
	replayOutput    string
	replayPrintOnly bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a combat log file",
	Long:  "replay feeds engagement rows from a JSONL log file back into GreptimeDB or STDOUT.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		writer, cleanup, err := newReplayWriter(nil, replayOutput, replayPrintOnly)
		if err != nil {
			return err
		}
		defer cleanup()
		return sim.ReplayLogFile(replayInput, writer, replaySpeed)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to combat log file")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier")
	replayCmd.Flags().StringVar(&replayOutput, "output", "json", "Output mode: json or color")
	replayCmd.Flags().BoolVar(&replayPrintOnly, "print-only", false, "Print combat events to STDOUT instead of writing to DB")
	replayCmd.MarkFlagRequired("input")
}
