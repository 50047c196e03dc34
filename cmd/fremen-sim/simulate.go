package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"fremen-sim/internal/admin"
	"fremen-sim/internal/config"
	"fremen-sim/internal/logging"
	"fremen-sim/internal/scenario"
	"fremen-sim/internal/sim"
)

var (
	simOutput     string
	simPrintOnly  bool
	simConfigPath string
	simSchemaPath string
	simScenario   string
	simTick       time.Duration
	simLogFile    string
	simAdminAddr  string
	simNoAlerts   bool
	simNoState    bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the real-time garrison simulator",
	Long:  "simulate starts the garrison AI against a scripted raid scenario and emits combat telemetry.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New()
		ctx, cancel := context.WithCancel(logging.NewContext(context.Background(), log))
		defer cancel()

		cfg, err := config.Load(simConfigPath, simSchemaPath)
		if err != nil {
			return err
		}
		if simScenario != "" {
			cfg.Scenario = simScenario
		}

		scn, err := loadScenario(cfg)
		if err != nil {
			return err
		}

		writer, alertWriter, stateWriter, cleanup, err := newWriters(cfg, simOutput, simPrintOnly, simLogFile, !simNoAlerts, !simNoState)
		if err != nil {
			return err
		}
		defer cleanup()

		tickInterval := simTick
		if envTick := os.Getenv("TICK_INTERVAL"); envTick != "" {
			d, err := time.ParseDuration(envTick)
			if err != nil {
				return err
			}
			tickInterval = d
		}

		simulator := sim.NewSimulator(cfg, scn, writer, stateWriter, alertWriter, tickInterval, nil, nil)

		srv := admin.NewServer(simulator)
		go func() {
			if err := srv.Start(ctx, simAdminAddr); err != nil {
				log.Error("admin server failed", "err", err)
			}
		}()

		go simulator.Run(ctx)

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs

		cancel()
		log.Info("garrison simulation stopped")
		return nil
	},
}

// loadScenario resolves the scenario from config: an explicit file
// wins, then a built-in scenario by name.
func loadScenario(cfg *config.SimulationConfig) (*scenario.Scenario, error) {
	if cfg.ScenarioFile != "" {
		return scenario.Load(cfg.ScenarioFile)
	}
	return scenario.ByName(cfg.Scenario)
}

func init() {
	simulateCmd.Flags().StringVar(&simOutput, "output", "color", "Output mode: json, color, or tui")
	simulateCmd.Flags().BoolVar(&simPrintOnly, "print-only", false, "Print combat events to STDOUT instead of writing to DB")
	simulateCmd.Flags().StringVar(&simConfigPath, "config", "config/simulation.yaml", "Path to simulation configuration YAML")
	simulateCmd.Flags().StringVar(&simSchemaPath, "schema", "schemas/simulation.cue", "Path to CUE schema file")
	simulateCmd.Flags().StringVar(&simScenario, "scenario", "", "Built-in scenario name (overrides config)")
	simulateCmd.Flags().DurationVar(&simTick, "tick", 200*time.Millisecond, "Simulation tick interval (e.g. 100ms, 1s)")
	simulateCmd.Flags().StringVar(&simLogFile, "log-file", "", "Path to export combat logs (JSONL)")
	simulateCmd.Flags().StringVar(&simAdminAddr, "admin-addr", ":8080", "Admin server listen address")
	simulateCmd.Flags().BoolVar(&simNoAlerts, "no-alert-log", false, "Disable squad alert logging")
	simulateCmd.Flags().BoolVar(&simNoState, "no-state-log", false, "Disable trooper state logging")
}
