// Simulator orchestrating the trooper garrison against scripted raids
package sim

import (
	"math/rand"
	"sync"
	"time"

	"fremen-sim/internal/alert"
	"fremen-sim/internal/combat"
	"fremen-sim/internal/config"
	"fremen-sim/internal/garrison"
	"fremen-sim/internal/scenario"
	"fremen-sim/internal/telemetry"
	"fremen-sim/internal/trooper"
	"fremen-sim/internal/world"
)

// Simulator drives the combat core: it feeds scripted player/thumper
// snapshots into the garrison manager each tick and fans the resulting
// combat events out to the configured writers.
type Simulator struct {
	clusterID string
	cfg       *config.SimulationConfig
	scn       *scenario.Scenario

	coord   *alert.Coordinator
	manager *garrison.Manager

	writer      EngagementWriter
	stateWriter StateWriter
	alertWriter AlertWriter

	tickInterval time.Duration
	elapsed      float64

	// Return-fire bookkeeping for armed scripted raiders.
	raiderGuns map[string]time.Time
	resolver   *combat.Resolver

	adminJam map[string]bool

	now  func() time.Time
	rand *rand.Rand
	mu   sync.Mutex
}

// NewSimulator wires the combat core for one cluster. stateWriter and
// alertWriter may be nil to skip those logs; nowFn and rng may be nil
// for real time and a time-seeded source.
func NewSimulator(cfg *config.SimulationConfig, scn *scenario.Scenario, writer EngagementWriter, stateWriter StateWriter, alertWriter AlertWriter, tickInterval time.Duration, nowFn func() time.Time, rng *rand.Rand) *Simulator {
	if nowFn == nil {
		nowFn = time.Now
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Simulator{
		clusterID:    cfg.ClusterID,
		cfg:          cfg,
		scn:          scn,
		writer:       writer,
		stateWriter:  stateWriter,
		alertWriter:  alertWriter,
		tickInterval: tickInterval,
		raiderGuns:   make(map[string]time.Time),
		adminJam:     make(map[string]bool),
		now:          nowFn,
		rand:         rng,
	}
	s.resolver = combat.NewResolver(rng.Float64)
	s.coord = alert.NewCoordinator(nowFn)
	// Open desert: the line-of-sight oracle reports clear sight
	// everywhere. Terrain servers plug in their own oracle.
	machine := trooper.NewMachine(s.coord, nil, s.resolver, nowFn)

	outposts := make([]garrison.Outpost, 0, len(cfg.Outposts))
	for _, oc := range cfg.Outposts {
		faction := garrison.Faction(oc.Faction)
		if faction == "" {
			faction = garrison.FactionHarkonnen
		}
		outposts = append(outposts, garrison.Outpost{
			ID:            oc.ID,
			Position:      world.Vec3{X: oc.X, Y: oc.Y, Z: oc.Z},
			CaptureRadius: oc.CaptureRadius,
			Controlling:   faction,
			MinGarrison:   oc.MinGarrison,
		})
	}
	s.manager = garrison.NewManager(machine, outposts, s.isJammed, nowFn)
	return s
}

// isJammed merges admin-forced jamming with the scenario's scripted
// windows. Called from within the tick, under the simulator mutex.
func (s *Simulator) isJammed(outpostID string) bool {
	if s.adminJam[outpostID] {
		return true
	}
	return s.scn != nil && s.scn.JammedAt(outpostID, s.elapsed)
}

// SetJammed toggles admin-forced jamming for an outpost.
func (s *Simulator) SetJammed(outpostID string, jammed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adminJam[outpostID] = jammed
}

// NotifyCaptured relays an outpost capture into the garrison manager.
func (s *Simulator) NotifyCaptured(outpostID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manager.NotifyCaptured(outpostID)
}

// NotifyRecaptured relays an outpost recapture into the garrison
// manager.
func (s *Simulator) NotifyRecaptured(outpostID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manager.NotifyRecaptured(outpostID)
}

// MarkDefeated evicts a trooper on behalf of an external damage
// resolver.
func (s *Simulator) MarkDefeated(trooperID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager.MarkDefeated(trooperID)
}

// RosterSnapshot returns the current state rows for every trooper,
// corpses included.
func (s *Simulator) RosterSnapshot() []telemetry.TrooperStateRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rosterRows(s.now())
}

// AlertStats reports coordinator counters for the admin surface.
func (s *Simulator) AlertStats() alert.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coord.Stats()
}

// Outposts returns per-outpost status summaries.
func (s *Simulator) Outposts() []garrison.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager.Outposts()
}

// Config returns the simulation configuration.
func (s *Simulator) Config() *config.SimulationConfig {
	return s.cfg
}

func (s *Simulator) rosterRows(ts time.Time) []telemetry.TrooperStateRow {
	troopers := s.manager.All()
	rows := make([]telemetry.TrooperStateRow, 0, len(troopers))
	for _, tr := range troopers {
		rows = append(rows, telemetry.NewTrooperStateRow(s.clusterID, tr, ts))
	}
	return rows
}
