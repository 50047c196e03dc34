package sim

import (
	"context"
	"time"

	"fremen-sim/internal/combat"
	"fremen-sim/internal/logging"
	"fremen-sim/internal/telemetry"
	"fremen-sim/internal/trooper"
	"fremen-sim/internal/world"
)

// Run starts the simulation loop and stops when the context is done.
func (s *Simulator) Run(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Info("starting simulator", "cluster_id", s.clusterID, "tick_interval", s.tickInterval)
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Tick(ctx)
		case <-ctx.Done():
			log.Info("stopping simulator")
			return
		}
	}
}

// Tick advances the simulation by one step: snapshot the scripted
// world, run the aggregated trooper update, resolve raider return
// fire, and write the tick's combat events.
func (s *Simulator) Tick(ctx context.Context) {
	log := logging.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	dt := s.tickInterval.Seconds()
	var players []world.PlayerSnapshot
	var thumpers []world.ThumperSnapshot
	if s.scn != nil {
		players = s.scn.PlayersAt(s.elapsed)
		thumpers = s.scn.ThumpersAt(s.elapsed)
	}

	// The coordinator never self-schedules; the owning loop prunes it
	// exactly once per tick.
	s.coord.Cleanup()

	engagements := s.manager.Tick(trooper.TickInput{Players: players, Thumpers: thumpers, DT: dt})
	s.raiderReturnFire(ctx, players, now)

	if s.writer != nil && len(engagements) > 0 {
		rows := make([]telemetry.EngagementRow, 0, len(engagements))
		for _, e := range engagements {
			rows = append(rows, telemetry.NewEngagementRow(s.clusterID, e.TrooperID, e.OutpostID, e.ShotOutcome, now))
		}
		if err := s.writeEngagements(rows); err != nil {
			log.Error("engagement write failed", "err", err)
		}
	}

	if s.alertWriter != nil {
		if broadcasts := s.coord.DrainJournal(); len(broadcasts) > 0 {
			rows := make([]telemetry.AlertRow, 0, len(broadcasts))
			for _, a := range broadcasts {
				rows = append(rows, telemetry.AlertRow{
					ClusterID:  s.clusterID,
					AlertID:    a.ID,
					ReporterID: a.ReporterID,
					SpottedID:  a.SpottedID,
					OutpostID:  a.OutpostID,
					Position:   a.Position,
					Timestamp:  a.Timestamp,
				})
			}
			if err := s.writeAlerts(rows); err != nil {
				log.Error("alert write failed", "err", err)
			}
		}
	} else {
		s.coord.DrainJournal()
	}

	if s.stateWriter != nil {
		if err := s.writeStates(s.rosterRows(now)); err != nil {
			log.Error("state write failed", "err", err)
		}
	}

	s.elapsed += dt
}

// raiderReturnFire lets armed scripted players shoot back with the
// attacker rifle, feeding lethal results through the defeat path.
func (s *Simulator) raiderReturnFire(ctx context.Context, players []world.PlayerSnapshot, now time.Time) {
	log := logging.FromContext(ctx)
	if s.scn == nil {
		return
	}
	armed := make(map[string]bool, len(s.scn.Players))
	for _, ps := range s.scn.Players {
		armed[ps.ID] = ps.Armed
	}
	for _, p := range players {
		if !armed[p.ID] || !p.Alive() {
			continue
		}
		if !combat.CanFire(combat.AttackerRifle, s.raiderGuns[p.ID], now) {
			continue
		}
		for _, tr := range s.manager.All() {
			if !tr.Alive() {
				continue
			}
			if world.Distance(p.Position, tr.Position) > combat.AttackerRifle.RangeM {
				continue
			}
			out := s.resolver.ResolveShot(p.Position, tr.Position, combat.AttackerRifle, true, tr.ID, combat.TargetTrooper)
			s.raiderGuns[p.ID] = now
			if out.Hit {
				if res, ok := s.manager.ApplyDamage(tr.ID, out.Damage); ok && res.Killed {
					log.Info("trooper killed", "trooper_id", tr.ID, "by", p.ID)
				}
			}
			break
		}
	}
}

// Batch support if writers implement the batch interfaces.
func (s *Simulator) writeEngagements(rows []telemetry.EngagementRow) error {
	if bw, ok := s.writer.(batchEngagementWriter); ok {
		return bw.WriteEngagements(rows)
	}
	for _, r := range rows {
		if err := s.writer.WriteEngagement(r); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulator) writeAlerts(rows []telemetry.AlertRow) error {
	if bw, ok := s.alertWriter.(batchAlertWriter); ok {
		return bw.WriteAlerts(rows)
	}
	for _, r := range rows {
		if err := s.alertWriter.WriteAlert(r); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulator) writeStates(rows []telemetry.TrooperStateRow) error {
	if bw, ok := s.stateWriter.(batchStateWriter); ok {
		return bw.WriteStates(rows)
	}
	for _, r := range rows {
		if err := s.stateWriter.WriteState(r); err != nil {
			return err
		}
	}
	return nil
}
