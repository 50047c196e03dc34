// Scripted raid scenarios: deterministic player movement, thumper
// drops, and jamming windows used to drive the simulator harness.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fremen-sim/internal/world"
)

// PlayerScript moves one scripted raider along a waypoint chain at a
// fixed speed.
type PlayerScript struct {
	ID        string       `yaml:"id"`
	SpeedMPS  float64      `yaml:"speed_mps"`
	Waypoints []world.Vec3 `yaml:"waypoints"`
	Loop      bool         `yaml:"loop,omitempty"`
	// Armed raiders return fire at garrison troopers.
	Armed bool `yaml:"armed,omitempty"`
	// DiesAtSec flags the player dead from that point on; zero means
	// never. LeavesAtSec removes it from the snapshot entirely
	// (disconnect).
	DiesAtSec   float64 `yaml:"dies_at_sec,omitempty"`
	LeavesAtSec float64 `yaml:"leaves_at_sec,omitempty"`
}

// ThumperDrop activates a stationary thumper for a time window.
type ThumperDrop struct {
	ID       string     `yaml:"id"`
	Position world.Vec3 `yaml:"position"`
	AtSec    float64    `yaml:"at_sec"`
	// DurationSec of zero keeps the thumper active until scenario end.
	DurationSec float64 `yaml:"duration_sec,omitempty"`
}

// JamWindow suspends backfill for one outpost during [FromSec, ToSec).
type JamWindow struct {
	OutpostID string  `yaml:"outpost_id"`
	FromSec   float64 `yaml:"from_sec"`
	ToSec     float64 `yaml:"to_sec"`
}

// Scenario is a named script of external inputs for the combat core.
type Scenario struct {
	Name        string         `yaml:"name,omitempty"`
	Description string         `yaml:"description,omitempty"`
	Players     []PlayerScript `yaml:"players"`
	Thumpers    []ThumperDrop  `yaml:"thumpers,omitempty"`
	Jams        []JamWindow    `yaml:"jams,omitempty"`
}

// Load reads a YAML scenario definition from disk.
func Load(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return &s, nil
}

// PlayersAt returns the player snapshot for the given elapsed seconds.
func (s *Scenario) PlayersAt(elapsed float64) []world.PlayerSnapshot {
	var out []world.PlayerSnapshot
	for _, ps := range s.Players {
		if ps.LeavesAtSec > 0 && elapsed >= ps.LeavesAtSec {
			continue
		}
		snap := world.PlayerSnapshot{
			ID:       ps.ID,
			Position: ps.positionAt(elapsed),
			State:    world.PlayerAlive,
		}
		if ps.DiesAtSec > 0 && elapsed >= ps.DiesAtSec {
			snap.State = world.PlayerDead
		}
		out = append(out, snap)
	}
	return out
}

// ThumpersAt returns the thumper snapshot for the given elapsed
// seconds. Dropped thumpers outside their active window report
// Active=false so agents lose interest lazily.
func (s *Scenario) ThumpersAt(elapsed float64) []world.ThumperSnapshot {
	var out []world.ThumperSnapshot
	for _, td := range s.Thumpers {
		if elapsed < td.AtSec {
			continue
		}
		active := td.DurationSec <= 0 || elapsed < td.AtSec+td.DurationSec
		out = append(out, world.ThumperSnapshot{ID: td.ID, Position: td.Position, Active: active})
	}
	return out
}

// JammedAt reports whether an outpost is inside a jamming window at the
// given elapsed seconds.
func (s *Scenario) JammedAt(outpostID string, elapsed float64) bool {
	for _, jw := range s.Jams {
		if jw.OutpostID == outpostID && elapsed >= jw.FromSec && elapsed < jw.ToSec {
			return true
		}
	}
	return false
}

// positionAt walks the waypoint chain by elapsed*speed meters.
func (ps PlayerScript) positionAt(elapsed float64) world.Vec3 {
	if len(ps.Waypoints) == 0 {
		return world.Vec3{}
	}
	if len(ps.Waypoints) == 1 || ps.SpeedMPS <= 0 {
		return ps.Waypoints[0]
	}
	traveled := elapsed * ps.SpeedMPS
	for {
		for i := 0; i < len(ps.Waypoints)-1; i++ {
			a, b := ps.Waypoints[i], ps.Waypoints[i+1]
			leg := world.Distance(a, b)
			if traveled < leg {
				dir := world.Normalize(b.Sub(a))
				return a.Add(dir.Scale(traveled))
			}
			traveled -= leg
		}
		if !ps.Loop {
			return ps.Waypoints[len(ps.Waypoints)-1]
		}
		total := ps.pathLength()
		if total <= 0 {
			return ps.Waypoints[0]
		}
		// Wrap around the loop rather than iterating forever.
		for traveled >= total {
			traveled -= total
		}
	}
}

func (ps PlayerScript) pathLength() float64 {
	total := 0.0
	for i := 0; i < len(ps.Waypoints)-1; i++ {
		total += world.Distance(ps.Waypoints[i], ps.Waypoints[i+1])
	}
	return total
}
