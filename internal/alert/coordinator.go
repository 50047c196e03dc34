// Squad coordination: cooldown-gated broadcast of player sightings
// between troopers.
package alert

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"fremen-sim/internal/world"
)

const (
	// Lifetime after which an alert is stale; stale reads are
	// filtered, Cleanup removes them from storage.
	Lifetime = 30 * time.Second
	// Cooldown between broadcasts from the same reporter.
	Cooldown = 5 * time.Second
	// Delivery radii. Troopers sharing the reporter's outpost listen
	// on the short net; everyone else, including troopers with no
	// outpost, on the long one.
	SameOutpostRadiusM  = 300.0
	CrossOutpostRadiusM = 500.0
)

// Alert is one time-boxed "player spotted" record.
type Alert struct {
	ID         string     `json:"id"`
	ReporterID string     `json:"reporter_id"`
	SpottedID  string     `json:"spotted_id"`
	Position   world.Vec3 `json:"position"`
	OutpostID  string     `json:"outpost_id,omitempty"`
	Timestamp  time.Time  `json:"ts"`
}

// Stats summarizes coordinator state for observability and tests.
type Stats struct {
	Total       int `json:"total"`
	Active      int `json:"active"`
	CoolingDown int `json:"cooling_down"`
}

// Coordinator stores alerts and per-reporter cooldowns. It is written
// by exactly one update pass per tick; the mutex only guards the
// observability reads from the admin surface.
type Coordinator struct {
	mu        sync.Mutex
	alerts    map[string]*Alert
	cooldowns map[string]time.Time
	journal   []Alert
	now       func() time.Time
}

// NewCoordinator creates a Coordinator. nowFn may be nil to use
// time.Now.
func NewCoordinator(nowFn func() time.Time) *Coordinator {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Coordinator{
		alerts:    make(map[string]*Alert),
		cooldowns: make(map[string]time.Time),
		now:       nowFn,
	}
}

// Broadcast stores a new alert unless the reporter is still cooling
// down. Returns the stored alert and whether it was accepted.
func (c *Coordinator) Broadcast(reporterID, spottedID string, pos world.Vec3, outpostID string) (Alert, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if last, ok := c.cooldowns[reporterID]; ok && now.Sub(last) < Cooldown {
		return Alert{}, false
	}
	a := Alert{
		ID:         uuid.New().String(),
		ReporterID: reporterID,
		SpottedID:  spottedID,
		Position:   pos,
		OutpostID:  outpostID,
		Timestamp:  now,
	}
	c.alerts[a.ID] = &a
	c.cooldowns[reporterID] = now
	c.journal = append(c.journal, a)
	return a, true
}

// AlertsFor returns every non-expired alert visible to the given agent:
// its own broadcasts are excluded and each alert's delivery radius
// depends on whether reporter and listener share a non-empty outpost.
// Results follow storage iteration order, not distance.
func (c *Coordinator) AlertsFor(agentID string, pos world.Vec3, outpostID string) []Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	var visible []Alert
	for _, a := range c.alerts {
		if a.ReporterID == agentID {
			continue
		}
		if now.Sub(a.Timestamp) > Lifetime {
			continue
		}
		radius := CrossOutpostRadiusM
		if a.OutpostID != "" && a.OutpostID == outpostID {
			radius = SameOutpostRadiusM
		}
		if world.Distance(pos, a.Position) > radius {
			continue
		}
		visible = append(visible, *a)
	}
	return visible
}

// Cleanup prunes expired alerts and elapsed cooldown entries. The
// owning loop must call this once per tick; the coordinator never
// schedules itself.
func (c *Coordinator) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for id, a := range c.alerts {
		if now.Sub(a.Timestamp) > Lifetime {
			delete(c.alerts, id)
		}
	}
	for reporter, last := range c.cooldowns {
		if now.Sub(last) > Cooldown {
			delete(c.cooldowns, reporter)
		}
	}
}

// DrainJournal returns alerts accepted since the previous call and
// resets the journal. The simulator uses it to feed alert writers.
func (c *Coordinator) DrainJournal() []Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.journal
	c.journal = nil
	return out
}

// Stats reports stored, active, and cooling-down counts.
func (c *Coordinator) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	st := Stats{Total: len(c.alerts)}
	for _, a := range c.alerts {
		if now.Sub(a.Timestamp) <= Lifetime {
			st.Active++
		}
	}
	for _, last := range c.cooldowns {
		if now.Sub(last) < Cooldown {
			st.CoolingDown++
		}
	}
	return st
}
