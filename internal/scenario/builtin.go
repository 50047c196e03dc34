package scenario

import (
	"fmt"
	"sort"
	"strings"

	"fremen-sim/internal/world"
)

// ByName looks up a built-in scenario. An empty name selects "raid".
func ByName(name string) (*Scenario, error) {
	if name == "" {
		name = "raid"
	}
	scenarios := BuiltIn()
	if s, ok := scenarios[name]; ok {
		return &s, nil
	}
	names := make([]string, 0, len(scenarios))
	for n := range scenarios {
		names = append(names, n)
	}
	sort.Strings(names)
	return nil, fmt.Errorf("unknown scenario %q (available: %s)", name, strings.Join(names, ", "))
}

// BuiltIn returns the predefined raid scripts shipped with the
// simulator. Positions assume outposts laid out near the origin as in
// config/simulation.yaml.
func BuiltIn() map[string]Scenario {
	return map[string]Scenario{
		"raid": {
			Name:        "Raid",
			Description: "Two armed raiders sweep past the western outpost, trade fire, and withdraw.",
			Players: []PlayerScript{
				{
					ID:       "raider-1",
					SpeedMPS: 6,
					Armed:    true,
					Waypoints: []world.Vec3{
						{X: -400, Z: 0},
						{X: -80, Z: 20},
						{X: -400, Z: 120},
					},
				},
				{
					ID:       "raider-2",
					SpeedMPS: 5,
					Armed:    true,
					Waypoints: []world.Vec3{
						{X: -400, Z: 60},
						{X: -60, Z: -30},
						{X: -400, Z: -120},
					},
				},
			},
		},
		"thumper-feint": {
			Name:        "Thumper Feint",
			Description: "A thumper draws the garrison east while an unarmed scout slips by to the west.",
			Players: []PlayerScript{
				{
					ID:       "scout-1",
					SpeedMPS: 7,
					Waypoints: []world.Vec3{
						{X: -300, Z: -200},
						{X: -120, Z: -40},
						{X: 300, Z: -200},
					},
				},
			},
			Thumpers: []ThumperDrop{
				{ID: "thumper-1", Position: world.Vec3{X: 90, Z: 40}, AtSec: 5, DurationSec: 120},
			},
		},
		"siege": {
			Name:        "Siege",
			Description: "Sustained pressure on one outpost under jamming, then a counterattack window.",
			Players: []PlayerScript{
				{
					ID:       "besieger-1",
					SpeedMPS: 4,
					Armed:    true,
					Loop:     true,
					Waypoints: []world.Vec3{
						{X: -90, Z: -60},
						{X: -90, Z: 60},
						{X: -30, Z: 60},
						{X: -30, Z: -60},
					},
				},
				{
					ID:        "besieger-2",
					SpeedMPS:  4,
					Armed:     true,
					DiesAtSec: 180,
					Waypoints: []world.Vec3{{X: -120, Z: 0}, {X: -50, Z: 0}},
				},
			},
			Jams: []JamWindow{
				{OutpostID: "outpost-west", FromSec: 0, ToSec: 150},
			},
		},
	}
}
