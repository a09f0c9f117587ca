package billing

import (
	"fmt"
	"strings"
)

// Preset is the default price and wage for a route.
type Preset struct {
	Price float64 `json:"price"`
	Wage  float64 `json:"wage"`
}

// PresetMap is keyed by clean route name.
type PresetMap map[string]Preset

// StoredPreset is a preset row as stored. Older rows may carry their name
// in Name or Route instead of RouteName.
type StoredPreset struct {
	RouteName string  `json:"route_name"`
	Name      string  `json:"name,omitempty"`
	Route     string  `json:"route,omitempty"`
	Price     float64 `json:"price"`
	Wage      float64 `json:"wage"`
}

// StoredName picks the first non-empty of route_name, name and route.
func (p StoredPreset) StoredName() string {
	for _, s := range []string{p.RouteName, p.Name, p.Route} {
		if s != "" {
			return s
		}
	}
	return "Unknown"
}

// PresetKey scopes a route to a cycle: "{route}_{month+1}_{year}".
func PresetKey(route string, c Cycle) string {
	return strings.TrimSpace(route) + presetSuffix(c)
}

func presetSuffix(c Cycle) string {
	return fmt.Sprintf("_%d_%d", c.Month+1, c.Year)
}

// PresetSuffixes lists the lookup suffixes from most to least specific:
// full year, two-digit year, then bare.
func PresetSuffixes(c Cycle) []string {
	return []string{
		presetSuffix(c),
		fmt.Sprintf("_%d_%02d", c.Month+1, c.Year%100),
		"",
	}
}

// MatchesSuffix reports whether a stored name ends with suffix literally.
// Suffixes are digits and underscores, so case never matters.
func MatchesSuffix(name, suffix string) bool {
	return strings.HasSuffix(name, suffix)
}

// CleanPresetName strips the suffix from the end of a stored name.
func CleanPresetName(name, suffix string) string {
	if suffix != "" {
		name = strings.TrimSuffix(name, suffix)
	}
	return strings.TrimSpace(name)
}

// ResolveGroup turns the rows fetched for one suffix into a preset map.
// Rows not ending in the suffix are ignored. When two rows share a clean
// name the first one wins.
func ResolveGroup(rows []StoredPreset, suffix string) PresetMap {
	out := PresetMap{}
	for _, r := range rows {
		name := r.StoredName()
		if !MatchesSuffix(name, suffix) {
			continue
		}
		clean := CleanPresetName(name, suffix)
		if _, ok := out[clean]; ok {
			continue
		}
		out[clean] = Preset{Price: r.Price, Wage: r.Wage}
	}
	return out
}

// ResolvePresets walks the suffix groups in order; the first group that
// yields any preset wins and later groups are not consulted.
func ResolvePresets(groups [][]StoredPreset, suffixes []string) PresetMap {
	for i, suffix := range suffixes {
		if i >= len(groups) {
			break
		}
		if m := ResolveGroup(groups[i], suffix); len(m) > 0 {
			return m
		}
	}
	return PresetMap{}
}

// Lookup finds the preset for a route name.
func (m PresetMap) Lookup(route string) (Preset, bool) {
	p, ok := m[strings.TrimSpace(route)]
	return p, ok
}
