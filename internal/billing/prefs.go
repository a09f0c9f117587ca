package billing

import "strings"

// LastUsed is the price and wage last entered by hand for a route.
type LastUsed struct {
	Price float64 `json:"price"`
	Wage  float64 `json:"wage"`
}

// UserPreferences is the per-profile memory of a data-entry form. It is
// loaded when a form session starts and saved after each successful entry.
type UserPreferences struct {
	LastDriverName string              `json:"lastDriverName"`
	LastByRoute    map[string]LastUsed `json:"lastByRoute"`
}

// Remember records the values entered for a route. Entries with neither a
// price nor a wage are not worth remembering.
func (p *UserPreferences) Remember(route string, price, wage float64) bool {
	route = strings.TrimSpace(route)
	if route == "" || (price == 0 && wage == 0) {
		return false
	}
	if p.LastByRoute == nil {
		p.LastByRoute = map[string]LastUsed{}
	}
	p.LastByRoute[route] = LastUsed{Price: price, Wage: wage}
	return true
}

// SetDriver remembers the last driver name typed into the form.
func (p *UserPreferences) SetDriver(name string) {
	if n := NormalizeName(name); n != "" {
		p.LastDriverName = n
	}
}

// Default sources, in fallback order.
const (
	SourcePreset   = "preset"
	SourceLastUsed = "last-used"
	SourceBlank    = "blank"
)

// FormDefaults prefills a trip form. Nil price or wage means the field is
// left blank for manual entry.
type FormDefaults struct {
	Route      string   `json:"route"`
	DriverName string   `json:"driverName"`
	Price      *float64 `json:"price"`
	Wage       *float64 `json:"wage"`
	Source     string   `json:"source"`
}

// ResolveFormDefaults applies preset, then last-used, then blank. A zero
// value counts as absent at each level.
func ResolveFormDefaults(route string, presets PresetMap, prefs UserPreferences) FormDefaults {
	route = strings.TrimSpace(route)
	out := FormDefaults{Route: route, DriverName: prefs.LastDriverName, Source: SourceBlank}
	if route == "" {
		return out
	}
	if p, ok := presets.Lookup(route); ok {
		out.Price, out.Wage, out.Source = nonZero(p.Price), nonZero(p.Wage), SourcePreset
		return out
	}
	if last, ok := prefs.LastByRoute[route]; ok {
		out.Price, out.Wage, out.Source = nonZero(last.Price), nonZero(last.Wage), SourceLastUsed
	}
	return out
}

func nonZero(f float64) *float64 {
	if f == 0 {
		return nil
	}
	return &f
}
