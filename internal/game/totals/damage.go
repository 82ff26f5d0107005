package totals

import (
	"fmt"
	"strings"

	"github.com/udisondev/buildcalc/internal/model"
)

// Heuristic selects which temporary damage buffs count as active.
type Heuristic int8

const (
	HeuristicMax Heuristic = iota // every source at full value
	HeuristicAvg                  // temporary sources scaled by uptime
	HeuristicMin                  // temporary sources excluded
)

// Heuristics lists every heuristic in report order.
var Heuristics = [...]Heuristic{HeuristicMax, HeuristicAvg, HeuristicMin}

func (h Heuristic) String() string {
	switch h {
	case HeuristicMax:
		return "Max"
	case HeuristicAvg:
		return "Avg"
	case HeuristicMin:
		return "Min"
	}
	return fmt.Sprintf("Heuristic(%d)", int8(h))
}

// ParseHeuristic resolves a case-insensitive heuristic name.
func ParseHeuristic(s string) (Heuristic, error) {
	for _, h := range Heuristics {
		if strings.EqualFold(h.String(), strings.TrimSpace(s)) {
			return h, nil
		}
	}
	return 0, fmt.Errorf("unknown damage heuristic %q", s)
}

func (h Heuristic) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

func (h *Heuristic) UnmarshalText(b []byte) error {
	v, err := ParseHeuristic(string(b))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// FinalDamage applies a damage buff to base damage.
func FinalDamage(base, buff float64) float64 {
	return base * (1 + buff)
}

// DamageSource is one named contributor to the damage buff.
// DamageType DamageNone applies to every damage type.
type DamageSource struct {
	Name       string
	DamageType model.DamageType
	Value      float64
	Temporary  bool
	// Uptime is the average fraction of time a temporary source is active.
	Uptime float64
}

// weight returns the fraction of the source that counts under h.
func (s DamageSource) weight(h Heuristic) float64 {
	if !s.Temporary {
		return 1
	}
	switch h {
	case HeuristicAvg:
		return min(max(s.Uptime, 0), 1)
	case HeuristicMin:
		return 0
	}
	return 1
}

// DamageValues is the running damage buff of a build.
// The archetype cap is applied per heuristic when read through CappedBuff.
type DamageValues struct {
	sources []DamageSource
	cap     float64
}

func newDamageValues(limit float64) *DamageValues {
	return &DamageValues{cap: limit}
}

// AddSource records a source. Sources are kept in insertion order.
func (d *DamageValues) AddSource(s DamageSource) {
	d.sources = append(d.sources, s)
}

func (d *DamageValues) Cap() float64 {
	return d.cap
}

// BuffFor returns the uncapped buff to damage of type dt under h.
func (d *DamageValues) BuffFor(h Heuristic, dt model.DamageType) float64 {
	var total float64
	for _, s := range d.sources {
		if s.DamageType != model.DamageNone && s.DamageType != dt {
			continue
		}
		total += s.Value * s.weight(h)
	}
	return total
}

// Buff returns the uncapped buff under h: the highest buff over the typed
// damage categories.
func (d *DamageValues) Buff(h Heuristic) float64 {
	best := d.BuffFor(h, model.TypedDamage[0])
	for _, dt := range model.TypedDamage[1:] {
		best = max(best, d.BuffFor(h, dt))
	}
	return best
}

// CappedBuff returns Buff(h) limited by the archetype damage cap.
func (d *DamageValues) CappedBuff(h Heuristic) float64 {
	return min(d.Buff(h), d.cap)
}

// IsAtCap reports whether the buff under h reaches the cap.
func (d *DamageValues) IsAtCap(h Heuristic) bool {
	return d.Buff(h) >= d.cap
}

// FinalDamage returns base damage with the capped buff under h applied.
func (d *DamageValues) FinalDamage(base float64, h Heuristic) float64 {
	return FinalDamage(base, d.CappedBuff(h))
}
