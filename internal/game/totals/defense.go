package totals

import "github.com/udisondev/buildcalc/internal/model"

// DefenseSoftCap is the informational defense threshold. It is not enforced.
const DefenseSoftCap = 0.45

// EffectiveDefense is the defense that applies to an attack carrying both a
// typed and a positional component: the higher one wins, never a sum or mean.
func EffectiveDefense(typed, positional float64) float64 {
	return max(typed, positional)
}

// DefenseValues accumulates typed and positional defense. No hard cap applies.
type DefenseValues struct {
	values     map[model.DamageType]float64
	displayCap float64
}

func newDefenseValues(displayCap float64) *DefenseValues {
	return &DefenseValues{
		values:     make(map[model.DamageType]float64, len(model.TypedDamage)+len(model.PositionalDamage)),
		displayCap: displayCap,
	}
}

// Add adds v to category dt. Categories other than the eight typed and three
// positional ones are ignored; it reports whether v was recorded.
func (d *DefenseValues) Add(dt model.DamageType, v float64) bool {
	if !dt.IsTyped() && !dt.IsPositional() {
		return false
	}
	d.values[dt] += v
	return true
}

// Get returns the accumulated defense for dt.
func (d *DefenseValues) Get(dt model.DamageType) float64 {
	return d.values[dt]
}

// Effective returns the defense against an attack of typed damage and
// positional vector.
func (d *DefenseValues) Effective(typed, positional model.DamageType) float64 {
	return EffectiveDefense(d.Get(typed), d.Get(positional))
}

// IsSoftCapped reports whether dt reaches the soft cap.
func (d *DefenseValues) IsSoftCapped(dt model.DamageType) bool {
	return d.Get(dt) >= DefenseSoftCap
}

// Display returns the value shown to the user, limited by the archetype's
// display ceiling. The accumulated value is not altered.
func (d *DefenseValues) Display(dt model.DamageType) float64 {
	v := d.Get(dt)
	if d.displayCap > 0 {
		v = min(v, d.displayCap)
	}
	return v
}
