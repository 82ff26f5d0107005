package totals

import "github.com/udisondev/buildcalc/internal/model"

// DamageReduction returns the fraction of incoming damage taken at resistance r.
func DamageReduction(r float64) float64 {
	return 1 - r
}

// ResistanceValues accumulates typed resistance. The archetype cap is
// applied by ApplyCaps only, after every addition.
type ResistanceValues struct {
	values map[model.DamageType]float64
	cap    float64
}

func newResistanceValues(limit float64) *ResistanceValues {
	return &ResistanceValues{
		values: make(map[model.DamageType]float64, len(model.TypedDamage)),
		cap:    limit,
	}
}

// Add adds v to typed category dt; other categories are ignored.
func (r *ResistanceValues) Add(dt model.DamageType, v float64) bool {
	if !dt.IsTyped() {
		return false
	}
	r.values[dt] += v
	return true
}

func (r *ResistanceValues) Get(dt model.DamageType) float64 {
	return r.values[dt]
}

// Cap returns the archetype resistance ceiling.
func (r *ResistanceValues) Cap() float64 {
	return r.cap
}

// ApplyCaps clamps every category to the archetype ceiling. Negative
// values (debuffs) are kept.
func (r *ResistanceValues) ApplyCaps() {
	for dt, v := range r.values {
		r.values[dt] = min(v, r.cap)
	}
}

// IsAtCap reports whether dt has reached the archetype ceiling.
func (r *ResistanceValues) IsAtCap(dt model.DamageType) bool {
	return r.Get(dt) >= r.cap
}

// DamageTaken returns the fraction of dt damage that gets through.
func (r *ResistanceValues) DamageTaken(dt model.DamageType) float64 {
	return DamageReduction(r.Get(dt))
}
