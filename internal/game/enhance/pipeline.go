package enhance

import (
	"fmt"

	"github.com/udisondev/buildcalc/internal/data"
	"github.com/udisondev/buildcalc/internal/model"
)

type bonusKey struct {
	attr model.Attribute
	mez  model.MezType
}

// Bonuses holds the summed enhancement values slotted in one power.
type Bonuses struct {
	raw map[bonusKey]float64
}

// Sum adds up every boost of the slotted enhancements.
func Sum(slotted []string, catalog *data.EnhancementCatalog) (Bonuses, error) {
	b := Bonuses{raw: make(map[bonusKey]float64)}
	for _, id := range slotted {
		enh, err := catalog.Get(id)
		if err != nil {
			return Bonuses{}, err
		}
		for _, boost := range enh.Boosts {
			b.raw[bonusKey{boost.Attribute, boost.MezType}] += boost.Value
		}
	}
	return b, nil
}

// Raw returns the undiminished sum for attr. For mez, a generic boost
// (MezNone) also applies to every specific mez type.
func (b Bonuses) Raw(attr model.Attribute, mez model.MezType) float64 {
	v := b.raw[bonusKey{attr, mez}]
	if attr == model.AttrMez && mez != model.MezNone {
		v += b.raw[bonusKey{attr, model.MezNone}]
	}
	return v
}

// Diminished returns the ED-adjusted sum for attr.
func (b Bonuses) Diminished(attr model.Attribute, mez model.MezType) (float64, error) {
	return ApplyED(GetSchedule(attr, mez), b.Raw(attr, mez))
}

// Resolve turns a power's raw effects into enhanced effects.
//
// Buffable effects whose type is boosted by a slotted attribute get
// BuffedMagnitude = Magnitude × (1 + bonus); the bonus is diminished unless
// the effect ignores ED. Everything else resolves to its base magnitude.
func Resolve(effects []model.Effect, bonuses Bonuses) ([]model.EnhancedEffect, error) {
	out := make([]model.EnhancedEffect, 0, len(effects))
	for _, e := range effects {
		attr := e.Type.BoostedBy()
		if !e.Buffable || attr == model.AttrNone {
			out = append(out, model.Unenhanced(e))
			continue
		}

		bonus := bonuses.Raw(attr, e.MezType)
		if !e.IgnoreED {
			var err error
			bonus, err = bonuses.Diminished(attr, e.MezType)
			if err != nil {
				return nil, fmt.Errorf("enhancing %s effect %s: %w", e.Type, e.UniqueID, err)
			}
		}
		out = append(out, model.Enhance(e, e.Magnitude*(1+bonus)))
	}
	return out, nil
}
