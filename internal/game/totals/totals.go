// Package totals aggregates grouped effects into the statistics of one build.
package totals

import (
	"log/slog"

	"github.com/udisondev/buildcalc/internal/data"
	"github.com/udisondev/buildcalc/internal/game/stacking"
	"github.com/udisondev/buildcalc/internal/model"
)

// BuildTotals owns one aggregator per domain for a single build.
//
// It is filled by Add* calls during one calculation pass and finalized by
// ApplyAllCaps. Not safe for concurrent use; every pass constructs its own.
type BuildTotals struct {
	Archetype *data.ArchetypeCaps

	Defense    *DefenseValues
	Resistance *ResistanceValues
	Recharge   *RechargeValues
	Damage     *DamageValues
	Misc       *MiscValues

	finalized bool
}

// New creates empty totals for the archetype.
func New(caps *data.ArchetypeCaps) *BuildTotals {
	return &BuildTotals{
		Archetype:  caps,
		Defense:    newDefenseValues(caps.DefenseDisplayCap),
		Resistance: newResistanceValues(caps.ResistanceCap),
		Recharge:   newRechargeValues(caps.RechargeCap),
		Damage:     newDamageValues(caps.DamageCap),
		Misc:       newMiscValues(caps),
	}
}

// AddGrouped routes one grouped effect to its domain aggregator.
// It reports whether the group contributed to any tracked statistic.
func (b *BuildTotals) AddGrouped(g stacking.GroupedEffect) bool {
	if b.finalized {
		slog.Warn("ignoring effect added after caps were applied", "group", g.Identifier.String())
		return false
	}

	v := g.EnhancedMagnitude
	id := g.Identifier
	switch id.Type {
	case model.EffectDefense:
		return b.Defense.Add(id.DamageType, v)
	case model.EffectResistance:
		return b.Resistance.Add(id.DamageType, v)
	case model.EffectRechargeTime:
		b.Recharge.Add(v)
		return true
	case model.EffectDamageBuff:
		b.Damage.AddSource(DamageSource{Name: id.String(), DamageType: id.DamageType, Value: v})
		return true
	}
	return b.Misc.Add(id.Type, v)
}

// AddAll routes every group and returns how many contributed.
func (b *BuildTotals) AddAll(groups []stacking.GroupedEffect) int {
	n := 0
	for _, g := range groups {
		if b.AddGrouped(g) {
			n++
		}
	}
	return n
}

// AddDamageSource records a named damage buff source directly, keeping its
// temporary flag and uptime.
func (b *BuildTotals) AddDamageSource(s DamageSource) {
	if b.finalized {
		slog.Warn("ignoring damage source added after caps were applied", "source", s.Name)
		return
	}
	b.Damage.AddSource(s)
}

// ApplyAllCaps clamps every capped domain once. Further additions are ignored.
// Damage is capped per heuristic when read.
func (b *BuildTotals) ApplyAllCaps() {
	if b.finalized {
		return
	}
	b.Resistance.ApplyCaps()
	b.Recharge.ApplyCaps()
	b.Misc.ApplyCaps()
	b.finalized = true
}

// Finalized reports whether ApplyAllCaps has run.
func (b *BuildTotals) Finalized() bool {
	return b.finalized
}
