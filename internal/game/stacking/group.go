package stacking

import (
	"errors"
	"log/slog"

	"github.com/udisondev/buildcalc/internal/model"
)

// RuleOfFiveLimit is the number of identical set bonuses that may apply at once.
const RuleOfFiveLimit = 5

// ErrEmptyGroup is returned by Fold for a group with no members.
var ErrEmptyGroup = errors.New("empty effect group")

// GroupedEffect is the folded result of every effect sharing one identifier.
// Produced fresh by GroupEffects and not modified afterwards.
type GroupedEffect struct {
	Identifier model.FxIdentifier

	// BaseMagnitude is the plain sum of base magnitudes (diagnostic only).
	BaseMagnitude float64
	// EnhancedMagnitude is the folded value used by the aggregators.
	EnhancedMagnitude float64

	IncludedEffectIDs []string
	// IsAggregated is false for single-member groups, which skip folding.
	IsAggregated bool
	Mode         Mode
}

// ruleOfFiveKey counts one set bonus power per identifier, so a bonus power
// that grants several effects is counted once per instance.
type ruleOfFiveKey struct {
	powerID string
	id      model.FxIdentifier
}

// ApplyRuleOfFive drops the sixth and later occurrences of each set-bonus
// power. Effects not tagged as set bonuses pass unfiltered. Input order is
// preserved. The counter lives only for this call.
func ApplyRuleOfFive(effects []model.EnhancedEffect) (kept []model.EnhancedEffect, suppressed int) {
	counts := make(map[ruleOfFiveKey]int)
	kept = make([]model.EnhancedEffect, 0, len(effects))
	for _, e := range effects {
		if e.SetBonus {
			key := ruleOfFiveKey{powerID: e.PowerID, id: e.Identifier()}
			counts[key]++
			if counts[key] > RuleOfFiveLimit {
				suppressed++
				continue
			}
		}
		kept = append(kept, e)
	}
	return kept, suppressed
}

// GroupEffects runs the stacking pipeline: Rule of 5, partition by
// identifier, mode resolution and fold. Groups are returned in order of
// first appearance.
//
// A group that fails to fold is logged and dropped so one malformed group
// cannot blank the rest of a build.
func GroupEffects(effects []model.EnhancedEffect) []GroupedEffect {
	kept, suppressed := ApplyRuleOfFive(effects)
	if suppressed > 0 {
		slog.Debug("rule of five suppressed set bonuses", "count", suppressed)
	}

	order, members := partition(kept)

	out := make([]GroupedEffect, 0, len(order))
	for _, id := range order {
		group := members[id]
		g, err := foldGroup(id, group)
		if err != nil {
			slog.Warn("skipping effect group", "group", id.String(), "err", err)
			continue
		}
		out = append(out, g)
	}
	return out
}

func partition(effects []model.EnhancedEffect) ([]model.FxIdentifier, map[model.FxIdentifier][]model.EnhancedEffect) {
	order := make([]model.FxIdentifier, 0)
	members := make(map[model.FxIdentifier][]model.EnhancedEffect)
	for _, e := range effects {
		id := e.Identifier()
		if _, seen := members[id]; !seen {
			order = append(order, id)
		}
		members[id] = append(members[id], e)
	}
	return order, members
}

func foldGroup(id model.FxIdentifier, group []model.EnhancedEffect) (GroupedEffect, error) {
	if len(group) == 0 {
		return GroupedEffect{}, ErrEmptyGroup
	}

	mode := ResolveMode(group[0].Effect)
	ids := make([]string, len(group))
	for i, e := range group {
		ids[i] = e.UniqueID
	}

	if len(group) == 1 {
		return GroupedEffect{
			Identifier:        id,
			BaseMagnitude:     group[0].Magnitude,
			EnhancedMagnitude: group[0].BuffedMagnitude(),
			IncludedEffectIDs: ids,
			IsAggregated:      false,
			Mode:              mode,
		}, nil
	}

	base, enhanced, err := Fold(mode, group)
	if err != nil {
		return GroupedEffect{}, err
	}
	return GroupedEffect{
		Identifier:        id,
		BaseMagnitude:     base,
		EnhancedMagnitude: enhanced,
		IncludedEffectIDs: ids,
		IsAggregated:      true,
		Mode:              mode,
	}, nil
}

// Fold combines group members under mode. base is always the plain sum of
// base magnitudes; enhanced follows the mode. Multiplicative folds run in
// input order.
func Fold(mode Mode, group []model.EnhancedEffect) (base, enhanced float64, err error) {
	if len(group) == 0 {
		return 0, 0, ErrEmptyGroup
	}
	for _, e := range group {
		base += e.Magnitude
	}

	switch mode {
	case ModeMultiplicative:
		product := 1.0
		for _, e := range group {
			product *= 1 + e.BuffedMagnitude()
		}
		enhanced = product - 1
	case ModeBestValue, ModeIgnore:
		enhanced = group[0].BuffedMagnitude()
		for _, e := range group[1:] {
			enhanced = max(enhanced, e.BuffedMagnitude())
		}
	case ModeReplace:
		enhanced = group[len(group)-1].BuffedMagnitude()
	default:
		for _, e := range group {
			enhanced += e.BuffedMagnitude()
		}
	}
	return base, enhanced, nil
}
