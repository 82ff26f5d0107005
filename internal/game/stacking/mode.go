package stacking

import (
	"fmt"

	"github.com/udisondev/buildcalc/internal/model"
)

// Mode defines how the members of one group combine.
type Mode int8

const (
	ModeAdditive       Mode = iota // sum
	ModeStack                      // sum, explicit stacking flag
	ModeMultiplicative             // ∏(1+m) − 1
	ModeBestValue                  // max
	ModeIgnore                     // max, duplicates ignored
	ModeReplace                    // last in input order
)

func (m Mode) String() string {
	switch m {
	case ModeAdditive:
		return "Additive"
	case ModeStack:
		return "Stack"
	case ModeMultiplicative:
		return "Multiplicative"
	case ModeBestValue:
		return "BestValue"
	case ModeIgnore:
		return "Ignore"
	case ModeReplace:
		return "Replace"
	}
	return fmt.Sprintf("Mode(%d)", int8(m))
}

// ResolveMode picks the combination rule for a group from its
// representative effect. The per-effect flag wins over the type table.
func ResolveMode(e model.Effect) Mode {
	switch e.Stacking {
	case model.StackingNo:
		return ModeBestValue
	case model.StackingReplace:
		return ModeReplace
	}
	return modeForType(e.Type)
}

// typeModes is the fixed effect-type → mode table. Types not listed are additive.
var typeModes = map[model.EffectType]Mode{
	model.EffectResistance:        ModeAdditive,
	model.EffectDefense:           ModeAdditive,
	model.EffectRechargeTime:      ModeAdditive,
	model.EffectAccuracy:          ModeAdditive,
	model.EffectToHit:             ModeAdditive,
	model.EffectRecovery:          ModeAdditive,
	model.EffectRegeneration:      ModeAdditive,
	model.EffectEnduranceDiscount: ModeAdditive,
	model.EffectHitPoints:         ModeAdditive,
	model.EffectSpeedRunning:      ModeAdditive,
	model.EffectSpeedFlying:       ModeAdditive,
	model.EffectSpeedJumping:      ModeAdditive,
	model.EffectMez:               ModeAdditive,
	model.EffectMezResist:         ModeAdditive,
	model.EffectDamageBuff:        ModeMultiplicative,
}

func modeForType(t model.EffectType) Mode {
	if m, ok := typeModes[t]; ok {
		return m
	}
	return ModeAdditive
}
