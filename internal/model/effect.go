package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// ErrInvalidEffect is returned by NewEffect when an effect violates its domain.
var ErrInvalidEffect = errors.New("invalid effect")

// Effect is one contribution from a power, enhancement or set bonus.
//
// Aspect fields are guarded by Type: DamageType is meaningful only when
// Type.HasDamageAspect(), MezType only when Type.HasMezAspect(), ModifiesType
// only when Type.IsMeta(). NewEffect rejects aspects set on other types.
//
// Effect is the raw stage. The enhanced magnitude lives only on
// EnhancedEffect, so code that needs it cannot be handed an unresolved effect.
type Effect struct {
	UniqueID     string     `yaml:"id,omitempty"`
	Type         EffectType `yaml:"type"`
	DamageType   DamageType `yaml:"damage_type,omitempty"`
	MezType      MezType    `yaml:"mez_type,omitempty"`
	ModifiesType EffectType `yaml:"modifies,omitempty"`

	Magnitude       float64 `yaml:"magnitude"`
	Scale           float64 `yaml:"scale"`
	Probability     float64 `yaml:"probability"`
	BaseProbability float64 `yaml:"base_probability"`
	ModifierTable   string  `yaml:"table,omitempty"`

	ToWho    ToWho   `yaml:"to_who,omitempty"`
	PvMode   PvMode  `yaml:"pv_mode,omitempty"`
	Duration float64 `yaml:"duration,omitempty"`
	SummonID string  `yaml:"summon_id,omitempty"`

	// PowerID identifies the granting power; for set bonuses it is the
	// bonus power whose repeats are limited by the Rule of 5.
	PowerID  string `yaml:"power_id,omitempty"`
	SetBonus bool   `yaml:"set_bonus,omitempty"`
	Source   string `yaml:"source,omitempty"`

	Stacking      Stacking    `yaml:"stacking,omitempty"`
	IgnoreScaling bool        `yaml:"ignore_scaling,omitempty"`
	IgnoreED      bool        `yaml:"ignore_ed,omitempty"`
	Buffable      bool        `yaml:"buffable"`
	Resistible    bool        `yaml:"resistible"`
	Suppression   Suppression `yaml:"suppression,omitempty"`
}

// DefaultEffect returns an effect of type t with the neutral policy a data
// file omits: full probability, unit scale, buffable and resistible.
func DefaultEffect(t EffectType) Effect {
	return Effect{
		Type:            t,
		Scale:           1,
		Probability:     1,
		BaseProbability: 1,
		Buffable:        true,
		Resistible:      true,
	}
}

// NewEffect validates e and assigns a UniqueID when it has none.
func NewEffect(e Effect) (Effect, error) {
	if err := e.Validate(); err != nil {
		return Effect{}, err
	}
	if e.UniqueID == "" {
		e.UniqueID = uuid.NewString()
	}
	return e, nil
}

// Validate checks domain invariants without modifying e.
func (e Effect) Validate() error {
	switch {
	case !e.Type.Valid():
		return fmt.Errorf("%w: effect type %d", ErrInvalidEffect, e.Type)
	case !e.DamageType.Valid():
		return fmt.Errorf("%w: damage type %d", ErrInvalidEffect, e.DamageType)
	case !e.MezType.Valid():
		return fmt.Errorf("%w: mez type %d", ErrInvalidEffect, e.MezType)
	case !e.ModifiesType.Valid():
		return fmt.Errorf("%w: modifies type %d", ErrInvalidEffect, e.ModifiesType)
	case !e.ToWho.Valid(), !e.PvMode.Valid(), !e.Stacking.Valid(), !e.Suppression.Valid():
		return fmt.Errorf("%w: context flags out of range", ErrInvalidEffect)
	case !inUnit(e.Probability):
		return fmt.Errorf("%w: probability %v outside [0,1]", ErrInvalidEffect, e.Probability)
	case !inUnit(e.BaseProbability):
		return fmt.Errorf("%w: base probability %v outside [0,1]", ErrInvalidEffect, e.BaseProbability)
	case math.IsNaN(e.Duration) || e.Duration < 0:
		return fmt.Errorf("%w: negative duration %v", ErrInvalidEffect, e.Duration)
	case math.IsNaN(e.Scale) || e.Scale <= 0:
		return fmt.Errorf("%w: scale %v must be positive", ErrInvalidEffect, e.Scale)
	case math.IsNaN(e.Magnitude) || math.IsInf(e.Magnitude, 0):
		return fmt.Errorf("%w: magnitude %v", ErrInvalidEffect, e.Magnitude)
	case e.DamageType != DamageNone && !e.Type.HasDamageAspect():
		return fmt.Errorf("%w: %s carries no damage aspect (got %s)", ErrInvalidEffect, e.Type, e.DamageType)
	case e.MezType != MezNone && !e.Type.HasMezAspect():
		return fmt.Errorf("%w: %s carries no mez aspect (got %s)", ErrInvalidEffect, e.Type, e.MezType)
	case e.ModifiesType != EffectNone && !e.Type.IsMeta():
		return fmt.Errorf("%w: %s cannot modify %s", ErrInvalidEffect, e.Type, e.ModifiesType)
	}
	return nil
}

func inUnit(v float64) bool { return v >= 0 && v <= 1 }

// Identifier returns the grouping key of e.
func (e Effect) Identifier() FxIdentifier {
	return FxIdentifier{
		Type:          e.Type,
		DamageType:    e.DamageType,
		MezType:       e.MezType,
		ModifiesType:  e.ModifiesType,
		ToWho:         e.ToWho,
		PvMode:        e.PvMode,
		SummonID:      e.SummonID,
		Duration:      e.Duration,
		IgnoreScaling: e.IgnoreScaling,
	}
}

// FxIdentifier is the grouping key: effects combine iff their identifiers
// are equal. It is comparable and usable as a map key.
type FxIdentifier struct {
	Type          EffectType
	DamageType    DamageType
	MezType       MezType
	ModifiesType  EffectType
	ToWho         ToWho
	PvMode        PvMode
	SummonID      string
	Duration      float64
	IgnoreScaling bool
}

func (id FxIdentifier) String() string {
	s := id.Type.String()
	switch {
	case id.DamageType != DamageNone:
		s += "(" + id.DamageType.String() + ")"
	case id.MezType != MezNone:
		s += "(" + id.MezType.String() + ")"
	case id.ModifiesType != EffectNone:
		s += "(" + id.ModifiesType.String() + ")"
	}
	return s
}

// EnhancedEffect is an Effect whose enhanced magnitude has been resolved.
type EnhancedEffect struct {
	Effect
	buffed float64
}

// Enhance records the enhanced magnitude of e. It is the single write of the
// buffed value; the result is not modified afterwards.
func Enhance(e Effect, buffed float64) EnhancedEffect {
	return EnhancedEffect{Effect: e, buffed: buffed}
}

// Unenhanced resolves e with no enhancement: the buffed magnitude equals the base.
func Unenhanced(e Effect) EnhancedEffect {
	return EnhancedEffect{Effect: e, buffed: e.Magnitude}
}

// BuffedMagnitude returns the enhanced magnitude.
func (e EnhancedEffect) BuffedMagnitude() float64 { return e.buffed }
