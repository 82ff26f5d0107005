package model

import "strings"

// DamageType is the damage aspect of defense, resistance and damage effects.
// Melee, Ranged and AoE are positional categories used only by defense.
type DamageType int8

const (
	DamageNone DamageType = iota
	DamageSmashing
	DamageLethal
	DamageFire
	DamageCold
	DamageEnergy
	DamageNegative
	DamageToxic
	DamagePsionic
	DamageSpecial
	DamageMelee
	DamageRanged
	DamageAoE

	damageTypeCount
)

var damageTypeNames = [...]string{
	"None", "Smashing", "Lethal", "Fire", "Cold", "Energy", "Negative",
	"Toxic", "Psionic", "Special", "Melee", "Ranged", "AoE",
}

// TypedDamage lists the eight typed damage categories in display order.
var TypedDamage = [...]DamageType{
	DamageSmashing, DamageLethal, DamageFire, DamageCold,
	DamageEnergy, DamageNegative, DamageToxic, DamagePsionic,
}

// PositionalDamage lists the positional defense categories.
var PositionalDamage = [...]DamageType{DamageMelee, DamageRanged, DamageAoE}

func (d DamageType) String() string { return enumName("DamageType", damageTypeNames[:], int(d)) }

func (d DamageType) Valid() bool { return d >= DamageNone && d < damageTypeCount }

// IsTyped reports whether d is one of the eight typed damage categories.
func (d DamageType) IsTyped() bool { return d >= DamageSmashing && d <= DamagePsionic }

// IsPositional reports whether d is melee, ranged or AoE.
func (d DamageType) IsPositional() bool { return d >= DamageMelee && d <= DamageAoE }

func ParseDamageType(s string) (DamageType, error) {
	v, err := parseEnum("damage type", damageTypeNames[:], s)
	return DamageType(v), err
}

func (d DamageType) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *DamageType) UnmarshalText(b []byte) error {
	v, err := ParseDamageType(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// MezType is the control aspect of mez and mez-resist effects.
type MezType int8

const (
	MezNone MezType = iota
	MezConfused
	MezHeld
	MezImmobilized
	MezKnockback
	MezKnockup
	MezOnlyAffectsSelf
	MezPlacate
	MezRepel
	MezSleep
	MezStunned
	MezTaunt
	MezTerrorized
	MezUntouchable
	MezTeleport
	MezToggleDrop
	MezAfraid
	MezAvoid
	MezCombatPhase
	MezIntangible

	mezTypeCount
)

var mezTypeNames = [...]string{
	"None", "Confused", "Held", "Immobilized", "Knockback", "Knockup",
	"OnlyAffectsSelf", "Placate", "Repel", "Sleep", "Stunned", "Taunt",
	"Terrorized", "Untouchable", "Teleport", "ToggleDrop", "Afraid", "Avoid",
	"CombatPhase", "Intangible",
}

func (m MezType) String() string { return enumName("MezType", mezTypeNames[:], int(m)) }

func (m MezType) Valid() bool { return m >= MezNone && m < mezTypeCount }

func ParseMezType(s string) (MezType, error) {
	v, err := parseEnum("mez type", mezTypeNames[:], s)
	return MezType(v), err
}

func (m MezType) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *MezType) UnmarshalText(b []byte) error {
	v, err := ParseMezType(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ToWho is the recipient of an effect.
type ToWho int8

const (
	ToUnspecified ToWho = iota
	ToTarget
	ToSelf
	ToTeam
	ToArea

	toWhoCount
)

var toWhoNames = [...]string{"Unspecified", "Target", "Self", "Team", "Area"}

func (w ToWho) String() string { return enumName("ToWho", toWhoNames[:], int(w)) }

func (w ToWho) Valid() bool { return w >= ToUnspecified && w < toWhoCount }

// AffectsSelf reports whether the effect lands on the caster's own totals.
func (w ToWho) AffectsSelf() bool {
	return w == ToSelf || w == ToTeam || w == ToUnspecified
}

func ParseToWho(s string) (ToWho, error) {
	v, err := parseEnum("to-who", toWhoNames[:], s)
	return ToWho(v), err
}

func (w ToWho) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

func (w *ToWho) UnmarshalText(b []byte) error {
	v, err := ParseToWho(string(b))
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// PvMode restricts an effect to player-vs-environment or player-vs-player play.
type PvMode int8

const (
	PvAny PvMode = iota
	PvE
	PvP

	pvModeCount
)

var pvModeNames = [...]string{"Any", "PvE", "PvP"}

func (p PvMode) String() string { return enumName("PvMode", pvModeNames[:], int(p)) }

func (p PvMode) Valid() bool { return p >= PvAny && p < pvModeCount }

// Applies reports whether an effect tagged p is active under mode.
func (p PvMode) Applies(mode PvMode) bool {
	return p == PvAny || mode == PvAny || p == mode
}

func ParsePvMode(s string) (PvMode, error) {
	v, err := parseEnum("pv mode", pvModeNames[:], s)
	return PvMode(v), err
}

func (p PvMode) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *PvMode) UnmarshalText(b []byte) error {
	v, err := ParsePvMode(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Stacking is the per-effect stacking policy flag.
type Stacking int8

const (
	StackingYes Stacking = iota
	StackingStack
	StackingReplace
	StackingNo

	stackingCount
)

var stackingNames = [...]string{"Yes", "Stack", "Replace", "No"}

func (s Stacking) String() string { return enumName("Stacking", stackingNames[:], int(s)) }

func (s Stacking) Valid() bool { return s >= StackingYes && s < stackingCount }

func ParseStacking(s string) (Stacking, error) {
	v, err := parseEnum("stacking", stackingNames[:], s)
	return Stacking(v), err
}

func (s Stacking) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Stacking) UnmarshalText(b []byte) error {
	v, err := ParseStacking(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Suppression is a set of conditions under which an effect is switched off.
type Suppression uint16

const (
	SuppressAttacked Suppression = 1 << iota
	SuppressDamaged
	SuppressHitByFoe
	SuppressMezzed
	SuppressKnocked
	SuppressActivateAttackClick
	SuppressMissionObjectClick
	SuppressCombat
	SuppressBooster
	SuppressDamagedByFoe

	suppressionAll = SuppressDamagedByFoe<<1 - 1
)

var suppressionNames = [...]string{
	"Attacked", "Damaged", "HitByFoe", "Mezzed", "Knocked",
	"ActivateAttackClick", "MissionObjectClick", "Combat", "Booster",
	"DamagedByFoe",
}

// Has reports whether all bits of flag are set.
func (s Suppression) Has(flag Suppression) bool { return s&flag == flag }

func (s Suppression) Valid() bool { return s&^suppressionAll == 0 }

func (s Suppression) String() string {
	if s == 0 {
		return "None"
	}
	var parts []string
	for i, n := range suppressionNames {
		if s.Has(1 << i) {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, "|")
}

// ParseSuppression parses a "|"-separated flag list; "" and "None" yield 0.
func ParseSuppression(s string) (Suppression, error) {
	var out Suppression
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		if part == "" || strings.EqualFold(part, "None") {
			continue
		}
		i, err := parseEnum("suppression", suppressionNames[:], part)
		if err != nil {
			return 0, err
		}
		out |= 1 << i
	}
	return out, nil
}

func (s Suppression) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Suppression) UnmarshalText(b []byte) error {
	v, err := ParseSuppression(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
