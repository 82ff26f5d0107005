package model

// EffectType is the attribute an effect modifies.
// The set is closed; values outside it are rejected by NewEffect.
type EffectType int16

const (
	EffectNone EffectType = iota
	EffectAccuracy
	EffectViewAttrib
	EffectDamage
	EffectDamageBuff
	EffectDefense
	EffectDropToggles
	EffectEndurance
	EffectEnduranceDiscount
	EffectEnhancement
	EffectFly
	EffectSpeedFlying
	EffectGrantPower
	EffectHeal
	EffectHitPoints
	EffectInterruptTime
	EffectJumpHeight
	EffectSpeedJumping
	EffectMeter
	EffectMez
	EffectMezResist
	EffectMovementControl
	EffectMovementFriction
	EffectPerceptionRadius
	EffectRange
	EffectRechargeTime
	EffectRecovery
	EffectRegeneration
	EffectResEffect
	EffectResistance
	EffectRevokePower
	EffectReward
	EffectSpeedRunning
	EffectSetCostume
	EffectSetMode
	EffectSlow
	EffectStealthRadius
	EffectStealthRadiusPlayer
	EffectEntCreate
	EffectThreatLevel
	EffectToHit
	EffectTranslucency
	EffectXPDebtProtection
	EffectSilentKill
	EffectElusivity
	EffectGlobalChanceMod
	EffectCombatModShift
	EffectUnsetMode
	EffectRage
	EffectMaxRunSpeed
	EffectMaxJumpSpeed
	EffectMaxFlySpeed
	EffectDesignerStatus
	EffectPowerRedirect
	EffectTokenAdd
	EffectExperienceGain
	EffectInfluenceGain
	EffectPrestigeGain
	EffectAddBehavior
	EffectRechargePower
	EffectRewardSourceTeam
	EffectVisionPhase
	EffectCombatPhase
	EffectClearFog
	EffectSetSZEValue
	EffectExclusiveVisionPhase
	EffectAbsorb
	EffectXAfraid
	EffectXAvoid
	EffectBeastRun
	EffectClearDamagers
	EffectEntCreateX
	EffectGlide
	EffectHoverboard
	EffectJumppack
	EffectMagicCarpet
	EffectNinjaRun
	EffectNull
	EffectNullBool
	EffectStealth
	EffectSteamJump
	EffectWalk
	EffectXPDebt
	EffectForceMove
	EffectModifyAttrib
	EffectExecutePower

	effectTypeCount
)

var effectTypeNames = [...]string{
	"None", "Accuracy", "ViewAttrib", "Damage", "DamageBuff", "Defense",
	"DropToggles", "Endurance", "EnduranceDiscount", "Enhancement", "Fly",
	"SpeedFlying", "GrantPower", "Heal", "HitPoints", "InterruptTime",
	"JumpHeight", "SpeedJumping", "Meter", "Mez", "MezResist",
	"MovementControl", "MovementFriction", "PerceptionRadius", "Range",
	"RechargeTime", "Recovery", "Regeneration", "ResEffect", "Resistance",
	"RevokePower", "Reward", "SpeedRunning", "SetCostume", "SetMode", "Slow",
	"StealthRadius", "StealthRadiusPlayer", "EntCreate", "ThreatLevel", "ToHit",
	"Translucency", "XPDebtProtection", "SilentKill", "Elusivity",
	"GlobalChanceMod", "CombatModShift", "UnsetMode", "Rage", "MaxRunSpeed",
	"MaxJumpSpeed", "MaxFlySpeed", "DesignerStatus", "PowerRedirect",
	"TokenAdd", "ExperienceGain", "InfluenceGain", "PrestigeGain",
	"AddBehavior", "RechargePower", "RewardSourceTeam", "VisionPhase",
	"CombatPhase", "ClearFog", "SetSZEValue", "ExclusiveVisionPhase", "Absorb",
	"XAfraid", "XAvoid", "BeastRun", "ClearDamagers", "EntCreate_x", "Glide",
	"Hoverboard", "Jumppack", "MagicCarpet", "NinjaRun", "Null", "NullBool",
	"Stealth", "SteamJump", "Walk", "XPDebt", "ForceMove", "ModifyAttrib",
	"ExecutePower",
}

func (t EffectType) String() string {
	return enumName("EffectType", effectTypeNames[:], int(t))
}

// Valid reports whether t belongs to the closed set.
func (t EffectType) Valid() bool {
	return t >= EffectNone && t < effectTypeCount
}

// HasDamageAspect reports whether effects of this type are split by damage type.
func (t EffectType) HasDamageAspect() bool {
	switch t {
	case EffectDefense, EffectResistance, EffectDamage, EffectDamageBuff, EffectElusivity:
		return true
	}
	return false
}

// HasMezAspect reports whether effects of this type are split by mez type.
func (t EffectType) HasMezAspect() bool {
	return t == EffectMez || t == EffectMezResist
}

// IsMeta reports whether the effect modifies another effect type
// (Enhancement, ResEffect), in which case ModifiesType is meaningful.
func (t EffectType) IsMeta() bool {
	return t == EffectEnhancement || t == EffectResEffect
}

// ParseEffectType resolves a case-insensitive effect type name.
func ParseEffectType(s string) (EffectType, error) {
	v, err := parseEnum("effect type", effectTypeNames[:], s)
	return EffectType(v), err
}

func (t EffectType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *EffectType) UnmarshalText(b []byte) error {
	v, err := ParseEffectType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
