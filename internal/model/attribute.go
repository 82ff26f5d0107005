package model

// Attribute is what an enhancement boosts.
type Attribute int8

const (
	AttrNone Attribute = iota
	AttrAccuracy
	AttrDamage
	AttrDefense
	AttrResistance
	AttrRecharge
	AttrEnduranceDiscount
	AttrEnduranceModification
	AttrRecovery
	AttrHeal
	AttrToHit
	AttrRange
	AttrInterrupt
	AttrMez
	AttrSlow
	AttrRunSpeed
	AttrJumpSpeed
	AttrFlySpeed

	attributeCount
)

var attributeNames = [...]string{
	"None", "Accuracy", "Damage", "Defense", "Resistance", "Recharge",
	"EnduranceDiscount", "EnduranceModification", "Recovery", "Heal", "ToHit",
	"Range", "Interrupt", "Mez", "Slow", "RunSpeed", "JumpSpeed", "FlySpeed",
}

func (a Attribute) String() string { return enumName("Attribute", attributeNames[:], int(a)) }

func (a Attribute) Valid() bool { return a >= AttrNone && a < attributeCount }

func ParseAttribute(s string) (Attribute, error) {
	v, err := parseEnum("attribute", attributeNames[:], s)
	return Attribute(v), err
}

func (a Attribute) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Attribute) UnmarshalText(b []byte) error {
	v, err := ParseAttribute(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// BoostedBy returns the enhancement attribute that scales effects of type t.
// Power-level properties (recharge, endurance cost, range) are boosted on the
// power itself and map to AttrNone here.
func (t EffectType) BoostedBy() Attribute {
	switch t {
	case EffectAccuracy:
		return AttrAccuracy
	case EffectDamage:
		return AttrDamage
	case EffectDefense:
		return AttrDefense
	case EffectResistance:
		return AttrResistance
	case EffectEndurance:
		return AttrEnduranceModification
	case EffectRecovery:
		return AttrRecovery
	case EffectHeal, EffectRegeneration, EffectHitPoints, EffectAbsorb:
		return AttrHeal
	case EffectToHit:
		return AttrToHit
	case EffectMez:
		return AttrMez
	case EffectSlow:
		return AttrSlow
	case EffectSpeedRunning:
		return AttrRunSpeed
	case EffectSpeedJumping, EffectJumpHeight:
		return AttrJumpSpeed
	case EffectSpeedFlying:
		return AttrFlySpeed
	}
	return AttrNone
}
