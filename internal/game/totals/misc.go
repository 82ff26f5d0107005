package totals

import (
	"github.com/udisondev/buildcalc/internal/data"
	"github.com/udisondev/buildcalc/internal/model"
)

// BasePerception is the perception radius of an unbuffed character, in feet.
const BasePerception = 500.0

// MiscValues accumulates the secondary attributes of a build.
// Recovery and regeneration are bonuses (1.00 = +100%), HitPoints and
// perception are absolute additions.
type MiscValues struct {
	caps *data.ArchetypeCaps

	Recovery          float64
	Regeneration      float64
	HitPoints         float64
	Perception        float64
	ToHit             float64
	Accuracy          float64
	EnduranceDiscount float64
	RunSpeed          float64
	JumpSpeed         float64
	FlySpeed          float64
}

func newMiscValues(caps *data.ArchetypeCaps) *MiscValues {
	return &MiscValues{caps: caps}
}

// Add routes v to the attribute matching t; it reports whether t is tracked.
func (m *MiscValues) Add(t model.EffectType, v float64) bool {
	switch t {
	case model.EffectRecovery:
		m.Recovery += v
	case model.EffectRegeneration:
		m.Regeneration += v
	case model.EffectHitPoints:
		m.HitPoints += v
	case model.EffectPerceptionRadius:
		m.Perception += v
	case model.EffectToHit:
		m.ToHit += v
	case model.EffectAccuracy:
		m.Accuracy += v
	case model.EffectEnduranceDiscount:
		m.EnduranceDiscount += v
	case model.EffectSpeedRunning:
		m.RunSpeed += v
	case model.EffectSpeedJumping:
		m.JumpSpeed += v
	case model.EffectSpeedFlying:
		m.FlySpeed += v
	default:
		return false
	}
	return true
}

// ApplyCaps clamps recovery, regeneration, max HP and perception to the
// archetype ceilings. A zero ceiling in the table means uncapped.
func (m *MiscValues) ApplyCaps() {
	if c := m.caps.RecoveryCap; c > 0 {
		m.Recovery = min(m.Recovery, c)
	}
	if c := m.caps.RegenerationCap; c > 0 {
		m.Regeneration = min(m.Regeneration, c)
	}
	if c := m.caps.HPCap; c > 0 {
		m.HitPoints = min(m.HitPoints, c-m.caps.BaseHP)
	}
	if c := m.caps.PerceptionCap; c > 0 {
		m.Perception = min(m.Perception, c-BasePerception)
	}
}

// MaxHP returns base plus bonus hit points.
func (m *MiscValues) MaxHP() float64 {
	return m.caps.BaseHP + m.HitPoints
}

// IsHPCapped reports whether max HP reaches the archetype ceiling.
func (m *MiscValues) IsHPCapped() bool {
	return m.caps.HPCap > 0 && m.MaxHP() >= m.caps.HPCap
}

// PerceptionRadius returns the total perception radius in feet.
func (m *MiscValues) PerceptionRadius() float64 {
	return BasePerception + m.Perception
}
