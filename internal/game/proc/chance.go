// Package proc derives the activation chance of procs-per-minute effects.
package proc

import (
	"fmt"
	"math"
	"strings"
)

// Chance bounds. The floor grows with PPM; the ceiling is fixed.
const (
	MaxChance       = 0.90
	MinChanceBase   = 0.05
	MinChancePerPPM = 0.015

	// ToggleTickSeconds is the activation interval assumed for toggles and autos.
	ToggleTickSeconds = 10.0
)

// AoE modifier coefficients.
const (
	areaRadiusFactor  = 0.15
	coneArcPenalty    = 0.011
	coneArcStep       = 30.0
	areaFactorWeight  = 0.75
	areaFactorOffset  = 0.25
	secondsPerMinute  = 60.0
	fullCircleDegrees = 360.0
)

// Area is the target shape of a power.
type Area int8

const (
	AreaSingle Area = iota
	AreaSphere
	AreaCone
)

// Activation is how a power fires.
type Activation int8

const (
	ActivationClick Activation = iota
	ActivationToggle
	ActivationAuto
)

var (
	areaNames       = [...]string{"Single", "Sphere", "Cone"}
	activationNames = [...]string{"Click", "Toggle", "Auto"}
)

func (a Area) String() string {
	if int(a) < 0 || int(a) >= len(areaNames) {
		return fmt.Sprintf("Area(%d)", a)
	}
	return areaNames[a]
}

func (a Area) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Area) UnmarshalText(b []byte) error {
	i, err := parseName("area", areaNames[:], string(b))
	if err != nil {
		return err
	}
	*a = Area(i)
	return nil
}

func (a Activation) String() string {
	if int(a) < 0 || int(a) >= len(activationNames) {
		return fmt.Sprintf("Activation(%d)", a)
	}
	return activationNames[a]
}

func (a Activation) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Activation) UnmarshalText(b []byte) error {
	i, err := parseName("activation", activationNames[:], string(b))
	if err != nil {
		return err
	}
	*a = Activation(i)
	return nil
}

func parseName(kind string, names []string, s string) (int, error) {
	for i, n := range names {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, s)
}

// Proc is one chance-based effect slotted into a power.
// PPM == 0 marks a legacy flat-percentage proc.
type Proc struct {
	Name            string  `yaml:"name"`
	PPM             float64 `yaml:"ppm"`
	BaseProbability float64 `yaml:"base_probability"`
}

// Validate checks that p yields a probability: PPM is non-negative and the
// legacy base probability lies in [0,1].
func (p Proc) Validate() error {
	switch {
	case p.PPM < 0 || math.IsNaN(p.PPM):
		return fmt.Errorf("proc %q: negative ppm %v", p.Name, p.PPM)
	case p.BaseProbability < 0 || p.BaseProbability > 1 || math.IsNaN(p.BaseProbability):
		return fmt.Errorf("proc %q: base probability %v outside [0,1]", p.Name, p.BaseProbability)
	}
	return nil
}

// Power holds the properties of the host power that affect proc chance.
// Times are in seconds; CurrentRecharge already includes every recharge bonus.
type Power struct {
	Name            string
	Activation      Activation
	BaseRecharge    float64
	CurrentRecharge float64
	CastTime        float64
	Area            Area
	Radius          float64
	Arc             float64
}

// Character holds the build-wide inputs.
type Character struct {
	GlobalRecharge float64
}

// Result is one line of a per-power breakdown.
type Result struct {
	Power  string  `yaml:"power"`
	Proc   string  `yaml:"proc"`
	PPM    float64 `yaml:"ppm"`
	Chance float64 `yaml:"chance"`
}

// MinChance returns the floor for a proc with the given PPM.
func MinChance(ppm float64) float64 {
	return ppm*MinChancePerPPM + MinChanceBase
}

// AoEModifier returns the area penalty of a power: 1 for single target,
// growing with radius for spheres and cones, reduced for cones by the part
// of the circle the arc does not cover.
func AoEModifier(pw Power) float64 {
	switch pw.Area {
	case AreaSphere:
		return 1 + pw.Radius*areaRadiusFactor
	case AreaCone:
		arc := math.Min(math.Max(pw.Arc, 0), fullCircleDegrees)
		return 1 + pw.Radius*areaRadiusFactor - pw.Radius*coneArcPenalty*((fullCircleDegrees-arc)/coneArcStep)
	}
	return 1
}

// AreaFactor blends the AoE modifier into the divisor of the chance formula.
func AreaFactor(pw Power) float64 {
	return AoEModifier(pw)*areaFactorWeight + areaFactorOffset
}

// EffectiveRecharge removes the character's global recharge from the
// power's current recharge, leaving base time reduced only by its own
// slotted recharge. When the inputs cannot be separated the current
// recharge is returned unchanged.
func EffectiveRecharge(pw Power, c Character) float64 {
	if pw.BaseRecharge <= 0 || pw.CurrentRecharge <= 0 {
		return math.Max(pw.CurrentRecharge, 0)
	}
	denom := pw.BaseRecharge/pw.CurrentRecharge - c.GlobalRecharge
	if denom <= 0 {
		return pw.CurrentRecharge
	}
	return pw.BaseRecharge / denom
}

// Chance returns the activation probability of p slotted in pw, in [0, MaxChance]
// for PPM procs and the fixed base probability for legacy procs.
func Chance(p Proc, pw Power, c Character) float64 {
	if p.PPM == 0 {
		return p.BaseProbability
	}

	area := AreaFactor(pw)
	var raw float64
	switch pw.Activation {
	case ActivationToggle, ActivationAuto:
		raw = p.PPM * ToggleTickSeconds / (secondsPerMinute * area)
	default:
		raw = p.PPM * (EffectiveRecharge(pw, c) + pw.CastTime) / (secondsPerMinute * area)
	}

	chance := math.Max(raw, MinChance(p.PPM))
	chance = math.Min(chance, MaxChance)
	return math.Max(chance, 0)
}

// Breakdown computes the chance of every proc slotted in pw.
func Breakdown(pw Power, procs []Proc, c Character) []Result {
	out := make([]Result, 0, len(procs))
	for _, p := range procs {
		out = append(out, Result{
			Power:  pw.Name,
			Proc:   p.Name,
			PPM:    p.PPM,
			Chance: Chance(p, pw, c),
		})
	}
	return out
}
