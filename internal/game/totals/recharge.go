package totals

import "math"

// ReducedRecharge returns the recharge time of a power with base time base
// under a global recharge bonus.
func ReducedRecharge(base, globalRecharge float64) float64 {
	return base / (1 + globalRecharge)
}

// IsPerma reports whether a power with the given base recharge and effect
// duration can be kept running continuously.
func IsPerma(base, duration, globalRecharge float64) bool {
	return ReducedRecharge(base, globalRecharge) <= duration
}

// RechargeNeededForPerma returns the total recharge bonus at which a power
// becomes permanent. A zero duration can never be made permanent.
func RechargeNeededForPerma(base, duration float64) float64 {
	if duration <= 0 {
		return math.Inf(1)
	}
	return base/duration - 1
}

// RechargeValues accumulates the global recharge bonus.
type RechargeValues struct {
	global float64
	cap    float64
}

func newRechargeValues(limit float64) *RechargeValues {
	return &RechargeValues{cap: limit}
}

func (r *RechargeValues) Add(v float64) {
	r.global += v
}

// Global returns the accumulated bonus (0.70 = +70%).
func (r *RechargeValues) Global() float64 {
	return r.global
}

func (r *RechargeValues) Cap() float64 {
	return r.cap
}

// ApplyCaps clamps the bonus to the archetype ceiling.
func (r *RechargeValues) ApplyCaps() {
	r.global = min(r.global, r.cap)
}

func (r *RechargeValues) IsAtCap() bool {
	return r.global >= r.cap
}

// ReducedTime returns base reduced by the global bonus.
func (r *RechargeValues) ReducedTime(base float64) float64 {
	return ReducedRecharge(base, r.global)
}

// IsPerma reports whether the power is permanent under the global bonus.
func (r *RechargeValues) IsPerma(base, duration float64) bool {
	return IsPerma(base, duration, r.global)
}

// PermaLine is the perma status of one power under the global bonus.
type PermaLine struct {
	Power          string  `yaml:"power"`
	BaseRecharge   float64 `yaml:"base_recharge"`
	Duration       float64 `yaml:"duration"`
	ReducedTime    float64 `yaml:"reduced_time"`
	Perma          bool    `yaml:"perma"`
	RechargeNeeded float64 `yaml:"recharge_needed"`
}

// Perma describes a power with the given base recharge and duration.
// Call after ApplyCaps.
func (r *RechargeValues) Perma(power string, base, duration float64) PermaLine {
	return PermaLine{
		Power:          power,
		BaseRecharge:   base,
		Duration:       duration,
		ReducedTime:    r.ReducedTime(base),
		Perma:          r.IsPerma(base, duration),
		RechargeNeeded: RechargeNeededForPerma(base, duration),
	}
}
