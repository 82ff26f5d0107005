package totals

import (
	"github.com/dustin/go-humanize"

	"github.com/udisondev/buildcalc/internal/game/proc"
	"github.com/udisondev/buildcalc/internal/model"
)

// StatLine is one reported value with its cap flag. For defense the flag
// marks the soft cap.
type StatLine struct {
	Value float64 `yaml:"value"`
	AtCap bool    `yaml:"at_cap"`
}

// MiscReport is the reported secondary attributes.
type MiscReport struct {
	MaxHP             StatLine `yaml:"max_hp"`
	Recovery          float64  `yaml:"recovery"`
	Regeneration      float64  `yaml:"regeneration"`
	Perception        float64  `yaml:"perception"`
	ToHit             float64  `yaml:"to_hit"`
	Accuracy          float64  `yaml:"accuracy"`
	EnduranceDiscount float64  `yaml:"endurance_discount"`
}

// Report is the statistics of one build, ready for the API layer.
// Heuristic selects the damage line Summary shows as the headline value.
type Report struct {
	Build       string              `yaml:"build,omitempty"`
	Archetype   string              `yaml:"archetype"`
	Fingerprint string              `yaml:"fingerprint,omitempty"`
	Defense     map[string]StatLine `yaml:"defense"`
	Resistance  map[string]StatLine `yaml:"resistance"`
	Recharge    StatLine            `yaml:"recharge"`
	Damage      map[string]StatLine `yaml:"damage"`
	Heuristic   Heuristic           `yaml:"heuristic"`
	Misc        MiscReport          `yaml:"misc"`
	Procs       []proc.Result       `yaml:"procs,omitempty"`
	Perma       []PermaLine         `yaml:"perma,omitempty"`
}

// Report snapshots the totals. Call after ApplyAllCaps.
func (b *BuildTotals) Report() Report {
	r := Report{
		Archetype:  b.Archetype.DisplayName,
		Defense:    make(map[string]StatLine, len(model.TypedDamage)+len(model.PositionalDamage)),
		Resistance: make(map[string]StatLine, len(model.TypedDamage)),
		Damage:     make(map[string]StatLine, len(Heuristics)),
	}

	for _, dt := range model.TypedDamage {
		r.Defense[dt.String()] = StatLine{Value: b.Defense.Display(dt), AtCap: b.Defense.IsSoftCapped(dt)}
		r.Resistance[dt.String()] = StatLine{Value: b.Resistance.Get(dt), AtCap: b.Resistance.IsAtCap(dt)}
	}
	for _, dt := range model.PositionalDamage {
		r.Defense[dt.String()] = StatLine{Value: b.Defense.Display(dt), AtCap: b.Defense.IsSoftCapped(dt)}
	}

	r.Recharge = StatLine{Value: b.Recharge.Global(), AtCap: b.Recharge.IsAtCap()}

	for _, h := range Heuristics {
		r.Damage[h.String()] = StatLine{Value: b.Damage.CappedBuff(h), AtCap: b.Damage.IsAtCap(h)}
	}

	m := b.Misc
	r.Misc = MiscReport{
		MaxHP:             StatLine{Value: m.MaxHP(), AtCap: m.IsHPCapped()},
		Recovery:          m.Recovery,
		Regeneration:      m.Regeneration,
		Perception:        m.PerceptionRadius(),
		ToHit:             m.ToHit,
		Accuracy:          m.Accuracy,
		EnduranceDiscount: m.EnduranceDiscount,
	}
	return r
}

// Summary formats the report as display strings keyed by "<Domain>.<Category>".
func (r Report) Summary() map[string]string {
	out := make(map[string]string, 32)
	for k, v := range r.Defense {
		out["Defense."+k] = percent(v.Value) + capMark(v.AtCap, " (soft cap)")
	}
	for k, v := range r.Resistance {
		out["Resistance."+k] = percent(v.Value) + capMark(v.AtCap, " (capped)")
	}
	out["Recharge"] = signedPercent(r.Recharge.Value) + capMark(r.Recharge.AtCap, " (capped)")
	for k, v := range r.Damage {
		out["Damage."+k] = signedPercent(v.Value) + capMark(v.AtCap, " (capped)")
	}
	if v, ok := out["Damage."+r.Heuristic.String()]; ok {
		out["Damage"] = v
	}

	out["MaxHP"] = humanize.FormatFloat("#,###.#", r.Misc.MaxHP.Value) + capMark(r.Misc.MaxHP.AtCap, " (capped)")
	out["Recovery"] = signedPercent(r.Misc.Recovery)
	out["Regeneration"] = signedPercent(r.Misc.Regeneration)
	out["Perception"] = humanize.FormatFloat("#,###.", r.Misc.Perception) + " ft"
	out["ToHit"] = signedPercent(r.Misc.ToHit)
	out["Accuracy"] = signedPercent(r.Misc.Accuracy)
	out["EnduranceDiscount"] = signedPercent(r.Misc.EnduranceDiscount)

	for _, p := range r.Procs {
		out["Proc."+p.Power+"."+p.Proc] = percent(p.Chance)
	}
	for _, p := range r.Perma {
		line := humanize.FormatFloat("#,###.##", p.ReducedTime) + "s"
		if p.Perma {
			line += " (perma)"
		} else {
			line += ", needs " + signedPercent(p.RechargeNeeded)
		}
		out["Perma."+p.Power] = line
	}
	return out
}

func percent(v float64) string {
	return humanize.FormatFloat("#,###.##", v*100) + "%"
}

func signedPercent(v float64) string {
	if v >= 0 {
		return "+" + percent(v)
	}
	return percent(v)
}

func capMark(atCap bool, mark string) string {
	if atCap {
		return mark
	}
	return ""
}
