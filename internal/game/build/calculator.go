package build

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/buildcalc/internal/data"
	"github.com/udisondev/buildcalc/internal/game/enhance"
	"github.com/udisondev/buildcalc/internal/game/proc"
	"github.com/udisondev/buildcalc/internal/game/stacking"
	"github.com/udisondev/buildcalc/internal/game/totals"
	"github.com/udisondev/buildcalc/internal/model"
)

// Options tune a calculation pass.
type Options struct {
	// PvMode selects which PvE/PvP-restricted effects apply.
	PvMode model.PvMode
	// Heuristic is the damage line reported as headline.
	Heuristic totals.Heuristic
	// ProcBreakdown adds per-power proc chances to the report.
	ProcBreakdown bool
}

// Calculator runs the statistics pass over builds against shared tables.
// Safe for concurrent use: tables are read-only and every pass owns its totals.
type Calculator struct {
	tables *data.Tables
	opts   Options
}

func NewCalculator(tables *data.Tables, opts Options) *Calculator {
	return &Calculator{tables: tables, opts: opts}
}

// sourceKey tells a power from a set bonus of the same name.
type sourceKey struct {
	name     string
	setBonus bool
}

// damageSource collects the damage buff effects granted by one power.
type damageSource struct {
	name      string
	temporary bool
	uptime    float64
	effects   []model.EnhancedEffect
}

// Calculate computes the report of b.
func (c *Calculator) Calculate(b Build) (totals.Report, error) {
	if err := b.Validate(); err != nil {
		return totals.Report{}, err
	}
	caps, err := c.tables.Archetypes.Get(b.Archetype)
	if err != nil {
		return totals.Report{}, fmt.Errorf("build %q: %w", b.Name, err)
	}
	level := b.EffectiveLevel()

	var all []model.EnhancedEffect
	temporary := make(map[string]Power)
	localRecharge := make(map[string]float64, len(b.Powers))

	for _, pw := range b.Powers {
		bonuses, err := enhance.Sum(pw.Enhancements, c.tables.Enhancements)
		if err != nil {
			return totals.Report{}, fmt.Errorf("build %q power %q: %w", b.Name, pw.Name, err)
		}
		if localRecharge[pw.Name], err = bonuses.Diminished(model.AttrRecharge, model.MezNone); err != nil {
			return totals.Report{}, fmt.Errorf("build %q power %q: %w", b.Name, pw.Name, err)
		}
		if pw.Temporary {
			temporary[pw.Name] = pw
		}

		raw, err := c.prepare(pw.Effects, pw.Name, false, level, caps.Column)
		if err != nil {
			return totals.Report{}, fmt.Errorf("build %q power %q: %w", b.Name, pw.Name, err)
		}
		enhanced, err := enhance.Resolve(raw, bonuses)
		if err != nil {
			return totals.Report{}, fmt.Errorf("build %q power %q: %w", b.Name, pw.Name, err)
		}
		all = append(all, enhanced...)
	}

	for _, sb := range b.SetBonuses {
		raw, err := c.prepare(sb.Effects, sb.Name, true, level, caps.Column)
		if err != nil {
			return totals.Report{}, fmt.Errorf("build %q set bonus %q: %w", b.Name, sb.Name, err)
		}
		for _, e := range raw {
			all = append(all, model.Unenhanced(e))
		}
	}

	kept, suppressed := stacking.ApplyRuleOfFive(all)
	if suppressed > 0 {
		slog.Debug("rule of five suppressed set bonuses", "build", b.Name, "count", suppressed)
	}

	t := totals.New(caps)
	var (
		rest    []model.EnhancedEffect
		sources []*damageSource
		byKey   = make(map[sourceKey]*damageSource)
	)
	for _, e := range kept {
		pw, isTemp := temporary[e.Source]
		isTemp = isTemp && !e.SetBonus
		if e.Type != model.EffectDamageBuff {
			if isTemp {
				slog.Debug("skipping effect of temporary power", "build", b.Name, "power", e.Source, "type", e.Type)
				continue
			}
			rest = append(rest, e)
			continue
		}
		key := sourceKey{name: e.Source, setBonus: e.SetBonus}
		src, ok := byKey[key]
		if !ok {
			src = &damageSource{name: e.Source}
			if isTemp {
				src.temporary = true
				src.uptime = pw.Uptime
			}
			byKey[key] = src
			sources = append(sources, src)
		}
		src.effects = append(src.effects, e)
	}

	t.AddAll(stacking.GroupEffects(rest))
	for _, src := range sources {
		for _, g := range stacking.GroupEffects(src.effects) {
			t.AddDamageSource(totals.DamageSource{
				Name:       src.name,
				DamageType: g.Identifier.DamageType,
				Value:      g.EnhancedMagnitude,
				Temporary:  src.temporary,
				Uptime:     src.uptime,
			})
		}
	}
	t.ApplyAllCaps()

	report := t.Report()
	report.Build = b.Name
	report.Heuristic = c.opts.Heuristic
	if report.Fingerprint, err = Fingerprint(b); err != nil {
		return totals.Report{}, err
	}

	for _, pw := range b.Powers {
		if pw.BaseRecharge > 0 && pw.Duration > 0 {
			report.Perma = append(report.Perma, t.Recharge.Perma(pw.Name, pw.BaseRecharge, pw.Duration))
		}
	}

	if c.opts.ProcBreakdown {
		ch := proc.Character{GlobalRecharge: t.Recharge.Global()}
		for _, pw := range b.Powers {
			if len(pw.Procs) == 0 {
				continue
			}
			host := procHost(pw, localRecharge[pw.Name], ch.GlobalRecharge)
			report.Procs = append(report.Procs, proc.Breakdown(host, pw.Procs, ch)...)
		}
	}

	slog.Debug("build calculated",
		"build", b.Name,
		"archetype", caps.Name,
		"effects", len(all),
		"damage_sources", len(sources))
	return report, nil
}

// prepare validates decoded effects and resolves their context: owning power,
// archetype scaling, probability weighting and target/mode filtering.
func (c *Calculator) prepare(docs []Effect, owner string, setBonus bool, level, column int) ([]model.Effect, error) {
	out := make([]model.Effect, 0, len(docs))
	for _, d := range docs {
		e := model.Effect(d)
		if e.PowerID == "" {
			e.PowerID = owner
		}
		e.Source = owner
		e.SetBonus = e.SetBonus || setBonus

		e, err := model.NewEffect(e)
		if err != nil {
			return nil, err
		}
		if !e.ToWho.AffectsSelf() || !e.PvMode.Applies(c.opts.PvMode) {
			continue
		}

		switch {
		case e.ModifierTable != "" && !e.IgnoreScaling:
			e.Magnitude = data.Magnitude(e.Magnitude, e.Scale, c.tables.Modifiers.Get(e.ModifierTable, level, column))
		default:
			e.Magnitude *= e.Scale
		}
		e.Magnitude *= e.Probability

		out = append(out, e)
	}
	return out, nil
}

// procHost describes pw as a proc host. Its current recharge includes both
// slotted and global recharge.
func procHost(pw Power, local, global float64) proc.Power {
	current := pw.BaseRecharge
	if current > 0 {
		current = pw.BaseRecharge / (1 + local + global)
	}
	return proc.Power{
		Name:            pw.Name,
		Activation:      pw.Activation,
		BaseRecharge:    pw.BaseRecharge,
		CurrentRecharge: current,
		CastTime:        pw.CastTime,
		Area:            pw.Area,
		Radius:          pw.Radius,
		Arc:             pw.Arc,
	}
}

// CalculateAll computes builds concurrently with at most workers passes in
// flight. Reports keep the input order; the first error cancels the rest.
func CalculateAll(ctx context.Context, calc *Calculator, builds []Build, workers int) ([]totals.Report, error) {
	reports := make([]totals.Report, len(builds))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, b := range builds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := calc.Calculate(b)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
