package build

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/buildcalc/internal/data"
	"github.com/udisondev/buildcalc/internal/game/proc"
	"github.com/udisondev/buildcalc/internal/game/totals"
	"github.com/udisondev/buildcalc/internal/model"
	"github.com/udisondev/buildcalc/internal/testutil"
)

func selfEffect(et model.EffectType, dt model.DamageType, mag float64) Effect {
	return Effect(testutil.SelfEffect(et, dt, mag))
}

func TestLoadFile_AppliesEffectDefaults(t *testing.T) {
	b, err := LoadFile("testdata/scrapper.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Shield Scrapper", b.Name)
	require.Len(t, b.Powers, 3)
	assert.Equal(t, proc.ActivationToggle, b.Powers[0].Activation)

	e := b.Powers[0].Effects[0]
	assert.Equal(t, model.EffectDefense, e.Type)
	assert.Equal(t, model.DamageMelee, e.DamageType)
	assert.InDelta(t, 1.0, e.Probability, 1e-12)
	assert.InDelta(t, 1.0, e.Scale, 1e-12)
	assert.True(t, e.Buffable)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("testdata/nope.yaml")
	assert.Error(t, err)
}

func TestCalculate_ScrapperFile(t *testing.T) {
	b, err := LoadFile("testdata/scrapper.yaml")
	require.NoError(t, err)

	calc := NewCalculator(testutil.Tables(t), Options{ProcBreakdown: true, Heuristic: totals.HeuristicAvg})
	r, err := calc.Calculate(b)
	require.NoError(t, err)

	// three defense SOs: 0.60 raw -> 0.56 after ED
	assert.InDelta(t, 0.15*1.56, r.Defense["Melee"].Value, 1e-9)
	assert.InDelta(t, 0.15*1.56+0.025, r.Defense["Smashing"].Value, 1e-9)

	assert.InDelta(t, 1.0, r.Damage["Max"].Value, 1e-9)
	assert.InDelta(t, 0.25, r.Damage["Avg"].Value, 1e-9)
	assert.InDelta(t, 0.0, r.Damage["Min"].Value, 1e-9)
	assert.Equal(t, totals.HeuristicAvg, r.Heuristic)

	require.Len(t, r.Procs, 1)
	assert.Equal(t, "Fire Blast", r.Procs[0].Power)
	assert.InDelta(t, 3.5*5/60, r.Procs[0].Chance, 1e-9)

	assert.Len(t, r.Fingerprint, 32)
	assert.Equal(t, "Scrapper", r.Archetype)
}

func TestCalculate_RuleOfFiveAcrossBuild(t *testing.T) {
	b := Build{Name: "lotg", Archetype: "Class_Blaster"}
	for range 7 {
		b.SetBonuses = append(b.SetBonuses, SetBonus{
			Name:    "Luck of the Gambler 4",
			Effects: []Effect{{Type: model.EffectRechargeTime, Magnitude: 0.075, Scale: 1, Probability: 1, BaseProbability: 1}},
		})
	}

	r, err := NewCalculator(testutil.Tables(t), Options{}).Calculate(b)
	require.NoError(t, err)
	assert.InDelta(t, 5*0.075, r.Recharge.Value, 1e-9)
}

func TestCalculate_FiltersAndWeights(t *testing.T) {
	target := selfEffect(model.EffectDefense, model.DamageFire, 0.5)
	target.ToWho = model.ToTarget

	pvp := selfEffect(model.EffectDefense, model.DamageFire, 0.5)
	pvp.PvMode = model.PvP

	chance := selfEffect(model.EffectDefense, model.DamageFire, 0.2)
	chance.Probability = 0.5

	scaled := selfEffect(model.EffectDefense, model.DamageCold, 0.1)
	scaled.ModifierTable = "Melee_Buff_Def"

	unscaled := selfEffect(model.EffectDefense, model.DamageEnergy, 0.1)
	unscaled.ModifierTable = "Melee_Buff_Def"
	unscaled.IgnoreScaling = true

	b := Build{
		Archetype: "Class_Scrapper",
		Powers: []Power{{
			Name:    "Test Toggle",
			Effects: []Effect{target, pvp, chance, scaled, unscaled},
		}},
	}

	r, err := NewCalculator(testutil.Tables(t), Options{PvMode: model.PvE}).Calculate(b)
	require.NoError(t, err)

	assert.InDelta(t, 0.1, r.Defense["Fire"].Value, 1e-9)
	// scrapper column 3
	assert.InDelta(t, 0.13, r.Defense["Cold"].Value, 1e-9)
	assert.InDelta(t, 0.1, r.Defense["Energy"].Value, 1e-9)
}

func TestCalculate_CapsAndTemporaryPowers(t *testing.T) {
	b := Build{
		Archetype: "Class_Tanker",
		Powers: []Power{
			{Name: "Unyielding", Effects: []Effect{selfEffect(model.EffectResistance, model.DamageSmashing, 1.2)}},
			{
				Name: "Rage", Temporary: true, Uptime: 0.5,
				Effects: []Effect{
					selfEffect(model.EffectDamageBuff, model.DamageNone, 0.8),
					selfEffect(model.EffectToHit, model.DamageNone, 0.2),
				},
			},
		},
	}

	r, err := NewCalculator(testutil.Tables(t), Options{}).Calculate(b)
	require.NoError(t, err)

	tanker, err := data.BuiltinArchetypes().Get("Class_Tanker")
	require.NoError(t, err)
	assert.InDelta(t, tanker.ResistanceCap, r.Resistance["Smashing"].Value, 1e-12)
	assert.True(t, r.Resistance["Smashing"].AtCap)

	assert.InDelta(t, 0.4, r.Damage["Avg"].Value, 1e-9)
	assert.InDelta(t, 0.0, r.Misc.ToHit, 1e-12, "non-damage effects of temporary powers are not counted")
}

func TestCalculate_PermaReport(t *testing.T) {
	b := Build{
		Archetype: "Class_Blaster",
		Powers: []Power{
			{
				Name: "Hasten", BaseRecharge: 120, Duration: 120,
				Effects: []Effect{selfEffect(model.EffectRechargeTime, model.DamageNone, 0.7)},
			},
			{Name: "Aim", BaseRecharge: 90, Duration: 10},
			{Name: "Fire Blast", BaseRecharge: 4},
		},
	}

	r, err := NewCalculator(testutil.Tables(t), Options{}).Calculate(b)
	require.NoError(t, err)

	require.Len(t, r.Perma, 2, "powers without a duration have no perma line")
	assert.Equal(t, "Hasten", r.Perma[0].Power)
	assert.InDelta(t, 120/1.7, r.Perma[0].ReducedTime, 1e-9)
	assert.True(t, r.Perma[0].Perma)

	assert.Equal(t, "Aim", r.Perma[1].Power)
	assert.False(t, r.Perma[1].Perma)
	assert.InDelta(t, 8.0, r.Perma[1].RechargeNeeded, 1e-12)
}

func TestCalculate_SetBonusNamedLikeTemporaryPower(t *testing.T) {
	b := Build{
		Archetype: "Class_Scrapper",
		Powers: []Power{{
			Name: "Build Up", Temporary: true, Uptime: 0.25,
			Effects: []Effect{selfEffect(model.EffectDamageBuff, model.DamageNone, 1.0)},
		}},
		SetBonuses: []SetBonus{{
			Name: "Build Up",
			Effects: []Effect{
				selfEffect(model.EffectToHit, model.DamageNone, 0.05),
				selfEffect(model.EffectDamageBuff, model.DamageNone, 0.1),
			},
		}},
	}

	r, err := NewCalculator(testutil.Tables(t), Options{}).Calculate(b)
	require.NoError(t, err)

	assert.InDelta(t, 0.05, r.Misc.ToHit, 1e-12, "set bonus effects are not those of the temporary power")
	assert.InDelta(t, 0.1, r.Damage["Min"].Value, 1e-12, "the set bonus damage buff is permanent")
	assert.InDelta(t, 1.1, r.Damage["Max"].Value, 1e-12)
}

func TestCalculate_Errors(t *testing.T) {
	calc := NewCalculator(testutil.Tables(t), Options{})

	tests := []struct {
		name  string
		build Build
	}{
		{"no archetype", Build{Name: "x"}},
		{"unknown archetype", Build{Archetype: "Class_Nope"}},
		{"bad level", Build{Archetype: "Class_Blaster", Level: 60}},
		{"unknown enhancement", Build{Archetype: "Class_Blaster", Powers: []Power{{Name: "p", Enhancements: []string{"x"}}}}},
		{"invalid effect", Build{Archetype: "Class_Blaster", Powers: []Power{{
			Name:    "p",
			Effects: []Effect{{Type: model.EffectDefense, Scale: 0, Probability: 1, BaseProbability: 1}},
		}}}},
		{"duplicate power", Build{Archetype: "Class_Blaster", Powers: []Power{{Name: "p"}, {Name: "p"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.Calculate(tt.build)
			assert.Error(t, err)
		})
	}
}

func TestCalculate_RejectsInvalidProcInputs(t *testing.T) {
	calc := NewCalculator(testutil.Tables(t), Options{ProcBreakdown: true})

	tests := []struct {
		name  string
		power Power
	}{
		{"legacy probability above one", Power{Name: "Blast", Procs: []proc.Proc{{Name: "legacy", BaseProbability: 1.5}}}},
		{"negative ppm", Power{Name: "Blast", BaseRecharge: 4, Procs: []proc.Proc{{Name: "neg", PPM: -3}}}},
		{"negative radius", Power{Name: "Nova", Area: proc.AreaSphere, Radius: -6.67, Procs: []proc.Proc{{Name: "zeroarea", PPM: 3}}}},
		{"arc beyond full circle", Power{Name: "Cone", Area: proc.AreaCone, Radius: 40, Arc: 400}},
		{"negative arc", Power{Name: "Cone", Area: proc.AreaCone, Radius: 40, Arc: -10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.Calculate(Build{Archetype: "Class_Blaster", Powers: []Power{tt.power}})
			assert.ErrorIs(t, err, ErrInvalidBuild)
		})
	}
}

func TestFingerprint_Stable(t *testing.T) {
	b, err := LoadFile("testdata/scrapper.yaml")
	require.NoError(t, err)

	f1, err := Fingerprint(b)
	require.NoError(t, err)
	f2, err := Fingerprint(b)
	require.NoError(t, err)
	assert.Equal(t, f1, f2)

	b.Level = 40
	f3, err := Fingerprint(b)
	require.NoError(t, err)
	assert.NotEqual(t, f1, f3)
}

func TestCalculateAll_KeepsOrder(t *testing.T) {
	calc := NewCalculator(testutil.Tables(t), Options{})

	var builds []Build
	for i := range 20 {
		builds = append(builds, Build{
			Name:      fmt.Sprintf("b%d", i),
			Archetype: "Class_Blaster",
			Powers: []Power{{
				Name:    "Hasten",
				Effects: []Effect{selfEffect(model.EffectRechargeTime, model.DamageNone, float64(i)/100)},
			}},
		})
	}

	reports, err := CalculateAll(testutil.ContextWithTimeout(t, 10*time.Second), calc, builds, 4)
	require.NoError(t, err)
	require.Len(t, reports, len(builds))
	for i, r := range reports {
		assert.Equal(t, builds[i].Name, r.Build)
		assert.InDelta(t, float64(i)/100, r.Recharge.Value, 1e-12)
	}
}

func TestCalculateAll_FirstErrorWins(t *testing.T) {
	calc := NewCalculator(testutil.Tables(t), Options{})
	builds := []Build{{Archetype: "Class_Blaster"}, {Archetype: "Class_Nope"}}

	_, err := CalculateAll(context.Background(), calc, builds, 2)
	assert.ErrorIs(t, err, data.ErrUnknownArchetype)
}
