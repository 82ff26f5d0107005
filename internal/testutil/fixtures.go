// Package testutil holds fixtures shared by the calculation tests.
package testutil

import (
	"testing"

	"github.com/udisondev/buildcalc/internal/data"
	"github.com/udisondev/buildcalc/internal/model"
)

// Fixtures holds the static catalog and modifier values used across tests.
var Fixtures = struct {
	Enhancements []data.Enhancement

	// ModifierTable is a flat grid: every level reads ModifierRow.
	ModifierTable string
	ModifierRow   []float64
}{
	Enhancements: []data.Enhancement{
		{ID: "so_defense", Name: "Defense Buff SO", Boosts: []data.Boost{{Attribute: model.AttrDefense, Value: 0.2}}},
		{ID: "so_recharge", Name: "Recharge Reduction SO", Boosts: []data.Boost{{Attribute: model.AttrRecharge, Value: 0.2}}},
		{ID: "so_damage", Name: "Damage Increase SO", Boosts: []data.Boost{{Attribute: model.AttrDamage, Value: 0.2}}},
	},
	ModifierTable: "Melee_Buff_Def",
	ModifierRow:   []float64{1.0, 1.1, 1.2, 1.3},
}

// Tables returns builtin archetypes with the fixture catalog and modifier table.
func Tables(t testing.TB) *data.Tables {
	t.Helper()

	catalog, err := data.NewEnhancementCatalog(Fixtures.Enhancements)
	if err != nil {
		t.Fatalf("building enhancement catalog: %v", err)
	}

	rows := make([][]float64, data.ModifierLevels)
	for i := range rows {
		rows[i] = append([]float64(nil), Fixtures.ModifierRow...)
	}
	modifiers, err := data.NewModifierTables([]data.ModifierTableDef{{Name: Fixtures.ModifierTable, Rows: rows}})
	if err != nil {
		t.Fatalf("building modifier tables: %v", err)
	}

	tables := data.BuiltinTables()
	tables.Enhancements = catalog
	tables.Modifiers = modifiers
	return tables
}

// Caps returns the builtin caps of the named archetype.
func Caps(t testing.TB, name string) *data.ArchetypeCaps {
	t.Helper()

	c, err := data.BuiltinArchetypes().Get(name)
	if err != nil {
		t.Fatalf("archetype %s: %v", name, err)
	}
	return c
}

// SelfEffect returns a default effect of type et on the caster.
func SelfEffect(et model.EffectType, dt model.DamageType, mag float64) model.Effect {
	e := model.DefaultEffect(et)
	e.DamageType = dt
	e.Magnitude = mag
	e.ToWho = model.ToSelf
	return e
}

// SetBonusEffect returns an effect granted by the set bonus power powerID.
func SetBonusEffect(id, powerID string, et model.EffectType, dt model.DamageType, mag float64) model.Effect {
	e := model.DefaultEffect(et)
	e.UniqueID = id
	e.PowerID = powerID
	e.SetBonus = true
	e.DamageType = dt
	e.Magnitude = mag
	return e
}
