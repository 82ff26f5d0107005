package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/buildcalc/internal/data"
	"github.com/udisondev/buildcalc/internal/model"
)

func sampleTables(t *testing.T) *data.Tables {
	t.Helper()

	rows := make([][]float64, data.ModifierLevels)
	for l := range rows {
		rows[l] = []float64{float64(l+1) / 10, float64(l+1) / 20, 1}
	}
	modifiers, err := data.NewModifierTables([]data.ModifierTableDef{{Name: "Melee_Damage", Rows: rows}})
	require.NoError(t, err)

	catalog, err := data.NewEnhancementCatalog([]data.Enhancement{
		{ID: "so_damage", Name: "Damage Increase SO", Boosts: []data.Boost{{Attribute: model.AttrDamage, Value: 0.333}}},
		{ID: "hold_generic", Name: "Hold Duration", Boosts: []data.Boost{{Attribute: model.AttrMez, MezType: model.MezHeld, Value: 0.2}}},
		{ID: "bare", Name: "No Boosts"},
	})
	require.NoError(t, err)

	tables := data.BuiltinTables()
	tables.Modifiers = modifiers
	tables.Enhancements = catalog
	return tables
}

func TestTableRepository_ImportAndLoad(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewTableRepository(pool)

	want := sampleTables(t)
	require.NoError(t, repo.ImportTables(ctx, want))

	got, err := repo.LoadTables(ctx)
	require.NoError(t, err)

	assert.ElementsMatch(t, want.Archetypes.All(), got.Archetypes.All())
	assert.Equal(t, want.Modifiers.Defs(), got.Modifiers.Defs())
	assert.InDelta(t, 5.0, got.Modifiers.Get("Melee_Damage", 50, 0), 1e-12)

	assert.Equal(t, want.Enhancements.All(), got.Enhancements.All())
	hold, err := got.Enhancements.Get("hold_generic")
	require.NoError(t, err)
	assert.Equal(t, model.MezHeld, hold.Boosts[0].MezType)
}

func TestTableRepository_ImportReplaces(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewTableRepository(pool)

	require.NoError(t, repo.ImportTables(ctx, sampleTables(t)))
	require.NoError(t, repo.ImportTables(ctx, data.BuiltinTables()))

	got, err := repo.LoadTables(ctx)
	require.NoError(t, err)
	assert.Zero(t, got.Modifiers.Len())
	assert.Zero(t, got.Enhancements.Len())
}

func TestTableRepository_EmptyArchetypesFallBack(t *testing.T) {
	pool := setupTestDB(t)

	got, err := NewTableRepository(pool).LoadTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, data.BuiltinArchetypes().Len(), got.Archetypes.Len())
}

func TestTableRepository_GapInModifierTable(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	_, err := pool.Exec(ctx, `INSERT INTO modifier_values (table_name, level, column_index, value) VALUES ('Broken', 1, 1, 0.5)`)
	require.NoError(t, err)

	_, err = NewTableRepository(pool).LoadModifierTables(ctx)
	assert.Error(t, err)
}
