package data

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/buildcalc/internal/model"
)

func TestLoadTables_FromDir(t *testing.T) {
	tables, err := LoadTables(context.Background(), "testdata")
	require.NoError(t, err)

	assert.Equal(t, 2, tables.Archetypes.Len())
	tanker, err := tables.Archetypes.Get("Class_Tanker")
	require.NoError(t, err)
	assert.Equal(t, 4, tanker.Column)

	assert.True(t, tables.Modifiers.Has("Melee_Buff_Def"))
	assert.Equal(t, []string{"Melee_Buff_Def"}, tables.Modifiers.Names())
	assert.InDelta(t, 2.54, tables.Modifiers.Get("Melee_Buff_Def", 50, tanker.Column), 1e-9)
	assert.Equal(t, 0.0, tables.Modifiers.Get("Melee_Buff_Def", 50, 16))

	lotg, err := tables.Enhancements.Get("lotg_def_rech")
	require.NoError(t, err)
	assert.Equal(t, "Luck of the Gambler", lotg.SetName)
	require.Len(t, lotg.Boosts, 2)
	assert.Equal(t, model.AttrRecharge, lotg.Boosts[1].Attribute)
}

func TestLoadTables_MissingFilesFallBack(t *testing.T) {
	tables, err := LoadTables(context.Background(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, BuiltinArchetypes().Len(), tables.Archetypes.Len())
	assert.Zero(t, tables.Modifiers.Len())
	assert.Zero(t, tables.Enhancements.Len())
}

func TestLoadTables_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	bad := "tables:\n  - name: Short\n    rows:\n      - [1, 2]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ModifiersFile), []byte(bad), 0o644))

	_, err := LoadTables(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 rows, want 55")
}

func TestEnhancementCatalog_Unknown(t *testing.T) {
	c, err := NewEnhancementCatalog(nil)
	require.NoError(t, err)

	_, err = c.Get("missing")
	assert.True(t, errors.Is(err, ErrUnknownEnhancement))
}

func TestNewEnhancementCatalog_Validation(t *testing.T) {
	_, err := NewEnhancementCatalog([]Enhancement{
		{ID: "a", Boosts: []Boost{{Attribute: model.AttrNone, Value: 0.1}}},
		{ID: "b", Boosts: []Boost{{Attribute: model.AttrDefense, MezType: model.MezHeld, Value: 0.1}}},
		{ID: "a"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid attribute")
	assert.Contains(t, err.Error(), "mez type on Defense")
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestEnhancementCatalog_AllSorted(t *testing.T) {
	c, err := LoadEnhancementCatalogFile(filepath.Join("testdata", EnhancementsFile))
	require.NoError(t, err)

	all := c.All()
	require.Len(t, all, c.Len())
	assert.Equal(t, "lotg_def_rech", all[0].ID)
	assert.Equal(t, "so_defense", all[1].ID)
}
