package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func makeGrid(levels, columns int, f func(level, column int) float64) [][]float64 {
	rows := make([][]float64, levels)
	for l := range levels {
		rows[l] = make([]float64, columns)
		for c := range columns {
			rows[l][c] = f(l+1, c)
		}
	}
	return rows
}

func TestModifierTables_Get(t *testing.T) {
	m, err := NewModifierTables([]ModifierTableDef{{
		Name: "Melee_Damage",
		Rows: makeGrid(ModifierLevels, ModifierColumns, func(l, c int) float64 { return float64(l) + float64(c)/100 }),
	}})
	require.NoError(t, err)

	tests := []struct {
		name   string
		table  string
		level  int
		column int
		want   float64
	}{
		{"first cell", "Melee_Damage", 1, 0, 1},
		{"last cell", "Melee_Damage", 55, 59, 55.59},
		{"case insensitive", "melee_damage", 50, 3, 50.03},
		{"level zero", "Melee_Damage", 0, 3, 0},
		{"level above 55", "Melee_Damage", 56, 3, 0},
		{"negative column", "Melee_Damage", 10, -1, 0},
		{"column 60", "Melee_Damage", 10, 60, 0},
		{"unknown table", "Ranged_Damage", 10, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, m.Get(tt.table, tt.level, tt.column), 1e-12)
		})
	}
}

func TestModifierTables_NarrowTable(t *testing.T) {
	m, err := NewModifierTables([]ModifierTableDef{{
		Name: "Narrow",
		Rows: makeGrid(ModifierLevels, 4, func(l, c int) float64 { return 1 }),
	}})
	require.NoError(t, err)

	assert.Equal(t, 1.0, m.Get("Narrow", 1, 3))
	assert.Equal(t, 0.0, m.Get("Narrow", 1, 4), "beyond table width but inside the grid")
}

func TestModifierTables_NilIsEmpty(t *testing.T) {
	var m *ModifierTables
	assert.Equal(t, 0.0, m.Get("anything", 1, 1))
	assert.False(t, m.Has("anything"))
	assert.Zero(t, m.Len())
	assert.Nil(t, m.Names())
}

func TestNewModifierTables_ReportsAllErrors(t *testing.T) {
	ragged := makeGrid(ModifierLevels, 10, func(l, c int) float64 { return 1 })
	ragged[3] = ragged[3][:9]
	ragged[7] = append(ragged[7], 2)

	_, err := NewModifierTables([]ModifierTableDef{
		{Name: "Short", Rows: makeGrid(54, 10, func(l, c int) float64 { return 1 })},
		{Name: "Ragged", Rows: ragged},
		{Name: "", Rows: makeGrid(ModifierLevels, 10, func(l, c int) float64 { return 1 })},
		{Name: "Ok", Rows: makeGrid(ModifierLevels, 10, func(l, c int) float64 { return 1 })},
		{Name: "ok", Rows: makeGrid(ModifierLevels, 10, func(l, c int) float64 { return 1 })},
	})
	require.Error(t, err)

	errs := multierr.Errors(err)
	assert.Len(t, errs, 4)
	assert.Contains(t, err.Error(), "54 rows")
	assert.Contains(t, err.Error(), "level 4")
	assert.Contains(t, err.Error(), "level 8")
	assert.Contains(t, err.Error(), "empty name")
	assert.Contains(t, err.Error(), "duplicate")
}

func TestMagnitude(t *testing.T) {
	assert.InDelta(t, 0.75*2*0.1, Magnitude(2, 0.75, 0.1), 1e-12)
	assert.Equal(t, 0.0, Magnitude(2, 0.75, 0))
}

func TestModifierTables_DefsRoundTrip(t *testing.T) {
	defs := []ModifierTableDef{
		{Name: "Ranged_Damage", Rows: makeGrid(ModifierLevels, 3, func(l, c int) float64 { return float64(l * c) })},
		{Name: "Melee_Damage", Rows: makeGrid(ModifierLevels, 2, func(l, c int) float64 { return 1 })},
	}
	m, err := NewModifierTables(defs)
	require.NoError(t, err)

	got := m.Defs()
	require.Len(t, got, 2)
	assert.Equal(t, "Melee_Damage", got[0].Name)
	assert.Equal(t, defs[0], got[1])

	// returned rows are copies
	got[1].Rows[0][0] = 99
	assert.Equal(t, 0.0, m.Get("Ranged_Damage", 1, 0))
}
