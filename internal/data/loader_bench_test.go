package data

import (
	"context"
	"testing"
)

// BenchmarkLoadTables benchmarks reading the three table files concurrently.
func BenchmarkLoadTables(b *testing.B) {
	b.ReportAllocs()
	ctx := context.Background()
	for range b.N {
		if _, err := LoadTables(ctx, "testdata"); err != nil {
			b.Fatalf("LoadTables: %v", err)
		}
	}
}

// BenchmarkModifierTables_Get benchmarks the hot lookup of the scaling pass.
func BenchmarkModifierTables_Get(b *testing.B) {
	m, err := NewModifierTables([]ModifierTableDef{{
		Name: "Melee_Damage",
		Rows: makeGrid(ModifierLevels, ModifierColumns, func(l, c int) float64 { return float64(l * c) }),
	}})
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	var sink float64
	for i := range b.N {
		sink += m.Get("melee_damage", 1+i%ModifierLevels, i%ModifierColumns)
	}
	_ = sink
}
