package data

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/multierr"
)

// Modifier grid dimensions. Levels are 1-based, columns 0-based.
const (
	ModifierLevels  = 55
	ModifierColumns = 60
)

// ModifierTableDef is one named level × archetype-column grid as stored in data files.
// Rows[i] holds level i+1.
type ModifierTableDef struct {
	Name string      `yaml:"name"`
	Rows [][]float64 `yaml:"rows"`
}

type modifierTable struct {
	name    string
	columns int
	rows    [][]float64
}

// ModifierTables is the immutable registry of named scaling grids.
// Safe for concurrent reads; a nil *ModifierTables behaves as empty.
type ModifierTables struct {
	tables map[string]*modifierTable
}

// NewModifierTables validates defs and builds the registry.
// Each table must have exactly ModifierLevels rows of one consistent width
// between 1 and ModifierColumns. All violations are returned together.
func NewModifierTables(defs []ModifierTableDef) (*ModifierTables, error) {
	m := &ModifierTables{tables: make(map[string]*modifierTable, len(defs))}

	var errs error
	for i, def := range defs {
		if err := validateModifierDef(def); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("modifier table #%d %q: %w", i, def.Name, err))
			continue
		}
		key := strings.ToLower(def.Name)
		if _, dup := m.tables[key]; dup {
			errs = multierr.Append(errs, fmt.Errorf("modifier table #%d %q: duplicate name", i, def.Name))
			continue
		}

		rows := make([][]float64, len(def.Rows))
		for r, row := range def.Rows {
			rows[r] = append([]float64(nil), row...)
		}
		m.tables[key] = &modifierTable{name: def.Name, columns: len(rows[0]), rows: rows}
	}
	if errs != nil {
		return nil, errs
	}
	return m, nil
}

func validateModifierDef(def ModifierTableDef) error {
	if def.Name == "" {
		return fmt.Errorf("empty name")
	}
	if len(def.Rows) != ModifierLevels {
		return fmt.Errorf("%d rows, want %d", len(def.Rows), ModifierLevels)
	}

	var errs error
	width := len(def.Rows[0])
	if width == 0 || width > ModifierColumns {
		errs = multierr.Append(errs, fmt.Errorf("width %d outside 1..%d", width, ModifierColumns))
	}
	for r, row := range def.Rows {
		if len(row) != width {
			errs = multierr.Append(errs, fmt.Errorf("level %d: %d columns, want %d", r+1, len(row), width))
			continue
		}
		for c, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				errs = multierr.Append(errs, fmt.Errorf("level %d column %d: non-finite value", r+1, c))
			}
		}
	}
	return errs
}

// Get returns the scaling factor for table, level (1..55) and column (0..59).
// Unknown tables and out-of-range coordinates return 0.0: data references
// unsupported archetype/power combinations and those must contribute nothing.
func (m *ModifierTables) Get(table string, level, column int) float64 {
	if m == nil {
		return 0
	}
	t, ok := m.tables[strings.ToLower(table)]
	if !ok {
		return 0
	}
	if level < 1 || level > ModifierLevels || column < 0 || column >= ModifierColumns {
		return 0
	}
	if column >= t.columns {
		return 0
	}
	return t.rows[level-1][column]
}

// Has reports whether a table with the given name is loaded.
func (m *ModifierTables) Has(table string) bool {
	if m == nil {
		return false
	}
	_, ok := m.tables[strings.ToLower(table)]
	return ok
}

// Names returns the loaded table names, sorted.
func (m *ModifierTables) Names() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.tables))
	for _, t := range m.tables {
		names = append(names, t.name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of loaded tables.
func (m *ModifierTables) Len() int {
	if m == nil {
		return 0
	}
	return len(m.tables)
}

// Magnitude scales a base magnitude: scale × base × modifier.
func Magnitude(base, scale, modifier float64) float64 {
	return scale * base * modifier
}

// Defs returns a copy of every table, sorted by name.
func (m *ModifierTables) Defs() []ModifierTableDef {
	if m == nil {
		return nil
	}
	defs := make([]ModifierTableDef, 0, len(m.tables))
	for _, t := range m.tables {
		rows := make([][]float64, len(t.rows))
		for r, row := range t.rows {
			rows[r] = append([]float64(nil), row...)
		}
		defs = append(defs, ModifierTableDef{Name: t.name, Rows: rows})
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}
