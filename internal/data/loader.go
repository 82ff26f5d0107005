package data

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Data file names inside a table directory.
const (
	ArchetypesFile   = "archetypes.yaml"
	ModifiersFile    = "modifiers.yaml"
	EnhancementsFile = "enhancements.yaml"
)

// Tables bundles the read-only lookup tables a calculation consumes.
// Loaded once at startup and shared by reference afterwards.
type Tables struct {
	Archetypes   *Archetypes
	Modifiers    *ModifierTables
	Enhancements *EnhancementCatalog
}

// BuiltinTables returns the compiled-in archetypes with empty modifier and
// enhancement tables.
func BuiltinTables() *Tables {
	return &Tables{
		Archetypes:   BuiltinArchetypes(),
		Modifiers:    &ModifierTables{tables: map[string]*modifierTable{}},
		Enhancements: &EnhancementCatalog{byID: map[string]*Enhancement{}},
	}
}

// LoadTables reads every table file in dir concurrently.
// A missing file keeps the builtin value for that table.
func LoadTables(ctx context.Context, dir string) (*Tables, error) {
	t := BuiltinTables()

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := LoadArchetypesFile(filepath.Join(dir, ArchetypesFile))
		if errors.Is(err, fs.ErrNotExist) {
			slog.Info("archetype file not found, using builtin table", "dir", dir)
			return nil
		}
		if err != nil {
			return err
		}
		t.Archetypes = a
		return nil
	})
	g.Go(func() error {
		m, err := LoadModifierTablesFile(filepath.Join(dir, ModifiersFile))
		if errors.Is(err, fs.ErrNotExist) {
			slog.Info("modifier file not found, scaling lookups will return zero", "dir", dir)
			return nil
		}
		if err != nil {
			return err
		}
		t.Modifiers = m
		return nil
	})
	g.Go(func() error {
		c, err := LoadEnhancementCatalogFile(filepath.Join(dir, EnhancementsFile))
		if errors.Is(err, fs.ErrNotExist) {
			slog.Info("enhancement file not found, catalog is empty", "dir", dir)
			return nil
		}
		if err != nil {
			return err
		}
		t.Enhancements = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("loaded tables",
		"archetypes", t.Archetypes.Len(),
		"modifier_tables", t.Modifiers.Names(),
		"enhancements", t.Enhancements.Len())
	return t, nil
}

// LoadArchetypesFile reads an archetype cap file:
//
//	archetypes:
//	  - name: Class_Tanker
//	    resistance_cap: 0.90
//	    ...
func LoadArchetypesFile(path string) (*Archetypes, error) {
	var doc struct {
		Archetypes []ArchetypeCaps `yaml:"archetypes"`
	}
	if err := readYAML(path, &doc); err != nil {
		return nil, err
	}
	a, err := NewArchetypes(doc.Archetypes)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return a, nil
}

// LoadModifierTablesFile reads a modifier grid file:
//
//	tables:
//	  - name: Melee_Damage
//	    rows: [[...], ...]   # 55 rows
func LoadModifierTablesFile(path string) (*ModifierTables, error) {
	var doc struct {
		Tables []ModifierTableDef `yaml:"tables"`
	}
	if err := readYAML(path, &doc); err != nil {
		return nil, err
	}
	m, err := NewModifierTables(doc.Tables)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return m, nil
}

// LoadEnhancementCatalogFile reads an enhancement catalog file.
func LoadEnhancementCatalogFile(path string) (*EnhancementCatalog, error) {
	var doc struct {
		Enhancements []Enhancement `yaml:"enhancements"`
	}
	if err := readYAML(path, &doc); err != nil {
		return nil, err
	}
	c, err := NewEnhancementCatalog(doc.Enhancements)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return c, nil
}

func readYAML(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
